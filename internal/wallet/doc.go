// Package wallet toggles a text file between its stored form, with
// placeholders, and its expanded form, with every placeholder resolved.
//
// # States
//
// A wallet is Open while a cache copy of the original file exists and Closed
// otherwise. The state is never stored anywhere else: it is read from the
// filesystem each time, so it survives process restarts.
//
//	Closed --Open(passphrase)--> Open --Close()--> Closed
//
// Open expands each line of the target as a template against the profile
// content, saves the original bytes to the cache path, then replaces the
// target with the expanded lines. Close copies the cache back over the target
// and removes the cache. OpenFunc does the same but asks for the passphrase
// only once it knows the wallet is Closed and the target has {?name}
// placeholders.
//
// # Failure Behavior
//
// Expansion happens before anything is written, so a missing key or a failed
// passphrase prompt leaves both files untouched. If the target write fails
// the cache is removed again and the wallet stays Closed. Every write goes through a
// temporary file and a rename. A crash between the cache write and the
// target write can still leave an Open wallet whose target holds the
// original text; Close recovers from that since it only needs the cache.
//
// Nothing detects a wrong passphrase: the file is opened with garbage in
// place of the tokens. Closing restores the original either way.
package wallet
