// Package secrets provides the token cipher for edtoken.
//
// A token is a single profile value (an API key, a password) that is stored
// encrypted inside the profile file and decrypted only while a template is
// being expanded.
//
// # Encryption Scheme
//
// Tokens are encrypted with AES-256 in CBC mode:
//
//  1. The 32-byte key is the SHA-256 digest of the passphrase
//  2. A fresh random 16-byte IV is generated per encryption
//  3. The final partial block is filled with random bytes, and the number of
//     filler bytes is recorded as PaddingSize
//
// The result is an EncryptedValue triple (ciphertext, IV, padding size).
// Re-encrypting the same token produces a different ciphertext because the IV
// changes, but any of them decrypts with the same passphrase.
//
// # Security Considerations
//
// Key derivation has no salt and no work factor, so a weak passphrase is
// cheap to brute force. There is no authentication tag: a wrong passphrase or
// corrupted ciphertext decrypts to garbage without an error.
//
// Only the Symmetric kind is implemented. Asymmetric is a reserved value that
// fails with ErrCipherUnavailable.
package secrets
