// Package utils provides shared utility functions for the edtoken application.
//
// # Filesystem Utilities
//
//   - Exists: existence probe that surfaces permission errors
//   - ExpandHome: resolves a leading ~/ in paths stored in profiles
//   - WriteFileAtomic: temp file + rename writes
//   - CopyFile: byte-identical copy used for wallet cache files
//
// # I/O Utilities
//
//   - ReadStdin: reads piped data from standard input
//   - ReadInput: reads a file, or stdin for "-"
//
// # Terminal Utilities
//
//   - ReadPassphrase: masked prompt for tokens and passphrases
//
// # String and System Utilities
//
//   - FormatPaths, NumberedList: output helpers
//   - IsReferenceableKey: checks a key against the placeholder grammar
//   - GetUsername, GetHostname: identity for audit entries
package utils
