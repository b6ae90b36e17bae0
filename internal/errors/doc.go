// Package errors provides typed error values for the edtoken application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Template errors: unresolved or mistyped placeholders (ErrMissingKey, ErrWrongValueKind)
//   - Cipher errors: unsupported cipher kinds or malformed values (ErrCipherUnavailable, ErrInvalidCiphertext)
//   - Wallet errors: state precondition violations (ErrAlreadyOpen, ErrAlreadyClosed)
//   - Store errors: profile lookups and mutations (ErrProfileNotFound, ErrProfileExists)
//
// Corrupted ciphertext or a wrong passphrase is NOT reported by any error in
// this package: CBC mode without an authentication tag decrypts garbage
// silently.
//
// # Usage
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%w: %q", kerrors.ErrMissingKey, name)
//
// Handle errors in the CLI layer:
//
//	if errors.Is(err, kerrors.ErrAlreadyOpen) {
//	    // Tell the user to close the wallet first
//	}
package errors
