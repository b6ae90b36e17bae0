package errors

import "errors"

// Template errors indicate a placeholder could not be expanded.
var (
	// ErrMissingKey indicates a placeholder or profile field is absent from the profile content.
	ErrMissingKey = errors.New("key not found in profile")

	// ErrWrongValueKind indicates a plain placeholder refers to an encrypted value or vice versa.
	ErrWrongValueKind = errors.New("value kind does not match placeholder")

	// ErrPassphraseRequired indicates encrypted placeholders were found but no passphrase was supplied.
	ErrPassphraseRequired = errors.New("passphrase required for encrypted placeholders")

	// ErrPlaceholderMismatch indicates the resolved value count differs from the placeholder count.
	ErrPlaceholderMismatch = errors.New("resolved values do not match placeholders")

	// ErrNoTemplate indicates the profile has no command template.
	ErrNoTemplate = errors.New("profile has no template")
)

// Cryptographic errors indicate failures before or during decryption.
var (
	// ErrCipherUnavailable indicates the requested cipher kind is not implemented.
	ErrCipherUnavailable = errors.New("cipher kind unavailable")

	// ErrInvalidCiphertext indicates the ciphertext or IV has an impossible length.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")

	// ErrInvalidPadding indicates the recorded padding size is out of range.
	ErrInvalidPadding = errors.New("invalid padding size")
)

// Wallet errors indicate a state precondition was violated.
var (
	// ErrAlreadyOpen indicates the wallet already has a cache copy.
	ErrAlreadyOpen = errors.New("wallet is already open")

	// ErrAlreadyClosed indicates the wallet has no cache copy to restore.
	ErrAlreadyClosed = errors.New("wallet is already closed")

	// ErrFileNotFound indicates the wallet target file does not exist.
	ErrFileNotFound = errors.New("file not found")
)

// Store errors indicate issues with the profile store.
var (
	// ErrProfileNotFound indicates the named profile does not exist.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrProfileExists indicates a profile with that name already exists.
	ErrProfileExists = errors.New("profile already exists")

	// ErrReservedKey indicates an attempt to encrypt or misuse a reserved key such as "template".
	ErrReservedKey = errors.New("reserved key")

	// ErrInvalidProfileStore indicates the profile file is not a JSON object of objects.
	ErrInvalidProfileStore = errors.New("profile store is malformed")
)

// Configuration errors.
var (
	// ErrInvalidConfig indicates the merged configuration failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConfigExists indicates a config file already exists and would be overwritten.
	ErrConfigExists = errors.New("config file already exists")
)
