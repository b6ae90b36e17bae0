package secrets

import (
	"fmt"

	kerrors "github.com/thecoblack/edtoken/internal/errors"
)

// EncryptedValue is the persisted form of an encrypted token.
//
// The JSON field names match the profile file written by earlier releases:
// ciphertext and IV are standard base64 strings, padding_size an integer.
type EncryptedValue struct {
	Ciphertext  []byte `json:"token"`
	IV          []byte `json:"cbc_iv"`
	PaddingSize int    `json:"padding_size"`
}

// Validate checks the lengths that CBC decryption depends on.
func (v *EncryptedValue) Validate() error {
	if v == nil {
		return fmt.Errorf("%w: nil value", kerrors.ErrInvalidCiphertext)
	}
	if len(v.IV) != BlockSize {
		return fmt.Errorf("%w: iv is %d bytes, want %d", kerrors.ErrInvalidCiphertext, len(v.IV), BlockSize)
	}
	if len(v.Ciphertext)%BlockSize != 0 {
		return fmt.Errorf("%w: %d bytes is not a multiple of the block size", kerrors.ErrInvalidCiphertext, len(v.Ciphertext))
	}
	if v.PaddingSize < 0 || v.PaddingSize >= BlockSize || v.PaddingSize > len(v.Ciphertext) {
		return fmt.Errorf("%w: %d", kerrors.ErrInvalidPadding, v.PaddingSize)
	}
	return nil
}
