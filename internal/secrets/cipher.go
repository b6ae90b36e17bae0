package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	kerrors "github.com/thecoblack/edtoken/internal/errors"
)

// BlockSize is the AES block size, which is also the IV length.
const BlockSize = aes.BlockSize

// CipherKind selects how a token is protected.
type CipherKind int

const (
	// Symmetric is AES-256-CBC keyed by a passphrase.
	Symmetric CipherKind = iota
	// Asymmetric is reserved. It is not implemented and always fails.
	Asymmetric
)

func (k CipherKind) String() string {
	switch k {
	case Symmetric:
		return "sym"
	case Asymmetric:
		return "asym"
	default:
		return fmt.Sprintf("CipherKind(%d)", int(k))
	}
}

// TokenCipher encrypts and decrypts a single value.
type TokenCipher interface {
	Encrypt(plaintext []byte, passphrase string) (*EncryptedValue, error)
	Decrypt(value *EncryptedValue, passphrase string) ([]byte, error)
}

// NewTokenCipher returns the cipher for kind. Asymmetric yields ErrCipherUnavailable.
func NewTokenCipher(kind CipherKind) (TokenCipher, error) {
	switch kind {
	case Symmetric:
		return NewSymmetricCipher(rand.Reader), nil
	default:
		return nil, fmt.Errorf("%w: %s", kerrors.ErrCipherUnavailable, kind)
	}
}

// SymmetricCipher is AES-256-CBC with an explicit padding length.
//
// The final partial block is filled with random bytes and the filler count is
// stored alongside the ciphertext instead of being encoded PKCS#7-style in the
// block itself. A plaintext whose length is an exact multiple of BlockSize is
// not padded at all.
type SymmetricCipher struct {
	random io.Reader
}

// NewSymmetricCipher returns a SymmetricCipher that draws IVs and filler bytes from random.
func NewSymmetricCipher(random io.Reader) *SymmetricCipher {
	if random == nil {
		random = rand.Reader
	}
	return &SymmetricCipher{random: random}
}

// DeriveKey hashes the passphrase with SHA-256. There is no salt and no
// stretching, so the same passphrase always yields the same key.
func DeriveKey(passphrase string) []byte {
	sum := sha256.Sum256([]byte(passphrase))
	return sum[:]
}

// Encrypt encrypts plaintext under a key derived from passphrase.
func (c *SymmetricCipher) Encrypt(plaintext []byte, passphrase string) (*EncryptedValue, error) {
	block, err := aes.NewCipher(DeriveKey(passphrase))
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	iv := make([]byte, BlockSize)
	if _, err := io.ReadFull(c.random, iv); err != nil {
		return nil, fmt.Errorf("generating IV: %w", err)
	}

	paddingSize := 0
	if rem := len(plaintext) % BlockSize; rem != 0 {
		paddingSize = BlockSize - rem
	}

	buf := make([]byte, len(plaintext)+paddingSize)
	copy(buf, plaintext)
	if paddingSize > 0 {
		if _, err := io.ReadFull(c.random, buf[len(plaintext):]); err != nil {
			return nil, fmt.Errorf("generating padding: %w", err)
		}
	}

	ciphertext := make([]byte, len(buf))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, buf)

	return &EncryptedValue{
		Ciphertext:  ciphertext,
		IV:          iv,
		PaddingSize: paddingSize,
	}, nil
}

// Decrypt reverses Encrypt. A wrong passphrase or tampered ciphertext is not
// detected; the result is simply garbage.
func (c *SymmetricCipher) Decrypt(value *EncryptedValue, passphrase string) ([]byte, error) {
	if err := value.Validate(); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(DeriveKey(passphrase))
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	plaintext := make([]byte, len(value.Ciphertext))
	cipher.NewCBCDecrypter(block, value.IV).CryptBlocks(plaintext, value.Ciphertext)

	// padding_size == 0 means nothing to strip, not "strip everything".
	return plaintext[:len(plaintext)-value.PaddingSize], nil
}

// Encrypt encrypts plaintext with the default symmetric cipher.
func Encrypt(plaintext []byte, passphrase string) (*EncryptedValue, error) {
	return NewSymmetricCipher(rand.Reader).Encrypt(plaintext, passphrase)
}

// Decrypt decrypts value with the default symmetric cipher.
func Decrypt(value *EncryptedValue, passphrase string) ([]byte, error) {
	return NewSymmetricCipher(rand.Reader).Decrypt(value, passphrase)
}
