package protocol

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// BootstrapKey is the fixed AES-128 key used before a session completes auth().
var BootstrapKey = []byte{
	0x09, 0x76, 0x28, 0x34, 0x3F, 0xE9, 0x9E, 0x23,
	0x76, 0x5C, 0x15, 0x13, 0xAC, 0xCF, 0x8B, 0x02,
}

// FixedIV is the AES-CBC initialization vector; it never changes, including
// after a rekey.
var FixedIV = []byte{
	0x56, 0x2E, 0x17, 0x99, 0x6D, 0x09, 0x3D, 0x28,
	0xDD, 0xB3, 0xBA, 0x69, 0x5A, 0x2E, 0x6F, 0x58,
}

// CipherEngine holds the session's AES-128-CBC key and performs
// encrypt/decrypt with the fixed IV. It has exactly one backend — stdlib
// crypto/aes + crypto/cipher — chosen once, not swapped at runtime.
type CipherEngine struct {
	key []byte
}

// NewCipherEngine builds an engine seeded with the bootstrap key, as used by
// every handle prior to authentication.
func NewCipherEngine() *CipherEngine {
	key := make([]byte, len(BootstrapKey))
	copy(key, BootstrapKey)
	return &CipherEngine{key: key}
}

// SetKey replaces the session key, as done once auth() succeeds.
func (c *CipherEngine) SetKey(key []byte) error {
	if len(key) == 0 || len(key)%16 != 0 {
		return fmt.Errorf("protocol: session key length %d is not a multiple of 16", len(key))
	}
	c.key = append([]byte(nil), key...)
	return nil
}

// Key returns the current session key.
func (c *CipherEngine) Key() []byte {
	return append([]byte(nil), c.key...)
}

// Encrypt encrypts plaintext under the current key and the fixed IV. A fresh
// CBC block mode is constructed per call since the IV is constant across
// calls but cipher.BlockMode is stateful once used.
func (c *CipherEngine) Encrypt(plaintext []byte) ([]byte, error) {
	if len(plaintext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("protocol: plaintext length %d is not a multiple of %d", len(plaintext), aes.BlockSize)
	}
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("protocol: aes key setup: %w", err)
	}
	out := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, FixedIV).CryptBlocks(out, plaintext)
	return out, nil
}

// Decrypt decrypts ciphertext under the current key and the fixed IV.
func (c *CipherEngine) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("protocol: ciphertext length %d is not a multiple of %d", len(ciphertext), aes.BlockSize)
	}
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("protocol: aes key setup: %w", err)
	}
	out := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, FixedIV).CryptBlocks(out, ciphertext)
	return out, nil
}

// PadPKCS0 pads data to a multiple of 16 bytes with zero bytes, as the outer
// framer does before encrypting (not PKCS#7 — the device expects zero pad).
func PadPKCS0(data []byte) []byte {
	rem := len(data) % aes.BlockSize
	if rem == 0 {
		return data
	}
	return append(data, make([]byte, aes.BlockSize-rem)...)
}
