package sealer

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

const receiptPrefix = "receipt"

var ErrInvalidToken = errors.New("invalid token")

// Sealer issues opaque tokens that only the holder of the key can open.
type Sealer struct {
	aead cipher.AEAD
}

// New builds a Sealer from a base64 encoded AES key of 16, 24 or 32 bytes.
func New(encodedKey string) (*Sealer, error) {
	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("decode seal key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("seal key: %w", err)
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Sealer{aead: aesgcm}, nil
}

// Seal encrypts the joined parts into a URL-safe token.
func (s *Sealer) Seal(parts ...string) (string, error) {
	plaintext := []byte(strings.Join(parts, ":"))

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ct := s.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(ct), nil
}

// Open reverses Seal and returns exactly n parts.
func (s *Sealer) Open(token string, n int) ([]string, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	nonceSize := s.aead.NonceSize()
	if len(data) < nonceSize {
		return nil, ErrInvalidToken
	}

	pt, err := s.aead.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return nil, ErrInvalidToken
	}

	parts := strings.SplitN(string(pt), ":", n)
	if len(parts) != n {
		return nil, ErrInvalidToken
	}
	return parts, nil
}

// ReceiptToken returns the citizen facing token for a booking.
func (s *Sealer) ReceiptToken(bookingID string) (string, error) {
	return s.Seal(receiptPrefix, bookingID)
}

// BookingIDFromReceipt opens a receipt token and returns the booking id.
func (s *Sealer) BookingIDFromReceipt(token string) (string, error) {
	parts, err := s.Open(token, 2)
	if err != nil {
		return "", err
	}
	if parts[0] != receiptPrefix || parts[1] == "" {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}
