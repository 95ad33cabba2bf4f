package algod

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"strings"
)

// Signer holds the key of the account that pays rewards out.
type Signer struct {
	key     ed25519.PrivateKey
	address Address
}

// NewSigner wraps an ed25519 private key.
func NewSigner(key ed25519.PrivateKey) (*Signer, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("private key must be %d bytes, got %d", ed25519.PrivateKeySize, len(key))
	}
	s := &Signer{key: key}
	copy(s.address[:], key.Public().(ed25519.PublicKey))
	return s, nil
}

// ParseSigner decodes a base64 32-byte seed or 64-byte private key.
// Space-separated mnemonics are rejected with a descriptive error.
func ParseSigner(encoded string) (*Signer, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, fmt.Errorf("sender key is empty")
	}
	if strings.Contains(encoded, " ") {
		return nil, fmt.Errorf("mnemonic sender keys are not supported, export the key as base64")
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode sender key: %w", err)
	}
	switch len(raw) {
	case ed25519.SeedSize:
		return NewSigner(ed25519.NewKeyFromSeed(raw))
	case ed25519.PrivateKeySize:
		return NewSigner(ed25519.PrivateKey(raw))
	default:
		return nil, fmt.Errorf("sender key must decode to %d or %d bytes, got %d", ed25519.SeedSize, ed25519.PrivateKeySize, len(raw))
	}
}

// Address returns the signing account.
func (s *Signer) Address() Address {
	return s.address
}

// Sign signs a transaction and returns its canonical signed encoding.
func (s *Signer) Sign(txn *PaymentTxn) ([]byte, error) {
	msg, err := txn.bytesToSign()
	if err != nil {
		return nil, err
	}
	sig := ed25519.Sign(s.key, msg)
	return encodeCanonical(signedTxn{Sig: sig, Txn: txn})
}
