// Package algod talks to an Algorand-family node over its REST API and
// builds, signs and submits payment transactions.
package algod

import (
	"bytes"
	"crypto/sha512"
	"encoding/base32"
	"errors"
	"fmt"
)

const (
	checksumLen = 4
	// AddressLen is the length of a textual account address.
	AddressLen = 58
)

var (
	addressEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

	// ErrInvalidAddress is returned for addresses that fail decoding or checksum.
	ErrInvalidAddress = errors.New("invalid address")
)

// Address is a 32-byte ed25519 public key identifying an account.
type Address [32]byte

// DecodeAddress parses a textual address and verifies its checksum.
func DecodeAddress(s string) (Address, error) {
	var a Address
	if len(s) != AddressLen {
		return a, fmt.Errorf("%w: length %d", ErrInvalidAddress, len(s))
	}
	raw, err := addressEncoding.DecodeString(s)
	if err != nil {
		return a, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(raw) != len(a)+checksumLen {
		return a, fmt.Errorf("%w: decoded length %d", ErrInvalidAddress, len(raw))
	}
	copy(a[:], raw[:len(a)])
	if !bytes.Equal(a.checksum(), raw[len(a):]) {
		return Address{}, fmt.Errorf("%w: checksum mismatch", ErrInvalidAddress)
	}
	return a, nil
}

// IsValidAddress reports whether s decodes to an address with a valid checksum.
func IsValidAddress(s string) bool {
	_, err := DecodeAddress(s)
	return err == nil
}

// String renders the address as base32(pk || checksum) without padding.
func (a Address) String() string {
	buf := make([]byte, 0, len(a)+checksumLen)
	buf = append(buf, a[:]...)
	buf = append(buf, a.checksum()...)
	return addressEncoding.EncodeToString(buf)
}

// IsZero reports whether the address is all zero bytes.
func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) checksum() []byte {
	sum := sha512.Sum512_256(a[:])
	return sum[len(sum)-checksumLen:]
}
