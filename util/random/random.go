package random

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Uint64 returns a cryptographically random uint64.
func Uint64() (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(rand.Reader, buf[:]); err != nil {
		return 0, errors.WithStack(err)
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// Uint32 returns a cryptographically random uint32.
func Uint32() (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(rand.Reader, buf[:]); err != nil {
		return 0, errors.WithStack(err)
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}
