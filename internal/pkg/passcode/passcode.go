package passcode

import (
	"crypto/rand"
	"errors"
)

// ErrInvalidLength is returned when the configured code length is not positive.
var ErrInvalidLength = errors.New("passcode: length must be greater than zero")

// Generator produces a fresh one-time code on each call.
type Generator interface {
	Generate() (string, error)
}

// Numeric generates fixed-length decimal codes from crypto/rand.
type Numeric struct {
	length int
}

// DefaultLength is used when NewNumeric receives a non-positive length.
const DefaultLength = 6

// NewNumeric returns a Numeric generator producing codes of the given length.
func NewNumeric(length int) *Numeric {
	if length < 1 {
		length = DefaultLength
	}
	return &Numeric{length: length}
}

// Generate returns a uniformly random decimal string.
//
// Digits are drawn by rejection sampling so no digit is more likely than
// another (256 % 10 != 0).
func (n *Numeric) Generate() (string, error) {
	if n.length < 1 {
		return "", ErrInvalidLength
	}

	const maxAccepted = 250 // largest multiple of 10 below 256

	out := make([]byte, 0, n.length)
	buf := make([]byte, n.length)
	for len(out) < n.length {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= maxAccepted {
				continue
			}
			out = append(out, '0'+b%10)
			if len(out) == n.length {
				break
			}
		}
	}

	return string(out), nil
}
