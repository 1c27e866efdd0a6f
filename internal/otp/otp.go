// Package otp generates numeric one-time codes and their expiry times.
package otp

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
	"strconv"
	"time"
)

const (
	// DefaultLength is the number of digits in a generated code.
	DefaultLength = 6
	// DefaultTTLMinutes is how long a code stays valid.
	DefaultTTLMinutes = 10
	maxLength         = 18
)

// ErrInvalidLength is returned for code lengths that do not fit in an int64.
var ErrInvalidLength = errors.New("otp: length must be between 1 and 18")

// Generator produces codes uniformly distributed over [10^(n-1), 10^n - 1],
// so a code never has a leading zero.
type Generator struct {
	rand io.Reader
	now  func() time.Time
}

// NewGenerator returns a Generator backed by crypto/rand and the wall clock.
func NewGenerator() *Generator {
	return &Generator{
		rand: rand.Reader,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// WithClock returns a copy of g that reads the current time from now.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	c := *g
	c.now = now
	return &c
}

// Generate returns a numeric code with length digits. A non-positive length
// selects DefaultLength.
func (g *Generator) Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}
	if length > maxLength {
		return "", ErrInvalidLength
	}
	low := int64(1)
	for i := 1; i < length; i++ {
		low *= 10
	}
	n, err := rand.Int(g.rand, big.NewInt(9*low))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(low+n.Int64(), 10), nil
}

// Expiry returns now plus minutes. A non-positive value selects DefaultTTLMinutes.
func (g *Generator) Expiry(minutes int) time.Time {
	if minutes <= 0 {
		minutes = DefaultTTLMinutes
	}
	return g.now().Add(time.Duration(minutes) * time.Minute)
}
