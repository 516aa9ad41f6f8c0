package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes). Used as
// the public identifier on every entity.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewEnrollmentCode derives a human-readable enrollment code such as
// "ENR-20250829-3f2a" from the enrollment date plus 2 random bytes.
func NewEnrollmentCode(day time.Time) string {
	b := make([]byte, 2)
	_, _ = rand.Read(b)
	return fmt.Sprintf("ENR-%s-%s", day.Format("20060102"), hex.EncodeToString(b))
}
