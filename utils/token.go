package utils

import (
	"fmt"
	"math/rand"
)

// GenerateMFACode returns a zero-padded six-digit login code.
func GenerateMFACode() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}
