// Package joincode generates the short codes people type to join a family.
package joincode

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// Length of a join code
const Length = 8

// alphabet excludes visually ambiguous characters (0/O, 1/I)
const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Generate returns a random 8-character join code. Uniqueness is not
// guaranteed here; the caller persists the code under a unique constraint
// and regenerates on conflict.
func Generate() (string, error) {
	code := make([]byte, Length)
	for i := 0; i < Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		code[i] = alphabet[num.Int64()]
	}
	return string(code), nil
}

// Normalize prepares a user-typed code for lookup
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
