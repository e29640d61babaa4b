package utils

import (
	"crypto/rand"
	"math/big"
)

const pidAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GeneratePid returns a short random public identifier used in URLs
// (pets, posts, comments). 8 base62 chars ~ 2^47 values.
func GeneratePid(length int) string {
	b := make([]byte, length)
	max := big.NewInt(int64(len(pidAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the process is in serious trouble
			panic(err)
		}
		b[i] = pidAlphabet[n.Int64()]
	}
	return string(b)
}
