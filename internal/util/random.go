// Package util holds small shared helpers.
package util

import (
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"
)

const (
	// OrderNumberCharset is used for human-facing order numbers.
	OrderNumberCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// TokenCharset is used for opaque secrets such as QR tokens.
	TokenCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// RandomString returns a cryptographically random string of length n drawn
// from charset.
func RandomString(n int, charset string) (string, error) {
	if n <= 0 || len(charset) == 0 {
		return "", errors.New("invalid random string parameters")
	}

	max := big.NewInt(int64(len(charset)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", errors.Wrap(err, "failed to read random bytes")
		}
		out[i] = charset[idx.Int64()]
	}

	return string(out), nil
}
