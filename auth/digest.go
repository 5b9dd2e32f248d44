package auth

import (
	"encoding/hex"
	"strconv"

	"github.com/go-crypt/x/blake2b"
)

// digest produces a deterministic digest of a password. BLAKE2b is
// preferred; if the primitive cannot be constructed, a simple numeric hash
// keeps sign-up and sign-in self-consistent. The fallback is stable, not
// cryptographically meaningful.
func digest(password string) string {
	h, err := blake2b.New(32, nil)
	if err != nil {
		return fallbackDigest(password)
	}
	h.Write([]byte(password))
	return hex.EncodeToString(h.Sum(nil))
}

// fallbackDigest is a 32-bit rolling hash over the password bytes.
func fallbackDigest(password string) string {
	var hash int32
	for _, c := range []byte(password) {
		hash = (hash << 5) - hash + int32(c)
	}
	return strconv.FormatInt(int64(hash), 10)
}
