// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
)

const trackingIDPrefix = "welo_"

func GenerateRandomString(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}

	return string(b), nil
}

// GenerateTrackingID mints the opaque identifier distributed inside the badge
// snippet and embedded in public page URLs. Callers must persist it once and
// reuse it thereafter.
func GenerateTrackingID() (string, error) {
	randomPart, err := GenerateRandomString(24)
	if err != nil {
		return "", err
	}
	return trackingIDPrefix + randomPart, nil
}

func GenerateVerificationCode() (string, error) {
	return GenerateRandomString(32)
}

// HashString is used to pseudonymize client IPs before storage.
func HashString(input string) string {
	hasher := sha256.New()
	hasher.Write([]byte(input))
	return hex.EncodeToString(hasher.Sum(nil))
}
