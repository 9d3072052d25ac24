package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const referralAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateReferralCode builds a code like TRIP-7KQ2MX from the user's name
// prefix and random characters without ambiguous letters
func GenerateReferralCode(name string) (string, error) {
	prefix := "TRIP"
	cleaned := strings.ToUpper(strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return r
		}
		return -1
	}, name))
	if len(cleaned) >= 3 {
		prefix = cleaned
		if len(prefix) > 4 {
			prefix = prefix[:4]
		}
	}

	b := make([]byte, 6)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referralAlphabet))))
		if err != nil {
			return "", err
		}
		b[i] = referralAlphabet[n.Int64()]
	}
	return prefix + "-" + string(b), nil
}
