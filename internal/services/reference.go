package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"
)

const (
	referencePrefix   = "ORD-"
	referenceAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	referenceSuffix   = 8
)

var referencePattern = regexp.MustCompile(`^ORD-\d{14}-[0-9A-Z]{8}$`)

// GenerateReference returns ORD-<UTC YYYYMMDDHHMMSS>-<8 random [0-9A-Z]>.
func GenerateReference() (string, error) {
	return newReference(time.Now())
}

func newReference(now time.Time) (string, error) {
	suffix := make([]byte, referenceSuffix)
	max := big.NewInt(int64(len(referenceAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate order reference: %w", err)
		}
		suffix[i] = referenceAlphabet[n.Int64()]
	}
	return referencePrefix + now.UTC().Format("20060102150405") + "-" + string(suffix), nil
}

func ValidReference(ref string) bool {
	return referencePattern.MatchString(ref)
}
