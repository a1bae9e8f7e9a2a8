// utils/generate.go
package utils

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// VIN alphabet excludes I, O and Q like real-world VINs
const vinChars = "ABCDEFGHJKLMNPRSTUVWXYZ0123456789"

// GenerateVIN returns a random 17-character vehicle identification number
func GenerateVIN() (string, error) {
	var sb strings.Builder
	max := big.NewInt(int64(len(vinChars)))
	for i := 0; i < 17; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(vinChars[n.Int64()])
	}
	return sb.String(), nil
}

var slugPattern = regexp.MustCompile(`[\s\W-]+`)

// GenerateSlug turns a category name into a URL-safe slug
func GenerateSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// GenerateResetToken returns an opaque single-use password reset token
func GenerateResetToken() string {
	return uuid.NewString()
}
