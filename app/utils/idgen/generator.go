package idgen

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
)

// GenerateSecureID returns a public identifier of the form "<prefix>_<random>"
// where the random part is a URL-safe base64 string of the given length.
func GenerateSecureID(prefix string, length int) (string, error) {
	// base64 expands by 4/3, over-allocate slightly and truncate.
	bytes := make([]byte, (length*3/4)+2)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	encoded := strings.TrimRight(base64.URLEncoding.EncodeToString(bytes), "=")
	if len(encoded) > length {
		encoded = encoded[:length]
	}

	return fmt.Sprintf("%s_%s", prefix, encoded), nil
}
