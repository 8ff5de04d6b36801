package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxIDSize bounds page IDs accepted from requests.
const MaxIDSize = 512

// ErrInvalidID is returned for page IDs that cannot name a page.
var ErrInvalidID = errors.New("invalid page id")

// CleanID validates a page ID received from outside (URL, tool call) and
// trims surrounding slashes. IDs are rejected rather than repaired.
func CleanID(id string) (string, error) {
	if len(id) > MaxIDSize {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInvalidID, len(id), MaxIDSize)
	}
	if !utf8.ValidString(id) {
		return "", fmt.Errorf("%w: invalid UTF-8", ErrInvalidID)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return "", fmt.Errorf("%w: control character %U", ErrInvalidID, r)
		}
	}

	id = strings.Trim(id, "/")
	if id == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidID)
	}
	for _, seg := range strings.Split(id, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
		}
	}
	return id, nil
}
