package prompt

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pders01/factorlab/internal/workspace"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidName accepts non-empty strings of letters, digits, underscores and hyphens
func ValidName(text string) error {
	if !namePattern.MatchString(text) {
		if text == "" {
			return fmt.Errorf("a name is required")
		}
		return fmt.Errorf("%s contains invalid characters", text)
	}
	return nil
}

// NewFileName returns a validator accepting names for which no dir/name+suffix exists yet
func NewFileName(ws *workspace.Workspace, dir string, suffixes ...string) func(string) error {
	return func(text string) error {
		if err := ValidName(text); err != nil {
			return err
		}
		for _, suffix := range suffixes {
			if ws.Exists(dir, text+suffix) {
				return fmt.Errorf("%s is an existing filename", text+suffix)
			}
		}
		return nil
	}
}

// NumberInRange returns a validator accepting plain digit strings within [min, max]
func NumberInRange(min, max int) func(string) error {
	return func(text string) error {
		for _, r := range text {
			if r < '0' || r > '9' {
				return fmt.Errorf("%s is not a valid number", text)
			}
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			return fmt.Errorf("%s is not a valid number", text)
		}
		if n < min || n > max {
			return fmt.Errorf("%d is outside %d-%d", n, min, max)
		}
		return nil
	}
}
