package validate

import (
	"fmt"
	"regexp"
)

const (
	// ModelIDRegex matches custom-model identifiers, which are uuids.
	ModelIDRegex = `^[a-z0-9-]{36}$`
)

// Argument validates a string argument against a regex.
func Argument(name string, value string, regex string) error {
	// validate the value using regex
	if !regexp.MustCompile(regex).MatchString(value) {
		return fmt.Errorf("%s (%s) is not of the right format: %s", name, value, regex)
	}
	return nil
}

// NotEmpty validates an argument to be a non-empty string.
func NotEmpty(name string, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required but not provided", name)
	}
	return nil
}
