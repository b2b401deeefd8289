// Package envvar expands environment variable placeholders in documents.
package envvar

import (
	"os"
	"regexp"
)

// pattern matches ${VAR_NAME} and ${VAR_NAME:-fallback} placeholders.
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(:-([^}]*))?\}`)

// Expand replaces ${VAR_NAME} placeholders with the value of the environment
// variable. ${VAR_NAME:-fallback} uses fallback when the variable is unset or
// empty. Unset variables without a fallback expand to an empty string.
func Expand(value string) string {
	if value == "" {
		return value
	}

	return pattern.ReplaceAllStringFunc(value, expandMatch)
}

// ExpandBytes is Expand for raw documents.
func ExpandBytes(data []byte) []byte {
	if len(data) == 0 {
		return data
	}

	return pattern.ReplaceAllFunc(data, func(match []byte) []byte {
		return []byte(expandMatch(string(match)))
	})
}

func expandMatch(match string) string {
	groups := pattern.FindStringSubmatch(match)

	value := os.Getenv(groups[1])
	if value == "" && groups[2] != "" {
		return groups[3]
	}

	return value
}
