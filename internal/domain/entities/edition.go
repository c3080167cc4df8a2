package entities

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultEditions are the product editions, each backed by a repository of the same name.
var DefaultEditions = []string{"oss", "content", "experience", "commerce"} //nolint:gochecknoglobals // fixed product line-up

// ParseEditions splits a comma separated edition list, dropping blanks and duplicates,
// and rejects any edition outside of known.
func ParseEditions(raw string, known []string) ([]string, error) {
	var editions []string
	for _, part := range strings.Split(raw, ",") {
		edition := strings.TrimSpace(part)
		if edition == "" || slices.Contains(editions, edition) {
			continue
		}
		editions = append(editions, edition)
	}

	if len(editions) == 0 {
		return nil, fmt.Errorf("%w: no edition given, please choose one of: %s", ErrUnknownEdition, strings.Join(known, ","))
	}

	if err := ValidateEditions(editions, known); err != nil {
		return nil, err
	}
	return editions, nil
}

// ValidateEditions fails on the first edition that is not in known.
func ValidateEditions(editions, known []string) error {
	for _, edition := range editions {
		if !slices.Contains(known, edition) {
			return fmt.Errorf(
				"%w: %s, please choose one of: %s",
				ErrUnknownEdition, edition, strings.Join(known, ","),
			)
		}
	}
	return nil
}
