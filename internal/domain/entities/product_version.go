package entities

import (
	"fmt"
	"regexp"
)

var productVersionPattern = regexp.MustCompile(`^\d+\.\d+$`)

// ValidateProductVersion accepts versions in the X.Y format, e.g. 3.3, 4.4 or 4.5.
// Leading zeros are kept as typed since the version doubles as a branch name.
func ValidateProductVersion(version string) error {
	if !productVersionPattern.MatchString(version) {
		return fmt.Errorf(
			"%w: unrecognised version format %q, please use format X.Y instead, e.g. 3.3, 4.4, 4.5",
			ErrInvalidProductVersion, version,
		)
	}
	return nil
}
