package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var snapshotNameRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// ValidateVMIdentifier checks a VM identifier (numeric vmid or VM name)
// before it is sent to the cluster.
func ValidateVMIdentifier(identifier string) error {
	if identifier == "" {
		return fmt.Errorf("VM identifier cannot be empty")
	}

	if strings.ContainsAny(identifier, " \t/") {
		return fmt.Errorf("VM identifier must not contain whitespace or slashes")
	}

	return nil
}

// ValidateSnapshotName checks a snapshot name against the rules the API
// enforces: it must start with a letter and contain only alphanumeric
// characters, hyphens, and underscores.
func ValidateSnapshotName(name string) error {
	if name == "" {
		return fmt.Errorf("snapshot name cannot be empty")
	}

	if len(name) > 40 {
		return fmt.Errorf("snapshot name must be at most 40 characters")
	}

	if !snapshotNameRe.MatchString(name) {
		return fmt.Errorf("snapshot name must start with a letter and contain only alphanumeric characters, hyphens, and underscores")
	}

	return nil
}
