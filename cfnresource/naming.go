package cfnresource

import (
	"fmt"
	"regexp"
)

const (
	// Tag values, security group names and logical IDs share the same upper bound.
	MaxNameLength      = 255
	MaxStackNameLength = 128
)

var stackNamePattern = regexp.MustCompile(`^[a-zA-Z][-a-zA-Z0-9]*$`)

func ValidateNameLength(kind string, name string, limit int) error {
	if len(name) > limit {
		return fmt.Errorf("%s(=%s) will be %d characters long. It exceeds the AWS limit of %d characters", kind, name, len(name), limit)
	}
	return nil
}

func ValidateStackName(name string) error {
	if !stackNamePattern.MatchString(name) {
		return fmt.Errorf("stack name(=%s) must start with a letter and contain only alphanumeric characters and hyphens", name)
	}
	return ValidateNameLength("stack name", name, MaxStackNameLength)
}

func ValidateLogicalID(id string) error {
	if id == "" {
		return fmt.Errorf("logical ID must contain at least one alphanumeric character")
	}
	return ValidateNameLength("logical ID", id, MaxNameLength)
}
