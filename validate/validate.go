// Package validate holds the input predicates applied before any
// provider call. All checks are pure; nothing is sanitized or coerced.
package validate

import (
	"fmt"
	"regexp"
	"strings"
)

const maxNameLength = 63

var (
	namePattern   = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?$`)
	imagePattern  = regexp.MustCompile(`^ami-[0-9a-f]{8,17}$`)
	volumePattern = regexp.MustCompile(`^vol-[0-9a-f]{8,17}$`)
)

// InstanceName accepts alphanumeric names with internal hyphens, at most
// 63 characters. Leading or trailing hyphens are rejected.
func InstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("instance name is empty")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("instance name %q exceeds %d characters", name, maxNameLength)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("instance name %q must be alphanumeric with internal hyphens only", name)
	}
	return nil
}

// ImageID accepts AWS AMI identifiers.
func ImageID(id string) error {
	if !imagePattern.MatchString(id) {
		return fmt.Errorf("image id %q is not a valid AMI identifier (ami-<8..17 hex>)", id)
	}
	return nil
}

// VolumeID accepts AWS EBS volume identifiers.
func VolumeID(id string) error {
	if !volumePattern.MatchString(id) {
		return fmt.Errorf("volume id %q is not a valid EBS identifier (vol-<8..17 hex>)", id)
	}
	return nil
}

// DiskName accepts GCP disk names, which follow the instance name rules.
func DiskName(name string) error {
	if err := InstanceName(name); err != nil {
		return fmt.Errorf("disk name %q must be alphanumeric with internal hyphens, at most %d characters", name, maxNameLength)
	}
	return nil
}

// TagPair parses a key=value argument. The key must be non-empty and the
// first = splits key from value.
func TagPair(arg string) (key, value string, err error) {
	key, value, found := strings.Cut(arg, "=")
	if !found {
		return "", "", fmt.Errorf("tag %q must be key=value", arg)
	}
	if key == "" {
		return "", "", fmt.Errorf("tag %q has an empty key", arg)
	}
	return key, value, nil
}
