package types

import (
	"regexp"
	"strings"
)

// Tag keys stamped on every instance boxctl creates. AWS tags keep the
// colon-namespaced form; GCP labels only allow lowercase letters, digits,
// underscore and dash, so they get the underscore form.
const (
	TagOwner     = "boxctl:owner"
	TagExpiresOn = "boxctl:expires-on"
	TagManagedBy = "managed-by"
	TagName      = "Name"

	LabelOwner     = "boxctl_owner"
	LabelExpiresOn = "boxctl_expires_on"
	LabelManagedBy = "managed_by"

	// ManagedByValue marks instances created by boxctl so external
	// cleanup automation can find them.
	ManagedByValue = "boxctl"
)

// Tags is the fixed set boxctl stamps on resources.
// No maps in the domain model - everything is explicit.
type Tags struct {
	Name      string `json:"name,omitempty"`
	Owner     string `json:"owner,omitempty"`
	ExpiresOn string `json:"expires_on,omitempty"`
	ManagedBy string `json:"managed_by,omitempty"`
}

// IsManaged reports whether the resource carries the boxctl marker.
func (t Tags) IsManaged() bool {
	return t.ManagedBy == ManagedByValue
}

// ToTagMap serializes to AWS tag syntax.
func (t Tags) ToTagMap() map[string]string {
	tags := make(map[string]string)
	if t.Name != "" {
		tags[TagName] = t.Name
	}
	if t.Owner != "" {
		tags[TagOwner] = t.Owner
	}
	if t.ExpiresOn != "" {
		tags[TagExpiresOn] = t.ExpiresOn
	}
	if t.ManagedBy != "" {
		tags[TagManagedBy] = t.ManagedBy
	}
	return tags
}

// TagsFromTagMap parses AWS tag syntax back into structured tags.
func TagsFromTagMap(tagMap map[string]string) Tags {
	return Tags{
		Name:      tagMap[TagName],
		Owner:     tagMap[TagOwner],
		ExpiresOn: tagMap[TagExpiresOn],
		ManagedBy: tagMap[TagManagedBy],
	}
}

const maxLabelLength = 63

var labelUnsafe = regexp.MustCompile(`[^a-z0-9_-]`)

// SanitizeLabelValue maps an arbitrary tag value into GCP label value
// grammar: lowercase, restricted to [a-z0-9_-], at most 63 characters.
// An AWS-valid owner like "Jane.Doe" becomes "jane-doe".
func SanitizeLabelValue(value string) string {
	value = labelUnsafe.ReplaceAllString(strings.ToLower(value), "-")
	if len(value) > maxLabelLength {
		value = value[:maxLabelLength]
	}
	return value
}

// SanitizeLabelKey is SanitizeLabelValue plus the key rule that the
// first character must be a lowercase letter.
func SanitizeLabelKey(key string) string {
	key = SanitizeLabelValue(key)
	if key == "" || key[0] < 'a' || key[0] > 'z' {
		key = "x" + key
	}
	if len(key) > maxLabelLength {
		key = key[:maxLabelLength]
	}
	return key
}

// ToLabelMap serializes to GCP label syntax, sanitizing every value into
// label grammar. The instance name is carried by the instance resource
// itself, not a label.
func (t Tags) ToLabelMap() map[string]string {
	labels := make(map[string]string)
	if t.Owner != "" {
		labels[LabelOwner] = SanitizeLabelValue(t.Owner)
	}
	if t.ExpiresOn != "" {
		labels[LabelExpiresOn] = SanitizeLabelValue(t.ExpiresOn)
	}
	if t.ManagedBy != "" {
		labels[LabelManagedBy] = SanitizeLabelValue(t.ManagedBy)
	}
	return labels
}

// TagsFromLabelMap parses GCP label syntax back into structured tags.
func TagsFromLabelMap(labels map[string]string) Tags {
	return Tags{
		Owner:     labels[LabelOwner],
		ExpiresOn: labels[LabelExpiresOn],
		ManagedBy: labels[LabelManagedBy],
	}
}
