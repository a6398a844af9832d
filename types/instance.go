package types

import "time"

// Instance represents a developer cloud instance. Instances are never
// stored locally - the provider's control plane owns all state.
type Instance struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Provider    string    `json:"provider"`
	Zone        string    `json:"zone"`
	Status      string    `json:"status"`
	MachineType string    `json:"machine_type"`
	ImageID     string    `json:"image_id,omitempty"`
	PublicIP    string    `json:"public_ip,omitempty"`
	PrivateIP   string    `json:"private_ip,omitempty"`
	Tags        Tags      `json:"tags"`
	LaunchedAt  time.Time `json:"launched_at"`
}

// Image is a machine image returned by an image search.
type Image struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// InstanceFilter scopes instance queries. Name matching is exact against
// the fully qualified name.
type InstanceFilter struct {
	Owner  string   `json:"owner,omitempty"`
	Name   string   `json:"name,omitempty"`
	States []string `json:"states,omitempty"`
}

// Matches checks if an instance satisfies the filter.
func (i Instance) Matches(f InstanceFilter) bool {
	if f.Owner != "" && i.Tags.Owner != f.Owner {
		return false
	}
	if f.Name != "" && i.Name != f.Name {
		return false
	}
	if len(f.States) > 0 {
		found := false
		for _, s := range f.States {
			if i.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Expired reports whether the instance's expiration tag has passed.
func (i Instance) Expired(now time.Time) bool {
	return ExpiredTag(i.Tags.ExpiresOn, now)
}

// Addr returns the address to connect to, preferring the public IP.
func (i Instance) Addr() string {
	if i.PublicIP != "" {
		return i.PublicIP
	}
	return i.PrivateIP
}
