package gcp

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/compute/apiv1/computepb"

	"github.com/boxctl/boxctl/types"
)

// GCP instance statuses normalized to the boxctl vocabulary. A stopped
// GCE instance reports TERMINATED even though it still exists.
var statusNames = map[string]string{
	"PROVISIONING": "pending",
	"STAGING":      "pending",
	"RUNNING":      "running",
	"STOPPING":     "stopping",
	"SUSPENDING":   "stopping",
	"SUSPENDED":    "stopped",
	"TERMINATED":   "stopped",
	"REPAIRING":    "pending",
}

// ConvertInstance maps a Compute Engine instance to the boxctl model.
// The instance name doubles as its identifier - every mutating GCE
// request addresses instances by name.
func ConvertInstance(instance *computepb.Instance, zone string) types.Instance {
	created, _ := time.Parse(time.RFC3339, instance.GetCreationTimestamp())
	return types.Instance{
		ID:          instance.GetName(),
		Name:        instance.GetName(),
		Provider:    "gcp",
		Zone:        zone,
		Status:      NormalizeStatus(instance.GetStatus()),
		MachineType: lastSegment(instance.GetMachineType()),
		PublicIP:    publicIP(instance),
		PrivateIP:   privateIP(instance),
		Tags:        types.TagsFromLabelMap(instance.GetLabels()),
		LaunchedAt:  created,
	}
}

// ConvertImage maps a Compute Engine image to the boxctl model.
func ConvertImage(image *computepb.Image) types.Image {
	created, _ := time.Parse(time.RFC3339, image.GetCreationTimestamp())
	return types.Image{
		ID:          lastSegment(image.GetSelfLink()),
		Name:        image.GetName(),
		Description: image.GetDescription(),
		CreatedAt:   created,
	}
}

// NormalizeStatus maps GCE status names to the shared vocabulary.
func NormalizeStatus(status string) string {
	if normalized, ok := statusNames[status]; ok {
		return normalized
	}
	return strings.ToLower(status)
}

// MachineTypePath builds the zonal machine type reference for inserts.
func MachineTypePath(zone, machineType string) string {
	return fmt.Sprintf("zones/%s/machineTypes/%s", zone, machineType)
}

// DiskPath builds the full zonal disk reference for attachments.
func DiskPath(project, zone, disk string) string {
	return fmt.Sprintf("projects/%s/zones/%s/disks/%s", project, zone, disk)
}

// MergeLabels overlays new labels on the existing set without mutating
// either input.
func MergeLabels(existing, updates map[string]string) map[string]string {
	merged := make(map[string]string, len(existing)+len(updates))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range updates {
		merged[k] = v
	}
	return merged
}

// NormalizeFilter rewrites an instance filter so it compares against the
// label-grammar form actually stored on GCE. The owner label is written
// sanitized, so the filter owner must be sanitized the same way.
func NormalizeFilter(filter types.InstanceFilter) types.InstanceFilter {
	filter.Owner = types.SanitizeLabelValue(filter.Owner)
	return filter
}

// SanitizeLabels maps arbitrary user tag pairs into label grammar.
func SanitizeLabels(tags map[string]string) map[string]string {
	labels := make(map[string]string, len(tags))
	for k, v := range tags {
		labels[types.SanitizeLabelKey(k)] = types.SanitizeLabelValue(v)
	}
	return labels
}

func publicIP(instance *computepb.Instance) string {
	for _, nic := range instance.GetNetworkInterfaces() {
		for _, access := range nic.GetAccessConfigs() {
			if access.GetNatIP() != "" {
				return access.GetNatIP()
			}
		}
	}
	return ""
}

func privateIP(instance *computepb.Instance) string {
	for _, nic := range instance.GetNetworkInterfaces() {
		if nic.GetNetworkIP() != "" {
			return nic.GetNetworkIP()
		}
	}
	return ""
}

func lastSegment(url string) string {
	if url == "" {
		return ""
	}
	parts := strings.Split(url, "/")
	return parts[len(parts)-1]
}
