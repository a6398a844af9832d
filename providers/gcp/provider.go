// Package gcp drives Google Compute Engine through the Cloud Compute API.
// The boxctl tag triple is carried as instance labels.
package gcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	compute "cloud.google.com/go/compute/apiv1"
	"cloud.google.com/go/compute/apiv1/computepb"
	"google.golang.org/api/iterator"
	"google.golang.org/protobuf/proto"

	"github.com/boxctl/boxctl/providers"
	"github.com/boxctl/boxctl/types"
)

const (
	defaultMachineType = "e2-medium"
	defaultImage       = "projects/debian-cloud/global/images/family/debian-12"
)

// Public image projects searched alongside the configured project.
var imageProjects = []string{"debian-cloud", "ubuntu-os-cloud"}

func init() {
	providers.Register("gcp", New)
}

// Provider implements providers.CloudProvider over Compute Engine.
type Provider struct {
	instances *compute.InstancesClient
	images    *compute.ImagesClient
	project   string
	zone      string
}

// New creates a GCP provider using Application Default Credentials.
func New(ctx context.Context, opts providers.Options) (providers.CloudProvider, error) {
	instancesClient, err := compute.NewInstancesRESTClient(ctx)
	if err != nil {
		return nil, wrapAuthError("creating compute client", err)
	}
	imagesClient, err := compute.NewImagesRESTClient(ctx)
	if err != nil {
		instancesClient.Close()
		return nil, wrapAuthError("creating images client", err)
	}
	return &Provider{
		instances: instancesClient,
		images:    imagesClient,
		project:   opts.Project,
		zone:      opts.Zone,
	}, nil
}

// wrapAuthError translates common credential failures into actionable
// messages instead of raw API errors.
func wrapAuthError(action string, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "could not find default credentials"):
		return fmt.Errorf("%s: no GCP credentials found; run: gcloud auth application-default login", action)
	case strings.Contains(msg, "token expired"):
		return fmt.Errorf("%s: GCP credentials have expired; run: gcloud auth application-default login", action)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}

func (p *Provider) Name() string {
	return "gcp"
}

func (p *Provider) Describe() string {
	return fmt.Sprintf("provider=gcp project=%s zone=%s", p.project, p.zone)
}

// ListInstances lists the zone and filters client-side on the boxctl
// labels. GCP list filters don't cover every label expression we need.
func (p *Provider) ListInstances(ctx context.Context, filter types.InstanceFilter) ([]types.Instance, error) {
	req := &computepb.ListInstancesRequest{
		Project: p.project,
		Zone:    p.zone,
	}
	filter = NormalizeFilter(filter)

	var instances []types.Instance
	it := p.instances.List(ctx, req)
	for {
		instance, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, wrapAuthError("listing instances", err)
		}
		converted := ConvertInstance(instance, p.zone)
		if !converted.Tags.IsManaged() {
			continue
		}
		if converted.Matches(filter) {
			instances = append(instances, converted)
		}
	}
	return instances, nil
}

// CreateInstance inserts one instance with labels applied at creation.
func (p *Provider) CreateInstance(ctx context.Context, req providers.CreateRequest) (*types.Instance, error) {
	machineType := req.MachineType
	if machineType == "" {
		machineType = defaultMachineType
	}

	initParams := &computepb.AttachedDiskInitializeParams{
		SourceImage: proto.String(p.resolveImage(req.ImageID)),
	}
	if req.VolumeGB > 0 {
		initParams.DiskSizeGb = proto.Int64(int64(req.VolumeGB))
	}

	insert := &computepb.InsertInstanceRequest{
		Project: p.project,
		Zone:    p.zone,
		InstanceResource: &computepb.Instance{
			Name:        proto.String(req.Name),
			MachineType: proto.String(MachineTypePath(p.zone, machineType)),
			Labels:      req.Tags.ToLabelMap(),
			Disks: []*computepb.AttachedDisk{
				{
					Boot:             proto.Bool(true),
					AutoDelete:       proto.Bool(true),
					InitializeParams: initParams,
				},
			},
			NetworkInterfaces: []*computepb.NetworkInterface{
				{
					Network: proto.String("global/networks/default"),
					AccessConfigs: []*computepb.AccessConfig{
						{
							Type: proto.String(computepb.AccessConfig_ONE_TO_ONE_NAT.String()),
							Name: proto.String("External NAT"),
						},
					},
				},
			},
		},
	}

	op, err := p.instances.Insert(ctx, insert)
	if err != nil {
		return nil, fmt.Errorf("inserting instance %s: %w", req.Name, err)
	}
	if err := op.Wait(ctx); err != nil {
		return nil, fmt.Errorf("inserting instance %s: %w", req.Name, err)
	}

	created, err := p.instances.Get(ctx, &computepb.GetInstanceRequest{
		Project:  p.project,
		Zone:     p.zone,
		Instance: req.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching created instance %s: %w", req.Name, err)
	}
	instance := ConvertInstance(created, p.zone)
	return &instance, nil
}

// resolveImage maps the --image argument to a source image path. Full
// paths pass through; bare names refer to images in the configured project.
func (p *Provider) resolveImage(image string) string {
	switch {
	case image == "":
		return defaultImage
	case strings.Contains(image, "/"):
		return image
	default:
		return fmt.Sprintf("projects/%s/global/images/%s", p.project, image)
	}
}

func (p *Provider) StartInstance(ctx context.Context, id string) error {
	op, err := p.instances.Start(ctx, &computepb.StartInstanceRequest{
		Project:  p.project,
		Zone:     p.zone,
		Instance: id,
	})
	if err != nil {
		return fmt.Errorf("starting instance %s: %w", id, err)
	}
	return op.Wait(ctx)
}

func (p *Provider) StopInstance(ctx context.Context, id string) error {
	op, err := p.instances.Stop(ctx, &computepb.StopInstanceRequest{
		Project:  p.project,
		Zone:     p.zone,
		Instance: id,
	})
	if err != nil {
		return fmt.Errorf("stopping instance %s: %w", id, err)
	}
	return op.Wait(ctx)
}

func (p *Provider) DeleteInstance(ctx context.Context, id string) error {
	op, err := p.instances.Delete(ctx, &computepb.DeleteInstanceRequest{
		Project:  p.project,
		Zone:     p.zone,
		Instance: id,
	})
	if err != nil {
		return fmt.Errorf("deleting instance %s: %w", id, err)
	}
	return op.Wait(ctx)
}

// AttachVolume attaches an existing zonal disk by name.
func (p *Provider) AttachVolume(ctx context.Context, id, volume string) error {
	op, err := p.instances.AttachDisk(ctx, &computepb.AttachDiskInstanceRequest{
		Project:  p.project,
		Zone:     p.zone,
		Instance: id,
		AttachedDiskResource: &computepb.AttachedDisk{
			Source:     proto.String(DiskPath(p.project, p.zone, volume)),
			AutoDelete: proto.Bool(false),
		},
	})
	if err != nil {
		return fmt.Errorf("attaching disk %s to %s: %w", volume, id, err)
	}
	return op.Wait(ctx)
}

// TagInstance merges labels onto an instance. SetLabels requires the
// current label fingerprint, so this reads the instance first.
func (p *Provider) TagInstance(ctx context.Context, id string, tags map[string]string) error {
	instance, err := p.instances.Get(ctx, &computepb.GetInstanceRequest{
		Project:  p.project,
		Zone:     p.zone,
		Instance: id,
	})
	if err != nil {
		return fmt.Errorf("fetching instance %s: %w", id, err)
	}

	labels := MergeLabels(instance.GetLabels(), SanitizeLabels(tags))
	op, err := p.instances.SetLabels(ctx, &computepb.SetLabelsInstanceRequest{
		Project:  p.project,
		Zone:     p.zone,
		Instance: id,
		InstancesSetLabelsRequestResource: &computepb.InstancesSetLabelsRequest{
			LabelFingerprint: instance.LabelFingerprint,
			Labels:           labels,
		},
	})
	if err != nil {
		return fmt.Errorf("labeling instance %s: %w", id, err)
	}
	return op.Wait(ctx)
}

// SearchImages looks for non-deprecated images whose name contains the
// query, across the common public projects and the configured one.
func (p *Provider) SearchImages(ctx context.Context, query string) ([]types.Image, error) {
	projects := append([]string{}, imageProjects...)
	if p.project != "" {
		projects = append(projects, p.project)
	}

	var images []types.Image
	for _, project := range projects {
		req := &computepb.ListImagesRequest{
			Project:    project,
			MaxResults: proto.Uint32(maxImageCandidates),
		}
		// Filter server-side so the iterator does not page through a
		// public project's entire image catalog.
		if expr := imageFilterExpr(query); expr != "" {
			req.Filter = proto.String(expr)
		}

		it := p.images.List(ctx, req)
		candidates := 0
		for candidates < maxImageCandidates {
			image, err := it.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return nil, wrapAuthError(fmt.Sprintf("listing images in %s", project), err)
			}
			candidates++
			if image.GetDeprecated().GetState() == "DEPRECATED" {
				continue
			}
			if query != "" && !strings.Contains(image.GetName(), query) {
				continue
			}
			images = append(images, ConvertImage(image))
		}
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].CreatedAt.After(images[j].CreatedAt)
	})
	if len(images) > maxImageResults {
		images = images[:maxImageResults]
	}
	return images, nil
}

const (
	maxImageResults = 25

	// maxImageCandidates bounds how many images one project contributes
	// before sorting and capping to maxImageResults.
	maxImageCandidates = 200
)

// imageFilterExpr builds the list filter for a name-contains query.
func imageFilterExpr(query string) string {
	if query == "" {
		return ""
	}
	return fmt.Sprintf("name:*%s*", query)
}

// Close releases the underlying API clients.
func (p *Provider) Close() error {
	if err := p.instances.Close(); err != nil {
		p.images.Close()
		return err
	}
	return p.images.Close()
}

var _ providers.CloudProvider = (*Provider)(nil)
