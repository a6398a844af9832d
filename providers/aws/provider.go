package aws

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/boxctl/boxctl/providers"
	"github.com/boxctl/boxctl/types"
)

const defaultMachineType = "t3.micro"

// Instance states queried by default. Terminated instances are invisible
// to every verb.
var liveStates = []string{"pending", "running", "stopping", "stopped"}

func init() {
	providers.Register("aws", New)
}

// Provider implements providers.CloudProvider over the EC2 API.
type Provider struct {
	client EC2API
	region string
}

// New creates an AWS provider using the default credential chain.
func New(ctx context.Context, opts providers.Options) (providers.CloudProvider, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &Provider{
		client: ec2.NewFromConfig(cfg),
		region: opts.Region,
	}, nil
}

// NewWithClient wires an explicit EC2 client. Used by tests.
func NewWithClient(client EC2API, region string) *Provider {
	return &Provider{client: client, region: region}
}

func (p *Provider) Name() string {
	return "aws"
}

func (p *Provider) Describe() string {
	return fmt.Sprintf("provider=aws region=%s", p.region)
}

// ListInstances queries EC2 with server-side tag filters. Only instances
// carrying the boxctl marker are visible.
func (p *Provider) ListInstances(ctx context.Context, filter types.InstanceFilter) ([]types.Instance, error) {
	input := &ec2.DescribeInstancesInput{
		Filters: buildFilters(filter),
	}

	var instances []types.Instance
	paginator := ec2.NewDescribeInstancesPaginator(p.client, input)
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describing instances: %w", err)
		}
		for _, reservation := range output.Reservations {
			for _, instance := range reservation.Instances {
				instances = append(instances, p.convertInstance(instance))
			}
		}
	}
	return instances, nil
}

func buildFilters(filter types.InstanceFilter) []ec2types.Filter {
	states := filter.States
	if len(states) == 0 {
		states = liveStates
	}

	filters := []ec2types.Filter{
		{Name: aws.String("tag:" + types.TagManagedBy), Values: []string{types.ManagedByValue}},
		{Name: aws.String("instance-state-name"), Values: states},
	}
	if filter.Owner != "" {
		filters = append(filters, ec2types.Filter{
			Name:   aws.String("tag:" + types.TagOwner),
			Values: []string{filter.Owner},
		})
	}
	if filter.Name != "" {
		filters = append(filters, ec2types.Filter{
			Name:   aws.String("tag:" + types.TagName),
			Values: []string{filter.Name},
		})
	}
	return filters
}

// CreateInstance launches one instance with the full tag set applied at
// creation time, in a single RunInstances call.
func (p *Provider) CreateInstance(ctx context.Context, req providers.CreateRequest) (*types.Instance, error) {
	machineType := req.MachineType
	if machineType == "" {
		machineType = defaultMachineType
	}

	ec2Tags := tagsToEC2(req.Tags.ToTagMap())
	input := &ec2.RunInstancesInput{
		ImageId:      aws.String(req.ImageID),
		InstanceType: ec2types.InstanceType(machineType),
		MinCount:     aws.Int32(1),
		MaxCount:     aws.Int32(1),
		TagSpecifications: []ec2types.TagSpecification{
			{ResourceType: ec2types.ResourceTypeInstance, Tags: ec2Tags},
			{ResourceType: ec2types.ResourceTypeVolume, Tags: ec2Tags},
		},
	}
	if req.VolumeGB > 0 {
		input.BlockDeviceMappings = []ec2types.BlockDeviceMapping{
			{
				DeviceName: aws.String("/dev/xvda"),
				Ebs: &ec2types.EbsBlockDevice{
					VolumeSize:          aws.Int32(req.VolumeGB),
					VolumeType:          ec2types.VolumeTypeGp3,
					DeleteOnTermination: aws.Bool(true),
				},
			},
		}
	}

	output, err := p.client.RunInstances(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("launching instance %s: %w", req.Name, err)
	}
	if len(output.Instances) == 0 {
		return nil, fmt.Errorf("launching instance %s: no instance in response", req.Name)
	}

	instance := p.convertInstance(output.Instances[0])
	// RunInstances reports tags asynchronously; reflect what was requested.
	instance.Name = req.Name
	instance.Tags = req.Tags
	return &instance, nil
}

func (p *Provider) StartInstance(ctx context.Context, id string) error {
	_, err := p.client.StartInstances(ctx, &ec2.StartInstancesInput{InstanceIds: []string{id}})
	if err != nil {
		return fmt.Errorf("starting instance %s: %w", id, err)
	}
	return nil
}

func (p *Provider) StopInstance(ctx context.Context, id string) error {
	_, err := p.client.StopInstances(ctx, &ec2.StopInstancesInput{InstanceIds: []string{id}})
	if err != nil {
		return fmt.Errorf("stopping instance %s: %w", id, err)
	}
	return nil
}

func (p *Provider) DeleteInstance(ctx context.Context, id string) error {
	_, err := p.client.TerminateInstances(ctx, &ec2.TerminateInstancesInput{InstanceIds: []string{id}})
	if err != nil {
		return fmt.Errorf("terminating instance %s: %w", id, err)
	}
	return nil
}

func (p *Provider) AttachVolume(ctx context.Context, id, volume string) error {
	_, err := p.client.AttachVolume(ctx, &ec2.AttachVolumeInput{
		InstanceId: aws.String(id),
		VolumeId:   aws.String(volume),
		Device:     aws.String("/dev/sdf"),
	})
	if err != nil {
		return fmt.Errorf("attaching volume %s to %s: %w", volume, id, err)
	}
	return nil
}

func (p *Provider) TagInstance(ctx context.Context, id string, tags map[string]string) error {
	_, err := p.client.CreateTags(ctx, &ec2.CreateTagsInput{
		Resources: []string{id},
		Tags:      tagsToEC2(tags),
	})
	if err != nil {
		return fmt.Errorf("tagging instance %s: %w", id, err)
	}
	return nil
}

// SearchImages looks up AMIs by name substring among self-owned and
// Amazon-published images, newest first.
func (p *Provider) SearchImages(ctx context.Context, query string) ([]types.Image, error) {
	input := &ec2.DescribeImagesInput{
		Owners: []string{"self", "amazon"},
		Filters: []ec2types.Filter{
			{Name: aws.String("state"), Values: []string{"available"}},
		},
	}
	if query != "" {
		input.Filters = append(input.Filters, ec2types.Filter{
			Name:   aws.String("name"),
			Values: []string{"*" + query + "*"},
		})
	}

	output, err := p.client.DescribeImages(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("describing images: %w", err)
	}

	images := make([]types.Image, 0, len(output.Images))
	for _, img := range output.Images {
		created, _ := time.Parse(time.RFC3339, aws.ToString(img.CreationDate))
		images = append(images, types.Image{
			ID:          aws.ToString(img.ImageId),
			Name:        aws.ToString(img.Name),
			Description: aws.ToString(img.Description),
			CreatedAt:   created,
		})
	}
	sort.Slice(images, func(i, j int) bool {
		return images[i].CreatedAt.After(images[j].CreatedAt)
	})
	if len(images) > maxImageResults {
		images = images[:maxImageResults]
	}
	return images, nil
}

const maxImageResults = 25

var _ providers.CloudProvider = (*Provider)(nil)
