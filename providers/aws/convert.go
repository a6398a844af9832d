package aws

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/boxctl/boxctl/types"
)

// convertInstance maps an EC2 instance to the boxctl model.
func (p *Provider) convertInstance(instance ec2types.Instance) types.Instance {
	tags := TagsFromEC2(instance.Tags)
	return types.Instance{
		ID:          aws.ToString(instance.InstanceId),
		Name:        tags.Name,
		Provider:    "aws",
		Zone:        availabilityZone(instance),
		Status:      instanceStatus(instance),
		MachineType: string(instance.InstanceType),
		ImageID:     aws.ToString(instance.ImageId),
		PublicIP:    aws.ToString(instance.PublicIpAddress),
		PrivateIP:   aws.ToString(instance.PrivateIpAddress),
		Tags:        tags,
		LaunchedAt:  safeTime(instance.LaunchTime),
	}
}

func availabilityZone(instance ec2types.Instance) string {
	if instance.Placement == nil {
		return ""
	}
	return aws.ToString(instance.Placement.AvailabilityZone)
}

func instanceStatus(instance ec2types.Instance) string {
	if instance.State == nil {
		return ""
	}
	return string(instance.State.Name)
}

// TagsFromEC2 converts EC2 tag records to structured tags.
func TagsFromEC2(ec2Tags []ec2types.Tag) types.Tags {
	tagMap := make(map[string]string, len(ec2Tags))
	for _, tag := range ec2Tags {
		tagMap[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}
	return types.TagsFromTagMap(tagMap)
}

func tagsToEC2(tagMap map[string]string) []ec2types.Tag {
	ec2Tags := make([]ec2types.Tag, 0, len(tagMap))
	for key, value := range tagMap {
		ec2Tags = append(ec2Tags, ec2types.Tag{
			Key:   aws.String(key),
			Value: aws.String(value),
		})
	}
	return ec2Tags
}

func safeTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
