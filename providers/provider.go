// Package providers defines the typed adapter every cloud backend
// implements. Commands build a structured request and the adapter maps it
// to exactly one SDK call - no string-templated CLI construction.
package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/boxctl/boxctl/types"
)

// ErrNotFound means a query succeeded but matched nothing. Callers
// distinguish this from a failed query.
var ErrNotFound = errors.New("no matching instances")

// CreateRequest describes an instance to launch. Name is already fully
// qualified and validated; Tags carry the owner/expiry/managed-by triple.
type CreateRequest struct {
	Name        string
	ImageID     string
	MachineType string
	VolumeGB    int32
	Tags        types.Tags
}

// CloudProvider is the per-cloud adapter. Every mutating method issues a
// single state-changing call and never retries; instance state is owned
// and reported by the provider's control plane.
type CloudProvider interface {
	Name() string

	// Describe returns a one-line summary of the active provider
	// context, printed to stderr before each command.
	Describe() string

	ListInstances(ctx context.Context, filter types.InstanceFilter) ([]types.Instance, error)
	CreateInstance(ctx context.Context, req CreateRequest) (*types.Instance, error)
	StartInstance(ctx context.Context, id string) error
	StopInstance(ctx context.Context, id string) error
	DeleteInstance(ctx context.Context, id string) error
	AttachVolume(ctx context.Context, id, volume string) error
	TagInstance(ctx context.Context, id string, tags map[string]string) error
	SearchImages(ctx context.Context, query string) ([]types.Image, error)
}

// Options holds provider construction settings.
type Options struct {
	Region  string
	Project string
	Zone    string
}

// Factory creates a provider instance.
type Factory func(ctx context.Context, opts Options) (CloudProvider, error)

var registry = make(map[string]Factory)

// Register adds a provider factory. Called from provider init functions.
func Register(name string, factory Factory) {
	registry[name] = factory
}

// New creates a provider by name.
func New(ctx context.Context, name string, opts Options) (CloudProvider, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("provider %s not found", name)
	}
	return factory(ctx, opts)
}

// Names returns the registered provider names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// ResolveInstance finds the single instance owned by owner with the exact
// qualified name. A failed query and an empty result are distinct errors,
// both fatal to the calling operation.
func ResolveInstance(ctx context.Context, p CloudProvider, owner, name string) (*types.Instance, error) {
	instances, err := p.ListInstances(ctx, types.InstanceFilter{Owner: owner, Name: name})
	if err != nil {
		return nil, fmt.Errorf("querying instances: %w", err)
	}
	if len(instances) == 0 {
		return nil, fmt.Errorf("%w for %q owned by %s", ErrNotFound, name, owner)
	}
	if len(instances) > 1 {
		return nil, fmt.Errorf("name %q is ambiguous: %d instances match", name, len(instances))
	}
	return &instances[0], nil
}
