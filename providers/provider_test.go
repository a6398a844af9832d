package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/boxctl/boxctl/types"
)

// fakeProvider implements CloudProvider for resolver tests.
type fakeProvider struct {
	instances []types.Instance
	listErr   error
}

func (f *fakeProvider) Name() string     { return "fake" }
func (f *fakeProvider) Describe() string { return "fake" }

func (f *fakeProvider) ListInstances(_ context.Context, filter types.InstanceFilter) ([]types.Instance, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var matched []types.Instance
	for _, inst := range f.instances {
		if inst.Matches(filter) {
			matched = append(matched, inst)
		}
	}
	return matched, nil
}

func (f *fakeProvider) CreateInstance(context.Context, CreateRequest) (*types.Instance, error) {
	return nil, nil
}
func (f *fakeProvider) StartInstance(context.Context, string) error        { return nil }
func (f *fakeProvider) StopInstance(context.Context, string) error         { return nil }
func (f *fakeProvider) DeleteInstance(context.Context, string) error       { return nil }
func (f *fakeProvider) AttachVolume(context.Context, string, string) error { return nil }
func (f *fakeProvider) TagInstance(context.Context, string, map[string]string) error {
	return nil
}
func (f *fakeProvider) SearchImages(context.Context, string) ([]types.Image, error) {
	return nil, nil
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), "nope", Options{})
	if err == nil {
		t.Fatal("New() with unknown provider returned nil error")
	}
}

func TestRegisterAndNew(t *testing.T) {
	Register("test-fake", func(ctx context.Context, opts Options) (CloudProvider, error) {
		return &fakeProvider{}, nil
	})

	p, err := New(context.Background(), "test-fake", Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.Name() != "fake" {
		t.Errorf("Name() = %q, want fake", p.Name())
	}
}

func TestResolveInstance(t *testing.T) {
	owned := types.Instance{
		ID:   "i-0abc",
		Name: "jane-sandbox",
		Tags: types.Tags{Owner: "jane", ManagedBy: types.ManagedByValue},
	}

	t.Run("exact match", func(t *testing.T) {
		p := &fakeProvider{instances: []types.Instance{owned}}
		got, err := ResolveInstance(context.Background(), p, "jane", "jane-sandbox")
		if err != nil {
			t.Fatalf("ResolveInstance() error = %v", err)
		}
		if got.ID != "i-0abc" {
			t.Errorf("resolved %q, want i-0abc", got.ID)
		}
	})

	t.Run("not found is ErrNotFound", func(t *testing.T) {
		p := &fakeProvider{instances: []types.Instance{owned}}
		_, err := ResolveInstance(context.Background(), p, "jane", "jane-other")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("shared prefix does not match", func(t *testing.T) {
		p := &fakeProvider{instances: []types.Instance{owned}}
		_, err := ResolveInstance(context.Background(), p, "jane", "jane-sand")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound for prefix-only match", err)
		}
	})

	t.Run("other owner does not match", func(t *testing.T) {
		p := &fakeProvider{instances: []types.Instance{owned}}
		_, err := ResolveInstance(context.Background(), p, "bob", "jane-sandbox")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound for foreign owner", err)
		}
	})

	t.Run("query failure is not ErrNotFound", func(t *testing.T) {
		p := &fakeProvider{listErr: errors.New("throttled")}
		_, err := ResolveInstance(context.Background(), p, "jane", "jane-sandbox")
		if err == nil {
			t.Fatal("expected error")
		}
		if errors.Is(err, ErrNotFound) {
			t.Error("query failure reported as not-found")
		}
	})
}
