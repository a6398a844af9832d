package validate

import (
	"strings"
	"testing"
)

func TestInstanceName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "sandbox"},
		{name: "internal hyphens", input: "jane-dev-2"},
		{name: "single char", input: "x"},
		{name: "digits only", input: "42"},
		{name: "63 chars", input: strings.Repeat("a", 63)},
		{name: "64 chars", input: strings.Repeat("a", 64), wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "leading hyphen", input: "-sandbox", wantErr: true},
		{name: "trailing hyphen", input: "sandbox-", wantErr: true},
		{name: "underscore", input: "my_box", wantErr: true},
		{name: "dot", input: "my.box", wantErr: true},
		{name: "space", input: "my box", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InstanceName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("InstanceName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestImageID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "8 hex digits", input: "ami-12345678"},
		{name: "17 hex digits", input: "ami-0123456789abcdef0"},
		{name: "too short", input: "ami-123", wantErr: true},
		{name: "too long", input: "ami-0123456789abcdef01", wantErr: true},
		{name: "not an ami", input: "invalid-ami", wantErr: true},
		{name: "uppercase hex", input: "ami-ABCDEF12", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ImageID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ImageID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestVolumeID(t *testing.T) {
	if err := VolumeID("vol-0a1b2c3d4e5f67890"); err != nil {
		t.Errorf("VolumeID() unexpected error: %v", err)
	}
	for _, bad := range []string{"vol-123", "ami-12345678", "", "volume-12345678"} {
		if err := VolumeID(bad); err == nil {
			t.Errorf("VolumeID(%q) expected error", bad)
		}
	}
}

func TestDiskName(t *testing.T) {
	if err := DiskName("scratch-disk"); err != nil {
		t.Errorf("DiskName() unexpected error: %v", err)
	}
	if err := DiskName("-scratch"); err == nil {
		t.Error("DiskName() accepted leading hyphen")
	}
}

func TestTagPair(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantKey   string
		wantValue string
		wantErr   bool
	}{
		{name: "simple", input: "team=platform", wantKey: "team", wantValue: "platform"},
		{name: "empty value", input: "scratch=", wantKey: "scratch", wantValue: ""},
		{name: "value with equals", input: "note=a=b", wantKey: "note", wantValue: "a=b"},
		{name: "no equals", input: "team", wantErr: true},
		{name: "empty key", input: "=platform", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, value, err := TagPair(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("TagPair(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if key != tt.wantKey || value != tt.wantValue {
				t.Errorf("TagPair(%q) = %q, %q, want %q, %q", tt.input, key, value, tt.wantKey, tt.wantValue)
			}
		})
	}
}
