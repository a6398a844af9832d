package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
owner: jane
prefix: jane
provider: aws
region: eu-west-1
ssh_users: [ubuntu, ec2-user]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Owner != "jane" {
		t.Errorf("Owner = %q, want jane", cfg.Owner)
	}
	if cfg.Region != "eu-west-1" {
		t.Errorf("Region = %q, want eu-west-1", cfg.Region)
	}
	if len(cfg.SSHUsers) != 2 || cfg.SSHUsers[0] != "ubuntu" {
		t.Errorf("SSHUsers = %v, want [ubuntu ec2-user]", cfg.SSHUsers)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Provider != ProviderAWS {
		t.Errorf("Provider = %q, want default aws", cfg.Provider)
	}
	if cfg.Region != "us-east-1" {
		t.Errorf("Region = %q, want default us-east-1", cfg.Region)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "owner: filed\nprovider: aws\n")
	t.Setenv("BOXCTL_OWNER", "jane")
	t.Setenv("BOXCTL_PREFIX", "jane")
	t.Setenv("BOXCTL_PROVIDER", "gcp")
	t.Setenv("BOXCTL_PROJECT", "dev-sandbox")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Owner != "jane" {
		t.Errorf("Owner = %q, want env override jane", cfg.Owner)
	}
	if cfg.Provider != "gcp" || cfg.Project != "dev-sandbox" {
		t.Errorf("Provider/Project = %q/%q, want gcp/dev-sandbox", cfg.Provider, cfg.Project)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "aws with region", cfg: Config{Provider: "aws", Region: "us-east-1"}},
		{name: "gcp with project and zone", cfg: Config{Provider: "gcp", Project: "p", Zone: "us-central1-a"}},
		{name: "gcp without project", cfg: Config{Provider: "gcp", Zone: "us-central1-a"}, wantErr: true},
		{name: "unknown provider", cfg: Config{Provider: "azure"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequireOwner(t *testing.T) {
	if err := (&Config{Owner: "jane"}).RequireOwner(); err != nil {
		t.Errorf("RequireOwner() with owner set: %v", err)
	}
	if err := (&Config{}).RequireOwner(); err == nil {
		t.Error("RequireOwner() without owner returned nil")
	}
}

func TestQualifiedName(t *testing.T) {
	withPrefix := Config{Prefix: "jane"}
	if got := withPrefix.QualifiedName("sandbox"); got != "jane-sandbox" {
		t.Errorf("QualifiedName() = %q, want jane-sandbox", got)
	}

	noPrefix := Config{}
	if got := noPrefix.QualifiedName("sandbox"); got != "sandbox" {
		t.Errorf("QualifiedName() = %q, want sandbox", got)
	}
}

func TestProbeUsers(t *testing.T) {
	custom := Config{SSHUsers: []string{"core"}}
	if got := custom.ProbeUsers(); len(got) != 1 || got[0] != "core" {
		t.Errorf("ProbeUsers() = %v, want configured list", got)
	}

	aws := Config{Provider: ProviderAWS}
	if got := aws.ProbeUsers(); got[0] != "ec2-user" {
		t.Errorf("ProbeUsers() aws default starts with %q, want ec2-user", got[0])
	}

	gcp := Config{Provider: ProviderGCP}
	if got := gcp.ProbeUsers(); got[0] != "ubuntu" {
		t.Errorf("ProbeUsers() gcp default starts with %q, want ubuntu", got[0])
	}
}
