package sshprobe

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Session describes an interactive SSH session. The actual connection is
// delegated to the system ssh binary so the user keeps their terminal,
// known_hosts handling and escape sequences.
type Session struct {
	User         string
	Host         string
	IdentityFile string

	// Forwards are -L port forward specs, e.g. "8080:localhost:3000".
	Forwards []string
}

// Args builds the argv passed to ssh, excluding the binary itself.
func (s Session) Args() []string {
	args := []string{"-o", "StrictHostKeyChecking=accept-new"}
	if s.IdentityFile != "" {
		args = append(args, "-i", s.IdentityFile)
	}
	for _, forward := range s.Forwards {
		args = append(args, "-L", forward)
	}
	args = append(args, fmt.Sprintf("%s@%s", s.User, s.Host))
	return args
}

// Run executes the session with inherited stdio. The child owns the
// terminal until it exits; interrupts go to it, not to boxctl.
func (s Session) Run(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "ssh", s.Args()...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ssh %s@%s: %w", s.User, s.Host, err)
	}
	return nil
}

// ParseForward normalizes a tunnel spec. "8080:3000" forwards local 8080
// to port 3000 on the instance; a full "local:host:remote" spec passes
// through unchanged.
func ParseForward(spec string) (string, error) {
	parts := strings.Split(spec, ":")
	switch len(parts) {
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return "", fmt.Errorf("invalid forward spec %q: want LOCAL:REMOTE", spec)
		}
		return fmt.Sprintf("%s:localhost:%s", parts[0], parts[1]), nil
	case 3:
		if parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return "", fmt.Errorf("invalid forward spec %q: want LOCAL:HOST:REMOTE", spec)
		}
		return spec, nil
	default:
		return "", fmt.Errorf("invalid forward spec %q: want LOCAL:REMOTE", spec)
	}
}
