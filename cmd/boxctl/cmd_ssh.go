package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/boxctl/boxctl/sshprobe"
)

var sshCmd = &cobra.Command{
	Use:   "ssh NAME",
	Short: "Open an interactive SSH session to an instance",
	Long: `Resolve the instance, probe the configured usernames in order to find
one that authenticates, then hand off to the system ssh binary.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSSH(cmd.Context(), args[0], nil)
	},
}

var tunnelCmd = &cobra.Command{
	Use:   "tunnel NAME LOCAL:REMOTE [LOCAL:REMOTE...]",
	Short: "SSH to an instance with local port forwards",
	Long: `Like ssh, but each LOCAL:REMOTE pair becomes a -L forward from the
local port to the remote port on the instance. A three-part
LOCAL:HOST:REMOTE spec is passed through unchanged.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		forwards := make([]string, 0, len(args)-1)
		for _, spec := range args[1:] {
			forward, err := sshprobe.ParseForward(spec)
			if err != nil {
				return err
			}
			forwards = append(forwards, forward)
		}
		return runSSH(cmd.Context(), args[0], forwards)
	},
}

func init() {
	rootCmd.AddCommand(sshCmd)
	rootCmd.AddCommand(tunnelCmd)
}

func runSSH(ctx context.Context, name string, forwards []string) error {
	p, err := newProvider(ctx)
	if err != nil {
		return err
	}

	inst, err := resolveOwned(ctx, p, name)
	if err != nil {
		return err
	}

	addr := inst.Addr()
	if addr == "" {
		return fmt.Errorf("instance %s has no reachable address (status %s)", inst.Name, inst.Status)
	}

	prober := sshprobe.NewProber(sshprobe.DefaultTimeout, cfg.SSHIdentityFile)
	user, err := prober.Probe(ctx, addr+":22", cfg.ProbeUsers())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "connecting as %s@%s\n", user, addr)
	session := sshprobe.Session{
		User:         user,
		Host:         addr,
		IdentityFile: cfg.SSHIdentityFile,
		Forwards:     forwards,
	}
	return session.Run(ctx)
}
