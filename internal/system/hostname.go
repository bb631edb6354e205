package system

import (
	"context"
	"flexnas/internal/logging"
	"flexnas/internal/services"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultHostnameCommand is used when no command is configured.
const DefaultHostnameCommand = "hostnamectl"

// HostnameSetter renames the host by running "<command> set-hostname <name>".
type HostnameSetter struct {
	Command string
	run     func(ctx context.Context, name string, args ...string) ([]byte, error)
}

var _ services.HostRenamer = (*HostnameSetter)(nil)

// NewHostnameSetter builds a setter; an empty command selects hostnamectl.
func NewHostnameSetter(command string) *HostnameSetter {
	if command == "" {
		command = DefaultHostnameCommand
	}
	return &HostnameSetter{
		Command: command,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
	}
}

// SetHostname applies name. The caller bounds the run through ctx.
func (h *HostnameSetter) SetHostname(ctx context.Context, name string) error {
	if name == "" || strings.HasPrefix(name, "-") {
		return fmt.Errorf("%w: invalid hostname %q", services.ErrValidation, name)
	}
	out, err := h.run(ctx, h.Command, "set-hostname", name)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%s timed out: %w", h.Command, ctx.Err())
		}
		return fmt.Errorf("%s set-hostname failed: %w (%s)", h.Command, err, strings.TrimSpace(string(out)))
	}
	logging.Log.Infof("HostnameSetter: hostname set to '%s'", name)
	return nil
}
