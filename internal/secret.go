package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

var (
	// CommandContext allows overriding command creation for testing
	CommandContext = exec.CommandContext
	// LookPath allows overriding executable lookup for testing
	LookPath = exec.LookPath
	// LookupEnv allows overriding environment lookup for testing
	LookupEnv = os.LookupEnv
)

// ResolveSecretReference resolves indirect secret values so credentials never
// have to appear on the command line. Two reference schemes are supported:
//
//	env:NAME           reads the named environment variable
//	op://vault/item/f  reads a 1Password secret via the op CLI
//
// Any other value is returned unchanged. The second return value reports
// whether the input was a reference.
func ResolveSecretReference(ctx context.Context, value string) (string, bool, error) {
	switch {
	case strings.HasPrefix(value, "env:"):
		name := strings.TrimPrefix(value, "env:")
		resolved, ok := LookupEnv(name)
		if !ok {
			return "", true, fmt.Errorf("environment variable %s is not set", name)
		}
		return resolved, true, nil

	case strings.HasPrefix(value, "op://"):
		if _, err := LookPath("op"); err != nil {
			return "", true, fmt.Errorf("1Password CLI (op) not found in PATH: %w", err)
		}

		cmd := CommandContext(ctx, "op", "read", value)
		output, err := cmd.Output()
		if err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				return "", true, fmt.Errorf("failed to read secret from 1Password: %s", string(exitErr.Stderr))
			}
			return "", true, fmt.Errorf("failed to read secret from 1Password: %w", err)
		}
		return strings.TrimSpace(string(output)), true, nil

	default:
		return value, false, nil
	}
}
