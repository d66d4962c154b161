// pkg/core/exec.go
package core

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// RunFunc runs an external tool and returns its combined output
type RunFunc func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

// ExecRun runs the tool with os/exec
func ExecRun(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(out.String())
		if msg == "" {
			return out.Bytes(), fmt.Errorf("%s: %w", name, err)
		}
		return out.Bytes(), fmt.Errorf("%s: %w\n%s", name, err, msg)
	}
	return out.Bytes(), nil
}

// CommandExists checks if a command is available in PATH
func CommandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}
