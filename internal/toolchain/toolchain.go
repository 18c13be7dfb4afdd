// Package toolchain drives the native backend: qbe turns the emitted SSA into
// assembly and the system C compiler links it into an executable.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const (
	assembleTimeout = 10 * time.Second // qbe
	linkTimeout     = 10 * time.Second // cc
	runTimeout      = 5 * time.Second  // the compiled binary
)

// ErrTimeout is wrapped by errors from commands that ran out of time.
var ErrTimeout = errors.New("command timed out")

type Toolchain struct {
	QBE string
	CC  string

	AssembleTimeout time.Duration
	LinkTimeout     time.Duration
	RunTimeout      time.Duration
}

// Default uses qbe and cc from PATH.
func Default() *Toolchain {
	return &Toolchain{
		QBE:             "qbe",
		CC:              "cc",
		AssembleTimeout: assembleTimeout,
		LinkTimeout:     linkTimeout,
		RunTimeout:      runTimeout,
	}
}

// Available reports an error naming the first missing tool.
func (tc *Toolchain) Available() error {
	for _, tool := range []string{tc.QBE, tc.CC} {
		if _, err := exec.LookPath(tool); err != nil {
			return fmt.Errorf("%s not found on PATH: %w", tool, err)
		}
	}
	return nil
}

// Build assembles ssaPath and links it, returning the executable's path
// (ssaPath without its extension).
func (tc *Toolchain) Build(ctx context.Context, ssaPath string) (string, error) {
	base := strings.TrimSuffix(ssaPath, ".ssa")
	asmPath := base + ".s"

	if out, err := runCommandWithTimeout(ctx, tc.AssembleTimeout, tc.QBE, "-o", asmPath, ssaPath); err != nil {
		return "", fmt.Errorf("qbe failed for %s: %w\n%s", ssaPath, err, out)
	}
	if out, err := runCommandWithTimeout(ctx, tc.LinkTimeout, tc.CC, "-o", base, asmPath); err != nil {
		return "", fmt.Errorf("link failed for %s: %w\n%s", asmPath, err, out)
	}
	return base, nil
}

// Run executes binPath and returns its combined output.
func (tc *Toolchain) Run(ctx context.Context, binPath string) ([]byte, error) {
	return runCommandWithTimeout(ctx, tc.RunTimeout, binPath)
}

// runCommandWithTimeout runs name with args, capturing stdout and stderr
// together. The command is killed when timeout elapses or ctx is done.
func runCommandWithTimeout(ctx context.Context, timeout time.Duration, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Start(); err != nil {
		return out.Bytes(), fmt.Errorf("failed to start command '%s': %w", cmd.String(), err)
	}

	err := cmd.Wait()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return out.Bytes(), fmt.Errorf("command '%s' timed out after %v: %w", cmd.String(), timeout, ErrTimeout)
	}
	return out.Bytes(), err
}
