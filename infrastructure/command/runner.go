// ABOUTME: os/exec implementation of the CommandRunner interface
// ABOUTME: Runs external style fixers with stdin input, bounded output and context cancellation

package command

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"textforge-api/core/interfaces"
)

// DefaultMaxOutput bounds what a command may write to stdout
const DefaultMaxOutput = 16 << 20

// Runner runs commands with os/exec
type Runner struct {
	maxOutput int
	logger    interfaces.Logger
}

// NewRunner creates a Runner; logger may be nil
func NewRunner(logger interfaces.Logger) *Runner {
	return &Runner{maxOutput: DefaultMaxOutput, logger: logger}
}

// Run executes name with args, feeding input on stdin
func (r *Runner) Run(ctx context.Context, input []byte, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = bytes.NewReader(input)

	stdout := &limitedBuffer{max: r.maxOutput}
	var stderr bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if r.logger != nil {
		r.logger.Debug("External command finished", map[string]interface{}{
			"command":   name,
			"exit_code": cmd.ProcessState.ExitCode(),
			"bytes_in":  len(input),
			"bytes_out": stdout.buf.Len(),
		})
	}
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if stdout.overflow {
		return nil, fmt.Errorf("%s: output exceeds %d bytes", name, r.maxOutput)
	}
	return stdout.buf.Bytes(), nil
}

// LookPath reports the resolved path of an executable
func (r *Runner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// limitedBuffer keeps at most max bytes and records whether more arrived
type limitedBuffer struct {
	buf      bytes.Buffer
	max      int
	overflow bool
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	room := b.max - b.buf.Len()
	if len(p) > room {
		b.overflow = true
		if room > 0 {
			b.buf.Write(p[:room])
		}
		return len(p), nil
	}
	return b.buf.Write(p)
}
