// ABOUTME: Command runner interface for external style fixers
// ABOUTME: Lets formatter strategies pipe content through a process without touching os/exec

package interfaces

import "context"

// CommandRunner runs an external program with stdin and returns its stdout.
// Implementations must honour ctx cancellation and deadlines.
type CommandRunner interface {
	// Run executes name with args, feeding input on stdin.
	// A non-zero exit status is reported as an error that includes stderr.
	Run(ctx context.Context, input []byte, name string, args ...string) ([]byte, error)

	// LookPath reports whether name resolves to an executable
	LookPath(name string) (string, error)
}
