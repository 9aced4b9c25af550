// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package eval drives the feature-impact experiments: it filters the
// full feature superset per experiment, runs the external classifier's
// train/apply cycle, scores dev predictions, and aggregates the results
// table. Experiments run sequentially; they share one staging area and
// one model-artifact path per configuration name.
package eval

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// runner abstracts subprocess execution so the classifier and external
// scorer can be tested without real binaries.
type runner interface {
	// Run executes name with args, feeding stdin when non-nil, and
	// returns captured stdout. A non-zero exit returns an error that
	// includes captured stderr.
	Run(ctx context.Context, name string, args []string, stdin io.Reader) (string, error)
}

// osRunner is the production runner backed by os/exec. Invocations are
// synchronous and block until the subprocess terminates; no timeout is
// enforced.
type osRunner struct{}

func (osRunner) Run(ctx context.Context, name string, args []string, stdin io.Reader) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &SubprocessFailure{
			Command: strings.Join(append([]string{name}, args...), " "),
			Output:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}
	return stdout.String(), nil
}

// SubprocessFailure reports a non-zero exit from an external train,
// apply, or score step. It is fatal for the current experiment; the
// caller decides whether the remaining experiments still run.
type SubprocessFailure struct {
	Command string
	Output  string
	Err     error
}

func (e *SubprocessFailure) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s: %v\n%s", e.Command, e.Err, e.Output)
}

func (e *SubprocessFailure) Unwrap() error { return e.Err }
