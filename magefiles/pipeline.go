//go:build mage

package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// run invokes the built CLI binary with the given subcommand.
func run(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Prepare runs the corpus stages end to end: parse, clean, split.
func Prepare() error {
	mg.Deps(Build)
	for _, stage := range []string{"parse", "clean", "split"} {
		if err := run(stage); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate runs the feature-impact studies over the prepared splits.
func Evaluate() error {
	mg.Deps(Build)
	return run("evaluate")
}
