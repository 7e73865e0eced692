// Package runner executes generated JavaScript with an installed runtime.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

type Options struct {
	// Script is the generated .js file.
	Script string

	// Runtime is an explicit runtime binary (e.g. "deno"). If empty, one is
	// picked from PATH: node, then bun, then deno.
	Runtime string

	// Args are passed to the script.
	Args []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// DryRun resolves everything but does not start the runtime.
	DryRun bool
}

var candidates = []string{"node", "bun", "deno"}

// Run executes opts.Script and waits for it. Cancelling ctx kills the runtime.
func Run(ctx context.Context, opts Options) error {
	if opts.Script == "" {
		return errors.New("runner: Script must be set")
	}
	script, err := filepath.Abs(opts.Script)
	if err != nil {
		return fmt.Errorf("runner: resolve Script: %w", err)
	}
	if _, err := os.Stat(script); err != nil {
		return fmt.Errorf("runner: script does not exist: %s", script)
	}
	rt, err := PickRuntime(opts.Runtime)
	if err != nil {
		return err
	}
	if opts.DryRun {
		return nil
	}

	cmd := exec.CommandContext(ctx, rt, constructArgs(rt, script, opts.Args)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if opts.Stdin != nil {
		cmd.Stdin = opts.Stdin
	}
	if opts.Stdout != nil {
		cmd.Stdout = opts.Stdout
	}
	if opts.Stderr != nil {
		cmd.Stderr = opts.Stderr
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("runner: %s failed: %w", filepath.Base(rt), err)
	}
	return nil
}

// PickRuntime returns explicit if it is on PATH, otherwise the first
// installed candidate.
func PickRuntime(explicit string) (string, error) {
	if explicit != "" {
		if p, err := exec.LookPath(explicit); err == nil {
			return p, nil
		}
		return "", fmt.Errorf("runner: JavaScript runtime %q not found", explicit)
	}
	for _, c := range candidates {
		if p, err := exec.LookPath(c); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("runner: no JavaScript runtime found (tried %s)", strings.Join(candidates, ", "))
}

func constructArgs(rt, script string, extra []string) []string {
	var args []string
	name := strings.TrimSuffix(filepath.Base(rt), filepath.Ext(rt))
	if name == "deno" {
		// deno run --allow-all script.js
		args = append(args, "run", "--allow-all")
	}
	args = append(args, script)
	return append(args, extra...)
}
