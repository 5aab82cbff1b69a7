// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package cleaner invokes the clang-include-cleaner binary and fixes up
// include spellings it does not know about.
package cleaner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"go.chromium.org/webrtc/build/includecleaner/execute"
	"go.chromium.org/webrtc/build/includecleaner/ui"
)

// DefaultBinary is where the clangd package installs the cleaner in a
// WebRTC checkout.
const DefaultBinary = "third_party/llvm-build/Release+Asserts/bin/clang-include-cleaner"

// Tool runs clang-include-cleaner against one file at a time.
type Tool struct {
	// Binary is the path of the clang-include-cleaner binary.
	Binary string

	// WorkDir is the gn out dir that holds compile_commands.json.
	WorkDir string

	// Edit lets the cleaner edit files in place. Otherwise it only
	// reports the changes it would make.
	Edit bool

	// Executor runs the cleaner process.
	Executor execute.Executor
}

// Args returns the base argument vector, without the target file.
func (t *Tool) Args() []string {
	args := []string{t.Binary, "-p", t.WorkDir}
	args = append(args, "--ignore-headers="+strings.Join(ignoredHeaders, ","))
	for _, extraArg := range extraArgs {
		args = append(args, "--extra-arg="+extraArg)
	}
	if t.Edit {
		args = append(args, "--edit")
	} else {
		args = append(args, "--print=changes")
	}
	return args
}

// Apply runs the cleaner on fname and applies the include rewrites to
// the cleaner's report and, in edit mode, to the file itself.
// It returns the adjusted report, empty when the file is clean.
// A non-zero cleaner exit is reported to the user and processing
// continues best-effort with whatever the cleaner printed.
func (t *Tool) Apply(ctx context.Context, fname string) (string, error) {
	cmd := &execute.Cmd{
		ID:   uuid.New().String(),
		Desc: "include-cleaner " + fname,
		Args: append(t.Args(), fname),
	}
	err := t.Executor.Run(ctx, cmd)
	if err != nil {
		var eerr *execute.ExitError
		if !errors.As(err, &eerr) {
			return "", fmt.Errorf("failed to run include cleaner on %s: %w", fname, err)
		}
		ui.Errorf("Failed to run include cleaner on %s, stderr: %s", fname, strings.TrimSpace(string(cmd.Stderr())))
	}
	output := strings.TrimSpace(string(cmd.Stdout()))

	// Read after the run; in edit mode the cleaner has already
	// rewritten the file.
	buf, err := os.ReadFile(fname)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", fname, err)
	}
	content := string(buf)
	output = RewriteOutput(output, content)

	if t.Edit {
		modified := RewriteContent(content)
		if modified != content {
			fi, err := os.Stat(fname)
			if err != nil {
				return "", err
			}
			err = os.WriteFile(fname, []byte(modified), fi.Mode().Perm())
			if err != nil {
				return "", fmt.Errorf("failed to write %s: %w", fname, err)
			}
		}
	}
	return output, nil
}
