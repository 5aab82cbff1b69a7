// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package compdbutil manages the compilation database consumed by
// clang tooling to resolve include paths.
package compdbutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"go.chromium.org/webrtc/build/includecleaner/execute"
	"go.chromium.org/webrtc/build/includecleaner/ui"
)

// Filename is the compilation database file name in a gn out dir.
const Filename = "compile_commands.json"

// DefaultScript generates a compile DB for a gn out dir on stdout.
const DefaultScript = "tools/clang/scripts/generate_compdb.py"

// Generator generates the compilation database when it is missing.
type Generator struct {
	// Script is the generator script path.
	Script string

	// Executor runs the generator process.
	Executor execute.Executor
}

// Ensure makes sure workDir holds a compilation database, generating
// one with the generator script if absent. Without it the cleaner
// cannot resolve include paths, so any generation failure is an error.
func (g *Generator) Ensure(ctx context.Context, workDir string) error {
	pathname := filepath.Join(workDir, Filename)
	if fi, err := os.Stat(pathname); err == nil && fi.Mode().IsRegular() {
		return nil
	}
	ui.Infof("Generating compile commands file...")
	cmd := &execute.Cmd{
		ID:   uuid.New().String(),
		Desc: "generate_compdb -p " + workDir,
		Args: []string{g.Script, "-p", workDir},
	}
	err := g.Executor.Run(ctx, cmd)
	if err != nil {
		return fmt.Errorf("failed to generate %s: %w\n%s", pathname, err, cmd.Stderr())
	}
	err = os.WriteFile(pathname, cmd.Stdout(), 0o644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", pathname, err)
	}
	return nil
}
