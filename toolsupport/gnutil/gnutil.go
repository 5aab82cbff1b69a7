// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package gnutil provides utilities of the GN build graph tool.
package gnutil

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"go.chromium.org/webrtc/build/includecleaner/execute"
)

// DefaultPath expects gn from depot_tools on PATH.
const DefaultPath = "gn"

// Client queries the GN build graph of a gn out dir.
type Client struct {
	// Path is the gn binary path.
	Path string

	// Executor runs the gn process.
	Executor execute.Executor
}

// IsBuilt reports whether fname is referenced by any build target of
// workDir on this platform. Only `gn refs`'s exit status matters; a gn
// that cannot run at all reports not built.
func (c *Client) IsBuilt(ctx context.Context, workDir, fname string) bool {
	cmd := &execute.Cmd{
		ID:   uuid.New().String(),
		Desc: "gn refs " + fname,
		Args: []string{c.Path, "refs", "-C", workDir, fname},
	}
	err := c.Executor.Run(ctx, cmd)
	if err != nil {
		log.Debugf("gn refs %s: %v", fname, err)
		return false
	}
	return true
}
