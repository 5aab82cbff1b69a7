// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package executetest provides a fake executor for tests.
package executetest

import (
	"context"

	"go.chromium.org/webrtc/build/includecleaner/execute"
)

// Result is a scripted result of one command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// FakeExec implements execute.Executor without running any process.
// RunFunc maps a cmd to its scripted result. Every cmd is recorded
// in Cmds in invocation order.
type FakeExec struct {
	RunFunc func(cmd *execute.Cmd) Result

	Cmds []*execute.Cmd
}

// Run records cmd and applies the scripted result.
func (f *FakeExec) Run(ctx context.Context, cmd *execute.Cmd) error {
	f.Cmds = append(f.Cmds, cmd)
	var res Result
	if f.RunFunc != nil {
		res = f.RunFunc(cmd)
	}
	cmd.StdoutWriter().Write([]byte(res.Stdout))
	cmd.StderrWriter().Write([]byte(res.Stderr))
	cmd.SetExitCode(res.ExitCode)
	if res.ExitCode != 0 {
		return &execute.ExitError{ExitCode: res.ExitCode}
	}
	return nil
}

// Commands returns the argument vectors of all recorded cmds.
func (f *FakeExec) Commands() [][]string {
	cmds := make([][]string, 0, len(f.Cmds))
	for _, cmd := range f.Cmds {
		cmds = append(cmds, cmd.Args)
	}
	return cmds
}
