// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package apply is the apply subcommand to run the include cleaner on
// source files of the WebRTC checkout.
package apply

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/system/signals"

	"go.chromium.org/webrtc/build/includecleaner/cleaner"
	"go.chromium.org/webrtc/build/includecleaner/execute"
	"go.chromium.org/webrtc/build/includecleaner/execute/localexec"
	"go.chromium.org/webrtc/build/includecleaner/toolsupport/compdbutil"
	"go.chromium.org/webrtc/build/includecleaner/toolsupport/gnutil"
	"go.chromium.org/webrtc/build/includecleaner/ui"
)

const usage = `run clang-include-cleaner on files in the WebRTC checkout.

 $ include_cleaner apply [-p] [-c] [-w <dir>] <file>...

Only .cc and .h files referenced by a GN target of the workdir are
processed; other files are skipped. The workdir must contain
compile_commands.json, which is generated when missing.

clang-include-cleaner is built as part of the "clangd" package in the
LLVM build; add '"checkout_clangd": True' to 'custom_vars' in the
.gclient file and run 'gclient sync' to get it.
`

// defaultWorkDir is the conventional gn out dir of a checkout.
const defaultWorkDir = "out/Default"

// suffixes recognized as C/C++ sources to process.
var suffixes = []string{".cc", ".h"}

// errChangesDetected is reported in check mode when the includes of at
// least one file are not clean.
var errChangesDetected = errors.New("include cleaner generated changes")

// Cmd returns the Command for the `apply` subcommand provided by this package.
func Cmd() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "apply [-p] [-c] [-w <dir>] <file>...",
		ShortDesc: "run the include cleaner on a list of files",
		LongDesc:  usage,
		CommandRun: func() subcommands.CommandRun {
			c := &run{
				executor: localexec.LocalExec{},
				out:      os.Stdout,
			}
			c.init()
			return c
		},
	}
}

type run struct {
	subcommands.CommandRunBase

	printOnly       bool
	checkForChanges bool
	workDir         string
	verbose         bool

	cleanerBinary string
	gnPath        string
	compdbScript  string

	executor execute.Executor
	out      io.Writer
}

func (c *run) init() {
	c.Flags.BoolVar(&c.printOnly, "p", false, "don't modify the files, just print the changes")
	c.Flags.BoolVar(&c.printOnly, "print", false, "alias of -p")
	c.Flags.BoolVar(&c.checkForChanges, "c", false, "check whether the include cleaner generates changes and exit with 1 in case it did. used for bot validation that the current commit did not introduce an include regression")
	c.Flags.BoolVar(&c.checkForChanges, "check-for-changes", false, "alias of -c")
	c.Flags.StringVar(&c.workDir, "w", defaultWorkDir, "the gn workdir")
	c.Flags.StringVar(&c.workDir, "work-dir", defaultWorkDir, "alias of -w")
	c.Flags.BoolVar(&c.verbose, "v", false, "verbose logging")
	c.cleanerBinary = cleaner.DefaultBinary
	c.gnPath = gnutil.DefaultPath
	c.compdbScript = compdbutil.DefaultScript
}

func (c *run) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, c, env)
	err := c.run(ctx, args)
	switch {
	case errors.Is(err, errChangesDetected):
		return 1
	case errors.Is(err, flag.ErrHelp):
		fmt.Fprintf(a.GetErr(), "%v\n%s\n", err, usage)
		return 2
	case err != nil:
		fmt.Fprintf(a.GetErr(), "Error: %v\n", err)
		return 1
	}
	return 0
}

func (c *run) run(ctx context.Context, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer signals.HandleInterrupt(cancel)()

	if c.verbose {
		log.SetLevel(log.DebugLevel)
	}
	if len(args) == 0 {
		return fmt.Errorf("no files to process: %w", flag.ErrHelp)
	}
	for _, fname := range args {
		fi, err := os.Stat(fname)
		if err != nil || !fi.Mode().IsRegular() {
			return fmt.Errorf("file path %s does not exist", fname)
		}
	}
	if fi, err := os.Stat(c.workDir); err != nil || !fi.IsDir() {
		return fmt.Errorf("dir path %s does not exist", c.workDir)
	}
	if _, err := os.Stat(c.cleanerBinary); err != nil {
		ui.Warningf("clang-include-cleaner not found in %s", c.cleanerBinary)
		ui.Warningf(`Add '"checkout_clangd": True' to 'custom_vars' in your .gclient file and run 'gclient sync'.`)
	}

	gen := &compdbutil.Generator{Script: c.compdbScript, Executor: c.executor}
	err := gen.Ensure(ctx, c.workDir)
	if err != nil {
		return err
	}

	tool := &cleaner.Tool{
		Binary:   c.cleanerBinary,
		WorkDir:  c.workDir,
		Edit:     !c.printOnly && !c.checkForChanges,
		Executor: c.executor,
	}
	gn := &gnutil.Client{Path: c.gnPath, Executor: c.executor}

	changesGenerated := false
	for _, fname := range args {
		if !recognizedSuffix(fname) {
			log.Debugf("skipping %s: unsupported suffix", fname)
			continue
		}
		if !gn.IsBuilt(ctx, c.workDir, fname) {
			ui.Infof("Skipping include cleaner as %s is not referenced by GN.", fname)
			continue
		}
		output, err := tool.Apply(ctx, fname)
		if err != nil {
			ui.Errorf("%v", err)
			continue
		}
		if output != "" {
			fmt.Fprintln(c.out, output)
			changesGenerated = true
		} else {
			ui.Infof("Successfully ran include cleaner on %s", fname)
		}
	}

	fmt.Fprintln(c.out, "Finished. Check diff, compile, gn gen --check (tools_webrtc/gn_check_autofix.py can fix most of the issues)")
	fmt.Fprintln(c.out, "and git cl format before uploading.")

	if changesGenerated && c.checkForChanges {
		return errChangesDetected
	}
	return nil
}

func recognizedSuffix(fname string) bool {
	ext := filepath.Ext(fname)
	for _, suffix := range suffixes {
		if ext == suffix {
			return true
		}
	}
	return false
}
