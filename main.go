// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/maruel/subcommands"

	"go.chromium.org/webrtc/build/includecleaner/subcmd/apply"
	"go.chromium.org/webrtc/build/includecleaner/subcmd/version"
)

// include_cleaner rewrites #include directives in WebRTC C/C++ sources
// using the clang-include-cleaner binary and the GN build graph.

const ver = "0.9"

func getApplication() *subcommands.DefaultApplication {
	return &subcommands.DefaultApplication{
		Name:  "include_cleaner",
		Title: fmt.Sprintf("include_cleaner %s", ver),
		Commands: []*subcommands.Command{
			apply.Cmd(),
			version.Cmd(ver),
			subcommands.CmdHelp,
		},
	}
}

func main() {
	os.Exit(includeCleanerMain())
}

func includeCleanerMain() int {
	// Print a stack trace when a panic occurs.
	defer func() {
		if r := recover(); r != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			log.Fatalf("panic: %v\n%s", r, buf)
		}
	}()

	buildinfo, ok := debug.ReadBuildInfo()
	if ok {
		log.Debugf("buildinfo: path=%q %s", buildinfo.Path, vcsInfo(buildinfo))
	}

	return subcommands.Run(getApplication(), os.Args[1:])
}

func vcsInfo(buildinfo *debug.BuildInfo) string {
	m := make(map[string]string)
	for _, bs := range buildinfo.Settings {
		if strings.HasPrefix(bs.Key, "vcs.") {
			m[bs.Key] = bs.Value
		}
	}
	return fmt.Sprintf("vcs[revision=%s time=%s modified=%s]", m["vcs.revision"], m["vcs.time"], m["vcs.modified"])
}
