// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package cleaner

import (
	"regexp"
	"strings"
)

const (
	// gtestInclude is the spelling clang-include-cleaner suggests for gtest.
	gtestInclude = `"gtest/gtest.h"`
	// gtestCanonicalInclude is the spelling used in the WebRTC tree.
	gtestCanonicalInclude = `"test/gtest.h"`
)

// includeRewrite maps an include spelling the cleaner emits to the
// spelling used in the WebRTC tree. old may be a full spelling or a
// literal prefix of one.
type includeRewrite struct {
	old, new string
}

// includeRewrites are applied in table order. If spellings ever
// overlap, the earlier entry wins on its match.
var includeRewrites = []includeRewrite{
	{`"gmock/gmock.h"`, `"test/gmock.h"`},
	{gtestInclude, gtestCanonicalInclude},
	{`<sys/socket.h>`, `"rtc_base/net_helpers.h"`},

	// The cleaner does not refer to the complete third_party/ path.
	{`"libyuv/`, `"third_party/libyuv/include/libyuv/`},
	{`"aom/`, `"third_party/libaom/source/libaom/aom/`},
	{`"vpx/`, `"third_party/libvpx/source/libvpx/vpx/`},
}

// ignoredHeaders are passed to clang-include-cleaner with
// `--ignore-headers=`, so it never flags them as unused or missing.
var ignoredHeaders = []string{
	".pb.h",         // generated protobuf files.
	"pipewire/.*.h", // pipewire.
	"spa/.*.h",      // pipewire.
	"openssl/.*.h",  // openssl/boringssl.
	"alsa/.*.h",     // ALSA.
	"pulse/.*.h",    // PulseAudio.
}

// extraArgs are extra compiler search paths the compile DB misses.
var extraArgs = []string{
	"-I../../third_party/googletest/src/googlemock/include/",
	"-I../../third_party/googletest/src/googletest/include/",
}

var (
	gtestAddedLineRE   = regexp.MustCompile(`(?m)^\+ "gtest/gtest\.h"$\n?`)
	gtestIncludeLineRE = regexp.MustCompile(`(?m)^#include "gtest/gtest\.h"\n`)
)

// RewriteOutput drops a suggested re-addition of the deprecated gtest
// include from the cleaner's report when content already uses the
// canonical spelling. Test parameterization macros like TEST_P make
// the cleaner suggest it again.
func RewriteOutput(output, content string) string {
	if strings.Contains(content, gtestCanonicalInclude) {
		return gtestAddedLineRE.ReplaceAllString(output, "")
	}
	return output
}

// RewriteContent applies the include rewrites to a file's content.
// It is a pure function of content and idempotent.
func RewriteContent(content string) string {
	modified := content
	if strings.Contains(modified, gtestCanonicalInclude) {
		// Drop the deprecated gtest include when the canonical one is there.
		modified = gtestIncludeLineRE.ReplaceAllString(modified, "")
	}
	return rewriteIncludes(modified, includeRewrites)
}

// rewriteIncludes replaces start-of-line anchored `#include <old>`
// prefixes per table, preserving the remainder of each line.
func rewriteIncludes(content string, table []includeRewrite) string {
	for _, r := range table {
		re := regexp.MustCompile(`(?m)^#include ` + regexp.QuoteMeta(r.old))
		content = re.ReplaceAllString(content, "#include "+r.new)
	}
	return content
}
