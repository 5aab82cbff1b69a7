// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package cleaner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.chromium.org/webrtc/build/includecleaner/execute"
	"go.chromium.org/webrtc/build/includecleaner/execute/executetest"
)

func TestToolArgs(t *testing.T) {
	for _, tc := range []struct {
		name string
		edit bool
		want []string
	}{
		{
			name: "print-mode",
			edit: false,
			want: []string{
				"third_party/llvm-build/Release+Asserts/bin/clang-include-cleaner",
				"-p", "out/Default",
				"--ignore-headers=.pb.h,pipewire/.*.h,spa/.*.h,openssl/.*.h,alsa/.*.h,pulse/.*.h",
				"--extra-arg=-I../../third_party/googletest/src/googlemock/include/",
				"--extra-arg=-I../../third_party/googletest/src/googletest/include/",
				"--print=changes",
			},
		},
		{
			name: "edit-mode",
			edit: true,
			want: []string{
				"third_party/llvm-build/Release+Asserts/bin/clang-include-cleaner",
				"-p", "out/Default",
				"--ignore-headers=.pb.h,pipewire/.*.h,spa/.*.h,openssl/.*.h,alsa/.*.h,pulse/.*.h",
				"--extra-arg=-I../../third_party/googletest/src/googlemock/include/",
				"--extra-arg=-I../../third_party/googletest/src/googletest/include/",
				"--edit",
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tool := &Tool{
				Binary:  DefaultBinary,
				WorkDir: "out/Default",
				Edit:    tc.edit,
			}
			if diff := cmp.Diff(tc.want, tool.Args()); diff != "" {
				t.Errorf("tool.Args(): diff -want +got:\n%s", diff)
			}
		})
	}
}

func writeTestFile(t *testing.T, content string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "candidate.cc")
	err := os.WriteFile(fname, []byte(content), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	return fname
}

func TestToolApplyEdit(t *testing.T) {
	ctx := context.Background()
	fname := writeTestFile(t, "#include \"gmock/gmock.h\"\n#include \"gtest/gtest.h\"\nint main(){}\n")
	fakeExec := &executetest.FakeExec{}
	tool := &Tool{
		Binary:   DefaultBinary,
		WorkDir:  "out/Default",
		Edit:     true,
		Executor: fakeExec,
	}
	output, err := tool.Apply(ctx, fname)
	if err != nil {
		t.Fatalf("tool.Apply(ctx, %q)=%v; want nil err", fname, err)
	}
	if output != "" {
		t.Errorf("tool.Apply(ctx, %q) output=%q; want empty", fname, output)
	}
	buf, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	want := "#include \"test/gmock.h\"\n#include \"test/gtest.h\"\nint main(){}\n"
	if diff := cmp.Diff(want, string(buf)); diff != "" {
		t.Errorf("rewritten file: diff -want +got:\n%s", diff)
	}
	if got := len(fakeExec.Cmds); got != 1 {
		t.Fatalf("cleaner invoked %d times; want 1", got)
	}
	args := fakeExec.Cmds[0].Args
	if got, want := args[len(args)-1], fname; got != want {
		t.Errorf("last cleaner arg=%q; want=%q", got, want)
	}
}

func TestToolApplyPrintLeavesFileUntouched(t *testing.T) {
	ctx := context.Background()
	content := "#include \"gmock/gmock.h\"\nint main(){}\n"
	fname := writeTestFile(t, content)
	fakeExec := &executetest.FakeExec{
		RunFunc: func(cmd *execute.Cmd) executetest.Result {
			return executetest.Result{Stdout: "+ \"rtc_base/checks.h\"\n"}
		},
	}
	tool := &Tool{
		Binary:   DefaultBinary,
		WorkDir:  "out/Default",
		Executor: fakeExec,
	}
	output, err := tool.Apply(ctx, fname)
	if err != nil {
		t.Fatalf("tool.Apply(ctx, %q)=%v; want nil err", fname, err)
	}
	if want := `+ "rtc_base/checks.h"`; output != want {
		t.Errorf("tool.Apply(ctx, %q) output=%q; want=%q", fname, output, want)
	}
	buf, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != content {
		t.Errorf("print mode modified the file:\n%s", buf)
	}
}

func TestToolApplyGtestFalsePositive(t *testing.T) {
	ctx := context.Background()
	fname := writeTestFile(t, "#include \"test/gtest.h\"\nTEST_P(Foo, Bar) {}\n")
	fakeExec := &executetest.FakeExec{
		RunFunc: func(cmd *execute.Cmd) executetest.Result {
			return executetest.Result{Stdout: "+ \"gtest/gtest.h\"\n"}
		},
	}
	tool := &Tool{
		Binary:   DefaultBinary,
		WorkDir:  "out/Default",
		Executor: fakeExec,
	}
	output, err := tool.Apply(ctx, fname)
	if err != nil {
		t.Fatalf("tool.Apply(ctx, %q)=%v; want nil err", fname, err)
	}
	if output != "" {
		t.Errorf("tool.Apply(ctx, %q) output=%q; want empty after adjustment", fname, output)
	}
}

func TestToolApplyCleanerFailure(t *testing.T) {
	ctx := context.Background()
	fname := writeTestFile(t, "int main(){}\n")
	fakeExec := &executetest.FakeExec{
		RunFunc: func(cmd *execute.Cmd) executetest.Result {
			return executetest.Result{
				Stdout:   "- \"rtc_base/logging.h\"\n",
				Stderr:   "error: no compile command for file\n",
				ExitCode: 1,
			}
		},
	}
	tool := &Tool{
		Binary:   DefaultBinary,
		WorkDir:  "out/Default",
		Executor: fakeExec,
	}
	output, err := tool.Apply(ctx, fname)
	if err != nil {
		t.Fatalf("tool.Apply(ctx, %q)=%v; want nil err for cleaner exit failure", fname, err)
	}
	if want := `- "rtc_base/logging.h"`; output != want {
		t.Errorf("tool.Apply(ctx, %q) output=%q; want best-effort %q", fname, output, want)
	}
}
