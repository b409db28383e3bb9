package classify_test

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"testing"
)

// This file follows the standard library's own pattern for testing
// subprocess-driving code (see os/exec's TestHelperProcess): the test
// binary re-execs itself with -test.run pinned to TestHelperProcess and
// a sentinel environment variable set, so the re-exec'd process behaves
// like the external classification program instead of running the
// normal test suite.
const helperEnvVar = "CLASSIFY_TEST_IS_HELPER"

// TestHelperProcess is not a real test. It only runs its body when
// helperEnvVar is set, which happens exclusively via fakeProgram's
// exec.Command. Under normal `go test` it is a no-op.
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperEnvVar) != "1" {
		return
	}

	mode := os.Getenv("CLASSIFY_TEST_HELPER_MODE")

	switch mode {
	case "echo":
		runEchoHelper()
	case "slow":
		runEchoHelper()
	case "crash":
		os.Exit(1)
	default:
		runEchoHelper()
	}

	os.Exit(0)
}

// runEchoHelper mimics the external program contract: for each
// newline-terminated path on stdin, emit exactly one newline-terminated
// description on stdout, preserving order.
func runEchoHelper() {
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	sc := bufio.NewScanner(os.Stdin)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		path := sc.Text()
		fmt.Fprintf(w, "%s: ASCII text\n", strings.TrimSpace(path))
		w.Flush()
	}
}

// fakeProgram returns a program+args pair that, when exec'd, re-runs
// this test binary in helper mode instead of the real "file" command.
func fakeProgram(t *testing.T, mode string) (string, []string) {
	t.Helper()

	exe, err := os.Executable()
	if err != nil {
		t.Fatalf("find test executable: %v", err)
	}

	t.Setenv(helperEnvVar, "1")
	t.Setenv("CLASSIFY_TEST_HELPER_MODE", mode)

	return exe, []string{"-test.run=TestHelperProcess", "-test.v=false"}
}

