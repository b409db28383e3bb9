package classify

import (
	"os"
	"testing"
)

// fakeProgram mirrors the external helper in testhelper_test.go
// (package classify_test) for whitebox tests in this package; both
// target the same TestHelperProcess entry point, since go test links
// internal and external test files of a package into one binary.
func fakeProgram(t *testing.T, mode string) (string, []string) {
	t.Helper()

	exe, err := os.Executable()
	if err != nil {
		t.Fatalf("find test executable: %v", err)
	}

	t.Setenv("CLASSIFY_TEST_IS_HELPER", "1")
	t.Setenv("CLASSIFY_TEST_HELPER_MODE", mode)

	return exe, []string{"-test.run=TestHelperProcess", "-test.v=false"}
}
