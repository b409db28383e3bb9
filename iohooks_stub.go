//go:build !classify_testhooks

package classify

// writeHook is a no-op in normal builds; see iohooks.go for the
// testhooks-tagged implementation.
func writeHook(_ int, _ []byte) (error, bool) {
	return nil, false
}

// readHook is a no-op in normal builds; see iohooks.go for the
// testhooks-tagged implementation.
func readHook(_ int) ([]byte, error, bool) {
	return nil, nil, false
}
