//go:build !debug

package analytic

// logDebugf is a no-op in the default build; see debug.go for the
// -tags debug variant that actually logs.
func logDebugf(format string, v ...interface{}) {}
