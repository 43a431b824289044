// Package monitoring holds the shared diagnostic logger for the analysis
// pipeline. Components log through Logf so a run can be muted or redirected
// without threading a logger through every call site.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or quiet runs can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Mute silences the package logger. Equivalent to SetLogger(nil); reads
// better at call sites that only ever need to turn logging off.
func Mute() {
	SetLogger(nil)
}
