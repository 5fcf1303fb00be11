package osmschema

import "fmt"

// capturingProblemReporter collects warnings for assertions in feature
// parse tests.
type capturingProblemReporter struct {
	warnings []string
}

func (r *capturingProblemReporter) Warn(object ObjectRef, message string, args ...interface{}) {
	r.warnings = append(r.warnings, fmt.Sprintf("%s: %s", object, fmt.Sprintf(message, args...)))
}
