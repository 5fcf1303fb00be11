package osmschema

import (
	"fmt"

	"github.com/jamesrr39/goutil/logpkg"
)

// ProblemReporter receives data-quality warnings found while parsing
// feature values out of raw tags. Warnings are informational: the feature
// in question simply yields no value and processing continues.
type ProblemReporter interface {
	Warn(object ObjectRef, message string, args ...interface{})
}

type loggerProblemReporter struct {
	logger *logpkg.Logger
}

func NewLoggerProblemReporter(logger *logpkg.Logger) ProblemReporter {
	return &loggerProblemReporter{logger}
}

func (r *loggerProblemReporter) Warn(object ObjectRef, message string, args ...interface{}) {
	r.logger.Warn("%s: %s", object, fmt.Sprintf(message, args...))
}

type discardProblemReporter struct{}

// NewDiscardProblemReporter returns a reporter that drops all warnings.
func NewDiscardProblemReporter() ProblemReporter {
	return &discardProblemReporter{}
}

func (r *discardProblemReporter) Warn(object ObjectRef, message string, args ...interface{}) {
}
