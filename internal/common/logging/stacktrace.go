package logging

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Stacktrace is the field WithStacktrace stores the stack under. CommandLineFormatter omits it.
const Stacktrace = "stacktrace"

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// WithStacktrace adds err to logger, plus the stack trace of the outermost error in its chain that has one.
func WithStacktrace(logger *logrus.Entry, err error) *logrus.Entry {
	logger = logger.WithError(err)
	if stack := stackOf(err); stack != nil {
		logger = logger.WithField(Stacktrace, stack)
	}
	return logger
}

// stackOf returns the stack of the outermost error in the chain that carries one.
// Both pkg/errors causes and fmt.Errorf("%w") wrapping are followed.
func stackOf(err error) errors.StackTrace {
	for err != nil {
		if tracer, ok := err.(stackTracer); ok {
			return tracer.StackTrace()
		}
		switch wrapper := err.(type) {
		case interface{ Cause() error }:
			err = wrapper.Cause()
		case interface{ Unwrap() error }:
			err = wrapper.Unwrap()
		default:
			return nil
		}
	}
	return nil
}
