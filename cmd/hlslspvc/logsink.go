package main

import (
	"github.com/gogpu/hlslspv/diag"
	log "github.com/sirupsen/logrus"
)

// logrusSink forwards emitter diagnostics to logrus: the emitter reports
// through diag.Sink, the CLI layer installs the logger. It additionally
// records whether any error was reported so the caller can discard the
// output on failure.
type logrusSink struct {
	errored bool
}

func (s *logrusSink) Error(err *diag.Error) {
	s.errored = true
	log.WithField("kind", err.Kind.String()).Error(err.Message)
}

func (s *logrusSink) Warning(err *diag.Error) {
	log.WithField("kind", err.Kind.String()).Warn(err.Message)
}
