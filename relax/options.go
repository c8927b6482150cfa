// SPDX-License-Identifier: MIT

package relax

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Option configures a Run call.
type Option func(*options)

type options struct {
	log logrus.FieldLogger
}

// WithLogger routes progress records to log. Panics on nil.
func WithLogger(log logrus.FieldLogger) Option {
	if log == nil {
		panic("relax: WithLogger(nil)")
	}
	return func(o *options) {
		o.log = log
	}
}

func newOptions(opts ...Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		o.log = quiet
	}
	return o
}
