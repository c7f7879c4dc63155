/*
 * Copyright 2025 The TimeRoll Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package timeroll

import (
	"github.com/timeroll/timeroll/logger"
	"github.com/timeroll/timeroll/parallel"
	"github.com/timeroll/timeroll/rolling"
)

// Option configures one augmentation call. Calls are stateless; options
// never leak from one call into the next.
type Option func(*config)

type config struct {
	minPeriods   int
	center       bool
	workers      int
	engine       rolling.Engine
	showProgress bool
	diagHandler  rolling.DiagnosticHandler
	log          logger.Logger
}

func newConfig(opts ...Option) *config {
	c := &config{
		workers:      1,
		engine:       rolling.EngineRowwise,
		showProgress: true,
		log:          logger.GetDefault(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// reporter builds the progress reporter for a dispatch.
func (c *config) reporter(desc string) parallel.Reporter {
	if !c.showProgress {
		return parallel.Nop()
	}
	return parallel.NewLogReporter(desc, c.log)
}

// deliver hands normalization diagnostics to the configured handler, or
// warns through the logger when none is set.
func (c *config) deliver(diags []rolling.Diagnostic) {
	for _, d := range diags {
		if c.diagHandler != nil {
			c.diagHandler(d)
			continue
		}
		c.log.Warn("%s: %s", d.Unit, d.Message)
	}
}

// WithMinPeriods sets the smallest clipped-window row count that still
// produces a value. Zero (the default) means every window requires its full
// length.
func WithMinPeriods(n int) Option {
	return func(c *config) {
		c.minPeriods = n
	}
}

// WithCentered centers each window on its row instead of trailing it. Even
// windows take one extra row from the past.
func WithCentered() Option {
	return func(c *config) {
		c.center = true
	}
}

// WithWorkers sets how many groups compute concurrently. The default of 1
// runs sequentially; 0 also means sequential; a negative count uses every
// core. Worker count never changes results or row order.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithEngine selects the execution backend, rolling.EngineRowwise or
// rolling.EngineColumnar.
func WithEngine(e rolling.Engine) Option {
	return func(c *config) {
		c.engine = e
	}
}

// WithShowProgress toggles per-group progress logging. Enabled by default.
func WithShowProgress(show bool) Option {
	return func(c *config) {
		c.showProgress = show
	}
}

// WithDiagnosticHandler captures normalization diagnostics instead of
// logging them.
func WithDiagnosticHandler(h rolling.DiagnosticHandler) Option {
	return func(c *config) {
		c.diagHandler = h
	}
}

// WithLogger replaces the logger for this call.
func WithLogger(l logger.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithLogLevel sets the log level on this call's logger.
func WithLogLevel(level logger.Level) Option {
	return func(c *config) {
		c.log.SetLevel(level)
	}
}

// WithDiscardLog disables log output for this call.
func WithDiscardLog() Option {
	return func(c *config) {
		c.log = logger.NewDiscardLogger()
	}
}
