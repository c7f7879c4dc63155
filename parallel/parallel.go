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

// Package parallel runs index-tagged tasks on a bounded worker pool. Callers
// gather results by writing into an index-addressed slice inside the task
// callback, which keeps output order equal to submission order no matter
// when tasks finish.
package parallel

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/timeroll/timeroll/logger"
)

// Reporter receives advisory progress. Step fires once per completed task
// and must be safe for concurrent use. Progress never affects results or
// ordering.
type Reporter interface {
	Step(done, total int)
}

// Nop returns a reporter that discards progress.
func Nop() Reporter {
	return nopReporter{}
}

type nopReporter struct{}

func (nopReporter) Step(int, int) {}

// NewLogReporter reports each completed task at debug level and the final
// one at info level.
func NewLogReporter(desc string, log logger.Logger) Reporter {
	return &logReporter{desc: desc, log: log}
}

type logReporter struct {
	desc string
	log  logger.Logger
}

func (r *logReporter) Step(done, total int) {
	if done == total {
		r.log.Info("%s: %d/%d done", r.desc, done, total)
		return
	}
	r.log.Debug("%s: %d/%d", r.desc, done, total)
}

// Resolve maps a worker-count setting to an effective pool size: zero falls
// back to sequential, negative takes every core.
func Resolve(workers int) int {
	switch {
	case workers == 0:
		return 1
	case workers < 0:
		return runtime.GOMAXPROCS(0)
	default:
		return workers
	}
}

// Run executes fn for every index in [0, n) with at most Resolve(workers)
// goroutines. A single worker or a single task short-circuits to a plain
// loop. The first failure cancels outstanding work and is returned.
func Run(workers, n int, rep Reporter, fn func(i int) error) error {
	if rep == nil {
		rep = Nop()
	}
	workers = Resolve(workers)
	if workers == 1 || n <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
			rep.Step(i+1, n)
		}
		return nil
	}

	var done int64
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := fn(i); err != nil {
				return err
			}
			rep.Step(int(atomic.AddInt64(&done, 1)), n)
			return nil
		})
	}
	return g.Wait()
}
