package parallel

import (
	"bytes"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeroll/timeroll/logger"
)

func TestResolve(t *testing.T) {
	assert.Equal(t, 1, Resolve(0))
	assert.Equal(t, 1, Resolve(1))
	assert.Equal(t, 6, Resolve(6))
	assert.Equal(t, runtime.GOMAXPROCS(0), Resolve(-1))
}

func TestRunSequentialKeepsOrder(t *testing.T) {
	var order []int
	err := Run(1, 5, nil, func(i int) error {
		order = append(order, i)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestRunGathersByIndex(t *testing.T) {
	const n = 64
	results := make([]int, n)
	err := Run(4, n, nil, func(i int) error {
		// stagger completions so gather order cannot ride on timing
		time.Sleep(time.Duration(i%3) * time.Millisecond)
		results[i] = i * 2
		return nil
	})
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		assert.Equal(t, i*2, results[i], "slot %d", i)
	}
}

func TestRunParallelMatchesSequential(t *testing.T) {
	square := func(out []int) func(int) error {
		return func(i int) error {
			out[i] = i * i
			return nil
		}
	}
	const n = 40
	seq := make([]int, n)
	par := make([]int, n)
	require.NoError(t, Run(1, n, nil, square(seq)))
	require.NoError(t, Run(8, n, nil, square(par)))
	assert.Equal(t, seq, par)
}

func TestRunFirstFailureAborts(t *testing.T) {
	boom := errors.New("task failed")
	var started int64
	err := Run(2, 100, nil, func(i int) error {
		atomic.AddInt64(&started, 1)
		if i == 3 {
			return boom
		}
		time.Sleep(time.Millisecond)
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Less(t, atomic.LoadInt64(&started), int64(100), "cancellation stops submitting tasks")
}

func TestRunSequentialStopsAtFirstFailure(t *testing.T) {
	boom := errors.New("task failed")
	var calls int
	err := Run(1, 10, nil, func(i int) error {
		calls++
		if i == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestRunZeroTasks(t *testing.T) {
	err := Run(4, 0, nil, func(int) error {
		t.Fatal("no task should run")
		return nil
	})
	assert.NoError(t, err)
}

type countingReporter struct {
	mu    sync.Mutex
	steps [][2]int
}

func (r *countingReporter) Step(done, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, [2]int{done, total})
}

func TestReporterStepsOncePerTask(t *testing.T) {
	rep := &countingReporter{}
	require.NoError(t, Run(1, 3, rep, func(int) error { return nil }))
	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, rep.steps)
}

func TestReporterStepsUnderConcurrency(t *testing.T) {
	rep := &countingReporter{}
	require.NoError(t, Run(4, 20, rep, func(int) error { return nil }))
	require.Len(t, rep.steps, 20)
	for _, s := range rep.steps {
		assert.Equal(t, 20, s[1])
	}
}

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(logger.DEBUG, &buf)
	rep := NewLogReporter("rolling groups", log)

	rep.Step(1, 2)
	assert.Contains(t, buf.String(), "rolling groups: 1/2")

	rep.Step(2, 2)
	assert.Contains(t, buf.String(), "rolling groups: 2/2 done")
}
