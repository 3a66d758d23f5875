package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoopRunsByPriority(t *testing.T) {
	var order []string
	record := func(name string) Controller {
		return ControlFunc(func(cc ControlContext) error {
			order = append(order, name)
			return nil
		})
	}
	loop := NewLoop()
	loop.Interval = time.Millisecond
	loop.Iterations = 2
	loop.AddController(PrLvPostProc, record("post"))
	loop.AddController(PrLvSense, record("sense1"), record("sense2"))
	require.NoError(t, loop.Run(context.Background()))
	require.Equal(t, []string{
		"sense1", "sense2", "post",
		"sense1", "sense2", "post",
	}, order)
}

func TestLoopStopOnError(t *testing.T) {
	failure := errors.New("sensor failure")
	var iterations []uint64
	loop := NewLoop()
	loop.Interval = time.Millisecond
	loop.StopOnError = true
	loop.AddController(PrLvSense, ControlFunc(func(cc ControlContext) error {
		iterations = append(iterations, cc.Iteration())
		if cc.Iteration() == 2 {
			return failure
		}
		return nil
	}))
	require.ErrorIs(t, loop.Run(context.Background()), failure)
	require.Equal(t, []uint64{0, 1, 2}, iterations)
}

func TestLoopCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	loop := NewLoop()
	loop.Interval = time.Millisecond
	loop.AddController(PrLvSense, ControlFunc(func(cc ControlContext) error {
		if cc.Iteration() == 3 {
			cancel()
		}
		return nil
	}))
	loop.AddRunnable(RunFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))
	require.ErrorIs(t, loop.Run(ctx), context.Canceled)
}

func TestRunnerAggregatesErrors(t *testing.T) {
	failure := errors.New("boom")
	runner := NewRunner().Go(
		RunFunc(func(context.Context) error { return nil }),
		NamedRun("canceled", RunFunc(func(context.Context) error { return context.Canceled })),
		RunFunc(func(context.Context) error { return failure }),
	)
	err := runner.Wait()
	require.ErrorIs(t, err, failure)
	require.Equal(t, "boom", err.Error())
}

func TestRunWithContextCloser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	closer := &chanCloser{ch: make(chan struct{})}
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := RunWithContextCloser(ctx, closer, func() error {
		<-closer.ch
		return errors.New("closed")
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, closer.count)

	closer = &chanCloser{ch: make(chan struct{})}
	err = RunWithContextCloser(context.Background(), closer, func() error { return nil })
	require.NoError(t, err)
	require.Equal(t, 1, closer.count)
}

type chanCloser struct {
	ch    chan struct{}
	count int
}

func (c *chanCloser) Close() error {
	c.count++
	if c.count == 1 {
		close(c.ch)
	}
	return nil
}
