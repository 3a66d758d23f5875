package framework

import (
	"context"
	"log"
	"time"

	"github.com/golang/glog"
)

// DefaultInterval is the iteration interval when Loop.Interval is zero.
const DefaultInterval = 100 * time.Millisecond

// Loop runs controllers at a fixed interval, ordered by priority level.
// Controllers at the same level run in the order they are added.
type Loop struct {
	Interval time.Duration
	// Iterations stops the loop after the specified number of
	// iterations if not zero.
	Iterations uint64
	// StopOnError stops the loop when any controller fails.
	StopOnError bool

	controllers [PriorityLevels][]Controller
	runners     []Runnable
}

// LoopAdder provides specific logic to add components to loop.
type LoopAdder interface {
	AddToLoop(*Loop)
}

type loopIteration struct {
	ctx           context.Context
	time          time.Time
	priorityLevel int
	seq           uint64
}

// NewLoop creates a Loop.
func NewLoop() *Loop {
	return &Loop{Interval: DefaultInterval}
}

// Add adds LoopAdders.
func (l *Loop) Add(adders ...LoopAdder) *Loop {
	for _, adder := range adders {
		adder.AddToLoop(l)
	}
	return l
}

// AddController registers controllers to the loop.
func (l *Loop) AddController(priorityLevel int, ctls ...Controller) *Loop {
	l.controllers[priorityLevel] = append(l.controllers[priorityLevel], ctls...)
	for _, ctl := range ctls {
		if runner, ok := ctl.(Runnable); ok {
			l.runners = append(l.runners, runner)
		}
	}
	return l
}

// AddRunnable adds Runnable implementions running along with the loop.
func (l *Loop) AddRunnable(runnables ...Runnable) *Loop {
	l.runners = append(l.runners, runnables...)
	return l
}

// Run implements Runnable. The first iteration starts immediately.
func (l *Loop) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runner := NewRunnerWith(ctx)
	runner.Go(l.runners...)

	err := l.iterate(ctx)
	cancel()
	if rerr := runner.Wait(); err == nil || err == context.Canceled {
		if rerr != nil {
			return rerr
		}
	}
	return err
}

func (l *Loop) iterate(ctx context.Context) error {
	interval := l.Interval
	if interval == 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for seq := uint64(0); ; {
		if err := l.runIteration(ctx, seq); err != nil {
			return err
		}
		seq++
		if l.Iterations != 0 && seq >= l.Iterations {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunOrFail is intended to be used in main to simply run the loop.
func (l *Loop) RunOrFail() {
	runner := NewRunner().HandleSignals().Go(l)
	if err := runner.Wait(); err != nil {
		log.Fatalln(err)
	}
}

func (l *Loop) runIteration(ctx context.Context, seq uint64) error {
	iter := &loopIteration{ctx: ctx, time: time.Now(), seq: seq}
	for i := 0; i < PriorityLevels; i++ {
		iter.priorityLevel = i
		for _, ctl := range l.controllers[i] {
			if err := ctl.Control(iter); err != nil {
				if l.StopOnError {
					return err
				}
				glog.Errorf("controller error: %v", err)
			}
		}
	}
	return nil
}

func (t *loopIteration) Context() context.Context {
	return t.ctx
}

func (t *loopIteration) Time() time.Time {
	return t.time
}

func (t *loopIteration) PriorityLevel() int {
	return t.priorityLevel
}

func (t *loopIteration) Iteration() uint64 {
	return t.seq
}
