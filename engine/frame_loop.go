package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/swimrace/constants"
	"github.com/lixenwraith/swimrace/core"
)

// FrameLoop drives Session.Step on a fixed interval from its own goroutine
// Publishes the latest snapshot through an atomic pointer and an optional per-frame callback
// Drift is corrected against a running deadline; a loop that falls far behind resynchronizes instead of bursting
type FrameLoop struct {
	session  *Session
	interval time.Duration
	onFrame  func(Snapshot)

	latest atomic.Pointer[Snapshot]

	// Control
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	frameCount atomic.Uint64
}

// NewFrameLoop creates a loop for session; interval <= 0 selects FrameUpdateInterval
// onFrame, when set, runs on the loop goroutine after every Step and must not block
func NewFrameLoop(session *Session, interval time.Duration, onFrame func(Snapshot)) *FrameLoop {
	if interval <= 0 {
		interval = constants.FrameUpdateInterval
	}
	fl := &FrameLoop{
		session:  session,
		interval: interval,
		onFrame:  onFrame,
		stopChan: make(chan struct{}),
	}
	initial := session.Snapshot()
	fl.latest.Store(&initial)
	return fl
}

// Session returns the driven session
func (fl *FrameLoop) Session() *Session {
	return fl.session
}

// Latest returns the most recent published snapshot
func (fl *FrameLoop) Latest() Snapshot {
	return *fl.latest.Load()
}

// Frames returns the number of steps run by this loop
func (fl *FrameLoop) Frames() uint64 {
	return fl.frameCount.Load()
}

// Start begins stepping; the loop stops when ctx is cancelled or Stop is called
func (fl *FrameLoop) Start(ctx context.Context) {
	if !fl.running.CompareAndSwap(false, true) {
		return
	}
	fl.wg.Add(1)
	core.Go(func() { fl.run(ctx) })
}

// Stop closes the session and waits for the loop goroutine to exit
// Completion never fires after Stop returns
func (fl *FrameLoop) Stop() {
	fl.stopOnce.Do(func() {
		fl.session.Close()
		close(fl.stopChan)
		fl.wg.Wait()
	})
}

func (fl *FrameLoop) run(ctx context.Context) {
	defer fl.wg.Done()
	defer fl.running.Store(false)

	deadline := time.Now().Add(fl.interval)
	timer := time.NewTimer(fl.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			fl.session.Close()
			return
		case <-fl.stopChan:
			return
		case <-timer.C:
		}

		fl.tick()

		now := time.Now()
		deadline = deadline.Add(fl.interval)
		if now.Sub(deadline) > fl.interval*2 {
			deadline = now.Add(fl.interval)
		}

		sleep := deadline.Sub(now)
		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
	}
}

// tick runs one frame and publishes its snapshot
func (fl *FrameLoop) tick() {
	snap := fl.session.Step()
	fl.latest.Store(&snap)
	fl.frameCount.Add(1)
	if fl.onFrame != nil {
		fl.onFrame(snap)
	}
}
