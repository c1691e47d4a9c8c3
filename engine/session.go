package engine

import (
	"errors"
	"log"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/segmentio/ksuid"

	"github.com/lixenwraith/swimrace/components"
	"github.com/lixenwraith/swimrace/constants"
	"github.com/lixenwraith/swimrace/events"
	"github.com/lixenwraith/swimrace/status"
)

// ErrLayoutLocked is returned when the track layout is replaced after the race left Idle
var ErrLayoutLocked = errors.New("layout can only change while idle")

// Input bits packed into Session.input
const (
	inputUp uint32 = 1 << iota
	inputDown
)

// Options configures a new Session
type Options struct {
	ID         string                         // Empty generates a ksuid
	Score      float64                        // External score, sanitized before use
	Inventory  map[components.PowerUpKind]int // Purchase record from the shop
	Track      components.Track               // Zero value selects DefaultTrack
	Seed       uint64                         // Seed for the default source, 0 is random
	Rand       Rand                           // Overrides Seed when set
	Feedback   FeedbackSink                   // Optional audio/log hook, invoked under recover
	OnComplete func(Result)                   // Fires once after the grace period
	Logger     *log.Logger
	Metrics    *status.Registry
}

// Session is the aggregate root of one race
// Only Step mutates simulation state; the request methods are safe from any goroutine
type Session struct {
	ID    string
	Track components.Track
	Score float64

	Racers    []*components.Racer
	Obstacles []*components.TrackObject
	Boosters  []*components.TrackObject
	Particles []components.Particle
	Inventory *components.Inventory

	Commentary string
	Leader     int // Index into Racers, refreshed by the commentary stage

	Rand    Rand
	Metrics *status.Registry

	// Lifecycle, owned by Step; phase is atomic so hosts may poll State
	phase         atomic.Uint32
	frame         uint64
	countdownStep int
	countdownLeft int
	graceLeft     int
	winner        int
	winnerFrame   uint64
	completed     bool

	systems []System

	// Async boundary
	startRequested atomic.Bool
	input          atomic.Uint32
	requests       *events.EventQueue
	notices        *events.EventQueue
	closed         atomic.Bool
	stepMu         sync.Mutex

	sink       FeedbackSink
	onComplete func(Result)
	logger     *log.Logger
	last       Snapshot

	// Cached metric pointers
	statFrames     *atomic.Int64
	statSinkErrors *atomic.Int64
	statRejected   *atomic.Int64
	statDropped    *atomic.Int64
	statState      *status.AtomicString
}

// NewSession creates an Idle race with racers on the start line and an empty track
func NewSession(opts Options) *Session {
	track := opts.Track
	if track.FinishX == 0 && track.StartX == 0 {
		track = components.DefaultTrack()
	}
	rng := opts.Rand
	if rng == nil {
		rng = NewRand(opts.Seed)
	}
	id := opts.ID
	if id == "" {
		id = ksuid.New().String()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = status.NewRegistry()
	}

	score := SanitizeScore(opts.Score)
	s := &Session{
		ID:             id,
		Track:          track,
		Score:          score,
		Racers:         newRacers(track, score, rng),
		Inventory:      components.NewInventory(opts.Inventory),
		Commentary:     OpeningCommentary(score),
		Rand:           rng,
		Metrics:        metrics,
		winner:         -1,
		requests:       events.NewEventQueue(),
		notices:        events.NewEventQueue(),
		sink:           opts.Feedback,
		onComplete:     opts.OnComplete,
		logger:         logger,
		statFrames:     metrics.Ints.Get("engine.frames"),
		statSinkErrors: metrics.Ints.Get("engine.sink_errors"),
		statRejected:   metrics.Ints.Get("powerups.rejected"),
		statDropped:    metrics.Ints.Get("engine.notices_dropped"),
		statState:      metrics.Strings.Get("race.state"),
	}
	s.statState.Store(StateIdle.String())
	s.last = s.buildSnapshot()
	return s
}

// SetLayout installs the track objects, only allowed while Idle
func (s *Session) SetLayout(obstacles, boosters []*components.TrackObject) error {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()

	if s.State() != StateIdle {
		return ErrLayoutLocked
	}
	s.Obstacles = obstacles
	s.Boosters = boosters
	s.last = s.buildSnapshot()
	return nil
}

// AddSystem registers a stage, systems run in ascending Priority
func (s *Session) AddSystem(sys System) {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()

	s.systems = append(s.systems, sys)
	sort.SliceStable(s.systems, func(i, j int) bool {
		return s.systems[i].Priority() < s.systems[j].Priority()
	})
}

// RequestStart asks the next frame to begin the countdown, ignored outside Idle
func (s *Session) RequestStart() {
	if s.closed.Load() {
		return
	}
	s.startRequested.Store(true)
}

// SetInput records the held vertical controls, sampled once per frame
func (s *Session) SetInput(up, down bool) {
	var bits uint32
	if up {
		bits |= inputUp
	}
	if down {
		bits |= inputDown
	}
	s.input.Store(bits)
}

// Input returns the held controls as sampled by the movement stage
func (s *Session) Input() (up, down bool) {
	bits := s.input.Load()
	return bits&inputUp != 0, bits&inputDown != 0
}

// RequestPowerUp queues an activation for the next frame
// Validation happens on the frame loop; invalid requests are dropped there
// A request that does not fit the queue counts as rejected
func (s *Session) RequestPowerUp(kind components.PowerUpKind) {
	if s.closed.Load() {
		return
	}
	if !s.requests.Push(events.GameEvent{
		Type:    events.EventPowerUpRequest,
		Payload: &events.PowerUpPayload{Kind: kind},
	}) {
		s.statRejected.Add(1)
	}
}

// DrainPowerUpRequests returns every queued activation in arrival order
func (s *Session) DrainPowerUpRequests() []components.PowerUpKind {
	pending := s.requests.Consume()
	if len(pending) == 0 {
		return nil
	}
	kinds := make([]components.PowerUpKind, 0, len(pending))
	for _, ev := range pending {
		if p, ok := ev.Payload.(*events.PowerUpPayload); ok {
			kinds = append(kinds, p.Kind)
		}
	}
	return kinds
}

// NextNotice pops the oldest undisplayed notice
func (s *Session) NextNotice() (events.GameEvent, bool) {
	return s.notices.Pop()
}

// Notify records a display event and forwards it to the feedback sink
func (s *Session) Notify(t events.EventType, payload any) {
	ev := events.GameEvent{Type: t, Payload: payload, Frame: s.frame}
	if !s.notices.Push(ev) {
		s.statDropped.Add(1)
	}
	s.deliver(ev)
}

// Logf writes to the session logger
func (s *Session) Logf(format string, args ...any) {
	s.logger.Printf(format, args...)
}

// Close tears the session down; Step becomes a no-op and completion never fires
// Blocks until an in-flight Step returns
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	s.stepMu.Lock()
	defer s.stepMu.Unlock()
	s.requests.Discard()
	s.startRequested.Store(false)
}

// Closed reports whether Close was called
func (s *Session) Closed() bool {
	return s.closed.Load()
}

// State returns the current race phase, safe from any goroutine
func (s *Session) State() RaceState {
	return RaceState(s.phase.Load())
}

// Frame returns the number of frames stepped since creation
// Only Step and the systems it runs may call it; hosts read Snapshot.Frame
func (s *Session) Frame() uint64 {
	return s.frame
}

// Racing reports whether simulation stages should advance positions
func (s *Session) Racing() bool {
	return s.State() == StateRacing && s.winner < 0
}

// Winner returns the crowned racer, if any
func (s *Session) Winner() (*components.Racer, bool) {
	if s.winner < 0 {
		return nil, false
	}
	return s.Racers[s.winner], true
}

// WinnerIndex returns the winner's start index or -1
func (s *Session) WinnerIndex() int {
	return s.winner
}

// Player returns the player's racer
func (s *Session) Player() *components.Racer {
	return s.Racers[0]
}

// LeaderIndex returns the racer furthest along, ties to the player then start order
func (s *Session) LeaderIndex() int {
	best := 0
	for i := 1; i < len(s.Racers); i++ {
		if ahead(s.Racers[i], s.Racers[best]) {
			best = i
		}
	}
	return best
}

// LeaderX returns the leading racer's X
func (s *Session) LeaderX() float64 {
	if len(s.Racers) == 0 {
		return s.Track.StartX
	}
	return s.Racers[s.LeaderIndex()].X
}

// ahead reports whether a strictly beats b for leader and winner ranking
// Equal X favours the player; equal non-players keep start order via iteration
func ahead(a, b *components.Racer) bool {
	return a.X > b.X || (a.X == b.X && a.IsPlayer && !b.IsPlayer)
}

// Snapshot returns the latest view, safe from any goroutine
func (s *Session) Snapshot() Snapshot {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()
	return s.last
}

// Step advances the race by one frame and returns the resulting view
// The completion callback runs after the step lock is released so it may call Close
func (s *Session) Step() Snapshot {
	snap, done := s.step()
	if done != nil && s.onComplete != nil && !s.closed.Load() {
		s.onComplete(*done)
	}
	return snap
}

func (s *Session) step() (Snapshot, *Result) {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()

	if s.closed.Load() {
		return s.last, nil
	}

	s.frame++
	done := s.advanceLifecycle()

	finishChecked := false
	for _, sys := range s.systems {
		if !finishChecked && sys.Priority() >= constants.PriorityParticles {
			s.checkFinish()
			finishChecked = true
		}
		sys.Update(s)
	}
	if !finishChecked {
		s.checkFinish()
	}

	s.statFrames.Add(1)
	s.last = s.buildSnapshot()
	return s.last, done
}

// advanceLifecycle handles the start request, countdown and grace timers
// Returns the result on the frame the grace period ends
func (s *Session) advanceLifecycle() *Result {
	start := s.startRequested.Swap(false)

	switch s.State() {
	case StateIdle:
		if start {
			s.setState(StateCountdown)
			s.countdownStep = 0
			s.countdownLeft = constants.CountdownStepFrames
			s.Notify(events.NoticeCountdown, &events.CountdownPayload{Label: CountdownLabels[0]})
		}
		return nil

	case StateCountdown:
		s.countdownLeft--
		if s.countdownLeft > 0 {
			return nil
		}
		s.countdownStep++
		if s.countdownStep < len(CountdownLabels) {
			s.countdownLeft = constants.CountdownStepFrames
			s.Notify(events.NoticeCountdown, &events.CountdownPayload{Label: CountdownLabels[s.countdownStep]})
			return nil
		}
		s.countdownStep = len(CountdownLabels) - 1
		s.setState(StateRacing)
		s.Commentary = OpeningCommentary(s.Score)
		s.Notify(events.NoticeRaceStart, nil)
		return nil

	case StateFinished:
		if s.completed {
			return nil
		}
		s.graceLeft--
		if s.graceLeft > 0 {
			return nil
		}
		s.completed = true
		s.Notify(events.NoticeRaceComplete, nil)
		w := s.Racers[s.winner]
		return &Result{Winner: w.Name, IsPlayer: w.IsPlayer, Frame: s.winnerFrame}
	}
	return nil
}

// checkFinish crowns the first racer at or past the line, at most once
func (s *Session) checkFinish() {
	if s.State() != StateRacing || s.winner >= 0 {
		return
	}

	best := -1
	for i, r := range s.Racers {
		if !s.Track.Crossed(r.X) {
			continue
		}
		if best < 0 || ahead(r, s.Racers[best]) {
			best = i
		}
	}
	if best < 0 {
		return
	}

	s.winner = best
	s.winnerFrame = s.frame
	s.graceLeft = constants.GraceFrames
	s.setState(StateFinished)

	w := s.Racers[best]
	s.SpawnBurst(w.X, w.Y, components.ParticleColorWin)
	s.Notify(events.NoticeRaceFinished, &events.FinishPayload{Winner: w.Name, IsPlayer: w.IsPlayer})
	s.logger.Printf("race %s: %s wins at frame %d", s.ID, w.Name, s.frame)
}

func (s *Session) setState(next RaceState) {
	s.phase.Store(uint32(next))
	s.statState.Store(next.String())
}
