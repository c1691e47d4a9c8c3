package systems

import (
	"fmt"
	"math"

	"github.com/lixenwraith/swimrace/constants"
	"github.com/lixenwraith/swimrace/engine"
	"github.com/lixenwraith/swimrace/status"
)

// commentaryLines are indexed by progress bucket, %s is the leader's name
var commentaryLines = [...]string{
	"%s pushes off with a clean start!",
	"%s finds a rhythm and edges ahead!",
	"%s is setting the pace!",
	"Halfway there and %s holds the lead!",
	"%s is pulling away down the stretch!",
	"%s can smell the finish line!",
	"%s is charging for the wall!",
}

type commentaryKey struct {
	leader string
	bucket int
}

// CommentarySystem derives the leader every frame and refreshes the race call at most every two seconds
// The line only changes when the leader or progress bucket does
type CommentarySystem struct {
	nextRefresh uint64
	last        commentaryKey
	hasLast     bool

	statLeader   *status.AtomicString
	statProgress *status.AtomicFloat
	statTopSpeed *status.AtomicFloat
}

func NewCommentarySystem(reg *status.Registry) *CommentarySystem {
	return &CommentarySystem{
		statLeader:   reg.Strings.Get("race.leader"),
		statProgress: reg.Floats.Get("race.leader_progress"),
		statTopSpeed: reg.Floats.Get("race.top_speed"),
	}
}

func (cs *CommentarySystem) Priority() int {
	return constants.PriorityCommentary
}

func (cs *CommentarySystem) Update(s *engine.Session) {
	s.Leader = s.LeaderIndex()
	leader := s.Racers[s.Leader]
	progress := s.Track.Progress(leader.X)
	cs.statLeader.Store(leader.Name)
	cs.statProgress.Store(progress)
	for _, r := range s.Racers {
		cs.statTopSpeed.Peak(r.CurrentSpeed)
	}

	if !s.Racing() {
		return
	}

	frame := s.Frame()
	if cs.nextRefresh == 0 {
		cs.nextRefresh = frame + constants.CommentaryIntervalFrames
		return
	}
	if frame < cs.nextRefresh {
		return
	}
	cs.nextRefresh = frame + constants.CommentaryIntervalFrames

	key := commentaryKey{leader: leader.Name, bucket: ProgressBucket(progress)}
	if cs.hasLast && key == cs.last {
		return
	}
	cs.last = key
	cs.hasLast = true
	s.Commentary = fmt.Sprintf(commentaryLines[key.bucket], key.leader)
}

// ProgressBucket maps a percentage to a commentary line index
func ProgressBucket(progress float64) int {
	bucket := int(math.Floor(progress / constants.CommentaryBucketWidth))
	if bucket < 0 {
		return 0
	}
	if bucket >= len(commentaryLines) {
		return len(commentaryLines) - 1
	}
	return bucket
}
