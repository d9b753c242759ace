package game

import (
	"fmt"
	"time"

	"github.com/aiham/dymaxion/pkg/types"
)

// AnimationKind names what the renderer does with a piece.
type AnimationKind int

// Animation kinds.
const (
	// Load fetches the piece image before it is shown.
	Load AnimationKind = iota + 1
	// MoveIn flies a piece from off-board into its slot.
	MoveIn
	// MoveOut flies a piece off the board.
	MoveOut
	// Move slides a piece between two slots.
	Move
	// Return slides a dragged piece back into the slot it came from.
	Return
	// Rotate turns a piece by Angle radians.
	Rotate
)

var kindNames = map[AnimationKind]string{
	Load:    "load",
	MoveIn:  "move_in",
	MoveOut: "move_out",
	Move:    "move",
	Return:  "return",
	Rotate:  "rotate",
}

func (k AnimationKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Animation is one independently timed operation on one piece.
type Animation struct {
	Kind     AnimationKind
	Piece    types.Slot // piece ID
	From     types.Slot // zero when the piece starts off-board
	To       types.Slot // zero when the piece leaves the board
	Angle    float64
	Duration time.Duration
}

// Key identifies the animation inside its barrier. A piece has at most one
// animation of each kind per group.
func (a Animation) Key() string {
	return fmt.Sprintf("%d_%s", a.Piece, a.Kind)
}

// Animator is the rendering collaborator. Animate starts a and calls done
// exactly once when it finishes, on any goroutine, possibly before Animate
// returns.
type Animator interface {
	Animate(a Animation, done func())
}

// AnimatorFunc adapts a function to the Animator interface.
type AnimatorFunc func(a Animation, done func())

// Animate calls f(a, done).
func (f AnimatorFunc) Animate(a Animation, done func()) {
	f(a, done)
}

// TimerAnimator completes every animation after its duration multiplied by
// Scale. A zero Scale completes on the next timer tick.
type TimerAnimator struct {
	Scale float64
}

// Animate implements Animator.
func (t TimerAnimator) Animate(a Animation, done func()) {
	time.AfterFunc(time.Duration(float64(a.Duration)*t.Scale), done)
}

// Speeds are the base animation durations.
type Speeds struct {
	Load        time.Duration
	MoveBack    time.Duration
	MoveTo      time.Duration
	MoveInside  time.Duration
	MoveOutside time.Duration
	Shuffle     time.Duration
}

// DefaultSpeeds matches the pacing of the browser game.
var DefaultSpeeds = Speeds{
	Load:        0,
	MoveBack:    400 * time.Millisecond,
	MoveTo:      400 * time.Millisecond,
	MoveInside:  1600 * time.Millisecond,
	MoveOutside: 600 * time.Millisecond,
	Shuffle:     1000 * time.Millisecond,
}
