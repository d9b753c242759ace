// Package game runs a puzzle session: it turns menu intents and piece drops
// into puzzle state transitions, and sequences the animations around them
// with completion barriers.
//
// All session state is owned by the goroutine running Controller.Run.
// Barrier callbacks and public methods post work into that loop, so the
// puzzle state is never touched from two goroutines.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/aiham/dymaxion/pkg/barrier"
	"github.com/aiham/dymaxion/pkg/puzzle"
	"github.com/aiham/dymaxion/pkg/topology"
	"github.com/aiham/dymaxion/pkg/types"
)

// Phase is the session phase.
type Phase int

// Session phases.
const (
	// PhaseIdle has no game on the board.
	PhaseIdle Phase = iota + 1
	// PhasePlaying accepts drops and shuffles.
	PhasePlaying
	// PhaseSolved shows the finished picture until the next game.
	PhaseSolved
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseSolved:
		return "solved"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	for _, candidate := range []Phase{PhaseIdle, PhasePlaying, PhaseSolved} {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// DropOutcome says what happened to a dropped piece.
type DropOutcome int

// Drop outcomes.
const (
	// DropReturned sent the piece back to its slot.
	DropReturned DropOutcome = iota + 1
	// DropSwapped exchanged the piece with the target slot's piece.
	DropSwapped
)

func (o DropOutcome) String() string {
	if o == DropSwapped {
		return "swapped"
	}
	return "returned"
}

// Options configures a Controller.
type Options struct {
	Puzzles  []string
	Animator Animator
	Recorder types.Recorder
	Logger   *slog.Logger
	Rand     *rand.Rand
	Topology *topology.Table
	Speeds   Speeds
	Now      func() time.Time

	// OnSolved runs on the session loop after a game is solved and recorded.
	OnSolved func(types.GameRecord)
}

// Snapshot is a copy of the session state.
type Snapshot struct {
	Phase      Phase             `json:"phase"`
	Puzzle     string            `json:"puzzle,omitempty"`
	Busy       bool              `json:"busy"`
	Swaps      int               `json:"swaps"`
	Shuffles   int               `json:"shuffles"`
	Assignment puzzle.Assignment `json:"-"`
	Pieces     []types.Piece     `json:"pieces,omitempty"`
	LastRecord *types.GameRecord `json:"last_record,omitempty"`
	LastError  string            `json:"last_error,omitempty"`
}

// Controller drives one puzzle session.
type Controller struct {
	puzzles  []string
	animator Animator
	recorder types.Recorder
	logger   *slog.Logger
	rng      *rand.Rand
	table    *topology.Table
	speeds   Speeds
	now      func() time.Time
	onSolved func(types.GameRecord)

	mu      sync.Mutex
	queue   []func()
	closed  bool
	wake    chan struct{}
	stopped chan struct{}
	started bool

	// Owned by the loop goroutine.
	state      *puzzle.State
	current    string
	previous   string
	phase      Phase
	busy       bool
	swaps      int
	shuffles   int
	startedAt  time.Time
	lastRecord *types.GameRecord
	lastErr    error
	inflight   map[*barrier.Barrier]struct{}
	idle       []chan struct{}
}

// New creates a Controller. Its methods block until Run is processing the
// session loop.
func New(opts Options) (*Controller, error) {
	puzzles := opts.Puzzles
	if len(puzzles) == 0 {
		puzzles = types.DefaultPuzzles
	}
	if opts.Animator == nil {
		return nil, errors.New("game: animator is required")
	}
	c := &Controller{
		puzzles:  slices.Clone(puzzles),
		animator: opts.Animator,
		recorder: opts.Recorder,
		logger:   opts.Logger,
		rng:      opts.Rand,
		table:    opts.Topology,
		speeds:   opts.Speeds,
		now:      opts.Now,
		onSolved: opts.OnSolved,
		wake:     make(chan struct{}, 1),
		stopped:  make(chan struct{}),
		phase:    PhaseIdle,
		inflight: make(map[*barrier.Barrier]struct{}),
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if c.table == nil {
		c.table = topology.Default()
	}
	if c.speeds == (Speeds{}) {
		c.speeds = DefaultSpeeds
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c, nil
}

// Run processes session work until ctx ends. On return every in-flight
// barrier is cancelled, so no continuation runs after teardown.
func (c *Controller) Run(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return errors.New("game: controller already running")
	}
	c.started = true
	c.mu.Unlock()

	defer c.teardown()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.wake:
			c.drain()
		}
	}
}

func (c *Controller) drain() {
	for {
		c.mu.Lock()
		if len(c.queue) == 0 || c.closed {
			c.mu.Unlock()
			return
		}
		fn := c.queue[0]
		c.queue = c.queue[1:]
		c.mu.Unlock()
		fn()
	}
}

// post queues fn for the loop. It never blocks, so barrier callbacks may call
// it from inside Animate on the loop goroutine.
func (c *Controller) post(fn func()) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.queue = append(c.queue, fn)
	c.mu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *Controller) teardown() {
	c.mu.Lock()
	c.closed = true
	c.queue = nil
	c.mu.Unlock()

	for b := range c.inflight {
		b.Cancel()
	}
	c.inflight = nil
	if c.state != nil {
		c.state.Destroy()
		c.state = nil
	}
	close(c.stopped)
}

// call runs fn on the loop and returns its result.
func (c *Controller) call(ctx context.Context, fn func() error) error {
	reply := make(chan error, 1)
	c.post(func() { reply <- fn() })
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-c.stopped:
		return types.ErrStopped
	}
}

// Submit handles a menu intent. Animations continue after Submit returns;
// use WaitIdle to wait for them.
func (c *Controller) Submit(ctx context.Context, in types.Intent) error {
	return c.call(ctx, func() error { return c.handle(in) })
}

func (c *Controller) handle(in types.Intent) error {
	switch in {
	case types.IntentNewGame:
		return c.newGame()
	case types.IntentShuffle:
		return c.shuffle()
	case types.IntentQuit:
		return c.quit()
	case types.IntentAbout:
		return c.about()
	default:
		return fmt.Errorf("%w: %d", types.ErrUnknownIntent, int(in))
	}
}

// Drop handles a piece released over the board. to is zero when the piece
// was dropped away from any slot. Pieces dropped on a slot of another shape,
// on their own slot, or off the board are sent back.
func (c *Controller) Drop(ctx context.Context, from, to types.Slot) (DropOutcome, error) {
	var outcome DropOutcome
	err := c.call(ctx, func() error {
		var err error
		outcome, err = c.drop(from, to)
		return err
	})
	if err != nil {
		return 0, err
	}
	return outcome, nil
}

// Snapshot returns a copy of the session state.
func (c *Controller) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := c.call(ctx, func() error {
		snap = Snapshot{
			Phase:      c.phase,
			Puzzle:     c.current,
			Busy:       c.busy,
			Swaps:      c.swaps,
			Shuffles:   c.shuffles,
			LastRecord: c.lastRecord,
		}
		if c.lastErr != nil {
			snap.LastError = c.lastErr.Error()
		}
		if c.state != nil {
			snap.Assignment = c.state.Assignment()
			snap.Pieces = c.state.Pieces()
		}
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// WaitIdle blocks until no animation sequence is in flight.
func (c *Controller) WaitIdle(ctx context.Context) error {
	var ch chan struct{}
	err := c.call(ctx, func() error {
		ch = make(chan struct{})
		if c.busy {
			c.idle = append(c.idle, ch)
		} else {
			close(ch)
		}
		return nil
	})
	if err != nil {
		return err
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.stopped:
		return types.ErrStopped
	}
}

func (c *Controller) setBusy(busy bool) {
	c.busy = busy
	if busy {
		return
	}
	for _, ch := range c.idle {
		close(ch)
	}
	c.idle = nil
}

// animate starts a group of animations and runs next on the loop once all
// of them have finished.
func (c *Controller) animate(group string, anims []Animation, next func()) error {
	if len(anims) == 0 {
		c.post(next)
		return nil
	}

	ids := make([]string, len(anims))
	for i, a := range anims {
		ids[i] = a.Key()
	}

	var b *barrier.Barrier
	b, err := barrier.New(ids, func() {
		c.post(func() {
			delete(c.inflight, b)
			c.logger.Debug("animation group finished", "group", group, "count", len(ids))
			next()
		})
	})
	if err != nil {
		return fmt.Errorf("animate %s: %w", group, err)
	}
	c.inflight[b] = struct{}{}

	c.logger.Debug("animation group started", "group", group, "count", len(ids))
	for _, a := range anims {
		c.animator.Animate(a, b.Reporter(a.Key()))
	}
	return nil
}

// fail records an error raised inside a continuation, where no caller is
// waiting, and leaves the session idle.
func (c *Controller) fail(op string, err error) {
	c.lastErr = fmt.Errorf("%s: %w", op, err)
	c.logger.Error("session error", "op", op, "err", err)
	c.setBusy(false)
}

func (c *Controller) imagePath(name string) func(types.Slot) string {
	return func(id types.Slot) string {
		return fmt.Sprintf("img/puzzles/%s/%d.png", name, id)
	}
}

// pickPuzzle chooses a picture at random, avoiding the previous one when
// there is a choice.
func (c *Controller) pickPuzzle() string {
	candidates := c.puzzles
	if len(candidates) > 1 && c.previous != "" {
		candidates = slices.DeleteFunc(slices.Clone(candidates), func(p string) bool { return p == c.previous })
	}
	return candidates[c.rng.IntN(len(candidates))]
}

func (c *Controller) newGame() error {
	if c.busy {
		return types.ErrBusy
	}

	name := c.pickPuzzle()
	st, err := puzzle.New(puzzle.NewPieceSet(c.imagePath(name)), puzzle.WithTopology(c.table), puzzle.WithRand(c.rng))
	if err != nil {
		return err
	}
	if _, err := st.Shuffle(); err != nil {
		return err
	}

	c.setBusy(true)
	c.lastErr = nil
	c.logger.Info("starting game", "puzzle", name)

	bringIn := func() {
		if err := c.animate("load", c.loadAnimations(st), func() {
			if err := c.animate("move_in", c.moveInAnimations(st), func() {
				c.state = st
				c.current = name
				c.previous = name
				c.phase = PhasePlaying
				c.swaps = 0
				c.shuffles = 0
				c.startedAt = c.now()
				c.setBusy(false)
			}); err != nil {
				c.fail("new game", err)
			}
		}); err != nil {
			c.fail("new game", err)
		}
	}

	if err := c.clearBoard(bringIn); err != nil {
		c.setBusy(false)
		return err
	}
	return nil
}

// clearBoard flies the current pieces off the board, destroys the state and
// then runs next.
func (c *Controller) clearBoard(next func()) error {
	if c.state == nil {
		c.post(next)
		return nil
	}
	old := c.state
	return c.animate("move_out", c.moveOutAnimations(old), func() {
		old.Destroy()
		if c.state == old {
			c.state = nil
		}
		next()
	})
}

func (c *Controller) shuffle() error {
	if c.busy {
		return types.ErrBusy
	}
	if c.state == nil || c.phase != PhasePlaying {
		return types.ErrNoGame
	}

	before := c.state.Assignment()
	after, err := c.state.Shuffle()
	if err != nil {
		return err
	}

	var anims []Animation
	for _, slot := range types.AllSlots() {
		piece := before[slot]
		target := slotOf(after, piece)
		anims = append(anims, Animation{Kind: Move, Piece: piece, From: slot, To: target, Duration: c.speeds.Shuffle})
		if angle := c.rotation(slot, target); angle != 0 {
			anims = append(anims, Animation{Kind: Rotate, Piece: piece, From: slot, To: target, Angle: angle, Duration: c.speeds.Shuffle})
		}
	}

	c.setBusy(true)
	if err := c.animate("shuffle", anims, func() {
		c.shuffles++
		c.setBusy(false)
	}); err != nil {
		c.setBusy(false)
		return err
	}
	return nil
}

func (c *Controller) drop(from, to types.Slot) (DropOutcome, error) {
	if c.busy {
		return 0, types.ErrBusy
	}
	if c.state == nil || c.phase != PhasePlaying {
		return 0, types.ErrNoGame
	}
	if !from.Valid() {
		return 0, fmt.Errorf("%w: drop from %d", types.ErrInvalidSlot, from)
	}
	if to != 0 && !to.Valid() {
		return 0, fmt.Errorf("%w: drop onto %d", types.ErrInvalidSlot, to)
	}

	a := c.state.Assignment()
	c.setBusy(true)

	if to == 0 || to == from || !c.table.CanSwap(from, to) {
		back := []Animation{{Kind: Return, Piece: a[from], From: from, To: from, Duration: c.speeds.MoveBack}}
		if err := c.animate("return", back, func() { c.setBusy(false) }); err != nil {
			c.setBusy(false)
			return 0, err
		}
		return DropReturned, nil
	}

	pa, pb := a[from], a[to]
	anims := []Animation{
		{Kind: Move, Piece: pa, From: from, To: to, Duration: c.speeds.MoveTo},
		{Kind: Move, Piece: pb, From: to, To: from, Duration: c.speeds.MoveTo},
	}
	if angle := c.rotation(from, to); angle != 0 {
		anims = append(anims,
			Animation{Kind: Rotate, Piece: pa, From: from, To: to, Angle: angle, Duration: c.speeds.MoveTo},
			Animation{Kind: Rotate, Piece: pb, From: to, To: from, Angle: angle, Duration: c.speeds.MoveTo},
		)
	}

	st := c.state
	if err := c.animate("swap", anims, func() {
		if _, err := st.Swap(from, to); err != nil {
			c.fail("swap", err)
			return
		}
		c.swaps++
		if st.IsSolved() {
			c.finish()
		}
		c.setBusy(false)
	}); err != nil {
		c.setBusy(false)
		return 0, err
	}
	return DropSwapped, nil
}

// finish moves the session to PhaseSolved and records the game.
func (c *Controller) finish() {
	c.phase = PhaseSolved
	rec := types.GameRecord{
		Puzzle:    c.current,
		Swaps:     c.swaps,
		Shuffles:  c.shuffles,
		StartedAt: c.startedAt,
		SolvedAt:  c.now(),
	}

	if c.recorder != nil {
		id, err := c.recorder.Record(rec)
		if err != nil {
			c.lastErr = fmt.Errorf("record game: %w", err)
			c.logger.Error("record game", "puzzle", rec.Puzzle, "err", err)
		} else {
			rec.ID = id
		}
	}
	c.lastRecord = &rec
	c.logger.Info("puzzle solved", "puzzle", rec.Puzzle, "swaps", rec.Swaps, "duration", rec.Duration())

	if c.onSolved != nil {
		c.onSolved(rec)
	}
}

func (c *Controller) quit() error {
	if c.busy {
		return types.ErrBusy
	}
	if c.state == nil {
		return types.ErrNoGame
	}
	c.setBusy(true)
	c.logger.Info("ending game", "puzzle", c.current)
	if err := c.clearBoard(func() {
		c.current = ""
		c.phase = PhaseIdle
		c.setBusy(false)
	}); err != nil {
		c.setBusy(false)
		return err
	}
	return nil
}

func (c *Controller) about() error {
	if c.busy {
		return types.ErrBusy
	}
	c.logger.Debug("about requested")
	return nil
}

func (c *Controller) loadAnimations(st *puzzle.State) []Animation {
	var anims []Animation
	for _, p := range st.Pieces() {
		anims = append(anims, Animation{Kind: Load, Piece: p.ID, To: p.Slot, Duration: c.speeds.Load})
	}
	return anims
}

func (c *Controller) moveInAnimations(st *puzzle.State) []Animation {
	var anims []Animation
	for _, p := range st.Pieces() {
		anims = append(anims, Animation{Kind: MoveIn, Piece: p.ID, To: p.Slot, Duration: c.speeds.MoveInside})
		anims = append(anims, Animation{Kind: Rotate, Piece: p.ID, To: p.Slot, Angle: c.rotation(p.ID, p.Slot), Duration: c.speeds.MoveInside})
	}
	return anims
}

func (c *Controller) moveOutAnimations(st *puzzle.State) []Animation {
	var anims []Animation
	for _, p := range st.Pieces() {
		anims = append(anims, Animation{Kind: MoveOut, Piece: p.ID, From: p.Slot, Duration: c.speeds.MoveOutside})
		anims = append(anims, Animation{Kind: Rotate, Piece: p.ID, From: p.Slot, Angle: 2 * math.Pi, Duration: c.speeds.MoveOutside})
	}
	return anims
}

// rotation is the turn a piece needs when it moves between the two slots.
// Both slots come from the assignment, so the lookup cannot fail.
func (c *Controller) rotation(from, to types.Slot) float64 {
	angle, err := topology.Rotation(c.table, from, to)
	if err != nil {
		return 0
	}
	return angle
}

func slotOf(a puzzle.Assignment, piece types.Slot) types.Slot {
	for _, slot := range types.AllSlots() {
		if a[slot] == piece {
			return slot
		}
	}
	return 0
}
