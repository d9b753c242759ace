package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aiham/dymaxion/internal/game"
	"github.com/aiham/dymaxion/pkg/topology"
	"github.com/aiham/dymaxion/pkg/types"
)

const aboutText = `Dymaxion: the world map of Buckminster Fuller, cut into 23 triangles.
Swap pieces of the same shape until the picture is whole again.`

const playHelp = `Commands, one per line:
  new            start a new game
  swap A B       drop the piece in slot A onto slot B
  shuffle        shuffle the current game
  show           print the board
  quit           end the current game
  about          print the about text
  exit           leave`

// playEvent is one JSON line of play output.
type playEvent struct {
	Command string         `json:"command"`
	Outcome string         `json:"outcome,omitempty"`
	Error   string         `json:"error,omitempty"`
	State   *game.Snapshot `json:"state,omitempty"`
	Board   []placement    `json:"board,omitempty"`
}

func newPlayCmd(a *app) *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a session reading commands from stdin",
		Long:  playHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPlay(cmd, seed)
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for puzzle choice and shuffles (default: random)")
	return cmd
}

func (a *app) runPlay(cmd *cobra.Command, seed uint64) error {
	backend, err := a.attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	if seed == 0 {
		seed = rand.Uint64()
	}
	table := topology.Default()
	ctrl, err := game.New(game.Options{
		Puzzles:  a.cfg.Puzzles,
		Animator: game.TimerAnimator{Scale: a.cfg.AnimationScale},
		Recorder: backend,
		Logger:   a.logger,
		Rand:     rand.New(rand.NewPCG(seed, seed)),
		Topology: table,
	})
	if err != nil {
		return sysError(err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		_ = ctrl.Run(ctx)
	}()
	defer func() {
		cancel()
		<-stopped
	}()

	s := &session{app: a, ctrl: ctrl, table: table, out: cmd.OutOrStdout()}
	if a.flags.jsonMode {
		s.enc = json.NewEncoder(s.out)
	}
	a.logger.Info("session started", "seed", seed)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "exit" {
			break
		}
		if err := s.exec(ctx, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return sysError(fmt.Errorf("read commands: %w", err))
	}
	return nil
}

// session runs play commands against one controller.
type session struct {
	*app
	ctrl  *game.Controller
	table *topology.Table
	out   io.Writer
	enc   *json.Encoder
}

// exec runs one command line. Command mistakes are reported and the session
// goes on; only a stopped controller or broken output ends it.
func (s *session) exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	ev := playEvent{Command: line}

	var err error
	switch name := fields[0]; name {
	case "show":
	case "swap":
		ev.Outcome, err = s.swap(ctx, fields[1:])
	case "help":
		if s.enc == nil {
			fmt.Fprintln(s.out, playHelp)
			return nil
		}
	default:
		if name == "new" {
			name = "new_game"
		}
		var in types.Intent
		if in, err = types.ParseIntent(name); err == nil {
			err = s.ctrl.Submit(ctx, in)
		}
		if err == nil && in == types.IntentAbout && s.enc == nil {
			fmt.Fprintln(s.out, aboutText)
		}
	}
	if err == nil {
		err = s.ctrl.WaitIdle(ctx)
	}
	if errors.Is(err, types.ErrStopped) || errors.Is(err, context.Canceled) {
		return sysError(err)
	}
	if err != nil {
		ev.Error = err.Error()
		s.logger.Debug("command rejected", "command", line, "err", err)
	}

	snap, serr := s.ctrl.Snapshot(ctx)
	if serr != nil {
		return sysError(serr)
	}
	return s.report(ev, snap)
}

func (s *session) swap(ctx context.Context, args []string) (string, error) {
	if len(args) != 2 {
		return "", errors.New("usage: swap A B")
	}
	var slots [2]types.Slot
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return "", fmt.Errorf("%w: %q", types.ErrInvalidSlot, arg)
		}
		slots[i] = types.Slot(n)
	}
	outcome, err := s.ctrl.Drop(ctx, slots[0], slots[1])
	if err != nil {
		return "", err
	}
	return outcome.String(), nil
}

func (s *session) report(ev playEvent, snap game.Snapshot) error {
	if s.enc != nil {
		ev.State = &snap
		if snap.Pieces != nil {
			ev.Board = placements(snap.Assignment)
		}
		if err := s.enc.Encode(ev); err != nil {
			return sysError(fmt.Errorf("encode output: %w", err))
		}
		return nil
	}

	if ev.Error != "" {
		fmt.Fprintf(s.out, "error: %s\n", ev.Error)
		return nil
	}
	if ev.Outcome != "" {
		fmt.Fprintf(s.out, "%s\n", ev.Outcome)
	}
	fmt.Fprintf(s.out, "%s", snap.Phase)
	if snap.Puzzle != "" {
		fmt.Fprintf(s.out, " %s: %d swaps, %d shuffles", snap.Puzzle, snap.Swaps, snap.Shuffles)
	}
	fmt.Fprintln(s.out)
	if snap.Pieces != nil {
		renderBoard(s.out, s.table, snap.Assignment)
	}
	if snap.Phase == game.PhaseSolved && snap.LastRecord != nil {
		fmt.Fprintf(s.out, "solved %s in %d swaps (%s)\n", snap.LastRecord.Puzzle, snap.LastRecord.Swaps, snap.LastRecord.Duration().Round(time.Millisecond))
	}
	return nil
}
