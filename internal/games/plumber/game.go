// Package plumber implements the capsule puzzle: viruses are revealed in a
// bottle, two-colored capsules fall into it and four or more cells of one
// color in a line vanish. Clearing every virus wins the level.
//
// The game is a timed state machine. Each call to Step handles the current
// mode once; phase waits compare the supplied clock with stored timestamps,
// so tests drive it with a simulated clock.
package plumber

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/dr-plumber/internal/config"
	"github.com/vovakirdan/dr-plumber/internal/core"
	"github.com/vovakirdan/dr-plumber/internal/games/plumber/bottle"
	"github.com/vovakirdan/dr-plumber/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "plumber"

// Spawn placement of every new capsule.
var (
	spawnPos = bottle.P(1, 4)
	spawnDir = bottle.DirRight
)

// controlOrder is the priority in which pressed keys are tried while
// playing. Only the first pressed one is applied in a tick.
var controlOrder = [...]core.Key{
	core.KeyLeft,
	core.KeyRight,
	core.KeyDown,
	core.KeyRotateLeft,
	core.KeyRotateRight,
}

// Game is the capsule puzzle model. It is owned by a single goroutine.
type Game struct {
	tuning config.PlumberConfig
	cfg    core.RuntimeConfig
	rng    *rand.Rand

	bottle  *bottle.Bottle
	current *bottle.Capsule // nil while no capsule is falling
	next    [2]bottle.Color

	mode      Mode
	level     int
	selection Selection

	// Timing
	fallInterval   time.Duration
	modeSince      time.Time // entry time of the timed modes
	lastFall       time.Time
	lastReveal     time.Time
	revealInterval time.Duration
	pending        []placement // viruses not yet revealed

	// Cells moved by the current cascade; rescanned when chains are enabled.
	fallen map[bottle.Pos]bool

	// Per-game counters
	virusesTotal   int
	virusesCleared int
	capsules       int
	chains         int // chain reactions in this game
	cascade        int // chain reactions in the running cascade

	quit bool
}

// Package-level tuning applied to the next instance created by the registry.
var tuning = config.DefaultPlumberConfig()

// SetTuning sets the tuning used by games created afterwards.
func SetTuning(t config.PlumberConfig) {
	tuning = t
}

// New creates a game with the current package tuning.
func New() *Game {
	return NewWithTuning(tuning)
}

// NewWithTuning creates a game with explicit tuning.
func NewWithTuning(t config.PlumberConfig) *Game {
	return &Game{tuning: t}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Dr. Plumber"
}

// Reset starts a new session. The level and fall interval come from cfg;
// a zero FallInterval falls back to the mid speed of the tuning.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.level = core.Clamp(cfg.Level, config.MinLevel, config.MaxLevel)
	g.fallInterval = cfg.FallInterval
	if g.fallInterval <= 0 {
		g.fallInterval = g.tuning.FallInterval(config.SpeedMid)
	}
	g.next = randomPair(g.rng)
	g.newGame()
}

// newGame clears the model for another game in the same session.
// The RNG keeps running so a replay gets a different bottle.
func (g *Game) newGame() {
	g.bottle = bottle.New()
	g.current = nil
	g.pending = nil
	g.fallen = make(map[bottle.Pos]bool)
	g.selection = SelectYes
	g.virusesTotal = 0
	g.virusesCleared = 0
	g.capsules = 0
	g.chains = 0
	g.cascade = 0
	g.quit = false
	g.mode = ModeInit
}

// Step handles the current mode once at the given time.
// The caller clears the input frame after every call.
func (g *Game) Step(now time.Time, in core.InputFrame) core.StepResult {
	before := g.mode
	changed := false

	switch g.mode {
	case ModeInit:
		g.enterPreparing(now)
		changed = true
	case ModePreparing:
		changed = g.stepPreparing(now)
	case ModeReady:
		if g.elapsed(now, g.tuning.Timing.ReadyMs) {
			g.enter(ModePlayingPreparing, now)
		}
	case ModePlayingPreparing:
		g.spawn(now)
		changed = true
	case ModePlaying:
		changed = g.stepPlaying(now, in)
	case ModeLanding:
		if g.elapsed(now, g.tuning.Timing.LandingMs) {
			g.enter(ModeVanishingPreparing, now)
		}
	case ModeVanishingPreparing:
		g.settleCapsule(now)
		changed = true
	case ModeVanishingReady:
		if g.elapsed(now, g.tuning.Timing.VanishMs) {
			g.enter(ModeVanishing, now)
		}
	case ModeVanishing:
		g.bottle.RemoveVanishing()
		g.enter(ModeFalling, now)
		changed = true
	case ModeFalling:
		changed = g.stepFalling(now)
	case ModeGameOverReady:
		if g.elapsed(now, g.tuning.Timing.GameOverMs) {
			g.selection = SelectYes
			g.enter(ModeGameOver, now)
		}
	case ModeGameOver:
		changed = g.stepPrompt(in, func() {})
	case ModeWinReady:
		if g.elapsed(now, g.tuning.Timing.WinMs) {
			g.selection = SelectYes
			g.enter(ModeWin, now)
		}
	case ModeWin:
		changed = g.stepPrompt(in, func() {
			g.level = core.Clamp(g.level+1, config.MinLevel, config.MaxLevel)
		})
	default:
		panic("plumber: step in invalid mode " + g.mode.String())
	}

	return core.StepResult{
		State:   g.State(),
		Changed: changed || g.mode != before,
	}
}

// enter switches mode and records the entry time.
func (g *Game) enter(m Mode, now time.Time) {
	g.mode = m
	g.modeSince = now
}

// elapsed reports whether ms milliseconds passed since the mode was entered.
func (g *Game) elapsed(now time.Time, ms int) bool {
	return now.Sub(g.modeSince) >= config.Millis(ms)
}

// enterPreparing draws the virus set for the level.
func (g *Game) enterPreparing(now time.Time) {
	count := g.tuning.VirusCount(g.level)
	g.pending = placeViruses(g.rng, count, g.tuning.Rules.VirusTopRow)
	g.virusesTotal = len(g.pending)
	g.revealInterval = config.Millis(g.tuning.Timing.VirusRevealMs) / time.Duration(max(1, len(g.pending)))
	g.lastReveal = now
	g.enter(ModePreparing, now)
}

// stepPreparing reveals as many viruses as are due since the last reveal,
// at least one once any is due. The reveal clock advances in whole intervals
// so the set takes the same time to appear at any tick rate.
func (g *Game) stepPreparing(now time.Time) bool {
	if len(g.pending) == 0 {
		g.enter(ModeReady, now)
		return false
	}

	elapsed := now.Sub(g.lastReveal)
	if elapsed < g.revealInterval {
		return false
	}
	n := 1
	if g.revealInterval > 0 {
		n = max(1, int(elapsed/g.revealInterval))
	}
	n = min(n, len(g.pending))

	for _, v := range g.pending[:n] {
		g.bottle.Set(v.pos, bottle.Virus(v.color))
	}
	g.pending = g.pending[n:]
	g.lastReveal = g.lastReveal.Add(time.Duration(n) * g.revealInterval)

	if len(g.pending) == 0 {
		g.enter(ModeReady, now)
	}
	return true
}

// spawn puts the next capsule at the top of the bottle, or ends the game
// when its cells are taken.
func (g *Game) spawn(now time.Time) {
	c := bottle.Capsule{
		Color1: g.next[0],
		Color2: g.next[1],
		Pos:    spawnPos,
		Dir:    spawnDir,
	}
	g.next = randomPair(g.rng)

	if bottle.OverlapsOrOutOfRange(c, g.bottle) {
		g.current = nil
		g.enter(ModeGameOverReady, now)
		return
	}

	g.capsules++
	g.current = &c
	g.lastFall = now
	g.enter(ModePlaying, now)
}

// stepPlaying applies a due fall, or else at most one pressed control.
func (g *Game) stepPlaying(now time.Time, in core.InputFrame) bool {
	if now.Sub(g.lastFall) >= g.fallInterval {
		moved, ok := bottle.TryMove(bottle.DirDown, *g.current, g.bottle)
		if !ok {
			g.enter(ModeLanding, now)
			return false
		}
		*g.current = moved
		g.lastFall = now
		return true
	}

	for _, k := range controlOrder {
		if !in.Has(k) {
			continue
		}
		moved, ok := g.control(k)
		if ok {
			*g.current = moved
			return true
		}
		if k == core.KeyDown {
			g.enter(ModeLanding, now)
		}
		return false
	}
	return false
}

// control applies one key to the falling capsule.
func (g *Game) control(k core.Key) (bottle.Capsule, bool) {
	c := *g.current
	switch k {
	case core.KeyLeft:
		return bottle.TryMove(bottle.DirLeft, c, g.bottle)
	case core.KeyRight:
		return bottle.TryMove(bottle.DirRight, c, g.bottle)
	case core.KeyDown:
		return bottle.TryMove(bottle.DirDown, c, g.bottle)
	case core.KeyRotateLeft:
		return bottle.TryRotate(bottle.RotateLeft, c, g.bottle)
	case core.KeyRotateRight:
		return bottle.TryRotate(bottle.RotateRight, c, g.bottle)
	}
	panic("plumber: no control for key " + k.String())
}

// settleCapsule freezes the landed capsule into the bottle and looks for runs
// through its two halves.
func (g *Game) settleCapsule(now time.Time) {
	c := *g.current
	g.current = nil
	g.bottle.Freeze(c)

	if !g.vanish(c.Pos, c.Second()) {
		g.enter(ModePlayingPreparing, now)
		return
	}
	g.cascade = 0
	g.enter(ModeVanishingReady, now)
}

// vanish marks every run through the seeds as vanishing.
// Reports whether anything matched.
func (g *Game) vanish(seeds ...bottle.Pos) bool {
	matched := g.bottle.Matches(seeds...)
	if len(matched) == 0 {
		return false
	}
	for _, p := range matched {
		if blk, ok := g.bottle.Get(p); ok && blk.Kind == bottle.KindVirus {
			g.virusesCleared++
		}
	}
	g.bottle.MarkVanishing(matched)
	return true
}

// stepFalling drops floating cells one row. Once nothing floats the cascade
// either chains, wins the level or hands control back to the player.
func (g *Game) stepFalling(now time.Time) bool {
	moved := g.bottle.ApplyGravity()
	if len(moved) > 0 {
		// moved is bottom-up, so a stack shifts without losing entries.
		for _, p := range moved {
			delete(g.fallen, p.Step(bottle.DirUp))
			g.fallen[p] = true
		}
		return true
	}

	seeds := make([]bottle.Pos, 0, len(g.fallen))
	for p := range g.fallen {
		seeds = append(seeds, p)
	}
	clear(g.fallen)

	if g.tuning.Rules.ChainReactions && g.vanish(seeds...) {
		g.chains++
		g.cascade++
		g.enter(ModeVanishingReady, now)
		return true
	}

	if g.bottle.CountViruses() == 0 {
		g.enter(ModeWinReady, now)
		return false
	}
	g.enter(ModePlayingPreparing, now)
	return false
}

// stepPrompt handles the YES/NO prompt. onYes runs before the new game starts.
func (g *Game) stepPrompt(in core.InputFrame, onYes func()) bool {
	switch {
	case in.Has(core.KeyConfirm):
		if g.selection == SelectNo {
			g.quit = true
			return true
		}
		onYes()
		g.newGame()
		return true
	case in.Has(core.KeyLeft) && g.selection != SelectYes:
		g.selection = SelectYes
		return true
	case in.Has(core.KeyRight) && g.selection != SelectNo:
		g.selection = SelectNo
		return true
	}
	return false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Level:          g.level,
		Mode:           g.mode.String(),
		VirusesTotal:   g.virusesTotal,
		VirusesLeft:    g.VirusesLeft(),
		VirusesCleared: g.virusesCleared,
		Capsules:       g.capsules,
		GameOver:       g.mode == ModeGameOverReady || g.mode == ModeGameOver,
		Won:            g.mode == ModeWinReady || g.mode == ModeWin,
		Quit:           g.quit,
	}
}

// Mode returns the current phase.
func (g *Game) Mode() Mode {
	return g.mode
}

// VirusesLeft counts viruses in the bottle plus those not yet revealed.
func (g *Game) VirusesLeft() int {
	if g.bottle == nil {
		return 0
	}
	return g.bottle.CountViruses() + len(g.pending)
}
