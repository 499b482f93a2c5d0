// Package terminal draws the game into a terminal with tcell and feeds it keyboard
// input at the fixed simulation rate.
package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/invaders/ecs"
	"github.com/plus3/invaders/game"
	"go.uber.org/zap"
)

// holdWindow is how long a key counts as held after its last press or repeat event;
// terminals never report key release.
const holdWindow = 200 * time.Millisecond

type control uint8

const (
	controlLeft control = iota
	controlRight
	controlFire
	controlCount
)

var (
	styleHUD         = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	stylePrompt      = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	stylePlayer      = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleEnemy       = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	stylePlayerLaser = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleEnemyLaser  = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleExplosion   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

var explosionGlyphs = []rune("@@OOoo**++xx::..")

type spriteView struct {
	*game.Position
	*game.Sprite
	Timer *game.ExplosionTimer `ecs:"optional"`
}

// Terminal maps the playfield onto the screen's cells, one HUD row on top.
type Terminal struct {
	screen tcell.Screen
	game   *game.Game
	field  game.Playfield
	log    *zap.Logger

	sprites *ecs.View[spriteView]
	held    [controlCount]time.Time
	restart bool
}

// New wraps an initialised screen. field is the simulated playfield; it is scaled to
// whatever size the terminal has.
func New(screen tcell.Screen, g *game.Game, field game.Playfield, log *zap.Logger) *Terminal {
	if log == nil {
		log = zap.NewNop()
	}
	return &Terminal{
		screen:  screen,
		game:    g,
		field:   field,
		log:     log,
		sprites: ecs.NewView[spriteView](g.Storage()),
	}
}

// Run steps the game every TimeStep until ctx is done or the player quits.
func (t *Terminal) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)

	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Duration(float64(game.TimeStep) * float64(time.Second)))
	defer ticker.Stop()

	t.log.Info("terminal frontend started")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if t.HandleEvent(ev, time.Now()) {
				t.log.Info("quit requested")
				return nil
			}
		case now := <-ticker.C:
			t.Tick(now)
		}
	}
}

// HandleEvent records key presses and resizes. It reports true when the player asked
// to quit.
func (t *Terminal) HandleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyLeft:
			t.held[controlLeft] = now
		case tcell.KeyRight:
			t.held[controlRight] = now
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case 'a', 'h':
				t.held[controlLeft] = now
			case 'd', 'l':
				t.held[controlRight] = now
			case ' ':
				t.held[controlFire] = now
				t.restart = true
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return false
}

// Input returns the controls held at now. A restart press is reported once.
func (t *Terminal) Input(now time.Time) game.Input {
	in := game.Input{
		Left:    t.isHeld(controlLeft, now),
		Right:   t.isHeld(controlRight, now),
		Fire:    t.isHeld(controlFire, now),
		Restart: t.restart,
	}
	t.restart = false
	return in
}

func (t *Terminal) isHeld(c control, now time.Time) bool {
	last := t.held[c]
	return !last.IsZero() && now.Sub(last) < holdWindow
}

// Tick advances the game one step and redraws.
func (t *Terminal) Tick(now time.Time) {
	t.game.Step(t.Input(now))
	t.Draw()
}

// Cell maps a playfield position to a screen cell below the HUD row. ok is false
// when the position is off screen.
func (t *Terminal) Cell(pos game.Position) (col, row int, ok bool) {
	cols, rows := t.screen.Size()
	rows--
	if cols <= 0 || rows <= 0 {
		return 0, 0, false
	}

	fx := (pos.X + t.field.HalfWidth) / (2 * t.field.HalfWidth)
	fy := (t.field.HalfHeight - pos.Y) / (2 * t.field.HalfHeight)
	if fx < 0 || fx >= 1 || fy < 0 || fy >= 1 {
		return 0, 0, false
	}
	return int(fx * float32(cols)), int(fy*float32(rows)) + 1, true
}

func (t *Terminal) Draw() {
	t.screen.Clear()

	for s := range t.sprites.Values() {
		col, row, ok := t.Cell(*s.Position)
		if !ok {
			continue
		}
		glyph, style := t.glyph(s)
		t.screen.SetContent(col, row, glyph, nil, style)
	}

	snap := t.game.Snapshot()
	t.text(0, 0, fmt.Sprintf("Score: %d  Life: %d", snap.Score, snap.PlayerLife), styleHUD)
	if snap.State == game.StateEnd {
		msg := "Game Over! Press SpaceBar to Restart"
		cols, rows := t.screen.Size()
		t.text(max((cols-len(msg))/2, 0), rows/2, msg, stylePrompt)
	}

	t.screen.Show()
}

func (t *Terminal) glyph(s spriteView) (rune, tcell.Style) {
	switch s.Sprite.Kind {
	case game.SpritePlayer:
		return 'A', stylePlayer
	case game.SpriteEnemy:
		return 'W', styleEnemy
	case game.SpritePlayerLaser:
		return '|', stylePlayerLaser
	case game.SpriteEnemyLaser:
		return '!', styleEnemyLaser
	case game.SpriteExplosion:
		frame := 0
		if s.Timer != nil {
			frame = min(max(s.Timer.Frame, 0), len(explosionGlyphs)-1)
		}
		return explosionGlyphs[frame], styleExplosion
	}
	return '?', tcell.StyleDefault
}

func (t *Terminal) text(col, row int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		t.screen.SetContent(col+i, row, r, nil, style)
	}
}
