// Package window runs the game in a desktop window with ebiten: keyboard input,
// shape rendering, the HUD and an optional Dear ImGui overlay.
package window

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/invaders/config"
	"github.com/plus3/invaders/ecs"
	"github.com/plus3/invaders/ecs/debugui"
	debugui_ebiten "github.com/plus3/invaders/ecs/debugui/ebiten"
	"github.com/plus3/invaders/game"
	"go.uber.org/zap"
)

const gameOverText = "Game Over! Press SpaceBar to Restart"

var (
	background = color.RGBA{12, 12, 24, 255}

	palette = map[game.SpriteKind]color.NRGBA{
		game.SpritePlayer:      {90, 200, 250, 255},
		game.SpriteEnemy:       {230, 80, 80, 255},
		game.SpritePlayerLaser: {120, 255, 120, 255},
		game.SpriteEnemyLaser:  {255, 170, 60, 255},
		game.SpriteExplosion:   {255, 220, 90, 255},
	}
)

type spriteView struct {
	*game.Position
	*game.Sprite
	Size  *game.SpriteSize     `ecs:"optional"`
	Timer *game.ExplosionTimer `ecs:"optional"`
}

// Window implements ebiten.Game.
type Window struct {
	cfg  config.Window
	game *game.Game
	log  *zap.Logger

	sprites *ecs.View[spriteView]

	imgui   *debugui_ebiten.ImguiBackend
	overlay *ecs.Singleton[debugui.Overlay]
	input   *ecs.Singleton[debugui.ImguiInputState]

	width, height int
}

// New creates the game for a window of cfg.Window's size. With DebugOverlay set the
// ImGui backend is created too and F1 toggles it.
func New(cfg *config.Config, log *zap.Logger) *Window {
	if log == nil {
		log = zap.NewNop()
	}

	w := &Window{
		cfg:    cfg.Window,
		log:    log,
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
	}

	var opts []game.Option
	if cfg.Window.DebugOverlay {
		w.imgui = debugui_ebiten.New(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
		opts = append(opts,
			game.WithComponents(debugui.RegisterComponents),
			game.WithSystems(&debugui.ImguiSystem{}),
		)
	}

	w.game = game.New(cfg.Gameplay, game.PlayfieldFor(w.width, w.height), log, opts...)
	w.sprites = ecs.NewView[spriteView](w.game.Storage())

	if w.imgui != nil {
		storage := w.game.Storage()
		w.overlay = debugui.Install(storage, false)
		w.input = ecs.NewSingleton[debugui.ImguiInputState](storage)
		storage.Spawn(debugui.ImguiItem{Render: sessionWindow(w.game)})
		storage.Spawn(debugui.NewPerformanceStats(storage, w.game.SchedulerStats, 120).Item())
	}
	return w
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run() error {
	if w.imgui == nil {
		ebiten.SetWindowSize(w.cfg.Width, w.cfg.Height)
		ebiten.SetWindowTitle(w.cfg.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	w.log.Info("window opened",
		zap.Int("width", w.cfg.Width),
		zap.Int("height", w.cfg.Height),
		zap.Bool("overlay", w.imgui != nil))

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

func (w *Window) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if w.imgui == nil {
		w.game.Step(w.readInput())
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		w.overlay.Get().Toggle()
	}
	w.imgui.Frame(func() {
		w.game.Step(w.readInput())
	})
	return nil
}

func (w *Window) readInput() game.Input {
	if w.input != nil && w.input.Get().WantCaptureKeyboard {
		return game.Input{}
	}

	space := ebiten.IsKeyPressed(ebiten.KeySpace)
	return game.Input{
		Left:    ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right:   ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Fire:    space,
		Restart: inpututil.IsKeyJustPressed(ebiten.KeySpace),
	}
}

func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	for s := range w.sprites.Values() {
		w.drawSprite(screen, s)
	}

	snap := w.game.Snapshot()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", snap.Score), 10, 10)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Life: %d", snap.PlayerLife), 10, 26)
	if snap.State == game.StateEnd {
		// The debug font is 6x16 pixels per glyph.
		x := (w.width - len(gameOverText)*6) / 2
		ebitenutil.DebugPrintAt(screen, gameOverText, max(x, 0), w.height/2-8)
	}

	if w.imgui != nil && w.overlay.Get().Visible {
		w.imgui.Draw(screen)
	}
}

func (w *Window) drawSprite(screen *ebiten.Image, s spriteView) {
	c, ok := palette[s.Sprite.Kind]
	if !ok {
		return
	}
	x, y := w.toScreen(*s.Position)

	if s.Sprite.Kind == game.SpriteExplosion {
		frame := 0
		if s.Timer != nil {
			frame = s.Timer.Frame
		}
		progress := float32(frame) / game.ExplosionLen
		c.A = uint8(255 * (1 - progress))
		vector.DrawFilledCircle(screen, x, y, 8+30*progress, c, true)
		return
	}

	if s.Size == nil {
		return
	}
	width, height := s.Size.Extent()
	vector.DrawFilledRect(screen, x-width/2, y-height/2, width, height, c, false)
}

// toScreen converts playfield coordinates (origin at the center, y up) to pixels.
func (w *Window) toScreen(pos game.Position) (float32, float32) {
	return pos.X + float32(w.width)/2, float32(w.height)/2 - pos.Y
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != w.width || outsideHeight != w.height {
		w.width, w.height = outsideWidth, outsideHeight
		w.game.Resize(game.PlayfieldFor(outsideWidth, outsideHeight))
		w.log.Debug("window resized", zap.Int("width", outsideWidth), zap.Int("height", outsideHeight))
	}
	if w.imgui != nil {
		w.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
