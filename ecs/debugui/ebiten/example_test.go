package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/invaders/ecs"
	"github.com/plus3/invaders/ecs/debugui"
	debugui_ebiten "github.com/plus3/invaders/ecs/debugui/ebiten"
)

// Game implements ebiten.Game and integrates the ECS with ImGui rendering.
type Game struct {
	scheduler *ecs.Scheduler
	backend   *debugui_ebiten.ImguiBackend
	overlay   *ecs.Singleton[debugui.Overlay]
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// Deferred ImguiItem renders run when the scheduler flushes, inside the frame.
	g.backend.Frame(func() {
		g.scheduler.Once(1.0 / 60.0)
	})
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.overlay.Get().Visible {
		g.backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	backend := debugui_ebiten.New("ECS ImGui Example", 1280, 720)

	registry := ecs.NewComponentRegistry()
	debugui.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	overlay := debugui.Install(storage, true)

	storage.Spawn(debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from ECS!")
			imgui.End()
		},
	})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&debugui.ImguiSystem{})
	storage.Spawn(debugui.NewPerformanceStats(storage, scheduler.GetStats, 120).Item())

	game := &Game{
		scheduler: scheduler,
		backend:   backend,
		overlay:   overlay,
	}

	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
