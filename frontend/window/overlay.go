package window

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/invaders/game"
)

// sessionWindow renders the session counters and flow state.
func sessionWindow(g *game.Game) func() {
	return func() {
		snap := g.Snapshot()

		imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(220, 170), imgui.CondOnce)
		if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		imgui.Text(fmt.Sprintf("State: %s", snap.State))
		imgui.Text(fmt.Sprintf("Tick: %d", snap.Tick))
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Score: %d", snap.Score))
		imgui.Text(fmt.Sprintf("Life: %d", snap.PlayerLife))
		imgui.Text(fmt.Sprintf("Enemies: %d", snap.EnemyCount))

		if snap.State == game.StateEnd {
			imgui.Separator()
			imgui.PushStyleColorVec4(imgui.ColText, imgui.NewVec4(1, 0.4, 0.4, 1))
			imgui.Text("Game over")
			imgui.PopStyleColor()
		}
		imgui.End()
	}
}
