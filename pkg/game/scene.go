package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene.
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Finishable 是一个可选接口，场景结束（可以重新开始）时返回 true
type Finishable interface {
	IsFinished() bool
}
