package transform2

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawStats prints FPS, TPS and the last update cycle's propagation count in
// the top-left corner of screen.
func (s *Scene) drawStats(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nPropagated: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), s.lastPropagated))
}
