// Package ui implements the chess3d front end using Ebitengine.
package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hailam/chess3d/internal/assets"
	"github.com/hailam/chess3d/internal/board"
)

// spriteRenderSize is the pixel size sprites are rasterised at. Pieces are
// scaled down from it with linear filtering.
const spriteRenderSize = 192

// SpriteManager holds the piece sprites that have finished loading.
type SpriteManager struct {
	pieces map[board.Piece]*ebiten.Image
	failed map[board.Piece]error
}

// NewSpriteManager creates an empty sprite manager.
func NewSpriteManager() *SpriteManager {
	return &SpriteManager{
		pieces: make(map[board.Piece]*ebiten.Image),
		failed: make(map[board.Piece]error),
	}
}

// Add stores the result of a load. It reports whether a sprite became
// available.
func (sm *SpriteManager) Add(ev assets.Event) bool {
	if !ev.Ready() {
		sm.failed[ev.Piece] = ev.Err
		return false
	}
	sm.pieces[ev.Piece] = ebiten.NewImageFromImage(ev.Image)
	delete(sm.failed, ev.Piece)
	return true
}

// GetPiece returns the sprite for a piece, or nil if it is not loaded.
func (sm *SpriteManager) GetPiece(p board.Piece) *ebiten.Image {
	return sm.pieces[p]
}

// Loaded returns how many sprites are available.
func (sm *SpriteManager) Loaded() int {
	return len(sm.pieces)
}

// Failed returns how many sprites could not be loaded.
func (sm *SpriteManager) Failed() int {
	return len(sm.failed)
}

// DrawPiece draws a piece sprite with its bottom centre at (x, y) and the
// given height in pixels. Missing sprites are skipped.
func (sm *SpriteManager) DrawPiece(screen *ebiten.Image, p board.Piece, x, y, height float64, shade float32) {
	sprite := sm.GetPiece(p)
	if sprite == nil || height <= 0 {
		return
	}
	w := float64(sprite.Bounds().Dx())
	scale := height / w
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x-height/2, y-height)
	op.ColorScale.Scale(shade, shade, shade, 1)
	// Use linear filtering for smooth scaling
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}
