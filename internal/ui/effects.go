package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hailam/chess3d/internal/board"
	"github.com/hailam/chess3d/internal/scene"
)

type effectKind uint8

const (
	// effectShake rocks the piece on a square sideways
	effectShake effectKind = iota
	// effectFlash tints a square and fades out
	effectFlash
	// effectFlare raises a fading column of light from a square
	effectFlare
)

const (
	shakeDuration  = 300 * time.Millisecond
	shakeAmplitude = 0.12 // world units
	flareHeight    = 1.6
)

type boardEffect struct {
	kind  effectKind
	sq    board.Square
	start time.Time
	dur   time.Duration
	color color.RGBA
}

// BoardEffects holds short-lived effects anchored to board squares. They
// live in world space, so they follow the camera's perspective.
type BoardEffects struct {
	now    func() time.Time
	active []boardEffect
}

// NewBoardEffects creates an empty effect set.
func NewBoardEffects() *BoardEffects {
	return &BoardEffects{now: time.Now}
}

func (e *BoardEffects) add(kind effectKind, sq board.Square, d time.Duration, c color.RGBA) {
	if !sq.IsValid() {
		return
	}
	e.active = append(e.active, boardEffect{kind: kind, sq: sq, start: e.now(), dur: d, color: c})
}

// Shake rocks the piece on sq.
func (e *BoardEffects) Shake(sq board.Square) {
	e.add(effectShake, sq, shakeDuration, color.RGBA{})
}

// Flash tints sq with c, fading over d.
func (e *BoardEffects) Flash(sq board.Square, c color.RGBA, d time.Duration) {
	e.add(effectFlash, sq, d, c)
}

// Flare raises a column of c from sq over d.
func (e *BoardEffects) Flare(sq board.Square, c color.RGBA, d time.Duration) {
	e.add(effectFlare, sq, d, c)
}

// Update drops finished effects.
func (e *BoardEffects) Update() {
	now := e.now()
	live := e.active[:0]
	for _, ef := range e.active {
		if now.Sub(ef.start) < ef.dur {
			live = append(live, ef)
		}
	}
	e.active = live
}

// Len returns the number of running effects.
func (e *BoardEffects) Len() int {
	return len(e.active)
}

func (e *BoardEffects) progress(ef boardEffect) float64 {
	return float64(e.now().Sub(ef.start)) / float64(ef.dur)
}

// Offset returns the displacement of a piece standing on sq.
func (e *BoardEffects) Offset(sq board.Square) scene.Vec3 {
	var off scene.Vec3
	for _, ef := range e.active {
		if ef.kind != effectShake || ef.sq != sq {
			continue
		}
		p := e.progress(ef)
		if p < 0 || p >= 1 {
			continue
		}
		// damped sine
		off.X += shakeAmplitude * math.Exp(-5*p) * math.Sin(40*p)
	}
	return off
}

// Draw renders flashes on the board plane and flares standing on it.
func (e *BoardEffects) Draw(dst *ebiten.Image, r *Renderer, cam scene.Camera) {
	for _, ef := range e.active {
		p := e.progress(ef)
		if p < 0 || p >= 1 {
			continue
		}
		c := withAlpha(ef.color, 1-p)

		switch ef.kind {
		case effectFlash:
			r.fillSquare(dst, cam, ef.sq, 0.5, c)
		case effectFlare:
			r.fillSquare(dst, cam, ef.sq, 0.5*(1-p), c)
			ctr := scene.SquareCenter(ef.sq)
			w := 0.4 * (1 - p/2)
			top := flareHeight * math.Sqrt(p)
			r.fillQuad(dst, cam, [4]scene.Vec3{
				{X: ctr.X - w, Z: ctr.Z},
				{X: ctr.X + w, Z: ctr.Z},
				{X: ctr.X + w/3, Y: top, Z: ctr.Z},
				{X: ctr.X - w/3, Y: top, Z: ctr.Z},
			}, c)
		}
	}
}
