package ui

import (
	"bytes"
	"image/color"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FaceRole names where a piece of text is drawn.
type FaceRole int

const (
	FaceBody FaceRole = iota
	FaceLabel
	FaceBanner
)

var fontData = map[string][]byte{
	"regular": goregular.TTF,
	"bold":    gobold.TTF,
}

var faceSpecs = [...]struct {
	font string
	size float64
}{
	FaceBody:   {"regular", 14},
	FaceLabel:  {"bold", 12},
	FaceBanner: {"bold", 32},
}

var (
	facesOnce sync.Once
	faces     [len(faceSpecs)]*text.GoTextFace
)

func loadFaces() {
	sources := make(map[string]*text.GoTextFaceSource)
	for role, spec := range faceSpecs {
		src, ok := sources[spec.font]
		if !ok {
			var err error
			src, err = text.NewGoTextFaceSource(bytes.NewReader(fontData[spec.font]))
			if err != nil {
				log.Printf("Warning: Failed to load %s font: %v", spec.font, err)
				continue
			}
			sources[spec.font] = src
		}
		faces[role] = &text.GoTextFace{Source: src, Size: spec.size}
	}
}

// Face returns the face for role, or nil if its font failed to load.
func Face(role FaceRole) *text.GoTextFace {
	facesOnce.Do(loadFaces)
	if role < 0 || int(role) >= len(faces) {
		return nil
	}
	return faces[role]
}

// MeasureText returns the width and height of the given text.
func MeasureText(s string, face *text.GoTextFace) (width, height float64) {
	if face == nil {
		return 0, 0
	}
	return text.Measure(s, face, 0)
}

// drawText draws s with its top-left corner at (x, y). Nothing is drawn
// when the face is missing.
func drawText(dst *ebiten.Image, s string, role FaceRole, x, y float64, c color.Color) {
	face := Face(role)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, face, op)
}
