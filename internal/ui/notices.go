package ui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// NoticeKind selects the colour of a notice.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeWarning
	NoticeError
	NoticeSuccess
)

// background and text colour per kind, at full opacity
var noticePalette = map[NoticeKind][2]color.RGBA{
	NoticeInfo:    {{50, 100, 150, 220}, {255, 255, 255, 255}},
	NoticeWarning: {{180, 140, 20, 220}, {40, 30, 0, 255}},
	NoticeError:   {{180, 50, 50, 220}, {255, 255, 255, 255}},
	NoticeSuccess: {{50, 150, 50, 220}, {255, 255, 255, 255}},
}

const (
	noticeFade     = 200 * time.Millisecond
	noticeMaxShown = 3
)

type notice struct {
	text  string
	kind  NoticeKind
	start time.Time
	dur   time.Duration
	count int
}

func (n notice) label() string {
	if n.count > 1 {
		return fmt.Sprintf("%s (x%d)", n.text, n.count)
	}
	return n.text
}

// Notices is a short stack of timed messages over the board. Repeating the
// newest message restarts it with a counter instead of stacking a copy.
type Notices struct {
	now   func() time.Time
	items []notice
}

// NewNotices creates an empty notice stack.
func NewNotices() *Notices {
	return &Notices{now: time.Now}
}

// Show posts text for d.
func (ns *Notices) Show(text string, kind NoticeKind, d time.Duration) {
	now := ns.now()
	if n := len(ns.items); n > 0 && ns.items[n-1].text == text {
		last := &ns.items[n-1]
		last.kind, last.start, last.dur = kind, now, d
		last.count++
		return
	}
	ns.items = append(ns.items, notice{text: text, kind: kind, start: now, dur: d, count: 1})
	if len(ns.items) > noticeMaxShown {
		ns.items = ns.items[len(ns.items)-noticeMaxShown:]
	}
}

// Update drops expired notices.
func (ns *Notices) Update() {
	now := ns.now()
	live := ns.items[:0]
	for _, n := range ns.items {
		if now.Sub(n.start) < n.dur {
			live = append(live, n)
		}
	}
	ns.items = live
}

// Labels returns the visible messages, oldest first.
func (ns *Notices) Labels() []string {
	out := make([]string, len(ns.items))
	for i, n := range ns.items {
		out[i] = n.label()
	}
	return out
}

// fade returns the opacity of something shown for total after elapsed.
func fade(elapsed, total time.Duration) float64 {
	switch {
	case elapsed < 0 || elapsed >= total:
		return 0
	case elapsed < noticeFade:
		return float64(elapsed) / float64(noticeFade)
	case total-elapsed < noticeFade:
		return float64(total-elapsed) / float64(noticeFade)
	}
	return 1
}

func withAlpha(c color.RGBA, a float64) color.RGBA {
	return color.RGBA{c.R, c.G, c.B, uint8(float64(c.A) * a)}
}

// Draw stacks the notices under the top edge, centred on width.
func (ns *Notices) Draw(dst *ebiten.Image, width float64) {
	face := Face(FaceBody)
	if face == nil {
		return
	}
	const pad = 12.0

	now := ns.now()
	y := 40.0
	for _, n := range ns.items {
		a := fade(now.Sub(n.start), n.dur)
		colors := noticePalette[n.kind]
		label := n.label()

		w, h := MeasureText(label, face)
		boxW, boxH := w+pad*2, h+pad*2
		x := width/2 - boxW/2
		vector.DrawFilledRect(dst, float32(x), float32(y), float32(boxW), float32(boxH), withAlpha(colors[0], a), false)
		drawText(dst, label, FaceBody, x+pad, y+pad, withAlpha(colors[1], a))

		y += boxH + 8
	}
}
