package parade

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	hudRefresh  = 0.5 // seconds between FPS samples
	hudFeedSize = 6
	hudMargin   = 8
)

// HUD is a debug-print overlay with FPS/TPS, the session status and a short
// feed of recent events.
type HUD struct {
	Visible bool

	fps, tps  float64
	sinceRead float64
	feed      []string
}

// NewHUD returns a visible HUD.
func NewHUD() *HUD {
	return &HUD{Visible: true}
}

// Push appends a line to the event feed, dropping the oldest beyond the feed
// size.
func (h *HUD) Push(line string) {
	h.feed = append(h.feed, line)
	if over := len(h.feed) - hudFeedSize; over > 0 {
		h.feed = append(h.feed[:0], h.feed[over:]...)
	}
}

// Feed returns the current event lines, oldest first.
func (h *HUD) Feed() []string {
	return h.feed
}

// Update samples FPS and TPS every half second.
func (h *HUD) Update(dt float64) {
	h.sinceRead += dt
	if h.sinceRead < hudRefresh {
		return
	}
	h.sinceRead = 0
	h.fps = ebiten.ActualFPS()
	h.tps = ebiten.ActualTPS()
}

// Status renders the overlay text for s.
func (h *HUD) Status(s *Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f  TPS: %.1f\n", h.fps, h.tps)
	fmt.Fprintf(&b, "mode: %s  focus: %s\n", s.Mode, focusName(s))

	b.WriteString("slots:")
	for i, name := range s.Catalog() {
		if i >= SlotCount {
			break
		}
		mark := "-"
		if m := s.Slot(i); m != nil {
			mark = m.State.String()
		}
		fmt.Fprintf(&b, " %d:%s[%s]", i+1, name, mark)
	}
	b.WriteByte('\n')

	if r := s.Race(); r != nil {
		fmt.Fprintf(&b, "race: tick %d, %d/%d finished\n", r.Ticks(), len(r.Finishers()), len(r.Entrants()))
	} else if s.Podium() != nil {
		b.WriteString("podium: Enter to close\n")
	}
	for _, line := range h.Feed() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func focusName(s *Session) string {
	m := s.Focused()
	if m == nil {
		return "none"
	}
	return fmt.Sprintf("%d (%s)", s.FocusIndex()+1, m.Kind.Name)
}

// Draw prints the overlay in the top-left corner.
func (h *HUD) Draw(dst *ebiten.Image, s *Session) {
	if !h.Visible {
		return
	}
	ebitenutil.DebugPrintAt(dst, h.Status(s), hudMargin, hudMargin)
}
