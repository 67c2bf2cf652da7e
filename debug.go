package parade

import "time"

// debugStats holds per-frame timing. Only populated when Game.Debug is true.
type debugStats struct {
	frames     int
	updateTime time.Duration
	drawTime   time.Duration
	machines   int
}

// debugEvery is how many ticks are aggregated before a stats line is logged.
const debugEvery = 60

// debugLog logs averaged timing and resets the counters.
func (g *Game) debugLog() {
	st := &g.stats
	if st.frames == 0 {
		return
	}
	n := time.Duration(st.frames)
	g.Logger.Debug().
		Dur("update", st.updateTime/n).
		Dur("draw", st.drawTime/n).
		Int("machines", st.machines).
		Uint64("tick", g.Session.Tick()).
		Msg("frame stats")
	*st = debugStats{}
}
