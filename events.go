package parade

// EventType identifies a session lifecycle event.
type EventType uint8

const (
	EventSpawned       EventType = iota // a slot received a machine
	EventDespawned                      // a slot was emptied by its key
	EventStateChanged                   // a machine moved to a later state
	EventRemoved                        // a machine left the screen
	EventModeChanged                    // scripted/scroll mode toggled
	EventFocusChanged                   // the focused slot changed
	EventRaceStarted                    // a race began
	EventSpeedChanged                   // a racer's speed was perturbed
	EventFinished                       // a racer crossed the line
	EventRaceFinished                   // every racer crossed the line
	EventPodiumClosed                   // the finale ended
)

var eventNames = [...]string{
	EventSpawned:      "spawned",
	EventDespawned:    "despawned",
	EventStateChanged: "state_changed",
	EventRemoved:      "removed",
	EventModeChanged:  "mode_changed",
	EventFocusChanged: "focus_changed",
	EventRaceStarted:  "race_started",
	EventSpeedChanged: "speed_changed",
	EventFinished:     "finished",
	EventRaceFinished: "race_finished",
	EventPodiumClosed: "podium_closed",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event carries lifecycle data. Slot is -1 when not applicable.
type Event struct {
	Type  EventType
	Tick  uint64
	Slot  int
	Kind  string
	From  State
	To    State
	Mode  Mode
	Speed float64
	Place int
	Count int
}

// EventSink receives session events. When set on a Session, every
// lifecycle change is forwarded to it.
type EventSink interface {
	Emit(event Event)
}
