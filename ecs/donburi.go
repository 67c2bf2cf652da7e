package ecs

import (
	"github.com/phanxgames/parade"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// MachineEventType is the Donburi event type for parade session events.
var MachineEventType = events.NewEventType[parade.Event]()

var _ parade.EventSink = (*donburiSink)(nil)

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to MachineEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) parade.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) Emit(event parade.Event) {
	MachineEventType.Publish(s.world, event)
}
