// Package ecs provides ECS adapters for parade's session events.
//
// The primary adapter is [NewDonburiSink], which bridges session lifecycle
// events (spawn, state change, removal, race progress) into a [Donburi]
// world as typed events. Subscribe to [MachineEventType] in your ECS
// systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	session.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
