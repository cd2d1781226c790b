// Package ecs provides ECS adapters for hero's view events.
//
// The primary adapter is [NewDonburiSink], which bridges hero view events
// (section commits, element moves, image resets) into a [Donburi] world as
// typed events. Subscribe to [ViewEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	view := hero.NewView(scene, hero.ViewConfig{Sink: sink})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
