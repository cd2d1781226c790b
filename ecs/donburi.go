// Package ecs provides ECS adapters for hero.
package ecs

import (
	"github.com/phanxgames/hero"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ViewEventType is the Donburi event type for hero view events.
// Subscribe to this in your ECS systems to receive section commits,
// element moves and image resets.
var ViewEventType = events.NewEventType[hero.ViewEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// View events are published to ViewEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) hero.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) Publish(event hero.ViewEvent) {
	ViewEventType.Publish(s.world, event)
}
