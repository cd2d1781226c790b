// Package hero renders the landing hero section of a studio site on
// [Ebitengine].
//
// A [View] lays out a full-window hero with floating background images, an
// intro block and a large section letter pinned to the corner. Below the
// hero sit further page sections; as the page scrolls, a [SectionTracker]
// decides which section is active and the letter and its accent color follow
// it.
//
// # Quick start
//
//	scene := hero.NewScene()
//	view := hero.NewView(scene, hero.ViewConfig{})
//	view.SetImages(hero.ImageList{Revision: "v1", Images: refs})
//	if err := view.Mount(); err != nil {
//		log.Fatal(err)
//	}
//	hero.Run(scene, hero.RunConfig{Title: "Studio", Width: 1280, Height: 720})
//
// # Slots and elements
//
// Background images sit on a fixed catalog of [Slot] points. An [Allocator]
// hands them out, preferring free slots, and keeps the stacking counter the
// elements share. Each [Element] fades in and drifts for one cycle, then
// draws a slot different from its current one and moves to the front.
//
// # Time and events
//
// Nothing in the package starts goroutines. [Scene.Update] advances a
// virtual clock ([Scheduler]) once per tick and runs timers, scroll, resize
// and frame callbacks in that order on the same goroutine. Tests drive a
// scene with [Scene.Advance] and the Inject helpers instead of a window.
//
// # Scene graph
//
// Every visual is a [Node] under one of two layers: [Scene.Page], which
// moves with the scroll offset, and [Scene.Overlay], which stays fixed.
// Children inherit their parent's transform and alpha; siblings draw in
// ZIndex order. Animations use [gween] through [TweenGroup].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package hero
