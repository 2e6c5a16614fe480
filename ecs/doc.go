// Package ecs hosts transform2 on a [Donburi] world.
//
// Entities carry the host slots [LocalTransform] and [GlobalTransform] plus
// an optional [Parent] link; [Host] propagates global transforms through
// those links and runs the transform2 sync passes around that propagation.
//
// Usage:
//
//	world := donburi.NewWorld()
//	host := ecs.NewHost(world)
//	transform2.Install(host)
//
//	parent := ecs.Spawn2(world, transform2.FromTranslation(transform2.Vec2{X: 10}))
//	child := ecs.SpawnTracked2(world, transform2.FromDepth(1))
//	ecs.SetParent(world, child, parent)
//
//	host.Update() // each tick
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
