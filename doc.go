// Package transform2 adds 2D transforms to a 3D-transform host.
//
// Applications author a [Transform2] per node: a translation, a depth, a
// rotation in radians and a 2D scale. Before the host propagates its 3D
// hierarchy, the local sync writes each changed Transform2 into the host's
// local slot as a [Transform3]. After propagation, the global sync decomposes
// each changed host global matrix into a read-only [GlobalTransform2].
//
// Only changed values are written. Change detection uses the generation
// counter carried by [Tracked]; passes compare it against a per-slot
// [Cursor].
//
// # Hosts
//
// Anything that implements [Host] can run the sync passes. Two hosts ship
// with the module: [Scene], a small ebitengine scene graph, and ecs.Host,
// which runs on a Donburi world.
//
//	scene := transform2.NewScene()
//	transform2.Install(scene)
//
//	parent := transform2.NewSpatial2At("parent", transform2.Vec2{X: 100})
//	child := transform2.NewSpatial2("child", transform2.WithGlobal2())
//	parent.AddChild(child)
//	scene.Root().AddChild(parent)
//
//	_ = scene.Update()
//	g, _ := child.GlobalTransform2()
//
// [Run] wraps a Scene in an ebiten game loop.
//
// # Conventions
//
// World space is Y-up. A positive rotation turns the X axis towards -Y.
// Depth maps to the host Z translation and orders drawing; larger depth
// draws on top. A 2D scale maps to a 3D scale of (x, y, 1).
//
// # Tweens
//
// [TweenTranslation], [TweenScale], [TweenRotation] and [TweenDepth] animate
// a [Local2] with [gween] easing functions.
//
// [gween]: https://github.com/tanema/gween
package transform2
