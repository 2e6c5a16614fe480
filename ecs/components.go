package ecs

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/ickshonpe/transform2"

	"github.com/yohamta/donburi"
)

var (
	// Transform2 is the authored 2D pose.
	Transform2 = donburi.NewComponentType[transform2.Local2]()
	// GlobalTransform2 is the 2D readback of GlobalTransform.
	GlobalTransform2 = donburi.NewComponentType[transform2.Global2]()
	// LocalTransform is the host local transform slot.
	LocalTransform = donburi.NewComponentType[transform2.Tracked[transform2.Transform3]]()
	// GlobalTransform is the host global transform slot, written only by
	// Host propagation.
	GlobalTransform = donburi.NewComponentType[transform2.Tracked[mgl32.Mat4]]()
	// Parent links an entity to its parent entity.
	Parent = donburi.NewComponentType[donburi.Entity]()
)

func initSpatial(entry *donburi.Entry) {
	LocalTransform.SetValue(entry, transform2.NewTracked(transform2.Identity3()))
	GlobalTransform.SetValue(entry, transform2.NewTracked(mgl32.Ident4()))
}

// SpawnSpatial creates an entity with identity host transforms and no 2D
// components.
func SpawnSpatial(world donburi.World) donburi.Entity {
	e := world.Create(LocalTransform, GlobalTransform)
	initSpatial(world.Entry(e))
	return e
}

// Spawn2 creates an entity with a Transform2 and host transforms.
func Spawn2(world donburi.World, t transform2.Transform2) donburi.Entity {
	e := world.Create(Transform2, LocalTransform, GlobalTransform)
	entry := world.Entry(e)
	initSpatial(entry)
	Transform2.SetValue(entry, transform2.NewLocal2(t))
	return e
}

// SpawnTracked2 is Spawn2 plus a GlobalTransform2.
func SpawnTracked2(world donburi.World, t transform2.Transform2) donburi.Entity {
	e := world.Create(Transform2, GlobalTransform2, LocalTransform, GlobalTransform)
	entry := world.Entry(e)
	initSpatial(entry)
	Transform2.SetValue(entry, transform2.NewLocal2(t))
	return e
}

// SetParent makes parent the parent of child. The child's local slot is
// touched so the next propagation recomputes its subtree.
func SetParent(world donburi.World, child, parent donburi.Entity) {
	if child == parent {
		panic("transform2/ecs: entity cannot parent itself")
	}
	for p, ok := parent, true; ok; p, ok = parentOf(world, p) {
		if p == child {
			panic("transform2/ecs: parenting would create a cycle")
		}
	}
	entry := world.Entry(child)
	if !entry.HasComponent(Parent) {
		donburi.Add(entry, Parent, &parent)
	} else {
		Parent.SetValue(entry, parent)
	}
	touchLocal(entry)
}

// RemoveParent detaches child from its parent, making it a root.
func RemoveParent(world donburi.World, child donburi.Entity) {
	entry := world.Entry(child)
	if !entry.HasComponent(Parent) {
		return
	}
	entry.RemoveComponent(Parent)
	touchLocal(entry)
}

func parentOf(world donburi.World, e donburi.Entity) (donburi.Entity, bool) {
	if !world.Valid(e) {
		return e, false
	}
	entry := world.Entry(e)
	if !entry.HasComponent(Parent) {
		return e, false
	}
	return Parent.GetValue(entry), true
}

func touchLocal(entry *donburi.Entry) {
	if entry.HasComponent(LocalTransform) {
		LocalTransform.Get(entry).Touch()
	}
}

// SetTransform2 stores t on an entity that has a Transform2.
func SetTransform2(world donburi.World, e donburi.Entity, t transform2.Transform2) {
	Transform2.Get(world.Entry(e)).Set(t)
}

// GetGlobalTransform2 returns the entity's GlobalTransform2 and whether it
// tracks one.
func GetGlobalTransform2(world donburi.World, e donburi.Entity) (transform2.GlobalTransform2, bool) {
	entry := world.Entry(e)
	if !entry.HasComponent(GlobalTransform2) {
		return transform2.GlobalTransform2{}, false
	}
	return GlobalTransform2.Get(entry).Get(), true
}
