package ecs

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ickshonpe/transform2"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// SyncEvent summarizes one Host cycle.
type SyncEvent struct {
	Stage transform2.Stage
	// Propagated counts entities whose GlobalTransform value changed.
	Propagated int
}

// SyncedEventType is published after every Host cycle. Subscribe to it
// and call ProcessEvents to observe propagation.
var SyncedEventType = events.NewEventType[SyncEvent]()

var (
	localQuery   = donburi.NewQuery(filter.Contains(Transform2, LocalTransform))
	globalQuery  = donburi.NewQuery(filter.Contains(GlobalTransform, GlobalTransform2))
	spatialQuery = donburi.NewQuery(filter.Contains(LocalTransform, GlobalTransform))
)

type namedSystem struct {
	name string
	run  transform2.System
}

// Host runs transform2 on a Donburi world. It satisfies transform2.Host.
type Host struct {
	world   donburi.World
	started bool
	debug   bool

	// systems[stage][anchor]
	systems [2][2][]namedSystem

	children map[donburi.Entity][]donburi.Entity
	roots    []donburi.Entity

	// propagated holds what the last pass saw per entity; next is reused
	// as the following pass's map.
	propagated map[donburi.Entity]propagation
	next       map[donburi.Entity]propagation
}

// propagation is the state one pass recorded for an entity: the local
// generation it consumed and the effective parent it composed with.
type propagation struct {
	cursor    transform2.Cursor
	parent    donburi.Entity
	hasParent bool
}

// NewHost creates a Host for world.
func NewHost(world donburi.World) *Host {
	return &Host{
		world:      world,
		children:   make(map[donburi.Entity][]donburi.Entity),
		propagated: make(map[donburi.Entity]propagation),
		next:       make(map[donburi.Entity]propagation),
	}
}

// World returns the underlying Donburi world.
func (h *Host) World() donburi.World {
	return h.world
}

// SetDebugMode enables per-cycle logging to stderr.
func (h *Host) SetDebugMode(enabled bool) {
	h.debug = enabled
}

// AddSystem registers sys to run in stage at anchor.
func (h *Host) AddSystem(stage transform2.Stage, anchor transform2.Anchor, name string, sys transform2.System) {
	if stage > transform2.StageUpdate || anchor > transform2.PostHostPropagate {
		panic("transform2/ecs: unknown stage or anchor")
	}
	h.systems[stage][anchor] = append(h.systems[stage][anchor], namedSystem{name: name, run: sys})
}

// SystemNames returns the names of the systems registered for stage at
// anchor, in run order.
func (h *Host) SystemNames(stage transform2.Stage, anchor transform2.Anchor) []string {
	systems := h.systems[stage][anchor]
	names := make([]string, len(systems))
	for i, sys := range systems {
		names[i] = sys.name
	}
	return names
}

// EachLocal visits every entity with a Transform2 and a LocalTransform.
func (h *Host) EachLocal(fn func(local2 *transform2.Local2, local *transform2.Tracked[transform2.Transform3])) {
	localQuery.Each(h.world, func(entry *donburi.Entry) {
		fn(Transform2.Get(entry), LocalTransform.Get(entry))
	})
}

// EachGlobal visits every entity with a GlobalTransform and a
// GlobalTransform2.
func (h *Host) EachGlobal(fn func(global *transform2.Tracked[mgl32.Mat4], global2 *transform2.Global2)) {
	globalQuery.Each(h.world, func(entry *donburi.Entry) {
		fn(GlobalTransform.Get(entry), GlobalTransform2.Get(entry))
	})
}

// Startup runs the startup cycle once. Later calls are no-ops.
func (h *Host) Startup() {
	if h.started {
		return
	}
	h.started = true
	h.runCycle(transform2.StageStartup)
}

// Update runs Startup if needed, then one update cycle.
func (h *Host) Update() {
	h.Startup()
	h.runCycle(transform2.StageUpdate)
}

func (h *Host) runCycle(stage transform2.Stage) {
	for _, sys := range h.systems[stage][transform2.PreHostPropagate] {
		sys.run()
	}
	n := h.Propagate()
	for _, sys := range h.systems[stage][transform2.PostHostPropagate] {
		sys.run()
	}
	if h.debug {
		_, _ = fmt.Fprintf(os.Stderr, "[transform2/ecs] %s: %d propagated\n", stage, n)
	}
	SyncedEventType.Publish(h.world, SyncEvent{Stage: stage, Propagated: n})
}

// Propagate recomputes GlobalTransform for every entity whose
// LocalTransform moved, whose effective parent changed or whose parent was
// recomputed. Entities whose Parent is missing or lacks host transforms are
// treated as roots. It returns the number of GlobalTransform values that
// changed.
func (h *Host) Propagate() int {
	clear(h.children)
	h.roots = h.roots[:0]

	spatialQuery.Each(h.world, func(entry *donburi.Entry) {
		e := entry.Entity()
		if p, ok := h.spatialParent(entry); ok {
			h.children[p] = append(h.children[p], e)
			return
		}
		h.roots = append(h.roots, e)
	})

	clear(h.next)
	changed := 0
	var none donburi.Entity
	for _, e := range h.roots {
		changed += h.propagate(e, none, false, mgl32.Ident4(), false)
	}
	h.propagated, h.next = h.next, h.propagated
	return changed
}

func (h *Host) spatialParent(entry *donburi.Entry) (donburi.Entity, bool) {
	p, ok := parentOf(h.world, entry.Entity())
	if !ok || !h.world.Valid(p) {
		return p, false
	}
	pe := h.world.Entry(p)
	if !pe.HasComponent(LocalTransform) || !pe.HasComponent(GlobalTransform) {
		return p, false
	}
	return p, true
}

func (h *Host) propagate(e, parentEntity donburi.Entity, hasParent bool, parent mgl32.Mat4, parentRecomputed bool) int {
	entry := h.world.Entry(e)
	local := LocalTransform.Get(entry)
	global := GlobalTransform.Get(entry)

	last, seen := h.propagated[e]
	cur := last.cursor
	moved := cur.Observe(local.Generation())
	reparented := seen && (last.hasParent != hasParent || last.parent != parentEntity)
	h.next[e] = propagation{cursor: cur, parent: parentEntity, hasParent: hasParent}

	recompute := moved || reparented || parentRecomputed
	changed := 0
	if recompute && global.Set(parent.Mul4(local.Get().Matrix())) {
		changed++
	}

	g := global.Get()
	for _, c := range h.children[e] {
		changed += h.propagate(c, e, true, g, recompute)
	}
	return changed
}
