package transform2

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Stage selects when a system runs.
type Stage uint8

const (
	StageStartup Stage = iota // once, before the first update
	StageUpdate               // every update tick
)

func (s Stage) String() string {
	switch s {
	case StageStartup:
		return "startup"
	case StageUpdate:
		return "update"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// Anchor places a system relative to the host's global transform
// propagation within a stage.
type Anchor uint8

const (
	PreHostPropagate  Anchor = iota // immediately before host propagation
	PostHostPropagate               // immediately after host propagation
)

func (a Anchor) String() string {
	switch a {
	case PreHostPropagate:
		return "pre-propagate"
	case PostHostPropagate:
		return "post-propagate"
	default:
		return fmt.Sprintf("Anchor(%d)", uint8(a))
	}
}

// System is a pass run to completion by the host's scheduler.
type System func()

// Scheduler is the ordering primitive a host exposes. Systems added to the
// same stage and anchor run in insertion order; no system is ever
// interleaved with the host's propagation.
type Scheduler interface {
	AddSystem(stage Stage, anchor Anchor, name string, sys System)
}

// Host is implemented by hierarchy integrations. The host owns the parent
// links and global propagation; this package only reads and writes the
// per-node slots the host hands out.
type Host interface {
	Scheduler

	// EachLocal calls fn for every node that has both a Transform2 and a
	// host local transform.
	EachLocal(fn func(local2 *Local2, local *Tracked[Transform3]))

	// EachGlobal calls fn for every node that has both a host global
	// transform and a GlobalTransform2.
	EachGlobal(fn func(global *Tracked[mgl32.Mat4], global2 *Global2))
}

// Local2 is the Transform2 component: the authored pose plus the local
// sync's view of it.
type Local2 struct {
	Tracked[Transform2]
	synced Cursor
}

// NewLocal2 returns a Local2 holding t, pending its first local sync.
func NewLocal2(t Transform2) Local2 {
	return Local2{Tracked: NewTracked(t)}
}

// Global2 is the GlobalTransform2 component. Applications read it; only
// SyncGlobal writes it.
type Global2 struct {
	value  GlobalTransform2
	synced Cursor
}

// Get returns the last synced GlobalTransform2.
func (g *Global2) Get() GlobalTransform2 {
	return g.value
}

// SyncLocal converts every Transform2 that changed since the previous call
// into its host local transform. It returns the number of slots written.
func SyncLocal(h Host) int {
	written := 0
	h.EachLocal(func(local2 *Local2, local *Tracked[Transform3]) {
		if !local2.synced.Observe(local2.Generation()) {
			return
		}
		local.Set(local2.Get().Transform3())
		written++
	})
	return written
}

// SyncGlobal refreshes the GlobalTransform2 of every node whose host global
// transform changed since the previous call. It returns the number of
// components written.
func SyncGlobal(h Host) int {
	written := 0
	h.EachGlobal(func(global *Tracked[mgl32.Mat4], global2 *Global2) {
		if !global2.synced.Observe(global.Generation()) {
			return
		}
		global2.value = GlobalFromMatrix(global.Get())
		written++
	})
	return written
}

// Pass names used when registering the sync systems.
const (
	LocalSyncName  = "transform2.sync_local"
	GlobalSyncName = "transform2.sync_global"
)

// Plugin installs the two sync passes on a host.
type Plugin struct {
	// Debug prints per-pass write counts to stderr.
	Debug bool
}

// Build registers the local sync before and the global sync after the
// host's propagation, both at startup and on every update.
func (p Plugin) Build(h Host) {
	for _, stage := range [...]Stage{StageStartup, StageUpdate} {
		stage := stage
		h.AddSystem(stage, PreHostPropagate, LocalSyncName, func() {
			n := SyncLocal(h)
			if p.Debug {
				debugSync(stage, LocalSyncName, n)
			}
		})
		h.AddSystem(stage, PostHostPropagate, GlobalSyncName, func() {
			n := SyncGlobal(h)
			if p.Debug {
				debugSync(stage, GlobalSyncName, n)
			}
		})
	}
}

// Install registers the sync passes with the default Plugin.
func Install(h Host) {
	Plugin{}.Build(h)
}
