package transform2

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// PropagateName is the name reported for the scene's own propagation pass.
const PropagateName = "scene.propagate"

type namedSystem struct {
	name string
	run  System
}

// Scene is the reference host: it owns a node tree, propagates global
// transforms through it and runs registered systems around that
// propagation. A Scene satisfies Host.
type Scene struct {
	root  *Node
	debug bool

	// ClearColor fills the screen before Draw when its alpha is non-zero.
	ClearColor Color
	// ShowStats overlays FPS, TPS and the propagation count after Draw.
	ShowStats bool

	startupFunc func() error
	updateFunc  func() error
	started     bool

	// systems[stage][anchor]
	systems [2][2][]namedSystem

	drawBuf        []*Node
	lastPropagated int
}

// NewScene creates a new scene with a pre-created root node.
func NewScene() *Scene {
	return &Scene{root: NewNode("root")}
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetStartupFunc sets a callback run once at the start of Startup, before
// the startup systems. Poses set here are visible after the first cycle.
func (s *Scene) SetStartupFunc(fn func() error) {
	s.startupFunc = fn
}

// SetUpdateFunc sets a callback run at the start of every Update, before
// the pre-propagation systems.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// AddSystem registers sys to run in stage at anchor. Systems sharing a
// stage and anchor run in registration order.
func (s *Scene) AddSystem(stage Stage, anchor Anchor, name string, sys System) {
	if stage > StageUpdate || anchor > PostHostPropagate {
		panic("transform2: unknown stage or anchor")
	}
	s.systems[stage][anchor] = append(s.systems[stage][anchor], namedSystem{name: name, run: sys})
}

// EachLocal visits every attached node carrying a Transform2, depth-first.
func (s *Scene) EachLocal(fn func(local2 *Local2, local *Tracked[Transform3])) {
	walk(s.root, func(n *Node) {
		if n.local2 != nil {
			fn(n.local2, &n.Local)
		}
	})
}

// EachGlobal visits every attached node tracking a GlobalTransform2,
// depth-first.
func (s *Scene) EachGlobal(fn func(global *Tracked[mgl32.Mat4], global2 *Global2)) {
	walk(s.root, func(n *Node) {
		if n.global2 != nil {
			fn(&n.Global, n.global2)
		}
	})
}

func walk(n *Node, fn func(*Node)) {
	fn(n)
	for _, child := range n.children {
		walk(child, fn)
	}
}

// Propagate recomputes global transforms for every node whose local
// transform or ancestry changed. It returns the number of Global slots
// whose value changed.
func (s *Scene) Propagate() int {
	return updateGlobalTransform(s.root, identityMatrix, false)
}

// Startup runs the startup cycle once: the startup callback, the startup
// pre-propagation systems, propagation, then the post-propagation systems.
// Later calls are no-ops once it succeeds; a failed startup callback is
// retried on the next call.
func (s *Scene) Startup() error {
	if s.started {
		return nil
	}
	if s.startupFunc != nil {
		if err := s.startupFunc(); err != nil {
			return err
		}
	}
	s.started = true
	s.runCycle(StageStartup)
	return nil
}

// Update runs one tick: Startup if it has not run yet, the update callback,
// then the update systems around propagation.
func (s *Scene) Update() error {
	if err := s.Startup(); err != nil {
		return err
	}
	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}
	s.runCycle(StageUpdate)
	return nil
}

func (s *Scene) runCycle(stage Stage) {
	var stats debugStats
	stats.stage = stage

	stats.pre = s.runSystems(stage, PreHostPropagate)

	t0 := time.Now()
	stats.propagated = s.Propagate()
	stats.propagateTime = time.Since(t0)
	s.lastPropagated = stats.propagated

	stats.post = s.runSystems(stage, PostHostPropagate)

	if s.debug {
		s.debugLog(stats)
	}
}

// SystemNames returns the names of the systems registered for stage at
// anchor, in run order.
func (s *Scene) SystemNames(stage Stage, anchor Anchor) []string {
	return systemNames(s.systems[stage][anchor])
}

func systemNames(systems []namedSystem) []string {
	names := make([]string, len(systems))
	for i, sys := range systems {
		names[i] = sys.name
	}
	return names
}

func (s *Scene) runSystems(stage Stage, anchor Anchor) time.Duration {
	t0 := time.Now()
	for _, sys := range s.systems[stage][anchor] {
		sys.run()
	}
	return time.Since(t0)
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, deep trees print a warning and per-cycle timing stats are
// logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool
