package transform2

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func newInstalledScene() *Scene {
	s := NewScene()
	Install(s)
	return s
}

func mustUpdate(t *testing.T, s *Scene) {
	t.Helper()
	if err := s.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func global2(t *testing.T, n *Node) Transform2 {
	t.Helper()
	g, ok := n.GlobalTransform2()
	if !ok {
		t.Fatalf("node %q does not track GlobalTransform2", n.Name)
	}
	return g.Transform2()
}

func TestNewScene(t *testing.T) {
	s := NewScene()
	if s.Root() == nil {
		t.Fatal("root should not be nil")
	}
	if s.Root().Name != "root" {
		t.Errorf("root.Name = %q, want %q", s.Root().Name, "root")
	}
}

func TestSceneSetDebugMode(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	if !s.debug || !globalDebug {
		t.Error("debug should be true")
	}
	s.SetDebugMode(false)
	if s.debug || globalDebug {
		t.Error("debug should be false")
	}
}

// --- Ordering ---

func TestParentMoveReachesChildInOneCycle(t *testing.T) {
	s := newInstalledScene()
	p := NewSpatial2("p", WithGlobal2())
	c := NewSpatial2At("c", Vec2{1, 2}, WithGlobal2())
	p.AddChild(c)
	s.Root().AddChild(p)
	mustUpdate(t, s)

	p.SetTransform2(FromTranslation(Vec2{10, 20}))
	mustUpdate(t, s)

	got := global2(t, c).Translation
	assertNear(t, "child.x", got.X, 11)
	assertNear(t, "child.y", got.Y, 22)
}

func TestDepthComposition(t *testing.T) {
	s := newInstalledScene()
	p := NewSpatial2("p", WithGlobal2())
	c := NewSpatial2("c", WithTransform2(FromDepth(5)), WithGlobal2())
	p.AddChild(c)
	s.Root().AddChild(p)
	mustUpdate(t, s)

	got := global2(t, c)
	if got.Translation != (Vec2{0, 0}) {
		t.Errorf("Translation = %v, want (0, 0)", got.Translation)
	}
	assertNear(t, "depth", got.Depth, 5)
}

func TestDepthAccumulates(t *testing.T) {
	s := newInstalledScene()
	p := NewSpatial2("p", WithTransform2(FromDepth(2)))
	c := NewSpatial2("c", WithTransform2(FromDepth(3)), WithGlobal2())
	p.AddChild(c)
	s.Root().AddChild(p)
	mustUpdate(t, s)

	assertNear(t, "depth", global2(t, c).Depth, 5)
}

func TestParentRotationUsesScreenConvention(t *testing.T) {
	s := newInstalledScene()
	p := NewSpatial2("p", WithTransform2(FromRotation(math.Pi/2)))
	c := NewSpatial2At("c", Vec2{1, 0}, WithGlobal2())
	p.AddChild(c)
	s.Root().AddChild(p)
	mustUpdate(t, s)

	got := global2(t, c)
	assertNear(t, "x", got.Translation.X, 0)
	assertNear(t, "y", got.Translation.Y, -1)
	assertNear(t, "rotation", angleDelta(got.Rotation, math.Pi/2), 0)
}

func TestParentScaleComposes(t *testing.T) {
	s := newInstalledScene()
	p := NewSpatial2("p", WithTransform2(FromScale(Vec2{2, 3})))
	c := NewSpatial2At("c", Vec2{1, 1}, WithGlobal2())
	p.AddChild(c)
	s.Root().AddChild(p)
	mustUpdate(t, s)

	got := global2(t, c)
	assertPose(t, "child", got, Transform2{Translation: Vec2{2, 3}, Scale: Vec2{2, 3}})
}

func TestRootNodeRoundTrip(t *testing.T) {
	s := newInstalledScene()
	pose := Transform2{Translation: Vec2{4, -3}, Depth: 2, Rotation: 2.2, Scale: Vec2{0.5, 3}}
	n := NewSpatial2("n", WithTransform2(pose), WithGlobal2())
	s.Root().AddChild(n)
	mustUpdate(t, s)

	assertPose(t, "global", global2(t, n), pose)
}

// --- Startup ---

func TestStartupFuncPosesVisibleAfterStartup(t *testing.T) {
	s := newInstalledScene()
	n := NewSpatial2("n", WithGlobal2())
	s.Root().AddChild(n)
	s.SetStartupFunc(func() error {
		n.SetTransform2(FromTranslation(Vec2{7, 8}))
		return nil
	})
	if err := s.Startup(); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	got := global2(t, n).Translation
	if got != (Vec2{7, 8}) {
		t.Errorf("Translation = %v, want (7, 8)", got)
	}
}

func TestStartupRunsOnce(t *testing.T) {
	s := NewScene()
	calls := 0
	s.AddSystem(StageStartup, PreHostPropagate, "count", func() { calls++ })
	mustUpdate(t, s)
	mustUpdate(t, s)
	if err := s.Startup(); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("startup system ran %d times, want 1", calls)
	}
}

func TestStartupFuncErrorRetries(t *testing.T) {
	s := newInstalledScene()
	n := NewSpatial2At("n", Vec2{3, 4}, WithGlobal2())
	s.Root().AddChild(n)

	errBoom := errors.New("boom")
	fail := true
	s.SetStartupFunc(func() error {
		if fail {
			return errBoom
		}
		return nil
	})
	if err := s.Startup(); !errors.Is(err, errBoom) {
		t.Fatalf("Startup err = %v, want %v", err, errBoom)
	}

	fail = false
	if err := s.Startup(); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	got := global2(t, n).Translation
	if got != (Vec2{3, 4}) {
		t.Errorf("Translation = %v, want (3, 4) after retried startup", got)
	}
}

func TestUpdateFuncErrorStopsCycle(t *testing.T) {
	s := NewScene()
	errBoom := errors.New("boom")
	ran := false
	s.SetUpdateFunc(func() error { return errBoom })
	s.AddSystem(StageUpdate, PreHostPropagate, "after", func() { ran = true })
	if err := s.Update(); !errors.Is(err, errBoom) {
		t.Fatalf("Update err = %v, want %v", err, errBoom)
	}
	if ran {
		t.Error("systems ran after update callback failed")
	}
}

func TestSystemsRunAroundPropagation(t *testing.T) {
	s := NewScene()
	n := NewNode("n")
	s.Root().AddChild(n)

	var order []string
	s.AddSystem(StageUpdate, PostHostPropagate, "post", func() {
		if n.Global.Get()[12] != 3 {
			t.Errorf("post system saw stale global %v", n.Global.Get()[12])
		}
		order = append(order, "post")
	})
	s.AddSystem(StageUpdate, PreHostPropagate, "pre", func() {
		n.Local.Set(Transform3{Translation: mgl32.Vec3{3, 0, 0}, Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}})
		order = append(order, "pre")
	})
	mustUpdate(t, s)

	if len(order) != 2 || order[0] != "pre" || order[1] != "post" {
		t.Errorf("order = %v, want [pre post]", order)
	}
}

func TestAddSystemUnknownStagePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewScene().AddSystem(Stage(5), PreHostPropagate, "bad", func() {})
}

// --- Change detection ---

func TestIdleCycleWritesNothing(t *testing.T) {
	s := newInstalledScene()
	a := NewSpatial2At("a", Vec2{1, 1}, WithGlobal2())
	b := NewSpatial2At("b", Vec2{2, 2}, WithGlobal2())
	a.AddChild(b)
	s.Root().AddChild(a)
	mustUpdate(t, s)

	localGen := b.Local.Generation()
	globalGen := b.Global.Generation()
	mustUpdate(t, s)

	if b.Local.Generation() != localGen {
		t.Error("idle cycle rewrote the local slot")
	}
	if b.Global.Generation() != globalGen {
		t.Error("idle cycle rewrote the global slot")
	}
	if n := SyncLocal(s); n != 0 {
		t.Errorf("SyncLocal wrote %d after idle cycle, want 0", n)
	}
	if n := SyncGlobal(s); n != 0 {
		t.Errorf("SyncGlobal wrote %d after idle cycle, want 0", n)
	}
	if n := s.Propagate(); n != 0 {
		t.Errorf("Propagate changed %d globals with nothing dirty, want 0", n)
	}
}

func TestSiblingChangeLeavesOthersAlone(t *testing.T) {
	s := newInstalledScene()
	a := NewSpatial2("a", WithGlobal2())
	b := NewSpatial2("b", WithGlobal2())
	s.Root().AddChild(a)
	s.Root().AddChild(b)
	mustUpdate(t, s)

	gen := b.Global.Generation()
	a.SetTransform2(FromDepth(1))
	mustUpdate(t, s)

	if b.Global.Generation() != gen {
		t.Error("sibling's global changed")
	}
}

// --- Missing components ---

func TestHostOnlyNodeFeedsGlobal2(t *testing.T) {
	s := newInstalledScene()
	n := NewNode("plain")
	n.TrackGlobal2()
	n.Local.Set(FromTranslation(Vec2{4, 5}).Transform3())
	s.Root().AddChild(n)
	mustUpdate(t, s)

	got := global2(t, n).Translation
	if got != (Vec2{4, 5}) {
		t.Errorf("Translation = %v, want (4, 5)", got)
	}
}

func TestNodeWithoutGlobal2IsSkipped(t *testing.T) {
	s := newInstalledScene()
	n := NewSpatial2At("n", Vec2{1, 0})
	s.Root().AddChild(n)
	mustUpdate(t, s)

	if _, ok := n.GlobalTransform2(); ok {
		t.Error("node without GlobalTransform2 reported one")
	}
	assertNear(t, "host global x", n.Global.Get()[12], 1)
}

func TestRemoveTransform2StopsLocalSync(t *testing.T) {
	s := newInstalledScene()
	n := NewSpatial2At("n", Vec2{1, 0})
	s.Root().AddChild(n)
	mustUpdate(t, s)

	n.RemoveTransform2()
	if n.UpdateTransform2(func(p *Transform2) { p.Depth = 1 }) {
		t.Error("UpdateTransform2 succeeded without a component")
	}
	mustUpdate(t, s)
	assertNear(t, "kept local x", n.Local.Get().Translation[0], 1)
}

// --- Hierarchy changes ---

func TestReparentRecomputesGlobal(t *testing.T) {
	s := newInstalledScene()
	p1 := NewSpatial2At("p1", Vec2{10, 0})
	p2 := NewSpatial2At("p2", Vec2{0, 10})
	c := NewSpatial2("c", WithGlobal2())
	s.Root().AddChild(p1)
	s.Root().AddChild(p2)
	p1.AddChild(c)
	mustUpdate(t, s)

	p2.AddChild(c)
	mustUpdate(t, s)

	got := global2(t, c).Translation
	if got != (Vec2{0, 10}) {
		t.Errorf("Translation = %v, want (0, 10)", got)
	}
}

func TestDisposedNodeNotVisited(t *testing.T) {
	s := newInstalledScene()
	n := NewSpatial2("n", WithGlobal2())
	s.Root().AddChild(n)
	n.Dispose()

	visited := 0
	s.EachLocal(func(*Local2, *Tracked[Transform3]) { visited++ })
	s.EachGlobal(func(*Tracked[mgl32.Mat4], *Global2) { visited++ })
	if visited != 0 {
		t.Errorf("visited %d disposed slots", visited)
	}
}

func TestSystemNamesAfterInstall(t *testing.T) {
	s := newInstalledScene()
	s.AddSystem(StageUpdate, PreHostPropagate, "game.move", func() {})

	for _, stage := range []Stage{StageStartup, StageUpdate} {
		pre := s.SystemNames(stage, PreHostPropagate)
		if len(pre) == 0 || pre[0] != LocalSyncName {
			t.Errorf("%s pre = %v, want %s first", stage, pre, LocalSyncName)
		}
		post := s.SystemNames(stage, PostHostPropagate)
		if len(post) != 1 || post[0] != GlobalSyncName {
			t.Errorf("%s post = %v, want [%s]", stage, post, GlobalSyncName)
		}
	}
	if got := s.SystemNames(StageUpdate, PreHostPropagate); len(got) != 2 || got[1] != "game.move" {
		t.Errorf("update pre = %v", got)
	}
}

func TestLastPropagatedCount(t *testing.T) {
	s := newInstalledScene()
	a := NewSpatial2At("a", Vec2{1, 0})
	b := NewSpatial2At("b", Vec2{2, 0})
	s.Root().AddChild(a)
	s.Root().AddChild(b)
	mustUpdate(t, s)

	a.SetTransform2(FromTranslation(Vec2{5, 0}))
	mustUpdate(t, s)
	if s.lastPropagated != 1 {
		t.Errorf("lastPropagated = %d, want 1", s.lastPropagated)
	}
}
