package transform2

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to two Transform2 fields of one Local2. Create one
// via the convenience constructors (TweenTranslation, TweenScale,
// TweenRotation, TweenDepth) and call Update(dt) each frame. Values are
// written through Local2.Update, so the next local sync picks them up.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	apply  func(t *Transform2, v [2]float32)
	target *Local2
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target. Once every tween finishes, Done is set and further calls are
// no-ops.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	var vals [2]float32
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = val
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	g.target.Update(func(t *Transform2) {
		g.apply(t, vals)
	})
}

// TweenTranslation animates the translation of target to the given point.
func TweenTranslation(target *Local2, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := target.Get().Translation
	g := &TweenGroup{count: 2, target: target}
	g.tweens[0] = gween.New(from.X, to.X, duration, fn)
	g.tweens[1] = gween.New(from.Y, to.Y, duration, fn)
	g.apply = func(t *Transform2, v [2]float32) {
		t.Translation = Vec2{v[0], v[1]}
	}
	return g
}

// TweenScale animates the scale of target to the given value.
func TweenScale(target *Local2, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := target.Get().Scale
	g := &TweenGroup{count: 2, target: target}
	g.tweens[0] = gween.New(from.X, to.X, duration, fn)
	g.tweens[1] = gween.New(from.Y, to.Y, duration, fn)
	g.apply = func(t *Transform2, v [2]float32) {
		t.Scale = Vec2{v[0], v[1]}
	}
	return g
}

// TweenRotation animates the rotation of target to the given angle in
// radians. No shortest-path wrapping is applied.
func TweenRotation(target *Local2, to float32, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: target}
	g.tweens[0] = gween.New(target.Get().Rotation, to, duration, fn)
	g.apply = func(t *Transform2, v [2]float32) {
		t.Rotation = v[0]
	}
	return g
}

// TweenDepth animates the depth of target to the given value.
func TweenDepth(target *Local2, to float32, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: target}
	g.tweens[0] = gween.New(target.Get().Depth, to, duration, fn)
	g.apply = func(t *Transform2, v [2]float32) {
		t.Depth = v[0]
	}
	return g
}
