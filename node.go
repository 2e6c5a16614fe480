package transform2

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic, scenes are single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Color is an RGBA tint with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// --- Node ---

// Node is an element of the reference scene graph. Every node carries the
// host slots (Local, Global); the 2D components are optional and attached
// with SetTransform2 and TrackGlobal2.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Host transform slots. Local is written by the local sync for nodes
	// carrying a Transform2, or directly by the application otherwise.
	// Global is written only by Scene propagation.
	Local  Tracked[Transform3]
	Global Tracked[mgl32.Mat4]

	// 2D components
	local2  *Local2
	global2 *Global2

	// Drawable fields. A node with a nil Image is not drawn.
	Image   *ebiten.Image
	Region  TextureRegion
	Color   Color
	Visible bool

	// Metadata
	UserData any

	// Internal
	propagated     Cursor // Local generation seen by the last propagation
	transformDirty bool   // set on reparent; forces recomputation
	disposed       bool
}

// NewNode creates a node with identity host transforms and no 2D components.
func NewNode(name string) *Node {
	return &Node{
		ID:             nextNodeID(),
		Name:           name,
		Local:          NewTracked(Identity3()),
		Global:         NewTracked(mgl32.Ident4()),
		Color:          ColorWhite,
		Visible:        true,
		transformDirty: true,
	}
}

// --- 2D components ---

// SetTransform2 stores t as the node's Transform2, attaching the component
// if the node does not have one yet.
func (n *Node) SetTransform2(t Transform2) {
	if n.local2 == nil {
		l := NewLocal2(t)
		n.local2 = &l
		return
	}
	n.local2.Set(t)
}

// UpdateTransform2 mutates the node's Transform2 in place. It returns false
// if the node has no Transform2 or fn left the value unchanged.
func (n *Node) UpdateTransform2(fn func(*Transform2)) bool {
	if n.local2 == nil {
		return false
	}
	return n.local2.Update(fn)
}

// Transform2 returns the node's Transform2 and whether it has one.
func (n *Node) Transform2() (Transform2, bool) {
	if n.local2 == nil {
		return Transform2{}, false
	}
	return n.local2.Get(), true
}

// Local2 returns the Transform2 component, or nil.
func (n *Node) Local2() *Local2 {
	return n.local2
}

// RemoveTransform2 detaches the Transform2 component. The host local
// transform keeps its last synced value.
func (n *Node) RemoveTransform2() {
	n.local2 = nil
}

// TrackGlobal2 attaches a GlobalTransform2 component. It is filled on the
// next global sync. No-op if already attached.
func (n *Node) TrackGlobal2() {
	if n.global2 == nil {
		n.global2 = &Global2{}
	}
}

// UntrackGlobal2 detaches the GlobalTransform2 component.
func (n *Node) UntrackGlobal2() {
	n.global2 = nil
}

// GlobalTransform2 returns the node's last synced GlobalTransform2 and
// whether the node tracks one.
func (n *Node) GlobalTransform2() (GlobalTransform2, bool) {
	if n.global2 == nil {
		return GlobalTransform2{}, false
	}
	return n.global2.Get(), true
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("transform2: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("transform2: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("transform2: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("transform2: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index < 0 || index > len(n.children) {
		panic("transform2: child index out of range")
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("transform2: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) *Node {
	if index < 0 || index >= len(n.children) {
		panic("transform2: child index out of range")
	}
	child := n.children[index]
	copy(n.children[index:], n.children[index+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.Parent = nil
	markSubtreeDirty(child)
	return child
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. The node's 2D components go
// with it.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.local2 = nil
	n.global2 = nil
	n.Image = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
