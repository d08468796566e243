package scene

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/marziaf/birb-hunt/math"
)

// NodeID addresses a node inside a Graph.
type NodeID int

// NoNode is the parent of a detached node.
const NoNode NodeID = -1

// ErrCycle is returned by SetParent when the new parent is the child itself
// or one of its descendants.
var ErrCycle = errors.New("scene: parent would create a cycle")

// Entity is something that can be drawn once per frame per visible node.
type Entity interface {
	Draw(worldViewProjection, world math.Mat4)
}

type node struct {
	name     string
	entity   Entity
	collider Collider
	local    math.Mat4
	world    math.Mat4
	parent   NodeID
	children []NodeID
}

// Graph is an arena of scene nodes. Links between nodes are NodeIDs, so
// detaching and re-attaching never moves node storage.
type Graph struct {
	nodes []node
}

func NewGraph() *Graph {
	return &Graph{nodes: make([]node, 0, 64)}
}

// AddNode creates a detached node. A nil entity makes it a dummy node used
// only for grouping.
func (g *Graph) AddNode(name string, entity Entity, collider Collider) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, node{
		name:     name,
		entity:   entity,
		collider: collider,
		local:    math.Identity(),
		world:    math.Identity(),
		parent:   NoNode,
	})
	return id
}

func (g *Graph) Len() int {
	return len(g.nodes)
}

func (g *Graph) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

func (g *Graph) at(id NodeID) *node {
	if !g.valid(id) {
		panic(fmt.Sprintf("scene: invalid node id %d", id))
	}
	return &g.nodes[id]
}

// SetParent detaches child from its current parent, if any, and appends it to
// parent's children. Passing NoNode leaves the child detached.
func (g *Graph) SetParent(child, parent NodeID) error {
	if !g.valid(child) {
		return errors.Errorf("scene: invalid child id %d", child)
	}
	if parent != NoNode {
		if !g.valid(parent) {
			return errors.Errorf("scene: invalid parent id %d", parent)
		}
		for p := parent; p != NoNode; p = g.nodes[p].parent {
			if p == child {
				return errors.Wrapf(ErrCycle, "attach %q under %q", g.nodes[child].name, g.nodes[parent].name)
			}
		}
	}

	c := &g.nodes[child]
	if c.parent != NoNode {
		g.removeChild(c.parent, child)
	}
	if parent != NoNode {
		g.nodes[parent].children = append(g.nodes[parent].children, child)
	}
	c.parent = parent
	return nil
}

func (g *Graph) removeChild(parent, child NodeID) {
	p := &g.nodes[parent]
	for i, c := range p.children {
		if c == child {
			p.children = append(p.children[:i], p.children[i+1:]...)
			return
		}
	}
}

func (g *Graph) Parent(id NodeID) NodeID {
	return g.at(id).parent
}

// Children returns a copy of the node's ordered child list.
func (g *Graph) Children(id NodeID) []NodeID {
	n := g.at(id)
	out := make([]NodeID, len(n.children))
	copy(out, n.children)
	return out
}

func (g *Graph) Name(id NodeID) string {
	return g.at(id).name
}

func (g *Graph) Entity(id NodeID) Entity {
	return g.at(id).entity
}

func (g *Graph) Collider(id NodeID) Collider {
	return g.at(id).collider
}

func (g *Graph) HasCollider(id NodeID) bool {
	return g.at(id).collider != nil
}

// IsDummy reports whether the node has no entity to draw.
func (g *Graph) IsDummy(id NodeID) bool {
	return g.at(id).entity == nil
}

func (g *Graph) LocalMatrix(id NodeID) math.Mat4 {
	return g.at(id).local
}

func (g *Graph) WorldMatrix(id NodeID) math.Mat4 {
	return g.at(id).world
}

// SetLocalMatrix replaces the local transform and refreshes the world
// matrices (and collider locations) of the node's subtree from the parent's
// current world matrix.
func (g *Graph) SetLocalMatrix(id NodeID, m math.Mat4) {
	n := g.at(id)
	n.local = m
	if n.parent == NoNode {
		g.UpdateWorldMatrix(id, nil)
		return
	}
	parentWorld := g.nodes[n.parent].world
	g.UpdateWorldMatrix(id, &parentWorld)
}

// UpdateWorldMatrix recomputes world = parentWorld ∘ local (or local when
// parentWorld is nil), moves the node's collider to the new world origin,
// scales its radius with the world matrix and recurses into every child.
func (g *Graph) UpdateWorldMatrix(id NodeID, parentWorld *math.Mat4) {
	n := g.at(id)
	if parentWorld != nil {
		n.world = math.Multiply(*parentWorld, n.local)
	} else {
		n.world = n.local
	}
	if n.collider != nil {
		n.collider.SetLocation(math.Origin(n.world))
		n.collider.setScale(math.UniformScale(n.world))
	}
	world := n.world
	for _, child := range n.children {
		g.UpdateWorldMatrix(child, &world)
	}
}

// Walk visits root and its descendants in pre-order. Returning false from fn
// stops the walk; Walk reports whether it ran to completion.
func (g *Graph) Walk(root NodeID, fn func(id NodeID) bool) bool {
	if !fn(root) {
		return false
	}
	for _, child := range g.at(root).children {
		if !g.Walk(child, fn) {
			return false
		}
	}
	return true
}

// Find returns the first node named name in pre-order from root.
func (g *Graph) Find(root NodeID, name string) (NodeID, bool) {
	found := NoNode
	g.Walk(root, func(id NodeID) bool {
		if g.nodes[id].name == name {
			found = id
			return false
		}
		return true
	})
	return found, found != NoNode
}

// Draw visits the tree like UpdateWorldMatrix and draws every entity-bearing
// node with worldViewProjection = viewProjection ∘ world. Dummy nodes are not
// drawn but their children are. It returns the number of entities drawn.
func (g *Graph) Draw(root NodeID, viewProjection math.Mat4) int {
	drawn := 0
	g.Walk(root, func(id NodeID) bool {
		n := &g.nodes[id]
		if n.entity == nil {
			return true
		}
		n.entity.Draw(math.Multiply(viewProjection, n.world), n.world)
		drawn++
		return true
	})
	return drawn
}
