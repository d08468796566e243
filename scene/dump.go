package scene

import (
	"github.com/davecgh/go-spew/spew"

	"github.com/marziaf/birb-hunt/math"
)

var spewConfig = &spew.ConfigState{
	Indent:                  "  ",
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	DisableMethods:          true,
	SortKeys:                true,
}

type dumpCollider struct {
	Kind     string
	Radius   float32
	Location [3]float32
}

type dumpNode struct {
	Name     string
	Dummy    bool
	Origin   [3]float32
	Collider *dumpCollider
	Children []*dumpNode
}

func (g *Graph) dumpTree(id NodeID) *dumpNode {
	n := g.at(id)
	d := &dumpNode{
		Name:   n.name,
		Dummy:  n.entity == nil,
		Origin: math.Origin(n.world),
	}
	if n.collider != nil {
		d.Collider = &dumpCollider{
			Kind:     n.collider.Kind().String(),
			Radius:   n.collider.Radius(),
			Location: n.collider.Location(),
		}
	}
	for _, child := range n.children {
		d.Children = append(d.Children, g.dumpTree(child))
	}
	return d
}

// Dump renders the subtree under root for debugging: names, world origins
// and colliders.
func (g *Graph) Dump(root NodeID) string {
	return spewConfig.Sdump(g.dumpTree(root))
}
