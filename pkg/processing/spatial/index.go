package spatial

import (
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/PauMatas/DPA-visual-analytics-tool/pkg/model"
)

// node is a 2D point in the tree carrying the index of its origin.
type node struct {
	x, y float64
	id   int
}

func (p node) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(node)
	switch d {
	case 0:
		return p.x - q.x
	case 1:
		return p.y - q.y
	default:
		panic("illegal dimension")
	}
}

func (p node) Dims() int { return 2 }

func (p node) Distance(c kdtree.Comparable) float64 {
	q := c.(node)
	dx, dy := p.x-q.x, p.y-q.y
	return dx*dx + dy*dy
}

type nodes []node

func (p nodes) Index(i int) kdtree.Comparable { return p[i] }
func (p nodes) Len() int                       { return len(p) }
func (p nodes) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}

// Pivot sorts by the plane and takes the median. Unlike the randomized
// median selection of kdtree.Points this yields the same tree for the same
// input, so equidistant queries resolve identically.
func (p nodes) Pivot(d kdtree.Dim) int {
	sort.Sort(plane{nodes: p, Dim: d})
	return len(p) / 2
}

type plane struct {
	kdtree.Dim
	nodes
}

func (p plane) Less(i, j int) bool {
	c := p.nodes[i].Compare(p.nodes[j], p.Dim)
	if c != 0 {
		return c < 0
	}
	return p.nodes[i].id < p.nodes[j].id
}

func (p plane) Swap(i, j int) { p.nodes[i], p.nodes[j] = p.nodes[j], p.nodes[i] }

// Index answers nearest neighbour queries over a fixed set of 2D points.
type Index struct {
	tree *kdtree.Tree
}

// NewIndex builds an index over points. ids[i] is reported for points[i];
// when ids is nil the position in points is used.
func NewIndex(points []model.Point, ids []int) *Index {
	data := make(nodes, len(points))
	for i, p := range points {
		id := i
		if ids != nil {
			id = ids[i]
		}
		data[i] = node{x: p.X, y: p.Y, id: id}
	}
	return &Index{tree: kdtree.New(data, false)}
}

func (idx *Index) Len() int {
	return idx.tree.Len()
}

// Nearest returns the id of the point closest to q and the squared distance.
// ok is false for an empty index.
func (idx *Index) Nearest(q model.Point) (id int, dist2 float64, ok bool) {
	c, d := idx.tree.Nearest(node{x: q.X, y: q.Y, id: -1})
	if c == nil {
		return -1, d, false
	}
	return c.(node).id, d, true
}
