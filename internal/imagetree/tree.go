package imagetree

import (
	"path/filepath"
)

// NodeID indexes a node inside its Tree.
type NodeID int

// NoParent is the Parent of the root node.
const NoParent NodeID = -1

// DescendantImage pairs an image with its depth below the node holding it.
// Depth 0 means the image was found in the node's own directory.
type DescendantImage struct {
	Item  *ImageItem
	Depth int
}

// Node is one scanned directory.
type Node struct {
	// ID is the node's index in its Tree.
	ID NodeID
	// Path is the directory path.
	Path string
	// Parent is the parent's ID, NoParent for the root. It is only used to
	// propagate images upwards.
	Parent NodeID
	// Children are the included subdirectories in enumeration order.
	Children []NodeID
	// Images lists every image in the subtree rooted here, with depth
	// relative to this node.
	Images []DescendantImage
	// Populated is true once this directory and its child loop finished
	// without error or cancellation.
	Populated bool
	// Err is set when the directory could not be scanned.
	Err error
}

// Name returns the directory's base name.
func (n *Node) Name() string {
	return filepath.Base(n.Path)
}

// IsRoot reports whether n is the tree root.
func (n *Node) IsRoot() bool {
	return n.Parent == NoParent
}

// OwnImages returns the depth-0 images, in scan order.
func (n *Node) OwnImages() []DescendantImage {
	var own []DescendantImage
	for _, d := range n.Images {
		if d.Depth == 0 {
			own = append(own, d)
		}
	}
	return own
}

// OwnCount returns the number of images found directly in this directory.
func (n *Node) OwnCount() int {
	count := 0
	for _, d := range n.Images {
		if d.Depth == 0 {
			count++
		}
	}
	return count
}

// DeepCount returns the number of images found below this directory,
// excluding its own.
func (n *Node) DeepCount() int {
	return len(n.Images) - n.OwnCount()
}

// Tree is an arena of scanned nodes. Node 0 is the root.
type Tree struct {
	nodes []*Node

	// Blacklist is the exclusion set the tree was scanned with.
	Blacklist *Blacklist
}

func newTree(blacklist *Blacklist) *Tree {
	return &Tree{Blacklist: blacklist}
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree) Root() *Node {
	if len(t.nodes) == 0 {
		return nil
	}
	return t.nodes[0]
}

// Node returns the node with the given ID, or nil.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Parent returns n's parent, or nil for the root.
func (t *Tree) Parent(n *Node) *Node {
	return t.Node(n.Parent)
}

// Children returns n's child nodes in order.
func (t *Tree) Children(n *Node) []*Node {
	children := make([]*Node, 0, len(n.Children))
	for _, id := range n.Children {
		children = append(children, t.nodes[id])
	}
	return children
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// IsPopulated reports whether the root finished scanning.
func (t *Tree) IsPopulated() bool {
	root := t.Root()
	return root != nil && root.Populated
}

// Find returns the node for path, or nil.
func (t *Tree) Find(path string) *Node {
	clean := filepath.Clean(path)
	for _, n := range t.nodes {
		if n.Path == clean {
			return n
		}
	}
	return nil
}

// Failed returns the nodes whose scan failed, in creation order.
func (t *Tree) Failed() []*Node {
	var failed []*Node
	for _, n := range t.nodes {
		if n.Err != nil {
			failed = append(failed, n)
		}
	}
	return failed
}

// Walk visits nodes depth-first, parents before children. level is the
// distance from the root. Returning false from fn skips n's children.
func (t *Tree) Walk(fn func(n *Node, level int) bool) {
	root := t.Root()
	if root == nil {
		return
	}

	type frame struct {
		id    NodeID
		level int
	}
	stack := []frame{{root.ID, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[f.id]
		if !fn(n, f.level) {
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{n.Children[i], f.level + 1})
		}
	}
}

func (t *Tree) addNode(path string, parent NodeID) *Node {
	n := &Node{
		ID:     NodeID(len(t.nodes)),
		Path:   filepath.Clean(path),
		Parent: parent,
	}
	t.nodes = append(t.nodes, n)
	return n
}

// addDescendants records items on node id at depth 0 and on each ancestor
// at its distance from id.
func (t *Tree) addDescendants(id NodeID, items []*ImageItem) {
	if len(items) == 0 {
		return
	}
	for depth := 0; id != NoParent; depth++ {
		n := t.nodes[id]
		for _, item := range items {
			n.Images = append(n.Images, DescendantImage{Item: item, Depth: depth})
		}
		id = n.Parent
	}
}
