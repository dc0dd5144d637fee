package tree

// Equal reports whether a and b are structurally identical trees.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case *Leaf:
		y, ok := b.(*Leaf)
		if !ok || x == nil || y == nil {
			return ok && x == y
		}
		return *x == *y
	case *Group:
		y, ok := b.(*Group)
		if !ok || x == nil || y == nil {
			return ok && x == y
		}
		if x.Connective != y.Connective || len(x.Children) != len(y.Children) {
			return false
		}
		for i := range x.Children {
			if !Equal(x.Children[i], y.Children[i]) {
				return false
			}
		}
		return true
	}
	return a == nil && b == nil
}

// WalkFunc is called for every node with its nesting depth. Returning false
// skips the children of a group.
type WalkFunc func(n Node, depth int) bool

// Walk visits n and its descendants in depth-first, left-to-right order.
func Walk(n Node, fn WalkFunc) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn WalkFunc) {
	if !fn(n, depth) {
		return
	}
	if g, ok := n.(*Group); ok {
		for _, child := range g.Children {
			walk(child, depth+1, fn)
		}
	}
}

// Leaves returns every leaf under n in left-to-right order.
func Leaves(n Node) []*Leaf {
	var leaves []*Leaf
	Walk(n, func(n Node, _ int) bool {
		if l, ok := n.(*Leaf); ok {
			leaves = append(leaves, l)
		}
		return true
	})
	return leaves
}

// Depth returns the number of group levels in n. A leaf has depth 0.
func Depth(n Node) int {
	max := 0
	Walk(n, func(n Node, depth int) bool {
		if _, ok := n.(*Group); ok && depth+1 > max {
			max = depth + 1
		}
		return true
	})
	return max
}
