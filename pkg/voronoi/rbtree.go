package voronoi

// beachTree is a red-black tree of beachline arcs, threaded with prev/next
// links so neighbor queries during sweep mutations are O(1) after the
// O(log n) descent. Nodes carry no stored keys: the order of the beachline
// is positional and every arc is inserted next to an already-located
// neighbor. The comparator lives in the beachline search and is evaluated
// lazily against the current directrix, which is why it cannot be baked
// into the tree.
type beachTree struct {
	root *arc
}

// insertAfter links succ as the in-order successor of node and rebalances.
// A nil node prepends succ to the whole beachline.
func (t *beachTree) insertAfter(node, succ *arc) {
	var parent *arc

	switch {
	case node != nil:
		succ.prev = node
		succ.next = node.next
		if node.next != nil {
			node.next.prev = succ
		}
		node.next = succ
		if node.right != nil {
			node = leftmost(node.right)
			node.left = succ
		} else {
			node.right = succ
		}
		parent = node

	case t.root != nil:
		node = leftmost(t.root)
		succ.prev = nil
		succ.next = node
		node.prev = succ
		node.left = succ
		parent = node

	default:
		succ.prev = nil
		succ.next = nil
		t.root = succ
	}

	succ.left = nil
	succ.right = nil
	succ.parent = parent
	succ.red = true

	// standard red-black insertion fixup
	var grandpa, uncle *arc
	node = succ
	for parent != nil && parent.red {
		grandpa = parent.parent
		if parent == grandpa.left {
			uncle = grandpa.right
			if uncle != nil && uncle.red {
				parent.red = false
				uncle.red = false
				grandpa.red = true
				node = grandpa
			} else {
				if node == parent.right {
					t.rotateLeft(parent)
					node = parent
					parent = node.parent
				}
				parent.red = false
				grandpa.red = true
				t.rotateRight(grandpa)
			}
		} else {
			uncle = grandpa.left
			if uncle != nil && uncle.red {
				parent.red = false
				uncle.red = false
				grandpa.red = true
				node = grandpa
			} else {
				if node == parent.left {
					t.rotateRight(parent)
					node = parent
					parent = node.parent
				}
				parent.red = false
				grandpa.red = true
				t.rotateLeft(grandpa)
			}
		}
		parent = node.parent
	}
	t.root.red = false
}

// remove unlinks node from both the threading and the tree, rebalancing as
// needed.
func (t *beachTree) remove(node *arc) {
	if node.next != nil {
		node.next.prev = node.prev
	}
	if node.prev != nil {
		node.prev.next = node.next
	}
	node.next = nil
	node.prev = nil

	parent := node.parent
	left := node.left
	right := node.right
	var next *arc
	switch {
	case left == nil:
		next = right
	case right == nil:
		next = left
	default:
		next = leftmost(right)
	}

	if parent != nil {
		if parent.left == node {
			parent.left = next
		} else {
			parent.right = next
		}
	} else {
		t.root = next
	}

	var isRed bool
	if left != nil && right != nil {
		isRed = next.red
		next.red = node.red
		next.left = left
		left.parent = next
		if next != right {
			parent = next.parent
			next.parent = node.parent
			node = next.right
			parent.left = node
			next.right = right
			right.parent = next
		} else {
			next.parent = parent
			parent = next
			node = next.right
		}
	} else {
		isRed = node.red
		node = next
	}

	if node != nil {
		node.parent = parent
	}
	if isRed {
		return
	}
	if node != nil && node.red {
		node.red = false
		return
	}

	// deletion fixup
	var sibling *arc
	for node != t.root {
		if node == parent.left {
			sibling = parent.right
			if sibling.red {
				sibling.red = false
				parent.red = true
				t.rotateLeft(parent)
				sibling = parent.right
			}
			if (sibling.left != nil && sibling.left.red) || (sibling.right != nil && sibling.right.red) {
				if sibling.right == nil || !sibling.right.red {
					sibling.left.red = false
					sibling.red = true
					t.rotateRight(sibling)
					sibling = parent.right
				}
				sibling.red = parent.red
				parent.red = false
				sibling.right.red = false
				t.rotateLeft(parent)
				node = t.root
				break
			}
		} else {
			sibling = parent.left
			if sibling.red {
				sibling.red = false
				parent.red = true
				t.rotateRight(parent)
				sibling = parent.left
			}
			if (sibling.left != nil && sibling.left.red) || (sibling.right != nil && sibling.right.red) {
				if sibling.left == nil || !sibling.left.red {
					sibling.right.red = false
					sibling.red = true
					t.rotateLeft(sibling)
					sibling = parent.left
				}
				sibling.red = parent.red
				parent.red = false
				sibling.left.red = false
				t.rotateRight(parent)
				node = t.root
				break
			}
		}
		sibling.red = true
		node = parent
		parent = parent.parent
		if node.red {
			break
		}
	}
	if node != nil {
		node.red = false
	}
}

func (t *beachTree) rotateLeft(p *arc) {
	q := p.right
	parent := p.parent
	if parent != nil {
		if parent.left == p {
			parent.left = q
		} else {
			parent.right = q
		}
	} else {
		t.root = q
	}
	q.parent = parent
	p.parent = q
	p.right = q.left
	if p.right != nil {
		p.right.parent = p
	}
	q.left = p
}

func (t *beachTree) rotateRight(p *arc) {
	q := p.left
	parent := p.parent
	if parent != nil {
		if parent.left == p {
			parent.left = q
		} else {
			parent.right = q
		}
	} else {
		t.root = q
	}
	q.parent = parent
	p.parent = q
	p.left = q.right
	if p.left != nil {
		p.left.parent = p
	}
	q.right = p
}

func leftmost(node *arc) *arc {
	for node.left != nil {
		node = node.left
	}
	return node
}
