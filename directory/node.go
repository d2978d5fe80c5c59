// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package directory

// handle identifies a node slot in the arena
type handle int32

// none stands for an absent child, an absent parent or an empty tree
const none handle = -1

type side int

const (
	left side = iota
	right
)

func (s side) String() string {
	if s == left {
		return "left"
	}
	return "right"
}

// a node in the tree
type node struct {
	address string
	alias   string
	height  int    // 1 for a leaf
	left    handle // left sub-tree
	right   handle // right sub-tree
	parent  handle // owner of this node; next free slot once released
}

// allocate a node, reusing a released slot if any are available
func (d *Directory) alloc(address, alias string) handle {
	n := node{
		address: address,
		alias:   alias,
		height:  1,
		left:    none,
		right:   none,
		parent:  none,
	}
	if d.free == none {
		d.nodes = append(d.nodes, n)
		return handle(len(d.nodes) - 1)
	}
	h := d.free
	d.free = d.nodes[h].parent
	d.nodes[h] = n
	return h
}

// release a slot onto the free list
func (d *Directory) release(h handle) {
	d.nodes[h] = node{
		left:   none,
		right:  none,
		parent: d.free,
	}
	d.free = h
}

func (d *Directory) child(h handle, s side) handle {
	if s == left {
		return d.nodes[h].left
	}
	return d.nodes[h].right
}

// link is the only place child and parent references change. It makes c
// the s child of p, or the root when p is none, and points c back at p.
func (d *Directory) link(p handle, s side, c handle) {
	switch {
	case p == none:
		d.root = c
	case s == left:
		d.nodes[p].left = c
	default:
		d.nodes[p].right = c
	}
	if c != none {
		d.nodes[c].parent = p
	}
}

// sideOf reports which child slot of its parent h occupies
func (d *Directory) sideOf(h handle) side {
	p := d.nodes[h].parent
	if p != none && d.nodes[p].left == h {
		return left
	}
	return right
}

// replace puts c into the slot currently held by h
func (d *Directory) replace(h, c handle) {
	d.link(d.nodes[h].parent, d.sideOf(h), c)
}

func (d *Directory) height(h handle) int {
	if h == none {
		return 0
	}
	return d.nodes[h].height
}

func (d *Directory) updateHeight(h handle) {
	d.nodes[h].height = max(d.height(d.nodes[h].left), d.height(d.nodes[h].right)) + 1
}

func (d *Directory) balanceFactor(h handle) int {
	if h == none {
		return 0
	}
	return d.height(d.nodes[h].left) - d.height(d.nodes[h].right)
}

// depth counts the parent links between h and the root
func (d *Directory) depth(h handle) int {
	count := 0
	for p := d.nodes[h].parent; p != none; p = d.nodes[p].parent {
		count++
	}
	return count
}

// leftmost returns the lowest node in the sub-tree at h
func (d *Directory) leftmost(h handle) handle {
	for d.nodes[h].left != none {
		h = d.nodes[h].left
	}
	return h
}
