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

/*
rotate flips the sub-tree at n between these forms (rotating left goes
from left to right, rotating right goes back):

	   |              |
	   n              m
	  / \            / \
	 x   m    =>    n   z
	    / \        / \
	   y   z      x   y

The three links that change are n's slot in its parent, y crossing over
to n, and n moving under m. All three go through link so the parent
handles follow the child handles.
*/
func (d *Directory) rotate(n handle, dir side) handle {
	from := right
	if dir == right {
		from = left
	}
	m := d.child(n, from)
	if m == none {
		return n
	}
	y := d.child(m, dir)

	d.replace(n, m)
	d.link(n, from, y)
	d.link(m, dir, n)

	d.updateHeight(n)
	d.updateHeight(m)

	if d.logger.IsTrace() {
		d.logger.Trace("rotate", "direction", dir.String(), "from", d.nodes[n].alias, "to", d.nodes[m].alias)
	}
	return m
}

func (d *Directory) rotateLeft(n handle) handle {
	return d.rotate(n, left)
}

func (d *Directory) rotateRight(n handle) handle {
	return d.rotate(n, right)
}

// rebalance restores the AVL property at n, whose children must already be
// balanced with correct heights. It returns the new local root, which sits
// in n's old slot.
func (d *Directory) rebalance(n handle) handle {
	bf := d.balanceFactor(n)

	// Left-heavy
	if bf > 1 {
		if d.balanceFactor(d.nodes[n].left) < 0 {
			d.rotateLeft(d.nodes[n].left)
		}
		return d.rebalance(d.rotateRight(n))
	}

	// Right-heavy
	if bf < -1 {
		if d.balanceFactor(d.nodes[n].right) > 0 {
			d.rotateRight(d.nodes[n].right)
		}
		return d.rebalance(d.rotateLeft(n))
	}

	return n
}

// retrace walks from h up to the root refreshing heights and rebalancing
// every node on the way.
func (d *Directory) retrace(h handle) {
	for h != none {
		d.updateHeight(h)
		h = d.nodes[d.rebalance(h)].parent
	}
}
