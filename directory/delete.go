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

import (
	"fmt"
)

// Delete removes alias from the directory and rebalances the path back to
// the root. It returns ErrNotFound, without touching the tree, when the
// alias is absent.
func (d *Directory) Delete(alias string) error {
	h := d.search(alias)
	if h == none {
		return fmt.Errorf("%w: %q", ErrNotFound, alias)
	}

	// With two children the in-order successor takes over h's pair and the
	// successor's own slot is removed instead. It has no left child, so the
	// removal below is always the leaf or one-child case.
	target := h
	if d.nodes[h].left != none && d.nodes[h].right != none {
		target = d.leftmost(d.nodes[h].right)
		d.nodes[h].address = d.nodes[target].address
		d.nodes[h].alias = d.nodes[target].alias
	}

	c := d.nodes[target].left
	if c == none {
		c = d.nodes[target].right
	}
	parent := d.nodes[target].parent
	d.replace(target, c)
	d.release(target)
	d.count--
	d.retrace(parent)

	if d.logger.IsTrace() {
		d.logger.Trace("deleted", "alias", alias, "height", d.Height())
	}
	return nil
}
