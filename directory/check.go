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

// Check verifies the parent links, the stored heights, the AVL balance and
// the alias ordering of every node, and that the node count matches Len.
func (d *Directory) Check() error {
	if d.root != none && d.nodes[d.root].parent != none {
		return &InvariantError{Alias: d.nodes[d.root].alias, Reason: "root has a parent"}
	}
	count, err := d.check(d.root, none, nil, nil)
	if err != nil {
		return err
	}
	if count != d.count {
		return &InvariantError{Reason: fmt.Sprintf("counted %d nodes, expected %d", count, d.count)}
	}
	return nil
}

// internal: consistency checker, lo and hi bound the aliases allowed below h
func (d *Directory) check(h, up handle, lo, hi *string) (int, error) {
	if h == none {
		return 0, nil
	}
	n := &d.nodes[h]
	if n.parent != up {
		return 0, &InvariantError{Alias: n.alias, Reason: "parent link does not match owner"}
	}
	if lo != nil && n.alias <= *lo {
		return 0, &InvariantError{Alias: n.alias, Reason: fmt.Sprintf("not greater than %q", *lo)}
	}
	if hi != nil && n.alias >= *hi {
		return 0, &InvariantError{Alias: n.alias, Reason: fmt.Sprintf("not less than %q", *hi)}
	}

	lc, err := d.check(n.left, h, lo, &n.alias)
	if err != nil {
		return 0, err
	}
	rc, err := d.check(n.right, h, &n.alias, hi)
	if err != nil {
		return 0, err
	}

	if want := max(d.height(n.left), d.height(n.right)) + 1; n.height != want {
		return 0, &InvariantError{Alias: n.alias, Reason: fmt.Sprintf("height %d, expected %d", n.height, want)}
	}
	if bf := d.balanceFactor(h); bf < -1 || bf > 1 {
		return 0, &InvariantError{Alias: n.alias, Reason: fmt.Sprintf("balance factor %d", bf)}
	}
	return lc + rc + 1, nil
}
