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
	"strings"
)

// search is the binary search on alias
func (d *Directory) search(alias string) handle {
	h := d.root
	for h != none {
		switch {
		case alias < d.nodes[h].alias:
			h = d.nodes[h].left
		case alias > d.nodes[h].alias:
			h = d.nodes[h].right
		default:
			return h
		}
	}
	return none
}

// FindByAlias looks an alias up in O(log n).
func (d *Directory) FindByAlias(alias string) (Entry, bool) {
	h := d.search(alias)
	if h == none {
		return Entry{}, false
	}
	return d.entry(h), true
}

// FindByAddress walks the whole tree, which is ordered by alias and not by
// address, looking for address.
func (d *Directory) FindByAddress(address string) (Entry, bool) {
	h := d.scan(func(n *node) bool {
		return n.address == address
	})
	if h == none {
		return Entry{}, false
	}
	return d.entry(h), true
}

// IsDuplicate reports whether any node holds address or alias. An empty
// argument is not checked. Aliases compare without regard to case.
func (d *Directory) IsDuplicate(address, alias string) bool {
	if address == "" && alias == "" {
		return false
	}
	return d.scan(func(n *node) bool {
		if address != "" && n.address == address {
			return true
		}
		return alias != "" && strings.EqualFold(n.alias, alias)
	}) != none
}

// scan returns the first node, in pre-order, that match accepts
func (d *Directory) scan(match func(*node) bool) handle {
	if d.root == none {
		return none
	}
	stack := []handle{d.root}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if match(&d.nodes[h]) {
			return h
		}
		if r := d.nodes[h].right; r != none {
			stack = append(stack, r)
		}
		if l := d.nodes[h].left; l != none {
			stack = append(stack, l)
		}
	}
	return none
}
