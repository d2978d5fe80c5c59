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

// walk visits nodes in alias order until fn returns false
func (d *Directory) walk(fn func(handle) bool) {
	stack := []handle{}
	h := d.root
	for h != none || len(stack) > 0 {
		for h != none {
			stack = append(stack, h)
			h = d.nodes[h].left
		}
		h = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(h) {
			return
		}
		h = d.nodes[h].right
	}
}

// Traverse calls fn for every entry in alias order. Returning false stops
// the walk.
func (d *Directory) Traverse(fn func(Entry) bool) {
	d.walk(func(h handle) bool {
		return fn(d.entry(h))
	})
}

// Entries returns every entry in alias order.
func (d *Directory) Entries() []Entry {
	entries := make([]Entry, 0, d.count)
	d.Traverse(func(e Entry) bool {
		entries = append(entries, e)
		return true
	})
	return entries
}

// RangeQuery returns, in alias order, the entries whose address starts with
// the two octet prefix, e.g. "192.168". The tree is keyed by alias, so this
// is a scan of every node.
func (d *Directory) RangeQuery(prefix string) ([]Entry, error) {
	prefix, err := ParsePrefix(prefix)
	if err != nil {
		return nil, err
	}
	prefix += "."

	var matches []Entry
	d.walk(func(h handle) bool {
		if strings.HasPrefix(d.nodes[h].address, prefix) {
			matches = append(matches, d.entry(h))
		}
		return true
	})
	return matches, nil
}
