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
	"github.com/hashicorp/go-hclog"
)

// Directory holds the root of the alias tree and the arena its nodes live in.
type Directory struct {
	nodes  []node
	free   handle
	root   handle
	count  int
	logger hclog.Logger
}

// Entry is a read-only view of one node.
type Entry struct {
	Alias   string
	Address string
	Height  int    // 0 for a leaf
	Depth   int    // parent links up to the root
	Balance int    // height(left) - height(right)
	Parent  string // alias of the parent, empty for the root
}

// IsRoot reports whether the entry is the root of the tree.
func (e Entry) IsRoot() bool {
	return e.Depth == 0
}

// Option configures a Directory.
type Option func(*Directory)

// WithLogger sends rotation and edit traces to logger.
func WithLogger(logger hclog.Logger) Option {
	return func(d *Directory) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates an empty directory.
func New(opts ...Option) *Directory {
	d := &Directory{
		free:   none,
		root:   none,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Len is the number of pairs in the directory.
func (d *Directory) Len() int {
	return d.count
}

// IsEmpty is true when the directory holds no pairs.
func (d *Directory) IsEmpty() bool {
	return d.root == none
}

// Height is the stored height of the root, 0 for an empty directory.
func (d *Directory) Height() int {
	return d.height(d.root)
}

// Root returns the entry at the root of the tree.
func (d *Directory) Root() (Entry, bool) {
	if d.root == none {
		return Entry{}, false
	}
	return d.entry(d.root), true
}

func (d *Directory) entry(h handle) Entry {
	n := &d.nodes[h]
	e := Entry{
		Alias:   n.alias,
		Address: n.address,
		Height:  n.height - 1,
		Depth:   d.depth(h),
		Balance: d.balanceFactor(h),
	}
	if n.parent != none {
		e.Parent = d.nodes[n.parent].alias
	}
	return e
}

// Clear tears the tree down in post-order, returning every slot to the free
// list. It reports the number of nodes released.
func (d *Directory) Clear() int {
	released := 0
	var last handle = none
	stack := []handle{}
	h := d.root
	for h != none || len(stack) > 0 {
		if h != none {
			stack = append(stack, h)
			h = d.nodes[h].left
			continue
		}
		top := stack[len(stack)-1]
		if r := d.nodes[top].right; r != none && r != last {
			h = r
			continue
		}
		stack = stack[:len(stack)-1]
		d.release(top)
		released++
		last = top
	}
	d.root = none
	d.count = 0
	d.logger.Debug("directory cleared", "released", released)
	return released
}
