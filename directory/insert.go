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

// Insert adds a new leaf for alias and rebalances every ancestor.
//
// The address must already be in canonical form (see ParseAddress). An
// address held by another alias returns ErrDuplicateAddress and an alias
// that is already present returns ErrDuplicateAlias; either way the tree is
// left unchanged. The address check is a full scan, done before descent.
func (d *Directory) Insert(address, alias string) error {
	if d.IsDuplicate(address, "") {
		return fmt.Errorf("%w: %q", ErrDuplicateAddress, address)
	}
	return d.InsertUnique(address, alias)
}

// InsertUnique is Insert without the address scan, for callers that have
// already proven the address is new. Only the alias is checked.
func (d *Directory) InsertUnique(address, alias string) error {
	parent := none
	s := left
	for h := d.root; h != none; {
		parent = h
		switch {
		case alias < d.nodes[h].alias:
			s = left
		case alias > d.nodes[h].alias:
			s = right
		default:
			return fmt.Errorf("%w: %q", ErrDuplicateAlias, alias)
		}
		h = d.child(h, s)
	}

	n := d.alloc(address, alias)
	d.link(parent, s, n)
	d.count++
	d.retrace(parent)

	if d.logger.IsTrace() {
		d.logger.Trace("inserted", "alias", alias, "address", address, "height", d.Height())
	}
	return nil
}

// Add validates and normalizes a pair, rejects duplicates of either key
// and inserts it.
func (d *Directory) Add(address, alias string) error {
	address, err := ParseAddress(address)
	if err != nil {
		return err
	}
	alias = NormalizeAlias(alias)
	if err := ValidateAlias(alias); err != nil {
		return err
	}
	if d.IsDuplicate(address, "") {
		return fmt.Errorf("%w: %q", ErrDuplicateAddress, address)
	}
	if d.IsDuplicate("", alias) {
		return fmt.Errorf("%w: %q", ErrDuplicateAlias, alias)
	}
	return d.InsertUnique(address, alias)
}
