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

// Update replaces the address stored under alias.
//
// newAddress is parsed and stored in canonical form; a malformed one
// returns ErrInvalidAddress. ErrNotFound is returned for an unknown alias
// and ErrDuplicateAddress when another alias holds the address. In every
// error case nothing changes. Keys and heights are not affected, but the
// path from the node to the root is still rebalanced.
func (d *Directory) Update(alias, newAddress string) error {
	newAddress, err := ParseAddress(newAddress)
	if err != nil {
		return err
	}
	h := d.search(alias)
	if h == none {
		return fmt.Errorf("%w: %q", ErrNotFound, alias)
	}
	if d.nodes[h].address == newAddress {
		return nil
	}
	if d.IsDuplicate(newAddress, "") {
		return fmt.Errorf("%w: %q", ErrDuplicateAddress, newAddress)
	}

	old := d.nodes[h].address
	d.nodes[h].address = newAddress
	d.retrace(h)

	if d.logger.IsTrace() {
		d.logger.Trace("updated", "alias", alias, "old", old, "new", newAddress)
	}
	return nil
}
