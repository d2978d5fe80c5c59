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
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an alias is not in the directory.
	ErrNotFound = errors.New("alias not found")

	// ErrDuplicateAlias is returned when an alias is already in use.
	ErrDuplicateAlias = errors.New("duplicate alias")

	// ErrDuplicateAddress is returned when an address is already in use.
	ErrDuplicateAddress = errors.New("duplicate IP address")

	// ErrInvalidAddress is returned for text that is not a dotted IPv4 address.
	ErrInvalidAddress = errors.New("invalid IP address")

	// ErrInvalidAlias is returned for aliases that are empty, too long or
	// contain uppercase letters.
	ErrInvalidAlias = errors.New("invalid alias")

	// ErrInvalidPrefix is returned when a location prefix is not two octets.
	ErrInvalidPrefix = errors.New("invalid prefix")
)

// InvariantError describes a structural fault found by Check. It means a
// bug in this package, never bad user input.
type InvariantError struct {
	Alias  string
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated at %q: %s", e.Alias, e.Reason)
}
