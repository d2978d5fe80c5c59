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
	"strconv"
	"strings"
)

// MaxAliasLength is the longest alias the directory accepts.
const MaxAliasLength = 10

// ParseAddress checks that s is four dot-separated decimal octets in
// [0, 255] with nothing trailing, and returns its canonical form
// (leading zeros dropped).
func ParseAddress(s string) (string, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}

	octets := make([]string, 0, 4)
	for _, part := range parts {
		if part == "" || len(part) > 3 {
			return "", fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
		for _, c := range part {
			if c < '0' || c > '9' {
				return "", fmt.Errorf("%w: %q", ErrInvalidAddress, s)
			}
		}
		n, err := strconv.Atoi(part)
		if err != nil || n > 255 {
			return "", fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
		octets = append(octets, strconv.Itoa(n))
	}
	return strings.Join(octets, "."), nil
}

// ValidateAddress reports whether s is a dotted IPv4 address.
func ValidateAddress(s string) error {
	_, err := ParseAddress(s)
	return err
}

// ValidateAlias rejects empty aliases, aliases longer than MaxAliasLength
// and aliases holding uppercase letters.
func ValidateAlias(s string) error {
	if s == "" {
		return fmt.Errorf("%w: empty", ErrInvalidAlias)
	}
	if len(s) > MaxAliasLength {
		return fmt.Errorf("%w: %q is longer than %d characters", ErrInvalidAlias, s, MaxAliasLength)
	}
	for _, c := range s {
		if c >= 'A' && c <= 'Z' {
			return fmt.Errorf("%w: %q contains uppercase letters", ErrInvalidAlias, s)
		}
	}
	return nil
}

// NormalizeAlias lowercases an alias before it reaches the tree.
func NormalizeAlias(s string) string {
	return strings.ToLower(s)
}

// ParsePrefix checks a two octet location prefix such as "192.168" and
// returns it in canonical form.
func ParsePrefix(s string) (string, error) {
	if strings.Count(s, ".") != 1 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPrefix, s)
	}
	full, err := ParseAddress(s + ".0.0")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidPrefix, s)
	}
	return strings.TrimSuffix(full, ".0.0"), nil
}

// ValidatePrefix reports whether s is a two octet location prefix.
func ValidatePrefix(s string) error {
	_, err := ParsePrefix(s)
	return err
}
