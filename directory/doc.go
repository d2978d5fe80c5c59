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

// Package directory keeps a bidirectional directory of IPv4 address and
// alias pairs in an AVL tree ordered by alias.
//
// Nodes live in an arena owned by the Directory and refer to each other by
// handle. Every node carries a parent handle so that depth queries and the
// rebalancing pass after an edit can walk upwards without recursion.
//
// Note: a Directory is not thread safe. Use it from a single goroutine or
// guard it with a mutex.
//
// Insert enforces both alias and address uniqueness. The address check is a
// linear scan; InsertUnique skips it for callers that already know the
// address is new.
package directory
