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


package main

import (
	"github.com/patrickmn/go-cache"

	"github.com/cybrota/ipdir/directory"
)

// NewLookupCache creates the alias lookup cache sized from config
func NewLookupCache(cfg CacheConfig) *cache.Cache {
	return cache.New(cfg.LookupExpiration, cfg.CleanupInterval)
}

func CacheEntry(c *cache.Cache, e directory.Entry) {
	// Set instead of Add so a re-lookup refreshes the expiry
	c.SetDefault(e.Alias, e)
}

func GetCachedEntry(c *cache.Cache, alias string) (directory.Entry, bool) {
	val, ok := c.Get(alias)
	if !ok {
		return directory.Entry{}, false
	}
	return val.(directory.Entry), true
}

func InvalidateEntry(c *cache.Cache, alias string) {
	c.Delete(alias)
}

// lookupAlias serves alias from c when present and falls back to the tree
func lookupAlias(c *cache.Cache, d *directory.Directory, alias string) (directory.Entry, bool) {
	if e, ok := GetCachedEntry(c, alias); ok {
		return e, true
	}
	e, ok := d.FindByAlias(alias)
	if ok {
		CacheEntry(c, e)
	}
	return e, ok
}
