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
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybrota/ipdir/directory"
)

func TestCacheEntryAndGetCachedEntry(t *testing.T) {
	c := NewLookupCache(defaultConfig.Cache)
	entry := directory.Entry{Alias: "web", Address: "10.0.0.1"}

	// Initially the alias is missing
	_, ok := GetCachedEntry(c, "web")
	assert.False(t, ok)

	CacheEntry(c, entry)

	got, ok := GetCachedEntry(c, "web")
	require.True(t, ok)
	assert.Equal(t, entry, got)

	InvalidateEntry(c, "web")
	_, ok = GetCachedEntry(c, "web")
	assert.False(t, ok)
}

func TestCacheExpiration(t *testing.T) {
	// Very short expiration to test expiry behaviour
	c := cache.New(100*time.Millisecond, 50*time.Millisecond)
	CacheEntry(c, directory.Entry{Alias: "db", Address: "10.0.0.2"})

	_, ok := GetCachedEntry(c, "db")
	require.True(t, ok)

	time.Sleep(150 * time.Millisecond)

	_, ok = GetCachedEntry(c, "db")
	assert.False(t, ok, "entry should have expired")
}

func TestLookupAliasFillsCache(t *testing.T) {
	c := NewLookupCache(defaultConfig.Cache)
	d := directory.New()
	require.NoError(t, d.Add("10.0.0.3", "mail"))

	e, ok := lookupAlias(c, d, "mail")
	require.True(t, ok)
	assert.Equal(t, "10.0.0.3", e.Address)

	cached, ok := GetCachedEntry(c, "mail")
	require.True(t, ok)
	assert.Equal(t, e, cached)

	_, ok = lookupAlias(c, d, "nobody")
	assert.False(t, ok)
	assert.Equal(t, 1, c.ItemCount())
}
