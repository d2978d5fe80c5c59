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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybrota/ipdir/directory"
)

func buildDirectory(t *testing.T, aliases ...string) *directory.Directory {
	t.Helper()
	d := directory.New()
	for i, alias := range aliases {
		require.NoError(t, d.Insert("10.0.0."+string(rune('1'+i)), alias))
	}
	return d
}

func TestDepthHistogram(t *testing.T) {
	assert.Empty(t, depthHistogram(directory.New()))

	d := buildDirectory(t, "a", "b", "c", "d", "e", "f", "g")
	assert.Equal(t, []float64{1, 2, 4}, depthHistogram(d))
	assert.Equal(t, []string{"d0", "d1", "d2"}, depthLabels(3))
}

func TestTableRows(t *testing.T) {
	d := buildDirectory(t, "a", "b", "c")
	rows := tableRows(d)

	require.Len(t, rows, 4)
	assert.Equal(t, "Alias", rows[0][0])
	assert.Equal(t, []string{"a", "10.0.0.1", "0", "1", "+0", "b"}, rows[1])
	assert.Equal(t, []string{"b", "10.0.0.2", "1", "0", "+0", "(root)"}, rows[2])
}

func TestVisibleRows(t *testing.T) {
	rows := [][]string{{"h"}, {"1"}, {"2"}, {"3"}}
	assert.Equal(t, rows, visibleRows(rows, 0))
	assert.Equal(t, [][]string{{"h"}, {"2"}, {"3"}}, visibleRows(rows, 1))
	assert.Equal(t, [][]string{{"h"}, {"3"}}, visibleRows(rows, 9))
}

func TestStatsText(t *testing.T) {
	assert.Contains(t, statsText(directory.New()), "Root: -")

	d := buildDirectory(t, "a", "b", "c")
	text := statsText(d)
	assert.Contains(t, text, "Entries: 3")
	assert.Contains(t, text, "Height: 2")
	assert.Contains(t, text, "Root: b")
	assert.Contains(t, text, "[ok](fg:green)")
}

func TestComputeHeaderRatio(t *testing.T) {
	assert.Equal(t, 0.2, computeHeaderRatio(0))
	assert.Equal(t, 0.2, computeHeaderRatio(100))
	assert.Equal(t, 0.33, computeHeaderRatio(10))
}
