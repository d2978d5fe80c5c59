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
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybrota/ipdir/directory"
)

type recordingMirror struct {
	entries [][2]string
	err     error
}

func (r *recordingMirror) PutEntry(ctx context.Context, address, alias string) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, [2]string{address, alias})
	return nil
}

func newTestMenu(t *testing.T, input string) (*Menu, *directory.Directory, *bytes.Buffer) {
	t.Helper()
	d := directory.New()
	require.NoError(t, d.Add("192.168.1.10", "alpha"))
	require.NoError(t, d.Add("192.168.2.20", "beta"))
	require.NoError(t, d.Add("10.0.0.1", "gamma"))

	var out bytes.Buffer
	logPath := filepath.Join(t.TempDir(), "error-log.txt")
	m := NewMenu(d, NewLookupCache(defaultConfig.Cache), logPath, strings.NewReader(input), &out, hclog.NewNullLogger())
	return m, d, &out
}

func TestMenuAddAddress(t *testing.T) {
	m, d, out := newTestMenu(t, "1 300.1.1.1 192.168.1.10 10.9.9.9 waytoolongalias beta Delta 2 delta 8")
	mirror := &recordingMirror{}
	m.WithMirror(mirror)

	require.NoError(t, m.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Invalid IP address format. Please re-enter.")
	assert.Contains(t, got, "Duplicate IP address. Please enter a unique IP.")
	assert.Contains(t, got, "Invalid alias. Please ensure it's at most 10 characters long.")
	assert.Contains(t, got, "Duplicate alias. Please enter a unique alias.")
	assert.Contains(t, got, "Address added successfully.")
	assert.Contains(t, got, "IP address for alias 'delta': 10.9.9.9")
	assert.True(t, strings.HasSuffix(got, "Exiting program. Goodbye!\n"))

	assert.Equal(t, [][2]string{{"10.9.9.9", "delta"}}, mirror.entries)
	assert.True(t, d.IsEmpty(), "quit tears the directory down")
}

func TestMenuAddSurvivesMirrorFailure(t *testing.T) {
	m, _, out := newTestMenu(t, "1 10.9.9.9 delta 8")
	m.WithMirror(&recordingMirror{err: errors.New("offline")})

	require.NoError(t, m.Run(context.Background()))
	assert.Contains(t, out.String(), "Address added successfully.")
	assert.Contains(t, out.String(), "Failed to mirror entry: offline")
}

func TestMenuUpdateInvalidatesLookupCache(t *testing.T) {
	m, _, out := newTestMenu(t, "2 alpha 3 alpha 10.0.0.1 192.168.1.99 2 alpha 3 nobody 8")

	require.NoError(t, m.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "IP address for alias 'alpha': 192.168.1.10")
	assert.Contains(t, got, "Duplicate IP address. Please enter a unique IP.")
	assert.Contains(t, got, "IP address updated successfully.")
	assert.Contains(t, got, "IP address for alias 'alpha': 192.168.1.99")
	assert.Contains(t, got, "Alias 'nobody' not found.")
}

func TestMenuUpdateKeepsSameAddress(t *testing.T) {
	m, _, out := newTestMenu(t, "3 beta 192.168.2.20 8")

	require.NoError(t, m.Run(context.Background()))
	assert.NotContains(t, out.String(), "Duplicate IP address")
	assert.Contains(t, out.String(), "IP address updated successfully.")
}

func TestMenuDeleteAddress(t *testing.T) {
	m, _, out := newTestMenu(t, "2 beta 4 nobody 4 beta n 4 beta y 2 beta 5")

	require.NoError(t, m.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Alias 'nobody' not found.")
	assert.Contains(t, got, "Deletion canceled.")
	assert.Contains(t, got, "Alias 'beta' deleted successfully.")
	assert.Contains(t, got, "Alias 'beta' not found.")

	list := got[strings.LastIndex(got, "Alias 'beta' not found."):]
	assert.Contains(t, list, "Alias: alpha, IP: 192.168.1.10")
	assert.NotContains(t, list, "Alias: beta")
}

func TestMenuDisplayList(t *testing.T) {
	m, _, out := newTestMenu(t, "5 8")

	require.NoError(t, m.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Alias: alpha, IP: 192.168.1.10, Height: 0, Depth: 1, Balance Factor: 0, Parent: beta")
	assert.Contains(t, got, "Alias: beta, IP: 192.168.2.20, Height: 1, Depth: 0, Balance Factor: 0, Parent: None (Root Node)")
	assert.Contains(t, got, "Alias: gamma, IP: 10.0.0.1, Height: 0, Depth: 1, Balance Factor: 0, Parent: beta")
	assert.Less(t, strings.Index(got, "Alias: alpha"), strings.Index(got, "Alias: gamma"))
}

func TestMenuDisplayAliasesForLocation(t *testing.T) {
	m, _, out := newTestMenu(t, "6 192.168 6 192 6 172.16 8")

	require.NoError(t, m.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Aliases for IPs starting with '192.168':\nAlias: alpha, IP: 192.168.1.10\nAlias: beta, IP: 192.168.2.20\n")
	assert.Contains(t, got, "Invalid prefix format. Ensure it contains only the first two octets.")
	assert.Contains(t, got, "Aliases for IPs starting with '172.16':\nNo matching aliases found.")
}

func TestMenuDisplayErrorLog(t *testing.T) {
	m, _, out := newTestMenu(t, "7 8")
	require.NoError(t, os.WriteFile(m.errorLogPath, []byte("Invalid entry: 1.2.3 x\n"), 0644))

	require.NoError(t, m.Run(context.Background()))
	assert.Contains(t, out.String(), "Error Log:\nInvalid entry: 1.2.3 x\n")
}

func TestMenuInvalidChoiceAndEOF(t *testing.T) {
	m, d, out := newTestMenu(t, "x 9 1 10.0.0.5")

	require.NoError(t, m.Run(context.Background()))

	got := out.String()
	assert.Equal(t, 2, strings.Count(got, "Invalid choice. Please try again."))
	assert.Contains(t, got, "Enter alias (max 10 characters, no uppercase): ")
	assert.True(t, strings.HasSuffix(got, "Exiting program. Goodbye!\n"))
	assert.True(t, d.IsEmpty())
}
