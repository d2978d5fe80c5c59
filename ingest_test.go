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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybrota/ipdir/directory"
)

const sampleInput = `192.168.1.10 web
10.0.0.1 "db"

192.168.1.11
300.1.1.1 broken
10.0.0.2 Mail
10.0.0.1 dbcopy
10.0.0.3 web
10.0.0.4 toolongalias
172.16.0.9 cache
`

func TestLoaderLoad(t *testing.T) {
	d := directory.New()
	var errLog bytes.Buffer

	summary, err := NewLoader(d, hclog.NewNullLogger(), WithErrorLog(&errLog)).Load(strings.NewReader(sampleInput))

	assert.Equal(t, LoadSummary{Read: 9, Inserted: 3, Rejected: 6}, summary)
	assert.Equal(t, 3, d.Len())
	require.NoError(t, d.Check())

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 6)
	assert.ErrorIs(t, merr.Errors[0], ErrInvalidLineFormat)

	wantLog := []string{
		"Invalid line format: 192.168.1.11",
		"Invalid entry: 300.1.1.1 broken",
		"Invalid entry: 10.0.0.2 Mail",
		"Duplicate entry: 10.0.0.1 dbcopy",
		"Duplicate entry: 10.0.0.3 web",
		"Invalid entry: 10.0.0.4 toolongalias",
	}
	assert.Equal(t, strings.Join(wantLog, "\n")+"\n", errLog.String())

	e, ok := d.FindByAlias("db")
	require.True(t, ok)
	assert.Equal(t, "10.0.0.1", e.Address)
}

func TestLoaderCleanInput(t *testing.T) {
	d := directory.New()
	summary, err := NewLoader(d, hclog.NewNullLogger()).Load(strings.NewReader("1.1.1.1 a\n2.2.2.2 b\n"))
	require.NoError(t, err)
	assert.Equal(t, LoadSummary{Read: 2, Inserted: 2}, summary)
}

func TestLoaderSeesExistingEntries(t *testing.T) {
	d := directory.New()
	require.NoError(t, d.Add("10.1.1.1", "old"))

	var errLog bytes.Buffer
	summary, err := NewLoader(d, hclog.NewNullLogger(), WithErrorLog(&errLog)).Load(strings.NewReader("10.1.1.1 new\n"))
	assert.Error(t, err)
	assert.Equal(t, 1, summary.Rejected)
	assert.Equal(t, "Duplicate entry: 10.1.1.1 new\n", errLog.String())
}

func TestLoaderProgress(t *testing.T) {
	d := directory.New()
	var progress bytes.Buffer

	_, err := NewLoader(d, hclog.NewNullLogger(), WithProgress(&progress, int64(len(sampleInput)))).
		Load(strings.NewReader(sampleInput))
	assert.Error(t, err)
	assert.Contains(t, progress.String(), "Loading directory")
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	cfg := withDefaults(Config{Directory: DirectoryConfig{
		InputFile: filepath.Join(dir, "input.txt"),
		ErrorLog:  filepath.Join(dir, "error.txt"),
	}})

	_, err := loadDirectory(cfg, directory.New(), hclog.NewNullLogger(), nil)
	assert.Error(t, err, "missing input file")

	require.NoError(t, os.WriteFile(cfg.Directory.InputFile, []byte(sampleInput), 0644))
	require.NoError(t, os.WriteFile(cfg.Directory.ErrorLog, []byte("stale\n"), 0644))

	d := directory.New()
	summary, err := loadDirectory(cfg, d, hclog.NewNullLogger(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Inserted)

	var out bytes.Buffer
	require.NoError(t, readErrorLog(cfg.Directory.ErrorLog, &out))
	assert.True(t, strings.HasPrefix(out.String(), "Error Log:\nInvalid line format: 192.168.1.11\n"))
	assert.NotContains(t, out.String(), "stale")
}
