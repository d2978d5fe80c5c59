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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/mattn/go-shellwords"
	"github.com/schollz/progressbar/v3"
	"github.com/willf/bloom"

	"github.com/cybrota/ipdir/directory"
)

var (
	ErrInvalidLineFormat = errors.New("invalid line format")
	ErrInvalidEntry      = errors.New("invalid entry")
	ErrDuplicateEntry    = errors.New("duplicate entry")
)

const (
	bloomMinEntries   = 1024
	bloomFalsePositive = 0.01
	// rough bytes per "<address> <alias>\n" record, used to size the filter
	bytesPerRecord = 20
)

// LoadSummary counts what a Load did with its input.
type LoadSummary struct {
	Read     int
	Inserted int
	Rejected int
}

// Loader fills a directory from "<address> <alias>" records.
type Loader struct {
	dir      *directory.Directory
	logger   hclog.Logger
	errLog   io.Writer
	progress io.Writer
	size     int64
}

type LoaderOption func(*Loader)

// WithErrorLog makes the loader write one line per rejected record to w.
func WithErrorLog(w io.Writer) LoaderOption {
	return func(l *Loader) {
		l.errLog = w
	}
}

// WithProgress draws a progress bar on w for an input of size bytes.
func WithProgress(w io.Writer, size int64) LoaderOption {
	return func(l *Loader) {
		l.progress = w
		l.size = size
	}
}

func NewLoader(d *directory.Directory, logger hclog.Logger, opts ...LoaderOption) *Loader {
	l := &Loader{
		dir:    d,
		logger: logger.Named("ingest"),
		errLog: io.Discard,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads records from r until EOF. Rejected records never stop the
// load; they are written to the error log and returned together as a
// multierror. Only a read failure aborts.
func (l *Loader) Load(r io.Reader) (LoadSummary, error) {
	var summary LoadSummary
	var result *multierror.Error

	if l.progress != nil && l.size > 0 {
		bar := progressbar.NewOptions64(l.size,
			progressbar.OptionSetWriter(l.progress),
			progressbar.OptionSetDescription("Loading directory..."),
			progressbar.OptionSetWidth(50),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
		defer bar.Finish()
		r = io.TeeReader(r, bar)
	}

	seen := l.newAddressFilter()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		summary.Read++

		if err := l.loadRecord(line, seen); err != nil {
			summary.Rejected++
			fmt.Fprintf(l.errLog, "%s: %s\n", rejectionLabel(err), line)
			l.logger.Debug("record rejected", "line", lineNo, "error", err)
			result = multierror.Append(result, fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}
		summary.Inserted++
	}
	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("failed to read input: %w", err)
	}

	l.logger.Info("directory loaded", "read", summary.Read, "inserted", summary.Inserted, "rejected", summary.Rejected)
	return summary, result.ErrorOrNil()
}

func (l *Loader) loadRecord(line string, seen *bloom.BloomFilter) error {
	fields, err := shellwords.Parse(line)
	if err != nil || len(fields) < 2 {
		return ErrInvalidLineFormat
	}

	address, err := directory.ParseAddress(fields[0])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	alias := fields[1]
	if err := directory.ValidateAlias(alias); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	// the filter has no false negatives, so a miss skips the full scan
	insert := l.dir.InsertUnique
	if seen.TestString(address) {
		insert = l.dir.Insert
	}
	if err := insert(address, alias); err != nil {
		return fmt.Errorf("%w: %v", ErrDuplicateEntry, err)
	}
	seen.AddString(address)
	return nil
}

// newAddressFilter sizes a bloom filter for the input and seeds it with the
// addresses already in the directory.
func (l *Loader) newAddressFilter() *bloom.BloomFilter {
	n := uint(l.dir.Len())
	if l.size > 0 {
		n += uint(l.size / bytesPerRecord)
	}
	if n < bloomMinEntries {
		n = bloomMinEntries
	}
	filter := bloom.NewWithEstimates(n, bloomFalsePositive)
	l.dir.Traverse(func(e directory.Entry) bool {
		filter.AddString(e.Address)
		return true
	})
	return filter
}

func rejectionLabel(err error) string {
	switch {
	case errors.Is(err, ErrInvalidLineFormat):
		return "Invalid line format"
	case errors.Is(err, ErrDuplicateEntry):
		return "Duplicate entry"
	default:
		return "Invalid entry"
	}
}

// loadDirectory reads the configured input file into d, starting a fresh
// error log. A missing input file is an error; rejected records are not.
func loadDirectory(cfg *Config, d *directory.Directory, logger hclog.Logger, progress io.Writer) (LoadSummary, error) {
	in, err := os.Open(cfg.Directory.InputFile)
	if err != nil {
		return LoadSummary{}, fmt.Errorf("error opening input file: %w", err)
	}
	defer in.Close()

	errLog, err := OpenErrorLog(cfg.Directory.ErrorLog)
	if err != nil {
		return LoadSummary{}, err
	}
	defer errLog.Close()

	opts := []LoaderOption{WithErrorLog(errLog)}
	if progress != nil {
		if info, err := in.Stat(); err == nil {
			opts = append(opts, WithProgress(progress, info.Size()))
		}
	}

	summary, err := NewLoader(d, logger, opts...).Load(in)
	var merr *multierror.Error
	if errors.As(err, &merr) {
		logger.Warn("input records rejected", "count", len(merr.Errors), "error_log", errLog.Path())
		return summary, nil
	}
	return summary, err
}
