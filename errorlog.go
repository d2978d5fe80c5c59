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
	"fmt"
	"io"
	"os"
)

// ErrorLog is the text file rejected input lines are written to. Each load
// starts it afresh.
type ErrorLog struct {
	path string
	file *os.File
}

// OpenErrorLog truncates (or creates) the log at path.
func OpenErrorLog(path string) (*ErrorLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open error log %s: %w", path, err)
	}
	return &ErrorLog{path: path, file: f}, nil
}

// Write appends raw bytes so an ErrorLog can be handed to a Loader.
func (l *ErrorLog) Write(p []byte) (int, error) {
	return l.file.Write(p)
}

func (l *ErrorLog) Path() string {
	return l.path
}

func (l *ErrorLog) Close() error {
	return l.file.Close()
}

// readErrorLog copies the log at path to w under an "Error Log:" heading.
func readErrorLog(path string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening log file: %w", err)
	}
	defer f.Close()

	fmt.Fprintln(w, "Error Log:")
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("error reading log file: %w", err)
	}
	return nil
}
