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
)

func TestDetectTerminalMode(t *testing.T) {
	tests := []struct {
		colorfgbg string
		theme     string
		want      TerminalMode
	}{
		{"15;0", "", TerminalModeDark},
		{"0;15", "", TerminalModeLight},
		{"0;default;7", "", TerminalModeLight},
		{"", "Solarized Light", TerminalModeLight},
		{"", "dracula-dark", TerminalModeDark},
		{"", "", TerminalModeDark},
	}

	for _, tt := range tests {
		t.Setenv("COLORFGBG", tt.colorfgbg)
		t.Setenv("TERM_THEME", tt.theme)
		t.Setenv("THEME", "")
		assert.Equal(t, tt.want, detectTerminalMode(), "%q %q", tt.colorfgbg, tt.theme)
	}
}

func TestANSIColors(t *testing.T) {
	success, _, _, _, reset := ansiColors(TerminalModeLight)
	assert.Equal(t, "\033[32m", success)
	assert.Equal(t, "\033[0m", reset)

	success, _, _, _, _ = ansiColors(TerminalModeDark)
	assert.Equal(t, "\033[92m", success)
}
