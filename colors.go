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
	"os"
	"strings"

	ui "github.com/gizak/termui/v3"
)

type TerminalMode int

const (
	TerminalModeUnknown TerminalMode = iota
	TerminalModeLight
	TerminalModeDark
)

// ANSI colours for plain terminal output, refreshed by InitializeColors
var (
	Green   = "\033[92m"
	Info    = "\033[96m"
	Warning = "\033[93m"
	Error   = "\033[91m"
	Reset   = "\033[0m"
)

var detectedMode TerminalMode

// background colour indexes seen at the end of COLORFGBG ("fg;bg")
var (
	darkBackgrounds  = map[string]bool{"0": true, "8": true, "16": true}
	lightBackgrounds = map[string]bool{"7": true, "15": true, "255": true}
)

// detectTerminalMode guesses the background from COLORFGBG, then from
// TERM_THEME or THEME. Dark wins when nothing is known.
func detectTerminalMode() TerminalMode {
	if fgbg := os.Getenv("COLORFGBG"); strings.Contains(fgbg, ";") {
		bg := fgbg[strings.LastIndex(fgbg, ";")+1:]
		switch {
		case darkBackgrounds[bg]:
			return TerminalModeDark
		case lightBackgrounds[bg]:
			return TerminalModeLight
		}
	}

	for _, env := range []string{"TERM_THEME", "THEME"} {
		switch theme := strings.ToLower(os.Getenv(env)); {
		case strings.Contains(theme, "dark"):
			return TerminalModeDark
		case strings.Contains(theme, "light"):
			return TerminalModeLight
		}
	}
	return TerminalModeDark
}

// InitializeColors detects the terminal mode and picks matching ANSI colours
func InitializeColors() {
	detectedMode = detectTerminalMode()
	Green, Info, Warning, Error, Reset = ansiColors(detectedMode)
}

// ansiColors returns plain colours for light backgrounds and bright ones
// for dark backgrounds
func ansiColors(mode TerminalMode) (success, info, warning, failure, reset string) {
	reset = "\033[0m"
	if mode == TerminalModeLight {
		return "\033[32m", "\033[34m", "\033[33m", "\033[31m", reset
	}
	return "\033[92m", "\033[96m", "\033[93m", "\033[91m", reset
}

// Dashboard styles

func StyleBorder(focused bool) ui.Style {
	if focused {
		if detectedMode == TerminalModeLight {
			return ui.NewStyle(ui.Color(4))
		}
		return ui.NewStyle(ui.Color(14))
	}
	return ui.NewStyle(ui.Color(240))
}

func StyleText() ui.Style {
	if detectedMode == TerminalModeLight {
		return ui.NewStyle(ui.ColorBlack)
	}
	return ui.NewStyle(ui.ColorWhite)
}

func StyleHeader() ui.Style {
	if detectedMode == TerminalModeLight {
		return ui.NewStyle(ui.ColorWhite, ui.Color(4), ui.ModifierBold)
	}
	return ui.NewStyle(ui.ColorBlack, ui.Color(6), ui.ModifierBold)
}

func StyleBar() ui.Color {
	if detectedMode == TerminalModeLight {
		return ui.Color(2)
	}
	return ui.ColorGreen
}
