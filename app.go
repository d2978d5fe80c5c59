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
	"strconv"

	"github.com/atotto/clipboard"
	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	tb "github.com/nsf/termbox-go"

	"github.com/cybrota/ipdir/directory"
)

// DisableMouseInput in termbox-go. This should be called after ui.Init()
func DisableMouseInput() {
	tb.SetInputMode(tb.InputEsc)
}

// depthHistogram counts nodes per depth, index 0 being the root
func depthHistogram(d *directory.Directory) []float64 {
	counts := []float64{}
	d.Traverse(func(e directory.Entry) bool {
		for len(counts) <= e.Depth {
			counts = append(counts, 0)
		}
		counts[e.Depth]++
		return true
	})
	return counts
}

func depthLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = "d" + strconv.Itoa(i)
	}
	return labels
}

// tableRows is the in-order listing with a header row
func tableRows(d *directory.Directory) [][]string {
	rows := [][]string{{"Alias", "IP", "Height", "Depth", "Balance", "Parent"}}
	d.Traverse(func(e directory.Entry) bool {
		parent := e.Parent
		if e.IsRoot() {
			parent = "(root)"
		}
		rows = append(rows, []string{
			e.Alias,
			e.Address,
			strconv.Itoa(e.Height),
			strconv.Itoa(e.Depth),
			fmt.Sprintf("%+d", e.Balance),
			parent,
		})
		return true
	})
	return rows
}

func statsText(d *directory.Directory) string {
	root := "-"
	if e, ok := d.Root(); ok {
		root = e.Alias
	}
	health := "[ok](fg:green)"
	if err := d.Check(); err != nil {
		health = fmt.Sprintf("[%v](fg:red)", err)
	}
	return fmt.Sprintf("Entries: %d\nHeight: %d\nRoot: %s\nInvariants: %s", d.Len(), d.Height(), root, health)
}

// visibleRows keeps the header and shows body rows from offset on
func visibleRows(rows [][]string, offset int) [][]string {
	if offset <= 0 || len(rows) <= 1 {
		return rows
	}
	if offset > len(rows)-2 {
		offset = len(rows) - 2
	}
	return append([][]string{rows[0]}, rows[1+offset:]...)
}

// computeHeaderRatio reserves at least six lines and at most a third of the
// screen for the stats row
func computeHeaderRatio(termHeight int) float64 {
	if termHeight <= 0 {
		return 0.2
	}
	ratio := 6.0 / float64(termHeight)
	if ratio < 0.2 {
		ratio = 0.2
	}
	if ratio > 0.33 {
		ratio = 0.33
	}
	return ratio
}

// runDashboard draws the directory table, a depth histogram and summary
// stats until the user quits
func runDashboard(d *directory.Directory) error {
	if err := ui.Init(); err != nil {
		return fmt.Errorf("failed to initialize termui: %w", err)
	}
	DisableMouseInput()
	defer ui.Close()
	InitializeColors()

	statsPara := widgets.NewParagraph()
	statsPara.Title = " Directory "
	statsPara.Text = statsText(d)
	statsPara.TextStyle = StyleText()
	statsPara.BorderStyle = StyleBorder(false)

	keyboardPara := widgets.NewParagraph()
	keyboardPara.Title = " Keyboard Shortcuts "
	keyboardPara.Text = `[<up>/<down>](fg:green) -> Scroll the directory
[<ctrl> + y](fg:green) -> Copy the top IP address
[q](fg:green), [<esc>](fg:green) or [<ctrl> + c](fg:green) -> Quit`
	keyboardPara.BorderStyle = StyleBorder(false)

	depthChart := widgets.NewBarChart()
	depthChart.Title = " Nodes per depth "
	depthChart.Data = depthHistogram(d)
	depthChart.Labels = depthLabels(len(depthChart.Data))
	depthChart.BarWidth = 4
	depthChart.BarColors = []ui.Color{StyleBar()}
	depthChart.NumStyles = []ui.Style{ui.NewStyle(ui.ColorBlack)}
	depthChart.BorderStyle = StyleBorder(false)

	rows := tableRows(d)
	offset := 0
	entriesTable := widgets.NewTable()
	entriesTable.Title = " In-order traversal "
	entriesTable.Rows = rows
	entriesTable.TextStyle = StyleText()
	entriesTable.RowStyles[0] = StyleHeader()
	entriesTable.FillRow = true
	entriesTable.BorderStyle = StyleBorder(true)

	grid := ui.NewGrid()
	layout := func(width, height int) {
		headerRatio := computeHeaderRatio(height)
		grid.SetRect(0, 0, width, height)
		grid.Set(
			ui.NewRow(headerRatio,
				ui.NewCol(0.4, statsPara),
				ui.NewCol(0.6, keyboardPara),
			),
			ui.NewRow(1-headerRatio,
				ui.NewCol(0.65, entriesTable),
				ui.NewCol(0.35, depthChart),
			),
		)
	}
	layout(ui.TerminalDimensions())
	ui.Render(grid)

	uiEvents := ui.PollEvents()
	for {
		e := <-uiEvents
		switch e.ID {
		case "q", "<C-c>", "<Escape>":
			return nil
		case "<Down>", "j":
			if offset < len(rows)-2 {
				offset++
			}
		case "<Up>", "k":
			if offset > 0 {
				offset--
			}
		case "<C-y>":
			if len(rows) > 1 {
				address := rows[1+offset][1]
				if err := clipboard.WriteAll(address); err != nil {
					statsPara.Text = statsText(d) + fmt.Sprintf("\n[copy failed: %v](fg:red)", err)
				} else {
					statsPara.Text = statsText(d) + fmt.Sprintf("\nCopied [%s](fg:green)", address)
				}
			}
		case "<Resize>":
			if payload, ok := e.Payload.(ui.Resize); ok {
				layout(payload.Width, payload.Height)
			} else {
				layout(ui.TerminalDimensions())
			}
			ui.Clear()
		}

		entriesTable.Rows = visibleRows(rows, offset)
		ui.Render(grid)
	}
}
