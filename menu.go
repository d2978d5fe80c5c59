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
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/hashicorp/go-hclog"
	"github.com/patrickmn/go-cache"

	"github.com/cybrota/ipdir/directory"
)

// EntryMirror receives every pair added through an interactive surface.
type EntryMirror interface {
	PutEntry(ctx context.Context, address, alias string) error
}

// errInputClosed ends a menu session when stdin runs dry mid-prompt
var errInputClosed = errors.New("input closed")

// Menu is the numbered line menu. Input is read one whitespace separated
// word at a time.
type Menu struct {
	dir          *directory.Directory
	lookups      *cache.Cache
	mirror       EntryMirror
	errorLogPath string
	in           *bufio.Scanner
	out          io.Writer
	logger       hclog.Logger
}

func NewMenu(d *directory.Directory, lookups *cache.Cache, errorLogPath string, in io.Reader, out io.Writer, logger hclog.Logger) *Menu {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)
	return &Menu{
		dir:          d,
		lookups:      lookups,
		errorLogPath: errorLogPath,
		in:           scanner,
		out:          out,
		logger:       logger,
	}
}

// WithMirror mirrors successful adds to m.
func (m *Menu) WithMirror(mirror EntryMirror) *Menu {
	m.mirror = mirror
	return m
}

// Run shows the menu until Quit is chosen or input ends. Both tear the
// directory down.
func (m *Menu) Run(ctx context.Context) error {
	defer m.quit()

	for {
		fmt.Fprint(m.out, "\nMenu:\n"+
			"1) Add address\n"+
			"2) Look up address\n"+
			"3) Update address\n"+
			"4) Delete address\n"+
			"5) Display list\n"+
			"6) Display aliases for location\n"+
			"7) Display Error Log\n"+
			"8) Quit\n"+
			"Enter your choice: ")

		word, ok := m.word()
		if !ok {
			return nil
		}
		// anything that is not a number falls to the default case
		choice, _ := strconv.Atoi(word)

		var err error
		switch choice {
		case 1:
			err = m.addAddress(ctx)
		case 2:
			err = m.lookUpAddress()
		case 3:
			err = m.updateAddress()
		case 4:
			err = m.deleteAddress()
		case 5:
			m.displayList()
		case 6:
			err = m.displayAliasesForLocation()
		case 7:
			m.displayErrorLog()
		case 8:
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
		}

		if errors.Is(err, errInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *Menu) quit() {
	released := m.dir.Clear()
	m.lookups.Flush()
	m.logger.Debug("menu closed", "released", released)
	fmt.Fprintln(m.out, "Exiting program. Goodbye!")
}

func (m *Menu) word() (string, bool) {
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}

func (m *Menu) prompt(text string) (string, error) {
	fmt.Fprint(m.out, text)
	w, ok := m.word()
	if !ok {
		return "", errInputClosed
	}
	return w, nil
}

// promptAddress asks until it gets a valid address not held by any alias.
// current, if set, is accepted as is.
func (m *Menu) promptAddress(text, current string) (string, error) {
	for {
		raw, err := m.prompt(text)
		if err != nil {
			return "", err
		}
		address, err := directory.ParseAddress(raw)
		if err != nil {
			fmt.Fprintln(m.out, "Invalid IP address format. Please re-enter.")
			continue
		}
		if address != current && m.dir.IsDuplicate(address, "") {
			fmt.Fprintln(m.out, "Duplicate IP address. Please enter a unique IP.")
			continue
		}
		return address, nil
	}
}

func (m *Menu) addAddress(ctx context.Context) error {
	address, err := m.promptAddress("Enter IP address: ", "")
	if err != nil {
		return err
	}

	var alias string
	for {
		alias, err = m.prompt(fmt.Sprintf("Enter alias (max %d characters, no uppercase): ", directory.MaxAliasLength))
		if err != nil {
			return err
		}
		alias = directory.NormalizeAlias(alias)
		if directory.ValidateAlias(alias) != nil {
			fmt.Fprintf(m.out, "Invalid alias. Please ensure it's at most %d characters long.\n", directory.MaxAliasLength)
			continue
		}
		if m.dir.IsDuplicate("", alias) {
			fmt.Fprintln(m.out, "Duplicate alias. Please enter a unique alias.")
			continue
		}
		break
	}

	if err := m.dir.InsertUnique(address, alias); err != nil {
		return err
	}
	InvalidateEntry(m.lookups, alias)
	fmt.Fprintln(m.out, "Address added successfully.")

	if m.mirror != nil {
		if err := m.mirror.PutEntry(ctx, address, alias); err != nil {
			m.logger.Error("mirror failed", "alias", alias, "error", err)
			fmt.Fprintf(m.out, "%sFailed to mirror entry: %v%s\n", Warning, err, Reset)
		}
	}
	return nil
}

func (m *Menu) lookUpAddress() error {
	alias, err := m.prompt("Enter alias to look up: ")
	if err != nil {
		return err
	}
	alias = directory.NormalizeAlias(alias)

	if e, ok := lookupAlias(m.lookups, m.dir, alias); ok {
		fmt.Fprintf(m.out, "IP address for alias '%s': %s\n", alias, e.Address)
		return nil
	}
	fmt.Fprintf(m.out, "Alias '%s' not found.\n", alias)
	return nil
}

func (m *Menu) updateAddress() error {
	alias, err := m.prompt("Enter alias to update: ")
	if err != nil {
		return err
	}
	alias = directory.NormalizeAlias(alias)

	e, ok := m.dir.FindByAlias(alias)
	if !ok {
		fmt.Fprintf(m.out, "Alias '%s' not found.\n", alias)
		return nil
	}

	address, err := m.promptAddress("Enter new IP address: ", e.Address)
	if err != nil {
		return err
	}
	if err := m.dir.Update(alias, address); err != nil {
		return err
	}
	InvalidateEntry(m.lookups, alias)
	fmt.Fprintln(m.out, "IP address updated successfully.")
	return nil
}

func (m *Menu) deleteAddress() error {
	alias, err := m.prompt("Enter the alias to delete: ")
	if err != nil {
		return err
	}
	alias = directory.NormalizeAlias(alias)

	if _, ok := m.dir.FindByAlias(alias); !ok {
		fmt.Fprintf(m.out, "Alias '%s' not found.\n", alias)
		return nil
	}

	confirm, err := m.prompt(fmt.Sprintf("Are you sure you want to delete alias '%s'? (y/n): ", alias))
	if err != nil {
		return err
	}
	if confirm != "y" && confirm != "Y" {
		fmt.Fprintln(m.out, "Deletion canceled.")
		return nil
	}

	if err := m.dir.Delete(alias); err != nil {
		return err
	}
	InvalidateEntry(m.lookups, alias)
	fmt.Fprintf(m.out, "Alias '%s' deleted successfully.\n", alias)
	return nil
}

func (m *Menu) displayList() {
	if m.dir.IsEmpty() {
		fmt.Fprintln(m.out, "The directory is empty.")
		return
	}
	m.dir.Traverse(func(e directory.Entry) bool {
		fmt.Fprintln(m.out, formatEntry(e))
		return true
	})
}

func (m *Menu) displayAliasesForLocation() error {
	prefix, err := m.prompt("Enter the first two octets of an IPv4 address (e.g., '192.168'): ")
	if err != nil {
		return err
	}

	matches, err := m.dir.RangeQuery(prefix)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid prefix format. Ensure it contains only the first two octets.")
		return nil
	}

	fmt.Fprintf(m.out, "Aliases for IPs starting with '%s':\n", prefix)
	if len(matches) == 0 {
		fmt.Fprintln(m.out, "No matching aliases found.")
		return nil
	}
	for _, e := range matches {
		fmt.Fprintf(m.out, "Alias: %s, IP: %s\n", e.Alias, e.Address)
	}
	return nil
}

func (m *Menu) displayErrorLog() {
	if err := readErrorLog(m.errorLogPath, m.out); err != nil {
		fmt.Fprintln(m.out, err)
	}
}

// formatEntry is the one line listing of a node used by the menu and `list`
func formatEntry(e directory.Entry) string {
	parent := "None (Root Node)"
	if !e.IsRoot() {
		parent = e.Parent
	}
	return fmt.Sprintf("Alias: %s, IP: %s, Height: %d, Depth: %d, Balance Factor: %d, Parent: %s",
		e.Alias, e.Address, e.Height, e.Depth, e.Balance, parent)
}
