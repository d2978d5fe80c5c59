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
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/cybrota/ipdir/directory"
	"github.com/cybrota/ipdir/mirror"
)

var version = "0.1.0"

// session is what every directory command starts from
type session struct {
	cfg    *Config
	logger hclog.Logger
	dir    *directory.Directory
}

// fatal logs err and exits, for use in cobra Run functions only
func fatal(logger hclog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}

// openSession loads the config and the input file named by it or by --input
func openSession(cmd *cobra.Command) *session {
	cfg, err := LoadConfig()
	logger := newLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		logger.Warn("failed to load configuration, using defaults", "error", err)
	}
	if input, _ := cmd.Flags().GetString("input"); input != "" {
		cfg.Directory.InputFile = input
	}

	d := directory.New(directory.WithLogger(logger.Named("directory")))
	summary, err := loadDirectory(cfg, d, logger, os.Stderr)
	if err != nil {
		fatal(logger, "failed to load directory", err)
	}
	logger.Debug("loaded", "input", cfg.Directory.InputFile, "inserted", summary.Inserted, "rejected", summary.Rejected)

	return &session{cfg: cfg, logger: logger, dir: d}
}

// openMirror returns nil when mirroring is switched off
func (s *session) openMirror(ctx context.Context) *mirror.Mirror {
	if !s.cfg.Mirror.Enabled {
		return nil
	}
	m, err := mirror.New(ctx, mirror.Config{
		Region:      s.cfg.Mirror.Region,
		Endpoint:    s.cfg.Mirror.Endpoint,
		Bucket:      s.cfg.Mirror.Bucket,
		ErrorLogKey: s.cfg.Mirror.ErrorLogKey,
		Table:       s.cfg.Mirror.Table,
	}, s.logger)
	if err != nil {
		s.logger.Warn("mirroring disabled", "error", err)
		return nil
	}
	return m
}

func (s *session) runTUI(ctx context.Context) {
	model := InitialModel(s.dir, NewLookupCache(s.cfg.Cache), s.cfg.Directory.ErrorLog, s.logger)
	if m := s.openMirror(ctx); m != nil {
		model = model.WithMirror(m)
	}
	if err := runBubbleTeaApp(model); err != nil {
		fatal(s.logger, "UI failed", err)
	}
}

func main() {
	asciiLogo := `
██╗██████╗ ██████╗ ██╗██████╗
██║██╔══██╗██╔══██╗██║██╔══██╗
██║██████╔╝██║  ██║██║██████╔╝
██║██╔═══╝ ██║  ██║██║██╔══██╗
██║██║     ██████╔╝██║██║  ██║
╚═╝╚═╝     ╚═════╝ ╚═╝╚═╝  ╚═╝
IPv4 address and alias directory [Version: %s%s%s]

Copyright @ Naren Yellavula

`

	InitializeColors()
	asciiLogo = fmt.Sprintf(asciiLogo, Green, version, Reset)

	var cmdRun = &cobra.Command{
		Use:   "run",
		Short: "Launches the ipdir browser UI",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Run opens the interactive directory browser`),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			openSession(cmd).runTUI(cmd.Context())
		},
	}

	var cmdMenu = &cobra.Command{
		Use:   "menu",
		Short: "Numbered menu to add, look up, update and delete addresses",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s := openSession(cmd)
			menu := NewMenu(s.dir, NewLookupCache(s.cfg.Cache), s.cfg.Directory.ErrorLog, os.Stdin, os.Stdout, s.logger)
			if m := s.openMirror(cmd.Context()); m != nil {
				menu.WithMirror(m)
			}
			if err := menu.Run(cmd.Context()); err != nil {
				fatal(s.logger, "menu failed", err)
			}
		},
	}

	var cmdList = &cobra.Command{
		Use:   "list",
		Short: "Print every entry in alias order",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s := openSession(cmd)
			if s.dir.IsEmpty() {
				fmt.Println("The directory is empty.")
				return
			}
			s.dir.Traverse(func(e directory.Entry) bool {
				fmt.Println(formatEntry(e))
				return true
			})
		},
	}

	var cmdLookup = &cobra.Command{
		Use:   "lookup <alias>",
		Short: "Print the IP address stored for an alias",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			s := openSession(cmd)
			alias := directory.NormalizeAlias(args[0])
			e, ok := s.dir.FindByAlias(alias)
			if !ok {
				fmt.Printf("Alias '%s' not found.\n", alias)
				os.Exit(1)
			}
			fmt.Printf("IP address for alias '%s': %s\n", alias, e.Address)
		},
	}

	var cmdLocate = &cobra.Command{
		Use:   "locate <prefix>",
		Short: "Print aliases whose address starts with two octets, e.g. 192.168",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			s := openSession(cmd)
			matches, err := s.dir.RangeQuery(args[0])
			if err != nil {
				fmt.Println("Invalid prefix format. Ensure it contains only the first two octets.")
				os.Exit(1)
			}
			fmt.Printf("Aliases for IPs starting with '%s':\n", args[0])
			if len(matches) == 0 {
				fmt.Println("No matching aliases found.")
				return
			}
			for _, e := range matches {
				fmt.Printf("Alias: %s, IP: %s\n", e.Alias, e.Address)
			}
		},
	}

	var cmdTree = &cobra.Command{
		Use:   "tree",
		Short: "Draw the alias tree",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s := openSession(cmd)
			height := s.dir.Print(os.Stdout)
			fmt.Printf("\n%d entries, height %d\n", s.dir.Len(), height)
		},
	}

	var cmdCheck = &cobra.Command{
		Use:   "check",
		Short: "Verify ordering, parent links, heights and balance of the tree",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s := openSession(cmd)
			if err := s.dir.Check(); err != nil {
				fmt.Printf("%s❌ %v%s\n", Error, err, Reset)
				os.Exit(1)
			}
			fmt.Printf("%s✅ %d entries, height %d, all invariants hold%s\n", Green, s.dir.Len(), s.dir.Height(), Reset)
		},
	}

	var cmdErrors = &cobra.Command{
		Use:   "errors",
		Short: "Print the error log of the last load",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s := openSession(cmd)
			if remote, _ := cmd.Flags().GetBool("remote"); remote {
				m := s.openMirror(cmd.Context())
				if m == nil {
					fatal(s.logger, "remote error log unavailable", fmt.Errorf("mirroring is not enabled in %s", configFileName))
				}
				fmt.Println("Error log contents:")
				if err := m.FetchErrorLog(cmd.Context(), os.Stdout); err != nil {
					fatal(s.logger, "failed to fetch error log", err)
				}
				return
			}
			if err := readErrorLog(s.cfg.Directory.ErrorLog, os.Stdout); err != nil {
				fatal(s.logger, "failed to read error log", err)
			}
		},
	}
	cmdErrors.Flags().Bool("remote", false, "read the copy uploaded to S3")

	var cmdMirror = &cobra.Command{
		Use:   "mirror",
		Short: "Upload the error log to S3 and every entry to DynamoDB",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s := openSession(cmd)
			m := s.openMirror(cmd.Context())
			if m == nil {
				fatal(s.logger, "nothing to mirror to", fmt.Errorf("mirroring is not enabled in %s", configFileName))
			}

			var result *multierror.Error
			if err := m.UploadErrorLog(cmd.Context(), s.cfg.Directory.ErrorLog); err != nil {
				result = multierror.Append(result, err)
			} else {
				fmt.Printf("Error log uploaded to S3 bucket %s successfully!\n", s.cfg.Mirror.Bucket)
			}

			mirrored := 0
			s.dir.Traverse(func(e directory.Entry) bool {
				if err := m.PutEntry(cmd.Context(), e.Address, e.Alias); err != nil {
					result = multierror.Append(result, fmt.Errorf("%s: %w", e.Alias, err))
					return true
				}
				mirrored++
				return true
			})
			fmt.Printf("%d of %d entries added to DynamoDB table %s\n", mirrored, s.dir.Len(), s.cfg.Mirror.Table)

			if err := result.ErrorOrNil(); err != nil {
				fatal(s.logger, "mirroring incomplete", err)
			}
		},
	}

	var cmdDashboard = &cobra.Command{
		Use:   "dashboard",
		Short: "Show the directory table and depth chart",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s := openSession(cmd)
			if err := runDashboard(s.dir); err != nil {
				fatal(s.logger, "dashboard failed", err)
			}
		},
	}

	var cmdSettings = &cobra.Command{
		Use:   "settings",
		Short: "Show ipdir settings, creating the default file if needed",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			displaySettings(os.Stdout)
		},
	}

	var cmdUsage = &cobra.Command{
		Use:   "usage",
		Short: "Print ipdir usage guide",
		Long:  fmt.Sprintf("%s\n%s", asciiLogo, `Usage displays the ipdir CLI usage guide`),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(getHelpMessage())
		},
	}

	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print ipdir version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	var rootCmd = &cobra.Command{
		Use:     "ipdir",
		Version: version,
		Long:    asciiLogo,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			// Default to run command when no subcommand is provided
			openSession(cmd).runTUI(cmd.Context())
		},
	}
	rootCmd.PersistentFlags().String("input", "", "input file of '<address> <alias>' records (overrides the config)")
	rootCmd.AddCommand(cmdRun, cmdMenu, cmdList, cmdLookup, cmdLocate, cmdTree, cmdCheck,
		cmdErrors, cmdMirror, cmdDashboard, cmdSettings, cmdUsage, cmdVersion)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
