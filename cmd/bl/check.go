package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bracketlint/internal/config"
	"bracketlint/internal/diagfmt"
	"bracketlint/internal/frontend/astjson"
	"bracketlint/internal/lint"
	"bracketlint/internal/lint/rules"
	"bracketlint/internal/ui"
	"bracketlint/internal/workspace"
)

var (
	checkFormat  string
	checkJobs    int
	checkNoCache bool
	checkNoUI    bool
)

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "pretty", "output format (pretty|short|json)")
	checkCmd.Flags().IntVar(&checkJobs, "jobs", 0, "parallel unit passes (0 = from bl.toml or per CPU)")
	checkCmd.Flags().BoolVar(&checkNoCache, "no-cache", false, "disable the on-disk diagnostics cache")
	checkCmd.Flags().BoolVar(&checkNoUI, "no-ui", false, "disable the progress display")
}

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Analyze units and report lint findings",
	Long: `Check discovers .bl units under the given paths (default: the current
directory), runs every enabled rule and prints the findings. The exit
status is 0 when the workspace is clean, 1 when any error-severity
finding remains, and 2 when the tool itself fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runCheck(cmd, args)
	},
}

func runCheck(cmd *cobra.Command, args []string) error {
	colorMode, _ := cmd.Flags().GetString("color")
	quiet, _ := cmd.Flags().GetBool("quiet")
	maxDiagnostics, _ := cmd.Flags().GetInt("max-diagnostics")

	switch checkFormat {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("unknown format %q (pretty|short|json)", checkFormat)
	}

	colored := resolveColor(colorMode)
	color.NoColor = !colored

	cfg, _, err := config.Discover(".")
	if err != nil {
		return err
	}
	if maxDiagnostics <= 0 {
		maxDiagnostics = cfg.Lint.MaxDiagnostics
	}
	jobs := checkJobs
	if jobs <= 0 {
		jobs = cfg.Lint.Jobs
	}

	registry := rules.DefaultRegistry()
	selection, overrides, err := cfg.Resolve(registry)
	if err != nil {
		return err
	}

	paths, err := discoverUnits(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		if !quiet {
			fmt.Fprintln(os.Stderr, "no .bl units found")
		}
		return nil
	}

	var cache *workspace.DiskCache
	if !checkNoCache {
		// A broken cache dir degrades to a cold run, not a failure.
		cache, _ = workspace.OpenDiskCache("bracketlint")
	}

	opts := workspace.Options{
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		Selection:      selection,
		Overrides:      overrides,
		Cache:          cache,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	useUI := !checkNoUI && !quiet && checkFormat != "json" && isTerminal(os.Stdout)

	var (
		ws     *workspace.Workspace
		report *workspace.Report
	)
	if useUI {
		ws, report, err = runWithProgress(ctx, registry, opts, paths)
	} else {
		ws = workspace.New(registry, astjson.FrontEnd{}, opts)
		if err = ws.SetFiles(paths); err == nil {
			report, err = ws.Run(ctx)
		}
	}
	if err != nil {
		return err
	}

	if err := renderReport(ws, report, colored, quiet); err != nil {
		return err
	}
	if !report.Passed() {
		return errLintFailed
	}
	return nil
}

type checkOutcome struct {
	report *workspace.Report
	err    error
}

// runWithProgress drives the workspace on its own goroutine while a
// Bubble Tea model renders the event stream on the terminal.
func runWithProgress(ctx context.Context, registry *lint.Registry, opts workspace.Options, paths []string) (*workspace.Workspace, *workspace.Report, error) {
	events := make(chan workspace.Event, 256)
	opts.Events = workspace.ChannelSink{Ch: events}

	ws := workspace.New(registry, astjson.FrontEnd{}, opts)
	if err := ws.SetFiles(paths); err != nil {
		return nil, nil, err
	}

	outcomeCh := make(chan checkOutcome, 1)
	go func() {
		report, err := ws.Run(ctx)
		outcomeCh <- checkOutcome{report: report, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("bl check", events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return ws, outcome.report, uiErr
	}
	return ws, outcome.report, outcome.err
}

// discoverUnits expands the argument list into sorted .bl unit paths.
// Directories are walked recursively; explicit files are taken as given.
func discoverUnits(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	seen := make(map[string]struct{})
	var units []string
	add := func(p string) {
		p = filepath.ToSlash(filepath.Clean(p))
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		units = append(units, p)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				// Skip hidden trees, e.g. .git.
				if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(d.Name(), ".bl") {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(units)
	return units, nil
}

func renderReport(ws *workspace.Workspace, report *workspace.Report, colored, quiet bool) error {
	fset := ws.FileSet()

	switch checkFormat {
	case "pretty", "short":
		opts := diagfmt.PrettyOpts{
			Color:      colored,
			PathMode:   diagfmt.PathModeAuto,
			ShowNotes:  checkFormat == "pretty",
			ShowSource: checkFormat == "pretty",
		}
		for _, u := range report.Units {
			diagfmt.Pretty(os.Stdout, u.Diagnostics, fset, opts)
		}
		diagfmt.Pretty(os.Stdout, report.Program, fset, opts)

		if !quiet {
			errs, warns, notes := report.Counts()
			fmt.Printf("%d units checked: %d errors, %d warnings, %d notes\n",
				len(report.Units), errs, warns, notes)
		}
		return nil

	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeAuto,
			IncludeNotes:     true,
		}
		output := struct {
			Units   map[string]diagfmt.DiagnosticsOutput `json:"units"`
			Program diagfmt.DiagnosticsOutput            `json:"program"`
			Passed  bool                                 `json:"passed"`
		}{
			Units:   make(map[string]diagfmt.DiagnosticsOutput, len(report.Units)),
			Program: diagfmt.BuildDiagnosticsOutput(report.Program, fset, jsonOpts),
			Passed:  report.Passed(),
		}
		for _, u := range report.Units {
			output.Units[u.Path] = diagfmt.BuildDiagnosticsOutput(u.Diagnostics, fset, jsonOpts)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(output)

	default:
		return fmt.Errorf("unknown format %q (pretty|short|json)", checkFormat)
	}
}

func resolveColor(mode string) bool {
	switch mode {
	case "on", "always":
		return true
	case "off", "never":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
