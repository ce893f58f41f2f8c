package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"rc/internal/ast"
	"rc/internal/astjson"
	"rc/internal/composition"
	"rc/internal/diag"
	"rc/internal/diagfmt"
	"rc/internal/runtime"
	"rc/internal/sema"
	"rc/internal/source"
	"rc/internal/ui"
)

var (
	checkFormat      string
	checkColor       string
	checkMaxDiag     int
	checkComposition bool
	checkScheduler   string
	checkThreads     int
	checkSeed        int64
	checkProfile     bool
	checkProfileK    int
	checkProfileOut  string
	checkUI          bool
	checkParallel    bool
)

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "pretty", "diagnostic output format (pretty|json)")
	checkCmd.Flags().StringVar(&checkColor, "color", "auto", "colorize output (auto|on|off)")
	checkCmd.Flags().IntVar(&checkMaxDiag, "max-diagnostics", 200, "maximum number of diagnostics to collect")
	checkCmd.Flags().BoolVar(&checkComposition, "composition", false, "dump the composition graph as Graphviz and exit after phase I")
	checkCmd.Flags().StringVar(&checkScheduler, "scheduler", string(runtime.SchedulerInstance), "runtime scheduler hint (instance|partitioned), recorded but not executed")
	checkCmd.Flags().IntVar(&checkThreads, "threads", 1, "runtime thread count hint, recorded but not executed")
	checkCmd.Flags().Int64Var(&checkSeed, "srand", 0, "runtime RNG seed hint, recorded but not executed")
	checkCmd.Flags().BoolVar(&checkProfile, "profile", false, "runtime profiling hint, recorded but not executed")
	checkCmd.Flags().IntVar(&checkProfileK, "profile-k", 0, "profiling sample rate hint, recorded but not executed")
	checkCmd.Flags().StringVar(&checkProfileOut, "profile-out", "", "profiling output path hint, recorded but not executed")
	checkCmd.Flags().BoolVar(&checkUI, "ui", false, "show a live progress display while the composition analyzer runs")
	checkCmd.Flags().BoolVar(&checkParallel, "parallel", false, "elaborate independent top-level instances concurrently")
}

var checkCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Run the semantic core and composition analyzer over a program",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

// runCheck drives the full pipeline: astjson loads a program in place of
// a parser, sema.Check resolves and type-checks it, and — when no errors
// stopped the checker — composition.Composer enumerates instances and
// runs the determinism/structural analysis (component I). The
// scheduler/thread/seed/profile flags only ever populate a
// runtime.RunConfig; nothing in this command reads it back, matching
// the scope boundary that the actual runtime is unimplemented.
func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	pkg, builder, strs, fs, err := astjson.LoadFile(path)
	if err != nil {
		return err
	}

	_ = runtime.RunConfig{
		Scheduler:  runtime.Scheduler(checkScheduler),
		Threads:    checkThreads,
		Seed:       checkSeed,
		Profile:    checkProfile,
		ProfileK:   checkProfileK,
		ProfileOut: checkProfileOut,
	}

	result := sema.Check(pkg, builder, strs, sema.Options{MaxDiagnostics: checkMaxDiag})
	if result.Bag.HasErrors() {
		return emitDiagnostics(cmd, result.Bag, fs)
	}

	rep := diag.BagReporter{Bag: result.Bag}
	cp := composition.New(builder, strs, result.Types, result.Symbols, result.AccessSummaries, rep)

	if err := elaborate(cp, result.TopLevelInstances); err != nil {
		return err
	}
	cp.Analyze()

	if checkComposition {
		return cp.DumpGraphviz(cmd.OutOrStdout())
	}

	if err := emitDiagnostics(cmd, result.Bag, fs); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("check found errors")
	}
	return nil
}

// elaborate runs phases 1-3 through whichever of Composer's three
// entrypoints the flags ask for: the plain sequential Elaborate, the
// errgroup-based ElaborateParallel under --parallel, or either one
// wrapped in the --ui Bubble Tea progress display.
func elaborate(cp *composition.Composer, topLevel []ast.NodeID) error {
	if !checkUI {
		if checkParallel {
			return cp.ElaborateParallel(context.Background(), topLevel)
		}
		cp.Elaborate(topLevel)
		return nil
	}

	events := make(chan composition.PhaseEvent, 8)
	cp.Progress = func(ev composition.PhaseEvent) { events <- ev }

	program := tea.NewProgram(ui.NewProgressModel("checking", events))
	runDone := make(chan struct{})
	go func() {
		_, _ = program.Run()
		close(runDone)
	}()

	var runErr error
	if checkParallel {
		runErr = cp.ElaborateParallel(context.Background(), topLevel)
	} else {
		cp.Elaborate(topLevel)
	}
	close(events)
	<-runDone
	cp.Progress = nil
	return runErr
}

func emitDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) error {
	items := bag.Items()
	diags := make([]*diag.Diagnostic, len(items))
	for i := range items {
		diags[i] = &items[i]
	}

	if strings.ToLower(checkFormat) == "json" {
		return diagfmt.JSON(cmd.OutOrStdout(), diags, fs)
	}
	diagfmt.Pretty(cmd.OutOrStdout(), diags, fs, diagfmt.Options{Color: resolveColor(checkColor)})
	return nil
}
