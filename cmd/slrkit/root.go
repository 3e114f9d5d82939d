package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/slrkit/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	trace *string
}{}

var rootCmd = &cobra.Command{
	Use:   "slrkit",
	Short: "Analyze SLR(1) grammars and trace parses",
	Long: `slrkit provides the following features:
- Computes FIRST and FOLLOW sets of a grammar.
- Constructs the LR(0) automaton and the SLR(1) ACTION/GOTO tables,
  reporting conflicts.
- Runs the table-driven parser on input, showing every step.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initDisplay()
		initTracing(*rootFlags.trace)
	},
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().StringP("trace", "t", "Error", "trace level [Debug|Info|Error]")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	return nil
}

func initTracing(level string) {
	gtrace.SyntaxTracer = gologadapter.New()
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	l := tracing.TraceLevelFromString(level)
	tracing.Select("slrkit.lr").SetTraceLevel(l)
	tracing.Select("slrkit.scanner").SetTraceLevel(l)
}

// readGrammar reads and analyzes a grammar file.
func readGrammar(path string) (*lr.LRAnalysis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open grammar file: %w", err)
	}
	defer f.Close()
	name := filepath.Base(path)
	g, err := lr.ReadGrammar(name, f)
	if err != nil {
		return nil, fmt.Errorf("cannot read grammar %s: %w", name, err)
	}
	tracer().Infof("grammar %s has %d rules", name, g.Size())
	g.Dump()
	return lr.Analysis(g), nil
}
