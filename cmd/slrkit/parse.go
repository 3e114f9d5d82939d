package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/slrkit/lr"
	"github.com/npillmayer/slrkit/lr/scanner/lexmach"
	"github.com/npillmayer/slrkit/lr/slr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	patterns *[]string
	maxSteps *int
	noTree   *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse <grammar file path> [input]",
		Short: "Parse input and show the steps of the parser",
		Long: `Without patterns, the input is a white-space separated sequence of
terminal names. With patterns, the input is tokenized by a lexer built from
the patterns; terminals without a pattern match literally.
If no input is given on the command line, it is read from stdin.`,
		Example: `  slrkit parse expr.g id + id '*' id
  echo 'a + b*c' | slrkit parse expr.g --pattern 'id=[a-z]+'`,
		Args: cobra.MinimumNArgs(1),
		RunE: runParse,
	}
	parseFlags.patterns = cmd.Flags().StringArrayP("pattern", "p", nil, "lexer pattern for a terminal, as term=regex (repeatable)")
	parseFlags.maxSteps = cmd.Flags().Int("max-steps", slr.DefaultMaxSteps, "maximum number of parser actions")
	parseFlags.noTree = cmd.Flags().Bool("no-tree", false, "do not show the derivation tree")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	patterns, err := parsePatterns(*parseFlags.patterns)
	if err != nil {
		return err
	}
	s, err := newSession(args[0], patterns, *parseFlags.maxSteps)
	if err != nil {
		return err
	}
	input := strings.Join(args[1:], " ")
	if len(args) == 1 {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("cannot read input: %w", err)
		}
		input = string(b)
	}
	return s.run(input, !*parseFlags.noTree)
}

// parsePatterns splits arguments of the form term=regex at the first '='
// following a non-empty terminal name. A pattern for the terminal '=' is
// written as '==regex'.
func parsePatterns(args []string) (map[string]string, error) {
	if len(args) == 0 {
		return nil, nil
	}
	patterns := make(map[string]string, len(args))
	for _, arg := range args {
		i := strings.Index(arg, "=")
		if i == 0 { // terminal '='
			if i = strings.Index(arg[1:], "="); i >= 0 {
				i++
			}
		}
		if i < 0 || i == len(arg)-1 {
			return nil, fmt.Errorf("malformed pattern %q, expected term=regex", arg)
		}
		patterns[arg[:i]] = arg[i+1:]
	}
	return patterns, nil
}

// session holds a grammar together with its parse tables, for running
// any number of parses.
type session struct {
	ga       *lr.LRAnalysis
	lrgen    *lr.TableGenerator
	lexer    *lexmach.LMAdapter
	maxSteps int
}

func newSession(path string, patterns map[string]string, maxSteps int) (*session, error) {
	ga, err := readGrammar(path)
	if err != nil {
		return nil, err
	}
	s := &session{ga: ga, maxSteps: maxSteps}
	s.lrgen = lr.NewTableGenerator(ga)
	s.lrgen.CreateTables()
	if s.lrgen.HasConflicts {
		pterm.Warning.Println(fmt.Sprintf("grammar %s is not SLR(1), parses stop at conflicts",
			ga.Grammar().Name))
	}
	if len(patterns) > 0 {
		if s.lexer, err = lexmach.ForGrammar(ga.Grammar(), patterns); err != nil {
			return nil, fmt.Errorf("cannot create lexer: %w", err)
		}
	}
	return s, nil
}

func (s *session) parse(input string) (*slr.Trace, error) {
	p := slr.NewParser(s.ga.Grammar(), s.lrgen.GotoTable(), s.lrgen.ActionTable(),
		slr.MaxSteps(s.maxSteps))
	if s.lexer == nil {
		return p.Parse(strings.Fields(input))
	}
	scan, err := s.lexer.Scanner(strings.TrimSpace(input))
	if err != nil {
		return nil, fmt.Errorf("cannot create scanner: %w", err)
	}
	return p.ParseInput(scan)
}

// run parses input and displays the outcome.
func (s *session) run(input string, showTree bool) error {
	trace, err := s.parse(input)
	if trace != nil {
		renderTable(stepsData(trace))
	}
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	switch {
	case trace.Conflict != nil:
		pterm.Warning.Println(trace.Conflict.String())
	case trace.Accepted:
		pterm.Info.Println("input accepted")
		if showTree && trace.Tree != nil {
			renderTree(treeList(trace.Tree))
		}
	}
	return nil
}
