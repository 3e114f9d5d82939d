package main

import (
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/slrkit/lr/slr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var replFlags = struct {
	patterns *[]string
	maxSteps *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "repl <grammar file path>",
		Short: "Parse input lines interactively",
		Long: `repl reads input lines and parses each of them, showing the steps of
the parser. Lines starting with ':' are commands:
  :first    show FIRST and FOLLOW sets
  :states   show the LR(0) item sets
  :table    show the parse tables
  :quit     leave (as does <ctrl>D)`,
		Example: `  slrkit repl expr.g --pattern 'id=[a-z]+'`,
		Args:    cobra.ExactArgs(1),
		RunE:    runREPL,
	}
	replFlags.patterns = cmd.Flags().StringArrayP("pattern", "p", nil, "lexer pattern for a terminal, as term=regex (repeatable)")
	replFlags.maxSteps = cmd.Flags().Int("max-steps", slr.DefaultMaxSteps, "maximum number of parser actions")
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	patterns, err := parsePatterns(*replFlags.patterns)
	if err != nil {
		return err
	}
	s, err := newSession(args[0], patterns, *replFlags.maxSteps)
	if err != nil {
		return err
	}
	repl, err := readline.New("slrkit> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	pterm.Info.Println("Welcome to slrkit, quit with <ctrl>D")
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := s.eval(line); quit {
			break
		}
	}
	println("Good bye!")
	return nil
}

// eval executes a REPL command or parses a line of input.
func (s *session) eval(line string) bool {
	switch line {
	case ":quit", ":q":
		return true
	case ":first":
		renderTable(firstTableData(s.ga))
	case ":states":
		renderTree(statesList(s.lrgen.CFSM()))
	case ":table":
		renderTable(tableData(s.lrgen.ActionTable(), s.lrgen.GotoTable(), markConflict))
	default:
		if strings.HasPrefix(line, ":") {
			pterm.Error.Println("unknown command " + line)
			break
		}
		if err := s.run(line, true); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
	return false
}
