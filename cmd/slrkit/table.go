package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/slrkit/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var tableFlags = struct {
	lr0 *bool
	dot *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "table <grammar file path>",
		Short: "Show the ACTION and GOTO tables of a grammar",
		Example: `  slrkit table expr.g
  slrkit table expr.g --lr0 --dot expr.dot`,
		Args: cobra.ExactArgs(1),
		RunE: runTable,
	}
	tableFlags.lr0 = cmd.Flags().Bool("lr0", false, "show the LR(0) ACTION table instead of the SLR(1) table")
	tableFlags.dot = cmd.Flags().StringP("dot", "d", "", "write the LR(0) automaton in GraphViz DOT format to a file")
	rootCmd.AddCommand(cmd)
}

func runTable(cmd *cobra.Command, args []string) error {
	ga, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	lrgen := lr.NewTableGenerator(ga)
	lrgen.CreateTables()
	actions := lrgen.ActionTable()
	title := "SLR(1)"
	if *tableFlags.lr0 {
		actions, _ = lrgen.BuildLR0ActionTable()
		title = "LR(0)"
	}
	pterm.DefaultSection.Println(fmt.Sprintf("%s parse tables, %d states", title, actions.States()))
	renderTable(tableData(actions, lrgen.GotoTable(), markConflict))
	conflicts := actions.Conflicts()
	for _, c := range conflicts {
		pterm.Warning.Println(c.String())
	}
	if len(conflicts) == 0 {
		pterm.Info.Println(fmt.Sprintf("grammar %s is %s", ga.Grammar().Name, title))
	} else {
		pterm.Info.Println(fmt.Sprintf("grammar %s is not %s: %d conflicts in states %v",
			ga.Grammar().Name, title, len(conflicts), lr.ConflictStates(conflicts)))
	}
	if *tableFlags.dot != "" {
		if err := writeDot(lrgen.CFSM(), *tableFlags.dot); err != nil {
			return err
		}
		pterm.Info.Println(fmt.Sprintf("automaton written to %s", *tableFlags.dot))
	}
	return nil
}

func writeDot(cfsm *lr.CFSM, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create DOT file: %w", err)
	}
	defer f.Close()
	if err := cfsm.CFSM2GraphViz(f); err != nil {
		return fmt.Errorf("cannot write DOT file %s: %w", path, err)
	}
	return nil
}
