package main

import (
	"fmt"

	"github.com/npillmayer/slrkit/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "states <grammar file path>",
		Short:   "Show the canonical collection of LR(0) item sets",
		Example: `  slrkit states expr.g`,
		Args:    cobra.ExactArgs(1),
		RunE:    runStates,
	}
	rootCmd.AddCommand(cmd)
}

func runStates(cmd *cobra.Command, args []string) error {
	ga, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	cfsm := lr.BuildAutomaton(ga.Grammar())
	pterm.Info.Println(fmt.Sprintf("%d states", cfsm.Size()))
	renderTree(statesList(cfsm))
	return nil
}
