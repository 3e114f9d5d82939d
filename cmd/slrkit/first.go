package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "first <grammar file path>",
		Short:   "Show the rules, FIRST and FOLLOW sets of a grammar",
		Example: `  slrkit first expr.g`,
		Args:    cobra.ExactArgs(1),
		RunE:    runFirst,
	}
	rootCmd.AddCommand(cmd)
}

func runFirst(cmd *cobra.Command, args []string) error {
	ga, err := readGrammar(args[0])
	if err != nil {
		return err
	}
	pterm.DefaultSection.Println("Rules")
	renderTree(rulesList(ga.Grammar()))
	pterm.DefaultSection.Println("FIRST and FOLLOW")
	renderTable(firstTableData(ga))
	return nil
}
