package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/slrkit/lr"
	"github.com/npillmayer/slrkit/lr/slr"
	"github.com/pterm/pterm"
)

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Warning.Prefix = pterm.Prefix{
		Text:  "  Conflict",
		Style: pterm.NewStyle(pterm.BgYellow, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// --- FIRST and FOLLOW ------------------------------------------------------

func firstTableData(ga *lr.LRAnalysis) pterm.TableData {
	data := pterm.TableData{{"", "nullable", "FIRST", "FOLLOW"}}
	for _, A := range ga.Grammar().NonTerminals() {
		nullable := ""
		if ga.Nullable(A.Name) {
			nullable = "yes"
		}
		data = append(data, []string{
			A.Name,
			nullable,
			ga.First(A.Name).String(),
			ga.Follow(A.Name).String(),
		})
	}
	return data
}

// --- Grammar and CFSM ------------------------------------------------------

func rulesList(g *lr.Grammar) pterm.LeveledList {
	ll := pterm.LeveledList{{Level: 0, Text: g.Name}}
	for _, r := range g.Rules() {
		ll = append(ll, pterm.LeveledListItem{
			Level: 1,
			Text:  fmt.Sprintf("%2d: %s", r.Serial, r),
		})
	}
	return ll
}

// statesList lists the states of a CFSM with their items and outgoing
// transitions.
func statesList(cfsm *lr.CFSM) pterm.LeveledList {
	out := make(map[int][]lr.Transition)
	for _, t := range cfsm.Transitions() {
		out[t.From] = append(out[t.From], t)
	}
	ll := pterm.LeveledList{{Level: 0, Text: cfsm.Grammar().Name}}
	for _, s := range cfsm.States() {
		text := "state " + strconv.Itoa(s.ID)
		if s.Accept {
			text += " (accept)"
		}
		ll = append(ll, pterm.LeveledListItem{Level: 1, Text: text})
		for _, item := range s.Items() {
			ll = append(ll, pterm.LeveledListItem{Level: 2, Text: item.String()})
		}
		for _, t := range out[s.ID] {
			ll = append(ll, pterm.LeveledListItem{
				Level: 2,
				Text:  fmt.Sprintf("on %s goto %d", t.Label, t.To),
			})
		}
	}
	return ll
}

// --- Parse tables ----------------------------------------------------------

// tableData renders ACTION and GOTO side by side. Conflicting cells are
// passed through mark.
func tableData(actions *lr.ActionTable, gotos *lr.GotoTable, mark func(string) string) pterm.TableData {
	g := actions.Grammar()
	header := []string{"state"}
	for _, a := range actions.Terminals() {
		header = append(header, a.Name)
	}
	for _, A := range g.NonTerminals() {
		header = append(header, A.Name)
	}
	data := pterm.TableData{header}
	for state := 0; state < actions.States(); state++ {
		row := []string{strconv.Itoa(state)}
		for _, a := range actions.Terminals() {
			cell := actions.Cell(state, a)
			text := cell.String()
			if cell.IsConflict() && mark != nil {
				text = mark(text)
			}
			row = append(row, text)
		}
		for _, A := range g.NonTerminals() {
			text := ""
			if to, ok := gotos.Goto(state, A); ok {
				text = strconv.Itoa(to)
			}
			row = append(row, text)
		}
		data = append(data, row)
	}
	return data
}

func markConflict(s string) string {
	return pterm.FgRed.Sprint(s)
}

// --- Parser runs -----------------------------------------------------------

func stepsData(trace *slr.Trace) pterm.TableData {
	data := pterm.TableData{{"#", "stack", "input", "action"}}
	for i, step := range trace.Steps {
		action := step.Action
		if step.Conflict {
			action = markConflict(action)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			step.Stack,
			strings.Join(step.Input, " "),
			action,
		})
	}
	return data
}

// treeList flattens a derivation tree for pterm.NewTreeFromLeveledList.
func treeList(root *slr.Node) pterm.LeveledList {
	ll := pterm.LeveledList{}
	root.Each(func(node *slr.Node, depth int) {
		text := node.String()
		if !node.IsLeaf() {
			text = node.Rule.String()
		}
		ll = append(ll, pterm.LeveledListItem{Level: depth, Text: text})
	})
	return ll
}

func renderTree(ll pterm.LeveledList) {
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
}

func renderTable(data pterm.TableData) {
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
