package main

import (
	"bufio"
	"fmt"
	"strings"
)

// menuOptions are listed in the order they are numbered.
var menuOptions = []string{
	"Network search",
	"Search history",
	"To-do list",
	"Exit",
}

// Run executes the interactive menu. It reads choices from stdin until the
// user exits, stdin ends or the context is canceled. Command errors are
// printed and the menu continues.
func (c *MenuCmd) Run(deps *Dependencies) error {
	if deps.Stdin == nil {
		return nil
	}
	scanner := bufio.NewScanner(deps.Stdin)

	fmt.Fprintln(deps.Stdout, "Welcome to Greeenboii")
	for deps.Ctx.Err() == nil {
		fmt.Fprintln(deps.Stdout, "Choose an option:")
		for i, opt := range menuOptions {
			fmt.Fprintf(deps.Stdout, "  %d) %s\n", i+1, opt)
		}
		fmt.Fprint(deps.Stdout, "> ")

		if !scanner.Scan() {
			fmt.Fprintln(deps.Stdout)
			return nil
		}
		choice := strings.ToLower(strings.TrimSpace(scanner.Text()))

		switch choice {
		case "1", "search":
			fmt.Fprint(deps.Stdout, "Enter your search query: ")
			if !scanner.Scan() {
				fmt.Fprintln(deps.Stdout)
				return nil
			}
			query := strings.TrimSpace(scanner.Text())
			if query == "" {
				continue
			}
			cmd := &SearchCmd{Query: []string{query}, SearchFlags: c.SearchFlags}
			_ = cmd.Run(deps)
		case "2", "history":
			_ = (&HistoryCmd{Limit: 10}).Run(deps)
		case "3", "todo":
			_ = (&TodoListCmd{}).Run(deps)
		case "4", "exit", "quit", "q":
			return nil
		case "":
		default:
			fmt.Fprintf(deps.Stdout, "Unknown option %q\n", choice)
		}
	}
	return nil
}
