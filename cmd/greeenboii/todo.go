package main

import (
	"fmt"
	"strings"

	"github.com/greeenboii/greeenboii"
)

// Run executes the todo add command.
func (c *TodoAddCmd) Run(deps *Dependencies) error {
	task := &greeenboii.Task{Title: strings.Join(c.Title, " ")}
	if err := deps.Tasks.CreateTask(deps.Ctx, task); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Added task %s: %s\n", shortID(task.ID), task.Title)
	return nil
}

// Run executes the todo list command.
func (c *TodoListCmd) Run(deps *Dependencies) error {
	filter := greeenboii.TaskFilter{}
	if c.Pending {
		done := false
		filter.Done = &done
	}

	tasks, err := deps.Tasks.FindTasks(deps.Ctx, filter)
	if err != nil {
		return fail(deps, err)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(deps.Stdout, "No tasks found. Use 'greeenboii todo add' to create one.")
		return nil
	}

	for _, t := range tasks {
		mark := " "
		if t.Done {
			mark = "x"
		}
		fmt.Fprintf(deps.Stdout, "[%s] %s  %s\n", mark, shortID(t.ID), t.Title)
	}
	return nil
}

// Run executes the todo done command.
func (c *TodoDoneCmd) Run(deps *Dependencies) error {
	task, err := resolveTask(deps, c.ID)
	if err != nil {
		return fail(deps, err)
	}

	done := !c.Undo
	task, err = deps.Tasks.UpdateTask(deps.Ctx, task.ID, greeenboii.TaskUpdate{Done: &done})
	if err != nil {
		return fail(deps, err)
	}

	if done {
		fmt.Fprintf(deps.Stdout, "Completed %q\n", task.Title)
	} else {
		fmt.Fprintf(deps.Stdout, "Reopened %q\n", task.Title)
	}
	return nil
}

// Run executes the todo rename command.
func (c *TodoRenameCmd) Run(deps *Dependencies) error {
	task, err := resolveTask(deps, c.ID)
	if err != nil {
		return fail(deps, err)
	}

	title := strings.Join(c.Title, " ")
	task, err = deps.Tasks.UpdateTask(deps.Ctx, task.ID, greeenboii.TaskUpdate{Title: &title})
	if err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Renamed task %s to %q\n", shortID(task.ID), task.Title)
	return nil
}

// Run executes the todo delete command.
func (c *TodoDeleteCmd) Run(deps *Dependencies) error {
	task, err := resolveTask(deps, c.ID)
	if err != nil {
		return fail(deps, err)
	}

	if err := deps.Tasks.DeleteTask(deps.Ctx, task.ID); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Deleted task %q\n", task.Title)
	return nil
}

// resolveTask finds a task by full ID or by a prefix matching exactly one task.
func resolveTask(deps *Dependencies, ref string) (*greeenboii.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, greeenboii.Errorf(greeenboii.EINVALID, "task id required")
	}

	task, err := deps.Tasks.FindTaskByID(deps.Ctx, ref)
	if err == nil {
		return task, nil
	} else if greeenboii.ErrorCode(err) != greeenboii.ENOTFOUND {
		return nil, err
	}

	tasks, err := deps.Tasks.FindTasks(deps.Ctx, greeenboii.TaskFilter{})
	if err != nil {
		return nil, err
	}

	var matches []*greeenboii.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return nil, greeenboii.Errorf(greeenboii.ENOTFOUND, "task %q not found. Use 'greeenboii todo list' to see tasks.", ref)
	case 1:
		return matches[0], nil
	default:
		return nil, greeenboii.Errorf(greeenboii.EINVALID, "task id %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// shortID returns the first eight characters of an ID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
