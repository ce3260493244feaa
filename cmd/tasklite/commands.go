package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tasklite/internal/task"
)

func newAddCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new task",
		Long:  fmt.Sprintf("Add a task to the top of the list. The title must be 1-%d characters.", task.MaxTitleLen),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			t, ok, err := a.list.Add(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("title must be 1-%d characters", task.MaxTitleLen)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Task created: %s\n", shortID(t.ID))
			fmt.Fprintf(cmd.OutOrStdout(), "  Title: %s\n", t.Title)
			return nil
		},
	}
}

func newListCmd(configPath *string) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			if filter == "" {
				filter = a.cfg.DefaultFilter
			}
			mode, err := task.ParseFilterMode(filter)
			if err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), task.Filter(a.list.Tasks(), mode))
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "all, active or completed (default from config)")
	return cmd
}

func newDoneCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a task between active and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := a.list.Resolve(args[0])
			if err != nil {
				return err
			}
			if _, err := a.list.ToggleComplete(t.ID); err != nil {
				return err
			}
			state := "completed"
			if t.Complete {
				state = "active"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is now %s\n", shortID(t.ID), state)
			return nil
		},
	}
}

func newEditCmd(configPath *string) *cobra.Command {
	var title, description string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title or description of a task",
		Long:  `Change a task's title and description. An empty --description removes it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := a.list.Resolve(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("title") {
				title = t.Title
			}
			if !cmd.Flags().Changed("description") {
				description = t.Description
			}
			ok, err := a.list.Edit(t.ID, title, description)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("title must be 1-%d characters and description at most %d", task.MaxTitleLen, task.MaxDescriptionLen)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Task updated: %s\n", shortID(t.ID))
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	return cmd
}

func newRmCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			t, err := a.list.Resolve(args[0])
			if err != nil {
				return err
			}
			if _, err := a.list.Remove(t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Task deleted: %s\n", shortID(t.ID))
			return nil
		},
	}
}

func newStatsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show progress counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			s := task.ComputeStats(a.list.Tasks())
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %d | Active: %d | Completed: %d\n", s.Total, s.Active, s.Completed)
			fmt.Fprintf(cmd.OutOrStdout(), "Completed: %d%%\n", s.PercentComplete)
			return nil
		},
	}
}

func printTasks(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks")
		return
	}
	for _, t := range tasks {
		box := "[ ]"
		if t.Complete {
			box = "[x]"
		}
		fmt.Fprintf(w, "%s %s %s\n", shortID(t.ID), box, t.Title)
		if t.HasDescription() {
			fmt.Fprintf(w, "         %s\n", strings.ReplaceAll(t.Description, "\n", "\n         "))
		}
	}
}

// shortID is the id prefix shown to users; Resolve accepts it back.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
