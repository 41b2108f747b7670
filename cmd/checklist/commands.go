package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/BuzzLyutic/checklist/internal/model"
	"github.com/BuzzLyutic/checklist/internal/service"
)

func (a *app) addCmd() *cobra.Command {
	var category, memo string

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, ok := a.service.AddTask(args[0], category, memo)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing added: title is blank")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d: %s\n", task.ID, task.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Task category")
	cmd.Flags().StringVarP(&memo, "memo", "m", "", "Free-form note")

	return cmd
}

func (a *app) listCmd() *cobra.Command {
	var direction, category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, optionally sorted by status and filtered by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.show(cmd, direction, category)
		},
	}

	cmd.Flags().StringVarP(&direction, "sort", "s", "", "Sort by status (asc, desc)")
	cmd.Flags().StringVarP(&category, "category", "c", model.AllCategories, "Show one category only")

	return cmd
}

func (a *app) sortCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "sort [asc|desc]",
		Short: "List tasks sorted by status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.show(cmd, args[0], category)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", model.AllCategories, "Show one category only")

	return cmd
}

func (a *app) show(cmd *cobra.Command, direction, category string) error {
	if err := a.service.ApplySort(model.Direction(direction)); err != nil {
		return err
	}
	if err := a.service.SetCategoryFilter(category); err != nil {
		return err
	}
	printTasks(cmd.OutOrStdout(), a.service.VisibleTasks())
	return nil
}

func (a *app) rotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate [id]",
		Short: "Advance a task to its next status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !a.service.RotateStatus(id) {
				fmt.Fprintf(cmd.OutOrStdout(), "No task %d\n", id)
				return nil
			}
			for _, t := range a.service.Tasks() {
				if t.ID == id {
					fmt.Fprintf(cmd.OutOrStdout(), "%d is now %s\n", id, t.Status)
				}
			}
			return nil
		},
	}
}

func (a *app) editCmd() *cobra.Command {
	var title, memo string

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Change a task's title or memo",
		Long: `Change a task's title or memo.

A blank title keeps the current one. The memo is only changed when --memo is
given; pass --memo "" to clear it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var memoArg *string
			if cmd.Flags().Changed("memo") {
				memoArg = &memo
			}
			if !a.service.SaveEdit(id, title, memoArg) {
				fmt.Fprintf(cmd.OutOrStdout(), "No task %d\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&memo, "memo", "m", "", "New memo")

	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [id]",
		Aliases: []string{"rm"},
		Short:   "Delete a task; undo brings it back",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !a.service.DeleteTask(id) {
				fmt.Fprintf(cmd.OutOrStdout(), "No task %d\n", id)
				return nil
			}
			if err := a.saveUndo(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d\n", id)
			return nil
		},
	}
}

func (a *app) undoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Restore the most recently deleted task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			task, ok := a.service.UndoDelete()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to undo")
				return nil
			}
			if err := a.saveUndo(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d: %s\n", task.ID, task.Title)
			return nil
		},
	}
}

func (a *app) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the configured categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range a.service.Categories() {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id %q", service.ErrValidation, s)
	}
	return id, nil
}
