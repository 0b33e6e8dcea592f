package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/models"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/scheduler"
)

func (c *cli) typesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List and edit shift types",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List shift types in rotation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.app.Repo.Load()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSHORT\tNAME\tHOURS\tTIER")
			for _, t := range s.ShiftTypes() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Short, t.Name, t.Hours, t.PayTier)
			}
			return w.Flush()
		},
	}

	var hours, color, tier string
	add := &cobra.Command{
		Use:   "add SHORT NAME",
		Short: "Add a shift type; the id is derived from SHORT",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var created models.ShiftType
			err := c.update(func(s *scheduler.Scheduler) error {
				var err error
				created, err = s.AddShiftType(args[0], args[1], hours, color, models.PayTier(tier))
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", created.ID)
			return nil
		},
	}
	add.Flags().StringVar(&hours, "hours", "", "time range HH:MM-HH:MM, empty for non-worked days")
	add.Flags().StringVar(&color, "color", "", "display color")
	add.Flags().StringVar(&tier, "tier", "", "pay tier: base, second, third or unpaid")

	rm := &cobra.Command{
		Use:   "rm ID",
		Short: "Remove a shift type; dates keep pointing at it but are ignored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.update(func(s *scheduler.Scheduler) error {
				return s.RemoveShiftType(args[0])
			})
		},
	}

	cmd.AddCommand(list, add, rm)
	return cmd
}

func (c *cli) rotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rotate DATE",
		Short: "Advance DATE to the next shift type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var next string
			err := c.update(func(s *scheduler.Scheduler) error {
				var err error
				next, err = s.Rotate(args[0])
				return err
			})
			if err != nil {
				return err
			}
			if next == "" {
				next = "-"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", args[0], next)
			return nil
		},
	}
}

func (c *cli) setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set DATE ID",
		Short: "Assign shift type ID to DATE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.update(func(s *scheduler.Scheduler) error {
				return s.SetShift(args[0], args[1])
			})
		},
	}
}

func (c *cli) clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear DATE",
		Short: "Unassign DATE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.update(func(s *scheduler.Scheduler) error {
				return s.ClearShift(args[0])
			})
		},
	}
}

func (c *cli) assignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign START [END] ID",
		Short: "Assign ID to every date from START to END (default: one week)",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := scheduler.ParseDateKey(args[0])
			if err != nil {
				return err
			}
			var end *time.Time
			id := args[len(args)-1]
			if len(args) == 3 {
				e, err := scheduler.ParseDateKey(args[1])
				if err != nil {
					return err
				}
				end = &e
			}

			var last time.Time
			err = c.update(func(s *scheduler.Scheduler) error {
				var err error
				last, err = s.AssignRange(start, end, id)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s assigned from %s to %s\n", id, args[0], scheduler.FormatDateKey(last))
			return nil
		},
	}
}

func (c *cli) noteCmd() *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "note DATE [TITLE]",
		Short: "Set the note of DATE; without title and text the note is removed",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := ""
			if len(args) == 2 {
				title = args[1]
			}
			return c.update(func(s *scheduler.Scheduler) error {
				return s.SetNote(args[0], title, text)
			})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "note body")
	return cmd
}
