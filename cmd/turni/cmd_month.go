package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/models"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/pay"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/report"
	"github.com/vocidicassinoprotonme-hash/turni-lavoro-pwa/pkg/scheduler"
	"go.uber.org/zap"
)

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats YYYY-MM",
		Short: "Show days and hours per shift type for a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseMonth(args[0])
			if err != nil {
				return err
			}
			s, err := c.app.Repo.Load()
			if err != nil {
				return err
			}
			stats := s.MonthStats(year, month)
			if len(stats.Order) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no shifts assigned this month")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, e := range stats.Entries() {
				fmt.Fprintf(w, "%s\t%d days\t%.1f h\n", e.Label, e.Days, e.Hours)
			}
			fmt.Fprintf(w, "total\t\t%.1f h\n", stats.TotalHours)
			return w.Flush()
		},
	}
}

func (c *cli) payCmd() *cobra.Command {
	var (
		in   models.PayParams
		rate string
		save bool
	)
	cmd := &cobra.Command{
		Use:   "pay YYYY-MM",
		Short: "Estimate gross and net pay for a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseMonth(args[0])
			if err != nil {
				return err
			}
			p, err := c.app.Repo.LoadPayParams()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("rate") {
				if p.HourlyRate, err = pay.ParseAmount(rate); err != nil {
					return err
				}
			}
			if flags.Changed("contract") {
				p.ContractHours = in.ContractHours
			}
			if flags.Changed("second") {
				p.SecondBonusPct = in.SecondBonusPct
			}
			if flags.Changed("third") {
				p.ThirdBonusPct = in.ThirdBonusPct
			}
			if flags.Changed("deduction") {
				p.DeductionPct = in.DeductionPct
			}
			p.ManualHours = in.ManualHours

			s, err := c.app.Repo.Load()
			if err != nil {
				return err
			}
			est, err := pay.Estimate(p, s.MonthStats(year, month))
			if err != nil {
				return err
			}
			if save {
				if err := c.app.Repo.SavePayParams(p); err != nil {
					return err
				}
				c.app.Log.Debug("Pay parameters saved", zap.Float64("hourly_rate", p.HourlyRate))
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "base\t%.2f h\t%.2f\n", est.BaseHours, est.BaseGross)
			fmt.Fprintf(w, "second turn\t%.2f h\t%.2f\n", est.SecondHours, est.SecondGross)
			fmt.Fprintf(w, "third turn\t%.2f h\t%.2f\n", est.ThirdHours, est.ThirdGross)
			fmt.Fprintf(w, "calendar\t%.2f h\tgross %.2f\tnet %.2f\n", est.CalendarHours, est.CalendarGross, est.CalendarNet)
			fmt.Fprintf(w, "reference (%s)\t%.2f h\tgross %.2f\tnet %.2f\n", est.Basis, est.ReferenceHours, est.ReferenceGross, est.ReferenceNet)
			fmt.Fprintf(w, "difference\t\t%.2f\n", est.Difference)
			return w.Flush()
		},
	}
	f := cmd.Flags()
	f.StringVar(&rate, "rate", "", "hourly rate (comma or dot decimals)")
	f.Float64Var(&in.ManualHours, "manual", 0, "manual hours override")
	f.Float64Var(&in.ContractHours, "contract", 0, "contractual hours")
	f.Float64Var(&in.SecondBonusPct, "second", 0, "second-turn bonus percent")
	f.Float64Var(&in.ThirdBonusPct, "third", 0, "third-turn bonus percent")
	f.Float64Var(&in.DeductionPct, "deduction", 0, "deduction percent")
	f.BoolVar(&save, "save", false, "store the parameters for next time")
	return cmd
}

func (c *cli) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write shifts, shift types and notes to a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.app.Repo.Load()
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(s.Export(), "", "  ")
			if err != nil {
				return err
			}
			return os.WriteFile(args[0], data, 0o644)
		},
	}
}

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace state with the parts present in a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return c.update(func(s *scheduler.Scheduler) error {
				_, err := s.Import(data)
				return err
			})
		},
	}
}

func (c *cli) reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report YYYY-MM FILE",
		Short: "Write the month sheet as XLSX",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := parseMonth(args[0])
			if err != nil {
				return err
			}
			s, err := c.app.Repo.Load()
			if err != nil {
				return err
			}
			out, err := os.Create(args[1])
			if err != nil {
				return err
			}
			if err := report.WriteMonthXLSX(out, s.MonthReport(year, month), s.MonthStats(year, month)); err != nil {
				out.Close()
				return err
			}
			return out.Close()
		},
	}
}

func (c *cli) passwdCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "passwd USER",
		Short: "Change the password of the operator account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Auth.SetPassword(args[0], password)
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "new password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
