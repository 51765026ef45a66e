package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (a *App) reportCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "report", Short: "查询月度报表和变更台账"}
	cmd.AddCommand(a.reportListCmd())
	cmd.AddCommand(a.reportUserCmd())
	cmd.AddCommand(a.reportDeltasCmd())
	return cmd
}

func (a *App) reportListCmd() *cobra.Command {
	var (
		month int32
		year  int32
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "列出某个月所有人的报表",
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := a.repository.GetMonthlyReports(month, year)
			if err != nil {
				return err
			}
			return printJSON(reports)
		},
	}

	cmd.Flags().Int32Var(&month, "month", 0, "月份")
	cmd.Flags().Int32Var(&year, "year", 0, "年份")
	_ = cmd.MarkFlagRequired("month")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

func (a *App) reportUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "user [id]",
		Short: "列出某个人历月的报表",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("人员 ID 不合法: %q", args[0])
			}

			reports, err := a.repository.GetMonthlyReportsByUser(id)
			if err != nil {
				return err
			}
			return printJSON(reports)
		},
	}
}

func (a *App) reportDeltasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deltas [user-id]",
		Short: "列出某个人累计值的变更台账",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("人员 ID 不合法: %q", args[0])
			}

			deltas, err := a.repository.GetAccumulatorDeltasByUser(id)
			if err != nil {
				return err
			}
			return printJSON(deltas)
		},
	}
}

func (a *App) attendanceCmd() *cobra.Command {
	var (
		date   string
		userID int64
		month  int32
		year   int32
	)

	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "查询考勤记录",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date != "" {
				records, err := a.repository.GetAttendanceByDate(date)
				if err != nil {
					return err
				}
				return printJSON(records)
			}

			if userID == 0 || month == 0 || year == 0 {
				return fmt.Errorf("需要指定 --date 或者 --user 加 --month 加 --year")
			}

			records, err := a.repository.GetAttendanceByUserAndMonth(userID, month, year)
			if err != nil {
				return err
			}
			return printJSON(records)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "日期（YYYY-MM-DD）")
	cmd.Flags().Int64Var(&userID, "user", 0, "人员 ID")
	cmd.Flags().Int32Var(&month, "month", 0, "月份")
	cmd.Flags().Int32Var(&year, "year", 0, "年份")
	return cmd
}
