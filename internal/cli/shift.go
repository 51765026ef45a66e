package cli

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/minfang-dev/station-manager/backend/internal/domain"
	"github.com/minfang-dev/station-manager/backend/internal/utils"
)

func (a *App) shiftCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "shift", Short: "管理值班班次"}
	cmd.AddCommand(a.shiftCreateCmd())
	cmd.AddCommand(a.shiftShowCmd())
	cmd.AddCommand(a.shiftListCmd())
	cmd.AddCommand(a.shiftUpdateCmd())
	cmd.AddCommand(a.shiftDeleteCmd())
	return cmd
}

type shiftParticipantPayload struct {
	UserID   int64  `json:"userID" validate:"required"`
	CheckIn  string `json:"checkIn" validate:"required"`
	CheckOut string `json:"checkOut" validate:"required"`
}

type shiftPayload struct {
	Date         string                    `json:"date" validate:"required"`
	Team         string                    `json:"team" validate:"required,oneof=1 2 3"`
	Note         string                    `json:"note"`
	Participants []shiftParticipantPayload `json:"participants" validate:"required,min=1,dive"`
}

func (p *shiftPayload) toDomain() *domain.Shift {
	s := &domain.Shift{
		Date: p.Date,
		Team: p.Team,
		Note: p.Note,
	}
	for _, participant := range p.Participants {
		s.Participants = append(s.Participants, domain.ShiftParticipant{
			UserID:   participant.UserID,
			CheckIn:  participant.CheckIn,
			CheckOut: participant.CheckOut,
		})
	}
	return s
}

func (a *App) shiftCreateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "登记班次并更新参与者累计值和当日考勤",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := shiftPayload{}
			if err := readJSON(file, &payload); err != nil {
				return err
			}
			if err := a.validateStruct(payload); err != nil {
				return err
			}

			shift := payload.toDomain()
			if err := utils.NormalizeShift(shift); err != nil {
				return err
			}

			deltas, err := a.reconciler.CreateShift(shift)
			if err != nil {
				return fmt.Errorf("登记班次失败: %w", err)
			}
			a.publishDeltas(deltas)

			slog.Info("班次已登记", "id", shift.ID, "date", shift.Date, "team", shift.Team)
			return printJSON(shift)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON 载荷文件，- 表示标准输入")
	return cmd
}

func (a *App) shiftShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "查看班次详情",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("班次 ID 不合法: %q", args[0])
			}

			shift, err := a.repository.GetShiftByID(id)
			if err != nil {
				return fmt.Errorf("查询班次失败: %w", err)
			}
			return printJSON(shift)
		},
	}
}

func (a *App) shiftListCmd() *cobra.Command {
	var (
		date  string
		month int32
		year  int32
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "按日期或月份列出班次",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date != "" {
				shifts, err := a.repository.GetShiftsByDate(date)
				if err != nil {
					return err
				}
				return printJSON(shifts)
			}

			if month == 0 || year == 0 {
				return fmt.Errorf("需要指定 --date 或者 --month 加 --year")
			}

			shifts, err := a.repository.GetShiftsByMonth(month, year)
			if err != nil {
				return err
			}
			return printJSON(shifts)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "日期（YYYY-MM-DD）")
	cmd.Flags().Int32Var(&month, "month", 0, "月份")
	cmd.Flags().Int32Var(&year, "year", 0, "年份")
	return cmd
}

func (a *App) shiftUpdateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "修改班次并重新对账",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("班次 ID 不合法: %q", args[0])
			}

			payload := shiftPayload{}
			if err := readJSON(file, &payload); err != nil {
				return err
			}
			if err := a.validateStruct(payload); err != nil {
				return err
			}

			current, err := a.repository.GetShiftByID(id)
			if err != nil {
				return fmt.Errorf("查询班次失败: %w", err)
			}

			shift := payload.toDomain()
			shift.ID = id
			shift.Version = current.Version
			if err := utils.NormalizeShift(shift); err != nil {
				return err
			}

			deltas, err := a.reconciler.UpdateShift(shift)
			if err != nil {
				return fmt.Errorf("修改班次失败: %w", err)
			}
			a.publishDeltas(deltas)

			slog.Info("班次已修改", "id", shift.ID)
			return printJSON(shift)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON 载荷文件，- 表示标准输入")
	return cmd
}

func (a *App) shiftDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "删除班次并回退参与者累计值",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("班次 ID 不合法: %q", args[0])
			}

			deltas, err := a.reconciler.DeleteShift(id)
			if err != nil {
				return fmt.Errorf("删除班次失败: %w", err)
			}
			a.publishDeltas(deltas)

			slog.Info("班次已删除", "id", id)
			return nil
		},
	}
}
