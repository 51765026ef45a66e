package cli

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/minfang-dev/station-manager/backend/internal/domain"
	"github.com/minfang-dev/station-manager/backend/internal/utils"
)

func (a *App) missionCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "mission", Short: "管理出动任务"}
	cmd.AddCommand(a.missionCreateCmd())
	cmd.AddCommand(a.missionShowCmd())
	cmd.AddCommand(a.missionListCmd())
	cmd.AddCommand(a.missionUpdateCmd())
	cmd.AddCommand(a.missionDeleteCmd())
	return cmd
}

type missionParticipantPayload struct {
	UserID      int64  `json:"userID" validate:"required"`
	CustomStart string `json:"customStart,omitempty"`
	CustomEnd   string `json:"customEnd,omitempty"`
}

type missionPayload struct {
	Date         string                      `json:"date" validate:"required"`
	StartTime    string                      `json:"startTime" validate:"required"`
	EndTime      string                      `json:"endTime" validate:"required"`
	Type         string                      `json:"type" validate:"required,oneof=火情 救援 医疗 公共服务 其他"`
	Team         string                      `json:"team" validate:"required,oneof=1 2 3"`
	Address      string                      `json:"address"`
	Description  string                      `json:"description"`
	Participants []missionParticipantPayload `json:"participants" validate:"required,min=1,dive"`
	VehicleIDs   []int64                     `json:"vehicleIDs"`
}

func (p *missionPayload) toDomain() *domain.Mission {
	m := &domain.Mission{
		Date:        p.Date,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		Type:        domain.MissionType(p.Type),
		Team:        p.Team,
		Address:     p.Address,
		Description: p.Description,
		VehicleIDs:  p.VehicleIDs,
	}
	for _, participant := range p.Participants {
		m.Participants = append(m.Participants, domain.MissionParticipant{
			UserID:      participant.UserID,
			CustomStart: participant.CustomStart,
			CustomEnd:   participant.CustomEnd,
		})
	}
	return m
}

func (a *App) missionCreateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "登记出动任务并更新参与者累计值",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := missionPayload{}
			if err := readJSON(file, &payload); err != nil {
				return err
			}
			if err := a.validateStruct(payload); err != nil {
				return err
			}

			mission := payload.toDomain()
			if err := utils.NormalizeMission(mission); err != nil {
				return err
			}

			deltas, err := a.reconciler.CreateMission(mission)
			if err != nil {
				return fmt.Errorf("登记任务失败: %w", err)
			}
			a.publishDeltas(deltas)

			slog.Info("任务已登记", "id", mission.ID, "date", mission.Date, "type", string(mission.Type))
			return printJSON(mission)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON 载荷文件，- 表示标准输入")
	return cmd
}

func (a *App) missionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "查看任务详情",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("任务 ID 不合法: %q", args[0])
			}

			mission, err := a.repository.GetMissionByID(id)
			if err != nil {
				return fmt.Errorf("查询任务失败: %w", err)
			}
			return printJSON(mission)
		},
	}
}

func (a *App) missionListCmd() *cobra.Command {
	var (
		date  string
		month int32
		year  int32
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "按日期或月份列出任务",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date != "" {
				missions, err := a.repository.GetMissionsByDate(date)
				if err != nil {
					return err
				}
				return printJSON(missions)
			}

			if month == 0 || year == 0 {
				return fmt.Errorf("需要指定 --date 或者 --month 加 --year")
			}

			missions, err := a.repository.GetMissionsByMonth(month, year)
			if err != nil {
				return err
			}
			return printJSON(missions)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "日期（YYYY-MM-DD）")
	cmd.Flags().Int32Var(&month, "month", 0, "月份")
	cmd.Flags().Int32Var(&year, "year", 0, "年份")
	return cmd
}

func (a *App) missionUpdateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "修改任务并重新对账",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("任务 ID 不合法: %q", args[0])
			}

			payload := missionPayload{}
			if err := readJSON(file, &payload); err != nil {
				return err
			}
			if err := a.validateStruct(payload); err != nil {
				return err
			}

			// 带上当前版本号，落库时的乐观锁校验依赖它
			current, err := a.repository.GetMissionByID(id)
			if err != nil {
				return fmt.Errorf("查询任务失败: %w", err)
			}

			mission := payload.toDomain()
			mission.ID = id
			mission.Version = current.Version
			if err := utils.NormalizeMission(mission); err != nil {
				return err
			}

			deltas, err := a.reconciler.UpdateMission(mission)
			if err != nil {
				return fmt.Errorf("修改任务失败: %w", err)
			}
			a.publishDeltas(deltas)

			slog.Info("任务已修改", "id", mission.ID)
			return printJSON(mission)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON 载荷文件，- 表示标准输入")
	return cmd
}

func (a *App) missionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "删除任务并回退参与者累计值",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("任务 ID 不合法: %q", args[0])
			}

			deltas, err := a.reconciler.DeleteMission(id)
			if err != nil {
				return fmt.Errorf("删除任务失败: %w", err)
			}
			a.publishDeltas(deltas)

			slog.Info("任务已删除", "id", id)
			return nil
		},
	}
}
