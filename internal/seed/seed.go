// Package seed 生成开发环境用的演示数据
package seed

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/minfang-dev/station-manager/backend/internal/config"
	"github.com/minfang-dev/station-manager/backend/internal/repository"
	"github.com/minfang-dev/station-manager/backend/internal/stats"
	"github.com/minfang-dev/station-manager/backend/internal/utils"
)

const (
	seedUserCount    = 15
	seedVehicleCount = 4
)

// SeedDemoData 生成随机的用户、车辆，并往当前开放月份里填充
// 班次和任务。所有班次和任务都经过对账器写入，
// 保证演示数据的累计值和真实使用时一致
func SeedDemoData(cfg *config.Config, repo *repository.Repository) error {
	settings, err := repo.GetSettings()
	if err != nil {
		return fmt.Errorf("读取系统设置失败: %w", err)
	}

	userIDs := make([]int64, 0, seedUserCount)
	for i := 0; i < seedUserCount; i++ {
		user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Seed.EmailDomain)
		if err != nil {
			return fmt.Errorf("生成随机用户失败: %w", err)
		}
		if err := repo.CreateUser(user); err != nil {
			slog.Warn("插入随机用户失败，跳过", "username", user.Username, "error", err)
			continue
		}
		userIDs = append(userIDs, user.ID)
	}
	slog.Info("随机用户生成完成", "count", len(userIDs))

	for i := 0; i < seedVehicleCount; i++ {
		vehicle := utils.GenerateRandomVehicle()
		if err := repo.CreateVehicle(vehicle); err != nil {
			slog.Warn("插入随机车辆失败，跳过", "plateNumber", vehicle.PlateNumber, "error", err)
		}
	}

	if len(userIDs) == 0 {
		return fmt.Errorf("没有任何用户插入成功")
	}

	reconciler := stats.NewReconciler(repo)

	// 每天一个整日班次，三支队伍轮换；部分日期再配上随机任务
	team := 0
	for day := 1; day <= 28; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", settings.ActiveYear, settings.ActiveMonth, day)

		shift := utils.GenerateRandomShift(date, utils.Teams[team], userIDs)
		if err := utils.NormalizeShift(shift); err != nil {
			return fmt.Errorf("整理演示班次失败: %w", err)
		}
		if _, err := reconciler.CreateShift(shift); err != nil {
			return fmt.Errorf("写入演示班次失败: %w", err)
		}
		team = (team + 1) % len(utils.Teams)

		if rand.Intn(2) == 0 {
			continue
		}
		mission := utils.GenerateRandomMission(date, userIDs)
		if err := utils.NormalizeMission(mission); err != nil {
			return fmt.Errorf("整理演示任务失败: %w", err)
		}
		if _, err := reconciler.CreateMission(mission); err != nil {
			return fmt.Errorf("写入演示任务失败: %w", err)
		}
	}

	slog.Info("演示数据生成完成", "activeMonth", settings.ActiveMonth, "activeYear", settings.ActiveYear)
	return nil
}
