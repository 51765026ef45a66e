package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/minfang-dev/station-manager/backend/internal/stats"
)

const rolloverLockKey = "rollover_lock"

// rolloverCmd 执行月度结转。结转本身在事务里是幂等的，
// redis 锁只是用来挡住并发调用，避免两次结转同时跑
func (a *App) rolloverCmd() *cobra.Command {
	var (
		month int32
		year  int32
	)

	cmd := &cobra.Command{
		Use:   "rollover",
		Short: "结转指定月份：固化月度报表、清零累计值并开放下个月",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(a.config.Redis.ConnectTimeout)*time.Second)
			defer cancel()

			acquired, err := a.redisClient.SetNX(ctx, rolloverLockKey, "1",
				time.Duration(a.config.Rollover.LockExpiration)*time.Second).Result()
			if err != nil {
				return fmt.Errorf("获取结转锁失败: %w", err)
			}
			if !acquired {
				return fmt.Errorf("另一个结转正在进行中，请稍后再试")
			}
			defer func() {
				if err := a.redisClient.Del(context.Background(), rolloverLockKey).Err(); err != nil {
					slog.Warn("释放结转锁失败，锁会在过期后自动释放", "error", err)
				}
			}()

			if month == 0 || year == 0 {
				settings, err := a.repository.GetSettings()
				if err != nil {
					return err
				}
				month, year = settings.ActiveMonth, settings.ActiveYear
			}

			rollover := stats.NewRollover(a.repository)
			newMonth, newYear, err := rollover.Run(month, year)
			if err != nil {
				return fmt.Errorf("结转失败: %w", err)
			}

			slog.Info("结转完成", "month", month, "year", year, "newMonth", newMonth, "newYear", newYear)
			return nil
		},
	}

	cmd.Flags().Int32Var(&month, "month", 0, "要结转的月份，缺省时结转当前开放月份")
	cmd.Flags().Int32Var(&year, "year", 0, "要结转的年份，缺省时结转当前开放年份")
	return cmd
}
