// Package cli 实现站点管理的命令行入口。
// 所有对任务和班次的变更都经过对账器写入，
// 产生的累计值增量在提交成功后投递到审计队列
package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/minfang-dev/station-manager/backend/internal/audit"
	"github.com/minfang-dev/station-manager/backend/internal/config"
	"github.com/minfang-dev/station-manager/backend/internal/domain"
	"github.com/minfang-dev/station-manager/backend/internal/repository"
	"github.com/minfang-dev/station-manager/backend/internal/stats"
)

type App struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	reconciler  *stats.Reconciler
	translator  ut.Translator
	publisher   *audit.Publisher
	redisClient *redis.Client

	Root *cobra.Command
}

func NewApp(cfg *config.Config, repo *repository.Repository, publisher *audit.Publisher, rdb *redis.Client) (*App, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	app := &App{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		reconciler:  stats.NewReconciler(repo),
		translator:  trans,
		publisher:   publisher,
		redisClient: rdb,
	}

	app.Root = &cobra.Command{
		Use:           "station",
		Short:         "微型消防站管理系统",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	app.Root.AddCommand(app.initCmd())
	app.Root.AddCommand(app.userCmd())
	app.Root.AddCommand(app.vehicleCmd())
	app.Root.AddCommand(app.missionCmd())
	app.Root.AddCommand(app.shiftCmd())
	app.Root.AddCommand(app.rolloverCmd())
	app.Root.AddCommand(app.reportCmd())
	app.Root.AddCommand(app.attendanceCmd())

	return app, nil
}

// readJSON 从文件读取 JSON 载荷，路径为 "-" 时读取标准输入
func readJSON(path string, dst any) error {
	var data []byte
	var err error

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("读取载荷失败: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("解析 JSON 失败: %w", err)
	}

	return nil
}

// validateStruct 校验载荷并把校验错误翻译成中文
func (a *App) validateStruct(v any) error {
	err := a.validate.Struct(v)
	if err == nil {
		return nil
	}

	validationErrors := validator.ValidationErrors{}
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			messages = append(messages, fieldError.Translate(a.translator))
		}
		return fmt.Errorf("载荷校验失败: %v", messages)
	}

	return err
}

// publishDeltas 把对账产生的增量投递到审计队列。
// 变更本身已经提交，投递失败只记日志不回滚
func (a *App) publishDeltas(deltas []domain.AccumulatorDelta) {
	if len(deltas) == 0 {
		return
	}
	if err := a.publisher.Publish(deltas); err != nil {
		slog.Warn("增量投递失败，审计台账可能缺少这批记录", "error", err, "count", len(deltas))
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
