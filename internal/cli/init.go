package cli

import (
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/minfang-dev/station-manager/backend/internal/domain"
	"github.com/minfang-dev/station-manager/backend/internal/migrate"
)

func (a *App) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "应用数据库迁移并确保初始管理员存在",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := migrate.Up(cmd.Context(), a.repository.DB()); err != nil {
				return err
			}
			slog.Info("数据库迁移完成")

			passwordHash, err := bcrypt.GenerateFromPassword([]byte(a.config.InitialAdmin.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}

			initialAdmin := &domain.User{
				Username:     a.config.InitialAdmin.Username,
				PasswordHash: string(passwordHash),
				FullName:     a.config.InitialAdmin.FullName,
				Email:        a.config.InitialAdmin.Email,
				Role:         domain.RoleHead,
				Team:         "1",
			}

			if err := a.repository.CreateUser(initialAdmin); err != nil {
				var pgErr *pgconn.PgError
				switch {
				case errors.As(err, &pgErr):
					switch pgErr.ConstraintName {
					case "users_username_key":
						// 初始管理员已经存在，不处理
						slog.Info("初始管理员已存在", "username", a.config.InitialAdmin.Username)
						return nil
					default:
						return err
					}
				default:
					return err
				}
			}

			slog.Info("初始管理员已创建", "username", initialAdmin.Username)
			return nil
		},
	}
}
