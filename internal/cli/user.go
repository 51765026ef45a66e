package cli

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/minfang-dev/station-manager/backend/internal/domain"
	"github.com/minfang-dev/station-manager/backend/internal/utils"
)

func (a *App) userCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "user", Short: "管理站点人员"}
	cmd.AddCommand(a.userCreateCmd())
	cmd.AddCommand(a.userListCmd())
	cmd.AddCommand(a.userUpdateCmd())
	cmd.AddCommand(a.userDeleteCmd())
	return cmd
}

type userPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=队员 站长 文员"`
	Team     string `json:"team" validate:"required,oneof=1 2 3"`
}

func (a *App) userCreateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "创建人员",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := userPayload{}
			if err := readJSON(file, &payload); err != nil {
				return err
			}
			if err := a.validateStruct(payload); err != nil {
				return err
			}

			passwordHash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}

			user := &domain.User{
				Username:     payload.Username,
				PasswordHash: string(passwordHash),
				FullName:     payload.FullName,
				Email:        payload.Email,
				Role:         domain.Role(payload.Role),
				Team:         payload.Team,
			}

			if err := a.repository.CreateUser(user); err != nil {
				return fmt.Errorf("创建人员失败: %w", err)
			}

			slog.Info("人员已创建", "id", user.ID, "username", user.Username)
			return printJSON(user)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON 载荷文件，- 表示标准输入")
	return cmd
}

func (a *App) userListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "列出所有人员及其当月累计值",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := a.repository.GetAllUsers()
			if err != nil {
				return err
			}
			return printJSON(users)
		},
	}
}

func (a *App) userUpdateCmd() *cobra.Command {
	var (
		fullName string
		email    string
		role     string
		team     string
		active   bool
	)

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "更新人员信息",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("人员 ID 不合法: %q", args[0])
			}

			user, err := a.repository.GetUserByID(id)
			if err != nil {
				return fmt.Errorf("查询人员失败: %w", err)
			}

			if cmd.Flags().Changed("full-name") {
				user.FullName = fullName
			}
			if cmd.Flags().Changed("email") {
				user.Email = email
			}
			if cmd.Flags().Changed("role") {
				user.Role = domain.Role(role)
			}
			if cmd.Flags().Changed("team") {
				if !slices.Contains(utils.Teams, team) {
					return fmt.Errorf("未知的队伍 %q", team)
				}
				user.Team = team
			}
			if cmd.Flags().Changed("active") {
				user.IsActive = active
			}

			if err := a.repository.UpdateUser(user); err != nil {
				return fmt.Errorf("更新人员失败: %w", err)
			}

			return printJSON(user)
		},
	}

	cmd.Flags().StringVar(&fullName, "full-name", "", "姓名")
	cmd.Flags().StringVar(&email, "email", "", "邮箱")
	cmd.Flags().StringVar(&role, "role", "", "角色（队员/站长/文员）")
	cmd.Flags().StringVar(&team, "team", "", "队伍（1/2/3）")
	cmd.Flags().BoolVar(&active, "active", true, "是否在编")
	return cmd
}

func (a *App) userDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "删除人员",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("人员 ID 不合法: %q", args[0])
			}

			if err := a.repository.DeleteUser(id); err != nil {
				return fmt.Errorf("删除人员失败: %w", err)
			}

			slog.Info("人员已删除", "id", id)
			return nil
		},
	}
}
