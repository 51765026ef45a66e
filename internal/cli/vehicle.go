package cli

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/minfang-dev/station-manager/backend/internal/domain"
)

func (a *App) vehicleCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "vehicle", Short: "管理站点车辆"}
	cmd.AddCommand(a.vehicleCreateCmd())
	cmd.AddCommand(a.vehicleListCmd())
	cmd.AddCommand(a.vehicleUpdateCmd())
	cmd.AddCommand(a.vehicleDeleteCmd())
	return cmd
}

func (a *App) vehicleCreateCmd() *cobra.Command {
	var (
		name        string
		plateNumber string
		kind        string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "登记车辆",
		RunE: func(cmd *cobra.Command, args []string) error {
			vehicle := &domain.Vehicle{
				Name:        name,
				PlateNumber: plateNumber,
				Kind:        kind,
			}

			if err := a.repository.CreateVehicle(vehicle); err != nil {
				return fmt.Errorf("登记车辆失败: %w", err)
			}

			slog.Info("车辆已登记", "id", vehicle.ID, "plateNumber", vehicle.PlateNumber)
			return printJSON(vehicle)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "车辆名称")
	cmd.Flags().StringVar(&plateNumber, "plate-number", "", "车牌号")
	cmd.Flags().StringVar(&kind, "kind", "", "车辆类型")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("plate-number")
	_ = cmd.MarkFlagRequired("kind")
	return cmd
}

func (a *App) vehicleListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "列出所有车辆",
		RunE: func(cmd *cobra.Command, args []string) error {
			vehicles, err := a.repository.GetAllVehicles()
			if err != nil {
				return err
			}
			return printJSON(vehicles)
		},
	}
}

func (a *App) vehicleUpdateCmd() *cobra.Command {
	var (
		name        string
		plateNumber string
		kind        string
		operational bool
	)

	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "更新车辆信息",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("车辆 ID 不合法: %q", args[0])
			}

			vehicle, err := a.repository.GetVehicleByID(id)
			if err != nil {
				return fmt.Errorf("查询车辆失败: %w", err)
			}

			if cmd.Flags().Changed("name") {
				vehicle.Name = name
			}
			if cmd.Flags().Changed("plate-number") {
				vehicle.PlateNumber = plateNumber
			}
			if cmd.Flags().Changed("kind") {
				vehicle.Kind = kind
			}
			if cmd.Flags().Changed("operational") {
				vehicle.IsOperational = operational
			}

			if err := a.repository.UpdateVehicle(vehicle); err != nil {
				return fmt.Errorf("更新车辆失败: %w", err)
			}

			return printJSON(vehicle)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "车辆名称")
	cmd.Flags().StringVar(&plateNumber, "plate-number", "", "车牌号")
	cmd.Flags().StringVar(&kind, "kind", "", "车辆类型")
	cmd.Flags().BoolVar(&operational, "operational", true, "是否可用")
	return cmd
}

func (a *App) vehicleDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "删除车辆",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("车辆 ID 不合法: %q", args[0])
			}

			if err := a.repository.DeleteVehicle(id); err != nil {
				return fmt.Errorf("删除车辆失败: %w", err)
			}

			slog.Info("车辆已删除", "id", id)
			return nil
		},
	}
}
