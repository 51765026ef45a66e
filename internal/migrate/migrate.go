// Package migrate 负责在初始化时应用内嵌的数据库迁移
package migrate

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/minfang-dev/station-manager/backend/migrations"
)

// Up 把所有未应用的迁移执行到最新版本
func Up(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
