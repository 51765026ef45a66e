package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/minfang-dev/station-manager/backend/internal/config"
	"github.com/minfang-dev/station-manager/backend/internal/stats"
)

// querier 抽象 *sql.DB 和 *sql.Tx 的公共查询能力，
// 使得同一份查询代码既能直连连接池也能运行在事务内
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
	q      querier

	// txCtx 非空表示当前实例运行在事务内，所有查询都复用该上下文
	txCtx context.Context
}

var _ stats.Store = (*Repository)(nil)

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
		q:      dbpool,
	}
}

// monthDatePattern 生成匹配某个月所有日期的 LIKE 模式，如 2025-11-%
func monthDatePattern(month, year int32) string {
	return fmt.Sprintf("%04d-%02d-%%", year, month)
}

// DB 暴露底层连接池，供迁移等需要直接操作数据库的场景使用
func (r *Repository) DB() *sql.DB {
	return r.dbpool
}

func (r *Repository) queryCtx() (context.Context, context.CancelFunc) {
	if r.txCtx != nil {
		return r.txCtx, func() {}
	}
	return context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}

// InTx 在单个事务中执行 fn，fn 收到的 Store 的全部操作都落在这个事务里。
// fn 返回错误时整体回滚。嵌套调用直接复用外层事务
func (r *Repository) InTx(fn func(stats.Store) error) error {
	if r.txCtx != nil {
		return fn(r)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	txRepo := &Repository{
		cfg:    r.cfg,
		dbpool: r.dbpool,
		q:      tx,
		txCtx:  ctx,
	}

	if err := fn(txRepo); err != nil {
		return err
	}

	return tx.Commit()
}
