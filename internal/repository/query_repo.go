package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/beluleung/ISOM5260-project/internal/model"
)

// QueryRepository 管理员即席只读查询
type QueryRepository interface {
	// RunReadOnly 在只读事务中执行 statement，调用方负责事先做文本校验
	RunReadOnly(ctx context.Context, statement string) (*model.QueryResult, error)
}

// QueryOption 即席查询执行选项
type QueryOption func(*queryRepo)

// WithStatementTimeout 单条即席查询的最长执行时间
func WithStatementTimeout(d time.Duration) QueryOption {
	return func(r *queryRepo) { r.timeout = d }
}

// WithReadOnlyRole 执行前 SET LOCAL ROLE 到只读角色；role 需已通过配置校验
func WithReadOnlyRole(role string) QueryOption {
	return func(r *queryRepo) { r.role = role }
}

const defaultStatementTimeout = 5 * time.Second

type queryRepo struct {
	db      *gorm.DB
	timeout time.Duration
	role    string
}

// NewQueryRepo 创建 QueryRepository 实例
func NewQueryRepo(db *gorm.DB, opts ...QueryOption) QueryRepository {
	r := &queryRepo{db: db, timeout: defaultStatementTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *queryRepo) RunReadOnly(ctx context.Context, statement string) (*model.QueryResult, error) {
	result := &model.QueryResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(fmt.Sprintf("SET LOCAL statement_timeout = %d", r.timeout.Milliseconds())).Error; err != nil {
			return err
		}
		if r.role != "" {
			if err := tx.Exec("SET LOCAL ROLE " + r.role).Error; err != nil {
				return err
			}
		}

		rows, err := tx.Raw(statement).Rows()
		if err != nil {
			return err
		}
		defer rows.Close()

		columns, err := rows.Columns()
		if err != nil {
			return err
		}
		result.Columns = columns
		result.Rows = make([][]interface{}, 0)

		for rows.Next() {
			values := make([]interface{}, len(columns))
			ptrs := make([]interface{}, len(columns))
			for i := range values {
				ptrs[i] = &values[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				return err
			}
			for i, v := range values {
				if b, ok := v.([]byte); ok {
					values[i] = string(b)
				}
			}
			result.Rows = append(result.Rows, values)
		}
		return rows.Err()
	}, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}

	return result, nil
}
