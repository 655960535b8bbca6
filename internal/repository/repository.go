package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Member   MemberRepository
	Activity ActivityRepository
	SignUp   SignUpRepository
	Query    QueryRepository
	Sequence SequenceRepository
	Tx       Transactor
}

// Transactor 在同一数据库事务中执行一组仓储操作
// fn 返回错误时整体回滚，否则提交
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx *Repository) error) error
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB, opts ...QueryOption) *Repository {
	return bind(db, opts)
}

func bind(db *gorm.DB, opts []QueryOption) *Repository {
	return &Repository{
		Member:   NewMemberRepo(db),
		Activity: NewActivityRepo(db),
		SignUp:   NewSignUpRepo(db),
		Query:    NewQueryRepo(db, opts...),
		Sequence: NewSequenceRepo(db),
		Tx:       &gormTransactor{db: db, opts: opts},
	}
}

type gormTransactor struct {
	db   *gorm.DB
	opts []QueryOption
}

func (t *gormTransactor) WithinTx(ctx context.Context, fn func(tx *Repository) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(bind(tx, t.opts))
	})
}
