package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Sequence 主键序列及其所属表
// 字段不导出：序列名与表名会拼接进 SQL，只能使用下方预定义的值
type Sequence struct {
	name   string
	table  string
	column string
}

// Name 序列名
func (s Sequence) Name() string { return s.name }

var (
	MemberSequence   = Sequence{name: "member_seq", table: "member", column: "memberid"}
	ActivitySequence = Sequence{name: "activity_seq", table: "activity", column: "activityid"}
	SignUpSequence   = Sequence{name: "signups_seq", table: "signup", column: "signupid"}
)

// SequenceRepository 主键分配
type SequenceRepository interface {
	// NextID 返回一个大于表中现有最大主键的新主键。
	// 序列落后于表（如手工导入数据后）时先把序列推进到 max+1。
	// 应在与后续 INSERT 相同的事务中调用。
	NextID(ctx context.Context, seq Sequence) (int64, error)
}

type sequenceRepo struct {
	db *gorm.DB
}

// NewSequenceRepo 创建 SequenceRepository 实例
func NewSequenceRepo(db *gorm.DB) SequenceRepository {
	return &sequenceRepo{db: db}
}

func (r *sequenceRepo) NextID(ctx context.Context, seq Sequence) (int64, error) {
	db := r.db.WithContext(ctx)

	var maxID int64
	if err := db.Raw(fmt.Sprintf("SELECT COALESCE(MAX(%s), 0) FROM %s", seq.column, seq.table)).
		Scan(&maxID).Error; err != nil {
		return 0, fmt.Errorf("查询 %s 最大主键失败: %w", seq.table, err)
	}

	var next int64
	if err := db.Raw(fmt.Sprintf("SELECT nextval('%s')", seq.name)).Scan(&next).Error; err != nil {
		return 0, fmt.Errorf("读取序列 %s 失败: %w", seq.name, err)
	}
	if next > maxID {
		return next, nil
	}

	// 序列落后：重置为 max+1 并直接使用该值，下一次 nextval 返回 max+2
	var id int64
	if err := db.Raw(fmt.Sprintf("SELECT setval('%s', ?)", seq.name), maxID+1).Scan(&id).Error; err != nil {
		return 0, fmt.Errorf("重置序列 %s 失败: %w", seq.name, err)
	}
	return id, nil
}
