package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/beluleung/ISOM5260-project/internal/model"
)

// SignUpRepository 报名数据访问接口
type SignUpRepository interface {
	Create(ctx context.Context, signup *model.SignUp) error
	CountByActivity(ctx context.Context, activityID int64) (int64, error)
	ListReport(ctx context.Context) ([]model.SignUpReportRow, error)
}

type signUpRepo struct {
	db *gorm.DB
}

// NewSignUpRepo 创建 SignUpRepository 实例
func NewSignUpRepo(db *gorm.DB) SignUpRepository {
	return &signUpRepo{db: db}
}

func (r *signUpRepo) Create(ctx context.Context, signup *model.SignUp) error {
	return r.db.WithContext(ctx).Create(signup).Error
}

func (r *signUpRepo) CountByActivity(ctx context.Context, activityID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SignUp{}).
		Where("activityid = ?", activityID).
		Count(&count).Error
	return count, err
}

func (r *signUpRepo) ListReport(ctx context.Context) ([]model.SignUpReportRow, error) {
	var rows []model.SignUpReportRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT m.first_name || ' ' || m.last_name AS member_name,
		       a.activityname,
		       s.signup_date
		FROM signup s
		JOIN member m ON s.memberid = m.memberid
		JOIN activity a ON s.activityid = a.activityid
		ORDER BY s.signup_date ASC, s.signupid ASC`).
		Scan(&rows).Error
	return rows, err
}
