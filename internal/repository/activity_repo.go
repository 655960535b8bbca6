package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/beluleung/ISOM5260-project/internal/model"
)

// ActivityRepository 活动数据访问接口
type ActivityRepository interface {
	Create(ctx context.Context, activity *model.Activity) error
	GetByID(ctx context.Context, id int64) (*model.Activity, error)
	// Update 按主键整体更新，返回受影响行数
	Update(ctx context.Context, activity *model.Activity) (int64, error)
	// Delete 按主键删除，返回受影响行数
	Delete(ctx context.Context, id int64) (int64, error)
	ListViews(ctx context.Context) ([]model.ActivityView, error)
	ListOptions(ctx context.Context) ([]model.ActivityOption, error)
}

type activityRepo struct {
	db *gorm.DB
}

// NewActivityRepo 创建 ActivityRepository 实例
func NewActivityRepo(db *gorm.DB) ActivityRepository {
	return &activityRepo{db: db}
}

func (r *activityRepo) Create(ctx context.Context, activity *model.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepo) GetByID(ctx context.Context, id int64) (*model.Activity, error) {
	var activity model.Activity
	err := r.db.WithContext(ctx).
		Where("activityid = ?", id).
		First(&activity).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepo) Update(ctx context.Context, activity *model.Activity) (int64, error) {
	// 使用 map 以便 price = 0 等零值也被写入
	result := r.db.WithContext(ctx).
		Model(&model.Activity{}).
		Where("activityid = ?", activity.ActivityID).
		Updates(map[string]interface{}{
			"activityname":  activity.ActivityName,
			"activity_date": activity.ActivityDate,
			"start_time":    activity.StartTime,
			"end_time":      activity.EndTime,
			"location":      activity.Location,
			"price":         activity.Price,
		})
	return result.RowsAffected, result.Error
}

func (r *activityRepo) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("activityid = ?", id).
		Delete(&model.Activity{})
	return result.RowsAffected, result.Error
}

func (r *activityRepo) ListViews(ctx context.Context) ([]model.ActivityView, error) {
	var views []model.ActivityView
	err := r.db.WithContext(ctx).Raw(`
		SELECT a.activityid, a.activityname, a.activity_date, a.start_time, a.end_time,
		       a.location, a.price,
		       i.first_name || ' ' || i.last_name AS instructor
		FROM activity a
		JOIN instructoractivity ia ON a.activityid = ia.activityid
		JOIN instructor i ON ia.instructorid = i.instructorid
		ORDER BY a.activity_date ASC, a.activityid ASC, i.instructorid ASC`).
		Scan(&views).Error
	return views, err
}

func (r *activityRepo) ListOptions(ctx context.Context) ([]model.ActivityOption, error) {
	var options []model.ActivityOption
	err := r.db.WithContext(ctx).
		Model(&model.Activity{}).
		Select("activityid, activityname").
		Order("activityname ASC, activityid ASC").
		Scan(&options).Error
	return options, err
}
