package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/beluleung/ISOM5260-project/internal/dto"
	"github.com/beluleung/ISOM5260-project/internal/model"
	"github.com/beluleung/ISOM5260-project/internal/repository"
	apperrors "github.com/beluleung/ISOM5260-project/pkg/errors"
)

// ── 活动模块业务错误 ──

var (
	ErrActivityNotFound   = apperrors.New(apperrors.KindNotFound, "ACTIVITY_NOT_FOUND", "活动不存在")
	ErrActivityHasSignups = apperrors.New(apperrors.KindConflict, "ACTIVITY_HAS_SIGNUPS", "该活动已有报名记录，无法删除")
	ErrInvalidActivity    = apperrors.New(apperrors.KindValidation, "INVALID_ACTIVITY", "活动名称和地点不能为空且不超过 100 个字符")
	ErrInvalidActivityID  = apperrors.New(apperrors.KindValidation, "INVALID_ACTIVITY_ID", "活动 ID 必须为正整数")
	ErrInvalidDate        = apperrors.New(apperrors.KindValidation, "INVALID_DATE", "日期格式应为 YYYY-MM-DD")
	ErrInvalidTime        = apperrors.New(apperrors.KindValidation, "INVALID_TIME", "时间格式应为 HH:MM")
	ErrInvalidTimeRange   = apperrors.New(apperrors.KindValidation, "INVALID_TIME_RANGE", "结束时间必须晚于开始时间")
	ErrInvalidPrice       = apperrors.New(apperrors.KindValidation, "INVALID_PRICE", "价格须在 0 至 99999999.99 之间且最多两位小数")
)

// ActivityService 活动业务接口
type ActivityService interface {
	// List 活动浏览列表（含教练），按活动日期升序
	List(ctx context.Context) ([]dto.ActivityResponse, error)
	// ListOptions 供选择用的 (id, 名称)，按名称排序
	ListOptions(ctx context.Context) ([]dto.ActivityOptionResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.ActivityResponse, error)
	Create(ctx context.Context, req *dto.ActivityRequest) (*dto.ActivityResponse, error)
	Update(ctx context.Context, id int64, req *dto.ActivityRequest) (*dto.ActivityResponse, error)
	Delete(ctx context.Context, id int64) error
	// HasChildRecords 是否存在引用该活动的报名；查询失败时按"存在"处理
	HasChildRecords(ctx context.Context, id int64) bool
}

type activityService struct {
	repo   *repository.Repository
	events EventRecorder
	logger *zap.Logger
}

// NewActivityService 创建 ActivityService 实例
func NewActivityService(repo *repository.Repository, events EventRecorder, logger *zap.Logger) ActivityService {
	return &activityService{repo: repo, events: events, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *activityService) List(ctx context.Context) ([]dto.ActivityResponse, error) {
	views, err := s.repo.Activity.ListViews(ctx)
	if err != nil {
		s.logger.Error("查询活动列表失败", zap.Error(err))
		return nil, apperrors.Persistence(err)
	}

	result := make([]dto.ActivityResponse, 0, len(views))
	for i := range views {
		v := &views[i]
		result = append(result, dto.ActivityResponse{
			ID:         v.ActivityID,
			Name:       v.ActivityName,
			Date:       v.ActivityDate.Format(model.DateLayout),
			StartTime:  v.StartTime.Format(model.ClockLayout),
			EndTime:    v.EndTime.Format(model.ClockLayout),
			Location:   v.Location,
			Price:      v.Price,
			Instructor: v.Instructor,
		})
	}
	return result, nil
}

// ────────────────────── ListOptions ──────────────────────

func (s *activityService) ListOptions(ctx context.Context) ([]dto.ActivityOptionResponse, error) {
	options, err := s.repo.Activity.ListOptions(ctx)
	if err != nil {
		s.logger.Error("查询活动选项失败", zap.Error(err))
		return nil, apperrors.Persistence(err)
	}

	result := make([]dto.ActivityOptionResponse, 0, len(options))
	for _, o := range options {
		result = append(result, dto.ActivityOptionResponse{ID: o.ActivityID, Name: o.ActivityName})
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *activityService) GetByID(ctx context.Context, id int64) (*dto.ActivityResponse, error) {
	if id <= 0 {
		return nil, ErrInvalidActivityID
	}
	activity, err := s.repo.Activity.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		s.logger.Error("查询活动失败", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.Persistence(err)
	}
	return toActivityResponse(activity), nil
}

// ────────────────────── Create ──────────────────────

func (s *activityService) Create(ctx context.Context, req *dto.ActivityRequest) (*dto.ActivityResponse, error) {
	activity, err := parseActivityRequest(req)
	if err != nil {
		return nil, err
	}

	err = s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		id, err := tx.Sequence.NextID(ctx, repository.ActivitySequence)
		if err != nil {
			return err
		}
		activity.ActivityID = id
		return tx.Activity.Create(ctx, activity)
	})
	if err != nil {
		s.logger.Error("创建活动失败", zap.String("name", activity.ActivityName), zap.Error(err))
		return nil, apperrors.Persistence(err)
	}

	s.events.Record(EventActivityCreated)
	s.logger.Info("活动已创建", zap.Int64("activity_id", activity.ActivityID))
	return toActivityResponse(activity), nil
}

// ────────────────────── Update ──────────────────────

func (s *activityService) Update(ctx context.Context, id int64, req *dto.ActivityRequest) (*dto.ActivityResponse, error) {
	if id <= 0 {
		return nil, ErrInvalidActivityID
	}
	activity, err := parseActivityRequest(req)
	if err != nil {
		return nil, err
	}
	activity.ActivityID = id

	affected, err := s.repo.Activity.Update(ctx, activity)
	if err != nil {
		s.logger.Error("更新活动失败", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.Persistence(err)
	}
	if affected == 0 {
		return nil, ErrActivityNotFound
	}

	s.events.Record(EventActivityUpdated)
	return toActivityResponse(activity), nil
}

// ────────────────────── Delete ──────────────────────

func (s *activityService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidActivityID
	}
	if s.HasChildRecords(ctx, id) {
		s.events.Record(EventActivityDeleteDeny)
		return ErrActivityHasSignups
	}

	affected, err := s.repo.Activity.Delete(ctx, id)
	if err != nil {
		// 检查之后新增的报名由外键兜底
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			s.events.Record(EventActivityDeleteDeny)
			return ErrActivityHasSignups.Wrap(err)
		}
		s.logger.Error("删除活动失败", zap.Int64("id", id), zap.Error(err))
		return apperrors.Persistence(err)
	}
	if affected == 0 {
		return ErrActivityNotFound
	}

	s.events.Record(EventActivityDeleted)
	s.logger.Info("活动已删除", zap.Int64("activity_id", id))
	return nil
}

// ────────────────────── HasChildRecords ──────────────────────

func (s *activityService) HasChildRecords(ctx context.Context, id int64) bool {
	count, err := s.repo.SignUp.CountByActivity(ctx, id)
	if err != nil {
		s.logger.Warn("检查活动报名记录失败，按存在报名处理", zap.Int64("id", id), zap.Error(err))
		return true
	}
	return count > 0
}

// ── 内部辅助方法 ──

// parseActivityRequest 校验并转换请求；开始 / 结束时间挂在活动日期上
func parseActivityRequest(req *dto.ActivityRequest) (*model.Activity, error) {
	name := strings.TrimSpace(req.Name)
	location := strings.TrimSpace(req.Location)
	if name == "" || location == "" ||
		exceedsLen(name, model.MaxActivityTextLen) || exceedsLen(location, model.MaxActivityTextLen) {
		return nil, ErrInvalidActivity
	}

	date, err := time.Parse(model.DateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return nil, ErrInvalidDate
	}
	start, err := time.Parse(model.ClockLayout, strings.TrimSpace(req.StartTime))
	if err != nil {
		return nil, ErrInvalidTime
	}
	end, err := time.Parse(model.ClockLayout, strings.TrimSpace(req.EndTime))
	if err != nil {
		return nil, ErrInvalidTime
	}

	startAt := date.Add(time.Duration(start.Hour())*time.Hour + time.Duration(start.Minute())*time.Minute)
	endAt := date.Add(time.Duration(end.Hour())*time.Hour + time.Duration(end.Minute())*time.Minute)
	if !endAt.After(startAt) {
		return nil, ErrInvalidTimeRange
	}
	if !validPrice(req.Price) {
		return nil, ErrInvalidPrice
	}

	return &model.Activity{
		ActivityName: name,
		ActivityDate: date,
		StartTime:    startAt,
		EndTime:      endAt,
		Location:     location,
		Price:        req.Price,
	}, nil
}

// validPrice 非负、最多两位小数且整数部分不超出 numeric(10,2)
// 不做四舍五入，避免入库值与响应值不一致
func validPrice(p decimal.Decimal) bool {
	if p.IsNegative() {
		return false
	}
	if !p.Equal(p.Truncate(model.PriceScale)) {
		return false
	}
	return p.LessThan(decimal.NewFromInt(model.MaxPriceUnits + 1))
}

func toActivityResponse(a *model.Activity) *dto.ActivityResponse {
	return &dto.ActivityResponse{
		ID:        a.ActivityID,
		Name:      a.ActivityName,
		Date:      a.ActivityDate.Format(model.DateLayout),
		StartTime: a.StartTime.Format(model.ClockLayout),
		EndTime:   a.EndTime.Format(model.ClockLayout),
		Location:  a.Location,
		Price:     a.Price,
	}
}
