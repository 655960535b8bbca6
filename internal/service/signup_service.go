package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/beluleung/ISOM5260-project/internal/dto"
	"github.com/beluleung/ISOM5260-project/internal/model"
	"github.com/beluleung/ISOM5260-project/internal/repository"
	apperrors "github.com/beluleung/ISOM5260-project/pkg/errors"
	"github.com/beluleung/ISOM5260-project/pkg/validator"
)

// SignUpService 活动报名业务接口
type SignUpService interface {
	// Enroll 以邮箱识别会员并报名指定活动
	Enroll(ctx context.Context, req *dto.EnrollRequest) (*dto.SignUpResponse, error)
}

type signUpService struct {
	repo   *repository.Repository
	events EventRecorder
	logger *zap.Logger
}

// NewSignUpService 创建 SignUpService 实例
func NewSignUpService(repo *repository.Repository, events EventRecorder, logger *zap.Logger) SignUpService {
	return &signUpService{repo: repo, events: events, logger: logger}
}

// ────────────────────── Enroll ──────────────────────

func (s *signUpService) Enroll(ctx context.Context, req *dto.EnrollRequest) (*dto.SignUpResponse, error) {
	if exceedsLen(req.Email, model.MaxEmailLen) || !validator.ValidateEmail(req.Email) {
		return nil, ErrInvalidEmail
	}
	if req.ActivityID <= 0 {
		return nil, ErrInvalidActivityID
	}

	var (
		member   *model.Member
		activity *model.Activity
		signup   *model.SignUp
	)
	err := s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		var err error
		member, err = tx.Member.GetByEmail(ctx, req.Email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return err
		}

		activity, err = tx.Activity.GetByID(ctx, req.ActivityID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrActivityNotFound
			}
			return err
		}

		id, err := tx.Sequence.NextID(ctx, repository.SignUpSequence)
		if err != nil {
			return err
		}

		signup = &model.SignUp{
			SignUpID:   id,
			MemberID:   member.MemberID,
			ActivityID: activity.ActivityID,
			SignupDate: time.Now(),
		}
		return tx.SignUp.Create(ctx, signup)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound), errors.Is(err, ErrActivityNotFound):
			return nil, err
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			// 查询之后活动被删除
			return nil, ErrActivityNotFound.Wrap(err)
		}
		s.logger.Error("活动报名失败",
			zap.String("email", req.Email),
			zap.Int64("activity_id", req.ActivityID),
			zap.Error(err),
		)
		return nil, apperrors.Persistence(err)
	}

	displayName := strings.TrimSpace(req.MemberName)
	if displayName == "" {
		displayName = member.FullName()
	}

	s.events.Record(EventSignUpCreated)
	return &dto.SignUpResponse{
		SignUpID:     signup.SignUpID,
		MemberID:     member.MemberID,
		MemberName:   displayName,
		ActivityID:   activity.ActivityID,
		ActivityName: activity.ActivityName,
		SignupDate:   signup.SignupDate.Format(model.DateTimeLayout),
		Message:      fmt.Sprintf("%s 已成功报名活动 %s", displayName, activity.ActivityName),
	}, nil
}
