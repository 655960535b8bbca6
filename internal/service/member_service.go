package service

import (
	"context"
	"errors"
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

// ── 会员模块业务错误 ──

var (
	ErrInvalidEmail   = apperrors.New(apperrors.KindValidation, "INVALID_EMAIL", "邮箱格式不正确")
	ErrInvalidPhone   = apperrors.New(apperrors.KindValidation, "INVALID_PHONE", validator.PhoneFormatsHint)
	ErrInvalidName    = apperrors.New(apperrors.KindValidation, "INVALID_NAME", "姓名不能为空且每项不超过 50 个字符")
	ErrInvalidGender  = apperrors.New(apperrors.KindValidation, "INVALID_GENDER", "性别只能为 M 或 F")
	ErrDuplicateEmail = apperrors.New(apperrors.KindConflict, "DUPLICATE_EMAIL", "该邮箱已注册")
	ErrMemberNotFound = apperrors.New(apperrors.KindNotFound, "MEMBER_NOT_FOUND", "会员不存在，请先注册")
)

// MemberService 会员业务接口
type MemberService interface {
	Register(ctx context.Context, req *dto.RegisterMemberRequest) (*dto.MemberResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.MemberResponse, error)
}

type memberService struct {
	repo   *repository.Repository
	events EventRecorder
	logger *zap.Logger
}

// NewMemberService 创建 MemberService 实例
func NewMemberService(repo *repository.Repository, events EventRecorder, logger *zap.Logger) MemberService {
	return &memberService{repo: repo, events: events, logger: logger}
}

// ────────────────────── Register ──────────────────────

func (s *memberService) Register(ctx context.Context, req *dto.RegisterMemberRequest) (*dto.MemberResponse, error) {
	// 1. 格式校验（不访问数据库）
	if exceedsLen(req.Email, model.MaxEmailLen) || !validator.ValidateEmail(req.Email) {
		return nil, ErrInvalidEmail
	}
	if exceedsLen(req.Phone, model.MaxPhoneLen) || !validator.ValidatePhone(req.Phone) {
		return nil, ErrInvalidPhone
	}
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if firstName == "" || lastName == "" ||
		exceedsLen(firstName, model.MaxPersonNameLen) || exceedsLen(lastName, model.MaxPersonNameLen) {
		return nil, ErrInvalidName
	}
	if !validator.ValidateGender(req.Gender) {
		return nil, ErrInvalidGender
	}

	// 2. 查重 + 分配主键 + 插入，同一事务
	var member *model.Member
	err := s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		count, err := tx.Member.CountByEmail(ctx, req.Email)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateEmail
		}

		id, err := tx.Sequence.NextID(ctx, repository.MemberSequence)
		if err != nil {
			return err
		}

		now := time.Now()
		member = &model.Member{
			MemberID:   id,
			FirstName:  firstName,
			LastName:   lastName,
			Gender:     req.Gender,
			Phone:      req.Phone,
			Email:      req.Email,
			JoinDate:   now,
			ExpireDate: now.Add(model.MembershipTerm),
			Status:     model.MemberStatusActive,
		}
		return tx.Member.Create(ctx, member)
	})
	if err != nil {
		// 并发注册同一邮箱时由唯一约束兜底
		if errors.Is(err, ErrDuplicateEmail) || errors.Is(err, gorm.ErrDuplicatedKey) {
			s.events.Record(EventMemberConflict)
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrDuplicateEmail.Wrap(err)
			}
			return nil, err
		}
		s.logger.Error("注册会员失败", zap.String("email", req.Email), zap.Error(err))
		return nil, apperrors.Persistence(err)
	}

	s.events.Record(EventMemberRegistered)
	s.logger.Info("会员注册成功", zap.Int64("member_id", member.MemberID))
	return toMemberResponse(member), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *memberService) GetByID(ctx context.Context, id int64) (*dto.MemberResponse, error) {
	member, err := s.repo.Member.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		s.logger.Error("查询会员失败", zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.Persistence(err)
	}
	return toMemberResponse(member), nil
}

// ── 内部辅助方法 ──

func toMemberResponse(m *model.Member) *dto.MemberResponse {
	return &dto.MemberResponse{
		ID:         m.MemberID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		FullName:   m.FullName(),
		Gender:     m.Gender,
		Phone:      m.Phone,
		Email:      m.Email,
		JoinDate:   m.JoinDate.Format(model.DateTimeLayout),
		ExpireDate: m.ExpireDate.Format(model.DateTimeLayout),
		Status:     m.Status,
	}
}
