package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/beluleung/ISOM5260-project/internal/dto"
	"github.com/beluleung/ISOM5260-project/internal/model"
	"github.com/beluleung/ISOM5260-project/internal/repository"
	apperrors "github.com/beluleung/ISOM5260-project/pkg/errors"
	"github.com/beluleung/ISOM5260-project/pkg/sqlguard"
)

// ── 报表模块业务错误 ──

var (
	ErrQueryNotAllowed = apperrors.New(apperrors.KindAuthorization, "QUERY_NOT_ALLOWED", "只允许执行单条 SELECT 查询")
	ErrQueryTimeout    = apperrors.New(apperrors.KindPersistence, "QUERY_TIMEOUT", "查询执行超时")
)

// PostgreSQL SQLSTATE
const (
	sqlStateReadOnlyTransaction = "25006" // read_only_sql_transaction
	sqlStateInsufficientPriv    = "42501" // insufficient_privilege
	sqlStateQueryCanceled       = "57014" // query_canceled（statement_timeout）
)

// ReportService 报表与即席查询业务接口
//
// 报表与查询结果均不缓存，每次调用都直接访问数据库。
type ReportService interface {
	// SignupReport 报名报表，按报名时间升序
	SignupReport(ctx context.Context) ([]dto.SignUpReportRow, error)
	// RunReadOnlyQuery 校验后在只读事务中执行管理员提交的查询
	RunReadOnlyQuery(ctx context.Context, query string) (*model.QueryResult, error)
}

type reportService struct {
	repo   *repository.Repository
	events EventRecorder
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(repo *repository.Repository, events EventRecorder, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, events: events, logger: logger}
}

// ────────────────────── SignupReport ──────────────────────

func (s *reportService) SignupReport(ctx context.Context) ([]dto.SignUpReportRow, error) {
	rows, err := s.repo.SignUp.ListReport(ctx)
	if err != nil {
		s.logger.Error("查询报名报表失败", zap.Error(err))
		return nil, apperrors.Persistence(err)
	}

	result := make([]dto.SignUpReportRow, 0, len(rows))
	for _, r := range rows {
		result = append(result, dto.SignUpReportRow{
			MemberName:   r.MemberName,
			ActivityName: r.ActivityName,
			SignupDate:   r.SignupDate.Format(model.DateTimeLayout),
		})
	}
	return result, nil
}

// ────────────────────── RunReadOnlyQuery ──────────────────────

func (s *reportService) RunReadOnlyQuery(ctx context.Context, query string) (*model.QueryResult, error) {
	// 文本校验在访问数据库之前完成
	statement, err := sqlguard.Normalize(query)
	if err != nil {
		s.events.Record(EventQueryRejected)
		s.logger.Warn("即席查询被拒绝", zap.String("reason", err.Error()))
		return nil, ErrQueryNotAllowed.Wrap(err)
	}

	result, err := s.repo.Query.RunReadOnly(ctx, statement)
	if err != nil {
		// 绕过文本校验的写操作由只读事务 / 只读角色拦截
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case sqlStateReadOnlyTransaction, sqlStateInsufficientPriv:
				s.events.Record(EventQueryRejected)
				s.logger.Warn("即席查询被数据库拒绝", zap.String("query", statement), zap.String("sqlstate", pgErr.Code))
				return nil, ErrQueryNotAllowed.Wrap(err)
			case sqlStateQueryCanceled:
				s.logger.Warn("即席查询超时", zap.String("query", statement))
				return nil, ErrQueryTimeout.Wrap(err)
			}
		}
		s.logger.Error("即席查询执行失败", zap.String("query", statement), zap.Error(err))
		return nil, apperrors.Persistence(err)
	}

	s.events.Record(EventQueryExecuted)
	return result, nil
}
