package service

import (
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/beluleung/ISOM5260-project/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Member   MemberService
	Activity ActivityService
	SignUp   SignUpService
	Report   ReportService
	Export   ExportService
}

// ── 业务事件 ──

// 业务事件名，用于指标计数
const (
	EventMemberRegistered   = "member_registered"
	EventMemberConflict     = "member_conflict"
	EventSignUpCreated      = "signup_created"
	EventActivityCreated    = "activity_created"
	EventActivityUpdated    = "activity_updated"
	EventActivityDeleted    = "activity_deleted"
	EventActivityDeleteDeny = "activity_delete_refused"
	EventQueryExecuted      = "query_executed"
	EventQueryRejected      = "query_rejected"
)

// EventRecorder 业务事件计数器
type EventRecorder interface {
	Record(event string)
}

type nopRecorder struct{}

func (nopRecorder) Record(string) {}

// NewService 创建 Service 聚合；events 为 nil 时不计数
func NewService(
	repo *repository.Repository,
	events EventRecorder,
	logger *zap.Logger,
) *Service {
	if events == nil {
		events = nopRecorder{}
	}
	report := NewReportService(repo, events, logger)
	return &Service{
		Member:   NewMemberService(repo, events, logger),
		Activity: NewActivityService(repo, events, logger),
		SignUp:   NewSignUpService(repo, events, logger),
		Report:   report,
		Export:   NewExportService(repo, report, logger),
	}
}

// exceedsLen 按字符数判断是否超过列长度
func exceedsLen(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}
