package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/beluleung/ISOM5260-project/internal/model"
	"github.com/beluleung/ISOM5260-project/internal/repository"
	apperrors "github.com/beluleung/ISOM5260-project/pkg/errors"
)

// ── 导出模块业务错误 ──

var (
	ErrQueryEmpty         = apperrors.New(apperrors.KindNotFound, "QUERY_EMPTY", "查询结果为空，无可导出的数据")
	ErrUnsupportedFormat  = apperrors.New(apperrors.KindValidation, "UNSUPPORTED_FORMAT", "导出格式只支持 csv 或 xlsx")
	ErrExportGenerateFail = apperrors.New(apperrors.KindPersistence, "EXPORT_FAILED", "生成导出文件失败")
)

const (
	queryResultSheetName   = "查询结果"
	calendarProductID      = "-//Recreation Club//Activities//ZH"
	calendarFloatingLayout = "20060102T150405"
)

// 导出格式
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ExportFile 导出结果，由 Handler 层设置响应头后写入 Response
type ExportFile struct {
	Data        *bytes.Buffer
	Filename    string
	ContentType string
}

// ExportService 导出业务接口
//
// 设计说明：
//   - 即席查询结果导出为 CSV 或 Excel (.xlsx)，查询经由 ReportService，校验规则一致
//   - 结果为空时不生成文件
//   - 活动列表导出为 iCalendar，供日历客户端订阅
type ExportService interface {
	ExportQuery(ctx context.Context, query, format string) (*ExportFile, error)
	ExportActivitiesCalendar(ctx context.Context) (*ExportFile, error)
}

type exportService struct {
	repo   *repository.Repository
	report ReportService
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, report ReportService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, report: report, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportQuery — 即席查询结果导出
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportQuery(ctx context.Context, query, format string) (*ExportFile, error) {
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatXLSX {
		return nil, ErrUnsupportedFormat
	}

	result, err := s.report.RunReadOnlyQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	if result.Empty() {
		return nil, ErrQueryEmpty
	}

	stamp := time.Now().Format("20060102_150405")
	if format == FormatXLSX {
		buf, err := writeQueryXLSX(result)
		if err != nil {
			s.logger.Error("写入 Excel 失败", zap.Error(err))
			return nil, ErrExportGenerateFail.Wrap(err)
		}
		return &ExportFile{
			Data:        buf,
			Filename:    fmt.Sprintf("query_%s.xlsx", stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		}, nil
	}

	buf, err := writeQueryCSV(result)
	if err != nil {
		s.logger.Error("写入 CSV 失败", zap.Error(err))
		return nil, ErrExportGenerateFail.Wrap(err)
	}
	return &ExportFile{
		Data:        buf,
		Filename:    fmt.Sprintf("query_%s.csv", stamp),
		ContentType: "text/csv; charset=utf-8",
	}, nil
}

func writeQueryCSV(result *model.QueryResult) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	if err := WriteQueryCSV(buf, result); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteQueryCSV 以 CSV 写出查询结果（首行为列名），CLI 与导出共用同一格式
func WriteQueryCSV(out io.Writer, result *model.QueryResult) error {
	w := csv.NewWriter(out)

	if err := w.Write(result.Columns); err != nil {
		return err
	}
	record := make([]string, len(result.Columns))
	for _, row := range result.Rows {
		for i, v := range row {
			record[i] = cellText(v)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func writeQueryXLSX(result *model.QueryResult) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(queryResultSheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	// 表头
	header := make([]interface{}, len(result.Columns))
	for i, c := range result.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(queryResultSheetName, "A1", &header); err != nil {
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(result.Columns), 1)
	if err := f.SetCellStyle(queryResultSheetName, "A1", lastHeader, headerStyle); err != nil {
		return nil, err
	}

	// 数据行
	for r, row := range result.Rows {
		values := make([]interface{}, len(row))
		for i, v := range row {
			if t, ok := v.(time.Time); ok {
				values[i] = t.Format(model.DateTimeLayout)
				continue
			}
			values[i] = v
		}
		start, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(queryResultSheetName, start, &values); err != nil {
			return nil, err
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// cellText 单元格的文本形式；NULL 输出为空串
func cellText(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		return val.Format(model.DateTimeLayout)
	default:
		return fmt.Sprint(val)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportActivitiesCalendar — 活动日历
// ═══════════════════════════════════════════════════════════
//
// 每个活动一个 VEVENT；同一活动有多名教练时合并到 DESCRIPTION。
// 活动时间以不带时区的本地时间存储，按浮动时间输出。

func (s *exportService) ExportActivitiesCalendar(ctx context.Context) (*ExportFile, error) {
	views, err := s.repo.Activity.ListViews(ctx)
	if err != nil {
		s.logger.Error("查询活动列表失败", zap.Error(err))
		return nil, apperrors.Persistence(err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetXWRCalName("康乐会活动")

	now := time.Now().UTC()
	events := make(map[int64]*ics.VEvent)
	instructors := make(map[int64][]string)
	for i := range views {
		v := &views[i]
		instructors[v.ActivityID] = append(instructors[v.ActivityID], v.Instructor)
		if _, ok := events[v.ActivityID]; ok {
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("activity-%d@recreation-club", v.ActivityID))
		event.SetDtStampTime(now)
		event.SetProperty(ics.ComponentPropertyDtStart, v.StartTime.Format(calendarFloatingLayout))
		event.SetProperty(ics.ComponentPropertyDtEnd, v.EndTime.Format(calendarFloatingLayout))
		event.SetSummary(v.ActivityName)
		event.SetLocation(v.Location)
		events[v.ActivityID] = event
	}
	for id, event := range events {
		event.SetDescription("教练：" + strings.Join(instructors[id], ", "))
	}

	return &ExportFile{
		Data:        bytes.NewBufferString(cal.Serialize()),
		Filename:    "activities.ics",
		ContentType: "text/calendar; charset=utf-8",
	}, nil
}
