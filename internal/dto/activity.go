package dto

import "github.com/shopspring/decimal"

// ── 活动模块 DTO ──

// ActivityRequest 创建 / 更新活动请求
type ActivityRequest struct {
	Name      string          `json:"activity_name" binding:"required,max=100"`
	Date      string          `json:"activity_date" binding:"required"` // YYYY-MM-DD
	StartTime string          `json:"start_time"    binding:"required"` // HH:MM
	EndTime   string          `json:"end_time"      binding:"required"` // HH:MM
	Location  string          `json:"location"      binding:"required,max=100"`
	Price     decimal.Decimal `json:"price"`
}

// ActivityResponse 活动信息响应
type ActivityResponse struct {
	ID         int64           `json:"activity_id"`
	Name       string          `json:"activity_name"`
	Date       string          `json:"activity_date"`
	StartTime  string          `json:"start_time"`
	EndTime    string          `json:"end_time"`
	Location   string          `json:"location"`
	Price      decimal.Decimal `json:"price"`
	Instructor string          `json:"instructor,omitempty"`
}

// ActivityOptionResponse 下拉选项
type ActivityOptionResponse struct {
	ID   int64  `json:"activity_id"`
	Name string `json:"activity_name"`
}

// HasSignupsResponse 删除前的引用检查结果
type HasSignupsResponse struct {
	ActivityID int64 `json:"activity_id"`
	HasSignups bool  `json:"has_signups"`
}
