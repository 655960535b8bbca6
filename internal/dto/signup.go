package dto

// ── 报名模块 DTO ──

// EnrollRequest 活动报名请求
// 会员以邮箱识别，MemberName 仅用于确认信息展示
type EnrollRequest struct {
	MemberName string `json:"member_name" binding:"omitempty,max=100"`
	Email      string `json:"email"       binding:"required,max=100"`
	ActivityID int64  `json:"activity_id" binding:"required"`
}

// SignUpResponse 报名成功响应
type SignUpResponse struct {
	SignUpID     int64  `json:"signup_id"`
	MemberID     int64  `json:"member_id"`
	MemberName   string `json:"member_name"`
	ActivityID   int64  `json:"activity_id"`
	ActivityName string `json:"activity_name"`
	SignupDate   string `json:"signup_date"`
	Message      string `json:"message"`
}
