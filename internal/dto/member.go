package dto

// ── 会员模块 DTO ──

// RegisterMemberRequest 会员注册请求
// 邮箱、电话、性别的格式校验在 Service 层完成
type RegisterMemberRequest struct {
	FirstName string `json:"first_name" binding:"required,max=50"`
	LastName  string `json:"last_name"  binding:"required,max=50"`
	Gender    string `json:"gender"     binding:"required"` // M / F
	Phone     string `json:"phone"      binding:"required,max=20"`
	Email     string `json:"email"      binding:"required,max=100"`
}

// MemberResponse 会员信息响应
type MemberResponse struct {
	ID         int64  `json:"member_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	FullName   string `json:"full_name"`
	Gender     string `json:"gender"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	JoinDate   string `json:"join_date"`
	ExpireDate string `json:"expire_date"`
	Status     string `json:"status"`
}
