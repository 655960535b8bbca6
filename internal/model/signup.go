package model

import "time"

// SignUp 活动报名表 — 对应 signup
type SignUp struct {
	SignUpID   int64     `gorm:"column:signupid;primaryKey;autoIncrement:false" json:"signup_id"`
	MemberID   int64     `gorm:"column:memberid;not null;index"                 json:"member_id"`
	ActivityID int64     `gorm:"column:activityid;not null;index"               json:"activity_id"`
	SignupDate time.Time `gorm:"column:signup_date;not null"                    json:"signup_date"`
}

// TableName 指定表名
func (SignUp) TableName() string { return "signup" }

// SignUpReportRow 报名报表行
type SignUpReportRow struct {
	MemberName   string    `gorm:"column:member_name"`
	ActivityName string    `gorm:"column:activityname"`
	SignupDate   time.Time `gorm:"column:signup_date"`
}
