package model

import "time"

// Member 会员表 — 对应 member
type Member struct {
	MemberID   int64     `gorm:"column:memberid;primaryKey;autoIncrement:false" json:"member_id"`
	FirstName  string    `gorm:"column:first_name;type:varchar(50);not null"     json:"first_name"`
	LastName   string    `gorm:"column:last_name;type:varchar(50);not null"      json:"last_name"`
	Gender     string    `gorm:"column:gender;type:char(1);not null"             json:"gender"` // M / F
	Phone      string    `gorm:"column:phone;type:varchar(20);not null"          json:"phone"`
	Email      string    `gorm:"column:email;type:varchar(100);not null;unique"  json:"email"`
	JoinDate   time.Time `gorm:"column:join_date;not null"                       json:"join_date"`
	ExpireDate time.Time `gorm:"column:expire_date;not null"                     json:"expire_date"`
	Status     string    `gorm:"column:status;type:varchar(20);not null"         json:"status"`
}

// TableName 指定表名
func (Member) TableName() string { return "member" }

// FullName 名 + 姓
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}
