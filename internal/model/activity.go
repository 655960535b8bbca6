package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Activity 活动表 — 对应 activity
type Activity struct {
	ActivityID   int64           `gorm:"column:activityid;primaryKey;autoIncrement:false" json:"activity_id"`
	ActivityName string          `gorm:"column:activityname;type:varchar(100);not null"   json:"activity_name"`
	ActivityDate time.Time       `gorm:"column:activity_date;type:date;not null"          json:"activity_date"`
	StartTime    time.Time       `gorm:"column:start_time;not null"                       json:"start_time"`
	EndTime      time.Time       `gorm:"column:end_time;not null"                         json:"end_time"`
	Location     string          `gorm:"column:location;type:varchar(100);not null"       json:"location"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"         json:"price"`
}

// TableName 指定表名
func (Activity) TableName() string { return "activity" }

// ActivityView 活动浏览视图（Activity ⋈ InstructorActivity ⋈ Instructor）
type ActivityView struct {
	ActivityID   int64           `gorm:"column:activityid"`
	ActivityName string          `gorm:"column:activityname"`
	ActivityDate time.Time       `gorm:"column:activity_date"`
	StartTime    time.Time       `gorm:"column:start_time"`
	EndTime      time.Time       `gorm:"column:end_time"`
	Location     string          `gorm:"column:location"`
	Price        decimal.Decimal `gorm:"column:price"`
	Instructor   string          `gorm:"column:instructor"`
}

// ActivityOption 下拉选择用的 (id, name)
type ActivityOption struct {
	ActivityID   int64  `gorm:"column:activityid"`
	ActivityName string `gorm:"column:activityname"`
}
