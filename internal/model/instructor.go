package model

// Instructor 教练表 — 对应 instructor（本系统只读）
type Instructor struct {
	InstructorID int64  `gorm:"column:instructorid;primaryKey;autoIncrement:false" json:"instructor_id"`
	FirstName    string `gorm:"column:first_name;type:varchar(50);not null"        json:"first_name"`
	LastName     string `gorm:"column:last_name;type:varchar(50);not null"         json:"last_name"`
	Email        string `gorm:"column:email;type:varchar(100)"                     json:"email,omitempty"`
	Phone        string `gorm:"column:phone;type:varchar(20)"                      json:"phone,omitempty"`
}

// TableName 指定表名
func (Instructor) TableName() string { return "instructor" }

// InstructorActivity 教练-活动关联表 — 对应 instructoractivity（本系统只读）
type InstructorActivity struct {
	InstructorID int64 `gorm:"column:instructorid;primaryKey;autoIncrement:false" json:"instructor_id"`
	ActivityID   int64 `gorm:"column:activityid;primaryKey;autoIncrement:false"   json:"activity_id"`
}

// TableName 指定表名
func (InstructorActivity) TableName() string { return "instructoractivity" }
