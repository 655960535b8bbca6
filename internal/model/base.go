package model

import "time"

// ── 通用常量 ──

// 会员性别
const (
	GenderMale   = "M"
	GenderFemale = "F"
)

// 会员状态
const (
	MemberStatusActive  = "active"
	MemberStatusExpired = "expired"
)

// MembershipTerm 会员有效期：入会日起 365 天
const MembershipTerm = 365 * 24 * time.Hour

// 展示格式
const (
	DateLayout     = "2006-01-02"
	ClockLayout    = "15:04"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// 字段长度上限（字符数），与表结构的 varchar 长度一致
const (
	MaxPersonNameLen   = 50
	MaxPhoneLen        = 20
	MaxEmailLen        = 100
	MaxActivityTextLen = 100
)

// 价格列为 numeric(10,2)
const (
	PriceScale    = 2
	MaxPriceUnits = 99999999 // 整数部分上限
)
