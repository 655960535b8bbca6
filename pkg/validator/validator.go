// Package validator 提供会员资料的格式校验（纯函数，不访问网络或数据库）。
package validator

import "regexp"

// emailPattern 本地部分允许字母、数字和 _.+-；域名部分允许字母、数字和 -；
// 最后一个字面量点号之后允许字母、数字、- 和 .
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// phonePattern 可选前缀 "(NNN) " 或 "NNN" + 分隔符，后接 NNN[-. ]NNNN
var phonePattern = regexp.MustCompile(`^(\(\d{3}\) ?|\d{3}[-. ]?)?\d{3}[-. ]?\d{4}$`)

// PhoneFormatsHint 电话格式校验失败时返回给用户的可接受格式说明
const PhoneFormatsHint = "电话号码格式无效，仅支持以下格式：123-4567、555-1234、555-123-4567、(555) 123-4567、1234567890（纯数字）"

// ValidateEmail 校验邮箱格式 local-part@domain.tld
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidatePhone 校验电话号码格式，不做任何归一化
func ValidatePhone(s string) bool {
	return phonePattern.MatchString(s)
}

// ValidateGender 性别仅允许 M / F
func ValidateGender(s string) bool {
	return s == "M" || s == "F"
}
