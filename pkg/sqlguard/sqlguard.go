// Package sqlguard 对管理员即席查询做文本层面的只读校验。
//
// 这只是第一道闸门：语句随后仍在只读事务中执行，
// 数据库本身会拒绝任何写操作。
package sqlguard

import (
	"errors"
	"strings"
	"unicode"
)

var (
	ErrEmptyStatement     = errors.New("查询语句为空")
	ErrNotSelect          = errors.New("仅允许 SELECT 查询")
	ErrMultipleStatements = errors.New("不允许一次提交多条语句")
	ErrUnterminated       = errors.New("查询语句中存在未闭合的引号或注释")
)

// Normalize 校验 query 为单条 SELECT 语句，返回去掉首尾空白、
// 前导注释与末尾分号后的语句文本
func Normalize(query string) (string, error) {
	body := skipSpaceAndComments(query)
	if body == "" {
		return "", ErrEmptyStatement
	}

	if !strings.EqualFold(leadingKeyword(body), "select") {
		return "", ErrNotSelect
	}

	end, err := statementEnd(body)
	if err != nil {
		return "", err
	}
	if end < len(body) {
		// 分号之后只允许空白、注释或更多分号
		rest := body[end:]
		for {
			rest = skipSpaceAndComments(strings.TrimLeft(rest, ";"))
			if rest == "" || rest[0] != ';' {
				break
			}
		}
		if rest != "" {
			return "", ErrMultipleStatements
		}
	}

	return strings.TrimRightFunc(body[:end], unicode.IsSpace), nil
}

// CheckReadOnly 仅返回校验结果
func CheckReadOnly(query string) error {
	_, err := Normalize(query)
	return err
}

// skipSpaceAndComments 跳过前导空白、-- 行注释与 /* */ 块注释
func skipSpaceAndComments(s string) string {
	for {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		switch {
		case strings.HasPrefix(s, "--"):
			idx := strings.IndexByte(s, '\n')
			if idx < 0 {
				return ""
			}
			s = s[idx+1:]
		case strings.HasPrefix(s, "/*"):
			end := blockCommentEnd(s)
			if end < 0 {
				return ""
			}
			s = s[end:]
		default:
			return s
		}
	}
}

func leadingKeyword(s string) string {
	i := 0
	for i < len(s) && (s[i] == '_' || isASCIILetter(s[i])) {
		i++
	}
	return s[:i]
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// statementEnd 返回第一个位于引号与注释之外的分号下标；没有分号时返回 len(s)
func statementEnd(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == ';':
			return i, nil
		case c == '\'' || c == '"':
			end := quotedEnd(s, i, c == '\'' && isEscapePrefix(s, i))
			if end < 0 {
				return 0, ErrUnterminated
			}
			i = end - 1
		case c == '-' && i+1 < len(s) && s[i+1] == '-':
			j := strings.IndexByte(s[i:], '\n')
			if j < 0 {
				return len(s), nil
			}
			i += j
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			end := blockCommentEnd(s[i:])
			if end < 0 {
				return 0, ErrUnterminated
			}
			i += end - 1
		case c == '$':
			tag, ok := dollarTag(s[i:])
			if !ok {
				continue
			}
			j := strings.Index(s[i+len(tag):], tag)
			if j < 0 {
				return 0, ErrUnterminated
			}
			i += len(tag) + j + len(tag) - 1
		}
	}
	return len(s), nil
}

// blockCommentEnd s 以 /* 开头，返回与之匹配的 */ 之后的下标；未闭合返回 -1
// PostgreSQL 的块注释可以嵌套
func blockCommentEnd(s string) int {
	depth := 0
	for i := 0; i+1 < len(s); i++ {
		switch {
		case s[i] == '/' && s[i+1] == '*':
			depth++
			i++
		case s[i] == '*' && s[i+1] == '/':
			depth--
			i++
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// quotedEnd 返回从 s[start] 开始的引号串结束后的下标；未闭合返回 -1
// 连续两个引号视为转义；escapes 为 true 时（E'...' 字符串）反斜杠转义下一个字符
func quotedEnd(s string, start int, escapes bool) int {
	q := s[start]
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if escapes {
				i++
			}
		case q:
			if i+1 < len(s) && s[i+1] == q {
				i++
				continue
			}
			return i + 1
		}
	}
	return -1
}

// isEscapePrefix 判断 s[i] 处的单引号是否以独立的 E / e 前缀开头（E'...'）
func isEscapePrefix(s string, i int) bool {
	if i == 0 || (s[i-1] != 'E' && s[i-1] != 'e') {
		return false
	}
	if i == 1 {
		return true
	}
	prev := s[i-2]
	return prev != '_' && !isASCIILetter(prev) && !(prev >= '0' && prev <= '9') && prev != '$'
}

// dollarTag 识别 PostgreSQL 美元引号的起始标记，如 $$ 或 $body$
func dollarTag(s string) (string, bool) {
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c == '$' {
			return s[:i+1], true
		}
		if c != '_' && !isASCIILetter(c) && !(i > 1 && c >= '0' && c <= '9') {
			return "", false
		}
	}
	return "", false
}
