package dto

// ── 报表与即席查询 DTO ──

// SignUpReportRow 报名报表行
type SignUpReportRow struct {
	MemberName   string `json:"member_name"`
	ActivityName string `json:"activity_name"`
	SignupDate   string `json:"signup_date"`
}

// QueryRequest 即席查询请求
type QueryRequest struct {
	SQL string `json:"sql" binding:"required,max=10000"`
}

// QueryResponse 即席查询结果
type QueryResponse struct {
	Columns  []string        `json:"columns"`
	Rows     [][]interface{} `json:"rows"`
	RowCount int             `json:"row_count"`
}

// ExportFormatRequest 导出格式参数
type ExportFormatRequest struct {
	Format string `form:"format" binding:"omitempty,oneof=csv xlsx"`
}
