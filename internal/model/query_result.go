package model

// QueryResult 即席查询的通用表格结果
//
// Rows 中的单元格已转换为可 JSON 序列化的基础类型（[]byte 转为 string）。
type QueryResult struct {
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

// Empty 是否无数据行
func (r *QueryResult) Empty() bool {
	return r == nil || len(r.Rows) == 0
}
