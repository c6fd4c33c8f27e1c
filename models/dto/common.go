package dto

// ListQuery 列表查询通用参数（偏移分页）。
// - Skip/Limit 默认 0/100，Limit 上限在服务层收口为 500。
// - Keyword 对名称类字段做子串过滤，具体匹配列由各实体服务决定。
type ListQuery struct {
	Skip    int    `json:"skip" form:"skip,default=0" binding:"omitempty,gte=0"`                 // 偏移量
	Limit   int    `json:"limit" form:"limit,default=100" binding:"omitempty,gt=0,lte=500"`      // 每页数量
	Keyword string `json:"keyword" form:"keyword" binding:"omitempty,max=100"`                   // 关键词（可选）
}
