package entities

// Tag 文章标签实体
// - 表名: tags
// - 仍被文章引用时不可删除（服务层以 Conflict 拒绝）
type Tag struct {
	BaseModel

	// 标签名称，唯一
	Name string `gorm:"type:varchar(50);uniqueIndex;not null"`

	// URL 友好的标签标识符，唯一
	Slug string `gorm:"type:varchar(50);uniqueIndex;not null"`

	// 标签描述
	Description string `gorm:"type:varchar(200)"`

	// 创建人ID
	CreatedBy *uint64 `gorm:"type:bigint"`
}
