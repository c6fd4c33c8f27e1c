package entities

// Category 文章分类实体，父指针式树形结构
// - 表名: categories
// - ParentID 指向同表的父分类；更新时服务层拒绝会造成环的父指针
type Category struct {
	BaseModel

	// 分类名称，唯一
	Name string `gorm:"type:varchar(100);uniqueIndex;not null"`

	// 分类中文名称
	NameZh string `gorm:"type:varchar(100)"`

	// URL 友好的分类标识符，唯一
	Slug string `gorm:"type:varchar(100);uniqueIndex;not null"`

	// 分类描述
	Description string `gorm:"type:varchar(500)"`

	// 父分类ID，NULL 表示根分类
	ParentID *uint64 `gorm:"type:bigint;index"`

	// 创建人ID
	CreatedBy *uint64 `gorm:"type:bigint"`
}
