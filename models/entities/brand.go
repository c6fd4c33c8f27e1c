package entities

// Brand 相机品牌实体
// - 使用场景: 器材目录的顶层维度，相机/镜头均挂在品牌之下
// - 表名: brands (GORM 默认使用结构体名复数形式)
// - 与 Mount 通过 brand_mount_links 关联表建立多对多关系
type Brand struct {
	BaseModel

	// 品牌英文名称，唯一，最大长度100个字符
	// - 唯一性在服务层预检查之外，由数据库唯一索引兜底
	Name string `gorm:"type:varchar(100);uniqueIndex;not null"`

	// 品牌中文名称
	NameZh string `gorm:"type:varchar(100)"`

	// 品牌所属国家
	Country string `gorm:"type:varchar(50)"`

	// 品牌创立年份，未知时为 NULL
	FoundedYear *int `gorm:"type:int"`

	// 品牌官方网站 URL
	Website string `gorm:"type:varchar(255)"`

	// 品牌详细描述
	Description string `gorm:"type:text"`

	// 创建人ID，关联用户表；记录由谁录入，删除用户后置 NULL
	CreatedBy *uint64 `gorm:"type:bigint"`
}
