package entities

// Mount 卡口实体
// - 使用场景: 描述镜头与机身之间的接口规格（法兰距、口径等）
// - 表名: mounts
// - 与 Brand、Lens 均为多对多关系，关联行带 is_primary 标记
type Mount struct {
	BaseModel

	// 卡口名称，唯一，例如 "EF"、"Z"、"X"
	Name string `gorm:"type:varchar(100);uniqueIndex;not null"`

	// 卡口中文名称
	NameZh string `gorm:"type:varchar(100)"`

	// 发布年份
	ReleaseYear *int `gorm:"type:int"`

	// 法兰距（毫米）
	FlangeDistance *float64 `gorm:"type:decimal(5,2)"`

	// 卡口内径（毫米）
	Diameter *float64 `gorm:"type:decimal(5,2)"`

	// 卡口详细描述
	Description string `gorm:"type:text"`

	// 创建人ID
	CreatedBy *uint64 `gorm:"type:bigint"`
}
