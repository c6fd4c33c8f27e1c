package entities

import (
	"time"

	"github.com/Xushengqwer/camera_service/models/enums"
)

// Article 文章实体
// - 表名: articles
// - 归属于一个分类和一个作者；与 Tag 通过 article_tag_links 关联
// - ViewCount 由 Redis 计数器经定时任务批量刷回，请求路径内不直接自增
type Article struct {
	BaseModel

	// 文章标题，必填，最大长度200个字符
	Title string `gorm:"type:varchar(200);not null"`

	// 文章中文标题
	TitleZh string `gorm:"type:varchar(200)"`

	// URL 友好的唯一标识符
	Slug string `gorm:"type:varchar(255);uniqueIndex;not null"`

	// 文章内容，长文本
	Content string `gorm:"type:text;not null"`

	// 文章摘要
	Excerpt string `gorm:"type:varchar(500)"`

	// 作者ID，必填外键，所有权校验的依据
	AuthorID uint64 `gorm:"type:bigint;not null;index"`

	// 分类ID，可选外键；分类被删除后置空
	CategoryID *uint64 `gorm:"type:bigint;index"`

	// 状态: draft / published / archived，默认 draft
	Status enums.ArticleStatus `gorm:"type:varchar(20);not null;default:draft"`

	// 阅读量，>= 0
	ViewCount int64 `gorm:"type:int;default:0"`

	// 点赞数，>= 0
	LikeCount int64 `gorm:"type:int;default:0"`

	// 评论数，>= 0
	CommentCount int64 `gorm:"type:int;default:0"`

	// 发布时间；首次切换到 published 时写入
	PublishedAt *time.Time
}
