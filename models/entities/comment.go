package entities

import "github.com/Xushengqwer/camera_service/models/enums"

// Comment 评论实体
// - 表名: comments
// - 以 (target_type, target_id) 多态指向文章/相机/镜头，创建前统一走目标解析
// - ParentID 指向同表父评论，实现回复线程
type Comment struct {
	BaseModel

	// 评论内容
	Content string `gorm:"type:text;not null"`

	// 评论作者ID，所有权校验的依据
	AuthorID uint64 `gorm:"type:bigint;not null;index"`

	// 关联目标类型: article / camera / lens
	TargetType enums.TargetType `gorm:"type:varchar(20);not null;index:idx_comment_target"`

	// 关联目标ID
	TargetID uint64 `gorm:"type:bigint;not null;index:idx_comment_target"`

	// 父评论ID，用于实现评论回复；NULL 表示顶层评论
	ParentID *uint64 `gorm:"type:bigint;index"`

	// 是否审核通过，默认 true；仅管理员可改
	IsApproved bool `gorm:"default:true"`
}
