package enums

// TargetType 多态引用的类型标签，以 (target_type, target_id) 二元组指向具体实体。
// 评论可指向文章/相机/镜头，评分只可指向相机/镜头。
type TargetType string

const (
	TargetArticle TargetType = "article"
	TargetCamera  TargetType = "camera"
	TargetLens    TargetType = "lens"
)

// IsCommentable 评论允许的目标类型。
func (t TargetType) IsCommentable() bool {
	switch t {
	case TargetArticle, TargetCamera, TargetLens:
		return true
	}
	return false
}

// IsRatable 评分允许的目标类型。
func (t TargetType) IsRatable() bool {
	switch t {
	case TargetCamera, TargetLens:
		return true
	}
	return false
}
