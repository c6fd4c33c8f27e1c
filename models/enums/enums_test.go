package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetTypeCapabilities(t *testing.T) {
	// 评论可以挂在文章与器材上，评分只针对器材。
	assert.True(t, TargetArticle.IsCommentable())
	assert.True(t, TargetCamera.IsCommentable())
	assert.True(t, TargetLens.IsCommentable())
	assert.False(t, TargetArticle.IsRatable())
	assert.True(t, TargetCamera.IsRatable())
	assert.True(t, TargetLens.IsRatable())

	assert.False(t, TargetType("user").IsCommentable())
	assert.False(t, TargetType("").IsRatable())
}

func TestUserRoleIsValid(t *testing.T) {
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, UserRole("superadmin").IsValid())
	assert.False(t, UserRole("").IsValid())
}

func TestArticleStatusIsValid(t *testing.T) {
	assert.True(t, ArticleDraft.IsValid())
	assert.True(t, ArticlePublished.IsValid())
	assert.True(t, ArticleArchived.IsValid())
	assert.False(t, ArticleStatus("deleted").IsValid())
}

func TestCameraAndLensTypeIsValid(t *testing.T) {
	assert.True(t, CameraMirrorless.IsValid())
	assert.False(t, CameraType("Pinhole").IsValid())
	assert.True(t, LensZoom.IsValid())
	assert.False(t, LensType("Anamorphic").IsValid())
}
