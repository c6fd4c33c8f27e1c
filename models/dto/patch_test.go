package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patchPayload struct {
	Name    *string          `json:"name"`
	Country Optional[string] `json:"country"`
	Year    Optional[int]    `json:"year"`
}

func TestOptionalUnmarshal(t *testing.T) {
	t.Run("字段缺失时保持未设置", func(t *testing.T) {
		var p patchPayload
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))

		assert.False(t, p.Country.Set)
		assert.False(t, p.Year.Set)
	})

	t.Run("显式 null 表示置空", func(t *testing.T) {
		var p patchPayload
		require.NoError(t, json.Unmarshal([]byte(`{"country": null, "year": null}`), &p))

		assert.True(t, p.Country.Set)
		assert.False(t, p.Country.Valid)
		assert.Nil(t, p.Year.Ptr())
	})

	t.Run("具体取值", func(t *testing.T) {
		var p patchPayload
		require.NoError(t, json.Unmarshal([]byte(`{"country": "Japan", "year": 1917}`), &p))

		assert.True(t, p.Country.Set)
		assert.True(t, p.Country.Valid)
		assert.Equal(t, "Japan", p.Country.Value)

		yearPtr := p.Year.Ptr()
		require.NotNil(t, yearPtr)
		assert.Equal(t, 1917, *yearPtr)
	})

	t.Run("类型不匹配返回错误", func(t *testing.T) {
		var p patchPayload
		assert.Error(t, json.Unmarshal([]byte(`{"year": "not-a-number"}`), &p))
	})

	t.Run("零值与 null 可区分", func(t *testing.T) {
		var p patchPayload
		require.NoError(t, json.Unmarshal([]byte(`{"year": 0}`), &p))

		assert.True(t, p.Year.Set)
		assert.True(t, p.Year.Valid)
		require.NotNil(t, p.Year.Ptr())
		assert.Equal(t, 0, *p.Year.Ptr())
	})
}
