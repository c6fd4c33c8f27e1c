package dto

import "encoding/json"

// Optional 是部分更新载荷中的三态字段：
//   - 请求体中未出现          -> Set=false，保持原值不变
//   - 请求体中显式为 null     -> Set=true, Valid=false，覆盖为空 (可空字段置 NULL)
//   - 请求体中给出了具体取值  -> Set=true, Valid=true
//
// 普通指针无法区分前两种情况，而更新操作只允许应用"显式出现在载荷中"的字段，
// 因此所有可空的可更新字段统一使用 Optional。
type Optional[T any] struct {
	Set   bool `swaggerignore:"true"`
	Valid bool `swaggerignore:"true"`
	Value T
}

// UnmarshalJSON 只有字段出现在 JSON 中时才会被调用，借此记录 Set 状态。
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Value = zero
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON 使 Optional 在日志/调试输出中表现为其内部值。
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr 返回可空字段写库时使用的指针：null -> nil，有值 -> &value。
// 仅在 Set 为 true 时有意义。
func (o Optional[T]) Ptr() *T {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}
