package myErrors

import "errors"

// ErrRecordNotFound 表示仓库层未查询到对应记录。
// 仓库层返回该哨兵错误，服务层再包装为带分类的 ServiceError。
var ErrRecordNotFound = errors.New("repo: record not found")

// ErrCacheMiss 表示在缓存层未找到对应的键值
var ErrCacheMiss = errors.New("cache: key not found (miss)")

// Kind 是业务失败的分类，控制器据此映射 HTTP 状态码。
type Kind int

const (
	KindNotFound        Kind = iota + 1 // 引用的记录不存在
	KindConflict                        // 唯一性冲突
	KindValidation                      // 入参非法 / 外键无法解析
	KindForbidden                       // 已认证但无权限
	KindUnauthenticated                 // 未认证或凭证无效
)

// ServiceError 携带业务失败分类与指明字段/取值的可读原因。
// 所有校验在任何写入发生之前同步执行，第一个失败即中止整个操作。
type ServiceError struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.cause
}

// NewNotFound 构造 NotFound 分类错误。
func NewNotFound(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: message}
}

// NewConflict 构造 Conflict 分类错误，message 需指明冲突的字段与取值。
func NewConflict(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: message}
}

// NewValidation 构造 Validation 分类错误。
func NewValidation(message string) *ServiceError {
	return &ServiceError{Kind: KindValidation, Message: message}
}

// NewForbidden 构造 Forbidden 分类错误。
func NewForbidden(message string) *ServiceError {
	return &ServiceError{Kind: KindForbidden, Message: message}
}

// NewUnauthenticated 构造 Unauthenticated 分类错误。
func NewUnauthenticated(message string) *ServiceError {
	return &ServiceError{Kind: KindUnauthenticated, Message: message}
}

// Wrap 在保留分类的同时挂上底层错误，便于日志排查。
func (e *ServiceError) Wrap(cause error) *ServiceError {
	e.cause = cause
	return e
}

// AsServiceError 尝试把任意错误还原成 *ServiceError。
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
