package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// 统一错误分类，workflow 层所有失败都归入这五类
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnauthorized = errors.New("unauthorized")
	ErrStoreTimeout = errors.New("store timeout")
)

// 业务语义错误，全部包裹在上面的分类里，调用方用 errors.Is 判断
var (
	ErrAlreadyMember    = fmt.Errorf("%w: already a member of this community", ErrConflict)
	ErrNoPendingRequest = fmt.Errorf("%w: no pending join request", ErrInvalidState)
	ErrNotMember        = fmt.Errorf("%w: not a community member", ErrNotFound)
	ErrNotApproved      = fmt.Errorf("%w: membership not approved yet", ErrInvalidState)
	ErrNoPendingPage    = fmt.Errorf("%w: no pending page", ErrInvalidState)
	ErrAuthorNotFound   = fmt.Errorf("%w: author not found", ErrNotFound)
)

// Retryable 只有存储超时算瞬时错误，计数补写只对它重试
func Retryable(err error) bool {
	return errors.Is(err, ErrStoreTimeout)
}

// HTTPStatus 将错误分类映射为 HTTP 状态码，handler 层统一使用
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidState):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrStoreTimeout):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
