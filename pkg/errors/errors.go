package errors

import (
	stdErrors "errors"
	"fmt"
)

// 错误码, 与HTTP状态码一致
const (
	CodeSuccess         = 200
	CodeCreated         = 201
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeConflict        = 409
	CodeTooManyRequests = 429
	CodeInternalError   = 500
	CodeDatabaseError   = 500
	CodeStorageError    = 500
)

// AppError 应用错误
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus 返回对应的HTTP状态码
func (e *AppError) HTTPStatus() int {
	if e.Code < 400 || e.Code > 599 {
		return CodeInternalError
	}
	return e.Code
}

// New 创建新错误
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// As 提取AppError
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stdErrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is 判断错误码是否一致
func Is(err error, target *AppError) bool {
	appErr, ok := As(err)
	if !ok {
		return false
	}
	return appErr == target || (appErr.Code == target.Code && appErr.Message == target.Message)
}

// 预定义错误
var (
	ErrBadRequest      = New(CodeBadRequest, "请求参数错误")
	ErrUnauthorized    = New(CodeUnauthorized, "未授权, 请重新登录")
	ErrNotFound        = New(CodeNotFound, "资源不存在")
	ErrConflict        = New(CodeConflict, "资源冲突")
	ErrInternalError   = New(CodeInternalError, "内部服务器错误")
	ErrDatabaseError   = New(CodeDatabaseError, "数据库错误")
	ErrTooManyRequests = New(CodeTooManyRequests, "请求过于频繁, 请稍后再试")

	// 具体业务错误
	ErrInvalidParams          = New(CodeBadRequest, "请求参数错误")
	ErrInvalidEmail           = New(CodeBadRequest, "邮箱格式错误")
	ErrInvalidCredentials     = New(CodeUnauthorized, "邮箱或密码错误")
	ErrUserNotFound           = New(CodeNotFound, "用户不存在")
	ErrEmailExists            = New(CodeConflict, "邮箱已注册")
	ErrRecordNotFound         = New(CodeNotFound, "记录不存在")
	ErrRecordExists           = New(CodeConflict, "记录已存在")
	ErrTeamNotFound           = New(CodeNotFound, "团队不存在")
	ErrPostNotFound           = New(CodeNotFound, "帖子不存在")
	ErrRoleNotFound           = New(CodeBadRequest, "团队中不存在该角色")
	ErrAlreadyMember          = New(CodeConflict, "已是该团队成员")
	ErrPendingRequestExists   = New(CodeConflict, "已有待处理的加入申请")
	ErrRoleFull               = New(CodeConflict, "该角色名额已满")
	ErrNotFoundOrUnauthorized = New(CodeNotFound, "申请不存在或无权处理")
	ErrMissingFile            = New(CodeBadRequest, "未上传文件")
)
