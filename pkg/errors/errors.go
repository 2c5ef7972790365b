package errors

import "errors"

// ErrOperationFailed 远端调用失败（传输错误、非 2xx 响应或响应体无法解析），调用方不区分具体原因
var ErrOperationFailed = errors.New("operation failed")
