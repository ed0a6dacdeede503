package response

// 业务码直接沿用 HTTP 语义，和响应状态码一致
const (
	CodeOK             = 0
	CodeBadRequest     = 400
	CodeNotFound       = 404
	CodeConflict       = 409
	CodeTooLarge       = 413
	CodeUnprocessable  = 422
	CodeServerError    = 500
	CodeUnavailable    = 503
	CodeGatewayTimeout = 504
)

// CodeMsgMap 集中管理 code - msg
var CodeMsgMap = map[int]string{
	CodeOK:             "OK",
	CodeBadRequest:     "Bad Request",
	CodeNotFound:       "Not Found",
	CodeConflict:       "Conflict",
	CodeTooLarge:       "Request Entity Too Large",
	CodeUnprocessable:  "Unprocessable Entity",
	CodeServerError:    "Internal Server Error",
	CodeUnavailable:    "Service Unavailable",
	CodeGatewayTimeout: "Gateway Timeout",
}
