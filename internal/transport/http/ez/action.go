package ez

import (
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	resp "user-roles-api/internal/transport/http/response"
)

type EZ struct {
	g   *gin.RouterGroup
	log *zap.Logger
}

func New(g *gin.RouterGroup, l *zap.Logger) EZ {
	useJSONFieldNames()
	return EZ{g: g, log: l}
}

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param 取
)

// AErr 统一错误对象：Code 即 HTTP 状态；Err 只写日志，不回给客户端
type AErr struct {
	Code   int
	Msg    string
	Fields map[string]string
	Err    error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error { return &AErr{Code: resp.CodeBadRequest, Msg: msg} }
func NotFound(msg string) error   { return &AErr{Code: resp.CodeNotFound, Msg: msg} }
func Conflict(msg string) error   { return &AErr{Code: resp.CodeConflict, Msg: msg} }
func Invalid(msg string, fields map[string]string) error {
	return &AErr{Code: resp.CodeUnprocessable, Msg: msg, Fields: fields}
}
func Internal(msg string, err error) error {
	return &AErr{Code: resp.CodeServerError, Msg: msg, Err: err}
}

// 动作定义：I 入参，O 出参
type Action[I any, O any] struct {
	Method  string // GET / POST / PUT / PATCH / DELETE
	Path    string // 例："/users/:id"
	Binder  Binder
	Status  int // 成功状态码，默认 200
	Handler func(c *gin.Context, in *I) (O, error)
}

// RegisterAction 在当前 EZ 下注册动作接口
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	status := a.Status
	if status == 0 {
		status = http.StatusOK
	}

	h := func(c *gin.Context) {
		var in I
		if err := bind(c, a.Binder, &in); err != nil {
			e.abort(c, err)
			return
		}
		out, err := a.Handler(c, &in)
		if err != nil {
			e.abort(c, err)
			return
		}
		c.JSON(status, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

// abort 统一错误映射；5xx 的原始错误只进日志
func (e EZ) abort(c *gin.Context, err error) {
	var ae *AErr
	if !errors.As(err, &ae) {
		ae = &AErr{Code: resp.CodeServerError, Err: err}
	}
	if ae.Code >= http.StatusInternalServerError {
		e.log.Error("action failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("rid", c.GetString(KeyRequestID)),
			zap.String("msg", ae.Msg),
			zap.Error(ae.Err),
		)
		_ = c.Error(err)
		c.AbortWithStatusJSON(ae.Code, resp.Error(ae.Code, ae.Msg))
		return
	}
	var data interface{}
	if len(ae.Fields) > 0 {
		data = gin.H{"errors": ae.Fields}
	}
	c.AbortWithStatusJSON(ae.Code, resp.ErrorWith(ae.Code, ae.Msg, data))
}

// KeyRequestID 与 middleware.RequestID 写入 gin.Context 的 key 一致
const KeyRequestID = "X-Request-ID"

func bind(c *gin.Context, b Binder, in any) error {
	var err error
	switch b {
	case BindJSON:
		err = c.ShouldBindJSON(in)
		if errors.Is(err, io.EOF) {
			// 空 body 视为 {}，仍然走校验
			err = binding.Validator.ValidateStruct(in)
		}
	case BindQuery:
		err = c.ShouldBindQuery(in)
	default:
		return nil
	}
	if err == nil {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &AErr{Code: resp.CodeTooLarge, Msg: "request body too large"}
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return Invalid("The given data was invalid.", fieldMessages(verrs))
	}
	return BadRequest("malformed request")
}

func fieldMessages(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		// 去掉顶层结构体名：createUserIn.role_ids[0] -> role_ids[0]
		key := fe.Namespace()
		if i := strings.IndexByte(key, '.'); i >= 0 {
			key = key[i+1:]
		}
		out[key] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "must have at least " + fe.Param() + " item(s)"
		}
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "may not be greater than " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "is invalid"
	}
}

var tagNameOnce sync.Once

// useJSONFieldNames 让校验错误里的字段名用 json/form tag（role_ids 而不是 RoleIDs）
func useJSONFieldNames() {
	tagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form", "uri"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	})
}

// ParamID 解析路径上的正整数 id；非法 id 与不存在同样按 404 处理
func ParamID(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, NotFound("Not Found")
	}
	return uint(v), nil
}

// AtoiDefault 正整数解析，失败或非正数返回 def
func AtoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}
