package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构。
// 领域层面的失败同样以 HTTP 200 返回，由 code 区分。
type Response struct {
	Code int         `json:"code"` // 业务状态码（0 成功 / -1 失败）
	Msg  string      `json:"msg"`  // 提示消息
	Data interface{} `json:"data"` // 数据内容
}

// PageData 分页数据载荷
type PageData struct {
	Records interface{} `json:"records"`
	Total   int64       `json:"total"`
	Current int         `json:"current"`
	Size    int         `json:"size"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	SuccessWithMsg(c, MsgSuccess, data)
}

// SuccessWithMsg 成功响应（自定义消息）
func SuccessWithMsg(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: CodeOK,
		Msg:  msg,
		Data: data,
	})
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, records interface{}, total int64, current, size int) {
	Success(c, PageData{
		Records: records,
		Total:   total,
		Current: current,
		Size:    size,
	})
}

// Fail 领域失败响应（data 为 null）
func Fail(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, Response{
		Code: CodeError,
		Msg:  msg,
		Data: nil,
	})
}
