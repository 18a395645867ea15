package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/actcode-admin/internal/http/response"
	"github.com/actcode-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// SaveCodeTypeRequest 创建/更新激活码类型请求
type SaveCodeTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListCodeTypes 查询激活码类型列表
func (h *Handler) ListCodeTypes(c *gin.Context) {
	current, _ := strconv.Atoi(c.DefaultQuery("current", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	current, size = normalizePagination(current, size)

	records, total, err := h.CodeTypeService.List(c.Query("name"), current, size)
	if err != nil {
		respondFail(c, response.MsgError, err)
		return
	}
	response.SuccessWithPage(c, records, total, current, size)
}

// GetCodeType 查询激活码类型详情
func (h *Handler) GetCodeType(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	record, err := h.CodeTypeService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondFail(c, "激活码类型不存在", nil)
			return
		}
		respondFail(c, response.MsgError, err)
		return
	}
	response.Success(c, record)
}

// CreateCodeType 创建激活码类型
func (h *Handler) CreateCodeType(c *gin.Context) {
	var req SaveCodeTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, "请求参数不正确", err)
		return
	}

	record, err := h.CodeTypeService.Create(req.Name)
	if err != nil {
		if errors.Is(err, service.ErrCodeTypeNameExists) {
			respondFail(c, "激活码类型名称已存在!", nil)
			return
		}
		respondFail(c, response.MsgError, err)
		return
	}
	response.Success(c, record)
}

// UpdateCodeType 更新激活码类型
func (h *Handler) UpdateCodeType(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	var req SaveCodeTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, "请求参数不正确", err)
		return
	}

	record, err := h.CodeTypeService.Update(id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondFail(c, "激活码类型不存在", nil)
		case errors.Is(err, service.ErrCodeTypeNameExists):
			respondFail(c, "激活码类型名称已存在!", nil)
		default:
			respondFail(c, response.MsgError, err)
		}
		return
	}
	response.Success(c, record)
}

// DeleteCodeType 删除激活码类型
func (h *Handler) DeleteCodeType(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := h.CodeTypeService.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondFail(c, "激活码类型不存在", nil)
		case errors.Is(err, service.ErrCodeTypeInUse):
			respondFail(c, "该类型下仍有激活码，无法删除", nil)
		default:
			respondFail(c, response.MsgError, err)
		}
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}
