package admin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/actcode-admin/internal/http/response"
	"github.com/actcode-admin/internal/service"

	"github.com/gin-gonic/gin"
)

// SaveActivationCodeRequest 创建/更新激活码请求
type SaveActivationCodeRequest struct {
	Code        string  `json:"code" binding:"required"`
	Type        int     `json:"type"`
	TypeID      *string `json:"typeId"`
	Activated   bool    `json:"activated"`
	ActivatedAt string  `json:"activatedAt"`
	Refunded    bool    `json:"refunded"`
	RefundedAt  string  `json:"refundedAt"`
	RefundNote  *string `json:"refundNote"`
	Revoked     bool    `json:"revoked"`
	RevokedAt   string  `json:"revokedAt"`
	DataDate    string  `json:"dataDate" binding:"required"`
}

// RefundActivationCodeRequest 退款操作请求
type RefundActivationCodeRequest struct {
	RefundNote string `json:"refundNote"`
}

// BatchImportActivationCodeRequest 批量导入条目请求
type BatchImportActivationCodeRequest struct {
	Code     string  `json:"code" binding:"required"`
	Type     *int    `json:"type"`
	TypeID   *string `json:"typeId"`
	DataDate string  `json:"dataDate" binding:"required"`
}

// ListActivationCodes 查询激活码列表
func (h *Handler) ListActivationCodes(c *gin.Context) {
	current, _ := strconv.Atoi(c.DefaultQuery("current", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	current, size = normalizePagination(current, size)

	input := service.ListActivationCodesInput{
		Code:      c.Query("code"),
		TypeID:    c.Query("typeId"),
		Activated: parseOptionalBool(c.Query("activated")),
		Refunded:  parseOptionalBool(c.Query("refunded")),
		Revoked:   parseOptionalBool(c.Query("revoked")),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Current:   current,
		Size:      size,
	}
	if raw := strings.TrimSpace(c.Query("type")); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil {
			input.Type = &value
		}
	}

	records, total, err := h.ActivationCodeService.List(input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			respondFail(c, "日期格式不正确", nil)
			return
		}
		respondFail(c, response.MsgError, err)
		return
	}
	response.SuccessWithPage(c, records, total, current, size)
}

// GetActivationCode 查询激活码详情
func (h *Handler) GetActivationCode(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	record, err := h.ActivationCodeService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondFail(c, "激活码不存在", nil)
			return
		}
		respondFail(c, response.MsgError, err)
		return
	}
	response.Success(c, record)
}

// CreateActivationCode 创建激活码
func (h *Handler) CreateActivationCode(c *gin.Context) {
	var req SaveActivationCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, "请求参数不正确", err)
		return
	}

	record, err := h.ActivationCodeService.Create(saveInputFromRequest(req))
	if err != nil {
		h.respondSaveError(c, err)
		return
	}
	response.Success(c, record)
}

// UpdateActivationCode 更新激活码
func (h *Handler) UpdateActivationCode(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req SaveActivationCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, "请求参数不正确", err)
		return
	}

	record, err := h.ActivationCodeService.Update(id, saveInputFromRequest(req))
	if err != nil {
		h.respondSaveError(c, err)
		return
	}
	response.Success(c, record)
}

// DeleteActivationCode 删除激活码
func (h *Handler) DeleteActivationCode(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ActivationCodeService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondFail(c, "激活码不存在", nil)
			return
		}
		respondFail(c, response.MsgError, err)
		return
	}
	response.SuccessWithMsg(c, "删除成功", nil)
}

// ActivateActivationCode 激活/取消激活
func (h *Handler) ActivateActivationCode(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	record, msg, err := h.ActivationCodeService.ToggleActivate(id)
	if err != nil {
		h.respondToggleError(c, err)
		return
	}
	response.SuccessWithMsg(c, msg, record)
}

// RefundActivationCode 退款/取消退款
func (h *Handler) RefundActivationCode(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	// 退款备注可缺省，请求体为空时按默认备注处理
	var req RefundActivationCodeRequest
	_ = c.ShouldBindJSON(&req)

	record, msg, err := h.ActivationCodeService.ToggleRefund(id, req.RefundNote)
	if err != nil {
		h.respondToggleError(c, err)
		return
	}
	response.SuccessWithMsg(c, msg, record)
}

// RevokeActivationCode 收回/取消收回
func (h *Handler) RevokeActivationCode(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	record, msg, err := h.ActivationCodeService.ToggleRevoke(id)
	if err != nil {
		h.respondToggleError(c, err)
		return
	}
	response.SuccessWithMsg(c, msg, record)
}

// BatchImportActivationCodes 批量导入激活码
func (h *Handler) BatchImportActivationCodes(c *gin.Context) {
	var reqs []BatchImportActivationCodeRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		respondFail(c, "请求参数不正确", err)
		return
	}

	entries := make([]service.BatchImportEntry, 0, len(reqs))
	for _, req := range reqs {
		entries = append(entries, service.BatchImportEntry{
			Code:     req.Code,
			Type:     req.Type,
			TypeID:   req.TypeID,
			DataDate: req.DataDate,
		})
	}

	count, err := h.ActivationCodeService.BatchImport(entries)
	if err != nil {
		var validationErr *service.ImportValidationError
		switch {
		case errors.As(err, &validationErr):
			respondFail(c, fmt.Sprintf("激活码 %s 必须提供 type 或 typeId", validationErr.Code), nil)
		case errors.Is(err, service.ErrInvalidDate):
			respondFail(c, "日期格式不正确", nil)
		default:
			respondFail(c, response.MsgError, err)
		}
		return
	}
	response.SuccessWithMsg(c, fmt.Sprintf("成功导入 %d 个激活码", count), gin.H{"count": count})
}

// ExportActivationCodes 导出激活码数据
func (h *Handler) ExportActivationCodes(c *gin.Context) {
	result, err := h.ActivationCodeService.Export(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			respondFail(c, "日期格式不正确", nil)
			return
		}
		respondFail(c, response.MsgError, err)
		return
	}
	response.SuccessWithMsg(c, "导出成功", result)
}

func (h *Handler) respondSaveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondFail(c, "激活码不存在", nil)
	case errors.Is(err, service.ErrActivationCodeExists):
		respondFail(c, "激活码已存在!", nil)
	case errors.Is(err, service.ErrInvalidDate):
		respondFail(c, "日期格式不正确", nil)
	default:
		respondFail(c, response.MsgError, err)
	}
}

func (h *Handler) respondToggleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondFail(c, "激活码不存在", nil)
	case errors.Is(err, service.ErrNotActivated):
		respondFail(c, "激活码未激活，无法操作", nil)
	case errors.Is(err, service.ErrStateConflict):
		respondFail(c, "操作冲突，请重试", nil)
	default:
		respondFail(c, response.MsgError, err)
	}
}

func saveInputFromRequest(req SaveActivationCodeRequest) service.SaveActivationCodeInput {
	return service.SaveActivationCodeInput{
		Code:        req.Code,
		Type:        req.Type,
		TypeID:      req.TypeID,
		Activated:   req.Activated,
		ActivatedAt: req.ActivatedAt,
		Refunded:    req.Refunded,
		RefundedAt:  req.RefundedAt,
		RefundNote:  req.RefundNote,
		Revoked:     req.Revoked,
		RevokedAt:   req.RevokedAt,
		DataDate:    req.DataDate,
	}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	rawID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || rawID == 0 {
		respondFail(c, "请求参数不正确", nil)
		return 0, false
	}
	return uint(rawID), true
}

// parseOptionalBool 解析可选布尔查询参数，缺省表示不过滤。
func parseOptionalBool(raw string) *bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1":
		value := true
		return &value
	case "false", "0":
		value := false
		return &value
	default:
		return nil
	}
}
