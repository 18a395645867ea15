package service

import (
	"strings"
	"time"

	"github.com/actcode-admin/internal/models"
	"github.com/actcode-admin/internal/repository"
)

// 取消激活时需要一并清空的下游状态字段。
var deactivateCascadeUpdates = map[string]interface{}{
	"activated":    false,
	"activated_at": nil,
	"refunded":     false,
	"refunded_at":  nil,
	"refund_note":  nil,
	"revoked":      false,
	"revoked_at":   nil,
}

const defaultRefundNote = "退款"

// ActivationCodeService 激活码业务服务
type ActivationCodeService struct {
	repo repository.ActivationCodeRepository
}

// NewActivationCodeService 创建激活码服务
func NewActivationCodeService(repo repository.ActivationCodeRepository) *ActivationCodeService {
	return &ActivationCodeService{repo: repo}
}

// ListActivationCodesInput 激活码列表查询输入
type ListActivationCodesInput struct {
	Code      string
	Type      *int
	TypeID    string
	Activated *bool
	Refunded  *bool
	Revoked   *bool
	StartDate string
	EndDate   string
	Current   int
	Size      int
}

// List 分页查询激活码列表，按导入时间倒序。
func (s *ActivationCodeService) List(input ListActivationCodesInput) ([]models.ActivationCode, int64, error) {
	startDate, err := parseDateValue(input.StartDate)
	if err != nil {
		return nil, 0, ErrInvalidDate
	}
	endDate, err := parseDateValue(input.EndDate)
	if err != nil {
		return nil, 0, ErrInvalidDate
	}

	filter := repository.ActivationCodeListFilter{
		Current:      input.Current,
		Size:         input.Size,
		Code:         strings.TrimSpace(input.Code),
		Type:         input.Type,
		TypeID:       strings.TrimSpace(input.TypeID),
		Activated:    input.Activated,
		Refunded:     input.Refunded,
		Revoked:      input.Revoked,
		DataDateFrom: startDate,
		DataDateTo:   endDate,
	}
	return s.repo.List(filter)
}

// GetByID 查询单个激活码
func (s *ActivationCodeService) GetByID(id uint) (*models.ActivationCode, error) {
	code, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if code == nil {
		return nil, ErrNotFound
	}
	return code, nil
}

// SaveActivationCodeInput 创建/更新激活码输入，
// 日期字段为字符串，缺省表示置空。
type SaveActivationCodeInput struct {
	Code        string
	Type        int
	TypeID      *string
	Activated   bool
	ActivatedAt string
	Refunded    bool
	RefundedAt  string
	RefundNote  *string
	Revoked     bool
	RevokedAt   string
	DataDate    string
}

// Create 创建激活码
func (s *ActivationCodeService) Create(input SaveActivationCodeInput) (*models.ActivationCode, error) {
	code, err := s.buildFromInput(input)
	if err != nil {
		return nil, err
	}
	code.ImportedAt = time.Now()

	if err := s.repo.Create(code); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrActivationCodeExists
		}
		return nil, err
	}
	return code, nil
}

// Update 更新激活码，先校验存在性。
func (s *ActivationCodeService) Update(id uint, input SaveActivationCodeInput) (*models.ActivationCode, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	code, err := s.buildFromInput(input)
	if err != nil {
		return nil, err
	}
	code.ID = existing.ID
	code.ImportedAt = existing.ImportedAt

	if err := s.repo.Update(code); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrActivationCodeExists
		}
		return nil, err
	}
	return s.repo.GetByID(id)
}

// Delete 删除激活码，先校验存在性。
func (s *ActivationCodeService) Delete(id uint) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

// ToggleActivate 激活/取消激活。
// 取消激活时级联清空退款与收回状态。
func (s *ActivationCodeService) ToggleActivate(id uint) (*models.ActivationCode, string, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, "", err
	}
	if existing == nil {
		return nil, "", ErrNotFound
	}

	prior := lifecycleStateOf(existing)
	var (
		updates map[string]interface{}
		msg     string
	)
	if existing.Activated {
		updates = deactivateCascadeUpdates
		msg = "已取消激活"
	} else {
		now := time.Now()
		updates = map[string]interface{}{
			"activated":    true,
			"activated_at": now,
		}
		msg = "激活成功"
	}

	code, err := s.applyLifecycleUpdate(id, prior, updates)
	if err != nil {
		return nil, "", err
	}
	return code, msg, nil
}

// ToggleRefund 退款/取消退款，未激活的激活码不允许操作。
func (s *ActivationCodeService) ToggleRefund(id uint, refundNote string) (*models.ActivationCode, string, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, "", err
	}
	if existing == nil {
		return nil, "", ErrNotFound
	}
	if !existing.Activated {
		return nil, "", ErrNotActivated
	}

	prior := lifecycleStateOf(existing)
	var (
		updates map[string]interface{}
		msg     string
	)
	if existing.Refunded {
		updates = map[string]interface{}{
			"refunded":    false,
			"refunded_at": nil,
			"refund_note": nil,
		}
		msg = "已取消退款"
	} else {
		note := strings.TrimSpace(refundNote)
		if note == "" {
			note = defaultRefundNote
		}
		now := time.Now()
		updates = map[string]interface{}{
			"refunded":    true,
			"refunded_at": now,
			"refund_note": note,
		}
		msg = "退款成功"
	}

	code, err := s.applyLifecycleUpdate(id, prior, updates)
	if err != nil {
		return nil, "", err
	}
	return code, msg, nil
}

// ToggleRevoke 收回/取消收回，未激活的激活码不允许操作。
func (s *ActivationCodeService) ToggleRevoke(id uint) (*models.ActivationCode, string, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, "", err
	}
	if existing == nil {
		return nil, "", ErrNotFound
	}
	if !existing.Activated {
		return nil, "", ErrNotActivated
	}

	prior := lifecycleStateOf(existing)
	var (
		updates map[string]interface{}
		msg     string
	)
	if existing.Revoked {
		updates = map[string]interface{}{
			"revoked":    false,
			"revoked_at": nil,
		}
		msg = "已取消收回"
	} else {
		now := time.Now()
		updates = map[string]interface{}{
			"revoked":    true,
			"revoked_at": now,
		}
		msg = "收回成功"
	}

	code, err := s.applyLifecycleUpdate(id, prior, updates)
	if err != nil {
		return nil, "", err
	}
	return code, msg, nil
}

// BatchImportEntry 批量导入条目
type BatchImportEntry struct {
	Code     string
	Type     *int
	TypeID   *string
	DataDate string
}

// BatchImport 批量导入激活码。
// 结构校验阶段整批失败；code 与已有记录冲突的行跳过，返回实际写入数量。
func (s *ActivationCodeService) BatchImport(entries []BatchImportEntry) (int64, error) {
	now := time.Now()
	rows := make([]models.ActivationCode, 0, len(entries))
	for _, entry := range entries {
		if entry.Type == nil && entry.TypeID == nil {
			return 0, &ImportValidationError{Code: entry.Code}
		}
		dataDate, err := parseDateValue(entry.DataDate)
		if err != nil || dataDate == nil {
			return 0, ErrInvalidDate
		}

		row := models.ActivationCode{
			Code:       entry.Code,
			DataDate:   *dataDate,
			ImportedAt: now,
		}
		// type 字段存储层要求非空，仅提供 typeId 时保留 0 占位
		if entry.Type != nil {
			row.Type = *entry.Type
		}
		if entry.TypeID != nil {
			row.TypeID = entry.TypeID
		}
		rows = append(rows, row)
	}

	return s.repo.CreateBatchSkipDuplicates(rows)
}

// applyLifecycleUpdate 以读取到的状态为守卫执行单次条件更新。
// 守卫失配说明另一个切换操作已抢先完成，返回冲突而不是覆盖写。
func (s *ActivationCodeService) applyLifecycleUpdate(id uint, prior repository.LifecycleState, updates map[string]interface{}) (*models.ActivationCode, error) {
	rows, err := s.repo.UpdateLifecycleGuarded(id, prior, updates)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrStateConflict
	}
	code, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if code == nil {
		return nil, ErrNotFound
	}
	return code, nil
}

// buildFromInput 组装激活码实体并保证布尔位与时间戳成对。
func (s *ActivationCodeService) buildFromInput(input SaveActivationCodeInput) (*models.ActivationCode, error) {
	dataDate, err := parseDateValue(input.DataDate)
	if err != nil || dataDate == nil {
		return nil, ErrInvalidDate
	}
	activatedAt, err := parseDateValue(input.ActivatedAt)
	if err != nil {
		return nil, ErrInvalidDate
	}
	refundedAt, err := parseDateValue(input.RefundedAt)
	if err != nil {
		return nil, ErrInvalidDate
	}
	revokedAt, err := parseDateValue(input.RevokedAt)
	if err != nil {
		return nil, ErrInvalidDate
	}

	code := &models.ActivationCode{
		Code:        strings.TrimSpace(input.Code),
		Type:        input.Type,
		TypeID:      input.TypeID,
		Activated:   input.Activated,
		ActivatedAt: activatedAt,
		Refunded:    input.Refunded,
		RefundedAt:  refundedAt,
		RefundNote:  input.RefundNote,
		Revoked:     input.Revoked,
		RevokedAt:   revokedAt,
		DataDate:    *dataDate,
	}
	normalizeLifecycle(code)
	return code, nil
}

// normalizeLifecycle 强制生命周期不变式：
// 退款/收回依赖激活；布尔位与时间戳保持同步。
func normalizeLifecycle(code *models.ActivationCode) {
	now := time.Now()
	if !code.Activated {
		code.ActivatedAt = nil
		code.Refunded = false
		code.Revoked = false
	} else if code.ActivatedAt == nil {
		code.ActivatedAt = &now
	}
	if !code.Refunded {
		code.RefundedAt = nil
		code.RefundNote = nil
	} else if code.RefundedAt == nil {
		code.RefundedAt = &now
	}
	if !code.Revoked {
		code.RevokedAt = nil
	} else if code.RevokedAt == nil {
		code.RevokedAt = &now
	}
}

func lifecycleStateOf(code *models.ActivationCode) repository.LifecycleState {
	return repository.LifecycleState{
		Activated: code.Activated,
		Refunded:  code.Refunded,
		Revoked:   code.Revoked,
	}
}

// parseDateValue 解析日期字符串，空串返回 nil。
// 兼容 RFC3339、日期时间与纯日期三种格式。
func parseDateValue(value string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return &parsed, nil
		}
	}
	return nil, ErrInvalidDate
}
