package repository

import (
	"errors"
	"fmt"

	"github.com/actcode-admin/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LifecycleState 激活码三个生命周期布尔位的快照，
// 作为条件更新的前置状态守卫使用。
type LifecycleState struct {
	Activated bool
	Refunded  bool
	Revoked   bool
}

// ActivationCodeRepository 激活码数据访问接口
type ActivationCodeRepository interface {
	List(filter ActivationCodeListFilter) ([]models.ActivationCode, int64, error)
	ListForExport(filter ActivationCodeExportFilter) ([]models.ActivationCode, error)
	GetByID(id uint) (*models.ActivationCode, error)
	Create(code *models.ActivationCode) error
	CreateBatchSkipDuplicates(items []models.ActivationCode) (int64, error)
	Update(code *models.ActivationCode) error
	UpdateLifecycleGuarded(id uint, prior LifecycleState, updates map[string]interface{}) (int64, error)
	Delete(id uint) error
	CountByTypeID(typeID string) (int64, error)
	WithTx(tx *gorm.DB) *GormActivationCodeRepository
}

// GormActivationCodeRepository GORM 实现
type GormActivationCodeRepository struct {
	db *gorm.DB
}

// NewActivationCodeRepository 创建激活码仓库
func NewActivationCodeRepository(db *gorm.DB) *GormActivationCodeRepository {
	return &GormActivationCodeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormActivationCodeRepository) WithTx(tx *gorm.DB) *GormActivationCodeRepository {
	if tx == nil {
		return r
	}
	return &GormActivationCodeRepository{db: tx}
}

// buildListQuery 构建列表与总数共用的查询条件，保证两者过滤逻辑一致。
func (r *GormActivationCodeRepository) buildListQuery(filter ActivationCodeListFilter) *gorm.DB {
	query := r.db.Model(&models.ActivationCode{})
	if filter.Code != "" {
		query = query.Where(fmt.Sprintf("code %s ?", likeOperator(r.db)), "%"+filter.Code+"%")
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.TypeID != "" {
		query = query.Where("type_id = ?", filter.TypeID)
	}
	if filter.Activated != nil {
		query = query.Where("activated = ?", *filter.Activated)
	}
	if filter.Refunded != nil {
		query = query.Where("refunded = ?", *filter.Refunded)
	}
	if filter.Revoked != nil {
		query = query.Where("revoked = ?", *filter.Revoked)
	}
	if filter.DataDateFrom != nil {
		query = query.Where("data_date >= ?", *filter.DataDateFrom)
	}
	if filter.DataDateTo != nil {
		query = query.Where("data_date <= ?", *filter.DataDateTo)
	}
	return query
}

// List 分页获取激活码列表及总数，两者使用同一份过滤条件。
func (r *GormActivationCodeRepository) List(filter ActivationCodeListFilter) ([]models.ActivationCode, int64, error) {
	var total int64
	if err := r.buildListQuery(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := applyPagination(r.buildListQuery(filter), filter.Current, filter.Size)
	var items []models.ActivationCode
	if err := query.Order("imported_at desc").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListForExport 获取导出用全量数据（不分页）
func (r *GormActivationCodeRepository) ListForExport(filter ActivationCodeExportFilter) ([]models.ActivationCode, error) {
	query := r.db.Model(&models.ActivationCode{})
	if filter.DataDateFrom != nil {
		query = query.Where("data_date >= ?", *filter.DataDateFrom)
	}
	if filter.DataDateTo != nil {
		query = query.Where("data_date <= ?", *filter.DataDateTo)
	}
	var items []models.ActivationCode
	if err := query.Order("data_date desc, imported_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID 根据 ID 获取激活码
func (r *GormActivationCodeRepository) GetByID(id uint) (*models.ActivationCode, error) {
	var code models.ActivationCode
	if err := r.db.First(&code, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &code, nil
}

// Create 创建激活码
func (r *GormActivationCodeRepository) Create(code *models.ActivationCode) error {
	return r.db.Create(code).Error
}

// CreateBatchSkipDuplicates 批量创建激活码，code 冲突的行直接跳过，
// 返回实际写入的行数。
func (r *GormActivationCodeRepository) CreateBatchSkipDuplicates(items []models.ActivationCode) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&items)
	return result.RowsAffected, result.Error
}

// Update 更新激活码（全字段写入，时间戳可被置空）
func (r *GormActivationCodeRepository) Update(code *models.ActivationCode) error {
	return r.db.Model(&models.ActivationCode{}).
		Where("id = ?", code.ID).
		Select("code", "type", "type_id", "activated", "activated_at",
			"refunded", "refunded_at", "refund_note", "revoked", "revoked_at", "data_date").
		Updates(code).Error
}

// UpdateLifecycleGuarded 以当前生命周期状态为守卫执行单次条件更新，
// 返回受影响行数；并发切换同一条记录时守卫失配返回 0。
func (r *GormActivationCodeRepository) UpdateLifecycleGuarded(id uint, prior LifecycleState, updates map[string]interface{}) (int64, error) {
	result := r.db.Model(&models.ActivationCode{}).
		Where("id = ? AND activated = ? AND refunded = ? AND revoked = ?",
			id, prior.Activated, prior.Refunded, prior.Revoked).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// Delete 删除激活码
func (r *GormActivationCodeRepository) Delete(id uint) error {
	return r.db.Delete(&models.ActivationCode{}, id).Error
}

// CountByTypeID 统计引用指定类型的激活码数量
func (r *GormActivationCodeRepository) CountByTypeID(typeID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.ActivationCode{}).Where("type_id = ?", typeID).Count(&count).Error
	return count, err
}
