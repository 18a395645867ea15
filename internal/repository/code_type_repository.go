package repository

import (
	"errors"
	"fmt"

	"github.com/actcode-admin/internal/models"

	"gorm.io/gorm"
)

// CodeTypeRepository 激活码类型数据访问接口
type CodeTypeRepository interface {
	List(filter CodeTypeListFilter) ([]models.ActivationCodeType, int64, error)
	GetByID(id string) (*models.ActivationCodeType, error)
	Create(codeType *models.ActivationCodeType) error
	Update(codeType *models.ActivationCodeType) error
	Delete(id string) error
	WithTx(tx *gorm.DB) *GormCodeTypeRepository
}

// GormCodeTypeRepository GORM 实现
type GormCodeTypeRepository struct {
	db *gorm.DB
}

// NewCodeTypeRepository 创建激活码类型仓库
func NewCodeTypeRepository(db *gorm.DB) *GormCodeTypeRepository {
	return &GormCodeTypeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCodeTypeRepository) WithTx(tx *gorm.DB) *GormCodeTypeRepository {
	if tx == nil {
		return r
	}
	return &GormCodeTypeRepository{db: tx}
}

func (r *GormCodeTypeRepository) buildListQuery(filter CodeTypeListFilter) *gorm.DB {
	query := r.db.Model(&models.ActivationCodeType{})
	if filter.Name != "" {
		query = query.Where(fmt.Sprintf("name %s ?", likeOperator(r.db)), "%"+filter.Name+"%")
	}
	return query
}

// List 分页获取激活码类型列表及总数
func (r *GormCodeTypeRepository) List(filter CodeTypeListFilter) ([]models.ActivationCodeType, int64, error) {
	var total int64
	if err := r.buildListQuery(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := applyPagination(r.buildListQuery(filter), filter.Current, filter.Size)
	var items []models.ActivationCodeType
	if err := query.Order("created_at desc").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetByID 根据 ID 获取激活码类型
func (r *GormCodeTypeRepository) GetByID(id string) (*models.ActivationCodeType, error) {
	var codeType models.ActivationCodeType
	if err := r.db.First(&codeType, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &codeType, nil
}

// Create 创建激活码类型
func (r *GormCodeTypeRepository) Create(codeType *models.ActivationCodeType) error {
	return r.db.Create(codeType).Error
}

// Update 更新激活码类型
func (r *GormCodeTypeRepository) Update(codeType *models.ActivationCodeType) error {
	return r.db.Save(codeType).Error
}

// Delete 删除激活码类型
func (r *GormCodeTypeRepository) Delete(id string) error {
	return r.db.Delete(&models.ActivationCodeType{}, "id = ?", id).Error
}
