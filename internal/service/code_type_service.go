package service

import (
	"strings"
	"time"

	"github.com/actcode-admin/internal/models"
	"github.com/actcode-admin/internal/repository"

	"github.com/google/uuid"
)

// CodeTypeService 激活码类型业务服务
type CodeTypeService struct {
	repo     repository.CodeTypeRepository
	codeRepo repository.ActivationCodeRepository
}

// NewCodeTypeService 创建激活码类型服务
func NewCodeTypeService(repo repository.CodeTypeRepository, codeRepo repository.ActivationCodeRepository) *CodeTypeService {
	return &CodeTypeService{repo: repo, codeRepo: codeRepo}
}

// List 分页查询激活码类型列表，按创建时间倒序。
func (s *CodeTypeService) List(name string, current, size int) ([]models.ActivationCodeType, int64, error) {
	filter := repository.CodeTypeListFilter{
		Current: current,
		Size:    size,
		Name:    strings.TrimSpace(name),
	}
	return s.repo.List(filter)
}

// GetByID 查询激活码类型详情
func (s *CodeTypeService) GetByID(id string) (*models.ActivationCodeType, error) {
	codeType, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if codeType == nil {
		return nil, ErrNotFound
	}
	return codeType, nil
}

// Create 创建激活码类型
func (s *CodeTypeService) Create(name string) (*models.ActivationCodeType, error) {
	now := time.Now()
	codeType := &models.ActivationCodeType{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(codeType); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCodeTypeNameExists
		}
		return nil, err
	}
	return codeType, nil
}

// Update 更新激活码类型，先校验存在性。
func (s *CodeTypeService) Update(id, name string) (*models.ActivationCodeType, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	existing.Name = strings.TrimSpace(name)
	existing.UpdatedAt = time.Now()
	if err := s.repo.Update(existing); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCodeTypeNameExists
		}
		return nil, err
	}
	return existing, nil
}

// Delete 删除激活码类型。
// 仍被激活码引用的类型拒绝删除，避免留下悬空引用。
func (s *CodeTypeService) Delete(id string) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	refs, err := s.codeRepo.CountByTypeID(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrCodeTypeInUse
	}
	return s.repo.Delete(id)
}
