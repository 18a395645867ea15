package provider

import (
	"github.com/actcode-admin/internal/config"
	"github.com/actcode-admin/internal/models"
	"github.com/actcode-admin/internal/repository"
	"github.com/actcode-admin/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// Repositories
	ActivationCodeRepo repository.ActivationCodeRepository
	CodeTypeRepo       repository.CodeTypeRepository

	// Services
	ActivationCodeService *service.ActivationCodeService
	CodeTypeService       *service.CodeTypeService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	c := &Container{Config: cfg}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ActivationCodeRepo = repository.NewActivationCodeRepository(db)
	c.CodeTypeRepo = repository.NewCodeTypeRepository(db)
}

func (c *Container) initServices() {
	c.ActivationCodeService = service.NewActivationCodeService(c.ActivationCodeRepo)
	c.CodeTypeService = service.NewCodeTypeService(c.CodeTypeRepo, c.ActivationCodeRepo)
}
