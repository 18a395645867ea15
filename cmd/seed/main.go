package main

import (
	"fmt"
	"time"

	"github.com/actcode-admin/internal/config"
	"github.com/actcode-admin/internal/logger"
	"github.com/actcode-admin/internal/models"

	"github.com/google/uuid"
)

// 开发环境种子数据：若干激活码类型与样例激活码。
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加激活码类型
	typeNames := []string{"30天KEY", "90天KEY", "365天KEY"}
	typeIDs := map[string]string{}
	for _, name := range typeNames {
		var existing models.ActivationCodeType
		if err := models.DB.Where("name = ?", name).First(&existing).Error; err != nil {
			codeType := models.ActivationCodeType{
				ID:        uuid.NewString(),
				Name:      name,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}
			if err := models.DB.Create(&codeType).Error; err != nil {
				stdLog.Printf("Failed to create code type %s: %v", name, err)
				continue
			}
			typeIDs[name] = codeType.ID
			stdLog.Printf("Created code type: %s", name)
		} else {
			typeIDs[name] = existing.ID
			stdLog.Printf("Code type already exists: %s", name)
		}
	}

	// 添加样例激活码
	now := time.Now()
	dataDate := now.Truncate(24 * time.Hour)
	days := []int{30, 90, 365}
	for i := 0; i < 9; i++ {
		day := days[i%len(days)]
		code := fmt.Sprintf("ACT-%s-%04d", now.Format("20060102"), i+1)
		typeID := typeIDs[fmt.Sprintf("%d天KEY", day)]

		var existing models.ActivationCode
		if err := models.DB.Where("code = ?", code).First(&existing).Error; err == nil {
			stdLog.Printf("Activation code already exists: %s", code)
			continue
		}
		record := models.ActivationCode{
			Code:       code,
			Type:       day,
			DataDate:   dataDate,
			ImportedAt: now,
		}
		if typeID != "" {
			record.TypeID = &typeID
		}
		if err := models.DB.Create(&record).Error; err != nil {
			stdLog.Printf("Failed to create activation code %s: %v", code, err)
			continue
		}
		stdLog.Printf("Created activation code: %s", code)
	}
}
