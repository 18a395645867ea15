package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/actcode-admin/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupActivationCodeRepositoryTest(t *testing.T) (*GormActivationCodeRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:activation_code_repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.ActivationCodeType{}, &models.ActivationCode{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewActivationCodeRepository(db), db
}

func seedActivationCodeRow(t *testing.T, repo *GormActivationCodeRepository, code string) *models.ActivationCode {
	t.Helper()
	row := &models.ActivationCode{
		Code:       code,
		Type:       30,
		DataDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ImportedAt: time.Now(),
	}
	if err := repo.Create(row); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return row
}

func TestUpdateLifecycleGuardedMatch(t *testing.T) {
	repo, _ := setupActivationCodeRepositoryTest(t)
	row := seedActivationCodeRow(t, repo, "ACT-GUARD-001")

	now := time.Now()
	rows, err := repo.UpdateLifecycleGuarded(row.ID, LifecycleState{}, map[string]interface{}{
		"activated":    true,
		"activated_at": now,
	})
	if err != nil {
		t.Fatalf("guarded update failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected 1 row affected, got: %d", rows)
	}

	updated, err := repo.GetByID(row.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !updated.Activated || updated.ActivatedAt == nil {
		t.Fatalf("expected activated row, got: %+v", updated)
	}
}

func TestUpdateLifecycleGuardedStaleState(t *testing.T) {
	repo, _ := setupActivationCodeRepositoryTest(t)
	row := seedActivationCodeRow(t, repo, "ACT-GUARD-002")

	// 基于过期快照的更新必须落空
	rows, err := repo.UpdateLifecycleGuarded(row.ID, LifecycleState{Activated: true}, map[string]interface{}{
		"refunded":    true,
		"refunded_at": time.Now(),
	})
	if err != nil {
		t.Fatalf("guarded update failed: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected 0 rows affected, got: %d", rows)
	}

	after, err := repo.GetByID(row.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if after.Refunded || after.RefundedAt != nil {
		t.Fatalf("expected unchanged row, got: %+v", after)
	}
}

func TestUpdateWritesNullableColumns(t *testing.T) {
	repo, _ := setupActivationCodeRepositoryTest(t)
	row := seedActivationCodeRow(t, repo, "ACT-NULL-001")

	now := time.Now()
	note := "备注"
	row.Activated = true
	row.ActivatedAt = &now
	row.Refunded = true
	row.RefundedAt = &now
	row.RefundNote = &note
	if err := repo.Update(row); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	// 全字段写入：布尔位与指针字段都要能被清空
	cleared := &models.ActivationCode{
		ID:       row.ID,
		Code:     row.Code,
		Type:     row.Type,
		DataDate: row.DataDate,
	}
	if err := repo.Update(cleared); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	after, err := repo.GetByID(row.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if after.Activated || after.ActivatedAt != nil || after.Refunded || after.RefundedAt != nil || after.RefundNote != nil {
		t.Fatalf("expected cleared lifecycle columns, got: %+v", after)
	}
}

func TestCreateBatchSkipDuplicatesEmpty(t *testing.T) {
	repo, _ := setupActivationCodeRepositoryTest(t)
	count, err := repo.CreateBatchSkipDuplicates(nil)
	if err != nil {
		t.Fatalf("batch create failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected count=0, got: %d", count)
	}
}

func TestCountByTypeID(t *testing.T) {
	repo, db := setupActivationCodeRepositoryTest(t)
	codeType := &models.ActivationCodeType{ID: "type-1", Name: "30天KEY", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if err := db.Create(codeType).Error; err != nil {
		t.Fatalf("create code type failed: %v", err)
	}

	row := seedActivationCodeRow(t, repo, "ACT-COUNT-001")
	row.TypeID = &codeType.ID
	if err := repo.Update(row); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	seedActivationCodeRow(t, repo, "ACT-COUNT-002")

	count, err := repo.CountByTypeID(codeType.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count=1, got: %d", count)
	}
}
