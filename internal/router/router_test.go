package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/actcode-admin/internal/config"
	"github.com/actcode-admin/internal/logger"
	"github.com/actcode-admin/internal/models"
	"github.com/actcode-admin/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func setupRouterTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.L = zap.NewNop()

	dsn := fmt.Sprintf("file:router_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.ActivationCodeType{}, &models.ActivationCode{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.CORS.AllowedOrigins = []string{"*"}
	return SetupRouter(cfg, provider.NewContainer(cfg))
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope failed: %v (body: %s)", err, w.Body.String())
	}
	return w, env
}

func TestActivationCodeRoutesEnvelope(t *testing.T) {
	engine := setupRouterTest(t)

	// 创建成功：code=0
	w, env := doJSON(t, engine, http.MethodPost, "/api/v1/admin/activation-code", gin.H{
		"code":     "ACT-HTTP-001",
		"type":     30,
		"dataDate": "2024-01-01",
	})
	if w.Code != http.StatusOK || env.Code != 0 {
		t.Fatalf("expected 200/code=0, got: %d/%d (%s)", w.Code, env.Code, env.Msg)
	}
	if w.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected request id header")
	}

	var created struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("unmarshal created record failed: %v", err)
	}

	// 重复创建：HTTP 仍是 200，业务码为 -1
	w, env = doJSON(t, engine, http.MethodPost, "/api/v1/admin/activation-code", gin.H{
		"code":     "ACT-HTTP-001",
		"type":     30,
		"dataDate": "2024-01-01",
	})
	if w.Code != http.StatusOK || env.Code != -1 || env.Msg != "激活码已存在!" {
		t.Fatalf("expected duplicate failure envelope, got: %d/%d (%s)", w.Code, env.Code, env.Msg)
	}

	// 未激活退款：业务失败
	w, env = doJSON(t, engine, http.MethodPatch, fmt.Sprintf("/api/v1/admin/activation-code/%d/refund", created.ID), nil)
	if w.Code != http.StatusOK || env.Code != -1 || env.Msg != "激活码未激活，无法操作" {
		t.Fatalf("expected precondition failure envelope, got: %d/%d (%s)", w.Code, env.Code, env.Msg)
	}

	// 激活
	w, env = doJSON(t, engine, http.MethodPatch, fmt.Sprintf("/api/v1/admin/activation-code/%d/activate", created.ID), nil)
	if env.Code != 0 || env.Msg != "激活成功" {
		t.Fatalf("expected activate success, got: %d (%s)", env.Code, env.Msg)
	}

	// 详情不存在
	w, env = doJSON(t, engine, http.MethodGet, "/api/v1/admin/activation-code/99999", nil)
	if w.Code != http.StatusOK || env.Code != -1 || env.Msg != "激活码不存在" {
		t.Fatalf("expected not-found envelope, got: %d/%d (%s)", w.Code, env.Code, env.Msg)
	}

	// 列表分页外壳
	w, env = doJSON(t, engine, http.MethodGet, "/api/v1/admin/activation-code?current=1&size=10", nil)
	if env.Code != 0 {
		t.Fatalf("expected list success, got: %d (%s)", env.Code, env.Msg)
	}
	var page struct {
		Records []json.RawMessage `json:"records"`
		Total   int64             `json:"total"`
		Current int               `json:"current"`
		Size    int               `json:"size"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("unmarshal page failed: %v", err)
	}
	if page.Total != 1 || len(page.Records) != 1 || page.Current != 1 || page.Size != 10 {
		t.Fatalf("unexpected page data: %+v", page)
	}
}

func TestBatchImportRouteEnvelope(t *testing.T) {
	engine := setupRouterTest(t)

	// 缺少 type 与 typeId 的行导致整批失败
	w, env := doJSON(t, engine, http.MethodPost, "/api/v1/admin/activation-code/batch-import", []gin.H{
		{"code": "ACT-HTTP-BATCH-001", "type": 30, "dataDate": "2024-01-01"},
		{"code": "ACT-HTTP-BATCH-002", "dataDate": "2024-01-01"},
	})
	if w.Code != http.StatusOK || env.Code != -1 || env.Msg != "激活码 ACT-HTTP-BATCH-002 必须提供 type 或 typeId" {
		t.Fatalf("expected validation failure envelope, got: %d/%d (%s)", w.Code, env.Code, env.Msg)
	}

	_, env = doJSON(t, engine, http.MethodPost, "/api/v1/admin/activation-code/batch-import", []gin.H{
		{"code": "ACT-HTTP-BATCH-001", "type": 30, "dataDate": "2024-01-01"},
		{"code": "ACT-HTTP-BATCH-003", "type": 90, "dataDate": "2024-01-01"},
	})
	if env.Code != 0 || env.Msg != "成功导入 2 个激活码" {
		t.Fatalf("expected import success envelope, got: %d (%s)", env.Code, env.Msg)
	}
}

func TestCodeTypeRoutesEnvelope(t *testing.T) {
	engine := setupRouterTest(t)

	w, env := doJSON(t, engine, http.MethodPost, "/api/v1/admin/code-type", gin.H{"name": "30天KEY"})
	if w.Code != http.StatusOK || env.Code != 0 {
		t.Fatalf("expected create success, got: %d/%d (%s)", w.Code, env.Code, env.Msg)
	}

	_, env = doJSON(t, engine, http.MethodPost, "/api/v1/admin/code-type", gin.H{"name": "30天KEY"})
	if env.Code != -1 || env.Msg != "激活码类型名称已存在!" {
		t.Fatalf("expected duplicate name envelope, got: %d (%s)", env.Code, env.Msg)
	}

	_, env = doJSON(t, engine, http.MethodGet, "/api/v1/admin/code-type/missing-id", nil)
	if env.Code != -1 || env.Msg != "激活码类型不存在" {
		t.Fatalf("expected not-found envelope, got: %d (%s)", env.Code, env.Msg)
	}
}
