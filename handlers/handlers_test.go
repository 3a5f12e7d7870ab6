package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/medilinkhq/pharmacy_backend/config"
	"github.com/medilinkhq/pharmacy_backend/handlers"
	"github.com/medilinkhq/pharmacy_backend/ledger"
	"github.com/medilinkhq/pharmacy_backend/middlewares"
	"github.com/medilinkhq/pharmacy_backend/models"
	"github.com/medilinkhq/pharmacy_backend/storage"
)

func setupRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "handlers_test.db"))

	db, err := config.OpenDatabase()
	if err != nil {
		t.Fatalf("OpenDatabase: %v", err)
	}
	if err := models.MigrateTable(db); err != nil {
		t.Fatalf("MigrateTable: %v", err)
	}

	pharmacy := models.Pharmacy{Name: "Test Pharmacy", LicenseNumber: "HT-" + t.Name()}
	if err := db.Create(&pharmacy).Error; err != nil {
		t.Fatalf("create pharmacy: %v", err)
	}

	store := storage.NewGormStore(db)
	h := handlers.New(
		ledger.NewPurchaseLedger(store),
		ledger.NewSaleLedger(store),
		ledger.NewBatchRegistry(store),
		ledger.NewCatalog(store),
		ledger.NewTransactionLog(store),
	)

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middlewares.PharmacyMiddleware())
	api.POST("/products", h.CreateProduct)
	api.GET("/products/:id", h.GetProduct)
	api.GET("/reports/sales", h.SalesReport)

	return router, pharmacy.ID
}

func doJSON(t *testing.T, router *gin.Engine, method string, path string, pharmacyId string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if pharmacyId != "" {
		req.Header.Set("X-Pharmacy-Id", pharmacyId)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMissingPharmacyHeaderIsBadRequest(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/reports/sales", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestUnknownProductIsNotFound(t *testing.T) {
	router, pharmacyId := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/products/4242", pharmacyId, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestDuplicateSkuIsConflict(t *testing.T) {
	router, pharmacyId := setupRouter(t)

	body := map[string]any{"sku": "PARA-500", "name": "Paracetamol"}
	if w := doJSON(t, router, http.MethodPost, "/api/v1/products", pharmacyId, body); w.Code != http.StatusCreated {
		t.Fatalf("first create status = %d, want 201: %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, router, http.MethodPost, "/api/v1/products", pharmacyId, body); w.Code != http.StatusConflict {
		t.Fatalf("second create status = %d, want 409: %s", w.Code, w.Body.String())
	}
}

func TestSalesReportEmptyOk(t *testing.T) {
	router, pharmacyId := setupRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/reports/sales", pharmacyId, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	var report models.SalesReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Summary.TotalSales != 0 {
		t.Fatalf("total sales = %d, want 0", report.Summary.TotalSales)
	}
}
