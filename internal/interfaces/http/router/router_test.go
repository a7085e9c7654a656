package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stockyard/backend/internal/application/catalog"
	"github.com/stockyard/backend/internal/application/identity"
	"github.com/stockyard/backend/internal/application/partner"
	"github.com/stockyard/backend/internal/application/production"
	"github.com/stockyard/backend/internal/application/trade"
	domaincatalog "github.com/stockyard/backend/internal/domain/catalog"
	domainidentity "github.com/stockyard/backend/internal/domain/identity"
	domainpartner "github.com/stockyard/backend/internal/domain/partner"
	domainproduction "github.com/stockyard/backend/internal/domain/production"
	domaintrade "github.com/stockyard/backend/internal/domain/trade"
	"github.com/stockyard/backend/internal/infrastructure/auth"
	"github.com/stockyard/backend/internal/infrastructure/config"
	"github.com/stockyard/backend/internal/infrastructure/persistence"
	"github.com/stockyard/backend/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires the full stack over an in-memory database
func newTestRouter(t *testing.T) *gin.Engine {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domainidentity.Organization{},
		&domainidentity.User{},
		&domaincatalog.Unit{},
		&domaincatalog.Product{},
		&domaincatalog.AllowedUnit{},
		&domainpartner.Vendor{},
		&domainpartner.Client{},
		&domaintrade.Purchase{},
		&domaintrade.PurchaseItem{},
		&domaintrade.Sale{},
		&domaintrade.SaleItem{},
		&domainproduction.Order{},
		&domainproduction.Input{},
	))

	log := zap.NewNop()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "stockyard-test",
		MaxRefreshCount:        10,
	})
	blacklist := auth.NewMemoryTokenBlacklist()

	userRepo := persistence.NewGormUserRepository(db)
	orgRepo := persistence.NewGormOrganizationRepository(db)
	unitRepo := persistence.NewGormUnitRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	vendorRepo := persistence.NewGormVendorRepository(db)
	clientRepo := persistence.NewGormClientRepository(db)
	purchaseRepo := persistence.NewGormPurchaseRepository(db)
	saleRepo := persistence.NewGormSaleRepository(db)
	orderRepo := persistence.NewGormProductionOrderRepository(db)
	txScope := persistence.NewGormTransactionScope(db)

	handlers := Handlers{
		Health:          handler.NewHealthHandler(nil, "test"),
		Auth:            handler.NewAuthHandler(identity.NewAuthService(userRepo, orgRepo, jwtService, blacklist, log)),
		Organization:    handler.NewOrganizationHandler(identity.NewOrganizationService(orgRepo, userRepo, log)),
		User:            handler.NewUserHandler(identity.NewUserService(userRepo, log)),
		Unit:            handler.NewUnitHandler(catalog.NewUnitService(unitRepo)),
		Product:         handler.NewProductHandler(catalog.NewProductService(productRepo, unitRepo)),
		Vendor:          handler.NewVendorHandler(partner.NewVendorService(vendorRepo)),
		Client:          handler.NewClientHandler(partner.NewClientService(clientRepo)),
		Purchase:        handler.NewPurchaseHandler(trade.NewPurchaseService(purchaseRepo, txScope)),
		Sale:            handler.NewSaleHandler(trade.NewSaleService(saleRepo, txScope)),
		ProductionOrder: handler.NewProductionOrderHandler(production.NewOrderService(orderRepo, txScope)),
	}

	return New(Config{
		Handlers:       handlers,
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		HTTP:           config.HTTPConfig{MaxBodyBytes: 1 << 20},
		Logger:         log,
	})
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	var envelope struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, "expected success envelope, got %s", rec.Body.String())
	return envelope.Data
}

func registerAdmin(t *testing.T, engine *gin.Engine, username string) string {
	rec := doJSON(t, engine, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username":          username,
		"email":             username + "@example.test",
		"password":          "correct-horse-battery",
		"organization_name": "Acme Metals " + username,
		"organization_slug": "acme-" + username,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	data := decodeData(t, rec)
	tokens, ok := data["tokens"].(map[string]any)
	require.True(t, ok)
	return tokens["access_token"].(string)
}

func TestHealthEndpointIsPublic(t *testing.T) {
	engine := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	engine := newTestRouter(t)

	rec := doJSON(t, engine, http.MethodGet, "/api/v1/products", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterLoginAndMe(t *testing.T) {
	engine := newTestRouter(t)
	registerAdmin(t, engine, "walter")

	loginRec := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "walter",
		"password": "correct-horse-battery",
	})
	require.Equal(t, http.StatusOK, loginRec.Code, loginRec.Body.String())

	data := decodeData(t, loginRec)
	tokens := data["tokens"].(map[string]any)
	access := tokens["access_token"].(string)

	meRec := doJSON(t, engine, http.MethodGet, "/api/v1/auth/me", access, nil)
	require.Equal(t, http.StatusOK, meRec.Code)
	me := decodeData(t, meRec)
	assert.Equal(t, "walter", me["username"])
	assert.Equal(t, "admin", me["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	engine := newTestRouter(t)
	registerAdmin(t, engine, "skyler")

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "skyler",
		"password": "not-the-password",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
}

func TestCatalogLifecycle(t *testing.T) {
	engine := newTestRouter(t)
	token := registerAdmin(t, engine, "gus")

	unitRec := doJSON(t, engine, http.MethodPost, "/api/v1/units", token, gin.H{
		"name":   "kilogram",
		"symbol": "kg",
	})
	require.Equal(t, http.StatusCreated, unitRec.Code, unitRec.Body.String())
	unitID := decodeData(t, unitRec)["id"].(string)

	gramRec := doJSON(t, engine, http.MethodPost, "/api/v1/units", token, gin.H{
		"name":              "gram",
		"symbol":            "g",
		"base_unit_id":      unitID,
		"conversion_factor": "0.001",
	})
	require.Equal(t, http.StatusCreated, gramRec.Code, gramRec.Body.String())
	gramID := decodeData(t, gramRec)["id"].(string)

	productRec := doJSON(t, engine, http.MethodPost, "/api/v1/products", token, gin.H{
		"name":          "Steel Rod",
		"base_unit_id":  unitID,
		"sale_price":    "12.50",
		"reorder_level": "5",
	})
	require.Equal(t, http.StatusCreated, productRec.Code, productRec.Body.String())
	product := decodeData(t, productRec)
	productID := product["id"].(string)
	assert.NotEmpty(t, product["sku"])
	assert.Equal(t, "0", product["stock"])

	allowRec := doJSON(t, engine, http.MethodPut,
		fmt.Sprintf("/api/v1/products/%s/allowed-units", productID), token,
		gin.H{"unit_ids": []string{gramID}})
	require.Equal(t, http.StatusOK, allowRec.Code, allowRec.Body.String())

	// Zero stock with reorder level 5 means the product shows up in
	// the below-reorder listing
	lowRec := doJSON(t, engine, http.MethodGet, "/api/v1/products/below-reorder", token, nil)
	require.Equal(t, http.StatusOK, lowRec.Code)
	assert.Contains(t, lowRec.Body.String(), productID)

	listRec := doJSON(t, engine, http.MethodGet, "/api/v1/products?page=1&page_size=10", token, nil)
	require.Equal(t, http.StatusOK, listRec.Code)
	assert.Contains(t, listRec.Body.String(), `"total":1`)
}

func TestVendorCRUD(t *testing.T) {
	engine := newTestRouter(t)
	token := registerAdmin(t, engine, "mike")

	createRec := doJSON(t, engine, http.MethodPost, "/api/v1/vendors", token, gin.H{
		"name":  "Los Pollos Supply",
		"phone": "555-0100",
	})
	require.Equal(t, http.StatusCreated, createRec.Code, createRec.Body.String())
	vendorID := decodeData(t, createRec)["id"].(string)

	updateRec := doJSON(t, engine, http.MethodPut, "/api/v1/vendors/"+vendorID, token, gin.H{
		"name":  "Los Pollos Supply Co",
		"email": "orders@lospollos.test",
	})
	require.Equal(t, http.StatusOK, updateRec.Code, updateRec.Body.String())
	assert.Equal(t, "Los Pollos Supply Co", decodeData(t, updateRec)["name"])

	deleteRec := doJSON(t, engine, http.MethodDelete, "/api/v1/vendors/"+vendorID, token, nil)
	require.Equal(t, http.StatusNoContent, deleteRec.Code)

	getRec := doJSON(t, engine, http.MethodGet, "/api/v1/vendors/"+vendorID, token, nil)
	assert.Equal(t, http.StatusNotFound, getRec.Code)
}

func TestOrganizationIsolation(t *testing.T) {
	engine := newTestRouter(t)
	tokenA := registerAdmin(t, engine, "saul")
	tokenB := registerAdmin(t, engine, "kim")

	createRec := doJSON(t, engine, http.MethodPost, "/api/v1/clients", tokenA, gin.H{
		"name": "Wayfarer Logistics",
	})
	require.Equal(t, http.StatusCreated, createRec.Code, createRec.Body.String())
	clientID := decodeData(t, createRec)["id"].(string)

	// Another organization cannot see the record, not even its existence
	rec := doJSON(t, engine, http.MethodGet, "/api/v1/clients/"+clientID, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	engine := newTestRouter(t)
	token := registerAdmin(t, engine, "jesse")

	logoutRec := doJSON(t, engine, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusNoContent, logoutRec.Code, logoutRec.Body.String())

	meRec := doJSON(t, engine, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, meRec.Code)
	assert.Contains(t, meRec.Body.String(), "TOKEN_REVOKED")
}
