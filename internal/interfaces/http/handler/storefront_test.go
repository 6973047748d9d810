package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	orderingapp "github.com/jx4/backend/internal/application/ordering"
	"github.com/jx4/backend/internal/domain/catalog"
	"github.com/jx4/backend/internal/domain/ordering"
	"github.com/jx4/backend/internal/domain/shared"
	"github.com/jx4/backend/internal/domain/siteconfig"
	"github.com/jx4/backend/internal/infrastructure/cache"
	"github.com/jx4/backend/internal/infrastructure/config"
	"github.com/jx4/backend/internal/infrastructure/messaging"
	"github.com/jx4/backend/internal/interfaces/http/dto"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, entity *catalog.Product) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByDepartment(ctx context.Context, slugs []string, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, slugs, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAvailable(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindCarriers(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

type MockDepartmentRepository struct {
	mock.Mock
}

func (m *MockDepartmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Department), args.Error(1)
}

func (m *MockDepartmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Department, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Department), args.Error(1)
}

func (m *MockDepartmentRepository) Save(ctx context.Context, entity *catalog.Department) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *MockDepartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDepartmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDepartmentRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Department, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Department), args.Error(1)
}

func (m *MockDepartmentRepository) FindActive(ctx context.Context) ([]catalog.Department, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Department), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, entity *ordering.Order) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) FindByCode(ctx context.Context, code string) (*ordering.Order, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByDepartments(ctx context.Context, slugs []string, filter shared.Filter) ([]ordering.Order, error) {
	args := m.Called(ctx, slugs, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordering.Order), args.Error(1)
}

type MockConfigRepository struct {
	mock.Mock
}

func (m *MockConfigRepository) Get(ctx context.Context) (*siteconfig.SiteConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*siteconfig.SiteConfig), args.Error(1)
}

func (m *MockConfigRepository) Save(ctx context.Context, config *siteconfig.SiteConfig) error {
	return m.Called(ctx, config).Error(0)
}

type storefrontFixture struct {
	productRepo    *MockProductRepository
	departmentRepo *MockDepartmentRepository
	orderRepo      *MockOrderRepository
	configRepo     *MockConfigRepository
	engine         *gin.Engine
}

func newStorefrontFixture(t *testing.T) *storefrontFixture {
	t.Helper()
	f := &storefrontFixture{
		productRepo:    new(MockProductRepository),
		departmentRepo: new(MockDepartmentRepository),
		orderRepo:      new(MockOrderRepository),
		configRepo:     new(MockConfigRepository),
	}

	snapshotCache := cache.NewSnapshotCache(f.productRepo, f.departmentRepo, f.configRepo)
	checkoutService := orderingapp.NewCheckoutService(
		f.productRepo,
		f.departmentRepo,
		f.orderRepo,
		f.configRepo,
		messaging.NewLinkBuilder(config.WhatsAppConfig{BaseURL: "https://wa.me"}),
		nil,
		zap.NewNop(),
	)

	h := NewStorefrontHandler(snapshotCache, checkoutService, nil)
	f.engine = gin.New()
	f.engine.GET("/tienda/catalogo", h.GetCatalog)
	f.engine.POST("/tienda/checkout", h.Checkout)
	f.engine.GET("/tienda/clientes/:telefono", h.GetCustomerProfile)
	return f
}

func testConfig(t *testing.T) *siteconfig.SiteConfig {
	t.Helper()
	cfg := siteconfig.Default()
	require.NoError(t, cfg.Update(decimal.NewFromFloat(36.5), "", "", "", "584120000000"))
	return cfg
}

func TestStorefront_GetCatalog(t *testing.T) {
	f := newStorefrontFixture(t)

	harina, err := catalog.NewProduct("Harina P.A.N.", decimal.NewFromFloat(1.80), "viveres", catalog.UnitUnd)
	require.NoError(t, err)
	viveres, err := catalog.NewDepartment("Víveres", "viveres")
	require.NoError(t, err)

	f.productRepo.On("FindAll", mock.Anything, mock.Anything).Return([]catalog.Product{*harina}, nil)
	f.departmentRepo.On("FindAll", mock.Anything, mock.Anything).Return([]catalog.Department{*viveres}, nil)
	f.configRepo.On("Get", mock.Anything).Return(testConfig(t), nil)

	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, httptest.NewRequest("GET", "/tienda/catalogo", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	body := w.Body.String()
	assert.Contains(t, body, "Harina P.A.N.")
	assert.Contains(t, body, "productos")
	assert.Contains(t, body, "departamentos")
	assert.Contains(t, body, "36.5")
}

func TestStorefront_Checkout(t *testing.T) {
	f := newStorefrontFixture(t)

	carne, err := catalog.NewProduct("Carne Molida", decimal.NewFromFloat(10.00), "carnes", catalog.UnitKg)
	require.NoError(t, err)
	carnes, err := catalog.NewDepartment("Carnes", "carnes")
	require.NoError(t, err)
	require.NoError(t, carnes.SetWhatsAppPhone("584241234567"))

	f.productRepo.On("FindByIDs", mock.Anything, []uuid.UUID{carne.ID}).Return([]catalog.Product{*carne}, nil)
	f.departmentRepo.On("FindBySlug", mock.Anything, "carnes").Return(carnes, nil)
	f.configRepo.On("Get", mock.Anything).Return(testConfig(t), nil)
	f.orderRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	payload := fmt.Sprintf(`{
		"nombre_cliente": "Ana Pérez",
		"telefono_cliente": "0424-1112233",
		"productos": [{"product_id": %q, "quantity": 2}],
		"metodo_entrega": "retiro",
		"metodo_pago": "pago móvil"
	}`, carne.ID)

	req := httptest.NewRequest("POST", "/tienda/checkout", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Success bool                        `json:"success"`
		Data    orderingapp.CheckoutResult  `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Data.OrderCode, "JX4-")
	assert.Equal(t, "20.00", resp.Data.TotalUSD.StringFixed(2))
	assert.Equal(t, "730.00", resp.Data.TotalVES.StringFixed(2))
	assert.True(t, resp.Data.Persist.Saved)
	assert.True(t, resp.Data.Notify.LinkBuilt)
	assert.Contains(t, resp.Data.Notify.Link, "https://wa.me/584241234567?text=")

	f.orderRepo.AssertExpectations(t)
}

func TestStorefront_CheckoutValidation(t *testing.T) {
	f := newStorefrontFixture(t)

	// Missing productos entirely fails binding before the service runs
	req := httptest.NewRequest("POST", "/tienda/checkout", bytes.NewBufferString(`{
		"nombre_cliente": "Ana Pérez",
		"telefono_cliente": "0424-1112233",
		"metodo_entrega": "retiro"
	}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestStorefront_CheckoutCrossDepartment(t *testing.T) {
	f := newStorefrontFixture(t)

	carne, err := catalog.NewProduct("Carne Molida", decimal.NewFromFloat(10.00), "carnes", catalog.UnitKg)
	require.NoError(t, err)
	harina, err := catalog.NewProduct("Harina P.A.N.", decimal.NewFromFloat(1.80), "viveres", catalog.UnitUnd)
	require.NoError(t, err)

	f.productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*carne, *harina}, nil)

	payload := fmt.Sprintf(`{
		"nombre_cliente": "Ana Pérez",
		"telefono_cliente": "0424-1112233",
		"productos": [
			{"product_id": %q, "quantity": 1},
			{"product_id": %q, "quantity": 1}
		],
		"metodo_entrega": "retiro"
	}`, carne.ID, harina.ID)

	req := httptest.NewRequest("POST", "/tienda/checkout", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CROSS_DEPARTMENT_CONFLICT")
	f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestStorefront_CustomerProfileWithoutStore(t *testing.T) {
	f := newStorefrontFixture(t)

	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, httptest.NewRequest("GET", "/tienda/clientes/04241112233", nil))

	// No Redis store wired: every lookup is a miss
	assert.Equal(t, http.StatusNotFound, w.Code)
}
