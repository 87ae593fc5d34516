package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	internalauth "github.com/saikrishna-dev/mandimitra-backend/internal/auth"
	"github.com/saikrishna-dev/mandimitra-backend/internal/cart"
	checkoutsvc "github.com/saikrishna-dev/mandimitra-backend/internal/checkout"
	"github.com/saikrishna-dev/mandimitra-backend/internal/orders"
	"github.com/saikrishna-dev/mandimitra-backend/internal/products"
	"github.com/saikrishna-dev/mandimitra-backend/internal/users"
	"github.com/saikrishna-dev/mandimitra-backend/internal/voice"
	pkgauth "github.com/saikrishna-dev/mandimitra-backend/pkg/auth"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/auth/session"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/config"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/db/models"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/enums"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/logger"
)

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req internalauth.RegisterRequest) (*internalauth.LoginResponse, error) {
	return &internalauth.LoginResponse{AccessToken: "minted", RefreshToken: "refresh", User: &users.UserDTO{Username: req.Username}}, nil
}

func (stubAuthService) Login(ctx context.Context, req internalauth.LoginRequest) (*internalauth.LoginResponse, error) {
	return &internalauth.LoginResponse{AccessToken: "minted", RefreshToken: "refresh", User: &users.UserDTO{Username: req.Username}}, nil
}

func (stubAuthService) Refresh(ctx context.Context, accessToken string, req internalauth.RefreshRequest) (*internalauth.RefreshResponse, error) {
	return &internalauth.RefreshResponse{AccessToken: "rotated", RefreshToken: "rotated-refresh"}, nil
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error { return nil }

type stubUserStore struct{}

func (stubUserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return &models.User{ID: id, Username: "ramu", Role: enums.RoleVendor}, nil
}

func (stubUserStore) ListByRole(ctx context.Context, role enums.Role) ([]models.User, error) {
	return []models.User{{ID: uuid.New(), Username: "seller", Role: role}}, nil
}

func (stubUserStore) UpdatePreferredLanguage(ctx context.Context, id uuid.UUID, lang enums.Language) error {
	return nil
}

type stubProductService struct{}

func (stubProductService) List(ctx context.Context, filter products.ListFilter) (*products.ListResponse, error) {
	return &products.ListResponse{}, nil
}

func (stubProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return &models.Product{ID: id, Name: "onion"}, nil
}

func (stubProductService) Create(ctx context.Context, wholesalerID uuid.UUID, req products.CreateProductRequest) (*models.Product, error) {
	return &models.Product{ID: uuid.New(), WholesalerID: wholesalerID, Name: req.Name}, nil
}

func (stubProductService) Update(ctx context.Context, wholesalerID, productID uuid.UUID, req products.UpdateProductRequest) (*models.Product, error) {
	return &models.Product{ID: productID, WholesalerID: wholesalerID}, nil
}

func (stubProductService) Delete(ctx context.Context, wholesalerID, productID uuid.UUID) error {
	return nil
}

type stubCartService struct{}

func (stubCartService) Add(ctx context.Context, userID uuid.UUID, req cart.AddItemRequest) (*cart.Summary, error) {
	return &cart.Summary{Total: decimal.Zero}, nil
}

func (stubCartService) List(ctx context.Context, userID uuid.UUID) (*cart.Summary, error) {
	return &cart.Summary{Total: decimal.Zero}, nil
}

func (stubCartService) Remove(ctx context.Context, userID, cartItemID uuid.UUID) (*cart.Summary, error) {
	return &cart.Summary{Total: decimal.Zero}, nil
}

func (stubCartService) Clear(ctx context.Context, userID uuid.UUID) error { return nil }

type stubCheckoutService struct{}

func (stubCheckoutService) Checkout(ctx context.Context, vendorID uuid.UUID, req checkoutsvc.Request) (*checkoutsvc.Response, error) {
	return &checkoutsvc.Response{Orders: []models.Order{{ID: uuid.New(), VendorID: vendorID}}}, nil
}

type stubOrderService struct{}

func (stubOrderService) Create(ctx context.Context, vendorID uuid.UUID, req orders.CreateOrderRequest) (*models.Order, error) {
	return &models.Order{ID: uuid.New(), VendorID: vendorID}, nil
}

func (stubOrderService) List(ctx context.Context, actor orders.Actor, filter orders.ListFilter) (*orders.ListResponse, error) {
	return &orders.ListResponse{}, nil
}

func (stubOrderService) Get(ctx context.Context, actor orders.Actor, orderID uuid.UUID) (*models.Order, error) {
	return &models.Order{ID: orderID}, nil
}

func (stubOrderService) UpdateStatus(ctx context.Context, actor orders.Actor, orderID uuid.UUID, target enums.OrderStatus) (*models.Order, error) {
	return &models.Order{ID: orderID, Status: target}, nil
}

type stubVoiceService struct{}

func (stubVoiceService) Interpret(ctx context.Context, userID uuid.UUID, req voice.InterpretRequest) (*voice.Interpretation, error) {
	return &voice.Interpretation{CommandKey: "1", ProductName: "onion", Quantity: 1}, nil
}

type allowAllSessions struct{}

func (allowAllSessions) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(Deps{
		Config:          testConfig(),
		Logger:          logger.New(logger.Options{ServiceName: "test"}),
		Sessions:        allowAllSessions{},
		Registry:        prometheus.NewRegistry(),
		AuthService:     stubAuthService{},
		UserRepo:        stubUserStore{},
		ProductService:  stubProductService{},
		CartService:     stubCartService{},
		CheckoutService: stubCheckoutService{},
		OrderService:    stubOrderService{},
		VoiceService:    stubVoiceService{},
	})
}

func mintToken(t *testing.T, role enums.Role) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(testConfig().JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func doRequest(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/health/live", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)
	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/cart"},
		{http.MethodGet, "/api/orders"},
		{http.MethodGet, "/api/products"},
		{http.MethodGet, "/api/users/me"},
	}
	for _, p := range paths {
		rec := doRequest(t, router, p.method, p.path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 got %d", p.method, p.path, rec.Code)
		}
	}
}

func TestLoginIssuesToken(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodPost, "/api/auth/login", "", `{"username":"ramu","password":"secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-MM-Token"); got != "minted" {
		t.Fatalf("expected token header, got %q", got)
	}
}

func TestRegisterReturnsCreated(t *testing.T) {
	router := newTestRouter(t)
	body := `{"username":"ramu","password":"secret1","name":"Ramu","mobile":"9000000001","role":"vendor"}`
	rec := doRequest(t, router, http.MethodPost, "/api/auth/register", "", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCartRoutesAreVendorOnly(t *testing.T) {
	router := newTestRouter(t)

	vendor := mintToken(t, enums.RoleVendor)
	rec := doRequest(t, router, http.MethodGet, "/api/cart", vendor, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("vendor cart fetch: expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	wholesaler := mintToken(t, enums.RoleWholesaler)
	rec = doRequest(t, router, http.MethodGet, "/api/cart", wholesaler, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("wholesaler cart fetch: expected 403 got %d", rec.Code)
	}
}

func TestProductWritesAreWholesalerOnly(t *testing.T) {
	router := newTestRouter(t)
	body := `{"name":"Onion","category":"vegetables","price":"30","unit":"kg"}`

	wholesaler := mintToken(t, enums.RoleWholesaler)
	rec := doRequest(t, router, http.MethodPost, "/api/products", wholesaler, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("wholesaler create: expected 201 got %d: %s", rec.Code, rec.Body.String())
	}

	vendor := mintToken(t, enums.RoleVendor)
	rec = doRequest(t, router, http.MethodPost, "/api/products", vendor, body)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("vendor create: expected 403 got %d", rec.Code)
	}
}

func TestCheckoutCreatesOrders(t *testing.T) {
	router := newTestRouter(t)
	vendor := mintToken(t, enums.RoleVendor)

	rec := doRequest(t, router, http.MethodPost, "/api/checkout", vendor, `{"orderMethod":"manual"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Data struct {
			Orders []json.RawMessage `json:"orders"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Data.Orders) != 1 {
		t.Fatalf("expected one order, got %d", len(payload.Data.Orders))
	}
}

func TestOrderCreateAcceptsFullClientBody(t *testing.T) {
	router := newTestRouter(t)
	vendor := mintToken(t, enums.RoleVendor)

	// The app posts the whole built group per line, price and total included.
	body := fmt.Sprintf(
		`{"wholesalerId":%q,"orderMethod":"manual","items":[{"productId":%q,"quantity":2,"price":"30.00"}],"totalAmount":"60.00"}`,
		uuid.NewString(), uuid.NewString(),
	)
	rec := doRequest(t, router, http.MethodPost, "/api/orders", vendor, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestOrderStatusUpdateRoute(t *testing.T) {
	router := newTestRouter(t)
	wholesaler := mintToken(t, enums.RoleWholesaler)

	orderID := uuid.NewString()
	rec := doRequest(t, router, http.MethodPut, "/api/orders/"+orderID+"/status", wholesaler, `{"status":"confirmed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestVoiceInterpretIsVendorOnly(t *testing.T) {
	router := newTestRouter(t)

	vendor := mintToken(t, enums.RoleVendor)
	rec := doRequest(t, router, http.MethodPost, "/api/voice/interpret", vendor, `{"transcript":"2 kg pyaz"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("vendor interpret: expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	wholesaler := mintToken(t, enums.RoleWholesaler)
	rec = doRequest(t, router, http.MethodPost, "/api/voice/interpret", wholesaler, `{"transcript":"2 kg pyaz"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("wholesaler interpret: expected 403 got %d", rec.Code)
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(t)
	rec := doRequest(t, router, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}
