package products

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/saikrishna-dev/mandimitra-backend/pkg/db/models"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/enums"
	pkgerrors "github.com/saikrishna-dev/mandimitra-backend/pkg/errors"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/pagination"
)

type stubProductRepo struct {
	byID    map[uuid.UUID]*models.Product
	listed  []models.Product
	deleted []uuid.UUID
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[uuid.UUID]*models.Product)}
}

func (s *stubProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := s.byID[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProductRepo) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.ID = uuid.New()
	product.CreatedAt = time.Now()
	s.byID[product.ID] = product
	return product, nil
}

func (s *stubProductRepo) Save(ctx context.Context, product *models.Product) (*models.Product, error) {
	s.byID[product.ID] = product
	return product, nil
}

func (s *stubProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.byID, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubProductRepo) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	return s.listed, nil
}

func newTestService(t *testing.T, repo *stubProductRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateProductDefaults(t *testing.T) {
	repo := newStubProductRepo()
	svc := newTestService(t, repo)
	wholesalerID := uuid.New()

	created, err := svc.Create(context.Background(), wholesalerID, CreateProductRequest{
		Name:     "Onion",
		Category: enums.ProductCategoryVegetables,
		Price:    decimal.NewFromInt(30),
		Unit:     enums.ProductUnitKg,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.MinQuantity != 1 {
		t.Fatalf("expected min quantity default 1, got %d", created.MinQuantity)
	}
	if !created.InStock {
		t.Fatal("expected new product in stock")
	}
	if created.WholesalerID != wholesalerID {
		t.Fatal("wholesaler not bound to product")
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := newTestService(t, newStubProductRepo())

	_, err := svc.Create(context.Background(), uuid.New(), CreateProductRequest{
		Name:     "Onion",
		Category: "meat",
		Price:    decimal.NewFromInt(30),
		Unit:     enums.ProductUnitKg,
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for category, got %v", err)
	}

	_, err = svc.Create(context.Background(), uuid.New(), CreateProductRequest{
		Name:     "Onion",
		Category: enums.ProductCategoryVegetables,
		Price:    decimal.NewFromInt(-5),
		Unit:     enums.ProductUnitKg,
	})
	if appErr = pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for price, got %v", err)
	}
}

func TestUpdateProductOwnership(t *testing.T) {
	repo := newStubProductRepo()
	svc := newTestService(t, repo)

	owner := uuid.New()
	productID := uuid.New()
	repo.byID[productID] = &models.Product{
		ID:           productID,
		Name:         "Tomato",
		Category:     enums.ProductCategoryVegetables,
		Price:        decimal.NewFromInt(40),
		Unit:         enums.ProductUnitKg,
		WholesalerID: owner,
		InStock:      true,
		MinQuantity:  1,
	}

	newPrice := decimal.NewFromInt(45)
	updated, err := svc.Update(context.Background(), owner, productID, UpdateProductRequest{Price: &newPrice})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Price.Equal(newPrice) {
		t.Fatalf("price not updated, got %s", updated.Price)
	}

	_, err = svc.Update(context.Background(), uuid.New(), productID, UpdateProductRequest{Price: &newPrice})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for other wholesaler, got %v", err)
	}

	_, err = svc.Update(context.Background(), owner, uuid.New(), UpdateProductRequest{Price: &newPrice})
	if appErr = pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListPaginatesWithCursor(t *testing.T) {
	repo := newStubProductRepo()
	svc := newTestService(t, repo)

	now := time.Now()
	for i := 0; i < 3; i++ {
		repo.listed = append(repo.listed, models.Product{
			ID:        uuid.New(),
			Name:      "Item",
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
		})
	}

	resp, err := svc.List(context.Background(), ListFilter{Page: pagination.Params{Limit: 2}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(resp.Products) != 2 {
		t.Fatalf("expected trimmed page of 2, got %d", len(resp.Products))
	}
	if resp.NextCursor == "" {
		t.Fatal("expected next cursor when more rows exist")
	}

	cursor, err := pagination.ParseCursor(resp.NextCursor)
	if err != nil {
		t.Fatalf("parse next cursor: %v", err)
	}
	if cursor.ID != resp.Products[1].ID {
		t.Fatal("cursor should reference last returned row")
	}
}

func TestDeleteProduct(t *testing.T) {
	repo := newStubProductRepo()
	svc := newTestService(t, repo)

	owner := uuid.New()
	productID := uuid.New()
	repo.byID[productID] = &models.Product{
		ID:           productID,
		WholesalerID: owner,
	}

	if err := svc.Delete(context.Background(), owner, productID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != productID {
		t.Fatalf("expected delete call, got %v", repo.deleted)
	}
}
