package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/saikrishna-dev/mandimitra-backend/pkg/db/models"
	pkgerrors "github.com/saikrishna-dev/mandimitra-backend/pkg/errors"
)

// Service defines the buyer-facing cart operations.
type Service interface {
	Add(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*Summary, error)
	List(ctx context.Context, userID uuid.UUID) (*Summary, error)
	Remove(ctx context.Context, userID, cartItemID uuid.UUID) (*Summary, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartRepository interface {
	Upsert(ctx context.Context, item *models.CartItem) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	Remove(ctx context.Context, userID, cartItemID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type productFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

type service struct {
	carts    cartRepository
	products productFinder
}

// NewService constructs the cart service.
func NewService(carts cartRepository, products productFinder) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder is required")
	}
	return &service{carts: carts, products: products}, nil
}

func (s *service) Add(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*Summary, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if req.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if req.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	// Stock is not checked here; availability is the checkout's concern and
	// listings can flip back in stock before the buyer checks out.
	if _, err := s.products.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	if err := s.carts.Upsert(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert cart item")
	}

	return s.List(ctx, userID)
}

func (s *service) List(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	items, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart items")
	}

	summary, err := s.buildSummary(ctx, items)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *service) Remove(ctx context.Context, userID, cartItemID uuid.UUID) (*Summary, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if cartItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart item id required")
	}

	// Removing an item that is not in the cart succeeds silently.
	if err := s.carts.Remove(ctx, userID, cartItemID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
	}
	return s.List(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if err := s.carts.Clear(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) buildSummary(ctx context.Context, items []models.CartItem) (*Summary, error) {
	summary := &Summary{
		Lines: make([]Line, 0, len(items)),
		Total: decimal.Zero,
	}
	if len(items) == 0 {
		return summary, nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	found, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart products")
	}
	byID := make(map[uuid.UUID]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			// Listing was deleted since the add; skip the stale row.
			continue
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		summary.Lines = append(summary.Lines, Line{
			Item:      item,
			Product:   product,
			LineTotal: lineTotal,
		})
		summary.Total = summary.Total.Add(lineTotal)
	}
	return summary, nil
}
