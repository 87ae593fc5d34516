package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/saikrishna-dev/mandimitra-backend/pkg/db/models"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/enums"
	pkgerrors "github.com/saikrishna-dev/mandimitra-backend/pkg/errors"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/logger"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/pagination"
)

// Service defines the order history and lifecycle operations.
type Service interface {
	Create(ctx context.Context, vendorID uuid.UUID, req CreateOrderRequest) (*models.Order, error)
	List(ctx context.Context, actor Actor, filter ListFilter) (*ListResponse, error)
	Get(ctx context.Context, actor Actor, orderID uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, actor Actor, orderID uuid.UUID, target enums.OrderStatus) (*models.Order, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productFinder interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	products productFinder
	logg     *logger.Logger
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, tx txRunner, products productFinder, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, products: products, logg: logg}, nil
}

// Create places a direct order against a single wholesaler. Prices are read
// fresh from the catalog inside the transaction, never trusted from the
// client.
func (s *service) Create(ctx context.Context, vendorID uuid.UUID, req CreateOrderRequest) (*models.Order, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if req.WholesalerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wholesaler id required")
	}
	if len(req.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}
	method := req.OrderMethod
	if method == "" {
		method = enums.OrderMethodManual
	}
	if !method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order method")
	}
	for _, line := range req.Items {
		if line.ProductID == uuid.Nil || line.Quantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "each item needs a product id and a positive quantity")
		}
	}

	var created *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		ids := make([]uuid.UUID, 0, len(req.Items))
		for _, line := range req.Items {
			ids = append(ids, line.ProductID)
		}
		found, err := s.products.FindByIDs(ctx, ids)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
		}
		byID := make(map[uuid.UUID]models.Product, len(found))
		for _, p := range found {
			byID[p.ID] = p
		}

		total := decimal.Zero
		lineItems := make([]models.OrderLineItem, 0, len(req.Items))
		for _, line := range req.Items {
			product, ok := byID[line.ProductID]
			if !ok {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			if product.WholesalerID != req.WholesalerID {
				return pkgerrors.New(pkgerrors.CodeValidation, "all items must belong to the same wholesaler")
			}
			if line.Price.Valid && !line.Price.Decimal.Equal(product.Price) {
				return pkgerrors.New(pkgerrors.CodeValidation, "item price does not match current catalog price")
			}
			lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			lineItems = append(lineItems, models.OrderLineItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Unit:        product.Unit,
				Quantity:    line.Quantity,
				UnitPrice:   product.Price,
				LineTotal:   lineTotal,
			})
			total = total.Add(lineTotal)
		}

		if req.TotalAmount.Valid && !req.TotalAmount.Decimal.Equal(total) {
			return pkgerrors.New(pkgerrors.CodeValidation, "total amount does not match current prices")
		}

		order := &models.Order{
			VendorID:     vendorID,
			WholesalerID: req.WholesalerID,
			Status:       enums.OrderStatusPending,
			OrderMethod:  method,
			TotalAmount:  total,
			Items:        lineItems,
		}
		if err := s.repo.WithTx(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) List(ctx context.Context, actor Actor, filter ListFilter) (*ListResponse, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}

	var (
		found []models.Order
		err   error
	)
	switch actor.Role {
	case enums.RoleVendor:
		found, err = s.repo.ListByVendor(ctx, actor.UserID, filter)
	case enums.RoleWholesaler:
		found, err = s.repo.ListByWholesaler(ctx, actor.UserID, filter)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "unknown role")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	limit := pagination.NormalizeLimit(filter.Page.Limit)
	next := ""
	if len(found) > limit {
		found = found[:limit]
		last := found[len(found)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return &ListResponse{Orders: found, NextCursor: next}, nil
}

func (s *service) Get(ctx context.Context, actor Actor, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.loadForActor(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus advances the lifecycle with a compare-and-swap write so that
// two racing updates cannot both succeed from the same starting state.
func (s *service) UpdateStatus(ctx context.Context, actor Actor, orderID uuid.UUID, target enums.OrderStatus) (*models.Order, error) {
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}

	order, err := s.loadForActor(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeTransition(actor, order, target); err != nil {
		return nil, err
	}
	if !order.Status.CanTransition(target) {
		return nil, pkgerrors.New(
			pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, target),
		)
	}

	swapped, err := s.repo.UpdateStatusCAS(ctx, order.ID, order.Status, target)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	if !swapped {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order status changed concurrently")
	}

	ctx = s.logg.WithOrderID(ctx, order.ID.String())
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"from": order.Status.String(),
		"to":   target.String(),
	}), "order status updated")

	// Re-read so the caller sees the refreshed updated_at, not the
	// pre-transition row.
	updated, err := s.repo.FindByID(ctx, order.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
	}
	return updated, nil
}

// authorizeTransition enforces who may move an order: the wholesaler drives
// the lifecycle, the vendor may only confirm pickup (ready -> completed).
func (s *service) authorizeTransition(actor Actor, order *models.Order, target enums.OrderStatus) error {
	switch actor.Role {
	case enums.RoleWholesaler:
		return nil
	case enums.RoleVendor:
		if order.Status == enums.OrderStatusReady && target == enums.OrderStatusCompleted {
			return nil
		}
		return pkgerrors.New(pkgerrors.CodeForbidden, "vendors may only complete ready orders")
	default:
		return pkgerrors.New(pkgerrors.CodeForbidden, "unknown role")
	}
}

func (s *service) loadForActor(ctx context.Context, actor Actor, orderID uuid.UUID) (*models.Order, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	switch actor.Role {
	case enums.RoleVendor:
		if order.VendorID != actor.UserID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to vendor")
		}
	case enums.RoleWholesaler:
		if order.WholesalerID != actor.UserID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to wholesaler")
		}
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "unknown role")
	}
	return order, nil
}
