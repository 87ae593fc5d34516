package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/saikrishna-dev/mandimitra-backend/pkg/db/models"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/enums"
	pkgerrors "github.com/saikrishna-dev/mandimitra-backend/pkg/errors"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/logger"
)

// Request configures a checkout run.
type Request struct {
	OrderMethod enums.OrderMethod `json:"orderMethod,omitempty"`
}

// Response returns every order produced by one checkout, in the order the
// wholesalers first appeared in the cart.
type Response struct {
	Orders []models.Order `json:"orders"`
}

// Service converts a buyer's cart into per-wholesaler orders.
type Service interface {
	Checkout(ctx context.Context, vendorID uuid.UUID, req Request) (*Response, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartStore interface {
	ListByUserForUpdate(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type productStore interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

type orderStore interface {
	Create(ctx context.Context, order *models.Order) error
}

// Deps bundles the transaction-bound repository factories the builder needs.
// Each factory receives the checkout transaction so that every read and write
// shares one atomic scope.
type Deps struct {
	TX       txRunner
	Logger   *logger.Logger
	Carts    func(tx *gorm.DB) cartStore
	Products func(tx *gorm.DB) productStore
	Orders   func(tx *gorm.DB) orderStore
}

type service struct {
	deps Deps
}

// NewService constructs the checkout service.
func NewService(deps Deps) (Service, error) {
	if deps.TX == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Carts == nil || deps.Products == nil || deps.Orders == nil {
		return nil, fmt.Errorf("repository factories are required")
	}
	return &service{deps: deps}, nil
}

// Checkout locks the cart, partitions it by wholesaler, snapshots prices into
// one pending order per wholesaler, and clears the cart. Everything happens in
// a single transaction: either all orders exist and the cart is empty, or
// nothing changed.
func (s *service) Checkout(ctx context.Context, vendorID uuid.UUID, req Request) (*Response, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	method := req.OrderMethod
	if method == "" {
		method = enums.OrderMethodManual
	}
	if !method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order method")
	}

	resp := &Response{Orders: []models.Order{}}
	err := s.deps.TX.WithTx(ctx, func(tx *gorm.DB) error {
		carts := s.deps.Carts(tx)
		items, err := carts.ListByUserForUpdate(ctx, vendorID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock cart")
		}
		if len(items) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ProductID)
		}
		found, err := s.deps.Products(tx).FindByIDs(ctx, ids)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart products")
		}
		productsByID := make(map[uuid.UUID]models.Product, len(found))
		for _, p := range found {
			productsByID[p.ID] = p
		}

		groups := groupBySeller(ctx, s.deps.Logger, items, productsByID)
		if len(groups) == 0 {
			// Every row pointed at a vanished product. Nothing to order; the
			// stale rows stay so the buyer can see what happened.
			s.deps.Logger.Warn(ctx, "checkout found no purchasable items")
			return nil
		}

		ordersRepo := s.deps.Orders(tx)
		for _, group := range groups {
			order := buildOrder(vendorID, method, group)
			if err := ordersRepo.Create(ctx, order); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
			}
			resp.Orders = append(resp.Orders, *order)
		}

		if err := carts.Clear(ctx, vendorID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// sellerGroup pairs one wholesaler with the cart lines addressed to them.
type sellerGroup struct {
	wholesalerID uuid.UUID
	lines        []sellerLine
}

type sellerLine struct {
	item    models.CartItem
	product models.Product
}

// groupBySeller partitions cart rows by wholesaler, preserving the order in
// which each wholesaler first appears in the cart. Rows whose product has
// disappeared are dropped with a warning rather than failing the checkout.
func groupBySeller(ctx context.Context, logg *logger.Logger, items []models.CartItem, productsByID map[uuid.UUID]models.Product) []sellerGroup {
	index := make(map[uuid.UUID]int)
	groups := make([]sellerGroup, 0)

	for _, item := range items {
		product, ok := productsByID[item.ProductID]
		if !ok {
			logg.Warn(logg.WithField(ctx, "product_id", item.ProductID.String()), "dropping cart row for missing product")
			continue
		}
		pos, seen := index[product.WholesalerID]
		if !seen {
			pos = len(groups)
			index[product.WholesalerID] = pos
			groups = append(groups, sellerGroup{wholesalerID: product.WholesalerID})
		}
		groups[pos].lines = append(groups[pos].lines, sellerLine{item: item, product: product})
	}
	return groups
}

// buildOrder snapshots the group's live prices into an immutable pending order.
func buildOrder(vendorID uuid.UUID, method enums.OrderMethod, group sellerGroup) *models.Order {
	lineItems := make([]models.OrderLineItem, 0, len(group.lines))
	total := decimal.Zero

	for _, line := range group.lines {
		qty := decimal.NewFromInt(int64(line.item.Quantity))
		lineTotal := line.product.Price.Mul(qty)
		lineItems = append(lineItems, models.OrderLineItem{
			ProductID:   line.product.ID,
			ProductName: line.product.Name,
			Unit:        line.product.Unit,
			Quantity:    line.item.Quantity,
			UnitPrice:   line.product.Price,
			LineTotal:   lineTotal,
		})
		total = total.Add(lineTotal)
	}

	return &models.Order{
		VendorID:     vendorID,
		WholesalerID: group.wholesalerID,
		Status:       enums.OrderStatusPending,
		OrderMethod:  method,
		TotalAmount:  total,
		Items:        lineItems,
	}
}
