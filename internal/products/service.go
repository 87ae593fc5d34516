package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/saikrishna-dev/mandimitra-backend/pkg/db/models"
	pkgerrors "github.com/saikrishna-dev/mandimitra-backend/pkg/errors"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/pagination"
)

// ListResponse carries one catalog page plus the cursor for the next one.
type ListResponse struct {
	Products   []models.Product `json:"products"`
	NextCursor string           `json:"nextCursor,omitempty"`
}

// Service defines catalog operations used by the controllers.
type Service interface {
	List(ctx context.Context, filter ListFilter) (*ListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, wholesalerID uuid.UUID, req CreateProductRequest) (*models.Product, error)
	Update(ctx context.Context, wholesalerID, productID uuid.UUID, req UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, wholesalerID, productID uuid.UUID) error
}

type repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Save(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter) ([]models.Product, error)
}

type service struct {
	repo repository
}

// NewService constructs the catalog service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) (*ListResponse, error) {
	if filter.Category != nil && !filter.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}

	found, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	limit := pagination.NormalizeLimit(filter.Page.Limit)
	next := ""
	if len(found) > limit {
		found = found[:limit]
		last := found[len(found)-1]
		next = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	return &ListResponse{Products: found, NextCursor: next}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) Create(ctx context.Context, wholesalerID uuid.UUID, req CreateProductRequest) (*models.Product, error) {
	if wholesalerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if !req.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}
	if !req.Unit.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid unit")
	}
	if req.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	minQty := req.MinQuantity
	if minQty <= 0 {
		minQty = 1
	}

	product := &models.Product{
		Name:         req.Name,
		NameHi:       req.NameHi,
		NameTe:       req.NameTe,
		VoiceAliases: pq.StringArray(req.VoiceAliases),
		Category:     req.Category,
		Price:        req.Price,
		Unit:         req.Unit,
		WholesalerID: wholesalerID,
		ImageURL:     req.ImageURL,
		InStock:      true,
		MinQuantity:  minQty,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, wholesalerID, productID uuid.UUID, req UpdateProductRequest) (*models.Product, error) {
	product, err := s.loadOwned(ctx, wholesalerID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.NameHi != nil {
		product.NameHi = req.NameHi
	}
	if req.NameTe != nil {
		product.NameTe = req.NameTe
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
		}
		product.Price = *req.Price
	}
	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if req.MinQuantity != nil {
		if *req.MinQuantity < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "min quantity must be at least 1")
		}
		product.MinQuantity = *req.MinQuantity
	}

	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save product")
	}
	return saved, nil
}

func (s *service) Delete(ctx context.Context, wholesalerID, productID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, wholesalerID, productID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) loadOwned(ctx context.Context, wholesalerID, productID uuid.UUID) (*models.Product, error) {
	if wholesalerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product.WholesalerID != wholesalerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "product does not belong to wholesaler")
	}
	return product, nil
}
