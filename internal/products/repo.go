package products

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/saikrishna-dev/mandimitra-backend/pkg/db/models"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/pagination"
)

// Repository wires together product-related persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDs loads multiple products keyed by their UUID.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// Create inserts a new product row.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Save persists all fields of an existing product row.
func (r *Repository) Save(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// List pages through the catalog applying the provided filters. It fetches one
// row beyond the requested limit so callers can detect the next page.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.WholesalerID != nil {
		query = query.Where("wholesaler_id = ?", *filter.WholesalerID)
	}
	if filter.InStockOnly {
		query = query.Where("in_stock = TRUE")
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(COALESCE(name_hi, '')) LIKE ? OR LOWER(COALESCE(name_te, '')) LIKE ?",
			like, like, like,
		)
	}

	cursor, err := pagination.ParseCursor(filter.Page.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at, id) < (?, ?)",
			cursor.CreatedAt, cursor.ID,
		)
	}

	var found []models.Product
	err = query.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(filter.Page.Limit)).
		Find(&found).Error
	if err != nil {
		return nil, err
	}
	return found, nil
}

// FindByVoiceAliases returns listings whose voice aliases or names overlap the
// provided spoken terms, lowercased before matching.
func (r *Repository) FindByVoiceAliases(ctx context.Context, aliases []string) ([]models.Product, error) {
	if len(aliases) == 0 {
		return nil, nil
	}
	lowered := make([]string, 0, len(aliases))
	for _, alias := range aliases {
		if trimmed := strings.ToLower(strings.TrimSpace(alias)); trimmed != "" {
			lowered = append(lowered, trimmed)
		}
	}
	var found []models.Product
	err := r.db.WithContext(ctx).
		Where(
			"voice_aliases && ? OR LOWER(name) IN ? OR LOWER(COALESCE(name_hi, '')) IN ? OR LOWER(COALESCE(name_te, '')) IN ?",
			pq.Array(lowered), lowered, lowered, lowered,
		).
		Order("created_at ASC").
		Find(&found).Error
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ListByWholesaler returns every listing owned by the wholesaler, newest first.
func (r *Repository) ListByWholesaler(ctx context.Context, wholesalerID uuid.UUID) ([]models.Product, error) {
	var found []models.Product
	err := r.db.WithContext(ctx).
		Where("wholesaler_id = ?", wholesalerID).
		Order("created_at DESC").
		Find(&found).Error
	if err != nil {
		return nil, err
	}
	return found, nil
}
