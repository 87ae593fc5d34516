package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saikrishna-dev/mandimitra-backend/pkg/db/models"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/enums"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/pagination"
)

// Repository exposes order persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, filter ListFilter) ([]models.Order, error)
	ListByWholesaler(ctx context.Context, wholesalerID uuid.UUID, filter ListFilter) ([]models.Order, error)
	UpdateStatusCAS(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListByVendor(ctx context.Context, vendorID uuid.UUID, filter ListFilter) ([]models.Order, error) {
	return r.list(ctx, "vendor_id = ?", vendorID, filter)
}

func (r *repository) ListByWholesaler(ctx context.Context, wholesalerID uuid.UUID, filter ListFilter) ([]models.Order, error) {
	return r.list(ctx, "wholesaler_id = ?", wholesalerID, filter)
}

func (r *repository) list(ctx context.Context, cond string, id uuid.UUID, filter ListFilter) ([]models.Order, error) {
	query := r.db.WithContext(ctx).
		Preload("Items").
		Where(cond, id)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	cursor, err := pagination.ParseCursor(filter.Page.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var found []models.Order
	err = query.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(filter.Page.Limit)).
		Find(&found).Error
	if err != nil {
		return nil, err
	}
	return found, nil
}

// UpdateStatusCAS flips the status only when the stored value still matches
// the expected one. A false result means another writer got there first.
func (r *repository) UpdateStatusCAS(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
