package checkout

import (
	"gorm.io/gorm"

	"github.com/saikrishna-dev/mandimitra-backend/internal/cart"
	"github.com/saikrishna-dev/mandimitra-backend/internal/orders"
	"github.com/saikrishna-dev/mandimitra-backend/internal/products"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/logger"
)

// NewServiceFromRepos builds the checkout service on the production
// repositories, rebinding each one to the checkout transaction.
func NewServiceFromRepos(
	tx txRunner,
	logg *logger.Logger,
	carts *cart.Repository,
	productRepo *products.Repository,
	orderRepo orders.Repository,
) (Service, error) {
	return NewService(Deps{
		TX:       tx,
		Logger:   logg,
		Carts:    func(txDB *gorm.DB) cartStore { return carts.WithTx(txDB) },
		Products: func(txDB *gorm.DB) productStore { return productRepo.WithTx(txDB) },
		Orders:   func(txDB *gorm.DB) orderStore { return orderRepo.WithTx(txDB) },
	})
}
