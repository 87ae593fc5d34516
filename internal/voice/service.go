package voice

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/saikrishna-dev/mandimitra-backend/internal/cart"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/db/models"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/enums"
	pkgerrors "github.com/saikrishna-dev/mandimitra-backend/pkg/errors"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/logger"
)

type Service interface {
	Interpret(ctx context.Context, userID uuid.UUID, req InterpretRequest) (*Interpretation, error)
}

type productResolver interface {
	FindByVoiceAliases(ctx context.Context, aliases []string) ([]models.Product, error)
}

type cartAdder interface {
	Add(ctx context.Context, userID uuid.UUID, req cart.AddItemRequest) (*cart.Summary, error)
}

type service struct {
	products productResolver
	carts    cartAdder
	logger   *logger.Logger
}

func NewService(products productResolver, carts cartAdder, logg *logger.Logger) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product resolver is required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart service is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{products: products, carts: carts, logger: logg}, nil
}

func (s *service) Interpret(ctx context.Context, userID uuid.UUID, req InterpretRequest) (*Interpretation, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if strings.TrimSpace(req.Transcript) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transcript is required")
	}

	lang := enums.DefaultLanguage
	if req.Language != "" {
		parsed := enums.Language(req.Language)
		if !parsed.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unsupported language %q", req.Language))
		}
		lang = parsed
	}

	cmd, ok := MatchCommand(req.Transcript)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "could not recognize a product in the transcript")
	}

	quantity := ParseQuantity(req.Transcript)
	if quantity > MaxQuantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("spoken quantity exceeds the maximum of %d", MaxQuantity))
	}

	result := &Interpretation{
		CommandKey:    cmd.Key,
		ProductName:   cmd.Name,
		LocalizedName: cmd.LocalizedName(lang),
		Quantity:      quantity,
	}

	product, err := s.resolveProduct(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if product == nil {
		s.logger.Warn(s.logger.WithFields(ctx, map[string]any{
			"command_key":  cmd.Key,
			"product_name": cmd.Name,
		}), "voice command matched but no product is listed")
		return result, nil
	}
	result.Product = product

	if req.AddToCart {
		quantity := result.Quantity
		if quantity < product.MinQuantity {
			quantity = product.MinQuantity
			result.Quantity = quantity
		}
		summary, err := s.carts.Add(ctx, userID, cart.AddItemRequest{
			ProductID: product.ID,
			Quantity:  quantity,
		})
		if err != nil {
			return nil, err
		}
		result.Cart = summary
	}

	return result, nil
}

// resolveProduct prefers an in-stock listing; an out-of-stock match is still
// returned so the response can name the product even when it cannot be bought.
func (s *service) resolveProduct(ctx context.Context, cmd Command) (*models.Product, error) {
	matches, err := s.products.FindByVoiceAliases(ctx, cmd.Aliases)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve voice product")
	}
	if len(matches) == 0 {
		return nil, nil
	}
	for i := range matches {
		if matches[i].InStock {
			return &matches[i], nil
		}
	}
	return &matches[0], nil
}
