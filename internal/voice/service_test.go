package voice

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/saikrishna-dev/mandimitra-backend/internal/cart"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/db/models"
	pkgerrors "github.com/saikrishna-dev/mandimitra-backend/pkg/errors"
	"github.com/saikrishna-dev/mandimitra-backend/pkg/logger"
)

type stubResolver struct {
	products []models.Product
}

func (s *stubResolver) FindByVoiceAliases(ctx context.Context, aliases []string) ([]models.Product, error) {
	var out []models.Product
	for _, p := range s.products {
		for _, alias := range aliases {
			if strings.EqualFold(p.Name, alias) {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

type stubCartAdder struct {
	calls []cart.AddItemRequest
}

func (s *stubCartAdder) Add(ctx context.Context, userID uuid.UUID, req cart.AddItemRequest) (*cart.Summary, error) {
	s.calls = append(s.calls, req)
	return &cart.Summary{
		Lines: []cart.Line{{Item: models.CartItem{UserID: userID, ProductID: req.ProductID, Quantity: req.Quantity}}},
		Total: decimal.Zero,
	}, nil
}

func newVoiceFixture(t *testing.T) (Service, *stubResolver, *stubCartAdder) {
	t.Helper()
	resolver := &stubResolver{}
	carts := &stubCartAdder{}
	svc, err := NewService(resolver, carts, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, resolver, carts
}

func listing(name string, inStock bool, minQty int) models.Product {
	return models.Product{
		ID:          uuid.New(),
		Name:        name,
		Price:       decimal.NewFromInt(30),
		InStock:     inStock,
		MinQuantity: minQty,
	}
}

func TestInterpretResolvesProductAndQuantity(t *testing.T) {
	svc, resolver, _ := newVoiceFixture(t)
	onion := listing("onion", true, 1)
	resolver.products = append(resolver.products, onion)

	result, err := svc.Interpret(context.Background(), uuid.New(), InterpretRequest{
		Transcript: "5 kg pyaz chahiye",
		Language:   "hi",
	})
	if err != nil {
		t.Fatalf("interpret: %v", err)
	}
	if result.CommandKey != "1" || result.ProductName != "onion" {
		t.Fatalf("unexpected interpretation %+v", result)
	}
	if result.LocalizedName != "प्याज" {
		t.Fatalf("expected hindi name, got %q", result.LocalizedName)
	}
	if result.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", result.Quantity)
	}
	if result.Product == nil || result.Product.ID != onion.ID {
		t.Fatalf("expected resolved product, got %+v", result.Product)
	}
	if result.Cart != nil {
		t.Fatal("cart should be untouched without addToCart")
	}
}

func TestInterpretAddsToCart(t *testing.T) {
	svc, resolver, carts := newVoiceFixture(t)
	tomato := listing("tomato", true, 1)
	resolver.products = append(resolver.products, tomato)

	result, err := svc.Interpret(context.Background(), uuid.New(), InterpretRequest{
		Transcript: "do kilo tamatar",
		AddToCart:  true,
	})
	if err != nil {
		t.Fatalf("interpret: %v", err)
	}
	if len(carts.calls) != 1 {
		t.Fatalf("expected one cart add, got %d", len(carts.calls))
	}
	if carts.calls[0].ProductID != tomato.ID || carts.calls[0].Quantity != 2 {
		t.Fatalf("unexpected cart add %+v", carts.calls[0])
	}
	if result.Cart == nil {
		t.Fatal("expected cart summary in response")
	}
}

func TestInterpretBumpsToMinimumQuantity(t *testing.T) {
	svc, resolver, carts := newVoiceFixture(t)
	resolver.products = append(resolver.products, listing("ginger", true, 5))

	result, err := svc.Interpret(context.Background(), uuid.New(), InterpretRequest{
		Transcript: "2 kg adrak",
		AddToCart:  true,
	})
	if err != nil {
		t.Fatalf("interpret: %v", err)
	}
	if result.Quantity != 5 || carts.calls[0].Quantity != 5 {
		t.Fatalf("expected minimum quantity 5, got result %d add %d", result.Quantity, carts.calls[0].Quantity)
	}
}

func TestInterpretPrefersInStockListing(t *testing.T) {
	svc, resolver, _ := newVoiceFixture(t)
	soldOut := listing("potato", false, 1)
	available := listing("potato", true, 1)
	resolver.products = append(resolver.products, soldOut, available)

	result, err := svc.Interpret(context.Background(), uuid.New(), InterpretRequest{Transcript: "aloo"})
	if err != nil {
		t.Fatalf("interpret: %v", err)
	}
	if result.Product == nil || result.Product.ID != available.ID {
		t.Fatalf("expected in-stock listing preferred, got %+v", result.Product)
	}
}

func TestInterpretUnlistedProduct(t *testing.T) {
	svc, _, carts := newVoiceFixture(t)

	result, err := svc.Interpret(context.Background(), uuid.New(), InterpretRequest{
		Transcript: "dhaniya chahiye",
		AddToCart:  true,
	})
	if err != nil {
		t.Fatalf("interpret: %v", err)
	}
	if result.Product != nil || result.Cart != nil {
		t.Fatalf("expected no product resolution, got %+v", result)
	}
	if result.CommandKey != "4" {
		t.Fatalf("expected coriander command, got %s", result.CommandKey)
	}
	if len(carts.calls) != 0 {
		t.Fatal("cart must not be touched for unlisted products")
	}
}

func TestInterpretUnrecognizedTranscript(t *testing.T) {
	svc, _, _ := newVoiceFixture(t)

	_, err := svc.Interpret(context.Background(), uuid.New(), InterpretRequest{Transcript: "play some music"})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestInterpretRejectsOversizedQuantity(t *testing.T) {
	svc, _, carts := newVoiceFixture(t)

	_, err := svc.Interpret(context.Background(), uuid.New(), InterpretRequest{
		Transcript: "2000 kg onion",
		AddToCart:  true,
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for oversized quantity, got %v", err)
	}
	if len(carts.calls) != 0 {
		t.Fatal("cart must not be touched for an oversized quantity")
	}
}

func TestInterpretValidation(t *testing.T) {
	svc, _, _ := newVoiceFixture(t)

	_, err := svc.Interpret(context.Background(), uuid.New(), InterpretRequest{Transcript: "  "})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for empty transcript, got %v", err)
	}

	_, err = svc.Interpret(context.Background(), uuid.New(), InterpretRequest{Transcript: "onion", Language: "fr"})
	appErr = pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unsupported language, got %v", err)
	}

	_, err = svc.Interpret(context.Background(), uuid.Nil, InterpretRequest{Transcript: "onion"})
	appErr = pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for missing identity, got %v", err)
	}
}
