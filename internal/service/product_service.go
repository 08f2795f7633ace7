package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/clothing-store/internal/auth"
	"github.com/spec-kit/clothing-store/internal/domain"
	"github.com/spec-kit/clothing-store/internal/events"
	"github.com/spec-kit/clothing-store/internal/repository"
	apperrors "github.com/spec-kit/clothing-store/pkg/util"
	"github.com/spec-kit/clothing-store/pkg/validator"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ProductService coordinates catalog workflows.
type ProductService struct {
	products   repository.ProductRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ProductDependencies bundles collaborators for the product service.
type ProductDependencies struct {
	ProductRepo repository.ProductRepository
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// Page is a one-based page request.
type Page struct {
	Page  int
	Limit int
}

// Normalize applies defaults: page 1, limit 10, limit capped at 100.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultPageSize
	}
	if p.Limit > maxPageSize {
		p.Limit = maxPageSize
	}
	return p
}

func (p Page) offset() int {
	return (p.Page - 1) * p.Limit
}

// ProductPage is one page of the catalog.
type ProductPage struct {
	Items []domain.Product
	Total int
	Page  Page
}

// Pages returns the number of pages for the total.
func (p ProductPage) Pages() int {
	if p.Page.Limit == 0 {
		return 0
	}
	return (p.Total + p.Page.Limit - 1) / p.Page.Limit
}

// NewProductService builds the service.
func NewProductService(deps ProductDependencies) *ProductService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{products: deps.ProductRepo, dispatcher: deps.Dispatcher, logger: logger}
}

// List returns a page of products, newest first.
func (s *ProductService) List(ctx context.Context, page Page) (*ProductPage, error) {
	page = page.Normalize()
	items, total, err := s.products.List(ctx, page.Limit, page.offset())
	if err != nil {
		return nil, err
	}
	return &ProductPage{Items: items, Total: total, Page: page}, nil
}

// Get loads one product.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "product")
	}
	return product, nil
}

// Create lists a new product on behalf of the caller. Sellers always own what
// they create; admins may name another seller.
func (s *ProductService) Create(ctx context.Context, actor *auth.Identity, product *domain.Product) (*domain.Product, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("Not authorized to access this route")
	}
	if actor.Role != domain.RoleAdmin || product.SellerID == "" {
		product.SellerID = actor.ID
	}
	if err := prepare(product); err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, product); err != nil {
		// the seller is the only reference an insert carries, so a missing or
		// malformed reference is always the seller
		if errors.Is(err, domain.ErrInvalidReference) || errors.Is(err, domain.ErrNotFound) {
			return nil, unknownSeller()
		}
		if errors.Is(err, domain.ErrConflict) {
			return nil, apperrors.NewConflict("Product SKU already exists")
		}
		return nil, err
	}
	s.publishProduct(ctx, events.EventProductCreated, actor, product)
	return product, nil
}

// Update replaces the mutable fields of a product the caller may modify.
func (s *ProductService) Update(ctx context.Context, actor *auth.Identity, id string, changes *domain.Product) (*domain.Product, error) {
	existing, err := s.authorizeChange(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	changes.ID = existing.ID
	changes.CreatedAt = existing.CreatedAt
	changes.RatingsAverage = existing.RatingsAverage
	changes.RatingsQuantity = existing.RatingsQuantity
	if actor.Role != domain.RoleAdmin || changes.SellerID == "" {
		changes.SellerID = existing.SellerID
	}
	if changes.SKU == "" {
		changes.SKU = existing.SKU
	}
	if err := prepare(changes); err != nil {
		return nil, err
	}
	if err := s.products.Update(ctx, changes); err != nil {
		sellerChanged := changes.SellerID != existing.SellerID
		switch {
		case errors.Is(err, domain.ErrInvalidReference),
			sellerChanged && errors.Is(err, domain.ErrNotFound):
			return nil, unknownSeller()
		case errors.Is(err, domain.ErrConflict):
			return nil, apperrors.NewConflict("Product SKU already exists")
		}
		return nil, notFound(err, "product")
	}
	s.publishProduct(ctx, events.EventProductUpdated, actor, changes)
	return changes, nil
}

// Delete removes a product the caller may modify.
func (s *ProductService) Delete(ctx context.Context, actor *auth.Identity, id string) error {
	existing, err := s.authorizeChange(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, existing.ID); err != nil {
		return notFound(err, "product")
	}
	s.publishProduct(ctx, events.EventProductDeleted, actor, existing)
	return nil
}

// authorizeChange loads the product and enforces ownership: sellers may only
// touch their own listings, admins may touch any.
func (s *ProductService) authorizeChange(ctx context.Context, actor *auth.Identity, id string) (*domain.Product, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("Not authorized to access this route")
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && !existing.OwnedBy(actor.ID) {
		return nil, apperrors.NewForbidden("Not authorized to modify this product")
	}
	return existing, nil
}

func (s *ProductService) publishProduct(ctx context.Context, eventType events.EventType, actor *auth.Identity, p *domain.Product) {
	publish(ctx, s.dispatcher, s.logger, events.NewEvent(eventType, p.ID,
		events.Actor{UserID: actor.ID, Role: actor.Role},
		events.ProductPayload{Name: p.Name, SKU: p.SKU, SellerID: p.SellerID}))
}

func prepare(product *domain.Product) error {
	product.PrepareForSave()
	if err := product.Validate(); err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			return apperrors.NewValidationError("Validation failed", verr.Fields())
		}
		return apperrors.NewBadRequest(err.Error())
	}
	return nil
}

func unknownSeller() error {
	return apperrors.NewValidationError("Validation failed", map[string]any{"seller": "seller does not exist"})
}

func notFound(err error, resource string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperrors.NewNotFound(resource)
	}
	return err
}
