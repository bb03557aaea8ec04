package services

import (
	"context"
	"time"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// EventPublisher delivers product lifecycle events to interested consumers.
type EventPublisher interface {
	PublishProductEvent(ctx context.Context, event models.ProductEvent) error
}

// ProductService handles validation and persistence of products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	validate  *validator.Validate
	logger    zerolog.Logger
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are emitted.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, logger zerolog.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		validate:  validator.New(),
		logger:    logger,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct validates the payload and stores a new product.
func (s *ProductService) CreateProduct(ctx context.Context, payload ProductPayload) (*models.Product, error) {
	if !present(payload.Name) || !present(payload.Category) || !present(payload.Price) || !present(payload.Stock) {
		return nil, ErrMissingFields
	}
	price, priceOK := toNumber(payload.Price)
	stock, stockOK := toNumber(payload.Stock)
	if !priceOK || !stockOK {
		return nil, ErrInvalidNumeric
	}
	name, nameOK := toText(payload.Name)
	category, categoryOK := toText(payload.Category)
	if !nameOK || !categoryOK {
		return nil, ErrInvalidText
	}

	product := &models.Product{
		Name:     name,
		Category: category,
		Price:    price,
		Stock:    stock,
	}
	if err := s.validate.Struct(product); err != nil {
		return nil, ErrOutOfRange
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, models.ProductCreated, product)
	return product, nil
}

// UpdateProduct applies the supplied fields to an existing product. Fields
// that are missing from the payload keep their stored value.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, payload ProductPayload) (*models.Product, error) {
	changes, err := s.changesFrom(payload)
	if err != nil {
		return nil, err
	}

	product, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, models.ProductUpdated, product)
	return product, nil
}

// DeleteProduct removes a product and returns its last stored state.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, models.ProductDeleted, product)
	return product, nil
}

// Ping checks the store.
func (s *ProductService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *ProductService) changesFrom(payload ProductPayload) (models.ProductChanges, error) {
	var changes models.ProductChanges
	if !present(payload.Name) && !present(payload.Category) && !present(payload.Price) && !present(payload.Stock) {
		return changes, ErrNoFieldsProvided
	}

	if present(payload.Price) {
		price, ok := toNumber(payload.Price)
		if !ok {
			return changes, ErrInvalidNumeric
		}
		changes.Price = &price
	}
	if present(payload.Stock) {
		stock, ok := toNumber(payload.Stock)
		if !ok {
			return changes, ErrInvalidNumeric
		}
		changes.Stock = &stock
	}

	if present(payload.Name) {
		name, ok := toText(payload.Name)
		if !ok {
			return changes, ErrInvalidText
		}
		changes.Name = &name
	}
	if present(payload.Category) {
		category, ok := toText(payload.Category)
		if !ok {
			return changes, ErrInvalidText
		}
		changes.Category = &category
	}

	if changes.Price != nil {
		if err := s.validate.Var(*changes.Price, "gt=0"); err != nil {
			return changes, ErrOutOfRange
		}
	}
	if changes.Stock != nil {
		if err := s.validate.Var(*changes.Stock, "gte=0"); err != nil {
			return changes, ErrOutOfRange
		}
	}
	return changes, nil
}

func (s *ProductService) publish(ctx context.Context, eventType string, product *models.Product) {
	if s.publisher == nil {
		return
	}
	event := models.ProductEvent{
		Type:       eventType,
		Product:    *product,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishProductEvent(ctx, event); err != nil {
		s.logger.Warn().Err(err).
			Str("event", eventType).
			Str("product_id", product.ID).
			Msg("failed to publish product event")
	}
}
