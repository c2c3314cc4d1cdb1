// Package service provides the inventory business logic used by the console.
package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"reflect"

	inverrors "github.com/abgdnv/stockmanager/internal/inventory/errors"
	"github.com/abgdnv/stockmanager/internal/inventory/store"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "inventory-service"

// InventoryService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type InventoryService interface {
	// Create validates and adds a new product.
	// Returns ErrDuplicateID if the id is taken, or validation errors for negative fields.
	Create(ctx context.Context, product ProductDto) (*ProductDto, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int) (*ProductDto, error)

	// Exists reports whether a product with the given id is stored.
	Exists(ctx context.Context, id int) bool

	// FindAll returns all products in insertion order.
	FindAll(ctx context.Context) iter.Seq[ProductDto]

	// Count returns the number of products.
	Count(ctx context.Context) int

	// UpdateQuantity sets the quantity of a product. A negative quantity is rejected and the old one kept.
	UpdateQuantity(ctx context.Context, id int, quantity int) (*ProductDto, error)

	// UpdatePrice sets the price of a product. A negative price is rejected and the old one kept.
	UpdatePrice(ctx context.Context, id int, price decimal.Decimal) (*ProductDto, error)

	// DeleteByID removes a product by its ID and returns the removed product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int) (*ProductDto, error)
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID       int             `validate:"gte=0"`
	Name     string
	Quantity int             `validate:"gte=0"`
	Price    decimal.Decimal `validate:"gte=0"`
	Kind     store.Kind
	Warranty string
}

// service implements InventoryService on top of a ProductStore.
type service struct {
	store           store.ProductStore
	validate        *validator.Validate
	logger          *slog.Logger
	productsAdded   metric.Int64Counter
	productsRemoved metric.Int64Counter
	productUpdates  metric.Int64Counter
}

// NewService creates a new instance of InventoryService with the provided store.
// Metrics are recorded on the global OpenTelemetry meter provider.
func NewService(s store.ProductStore, logger *slog.Logger) InventoryService {
	return newService(s, logger, otel.Meter(meterName))
}

func newService(s store.ProductStore, logger *slog.Logger, meter metric.Meter) *service {
	svc := &service{
		store:    s,
		validate: newValidator(),
		logger:   logger.With("component", "service"),
	}
	var err error
	if svc.productsAdded, err = meter.Int64Counter("inventory_products_added",
		metric.WithDescription("Total number of products added")); err != nil {
		panic(fmt.Sprintf("failed to create inventory_products_added counter: %v", err))
	}
	if svc.productsRemoved, err = meter.Int64Counter("inventory_products_removed",
		metric.WithDescription("Total number of products deleted")); err != nil {
		panic(fmt.Sprintf("failed to create inventory_products_removed counter: %v", err))
	}
	if svc.productUpdates, err = meter.Int64Counter("inventory_product_updates",
		metric.WithDescription("Total number of quantity and price updates")); err != nil {
		panic(fmt.Sprintf("failed to create inventory_product_updates counter: %v", err))
	}
	if _, err = meter.Int64ObservableGauge("inventory_products_stored",
		metric.WithDescription("Number of products currently stored"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(int64(s.Len()))
			return nil
		})); err != nil {
		panic(fmt.Sprintf("failed to create inventory_products_stored gauge: %v", err))
	}
	return svc
}

// newValidator returns a validator that compares decimal fields as float64.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	return v
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// Create validates the product and adds it to the store.
func (s *service) Create(ctx context.Context, product ProductDto) (*ProductDto, error) {
	if err := s.validate.Struct(product); err != nil {
		s.logger.WarnContext(ctx, "Product failed validation", "ID", product.ID, "error", err)
		return nil, fmt.Errorf("invalid product %d: %w", product.ID, toDomainError(err))
	}

	p := toProduct(product)
	if err := s.store.Add(p); err != nil {
		s.logger.WarnContext(ctx, "Error adding product", "ID", product.ID, "error", err)
		return nil, fmt.Errorf("failed to add product %d: %w", product.ID, err)
	}
	s.productsAdded.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", p.Kind.String())))
	s.logger.InfoContext(ctx, "Product added", "ID", p.ID, "Name", p.Name, "Kind", p.Kind.String())
	return toDto(&p), nil
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
func (s *service) FindByID(ctx context.Context, id int) (*ProductDto, error) {
	product, err := s.store.FindByID(id)
	if err != nil {
		s.logger.DebugContext(ctx, "Error fetching product by ID", "ID", id, "error", err)
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	return toDto(product), nil
}

func (s *service) Exists(_ context.Context, id int) bool {
	_, err := s.store.FindByID(id)
	return err == nil
}

// FindAll converts the stored products lazily while the caller ranges.
func (s *service) FindAll(_ context.Context) iter.Seq[ProductDto] {
	return func(yield func(ProductDto) bool) {
		for p := range s.store.All() {
			if !yield(*toDto(&p)) {
				return
			}
		}
	}
}

func (s *service) Count(_ context.Context) int {
	return s.store.Len()
}

// UpdateQuantity sets the stock quantity of a product.
func (s *service) UpdateQuantity(ctx context.Context, id int, quantity int) (*ProductDto, error) {
	updated, err := s.store.UpdateQuantity(id, quantity)
	if err != nil {
		s.logger.WarnContext(ctx, "Error updating quantity", "ID", id, "quantity", quantity, "error", err)
		return nil, fmt.Errorf("failed to update quantity of product %d: %w", id, err)
	}
	s.productUpdates.Add(ctx, 1, metric.WithAttributes(attribute.String("field", "quantity")))
	s.logger.InfoContext(ctx, "Quantity updated", "ID", id, "quantity", updated.Quantity)
	return toDto(updated), nil
}

// UpdatePrice sets the unit price of a product.
func (s *service) UpdatePrice(ctx context.Context, id int, price decimal.Decimal) (*ProductDto, error) {
	updated, err := s.store.UpdatePrice(id, price)
	if err != nil {
		s.logger.WarnContext(ctx, "Error updating price", "ID", id, "price", price.String(), "error", err)
		return nil, fmt.Errorf("failed to update price of product %d: %w", id, err)
	}
	s.productUpdates.Add(ctx, 1, metric.WithAttributes(attribute.String("field", "price")))
	s.logger.InfoContext(ctx, "Price updated", "ID", id, "price", updated.Price.String())
	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID.
func (s *service) DeleteByID(ctx context.Context, id int) (*ProductDto, error) {
	removed, err := s.store.Remove(id)
	if err != nil {
		s.logger.DebugContext(ctx, "Error deleting product", "ID", id, "error", err)
		return nil, fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	s.productsRemoved.Add(ctx, 1)
	s.logger.InfoContext(ctx, "Product deleted", "ID", id, "Name", removed.Name)
	return toDto(removed), nil
}

// toDomainError maps field validation failures to the inventory sentinel errors.
func toDomainError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	errs := make([]error, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		switch fieldErr.Field() {
		case "ID":
			errs = append(errs, inverrors.ErrInvalidID)
		case "Quantity":
			errs = append(errs, inverrors.ErrNegativeQuantity)
		case "Price":
			errs = append(errs, inverrors.ErrNegativePrice)
		default:
			errs = append(errs, fmt.Errorf("%s failed on rule: %s", fieldErr.Field(), fieldErr.Tag()))
		}
	}
	return errors.Join(errs...)
}

// toProduct converts a ProductDto to a store.Product. Only electronics keep a warranty.
func toProduct(dto ProductDto) store.Product {
	p := store.Product{
		ID:       dto.ID,
		Name:     dto.Name,
		Quantity: dto.Quantity,
		Price:    dto.Price,
		Kind:     dto.Kind,
	}
	if dto.Kind == store.KindElectronics {
		p.Warranty = dto.Warranty
	}
	return p
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:       product.ID,
		Name:     product.Name,
		Quantity: product.Quantity,
		Price:    product.Price,
		Kind:     product.Kind,
		Warranty: product.Warranty,
	}
}
