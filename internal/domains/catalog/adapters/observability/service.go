package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	catalogdomain "github.com/sportsstore/go-gin-store-server/internal/domains/catalog/domain"
	catalogports "github.com/sportsstore/go-gin-store-server/internal/domains/catalog/ports"
)

const tracerName = "github.com/sportsstore/go-gin-store-server/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) { s.tracer = tr }
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) { s.metrics = newServiceMetrics(m) }
}

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetProduct",
		trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()
	product, err := s.inner.GetProduct(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.Int64("product.id", id))
	}
	return product, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListProducts")
	defer span.End()
	products, err := s.inner.ListProducts(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("product.count", len(products)))
	return products, nil
}

func (s *Service) ListByCategory(ctx context.Context, categoryID int64) ([]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListByCategory",
		trace.WithAttributes(attribute.Int64("category.id", categoryID)))
	defer span.End()
	products, err := s.inner.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products by category", slog.Int64("category.id", categoryID))
	}
	return products, nil
}

func (s *Service) SearchProducts(ctx context.Context, term string) ([]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.SearchProducts",
		trace.WithAttributes(attribute.String("search.term", term)))
	defer span.End()
	products, err := s.inner.SearchProducts(ctx, term)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to search products", slog.String("search.term", term))
	}
	return products, nil
}

func (s *Service) ListInStock(ctx context.Context) ([]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListInStock")
	defer span.End()
	products, err := s.inner.ListInStock(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list in-stock products")
	}
	return products, nil
}

func (s *Service) SaveProduct(ctx context.Context, product *catalogdomain.Product) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.SaveProduct")
	defer span.End()
	s.logInfo(ctx, "saving product", slog.Int64("product.id", product.ID), slog.String("product.name", product.Name))
	saved, err := s.inner.SaveProduct(ctx, product)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to save product", slog.Int64("product.id", product.ID))
	}
	s.logInfo(ctx, "product saved", slog.Int64("product.id", saved.ID))
	return saved, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.DeleteProduct",
		trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()
	s.logInfo(ctx, "deleting product", slog.Int64("product.id", id))
	if err := s.inner.DeleteProduct(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete product", slog.Int64("product.id", id))
	}
	return nil
}

func (s *Service) ListCategories(ctx context.Context) ([]*catalogdomain.Category, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListCategories")
	defer span.End()
	categories, err := s.inner.ListCategories(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list categories")
	}
	return categories, nil
}

func (s *Service) Reserve(ctx context.Context, productID int64, quantity int) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Reserve",
		trace.WithAttributes(attribute.Int64("product.id", productID), attribute.Int("stock.quantity", quantity)))
	defer span.End()
	if err := s.inner.Reserve(ctx, productID, quantity); err != nil {
		s.metrics.recordReservationFailed(ctx)
		return s.handleError(ctx, span, err, "stock reservation failed",
			slog.Int64("product.id", productID), slog.Int("quantity", quantity))
	}
	s.metrics.recordReserved(ctx, quantity)
	s.logInfo(ctx, "stock reserved", slog.Int64("product.id", productID), slog.Int("quantity", quantity))
	return nil
}

func (s *Service) Release(ctx context.Context, productID int64, quantity int) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Release",
		trace.WithAttributes(attribute.Int64("product.id", productID), attribute.Int("stock.quantity", quantity)))
	defer span.End()
	if err := s.inner.Release(ctx, productID, quantity); err != nil {
		return s.handleError(ctx, span, err, "stock release failed",
			slog.Int64("product.id", productID), slog.Int("quantity", quantity))
	}
	s.metrics.recordReleased(ctx, quantity)
	s.logInfo(ctx, "stock released", slog.Int64("product.id", productID), slog.Int("quantity", quantity))
	return nil
}

func (s *Service) Available(ctx context.Context, productID int64) (int, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.Available",
		trace.WithAttributes(attribute.Int64("product.id", productID)))
	defer span.End()
	available, err := s.inner.Available(ctx, productID)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to read available stock", slog.Int64("product.id", productID))
	}
	span.SetAttributes(attribute.Int("stock.available", available))
	return available, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type serviceMetrics struct {
	unitsReserved      metric.Int64Counter
	unitsReleased      metric.Int64Counter
	reservationsFailed metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	unitsReserved, _ := m.Int64Counter("catalog.service.units_reserved", metric.WithDescription("Stock units taken by reservations"))
	unitsReleased, _ := m.Int64Counter("catalog.service.units_released", metric.WithDescription("Stock units restored by compensations"))
	reservationsFailed, _ := m.Int64Counter("catalog.service.reservations_failed", metric.WithDescription("Reservations rejected or failed"))
	return serviceMetrics{unitsReserved: unitsReserved, unitsReleased: unitsReleased, reservationsFailed: reservationsFailed}
}

func (m serviceMetrics) recordReserved(ctx context.Context, quantity int) {
	if m.unitsReserved != nil {
		m.unitsReserved.Add(ctx, int64(quantity))
	}
}

func (m serviceMetrics) recordReleased(ctx context.Context, quantity int) {
	if m.unitsReleased != nil {
		m.unitsReleased.Add(ctx, int64(quantity))
	}
}

func (m serviceMetrics) recordReservationFailed(ctx context.Context) {
	if m.reservationsFailed != nil {
		m.reservationsFailed.Add(ctx, 1)
	}
}

var _ catalogports.Service = (*Service)(nil)
