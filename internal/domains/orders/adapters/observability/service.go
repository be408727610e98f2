package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersdomain "github.com/sportsstore/go-gin-store-server/internal/domains/orders/domain"
	ordersports "github.com/sportsstore/go-gin-store-server/internal/domains/orders/ports"
)

const tracerName = "github.com/sportsstore/go-gin-store-server/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
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

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
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

func (s *Service) PlaceOrder(ctx context.Context, input ordersports.CheckoutInput) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.PlaceOrder",
		trace.WithAttributes(attribute.String("order.customer", input.Customer)))
	defer span.End()
	order, err := s.inner.PlaceOrder(ctx, input)
	if err != nil {
		s.metrics.recordCheckoutFailed(ctx)
		return nil, s.handleError(ctx, span, err, "checkout failed", slog.String("order.customer", input.Customer))
	}
	span.SetAttributes(
		attribute.Int64("order.id", order.ID),
		attribute.Int("order.line_count", len(order.Lines)),
		attribute.String("order.total", order.Total.String()))
	s.metrics.recordOrderPlaced(ctx)
	s.logInfo(ctx, "order placed",
		slog.Int64("order.id", order.ID),
		slog.String("order.customer", order.Customer),
		slog.String("order.total", order.Total.StringFixed(2)))
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder",
		trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()
	order, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", id))
	}
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders")
	defer span.End()
	orders, err := s.inner.ListOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.count", len(orders)))
	return orders, nil
}

func (s *Service) ListByCustomer(ctx context.Context, customer string) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListByCustomer",
		trace.WithAttributes(attribute.String("order.customer", customer)))
	defer span.End()
	orders, err := s.inner.ListByCustomer(ctx, customer)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list customer orders", slog.String("order.customer", customer))
	}
	return orders, nil
}

func (s *Service) ListByStatus(ctx context.Context, status ordersdomain.Status) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListByStatus",
		trace.WithAttributes(attribute.String("order.status", string(status))))
	defer span.End()
	orders, err := s.inner.ListByStatus(ctx, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders by status", slog.String("order.status", string(status)))
	}
	return orders, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status ordersdomain.Status) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.UpdateStatus",
		trace.WithAttributes(attribute.Int64("order.id", id), attribute.String("order.status", string(status))))
	defer span.End()
	s.logInfo(ctx, "updating order status", slog.Int64("order.id", id), slog.String("order.status", string(status)))
	order, err := s.inner.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status", slog.Int64("order.id", id))
	}
	return order, nil
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
	ordersPlaced    metric.Int64Counter
	checkoutsFailed metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Orders committed by checkout"))
	checkoutsFailed, _ := m.Int64Counter("orders.service.checkouts_failed", metric.WithDescription("Checkouts that returned an error"))
	return serviceMetrics{ordersPlaced: ordersPlaced, checkoutsFailed: checkoutsFailed}
}

func (m serviceMetrics) recordOrderPlaced(ctx context.Context) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordCheckoutFailed(ctx context.Context) {
	if m.checkoutsFailed != nil {
		m.checkoutsFailed.Add(ctx, 1)
	}
}

var _ ordersports.Service = (*Service)(nil)
