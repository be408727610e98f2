package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	cartdomain "github.com/sportsstore/go-gin-store-server/internal/domains/cart/domain"
	cartports "github.com/sportsstore/go-gin-store-server/internal/domains/cart/ports"
)

const tracerName = "github.com/sportsstore/go-gin-store-server/internal/domains/cart/adapters/observability/service"

// Service decorates the cart service with tracing, logging, and metrics.
type Service struct {
	inner   cartports.Service
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

// New wraps the core cart service.
func New(inner cartports.Service, opts ...Option) cartports.Service {
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

func (s *Service) AddLine(ctx context.Context, owner cartdomain.Identity, productID int64, quantity int) (*cartdomain.Line, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddLine",
		trace.WithAttributes(
			attribute.String("cart.owner", owner.Key()),
			attribute.Int64("product.id", productID),
			attribute.Int("cart.quantity", quantity)))
	defer span.End()
	line, err := s.inner.AddLine(ctx, owner, productID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add cart line",
			slog.String("cart.owner", owner.Key()), slog.Int64("product.id", productID))
	}
	s.metrics.recordLineAdded(ctx)
	s.logInfo(ctx, "cart line added",
		slog.String("cart.owner", owner.Key()),
		slog.Int64("product.id", productID),
		slog.Int("quantity", line.Quantity))
	return line, nil
}

func (s *Service) SetQuantity(ctx context.Context, owner cartdomain.Identity, lineID int64, quantity int) (*cartdomain.Line, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.SetQuantity",
		trace.WithAttributes(
			attribute.String("cart.owner", owner.Key()),
			attribute.Int64("cart.line_id", lineID),
			attribute.Int("cart.quantity", quantity)))
	defer span.End()
	line, err := s.inner.SetQuantity(ctx, owner, lineID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to set cart line quantity",
			slog.String("cart.owner", owner.Key()), slog.Int64("cart.line_id", lineID))
	}
	return line, nil
}

func (s *Service) RemoveLine(ctx context.Context, owner cartdomain.Identity, lineID int64) error {
	ctx, span := s.tracer.Start(ctx, "CartService.RemoveLine",
		trace.WithAttributes(
			attribute.String("cart.owner", owner.Key()),
			attribute.Int64("cart.line_id", lineID)))
	defer span.End()
	if err := s.inner.RemoveLine(ctx, owner, lineID); err != nil {
		return s.handleError(ctx, span, err, "failed to remove cart line",
			slog.String("cart.owner", owner.Key()), slog.Int64("cart.line_id", lineID))
	}
	return nil
}

func (s *Service) LinesFor(ctx context.Context, owner cartdomain.Identity) ([]*cartdomain.Line, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.LinesFor",
		trace.WithAttributes(attribute.String("cart.owner", owner.Key())))
	defer span.End()
	lines, err := s.inner.LinesFor(ctx, owner)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list cart lines", slog.String("cart.owner", owner.Key()))
	}
	span.SetAttributes(attribute.Int("cart.line_count", len(lines)))
	return lines, nil
}

func (s *Service) Clear(ctx context.Context, owner cartdomain.Identity) error {
	ctx, span := s.tracer.Start(ctx, "CartService.Clear",
		trace.WithAttributes(attribute.String("cart.owner", owner.Key())))
	defer span.End()
	if err := s.inner.Clear(ctx, owner); err != nil {
		return s.handleError(ctx, span, err, "failed to clear cart", slog.String("cart.owner", owner.Key()))
	}
	s.logInfo(ctx, "cart cleared", slog.String("cart.owner", owner.Key()))
	return nil
}

func (s *Service) ViewCart(ctx context.Context, owner cartdomain.Identity) (*cartports.View, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.ViewCart",
		trace.WithAttributes(attribute.String("cart.owner", owner.Key())))
	defer span.End()
	view, err := s.inner.ViewCart(ctx, owner)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to price cart", slog.String("cart.owner", owner.Key()))
	}
	span.SetAttributes(
		attribute.Int("cart.line_count", len(view.Lines)),
		attribute.String("cart.total", view.Total.String()))
	return view, nil
}

func (s *Service) Validate(ctx context.Context, owner cartdomain.Identity) ([]cartports.Shortage, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Validate",
		trace.WithAttributes(attribute.String("cart.owner", owner.Key())))
	defer span.End()
	shortages, err := s.inner.Validate(ctx, owner)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to validate cart", slog.String("cart.owner", owner.Key()))
	}
	span.SetAttributes(attribute.Int("cart.shortage_count", len(shortages)))
	return shortages, nil
}

func (s *Service) Merge(ctx context.Context, session cartdomain.Identity, user cartdomain.Identity) error {
	ctx, span := s.tracer.Start(ctx, "CartService.Merge",
		trace.WithAttributes(
			attribute.String("cart.session", session.Key()),
			attribute.String("cart.user", user.Key())))
	defer span.End()
	if err := s.inner.Merge(ctx, session, user); err != nil {
		s.metrics.recordMergeFailed(ctx)
		return s.handleError(ctx, span, err, "cart merge failed",
			slog.String("cart.session", session.Key()), slog.String("cart.user", user.Key()))
	}
	s.metrics.recordMerged(ctx)
	s.logInfo(ctx, "anonymous cart merged",
		slog.String("cart.session", session.Key()), slog.String("cart.user", user.Key()))
	return nil
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
	linesAdded   metric.Int64Counter
	merges       metric.Int64Counter
	mergesFailed metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	linesAdded, _ := m.Int64Counter("cart.service.lines_added", metric.WithDescription("Cart lines created or incremented"))
	merges, _ := m.Int64Counter("cart.service.merges", metric.WithDescription("Anonymous carts merged into user carts"))
	mergesFailed, _ := m.Int64Counter("cart.service.merges_failed", metric.WithDescription("Cart merges that returned an error"))
	return serviceMetrics{linesAdded: linesAdded, merges: merges, mergesFailed: mergesFailed}
}

func (m serviceMetrics) recordLineAdded(ctx context.Context) {
	if m.linesAdded != nil {
		m.linesAdded.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordMerged(ctx context.Context) {
	if m.merges != nil {
		m.merges.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordMergeFailed(ctx context.Context) {
	if m.mergesFailed != nil {
		m.mergesFailed.Add(ctx, 1)
	}
}

var _ cartports.Service = (*Service)(nil)
