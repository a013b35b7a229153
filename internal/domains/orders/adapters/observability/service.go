package observability

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	"github.com/Apurer/go-gin-shop-server/internal/shared/auth"
	"github.com/Apurer/go-gin-shop-server/internal/shared/pagination"
)

const tracerName = "github.com/Apurer/go-gin-shop-server/internal/domains/orders/adapters/observability/service"

// Service decorates the order application port with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create service metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

// CreateOrder places an order with instrumentation.
func (s *Service) CreateOrder(ctx context.Context, principal auth.Principal, items []ports.OrderItemInput) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.CreateOrder",
		attribute.String("user.id", principal.UserID.String()),
		attribute.Int("order.items.requested", len(items)))
	defer span.End()

	s.logInfo(ctx, "creating order", slog.String("user.id", principal.UserID.String()), slog.Int("items", len(items)))
	order, err := s.inner.CreateOrder(ctx, principal, items)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order", slog.String("user.id", principal.UserID.String()))
	}
	s.metrics.recordCreated(ctx)
	s.metrics.recordRevenue(ctx, order.TotalAmount)
	s.logInfo(ctx, "order created",
		slog.String("order.id", order.ID.String()),
		slog.Int64("order.total", order.TotalAmount))
	return order, nil
}

// CancelOrder cancels an order with instrumentation.
func (s *Service) CancelOrder(ctx context.Context, principal auth.Principal, orderID uuid.UUID) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.CancelOrder", attribute.String("order.id", orderID.String()))
	defer span.End()

	s.logInfo(ctx, "cancelling order", slog.String("order.id", orderID.String()))
	order, err := s.inner.CancelOrder(ctx, principal, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to cancel order", slog.String("order.id", orderID.String()))
	}
	s.metrics.recordCancelled(ctx)
	s.logInfo(ctx, "order cancelled", slog.String("order.id", order.ID.String()))
	return order, nil
}

// GetOrder loads one order.
func (s *Service) GetOrder(ctx context.Context, principal auth.Principal, orderID uuid.UUID) (*domain.Order, error) {
	ctx, span := s.startSpan(ctx, "Service.GetOrder", attribute.String("order.id", orderID.String()))
	defer span.End()

	order, err := s.inner.GetOrder(ctx, principal, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", orderID.String()))
	}
	return order, nil
}

// ListOrders pages through orders.
func (s *Service) ListOrders(ctx context.Context, principal auth.Principal, page pagination.Request) (pagination.Page[*domain.Order], error) {
	ctx, span := s.startSpan(ctx, "Service.ListOrders",
		attribute.Int("page.number", page.Page),
		attribute.Int("page.size", page.Size))
	defer span.End()

	result, err := s.inner.ListOrders(ctx, principal, page)
	if err != nil {
		return pagination.Page[*domain.Order]{}, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("order.result.count", len(result.Items)))
	return result, nil
}

func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type serviceMetrics struct {
	ordersCreated   metric.Int64Counter
	ordersCancelled metric.Int64Counter
	orderRevenue    metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersCreated, _ := m.Int64Counter("orders.service.created", metric.WithDescription("Number of orders created"))
	ordersCancelled, _ := m.Int64Counter("orders.service.cancelled", metric.WithDescription("Number of orders cancelled"))
	orderRevenue, _ := m.Int64Counter("orders.service.revenue", metric.WithDescription("Total amount of created orders"))
	return serviceMetrics{
		ordersCreated:   ordersCreated,
		ordersCancelled: ordersCancelled,
		orderRevenue:    orderRevenue,
	}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	addCounter(ctx, m.ordersCreated, 1)
}

func (m serviceMetrics) recordCancelled(ctx context.Context) {
	addCounter(ctx, m.ordersCancelled, 1)
}

func (m serviceMetrics) recordRevenue(ctx context.Context, amount int64) {
	addCounter(ctx, m.orderRevenue, amount)
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
