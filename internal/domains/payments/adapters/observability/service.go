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

	"github.com/Apurer/go-gin-shop-server/internal/domains/payments/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/payments/ports"
	"github.com/Apurer/go-gin-shop-server/internal/shared/auth"
)

const tracerName = "github.com/Apurer/go-gin-shop-server/internal/domains/payments/adapters/observability/service"

// Service decorates the payment application port with tracing, logging, and metrics.
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

// CreatePayment settles a charge with instrumentation.
func (s *Service) CreatePayment(ctx context.Context, principal auth.Principal, input ports.CreatePaymentInput) (*ports.PaymentReceipt, error) {
	ctx, span := s.startSpan(ctx, "Service.CreatePayment",
		attribute.String("order.id", input.OrderID.String()),
		attribute.String("payment.method", string(input.Method)))
	defer span.End()

	s.logInfo(ctx, "creating payment",
		slog.String("order.id", input.OrderID.String()),
		slog.String("method", string(input.Method)))
	receipt, err := s.inner.CreatePayment(ctx, principal, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create payment", slog.String("order.id", input.OrderID.String()))
	}
	s.metrics.recordSettled(ctx, receipt.Payment.Method, receipt.Payment.Amount)
	s.logInfo(ctx, "payment settled",
		slog.String("payment.id", receipt.Payment.ID.String()),
		slog.Int64("amount", receipt.Payment.Amount))
	return receipt, nil
}

// GetPayment loads one payment.
func (s *Service) GetPayment(ctx context.Context, principal auth.Principal, paymentID uuid.UUID) (*ports.PaymentDetails, error) {
	ctx, span := s.startSpan(ctx, "Service.GetPayment", attribute.String("payment.id", paymentID.String()))
	defer span.End()

	details, err := s.inner.GetPayment(ctx, principal, paymentID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load payment", slog.String("payment.id", paymentID.String()))
	}
	return details, nil
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
	paymentsSettled metric.Int64Counter
	paymentVolume   metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	paymentsSettled, _ := m.Int64Counter("payments.service.settled", metric.WithDescription("Number of payments settled"))
	paymentVolume, _ := m.Int64Counter("payments.service.volume", metric.WithDescription("Total amount of settled payments"))
	return serviceMetrics{
		paymentsSettled: paymentsSettled,
		paymentVolume:   paymentVolume,
	}
}

func (m serviceMetrics) recordSettled(ctx context.Context, method domain.Method, amount int64) {
	addCounter(ctx, m.paymentsSettled, 1, attribute.String("payment.method", string(method)))
	addCounter(ctx, m.paymentVolume, amount, attribute.String("payment.method", string(method)))
}

func addCounter(ctx context.Context, counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if counter == nil {
		return
	}
	counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

var _ ports.Service = (*Service)(nil)
