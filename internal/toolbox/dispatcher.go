package toolbox

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/mcptools/google-toolbox/internal/logging"
)

const (
	// DefaultCallTimeout bounds a single tool invocation including all
	// upstream calls it makes.
	DefaultCallTimeout = 60 * time.Second

	// DefaultMaxAttempts is the attempt budget for read operations that
	// fail transiently. Mutating operations always get exactly one.
	DefaultMaxAttempts = 3
)

// CredentialSource ensures a valid access token exists before an
// authenticated tool is invoked. Implemented by google.Manager.
type CredentialSource interface {
	Ensure(ctx context.Context) error
}

// Metrics records dispatch outcomes. Implemented by
// instrumentation.Metrics; a nil Metrics disables recording.
type Metrics interface {
	RecordDispatch(ctx context.Context, tool, service, operation, status string, elapsed time.Duration)
}

// Request is one tool call: a tool name plus loosely-typed arguments as
// decoded from the wire.
type Request struct {
	Tool      string
	Arguments map[string]any
}

// Result is the uniform outcome of a dispatch. Exactly one of Payload
// (OK) or Err (not OK) is meaningful.
type Result struct {
	OK      bool
	Payload any
	Err     *Error
}

// Dispatcher is the single entry point for tool calls: it resolves the
// tool, validates arguments, ensures credentials, invokes the handler
// and normalizes the outcome. It is safe for concurrent use.
type Dispatcher struct {
	registry    *Registry
	creds       CredentialSource
	callTimeout time.Duration
	maxAttempts uint
	logger      *slog.Logger
	metrics     Metrics
	tracer      trace.Tracer
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithCallTimeout sets the per-dispatch timeout.
func WithCallTimeout(d time.Duration) Option {
	return func(disp *Dispatcher) {
		if d > 0 {
			disp.callTimeout = d
		}
	}
}

// WithMaxAttempts sets the attempt budget for retryable read failures.
func WithMaxAttempts(n uint) Option {
	return func(disp *Dispatcher) {
		if n > 0 {
			disp.maxAttempts = n
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(disp *Dispatcher) {
		if l != nil {
			disp.logger = l
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m Metrics) Option {
	return func(disp *Dispatcher) {
		disp.metrics = m
	}
}

// WithTracer sets the tracer used to span each dispatch.
func WithTracer(t trace.Tracer) Option {
	return func(disp *Dispatcher) {
		if t != nil {
			disp.tracer = t
		}
	}
}

// NewDispatcher creates a dispatcher over the given registry. creds may
// be nil only when no registered tool requires authentication.
func NewDispatcher(registry *Registry, creds CredentialSource, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry:    registry,
		creds:       creds,
		callTimeout: DefaultCallTimeout,
		maxAttempts: DefaultMaxAttempts,
		logger:      slog.Default(),
		tracer:      noop.NewTracerProvider().Tracer("toolbox"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch executes one tool call. It always returns a Result; errors
// are classified, never propagated as Go errors, so a single failing
// call can never take the process down.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Result {
	start := time.Now()

	def, ok := d.registry.Resolve(req.Tool)
	if !ok {
		return d.complete(ctx, req.Tool, "", "", start,
			Result{Err: Errorf(KindNotFound, "unknown tool %q", req.Tool)})
	}

	ctx, span := d.tracer.Start(ctx, "toolbox.dispatch",
		trace.WithAttributes(
			attribute.String("tool", def.Name),
			attribute.String("service", def.Service),
			attribute.String("operation", def.Operation),
		))
	defer span.End()

	args, err := def.Schema.Validate(req.Arguments)
	if err != nil {
		return d.complete(ctx, def.Name, def.Service, def.Operation, start,
			Result{Err: Classify(err)})
	}

	if def.RequiresAuth {
		if d.creds == nil {
			return d.complete(ctx, def.Name, def.Service, def.Operation, start,
				Result{Err: Errorf(KindAuth, "no credential source configured")})
		}
		if err := d.creds.Ensure(ctx); err != nil {
			return d.complete(ctx, def.Name, def.Service, def.Operation, start,
				Result{Err: &Error{Kind: KindAuth, Message: err.Error()}})
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, d.callTimeout)
	defer cancel()

	payload, invokeErr := d.invoke(callCtx, def, args)
	if invokeErr != nil {
		e := Classify(invokeErr)
		// A timed-out mutation has an unknown upstream effect; report it
		// distinctly so callers know not to retry.
		if def.Mutating && e.Kind == KindTimeout {
			e = &Error{Kind: KindIndeterminate, Message: e.Message, UpstreamStatus: e.UpstreamStatus}
		}
		return d.complete(ctx, def.Name, def.Service, def.Operation, start, Result{Err: e})
	}

	return d.complete(ctx, def.Name, def.Service, def.Operation, start,
		Result{OK: true, Payload: payload})
}

// invoke runs the handler, retrying transient failures for read
// operations only. Mutating handlers run exactly once.
func (d *Dispatcher) invoke(ctx context.Context, def Definition, args Args) (any, error) {
	if def.Mutating || d.maxAttempts <= 1 {
		return def.Handler(ctx, args)
	}

	operation := func() (any, error) {
		payload, err := def.Handler(ctx, args)
		if err != nil {
			if !retryable(Classify(err)) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return payload, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(d.maxAttempts),
	)
}

// complete records the outcome and returns the result unchanged.
func (d *Dispatcher) complete(ctx context.Context, tool, service, operation string, start time.Time, res Result) Result {
	elapsed := time.Since(start)

	status := logging.StatusSuccess
	if !res.OK {
		status = logging.StatusError
	}

	if d.metrics != nil {
		d.metrics.RecordDispatch(ctx, tool, service, operation, status, elapsed)
	}

	if res.OK {
		d.logger.Debug("tool dispatched",
			logging.Tool(tool),
			logging.Service(service),
			logging.Operation(operation),
			logging.Status(status),
			slog.Duration(logging.KeyDuration, elapsed),
		)
	} else {
		d.logger.Warn("tool dispatch failed",
			logging.Tool(tool),
			logging.Service(service),
			logging.Operation(operation),
			slog.String("kind", string(res.Err.Kind)),
			logging.Err(res.Err),
			slog.Duration(logging.KeyDuration, elapsed),
		)
	}

	return res
}
