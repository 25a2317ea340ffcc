// Package server provides application lifecycle management including
// graceful startup and shutdown with signal handling.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// DefaultShutdownTimeout bounds how long Run waits for services to return
// after they have been stopped.
const DefaultShutdownTimeout = 5 * time.Second

// Service represents a long-running component that can be started and stopped.
type Service interface {
	// Start begins the service. It blocks until the service is stopped, its
	// work is finished, or an error occurs.
	Start() error
	// Stop asks the service to return from Start. It must be safe to call
	// after Start has already returned.
	Stop()
}

// ContextService runs a context-aware function as a Service. Stop cancels the
// context passed to the function.
type ContextService struct {
	run    func(ctx context.Context) error
	ctx    context.Context
	cancel context.CancelFunc
}

// NewContextService wraps run, deriving its context from parent.
//
// Precondition: parent and run must be non-nil.
func NewContextService(parent context.Context, run func(ctx context.Context) error) *ContextService {
	ctx, cancel := context.WithCancel(parent)
	return &ContextService{run: run, ctx: ctx, cancel: cancel}
}

// Start runs the wrapped function and releases its context when it returns.
func (c *ContextService) Start() error {
	defer c.cancel()
	return c.run(c.ctx)
}

// Stop cancels the wrapped function's context.
func (c *ContextService) Stop() { c.cancel() }

// Lifecycle manages the startup and shutdown of multiple services.
// Services are started in order and stopped in reverse order.
type Lifecycle struct {
	logger          *zap.Logger
	services        []namedService
	signals         []os.Signal
	shutdownTimeout time.Duration
	mu              sync.Mutex
}

type namedService struct {
	name    string
	service Service
}

type serviceExit struct {
	name string
	err  error
}

// Option configures a Lifecycle.
type Option func(*Lifecycle)

// WithSignals replaces the signals that trigger shutdown. No signals disables
// signal handling.
func WithSignals(sigs ...os.Signal) Option {
	return func(l *Lifecycle) { l.signals = sigs }
}

// WithShutdownTimeout sets how long Run waits for stopped services to return.
func WithShutdownTimeout(d time.Duration) Option {
	return func(l *Lifecycle) { l.shutdownTimeout = d }
}

// NewLifecycle creates a new Lifecycle manager.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger, opts ...Option) *Lifecycle {
	l := &Lifecycle{
		logger:          logger,
		signals:         []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		shutdownTimeout: DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add registers a named service for lifecycle management.
// Services are started in the order they are added.
//
// Precondition: name must be non-empty; svc must be non-nil.
func (l *Lifecycle) Add(name string, svc Service) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, namedService{name: name, service: svc})
}

// Run starts all services and blocks until one of them returns, a
// termination signal is received, or ctx is cancelled. Services are then
// stopped in reverse order.
//
// Postcondition: All services have been asked to stop when this method
// returns. The returned error is the first service failure, if any.
func (l *Lifecycle) Run(ctx context.Context) error {
	start := time.Now()

	l.mu.Lock()
	services := append([]namedService(nil), l.services...)
	l.mu.Unlock()

	exitCh := make(chan serviceExit, len(services))
	var wg sync.WaitGroup
	for _, ns := range services {
		ns := ns
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.logger.Info("starting service",
				zap.String("service", ns.name),
			)
			svcStart := time.Now()
			err := ns.service.Start()
			if err != nil {
				l.logger.Error("service failed",
					zap.String("service", ns.name),
					zap.Error(err),
					zap.Duration("uptime", time.Since(svcStart)),
				)
				err = fmt.Errorf("service %s: %w", ns.name, err)
			} else {
				l.logger.Info("service finished",
					zap.String("service", ns.name),
					zap.Duration("uptime", time.Since(svcStart)),
				)
			}
			exitCh <- serviceExit{name: ns.name, err: err}
		}()
	}

	l.logger.Info("all services started",
		zap.Int("count", len(services)),
		zap.Duration("startup", time.Since(start)),
	)

	sigCh := make(chan os.Signal, 1)
	if len(l.signals) > 0 {
		signal.Notify(sigCh, l.signals...)
		defer signal.Stop(sigCh)
	}

	var runErr error
	select {
	case sig := <-sigCh:
		l.logger.Info("received signal, shutting down",
			zap.String("signal", sig.String()),
		)
	case exit := <-exitCh:
		runErr = exit.err
		l.logger.Info("service exited, shutting down",
			zap.String("service", exit.name),
		)
	case <-ctx.Done():
		l.logger.Info("context cancelled, shutting down")
	}

	l.shutdown(services)
	l.wait(&wg)

	// A service may have failed while the others were stopping.
drain:
	for runErr == nil {
		select {
		case exit := <-exitCh:
			runErr = exit.err
		default:
			break drain
		}
	}

	l.logger.Info("shutdown complete",
		zap.Duration("total_uptime", time.Since(start)),
	)
	return runErr
}

func (l *Lifecycle) shutdown(services []namedService) {
	shutdownStart := time.Now()
	for i := len(services) - 1; i >= 0; i-- {
		ns := services[i]
		svcStart := time.Now()
		l.logger.Info("stopping service",
			zap.String("service", ns.name),
		)
		ns.service.Stop()
		l.logger.Info("service stopped",
			zap.String("service", ns.name),
			zap.Duration("elapsed", time.Since(svcStart)),
		)
	}
	l.logger.Info("all services stopped",
		zap.Duration("shutdown_elapsed", time.Since(shutdownStart)),
	)
}

func (l *Lifecycle) wait(wg *sync.WaitGroup) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(l.shutdownTimeout):
		l.logger.Warn("services did not return before shutdown timeout",
			zap.Duration("timeout", l.shutdownTimeout),
		)
	}
}
