package router

import (
	"context"
	"log/slog"

	"github.com/vango-dev/navrouter/pkg/history"
)

// Reconciler reconciles routing state against the host location.
// routestate.Dispatcher implements it.
type Reconciler interface {
	UpdateRoute()
}

// NavigatorOptions configures a Navigator.
type NavigatorOptions struct {
	// Logger receives navigation logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Middleware wraps every navigation, in order.
	Middleware []Middleware
}

// NavigatorOption is a functional option for NewNavigator.
type NavigatorOption func(*NavigatorOptions)

// WithLogger sets the navigator logger.
func WithLogger(logger *slog.Logger) NavigatorOption {
	return func(o *NavigatorOptions) {
		o.Logger = logger
	}
}

// WithMiddleware appends navigation middleware.
func WithMiddleware(mw ...Middleware) NavigatorOption {
	return func(o *NavigatorOptions) {
		o.Middleware = append(o.Middleware, mw...)
	}
}

// Navigator performs navigations against the host history and reconciles
// routing state after each one.
type Navigator struct {
	history    history.History
	reconciler Reconciler
	middleware []Middleware
	logger     *slog.Logger
}

// NewNavigator creates a navigator over h that reconciles through r.
func NewNavigator(h history.History, r Reconciler, opts ...NavigatorOption) *Navigator {
	options := NavigatorOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&options)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	return &Navigator{
		history:    h,
		reconciler: r,
		middleware: options.Middleware,
		logger:     options.Logger,
	}
}

// NavigateTo pushes url onto the host history without a reload, then
// reconciles. If the push fails, routing state is left untouched.
func (n *Navigator) NavigateTo(ctx context.Context, url string) error {
	nav := Navigation{Kind: KindPush, URL: url}
	return ComposeMiddleware(ctx, nav, n.middleware, func() error {
		if err := n.history.PushState(url); err != nil {
			return err
		}
		n.logger.Debug("navigated", "url", url)
		n.reconciler.UpdateRoute()
		return nil
	})
}

// GoBack moves steps entries through history (default -1), then reconciles.
// With a single history entry it does nothing and returns nil.
func (n *Navigator) GoBack(ctx context.Context, steps ...int) error {
	delta := -1
	if len(steps) > 0 {
		delta = steps[0]
	}
	if n.history.Length() <= 1 {
		n.logger.Debug("go back ignored at start of history", "steps", delta)
		return nil
	}
	return n.move(ctx, Navigation{Kind: KindBack, Steps: delta})
}

// GoForward moves steps entries forward (default 1), then reconciles.
// Moving past the newest entry is absorbed by the host.
func (n *Navigator) GoForward(ctx context.Context, steps ...int) error {
	delta := 1
	if len(steps) > 0 {
		delta = steps[0]
	}
	return n.move(ctx, Navigation{Kind: KindForward, Steps: delta})
}

func (n *Navigator) move(ctx context.Context, nav Navigation) error {
	return ComposeMiddleware(ctx, nav, n.middleware, func() error {
		if err := n.history.Go(nav.Steps); err != nil {
			return err
		}
		n.reconciler.UpdateRoute()
		return nil
	})
}
