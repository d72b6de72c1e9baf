package bootstrap

import (
	"go.uber.org/zap"

	"github.com/sarayu-labs/chat-insights/config"
	"github.com/sarayu-labs/chat-insights/internal/flow_insights/aggregate"
	"github.com/sarayu-labs/chat-insights/internal/flow_insights/graph/export"
	"github.com/sarayu-labs/chat-insights/internal/flow_insights/service"
	"github.com/sarayu-labs/chat-insights/internal/observability"
)

// FlowOption adjusts the service options derived from configuration.
type FlowOption func(*service.Options)

// WithStyler replaces the random node colouring.
func WithStyler(s aggregate.Styler) FlowOption {
	return func(o *service.Options) { o.Styler = s }
}

// NewFlowService wires the flow analysis service from configuration.
func NewFlowService(cfg *config.Config, logger *zap.Logger, metrics *observability.Collector, opts ...FlowOption) *service.Service {
	o := service.Options{
		Column:        cfg.Flow.Column,
		Delimiter:     cfg.Flow.Delimiter,
		TrackDropoffs: cfg.Flow.TrackDropoffs,
		MaxChains:     cfg.Flow.MaxChains,
		DotBin:        cfg.Flow.DotBin,
		Figure: export.FigureOptions{
			Width:    cfg.Figure.Width,
			Height:   cfg.Figure.Height,
			FontSize: cfg.Figure.FontSize,
		},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return service.New(o, logger, metrics)
}
