package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sarayu-labs/chat-insights/internal/flow_insights/aggregate"
	"github.com/sarayu-labs/chat-insights/internal/flow_insights/domain"
	"github.com/sarayu-labs/chat-insights/internal/flow_insights/graph/export"
	"github.com/sarayu-labs/chat-insights/internal/flow_insights/ingest/mapper"
	"github.com/sarayu-labs/chat-insights/internal/flow_insights/ingest/parser"
	"github.com/sarayu-labs/chat-insights/internal/observability"
)

type Options struct {
	Column        string
	Delimiter     string
	TrackDropoffs bool
	MaxChains     int
	Figure        export.FigureOptions
	DotBin        string
	// Styler overrides node colouring; nil means random colours.
	Styler aggregate.Styler
}

// Upload is a raw file as received from the client.
type Upload struct {
	Filename string
	Content  []byte
}

type Request struct {
	Title string
	// TrackDropoffs overrides Options.TrackDropoffs when set.
	TrackDropoffs *bool
	RenderSVG     bool
}

type Result struct {
	AnalysisID    string        `json:"analysis_id" yaml:"analysis_id"`
	Filename      string        `json:"filename" yaml:"filename"`
	Title         string        `json:"title" yaml:"title"`
	TrackDropoffs bool          `json:"track_dropoffs" yaml:"track_dropoffs"`
	ChainsTotal   int           `json:"chains_total" yaml:"chains_total"`
	ChainsUsed    int           `json:"chains_used" yaml:"chains_used"`
	Graph         *domain.Graph `json:"graph" yaml:"graph"`
	Figure        export.Figure `json:"figure" yaml:"-"`
	DOTPath       string        `json:"dot_path,omitempty" yaml:"dot_path,omitempty"`
	SVGPath       string        `json:"svg_path,omitempty" yaml:"svg_path,omitempty"`
}

type Service struct {
	opts     Options
	registry *parser.Registry
	logger   *zap.Logger
	metrics  *observability.Collector
}

func New(opts Options, logger *zap.Logger, metrics *observability.Collector) *Service {
	if opts.Column == "" {
		opts.Column = domain.DefaultColumn
	}
	if opts.Delimiter == "" {
		opts.Delimiter = domain.DefaultDelimiter
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		opts:     opts,
		registry: parser.NewRegistry(),
		logger:   logger,
		metrics:  metrics,
	}
}

// Analyze decodes an upload, aggregates its flow column and builds the Sankey figure.
func (s *Service) Analyze(ctx context.Context, up Upload, req Request) (*Result, error) {
	log := observability.FromContext(ctx, s.logger).With(
		zap.String("operation", "analyze"),
		zap.String("filename", up.Filename),
	)

	res, err := s.analyze(ctx, up, req)
	if err != nil {
		outcome := Outcome(err)
		log.Warn("analysis failed", zap.String("outcome", outcome), zap.Error(err))
		s.record(outcome, 0, 0)
		return nil, err
	}

	log.Info("analysis complete",
		zap.String("analysis_id", res.AnalysisID),
		zap.Int("chains_total", res.ChainsTotal),
		zap.Int("chains_used", res.ChainsUsed),
		zap.Int("nodes", len(res.Graph.Nodes)),
		zap.Int("edges", len(res.Graph.Edges)),
	)
	s.record(observability.OutcomeOK, res.ChainsUsed, len(res.Graph.Nodes))
	return res, nil
}

func (s *Service) analyze(ctx context.Context, up Upload, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := s.registry.Decode(up.Filename, up.Content)
	if err != nil {
		return nil, err
	}

	values, err := table.Column(s.opts.Column)
	if err != nil {
		return nil, err
	}

	chains, err := mapper.ToChains(values, s.opts.Delimiter)
	if err != nil {
		return nil, err
	}
	used := mapper.Sample(chains, s.opts.MaxChains)

	track := s.opts.TrackDropoffs
	if req.TrackDropoffs != nil {
		track = *req.TrackDropoffs
	}

	g, err := aggregate.Aggregate(used, aggregate.Options{TrackDropoffs: track, Styler: s.opts.Styler})
	if err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = up.Filename
	}
	fig := s.opts.Figure
	fig.Title = title

	return &Result{
		AnalysisID:    uuid.NewString(),
		Filename:      up.Filename,
		Title:         title,
		TrackDropoffs: track,
		ChainsTotal:   len(chains),
		ChainsUsed:    len(used),
		Graph:         g,
		Figure:        export.ToFigure(g, fig),
	}, nil
}

// AnalyzeToDir runs Analyze and writes graph.dot, analysis.json and
// analysis.yaml (plus graph.svg when requested) into outDir/runs/<analysis id>.
func (s *Service) AnalyzeToDir(ctx context.Context, up Upload, req Request, outDir string) (*Result, error) {
	res, err := s.Analyze(ctx, up, req)
	if err != nil {
		return nil, err
	}

	if outDir == "" {
		outDir = "out"
	}
	runDir := filepath.Join(outDir, "runs", res.AnalysisID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, fmt.Errorf("create run dir: %w", err)
	}

	res.DOTPath = filepath.Join(runDir, "graph.dot")
	if err := os.WriteFile(res.DOTPath, []byte(export.ToDOT(res.Graph, res.Title)), 0644); err != nil {
		return nil, fmt.Errorf("write dot: %w", err)
	}

	if req.RenderSVG {
		res.SVGPath = filepath.Join(runDir, "graph.svg")
		if err := export.DotTo(res.DOTPath, res.SVGPath, "svg", s.opts.DotBin); err != nil {
			return nil, fmt.Errorf("graphviz render: %w", err)
		}
	}

	if err := export.WriteJSON(filepath.Join(runDir, "analysis.json"), res); err != nil {
		return nil, err
	}
	if err := export.WriteYAML(filepath.Join(runDir, "analysis.yaml"), res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) record(outcome string, chains, nodes int) {
	if s.metrics != nil {
		s.metrics.RecordAnalysis(outcome, chains, nodes)
	}
}

// Outcome classifies err into the metric/error taxonomy.
func Outcome(err error) string {
	switch {
	case err == nil:
		return observability.OutcomeOK
	case errors.Is(err, domain.ErrUnsupportedFile), errors.Is(err, domain.ErrDecodeFailed):
		return observability.OutcomeDecodeError
	case errors.Is(err, domain.ErrMissingColumn):
		return observability.OutcomeShapeError
	default:
		return observability.OutcomeProcessError
	}
}

// TitleFromFilename derives a title from an uploaded file name.
func TitleFromFilename(filename string) string {
	base := filepath.Base(filename)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	if title == "" || title == "." {
		return "Uploaded"
	}
	return title
}

// Column is the name of the table column chains are read from.
func (s *Service) Column() string {
	return s.opts.Column
}
