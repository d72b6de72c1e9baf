package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sarayu-labs/chat-insights/config"
	"github.com/sarayu-labs/chat-insights/internal/bootstrap"
	"github.com/sarayu-labs/chat-insights/internal/flow_insights/aggregate"
	"github.com/sarayu-labs/chat-insights/internal/flow_insights/domain"
	"github.com/sarayu-labs/chat-insights/internal/flow_insights/graph/export"
	"github.com/sarayu-labs/chat-insights/internal/flow_insights/service"
	"github.com/sarayu-labs/chat-insights/internal/observability"
)

const sankeyUsage = "usage: sankey [-no-dropoffs] [-svg] [-plain] <path> [outDir] [title]"

// RunSankey analyzes a report file, writes the run artifacts and prints the
// result JSON to out.
func RunSankey(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("sankey", flag.ContinueOnError)
	noDropoffs := fs.Bool("no-dropoffs", false, "do not add the Dropped Off node")
	svg := fs.Bool("svg", false, "render graph.svg with graphviz")
	plain := fs.Bool("plain", false, "colour every node gray instead of randomly")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New(sankeyUsage)
	}

	var opts []bootstrap.FlowOption
	if *plain {
		opts = append(opts, bootstrap.WithStyler(aggregate.FixedStyler{
			Color: domain.DropOffColor,
			Link:  domain.DropOffLinkColor,
		}))
	}
	svc, cfg, err := newService(opts...)
	if err != nil {
		return err
	}

	path := fs.Arg(0)
	outDir := cfg.Flow.OutDir
	if fs.NArg() > 1 {
		outDir = fs.Arg(1)
	}
	title := service.TitleFromFilename(path)
	if fs.NArg() > 2 {
		title = fs.Arg(2)
	}

	upload, err := readUpload(path)
	if err != nil {
		return err
	}

	req := service.Request{Title: title, RenderSVG: *svg}
	if *noDropoffs {
		off := false
		req.TrackDropoffs = &off
	}

	res, err := svc.AnalyzeToDir(context.Background(), upload, req, outDir)
	if err != nil {
		_, msg := service.UserMessage(err, upload.Filename, svc.Column())
		return fmt.Errorf("%s: %w", msg, err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// RunDOT writes only the Graphviz rendering of a report.
func RunDOT(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: dot <path> <out.dot>")
	}

	svc, _, err := newService()
	if err != nil {
		return err
	}

	upload, err := readUpload(args[0])
	if err != nil {
		return err
	}
	res, err := svc.Analyze(context.Background(), upload, service.Request{Title: service.TitleFromFilename(args[0])})
	if err != nil {
		return err
	}
	return os.WriteFile(args[1], []byte(export.ToDOT(res.Graph, res.Title)), 0o644)
}

func newService(opts ...bootstrap.FlowOption) (*service.Service, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := observability.NewLogger(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	// the CLI is not scraped; metrics stay nil
	return bootstrap.NewFlowService(cfg, logger, nil, opts...), cfg, nil
}

func readUpload(path string) (service.Upload, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return service.Upload{}, err
	}
	return service.Upload{Filename: filepath.Base(path), Content: b}, nil
}
