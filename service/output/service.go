// Package output provides a service for rendering run progress and results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/thirukguru/docdb-multiscan/model"
)

// NewService creates a new output service writing to stdout.
func NewService(format string) (Service, error) {
	return NewServiceWithWriter(format, os.Stdout, DefaultRenderer())
}

// DefaultRenderer draws go-pretty tables and a terminal spinner.
func DefaultRenderer() Renderer {
	return &realRenderer{}
}

// NewServiceWithWriter creates an output service with an explicit writer and renderer.
func NewServiceWithWriter(format string, w io.Writer, renderer Renderer) (Service, error) {
	var f Format
	switch format {
	case "", "table":
		f = FormatTable
	case "json":
		f = FormatJSON
	default:
		return nil, fmt.Errorf("%w: unsupported --output %q (want table or json)", model.ErrConfiguration, format)
	}

	return &service{
		format:   f,
		out:      w,
		renderer: renderer,
		spinner:  f == FormatTable,
	}, nil
}

func (s *service) Format() Format {
	return s.format
}

func (s *service) RenderConfiguration(cfg model.RunConfiguration) error {
	if s.format == FormatJSON {
		return nil
	}
	s.renderer.DrawConfiguration(s.out, cfg)
	return nil
}

func (s *service) RenderDryRun(preview model.DryRunPreview) error {
	if s.format == FormatJSON {
		return s.writeJSON(struct {
			DryRun bool `json:"dry_run"`
			model.DryRunPreview
		}{DryRun: true, DryRunPreview: preview})
	}
	s.renderer.DrawDryRun(s.out, preview)
	return nil
}

func (s *service) RenderProgress(index, total int, profile string) {
	if s.format == FormatJSON {
		return
	}
	s.renderer.DrawProgress(s.out, index, total, profile)
}

func (s *service) RenderOutcome(outcome model.ScanOutcome) {
	if s.format == FormatJSON {
		return
	}
	s.renderer.DrawOutcome(s.out, outcome)
}

func (s *service) RenderSummary(summary model.RunSummary) error {
	if s.format == FormatJSON {
		return s.writeJSON(summary)
	}
	s.renderer.DrawSummary(s.out, summary)
	return nil
}

func (s *service) StartSpinner(message string) {
	if s.spinner {
		s.renderer.StartSpinner(message)
	}
}

func (s *service) StopSpinner() {
	s.renderer.StopSpinner()
}

func (s *service) writeJSON(v any) error {
	enc := json.NewEncoder(s.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}
