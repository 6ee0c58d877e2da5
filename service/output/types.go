package output

import (
	"io"

	"github.com/thirukguru/docdb-multiscan/model"
	"github.com/thirukguru/docdb-multiscan/shared/spinner"
	summarytable "github.com/thirukguru/docdb-multiscan/shared/summary_table"
)

// Format represents the output format type
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Renderer draws console output. It exists so tests can observe rendering
// without a terminal.
type Renderer interface {
	DrawConfiguration(w io.Writer, cfg model.RunConfiguration)
	DrawDryRun(w io.Writer, preview model.DryRunPreview)
	DrawProgress(w io.Writer, index, total int, profile string)
	DrawOutcome(w io.Writer, outcome model.ScanOutcome)
	DrawSummary(w io.Writer, summary model.RunSummary)
	StartSpinner(message string)
	StopSpinner()
}

type realRenderer struct{}

func (r *realRenderer) DrawConfiguration(w io.Writer, cfg model.RunConfiguration) {
	summarytable.DrawConfiguration(w, cfg)
}

func (r *realRenderer) DrawDryRun(w io.Writer, preview model.DryRunPreview) {
	summarytable.DrawDryRun(w, preview)
}

func (r *realRenderer) DrawProgress(w io.Writer, index, total int, profile string) {
	summarytable.DrawProgress(w, index, total, profile)
}

func (r *realRenderer) DrawOutcome(w io.Writer, outcome model.ScanOutcome) {
	summarytable.DrawOutcome(w, outcome)
}

func (r *realRenderer) DrawSummary(w io.Writer, summary model.RunSummary) {
	summarytable.DrawSummary(w, summary)
}

func (r *realRenderer) StartSpinner(message string) {
	spinner.StartSpinner(message)
}

func (r *realRenderer) StopSpinner() {
	spinner.StopSpinner()
}

// service is the internal implementation
type service struct {
	format   Format
	out      io.Writer
	renderer Renderer
	spinner  bool
}

// Service defines the interface for output operations
type Service interface {
	Format() Format
	RenderConfiguration(cfg model.RunConfiguration) error
	RenderDryRun(preview model.DryRunPreview) error
	RenderProgress(index, total int, profile string)
	RenderOutcome(outcome model.ScanOutcome)
	RenderSummary(summary model.RunSummary) error
	StartSpinner(message string)
	StopSpinner()
}
