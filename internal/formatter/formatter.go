package formatter

import "github.com/certifyai/certify/internal/analysis"

// Formatter defines the interface for rendering a risk report
type Formatter interface {
	Format(report *analysis.Report) ([]byte, error)
}
