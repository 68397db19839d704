package formatter

import (
	"github.com/certifyai/certify/internal/analysis"
)

// riskBadge returns a plain-text marker for a risk level, for
// formats that never carry emoji
func riskBadge(level analysis.RiskLevel) string {
	switch level {
	case analysis.RiskHigh:
		return "[HIGH]"
	case analysis.RiskMedium:
		return "[MEDIUM]"
	case analysis.RiskLow:
		return "[LOW]"
	default:
		return "[UNCLASSIFIED]"
	}
}
