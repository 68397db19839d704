package emoji

import "github.com/certifyai/certify/internal/analysis"

// emojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"error":    {"❌", "[ERR]"},
	"warning":  {"⚠️", "[WRN]"},
	"info":     {"ℹ️", "[INF]"},
	"success":  {"✅", "[OK]"},
	"document": {"📄", "[DOC]"},
	"folder":   {"📁", "[DIR]"},
	"summary":  {"📝", "[SUM]"},
	"vault":    {"🗄️", "[VLT]"},
	"calendar": {"📅", "[CAL]"},
	"target":   {"🎯", "[>]"},
	"hint":     {"💡", "[TIP]"},
	"high":     {"🔴", "[HIGH]"},
	"medium":   {"🟡", "[MED]"},
	"low":      {"🟢", "[LOW]"},
	"unknown":  {"⚪", "[?]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}

// ForRiskLevel returns the marker for a risk level
func ForRiskLevel(level analysis.RiskLevel) string {
	switch level {
	case analysis.RiskHigh:
		return GetEmoji("high")
	case analysis.RiskMedium:
		return GetEmoji("medium")
	case analysis.RiskLow:
		return GetEmoji("low")
	default:
		return GetEmoji("unknown")
	}
}
