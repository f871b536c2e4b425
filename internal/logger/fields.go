package logger

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/cofounder-match/internal/compatibility"
)

const (
	// FieldFounderID is the structured log field key for a founder id.
	FieldFounderID = "founder_id"
	// FieldFounderEmail is the structured log field key for a founder email.
	FieldFounderEmail = "founder_email"
	// FieldScore is the structured log field key for a compatibility score.
	FieldScore = "score"
	// FieldVariant is the structured log field key for the scoring model used.
	FieldVariant = "variant"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger, falling back to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// FounderFields identifies a founder in log entries. Missing values are dropped.
func FounderFields(p *compatibility.FounderProfile) []zap.Field {
	if p == nil {
		return nil
	}

	return StringFields(
		StringField{Key: FieldFounderID, Value: p.ID},
		StringField{Key: FieldFounderEmail, Value: p.Email},
	)
}

// ResultFields describes a compatibility result.
func ResultFields(res compatibility.Result) []zap.Field {
	return []zap.Field{
		zap.Int(FieldScore, res.Score),
		zap.String(FieldVariant, string(res.Variant)),
	}
}

// WithFounder attaches the founder identity to the provided logger.
func WithFounder(logger *zap.Logger, p *compatibility.FounderProfile) *zap.Logger {
	return WithFields(logger, FounderFields(p)...)
}
