package founders

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/spigell/cofounder-match/internal/compatibility"
)

//go:embed profiles.schema.json
var profilesSchema []byte

// ValidationError lists every schema violation found in a profiles dump.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a JSON path.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("profiles validation failed:")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("\n  %d. %s: %s", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// FileSource serves founders from a JSON profiles dump.
type FileSource struct {
	Path     string
	Profiles *Profiles
}

// NewFileSource loads path once and serves every lookup from memory.
func NewFileSource(path string, logger *zap.Logger) (*FileSource, error) {
	profiles, failures, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	if logger != nil {
		for _, failure := range failures {
			logger.Warn("skipping undecodable profile",
				zap.String("path", path),
				zap.Int("index", failure.Index),
				zap.Error(failure.Err),
			)
		}
	}

	return &FileSource{Path: path, Profiles: profiles}, nil
}

func (s *FileSource) Me(ref string) (*compatibility.FounderProfile, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, errors.New("current founder id or email is required for a file source")
	}

	me := s.Profiles.Find(ref)
	if me == nil {
		return nil, fmt.Errorf("founder %q not found in %s", ref, s.Path)
	}
	return me, nil
}

func (s *FileSource) Candidates() (*Profiles, error) {
	items := make([]*compatibility.FounderProfile, len(s.Profiles.Items))
	copy(items, s.Profiles.Items)
	return &Profiles{Items: items}, nil
}

// LoadFile reads a profiles dump, either a bare array or {"items": [...]}.
func LoadFile(path string) (*Profiles, []*DecodeError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read profiles file: %w", err)
	}

	return ParseProfiles(data)
}

// ParseProfiles validates data against the profiles schema and decodes it.
func ParseProfiles(data []byte) (*Profiles, []*DecodeError, error) {
	if err := validateProfiles(data); err != nil {
		return nil, nil, err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse profiles: %w", err)
	}

	var list []any
	switch typed := doc.(type) {
	case []any:
		list = typed
	case map[string]any:
		list, _ = typed["items"].([]any)
	}

	items := make([]Item, 0, len(list))
	for _, item := range list {
		items = append(items, item)
	}

	profiles, failures := DecodeProfiles(items)
	return profiles, failures, nil
}

func validateProfiles(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(profilesSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validate profiles: %w", err)
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
