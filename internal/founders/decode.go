package founders

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/cofounder-match/internal/compatibility"
)

const assessmentCompletedKey = "assessmentCompleted"

// DecodeError describes a profile item that could not be decoded.
type DecodeError struct {
	Index int
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("profile #%d: %v", e.Index, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodeProfiles decodes loosely typed items into founder profiles. Items that
// fail are returned separately and do not stop the rest.
func DecodeProfiles(items []Item) (*Profiles, []*DecodeError) {
	profiles := &Profiles{Items: make([]*compatibility.FounderProfile, 0, len(items))}
	var failures []*DecodeError

	for idx, item := range items {
		profile, err := DecodeProfile(item)
		if err != nil {
			failures = append(failures, &DecodeError{Index: idx, Err: err})
			continue
		}
		profiles.Items = append(profiles.Items, profile)
	}

	return profiles, failures
}

// DecodeProfile decodes a single item. Only a literal boolean true marks the
// assessment as completed.
func DecodeProfile(item any) (*compatibility.FounderProfile, error) {
	raw, ok := item.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected an object, got %T", item)
	}

	normalized := make(map[string]any, len(raw))
	for k, v := range raw {
		normalized[k] = v
	}
	if v, ok := normalized[assessmentCompletedKey]; ok {
		completed, isBool := v.(bool)
		normalized[assessmentCompletedKey] = isBool && completed
	}

	var profile compatibility.FounderProfile
	cfg := &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(encodeListsAsJSON, rejectFractionalInts),
		Result:     &profile,
		TagName:    "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(normalized); err != nil {
		return nil, err
	}

	return &profile, nil
}

// encodeListsAsJSON keeps list-valued answers such as preferredRoles in their
// stored JSON-encoded form when the backend sends a real array.
func encodeListsAsJSON(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String || from.Kind() != reflect.Slice {
		return data, nil
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}

// rejectFractionalInts fails integer answers such as riskAppetite sent as 7.9
// instead of letting them truncate.
func rejectFractionalInts(from reflect.Type, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
	default:
		return data, nil
	}
	if from.Kind() != reflect.Float32 && from.Kind() != reflect.Float64 {
		return data, nil
	}

	f := reflect.ValueOf(data).Float()
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("expected an integer, got %v", f)
	}
	return data, nil
}
