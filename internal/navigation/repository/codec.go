package repository

import (
	"bytes"
	"fmt"

	naverrors "campusmove/internal/navigation/errors"
	"campusmove/pkg/model"

	"github.com/goccy/go-json"
)

// probe reads the fields that tell a versioned document from the legacy
// browser storage blob.
type probe struct {
	SchemaVersion *int            `json:"schema_version"`
	Directions    json.RawMessage `json:"directions"`
	Route         json.RawMessage `json:"route"`
	IsDarkStyle   json.RawMessage `json:"isDarkStyle"`
}

// DecodeViewState reads a stored or imported view state. It accepts the
// current versioned form and the legacy {directions, route, isDarkStyle}
// blob, whose values may themselves be JSON-encoded strings, and always
// returns the current schema version.
func DecodeViewState(raw []byte) (model.ViewState, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return model.ViewState{}, fmt.Errorf("%w: expected a JSON object", naverrors.ErrInvalidViewState)
	}

	var p probe
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return model.ViewState{}, fmt.Errorf("%w: %w", naverrors.ErrInvalidViewState, err)
	}

	if p.SchemaVersion == nil {
		return migrateLegacy(p)
	}

	switch v := *p.SchemaVersion; {
	case v > model.CurrentViewStateVersion:
		return model.ViewState{}, fmt.Errorf("%w: %d", naverrors.ErrUnsupportedSchemaVersion, v)
	case v < 1:
		return model.ViewState{}, fmt.Errorf("%w: schema_version %d", naverrors.ErrInvalidViewState, v)
	}

	state := model.DefaultViewState()
	if err := json.Unmarshal(trimmed, &state); err != nil {
		return model.ViewState{}, fmt.Errorf("%w: %w", naverrors.ErrInvalidViewState, err)
	}
	return normalize(state), nil
}

func migrateLegacy(p probe) (model.ViewState, error) {
	state := model.DefaultViewState()

	var leg model.Leg
	ok, err := decodeLegacyValue(p.Directions, &leg)
	if err != nil {
		return model.ViewState{}, fmt.Errorf("%w: directions: %w", naverrors.ErrInvalidViewState, err)
	}
	if ok {
		state.Directions = &leg
	}

	var route model.Route
	ok, err = decodeLegacyValue(p.Route, &route)
	if err != nil {
		return model.ViewState{}, fmt.Errorf("%w: route: %w", naverrors.ErrInvalidViewState, err)
	}
	if ok {
		state.Route = &route
	}

	var dark bool
	ok, err = decodeLegacyValue(p.IsDarkStyle, &dark)
	if err != nil {
		return model.ViewState{}, fmt.Errorf("%w: isDarkStyle: %w", naverrors.ErrInvalidViewState, err)
	}
	if ok {
		state.DarkStyle = dark
	}

	return state, nil
}

// decodeLegacyValue decodes raw into target. Browser storage holds strings,
// so a JSON string is unwrapped once before decoding.
func decodeLegacyValue(raw json.RawMessage, target any) (bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false, nil
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return false, err
		}
		if inner == "" || inner == "null" {
			return false, nil
		}
		raw = json.RawMessage(inner)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return false, err
	}
	return true, nil
}

func normalize(state model.ViewState) model.ViewState {
	mode, ok := model.ParseTravelMode(string(state.TravelMode))
	if !ok {
		mode = model.TravelModeWalking
	}
	state.TravelMode = mode
	return state
}
