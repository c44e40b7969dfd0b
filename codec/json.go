package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// It is the most portable option: any conforming JSON decoder can read the
// payload. Use it when artifacts must be consumed outside this library.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used for newly written artifacts.
//
// Existing files are unaffected by changes to Default: they record the codec
// name in their header and are opened by selecting that codec by name.
var Default Codec = GoJSON{}
