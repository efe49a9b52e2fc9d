package file

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Codec translates between the wire form of a record (compact JSON, as the
// store adapter produces it) and its on-disk form. The YAML codec exists so
// the data directory stays hand-editable.
type Codec interface {
	// Ext is the file extension including the dot, e.g. ".json".
	Ext() string
	// Encode converts wire bytes to the on-disk representation.
	Encode(data []byte) ([]byte, error)
	// Decode converts on-disk bytes back to wire bytes.
	Decode(data []byte) ([]byte, error)
}

// CodecFor resolves a codec by encoding name. Unknown names fall back to
// JSON.
func CodecFor(encoding string) Codec {
	switch encoding {
	case "yaml", "yml":
		return &YAMLCodec{}
	default:
		return &JSONCodec{}
	}
}

// JSONCodec stores records as indented JSON.
type JSONCodec struct{}

func (c *JSONCodec) Ext() string { return ".json" }

func (c *JSONCodec) Encode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, fmt.Errorf("invalid json record: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (c *JSONCodec) Decode(data []byte) ([]byte, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("corrupt json record")
	}
	return data, nil
}

// YAMLCodec stores records as YAML, transcoding from and to the JSON wire
// form. YAML is a superset of JSON, so decoding accepts either.
type YAMLCodec struct{}

func (c *YAMLCodec) Ext() string { return ".yaml" }

func (c *YAMLCodec) Encode(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid record: %w", err)
	}
	return yaml.Marshal(v)
}

func (c *YAMLCodec) Decode(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("corrupt yaml record: %w", err)
	}
	return json.Marshal(v)
}
