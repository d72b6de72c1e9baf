package export

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// WriteYAML writes v as YAML with two-space indentation, matching the JSON
// artifact written next to it.
func WriteYAML(path string, v any) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return writeArtifact(path, buf.Bytes())
}
