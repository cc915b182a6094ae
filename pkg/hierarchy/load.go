package hierarchy

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pathgraph/pkg/errors"
)

// File formats accepted by [Parse].
const (
	FormatTOML = "toml"
	FormatJSON = "json"
)

// FormatFromPath infers the file format from the path's extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported hierarchy file %q (want .toml or .json)", path)
	}
}

// Load reads and validates a hierarchy file.
func Load(path string) (*Hierarchy, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "hierarchy file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return Parse(data, format)
}

// Parse decodes a hierarchy in the given format and validates it.
func Parse(data []byte, format string) (*Hierarchy, error) {
	var h Hierarchy
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &h)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidHierarchy, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidHierarchy, "unknown key %q", undecoded[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&h); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidHierarchy, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported hierarchy format %q", format)
	}

	if err := h.Validate(); err != nil {
		return nil, err
	}
	return &h, nil
}
