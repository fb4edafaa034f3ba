package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/storyline/pkg/errors"
)

// Format is an event file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	if err := errors.ValidateDatasetPath(path); err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	}
	return FormatYAML, nil
}

// ReadFile reads the event file at path.
func ReadFile(path string) ([]Record, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	records, err := Read(f, format)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "read %s", path)
	}
	return records, nil
}

// Read decodes records from r. Read does not close r.
func Read(r io.Reader, format Format) ([]Record, error) {
	switch format {
	case FormatJSON:
		return readJSON(r)
	case FormatYAML:
		return readYAML(r)
	case FormatCSV:
		return readCSV(r)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported dataset format %q", format)
}

// envelope is the object form of an event file.
type envelope struct {
	Events []Record `json:"events" yaml:"events"`
}

func readJSON(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read")
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '{' {
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON")
		}
		return env.Events, nil
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode JSON")
	}
	return records, nil
}

func readYAML(r io.Reader) ([]Record, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode YAML")
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	var records []Record
	switch root.Kind {
	case yaml.MappingNode:
		var env envelope
		if err := root.Decode(&env); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode YAML")
		}
		records = env.Events
	case yaml.SequenceNode:
		if err := root.Decode(&records); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode YAML")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "YAML events must be a list or an object with an events list")
	}
	return records, nil
}

func readCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read CSV header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read CSV")
		}
		rec := make(Record, len(header))
		for i, name := range header {
			if i < len(row) && name != "" {
				rec[name] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records, nil
}
