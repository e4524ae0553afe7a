package requirements

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/guimove/reqfit/internal/model"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported requirements format")
	ErrNoRequirements    = errors.New("no requirements found")
)

// document is the wrapped file shape: {"requirements": [...]}.
type document struct {
	Requirements []model.Requirement `json:"requirements" yaml:"requirements"`
}

// Load reads requirements from a file, picking the parser by extension.
func Load(path string) ([]model.Requirement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading requirements file: %w", err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	reqs, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return reqs, nil
}

// Parse decodes requirements in the given format (json, yaml, yml, csv)
// and validates each entry.
func Parse(data []byte, format string) ([]model.Requirement, error) {
	var (
		reqs []model.Requirement
		err  error
	)
	switch format {
	case "json":
		reqs, err = parseJSON(data)
	case "yaml", "yml":
		reqs, err = parseYAML(data)
	case "csv":
		reqs, err = parseCSV(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	if len(reqs) == 0 {
		return nil, ErrNoRequirements
	}
	for i := range reqs {
		if err := reqs[i].Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}
	return reqs, nil
}

func parseJSON(data []byte) ([]model.Requirement, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var reqs []model.Requirement
		if err := json.Unmarshal(trimmed, &reqs); err != nil {
			return nil, fmt.Errorf("parsing JSON requirements: %w", err)
		}
		return reqs, nil
	}

	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("parsing JSON requirements: %w", err)
	}
	return doc.Requirements, nil
}

func parseYAML(data []byte) ([]model.Requirement, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parsing YAML requirements: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var reqs []model.Requirement
		if err := root.Decode(&reqs); err != nil {
			return nil, fmt.Errorf("parsing YAML requirements: %w", err)
		}
		return reqs, nil
	}

	var doc document
	if err := root.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing YAML requirements: %w", err)
	}
	return doc.Requirements, nil
}

// parseCSV reads a header row naming the columns. cost and profit are
// required; id and name are optional.
func parseCSV(r io.Reader) ([]model.Requirement, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"cost", "profit"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("CSV header missing %q column", required)
		}
	}

	var reqs []model.Requirement
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}

		line, _ := cr.FieldPos(0)
		req := model.Requirement{
			ID:   field(rec, cols, "id"),
			Name: field(rec, cols, "name"),
		}
		if req.Cost, err = strconv.Atoi(field(rec, cols, "cost")); err != nil {
			return nil, fmt.Errorf("line %d: parsing cost: %w", line, err)
		}
		if req.Profit, err = strconv.Atoi(field(rec, cols, "profit")); err != nil {
			return nil, fmt.Errorf("line %d: parsing profit: %w", line, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func field(rec []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
