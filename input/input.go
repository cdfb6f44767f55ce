// ABOUTME: Loads plan inputs from YAML or JSON documents
// ABOUTME: Rows may be positional sequences or keyed mappings in either format

package input

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/markalston/network-capacity-planner/models"
)

// Format names a document encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnsupportedFormat is returned for files that are neither YAML nor JSON
var ErrUnsupportedFormat = errors.New("unsupported input format")

// FormatFromPath picks the format from the file extension. "-" reads YAML
// from stdin, which also accepts JSON documents.
func FormatFromPath(path string) (Format, error) {
	if path == "-" {
		return FormatYAML, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q (expected .yaml, .yml or .json)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads and parses the document at path
func Load(path string) (models.PlanInput, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return models.PlanInput{}, err
	}

	if path == "-" {
		return Parse(os.Stdin, format)
	}

	f, err := os.Open(path)
	if err != nil {
		return models.PlanInput{}, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	in, err := Parse(f, format)
	if err != nil {
		return models.PlanInput{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return in, nil
}

// Parse decodes a single document. Unknown top-level keys are rejected.
func Parse(r io.Reader, format Format) (models.PlanInput, error) {
	switch format {
	case FormatJSON:
		var in models.PlanInput
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			return models.PlanInput{}, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return in, nil
	case FormatYAML:
		return parseYAML(r)
	default:
		return models.PlanInput{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// yamlDocument mirrors models.PlanInput with row types that accept both layouts
type yamlDocument struct {
	Bandwidth          []bandwidthRow  `yaml:"bandwidth"`
	Customers          []customerRow   `yaml:"customers"`
	TimeWindows        []timeWindowRow `yaml:"time_windows"`
	Policy             string          `yaml:"policy"`
	MaxRouterAdditions int             `yaml:"max_router_additions"`
}

func parseYAML(r io.Reader) (models.PlanInput, error) {
	var doc yamlDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return models.PlanInput{}, nil
		}
		return models.PlanInput{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	in := models.PlanInput{
		Policy:             models.EscalationPolicy(doc.Policy),
		MaxRouterAdditions: doc.MaxRouterAdditions,
	}
	for _, row := range doc.Bandwidth {
		in.Bandwidth = append(in.Bandwidth, models.BandwidthEntry(row))
	}
	for _, row := range doc.Customers {
		in.Customers = append(in.Customers, models.CustomerEntry(row))
	}
	for _, row := range doc.TimeWindows {
		in.TimeWindows = append(in.TimeWindows, models.TimeWindowEntry(row))
	}
	return in, nil
}

type bandwidthRow models.BandwidthEntry

func (r *bandwidthRow) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return decodeSequence(node, "bandwidth", &r.SiteA, &r.SiteB, &r.Upload, &r.Download)
	}
	type plain models.BandwidthEntry
	return node.Decode((*plain)(r))
}

type customerRow models.CustomerEntry

func (r *customerRow) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return decodeSequence(node, "customer", &r.Site, &r.Customers)
	}
	type plain models.CustomerEntry
	return node.Decode((*plain)(r))
}

type timeWindowRow models.TimeWindowEntry

func (r *timeWindowRow) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return decodeSequence(node, "time window", &r.Range, &r.SiteA, &r.SiteB, &r.PeakUpload, &r.PeakDownload)
	}
	type plain models.TimeWindowEntry
	return node.Decode((*plain)(r))
}

// decodeSequence decodes a positional row into fields, one element each
func decodeSequence(node *yaml.Node, kind string, fields ...any) error {
	if len(node.Content) != len(fields) {
		return fmt.Errorf("line %d: %s row needs %d fields, got %d", node.Line, kind, len(fields), len(node.Content))
	}
	for i, field := range fields {
		if err := node.Content[i].Decode(field); err != nil {
			return fmt.Errorf("line %d: %s field %d: %w", node.Content[i].Line, kind, i, err)
		}
	}
	return nil
}
