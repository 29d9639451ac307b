package extract

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaBytes []byte

// validateYAMLAgainstSchema validates YAML content against the embedded JSON schema.
func validateYAMLAgainstSchema(yamlData []byte) error {
	// Convert YAML to JSON for schema validation.
	var data any
	if err := yaml.Unmarshal(yamlData, &data); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to convert YAML to JSON: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(jsonData),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return fmt.Errorf("schema validation errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// ValidateName checks if a pattern name is valid.
var ValidateName = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]*[a-z0-9]$`).MatchString

// LoadFromYAMLDir loads all YAML files in a directory and parses pattern specs
// from them. Specs are returned sorted by name so loading is deterministic.
func LoadFromYAMLDir(fsys fs.FS, dir string) ([]PatternSpec, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	var specMap = make(map[string]PatternSpec)
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".yml") && !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		f, err := fsys.Open(path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to open pattern file %s: %w", entry.Name(), err)
		}
		yamlData, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read pattern file %s: %w", entry.Name(), err)
		}

		if err := validateYAMLAgainstSchema(yamlData); err != nil {
			return nil, fmt.Errorf("validation failed for pattern file %s: %w", entry.Name(), err)
		}

		var sub map[string]PatternSpec
		if err := yaml.Unmarshal(yamlData, &sub); err != nil {
			return nil, fmt.Errorf("failed to parse pattern file %s: %w", entry.Name(), err)
		}
		for name, spec := range sub {
			if !ValidateName(name) {
				return nil, fmt.Errorf("invalid pattern name: %s", name)
			}
			if _, ok := specMap[name]; ok {
				return nil, fmt.Errorf("duplicate pattern found: '%s'", name)
			}
			spec.Name = name
			specMap[name] = spec
		}
	}

	names := make([]string, 0, len(specMap))
	for name := range specMap {
		names = append(names, name)
	}
	sort.Strings(names)

	specs := make([]PatternSpec, 0, len(names))
	for _, name := range names {
		specs = append(specs, specMap[name])
	}
	return specs, nil
}
