package source

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/skill.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("skill.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("skill.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// validateMetadata checks SKILL.md frontmatter against the embedded JSON
// schema and verifies the version parses as semver.
func validateMetadata(metaData map[string]interface{}) error {
	schema, err := getSchema()
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	// Round-trip through JSON so the validator sees json.Number values.
	jsonData, err := json.Marshal(normalizeYAML(metaData))
	if err != nil {
		return fmt.Errorf("converting frontmatter to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("preparing frontmatter for validation: %w", err)
	}

	if err := schema.Validate(inst); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return fmt.Errorf("validating frontmatter: %w", err)
		}
		return fmt.Errorf("invalid skill frontmatter: %s", summarizeIssues(ve))
	}

	version, _ := metaData["version"].(string)
	if _, err := semver.NewVersion(version); err != nil {
		return fmt.Errorf("invalid skill version %q: %w", version, err)
	}

	return nil
}

// summarizeIssues flattens a validation error tree into one readable line.
func summarizeIssues(ve *jsonschema.ValidationError) string {
	var parts []string
	collectIssues(ve, &parts)
	if len(parts) == 0 {
		return ve.Error()
	}
	return printer.Sprintf("%d issue(s): %s", len(parts), strings.Join(parts, "; "))
}

// collectIssues recursively walks the error tree to find leaf errors
// with specific property information.
func collectIssues(ve *jsonschema.ValidationError, parts *[]string) {
	if len(ve.Causes) == 0 {
		if ve.ErrorKind == nil {
			return
		}
		loc := "/" + strings.Join(ve.InstanceLocation, "/")
		*parts = append(*parts, loc+": "+ve.ErrorKind.LocalizedString(printer))
		return
	}
	for _, cause := range ve.Causes {
		collectIssues(cause, parts)
	}
}

// normalizeYAML recursively converts YAML-decoded values to JSON-compatible
// types. The frontmatter parser may yield map[interface{}]interface{} for
// nested maps, which encoding/json cannot marshal.
func normalizeYAML(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, item := range val {
			m[k] = normalizeYAML(item)
		}
		return m
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, item := range val {
			m[fmt.Sprintf("%v", k)] = normalizeYAML(item)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(val))
		for i, item := range val {
			s[i] = normalizeYAML(item)
		}
		return s
	default:
		return val
	}
}
