package spec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pkordes/trip-planner/spec"
)

func TestOpenAPI_DocumentsEveryRoute(t *testing.T) {
	var doc struct {
		OpenAPI string                    `yaml:"openapi"`
		Paths   map[string]map[string]any `yaml:"paths"`
	}
	require.NoError(t, yaml.Unmarshal(spec.OpenAPI, &doc))
	assert.Equal(t, "3.0.3", doc.OpenAPI)

	routes := map[string][]string{
		"/healthz":                       {"get"},
		"/openapi.yaml":                  {"get"},
		"/session":                       {"get", "post", "delete"},
		"/trips":                         {"get", "post"},
		"/trips/latest":                  {"get"},
		"/trips/{id}":                    {"get", "patch", "delete"},
		"/trips/{id}/itinerary":          {"get", "put"},
		"/trips/{id}/itinerary/commands": {"post"},
		"/trips/{id}/gear":               {"get", "put"},
		"/trips/{id}/gear/import":        {"post"},
		"/trips/{id}/gear/toggle":        {"post"},
		"/gear/templates":                {"get"},
		"/trips/{id}/map":                {"get"},
		"/export":                        {"get"},
		"/uploads":                       {"post"},
		"/files/{path}":                  {"get"},
		"/advice/rain-plan":              {"post"},
	}
	for path, methods := range routes {
		ops, ok := doc.Paths[path]
		if !assert.True(t, ok, "missing path %s", path) {
			continue
		}
		for _, m := range methods {
			assert.Contains(t, ops, m, "missing %s %s", m, path)
		}
	}
}
