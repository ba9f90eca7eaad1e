package catalog

import (
	"fmt"
	"reflect"

	"github.com/iancoleman/orderedmap"
	"github.com/invopop/jsonschema"
)

// BuildSchema reflects the catalog document into a JSON schema for
// designer tooling. Property order follows the struct declaration so
// generated documentation stays stable between runs.
func BuildSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	schema := reflector.ReflectFromType(reflect.TypeOf(Document{}))
	if schema == nil {
		return nil, fmt.Errorf("catalog: failed to reflect document schema")
	}
	schema.Version = ""
	schema.Title = "Steering Archetype Catalog"
	schema.Description = "Designer-authored steering tuning bundles resolved at world construction."
	annotateArchetypes(schema)
	return schema, nil
}

// annotateArchetypes marks unknown archetype fields as rejected so typos
// fail validation instead of silently falling back to defaults.
func annotateArchetypes(schema *jsonschema.Schema) {
	if schema == nil || schema.Properties == nil {
		return
	}
	archetypes := propertySchema(schema.Properties, "archetypes")
	if archetypes == nil || archetypes.Items == nil {
		return
	}
	archetypes.Items.AdditionalProperties = &jsonschema.Schema{Not: &jsonschema.Schema{}}
}

func propertySchema(props *orderedmap.OrderedMap, key string) *jsonschema.Schema {
	if props == nil {
		return nil
	}
	value, ok := props.Get(key)
	if !ok {
		return nil
	}
	schema, ok := value.(*jsonschema.Schema)
	if !ok {
		return nil
	}
	return schema
}
