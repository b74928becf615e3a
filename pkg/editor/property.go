package editor

import (
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cast"
)

// applyField sets one editor field on property. Keywords the schema type
// models are set directly; everything else lands in Extras.
func applyField(property *jsonschema.Schema, field Field) error {
	switch field.Key {
	case "":
		return fmt.Errorf("empty key")
	case "title", "type", "description", "format", "pattern":
		s, err := cast.ToStringE(field.Value)
		if err != nil {
			return err
		}
		setString(property, field.Key, s)
	case "default":
		property.Default = field.Value
	case "minLength", "maxLength":
		n, err := cast.ToUint64E(field.Value)
		if err != nil {
			return err
		}
		if field.Key == "minLength" {
			property.MinLength = &n
		} else {
			property.MaxLength = &n
		}
	case "enum":
		values, err := cast.ToSliceE(field.Value)
		if err != nil {
			return err
		}
		property.Enum = values
	default:
		if property.Extras == nil {
			property.Extras = make(map[string]any)
		}
		property.Extras[field.Key] = field.Value
	}

	return nil
}

func setString(property *jsonschema.Schema, key, value string) {
	switch key {
	case "title":
		property.Title = value
	case "type":
		property.Type = value
	case "description":
		property.Description = value
	case "format":
		property.Format = value
	case "pattern":
		property.Pattern = value
	}
}

func hasMinLength(property *jsonschema.Schema) bool {
	if property.MinLength != nil {
		return true
	}
	_, ok := property.Extras["minLength"]
	return ok
}

// setEnum restricts property to options. Values are stringified when the
// property is a string; labels always are. Labels go to options.enum_titles,
// merged into any options map an editor field already set. An empty option
// list still produces an empty enum.
func setEnum(property *jsonschema.Schema, options []Option) {
	stringify := property.Type == "string"

	values := make([]any, 0, len(options))
	titles := make([]string, 0, len(options))
	for _, option := range options {
		if stringify {
			values = append(values, cast.ToString(option.Value))
		} else {
			values = append(values, option.Value)
		}
		titles = append(titles, cast.ToString(option.Label))
	}
	if property.Extras == nil {
		property.Extras = make(map[string]any)
	}

	// Schema.Enum is omitted when empty
	if len(values) == 0 {
		property.Enum = nil
		property.Extras["enum"] = values
	} else {
		property.Enum = values
		delete(property.Extras, "enum")
	}

	// copy so registered field values are never mutated
	merged := make(map[string]any)
	if existing, ok := property.Extras["options"].(map[string]any); ok {
		for k, v := range existing {
			merged[k] = v
		}
	}
	merged["enum_titles"] = titles
	property.Extras["options"] = merged
}
