// Package config loads controller definitions from YAML and registers their
// actions with an editor registry.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/toyz/editorschema/internal/utils"
	"github.com/toyz/editorschema/pkg/editor"
)

// Definition describes one controller and its actions
type Definition struct {
	Controller ControllerDef `yaml:"controller"`
	Locale     string        `yaml:"locale" validate:"omitempty,oneof=en zh de"`
	Fallback   string        `yaml:"fallback" validate:"omitempty,json"`
	Actions    []ActionDef   `yaml:"actions" validate:"dive"`
}

// ControllerDef identifies the controller
type ControllerDef struct {
	ID            string `yaml:"id" validate:"required"`
	DefaultAction string `yaml:"default_action" validate:"required"`
}

// ActionDef describes one action
type ActionDef struct {
	ID        string                 `yaml:"id" validate:"required"`
	Params    []ParamDef             `yaml:"params,omitempty" validate:"dive"`
	Schema    string                 `yaml:"schema,omitempty" validate:"omitempty,json"`
	Overrides map[string]OverrideDef `yaml:"overrides,omitempty" validate:"dive"`
}

// ParamDef describes one action parameter
type ParamDef struct {
	Name     string `yaml:"name" validate:"required"`
	Type     string `yaml:"type"`
	Optional bool   `yaml:"optional"`
	Default  any    `yaml:"default"`
}

// OverrideDef customizes one parameter. Skip wins over Options.
type OverrideDef struct {
	Skip    bool        `yaml:"skip,omitempty"`
	Options []OptionDef `yaml:"options,omitempty" validate:"dive"`
	Fields  FieldList   `yaml:"fields,omitempty"`
	Doc     string      `yaml:"doc,omitempty"`
}

// OptionDef is one enum option
type OptionDef struct {
	Value any    `yaml:"value"`
	Label string `yaml:"label" validate:"required"`
}

// FieldList is an ordered YAML mapping of editor fields
type FieldList []editor.Field

// UnmarshalYAML decodes a mapping while keeping key order
func (f *FieldList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: fields must be a mapping", node.Line)
	}

	fields := make(FieldList, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return err
		}
		fields = append(fields, editor.Field{Key: node.Content[i].Value, Value: normalize(value)})
	}

	*f = fields
	return nil
}

// MarshalYAML encodes the fields as an ordered mapping
func (f FieldList) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, field := range f {
		value := &yaml.Node{}
		if err := value.Encode(field.Value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: field.Key}, value)
	}
	return node, nil
}

// normalize converts nested map[any]any values to map[string]any so they
// encode as JSON objects
func normalize(value any) any {
	switch v := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalize(item)
		}
		return out
	case map[string]any:
		for key, item := range v {
			v[key] = normalize(item)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = normalize(item)
		}
		return v
	default:
		return value
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Load reads and validates the definition at path
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, utils.WrapLoadError(path, err)
	}

	def, err := Parse(data)
	if err != nil {
		return nil, utils.WrapLoadError(path, err)
	}
	return def, nil
}

// Parse decodes and validates a YAML definition. Unknown keys are rejected.
func Parse(data []byte) (*Definition, error) {
	var def Definition

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil && !errors.Is(err, io.EOF) {
		return nil, editor.NewError(editor.ConfigurationCode, "invalid YAML").WithCause(utils.WrapParseError("document", err))
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks the definition for missing or malformed values
func (d *Definition) Validate() error {
	if err := validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return editor.NewError(editor.ConfigurationCode, "validation failed").WithCause(utils.WrapValidateError("definition", err))
		}

		messages := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			messages = append(messages, describe(fe))
		}
		return editor.NewError(editor.ConfigurationCode, "invalid definition: "+strings.Join(messages, "; "))
	}

	seen := make(map[string]bool, len(d.Actions))
	for i, action := range d.Actions {
		id := editor.NormalizeActionID(action.ID)
		if seen[id] {
			return editor.Errorf(editor.ConfigurationCode, "actions[%d]: duplicate action %q", i, id)
		}
		seen[id] = true
	}

	return nil
}

// describe renders a validation error as "<path>: <rule>"
func describe(fe validator.FieldError) string {
	path := fe.Namespace()
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return path + ": is required"
	case "oneof":
		return fmt.Sprintf("%s: must be one of [%s]", path, fe.Param())
	case "json":
		return path + ": must be valid JSON"
	default:
		return fmt.Sprintf("%s: failed %q", path, fe.Tag())
	}
}

// ControllerInfo returns the editor controller
func (d *Definition) ControllerInfo() editor.Controller {
	return editor.Controller{ID: d.Controller.ID, DefaultAction: d.Controller.DefaultAction}
}

// EditorActions converts the definition into editor actions
func (d *Definition) EditorActions() []editor.Action {
	actions := make([]editor.Action, 0, len(d.Actions))
	for _, def := range d.Actions {
		actions = append(actions, def.toAction())
	}
	return actions
}

// Build registers every action with registry
func (d *Definition) Build(registry editor.ActionRegistry) error {
	for _, action := range d.EditorActions() {
		if err := registry.Register(action); err != nil {
			return utils.WrapRegisterError("action "+action.ID, err)
		}
	}
	return nil
}

// NewGenerator registers the actions with registry and returns a generator
// configured with the definition's locale and fallback
func (d *Definition) NewGenerator(registry editor.ActionRegistry, logger editor.Logger) (*editor.Generator, error) {
	if err := d.Build(registry); err != nil {
		return nil, err
	}

	opts := []editor.GeneratorOption{
		editor.WithLogger(logger),
		editor.WithTranslator(editor.NewTranslator(d.Locale)),
	}
	if d.Fallback != "" {
		opts = append(opts, editor.WithFallback(d.Fallback))
	}

	return editor.NewGenerator(d.ControllerInfo(), registry, opts...), nil
}

func (a ActionDef) toAction() editor.Action {
	action := editor.Action{ID: a.ID}

	for _, p := range a.Params {
		action.Params = append(action.Params, editor.Parameter{
			Name:     p.Name,
			Type:     p.Type,
			Optional: p.Optional,
			Default:  p.Default,
		})
	}

	if a.Schema != "" {
		schema := a.Schema
		action.Schema = func([]editor.Parameter) (any, error) {
			return schema, nil
		}
	}

	if len(a.Overrides) > 0 {
		action.Overrides = make(map[string]editor.ParamOverride, len(a.Overrides))
		for name, o := range a.Overrides {
			action.Overrides[name] = o.toOverride()
		}
	}

	return action
}

func (o OverrideDef) toOverride() editor.ParamOverride {
	override := editor.ParamOverride{
		Fields: append([]editor.Field(nil), o.Fields...),
		Doc:    o.Doc,
	}

	switch {
	case o.Skip:
		override.Func = func([]editor.Parameter) editor.ParamResult { return editor.Skip() }
	case len(o.Options) > 0:
		options := make([]editor.Option, 0, len(o.Options))
		for _, opt := range o.Options {
			options = append(options, editor.Opt(opt.Value, opt.Label))
		}
		override.Func = func([]editor.Parameter) editor.ParamResult { return editor.Enum(options...) }
	}

	return override
}
