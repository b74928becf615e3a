// Package editor generates JSON Schema documents describing the parameters
// of controller actions, for consumption by a JSON editor widget.
//
// Each action is registered with its parameters and optional overrides. The
// generator resolves a route to an action, then either returns the action's
// full-schema override or synthesizes an object schema from the parameters.
// Every failure along the way degrades to a fixed fallback schema.
package editor

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	jsoniter "github.com/json-iterator/go"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/toyz/editorschema/internal/inflector"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultFallbackSchema is returned when no schema can be produced for a route
const DefaultFallbackSchema = `{"title":"Request Params","type":"object","properties":{}}`

// Generator produces editor schemas for the actions of one controller.
// It holds no per-call state and is safe for concurrent use.
type Generator struct {
	controller Controller
	registry   ActionRegistry
	translator Translator
	logger     Logger
	fallback   string
}

// GeneratorOption configures a Generator
type GeneratorOption func(*Generator)

// WithTranslator sets the translator used for the schema title
func WithTranslator(t Translator) GeneratorOption {
	return func(g *Generator) {
		if t != nil {
			g.translator = t
		}
	}
}

// WithLogger sets where diagnostics are reported
func WithLogger(l Logger) GeneratorOption {
	return func(g *Generator) {
		if l == nil {
			l = NopLogger{}
		}
		g.logger = l
	}
}

// WithFallback replaces DefaultFallbackSchema. Invalid JSON is ignored.
func WithFallback(schema string) GeneratorOption {
	return func(g *Generator) {
		if !json.Valid([]byte(schema)) {
			g.logger.Warn("fallback schema is not valid JSON, keeping the default")
			return
		}
		g.fallback = schema
	}
}

// NewGenerator creates a generator for controller. A nil registry means
// DefaultActionRegistry.
func NewGenerator(controller Controller, registry ActionRegistry, opts ...GeneratorOption) *Generator {
	if registry == nil {
		registry = DefaultActionRegistry
	}

	g := &Generator{
		controller: controller,
		registry:   registry,
		translator: NewTranslator("en"),
		logger:     DefaultLogger(),
		fallback:   DefaultFallbackSchema,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Controller returns the controller the generator serves
func (g *Generator) Controller() Controller {
	return g.controller
}

// Fallback returns the schema used when generation fails
func (g *Generator) Fallback() string {
	return g.fallback
}

// ActionMethodName returns the conventional handler name for actionID
func ActionMethodName(actionID string) string {
	return "action" + inflector.Camelize(actionID)
}

// SchemaMethodName returns the conventional full-schema override name for actionID
func SchemaMethodName(actionID string) string {
	return actionID + "ActionParamSchema"
}

// ParamMethodName returns the conventional per-parameter override name
func ParamMethodName(actionID, param string) string {
	return actionID + "ActionParam" + inflector.UppercaseFirstLetter(param)
}

// ResolveActionID maps a route to an action ID. The controller's own route
// resolves to its default action; otherwise the last path segment is
// camelized, e.g. "product/product-detail" becomes "productDetail".
func (g *Generator) ResolveActionID(route string) string {
	trimmed := strings.Trim(route, "/")
	if trimmed == g.controller.ID {
		return inflector.LowercaseFirstLetter(g.controller.DefaultAction)
	}

	segment := trimmed
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		segment = trimmed[i+1:]
	}

	return inflector.LowercaseFirstLetter(inflector.Camelize(segment))
}

// LocateAction returns the metadata registered for actionID or an error
// matching ErrMetadataNotFound
func (g *Generator) LocateAction(actionID string) (*Action, error) {
	action, ok := g.registry.Get(actionID)
	if !ok {
		return nil, Errorf(MetadataNotFoundCode, "no action %q registered", actionID).
			WithContext("controller", g.controller.ID).
			WithContext("method", ActionMethodName(actionID))
	}
	return &action, nil
}

// OverrideSchema runs the action's full-schema override. It reports false
// when there is no override, when the override yields a scalar, or when the
// result cannot be encoded as JSON.
func (g *Generator) OverrideSchema(action *Action) (string, bool) {
	if action == nil || action.Schema == nil {
		return "", false
	}

	value, err := action.Schema(action.Params)
	if err == nil {
		var schema string
		var ok bool
		schema, ok, err = encodeOverride(value)
		if err == nil {
			return schema, ok
		}
	}

	g.logger.Warn("%v", NewError(OverrideEncodingCode, "ignoring schema override").
		WithContext("method", SchemaMethodName(action.ID)).
		WithCause(err))
	return "", false
}

func encodeOverride(value any) (string, bool, error) {
	v := reflect.ValueOf(value)

	switch v.Kind() {
	case reflect.Invalid, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return "", false, nil
	case reflect.Pointer, reflect.Interface, reflect.Map:
		if v.IsNil() {
			return "", false, nil
		}
	case reflect.String:
		return validJSON(v.String())
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return validJSON(string(v.Bytes()))
		}
	}

	encoded, err := json.MarshalToString(value)
	if err != nil {
		return "", false, err
	}
	if encoded == "null" {
		return "", false, nil
	}
	return encoded, true, nil
}

func validJSON(s string) (string, bool, error) {
	if !json.Valid([]byte(s)) {
		return "", false, fmt.Errorf("override returned invalid JSON %q", truncate(s, 64))
	}
	return s, true, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// BuildSchema synthesizes the object schema for action. Properties follow
// parameter declaration order.
func (g *Generator) BuildSchema(action *Action) *jsonschema.Schema {
	doc := &jsonschema.Schema{
		Title:      g.translator.Translate(TranslationCategory, RequestParamsMessage),
		Type:       "object",
		Properties: orderedmap.New[string, *jsonschema.Schema](),
	}

	required := make([]string, 0, len(action.Params))
	for _, param := range action.Params {
		property, ok := g.buildProperty(action, param)
		if !ok {
			continue
		}

		if param.Required() {
			required = append(required, param.Name)
			if property.Type == "string" && !hasMinLength(property) {
				one := uint64(1)
				property.MinLength = &one
			}
		}

		doc.Properties.Set(param.Name, property)
	}

	if len(required) > 0 {
		doc.Required = required
	}

	return doc
}

func (g *Generator) buildProperty(action *Action, param Parameter) (*jsonschema.Schema, bool) {
	property := &jsonschema.Schema{
		Title: inflector.CamelToWords(param.Name),
		Type:  "string",
	}

	override, ok := action.Overrides[param.Name]
	if !ok {
		return property, true
	}

	result := NoOverride()
	if override.Func != nil {
		result = override.Func(action.Params)
	}
	if result.Skipped() {
		return nil, false
	}

	for _, field := range override.Fields {
		if err := applyField(property, field); err != nil {
			g.logger.Warn("%s: ignoring editor field %q: %v", ParamMethodName(action.ID, param.Name), field.Key, err)
		}
	}

	if result.Enumerated() {
		setEnum(property, result.Options())
	}

	return property, true
}

// SynthesizeSchema builds and encodes the schema for action. Root keys are
// written as title, type, properties, required.
func (g *Generator) SynthesizeSchema(action *Action) (string, error) {
	encoded, err := json.MarshalToString(rootDocument(g.BuildSchema(action)))
	if err != nil {
		return "", NewError(SchemaEncodingCode, "encoding synthesized schema").
			WithContext("action", action.ID).
			WithCause(err)
	}
	return encoded, nil
}

func rootDocument(doc *jsonschema.Schema) *orderedmap.OrderedMap[string, any] {
	root := orderedmap.New[string, any]()
	root.Set("title", doc.Title)
	root.Set("type", doc.Type)
	root.Set("properties", doc.Properties)
	if len(doc.Required) > 0 {
		root.Set("required", doc.Required)
	}
	return root
}

// Generate returns the schema for route, or an error explaining why none
// could be produced
func (g *Generator) Generate(route string) (string, error) {
	action, err := g.LocateAction(g.ResolveActionID(route))
	if err != nil {
		return "", err
	}

	if schema, ok := g.OverrideSchema(action); ok {
		return schema, nil
	}

	return g.SynthesizeSchema(action)
}

// JSONFromAction returns the schema for route. It always returns valid JSON:
// on any failure, including a panicking override, the fallback is returned.
func (g *Generator) JSONFromAction(route string) (schema string) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("schema generation for %q panicked: %v", route, r)
			schema = g.fallback
		}
	}()

	schema, err := g.Generate(route)
	if err != nil {
		g.logger.Debug("using fallback schema for %q: %v", route, err)
		return g.fallback
	}

	return schema
}
