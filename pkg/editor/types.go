package editor

// Parameter describes one declared parameter of a controller action
type Parameter struct {
	// Name is the parameter name as it appears in the request
	Name string `json:"name"`

	// Type is the declared type. It is informational; the schema type is
	// "string" unless an editor field overrides it.
	Type string `json:"type,omitempty"`

	// Optional marks a parameter that has a default value. A non-nil Default
	// implies it; set it explicitly when the default itself is nil.
	Optional bool `json:"optional,omitempty"`

	// Default is the declared default value, if any
	Default any `json:"default,omitempty"`
}

// Required reports whether the parameter has no default value
func (p Parameter) Required() bool {
	return !p.Optional && p.Default == nil
}

// Option is a single enum entry: the submitted value and its display label
type Option struct {
	Value any
	Label any
}

// Opt creates an Option
func Opt(value, label any) Option {
	return Option{Value: value, Label: label}
}

type resultKind int

const (
	resultNone resultKind = iota
	resultSkip
	resultEnum
)

// ParamResult is what a per-parameter override decides for its parameter
type ParamResult struct {
	kind    resultKind
	options []Option
}

// NoOverride leaves the parameter to the default inference
func NoOverride() ParamResult {
	return ParamResult{kind: resultNone}
}

// Skip removes the parameter from the schema entirely
func Skip() ParamResult {
	return ParamResult{kind: resultSkip}
}

// Enum restricts the parameter to the given options, in order
func Enum(options ...Option) ParamResult {
	return ParamResult{kind: resultEnum, options: options}
}

// Skipped reports whether the parameter must be left out of the schema
func (r ParamResult) Skipped() bool {
	return r.kind == resultSkip
}

// Enumerated reports whether the result is an enum, including an empty one
func (r ParamResult) Enumerated() bool {
	return r.kind == resultEnum
}

// Options returns the enum options, or nil when the result is not an enum
func (r ParamResult) Options() []Option {
	if r.kind != resultEnum {
		return nil
	}
	return r.options
}

// ParamFunc computes a per-parameter override. It receives the full
// parameter list of the action.
type ParamFunc func(params []Parameter) ParamResult

// ActionSchemaFunc supplies a complete schema for an action. A string,
// []byte or json.RawMessage result is used as already-encoded JSON; maps,
// structs and *jsonschema.Schema values are encoded. nil, booleans and
// numbers mean "no override".
type ActionSchemaFunc func(params []Parameter) (any, error)

// Field is an extra schema key/value pair applied to a parameter's property.
// Known keys (title, type, description, format, pattern, default, minLength,
// maxLength, enum) set the matching schema keyword; anything else is copied
// through as-is.
type Field struct {
	Key   string `json:"key" yaml:"key"`
	Value any    `json:"value" yaml:"value"`
}

// ParamOverride customizes the property generated for one parameter
type ParamOverride struct {
	// Func decides whether the parameter is skipped or becomes an enum
	Func ParamFunc

	// Fields are applied in order after Func has run
	Fields []Field

	// Doc holds `@editor <key> <value>` lines. They are parsed at
	// registration and appended to Fields.
	Doc string
}

// Action is the registered metadata of one controller action
type Action struct {
	// ID is the action identifier, e.g. "detail" for actionDetail
	ID string

	// Params in declaration order
	Params []Parameter

	// Schema optionally replaces the whole generated schema
	Schema ActionSchemaFunc

	// Overrides keyed by parameter name
	Overrides map[string]ParamOverride
}

// Controller identifies the host controller the generator serves
type Controller struct {
	// ID is the controller's unique route id, e.g. "product" or "admin/product"
	ID string

	// DefaultAction is used when the route names the controller only
	DefaultAction string
}
