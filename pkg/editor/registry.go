package editor

import (
	"errors"
	"sync"

	"github.com/toyz/editorschema/internal/annotations"
	"github.com/toyz/editorschema/internal/inflector"
	"github.com/toyz/editorschema/internal/utils"
)

// ActionRegistry looks up action metadata by action ID
type ActionRegistry interface {
	Register(action Action) error
	Get(actionID string) (Action, bool)
	All() []Action
	Clear()
}

// InMemoryActionRegistry is the default ActionRegistry
type InMemoryActionRegistry struct {
	actions *utils.Registry[string, Action]
	logger  Logger
	mu      sync.RWMutex
}

// DefaultActionRegistry is used by generators created without a registry
var DefaultActionRegistry = NewInMemoryActionRegistry()

// RegisterAction registers an action on DefaultActionRegistry
func RegisterAction(action Action) error {
	return DefaultActionRegistry.Register(action)
}

// NewInMemoryActionRegistry creates a new in-memory action registry
func NewInMemoryActionRegistry() *InMemoryActionRegistry {
	return &InMemoryActionRegistry{
		actions: utils.NewRegistry[string, Action](),
		logger:  DefaultLogger(),
	}
}

// SetLogger sets where annotation diagnostics are reported
func (r *InMemoryActionRegistry) SetLogger(logger Logger) {
	if logger == nil {
		logger = NopLogger{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// NormalizeActionID converts an action name such as "product-detail" or
// "ProductDetail" to its identifier form "productDetail"
func NormalizeActionID(id string) string {
	return inflector.LowercaseFirstLetter(inflector.Camelize(id))
}

// Register validates and stores action. Override doc annotations are parsed
// here; their fields follow any explicit Fields.
func (r *InMemoryActionRegistry) Register(action Action) error {
	id := NormalizeActionID(action.ID)
	if id == "" {
		return NewError(RegistrationCode, "action id is required").WithContext("id", action.ID)
	}

	declared := make(map[string]bool, len(action.Params))
	for i, param := range action.Params {
		if param.Name == "" {
			return Errorf(RegistrationCode, "parameter %d has no name", i).WithContext("action", id)
		}
		if declared[param.Name] {
			return Errorf(RegistrationCode, "parameter %q declared twice", param.Name).WithContext("action", id)
		}
		declared[param.Name] = true
	}

	for name := range action.Overrides {
		if !declared[name] {
			return Errorf(RegistrationCode, "override for undeclared parameter %q", name).WithContext("action", id)
		}
	}

	r.mu.RLock()
	logger := r.logger
	r.mu.RUnlock()

	prepared := Action{
		ID:     id,
		Params: append([]Parameter(nil), action.Params...),
		Schema: action.Schema,
	}

	if len(action.Overrides) > 0 {
		prepared.Overrides = make(map[string]ParamOverride, len(action.Overrides))
		for name, override := range action.Overrides {
			prepared.Overrides[name] = prepareOverride(logger, id, name, override)
		}
	}

	if err := r.actions.Register(id, prepared); err != nil {
		if errors.Is(err, utils.ErrDuplicateKey) {
			return Errorf(RegistrationCode, "action %q already registered", id).WithContext("action", id)
		}
		return NewError(RegistrationCode, "registering action").WithContext("action", id).WithCause(err)
	}
	return nil
}

func prepareOverride(logger Logger, actionID, param string, override ParamOverride) ParamOverride {
	fields := append([]Field(nil), override.Fields...)

	if override.Doc != "" {
		parsed, diagnostics := annotations.Parse(override.Doc)
		for _, diagnostic := range diagnostics {
			logger.Warn("%s: %v", ParamMethodName(actionID, param),
				NewError(AnnotationParseCode, "editor annotation").WithCause(diagnostic))
		}
		for _, field := range parsed {
			fields = append(fields, Field{Key: field.Key, Value: field.Value})
		}
	}

	return ParamOverride{Func: override.Func, Fields: fields, Doc: override.Doc}
}

// Get returns the action registered under actionID
func (r *InMemoryActionRegistry) Get(actionID string) (Action, bool) {
	return r.actions.Get(NormalizeActionID(actionID))
}

// All returns the registered actions in registration order
func (r *InMemoryActionRegistry) All() []Action {
	return r.actions.Values()
}

// Len returns the number of registered actions
func (r *InMemoryActionRegistry) Len() int {
	return r.actions.Size()
}

// Clear removes all registered actions
func (r *InMemoryActionRegistry) Clear() {
	r.actions.Clear()
}
