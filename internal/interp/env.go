package interp

// Environment is one binding frame with a link to its enclosing scope.
// Define binds in this frame; Assign and Get walk outward through parents.
type Environment struct {
	parent *Environment
	table  map[string]Value
}

func NewEnvironment(parent *Environment) *Environment {
	return &Environment{parent: parent, table: make(map[string]Value)}
}

// Define binds name in the current frame, shadowing any outer binding.
func (e *Environment) Define(name string, v Value) {
	e.table[name] = v
}

// Assign updates the nearest existing binding. It reports false when no
// enclosing frame binds the name; it never implicitly defines.
func (e *Environment) Assign(name string, v Value) bool {
	if _, ok := e.table[name]; ok {
		e.table[name] = v
		return true
	}
	if e.parent != nil {
		return e.parent.Assign(name, v)
	}
	return false
}

// Get returns the nearest visible binding for name.
func (e *Environment) Get(name string) (Value, bool) {
	if v, ok := e.table[name]; ok {
		return v, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return nil, false
}
