package ir

/* ---------- entities ---------- */

// EntityID is the stable index an entity receives at its declaration site.
// Every reference to the entity carries the same ID; the generator mangles
// names by it.
type EntityID int

// Entity is a named declared thing: a variable, a program or an object.
type Entity interface {
	Expr
	ID() EntityID
	EntityName() string
}

type Variable struct {
	id      EntityID
	Name    string
	VarType Type
	Mutable bool
}

type Function struct {
	id         EntityID
	Name       string
	Parameters []*Variable
	ReturnType Type
	Body       []Stmt
}

type Object struct {
	id         EntityID
	Name       string
	Parameters []*Variable
	Body       []Stmt
}

func (v *Variable) ID() EntityID       { return v.id }
func (v *Variable) EntityName() string { return v.Name }
func (v *Variable) Type() Type         { return v.VarType }
func (*Variable) node()                {}
func (*Variable) expr()                {}

func (f *Function) ID() EntityID       { return f.id }
func (f *Function) EntityName() string { return f.Name }
func (*Function) Type() Type           { return TypeAny }
func (*Function) node()                {}
func (*Function) expr()                {}

// WithBody returns a copy of f sharing its identity but holding body.
func (f *Function) WithBody(body []Stmt) *Function {
	c := *f
	c.Body = body
	return &c
}

func (o *Object) ID() EntityID       { return o.id }
func (o *Object) EntityName() string { return o.Name }
func (*Object) Type() Type           { return TypeAny }
func (*Object) node()                {}
func (*Object) expr()                {}

// WithBody returns a copy of o sharing its identity but holding body.
func (o *Object) WithBody(body []Stmt) *Object {
	c := *o
	c.Body = body
	return &c
}

// Registry allocates entity IDs, starting at 1, in declaration order. One
// registry belongs to one compilation.
type Registry struct {
	entities []Entity
}

func NewRegistry() *Registry { return &Registry{} }

func (r *Registry) next() EntityID { return EntityID(len(r.entities) + 1) }

// NewVariable declares a variable. Storm variables are always mutable.
func (r *Registry) NewVariable(name string, t Type) *Variable {
	v := &Variable{id: r.next(), Name: name, VarType: t, Mutable: true}
	r.entities = append(r.entities, v)
	return v
}

// NewFunction declares a program. Its return type is always void.
func (r *Registry) NewFunction(name string, params []*Variable, body []Stmt) *Function {
	f := &Function{id: r.next(), Name: name, Parameters: params, ReturnType: TypeVoid, Body: body}
	r.entities = append(r.entities, f)
	return f
}

func (r *Registry) NewObject(name string, params []*Variable, body []Stmt) *Object {
	o := &Object{id: r.next(), Name: name, Parameters: params, Body: body}
	r.entities = append(r.entities, o)
	return o
}

// Lookup returns the entity declared with id.
func (r *Registry) Lookup(id EntityID) (Entity, bool) {
	i := int(id) - 1
	if i < 0 || i >= len(r.entities) {
		return nil, false
	}
	return r.entities[i], true
}

// Len reports how many entities have been declared.
func (r *Registry) Len() int { return len(r.entities) }
