package interpreter

import (
	"fmt"
	"nilan/ast"
	"nilan/token"
)

// Callable is implemented by every value that can appear on the left of a
// call expression: native functions, user-defined functions, and classes
// (whose "call" constructs an instance). This is the idiomatic Go stand-in
// for the tagged union of callable kinds a host language without interfaces
// would need a discriminated struct for.
type Callable interface {
	Arity() int
	Call(interp *Interpreter, arguments []any) (any, error)
	String() string
}

// NativeFunction wraps a Go function as a callable Nilan value, used for
// builtins like clock().
type NativeFunction struct {
	Name  string
	arity int
	fn    func(interp *Interpreter, arguments []any) (any, error)
}

func NewNativeFunction(name string, arity int, fn func(interp *Interpreter, arguments []any) (any, error)) *NativeFunction {
	return &NativeFunction{Name: name, arity: arity, fn: fn}
}

func (n *NativeFunction) Arity() int { return n.arity }

func (n *NativeFunction) Call(interp *Interpreter, arguments []any) (any, error) {
	return n.fn(interp, arguments)
}

func (n *NativeFunction) String() string { return fmt.Sprintf("<native fn %s>", n.Name) }

// Function is a user-defined function or method, closing over the
// environment active at the point of its declaration.
type Function struct {
	declaration   *ast.FunctionStmt
	closure       *Environment
	isInitializer bool
}

func NewFunction(declaration *ast.FunctionStmt, closure *Environment, isInitializer bool) *Function {
	return &Function{declaration: declaration, closure: closure, isInitializer: isInitializer}
}

func (f *Function) Arity() int { return len(f.declaration.Params) }

// Bind returns a copy of f whose closure additionally binds "this" to
// instance, producing the bound method returned by instance property access.
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return NewFunction(f.declaration, env, f.isInitializer)
}

func (f *Function) Call(interp *Interpreter, arguments []any) (any, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, arguments[i])
	}

	outcome, err := interp.executeBlockStatements(f.declaration.Body, env)
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	if outcome.signal == execSignalReturn {
		return outcome.value, nil
	}
	return nil, nil
}

func (f *Function) String() string { return fmt.Sprintf("<fn %s>", f.declaration.Name.Lexeme) }

// Class is a Nilan class: a name, an optional superclass, and its own
// methods. Calling a Class constructs a new Instance.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

// FindMethod looks up a method by name on this class, then its superclass
// chain.
func (c *Class) FindMethod(name string) *Function {
	if method, ok := c.Methods[name]; ok {
		return method
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

func (c *Class) Call(interp *Interpreter, arguments []any) (any, error) {
	instance := NewInstance(c)
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(instance).Call(interp, arguments); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *Class) String() string { return c.Name }

// Instance is an instantiated object of a Class: a mutable field bag plus a
// pointer back to its class for method resolution.
type Instance struct {
	class  *Class
	fields map[string]any
}

func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: make(map[string]any)}
}

// Get resolves a property: an instance field takes precedence over a method
// of the same name, matching how fields can shadow methods once assigned.
func (inst *Instance) Get(name token.Token) (any, error) {
	if value, ok := inst.fields[name.Lexeme]; ok {
		return value, nil
	}
	if method := inst.class.FindMethod(name.Lexeme); method != nil {
		return method.Bind(inst), nil
	}
	msg := fmt.Sprintf("Undefined property '%s'.", name.Lexeme)
	return nil, CreateRuntimeError(name.Line, name.Column, msg)
}

func (inst *Instance) Set(name token.Token, value any) {
	inst.fields[name.Lexeme] = value
}

func (inst *Instance) String() string { return inst.class.Name + " instance" }
