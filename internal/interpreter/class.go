package interpreter

// LoxClass is a runtime class value: callable to construct instances, and
// itself a method-lookup target for `super` calls (spec §4.4/§4.5).
type LoxClass struct {
	Name       string
	Superclass *LoxClass
	Methods    map[string]*LoxFunction
}

func NewLoxClass(name string, superclass *LoxClass, methods map[string]*LoxFunction) *LoxClass {
	return &LoxClass{Name: name, Superclass: superclass, Methods: methods}
}

// FindMethod looks up name on this class, then walks the superclass chain.
func (c *LoxClass) FindMethod(name string) *LoxFunction {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

func (c *LoxClass) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs a new instance, running `init` (if defined) against it.
func (c *LoxClass) Call(interp *Interpreter, args []any) (any, error) {
	instance := NewLoxInstance(c)
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.Bind(instance).Call(interp, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *LoxClass) String() string {
	return c.Name
}
