package interpreter

import (
	"github.com/cwbudde/glox/internal/errors"
	"github.com/cwbudde/glox/internal/token"
)

// LoxInstance is a runtime object: a class tag plus its own field map,
// independent of any fields its class's methods reference (spec §4.4).
type LoxInstance struct {
	class  *LoxClass
	fields map[string]any
}

func NewLoxInstance(class *LoxClass) *LoxInstance {
	return &LoxInstance{class: class, fields: make(map[string]any)}
}

func (i *LoxInstance) Get(name token.Token) (any, error) {
	if value, ok := i.fields[name.Lexeme]; ok {
		return value, nil
	}
	if method := i.class.FindMethod(name.Lexeme); method != nil {
		return method.Bind(i), nil
	}
	return nil, errors.NewRuntimeError(name, "Undefined property '%s'.", name.Lexeme)
}

func (i *LoxInstance) Set(name token.Token, value any) {
	i.fields[name.Lexeme] = value
}

func (i *LoxInstance) String() string {
	return i.class.Name + " instance"
}
