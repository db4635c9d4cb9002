package liquidsoap

// Value is a Liquidsoap expression.
type Value interface {
	isValue()
}

// String is a quoted string literal.
type String string

// Int is an integer literal.
type Int int

// Float is a float literal, rendered with a decimal point ("3.", "-12.").
type Float float64

// Bool is true or false.
type Bool bool

// Ident is a bare identifier or dotted name, rendered verbatim.
type Ident string

// List is a list literal: [a, b, c].
type List []Value

// Tuple is a tuple literal: (a, b).
type Tuple []Value

// Interval is a time predicate such as {6h-18h}.
type Interval struct {
	FromHour int
	ToHour   int
}

// Arg is a function argument. An empty Name makes it positional.
type Arg struct {
	Name  string
	Value Value
}

// Call is a function application: name(args...).
type Call struct {
	Func string
	Args []Arg
}

// Encoder is an encoder literal: %name(args...).
type Encoder struct {
	Name string
	Args []Arg
}

func (String) isValue()   {}
func (Int) isValue()      {}
func (Float) isValue()    {}
func (Bool) isValue()     {}
func (Ident) isValue()    {}
func (List) isValue()     {}
func (Tuple) isValue()    {}
func (Interval) isValue() {}
func (Call) isValue()     {}
func (Encoder) isValue()  {}

// Named is shorthand for a named argument.
func Named(name string, v Value) Arg {
	return Arg{Name: name, Value: v}
}

// Positional is shorthand for a positional argument.
func Positional(v Value) Arg {
	return Arg{Value: v}
}

// Idents converts identifiers to a List of Ident values.
func Idents(ids []string) List {
	list := make(List, len(ids))
	for i, id := range ids {
		list[i] = Ident(id)
	}
	return list
}
