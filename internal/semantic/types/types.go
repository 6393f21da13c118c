// Package types implements the type system for the Sable compiler.
//
// DESIGN PHILOSOPHY:
// The type system is small and fully structural:
// 1. Primitive types (int, long, double, char, string, bool, void, nil)
// 2. Array types (element type only; arrays carry no length)
// 3. Function types (return type + ordered parameter types)
//
// KEY DESIGN CHOICES:
// - Structural equality everywhere: two types are equal if their shapes
//   match, independent of object identity. int[] == int[],
//   fn(int)->void == fn(int)->void.
// - Types are immutable values. Primitives are interned singletons;
//   composites are built once and shared freely between the AST and the
//   symbol table. Nothing is ever cloned or released, so there is no
//   ownership to track.
package types

// Type is the interface that all types implement.
//
// DESIGN CHOICE: An interface rather than a struct with a "kind" field:
// each type gets its own struct, consumers pattern-match with type
// switches, and it follows Go conventions (ast.Node and friends).
type Type interface {
	// String returns a human-readable representation of the type.
	String() string

	// Equals reports structural equality with another type; arrays and
	// functions compare element/return/parameter types recursively.
	Equals(other Type) bool

	// kind returns the kind of type (for internal use).
	// Not exported: external code should use type switches.
	kind() TypeKind
}

// TypeKind represents the kind of type, used internally for quick checks.
type TypeKind int

const (
	KindInvalid TypeKind = iota
	KindVoid
	KindInt
	KindLong
	KindDouble
	KindChar
	KindString
	KindBool
	KindNil
	KindArray
	KindFunction
)

// Primitive type implementations.
// Each is an empty struct: all the information is in the Go type itself.

// IntType is the 64-bit signed integer type.
type IntType struct{}

func (t *IntType) String() string         { return "int" }
func (t *IntType) Equals(other Type) bool { _, ok := other.(*IntType); return ok }
func (t *IntType) kind() TypeKind         { return KindInt }

// LongType is the long integer type. Same machine representation as int;
// kept distinct because the language treats them as different types.
type LongType struct{}

func (t *LongType) String() string         { return "long" }
func (t *LongType) Equals(other Type) bool { _, ok := other.(*LongType); return ok }
func (t *LongType) kind() TypeKind         { return KindLong }

// DoubleType is the floating-point type.
type DoubleType struct{}

func (t *DoubleType) String() string         { return "double" }
func (t *DoubleType) Equals(other Type) bool { _, ok := other.(*DoubleType); return ok }
func (t *DoubleType) kind() TypeKind         { return KindDouble }

// CharType is the character type.
type CharType struct{}

func (t *CharType) String() string         { return "char" }
func (t *CharType) Equals(other Type) bool { _, ok := other.(*CharType); return ok }
func (t *CharType) kind() TypeKind         { return KindChar }

// StringType is the string type.
type StringType struct{}

func (t *StringType) String() string         { return "string" }
func (t *StringType) Equals(other Type) bool { _, ok := other.(*StringType); return ok }
func (t *StringType) kind() TypeKind         { return KindString }

// BoolType is the boolean type.
type BoolType struct{}

func (t *BoolType) String() string         { return "bool" }
func (t *BoolType) Equals(other Type) bool { _, ok := other.(*BoolType); return ok }
func (t *BoolType) kind() TypeKind         { return KindBool }

// VoidType is the absence of a value (function with no return value).
type VoidType struct{}

func (t *VoidType) String() string         { return "void" }
func (t *VoidType) Equals(other Type) bool { _, ok := other.(*VoidType); return ok }
func (t *VoidType) kind() TypeKind         { return KindVoid }

// NilType is the type of the nil literal.
type NilType struct{}

func (t *NilType) String() string         { return "nil" }
func (t *NilType) Equals(other Type) bool { _, ok := other.(*NilType); return ok }
func (t *NilType) kind() TypeKind         { return KindNil }

// Composite types

// ArrayType represents an array type: T[].
// Arrays carry no length in the type; a Sable array is a reference to a
// runtime-managed block.
type ArrayType struct {
	ElementType Type
}

func (t *ArrayType) String() string { return t.ElementType.String() + "[]" }

func (t *ArrayType) Equals(other Type) bool {
	if o, ok := other.(*ArrayType); ok {
		return t.ElementType.Equals(o.ElementType)
	}
	return false
}

func (t *ArrayType) kind() TypeKind { return KindArray }

// FunctionType represents a function signature: ordered parameter types
// and a return type. Parameter names are not part of the type.
type FunctionType struct {
	Parameters []Type
	ReturnType Type
}

func (t *FunctionType) String() string {
	s := "fn("
	for i, p := range t.Parameters {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ") -> " + t.ReturnType.String()
}

func (t *FunctionType) Equals(other Type) bool {
	o, ok := other.(*FunctionType)
	if !ok {
		return false
	}
	if !t.ReturnType.Equals(o.ReturnType) {
		return false
	}
	if len(t.Parameters) != len(o.Parameters) {
		return false
	}
	for i, p := range t.Parameters {
		if !p.Equals(o.Parameters[i]) {
			return false
		}
	}
	return true
}

func (t *FunctionType) kind() TypeKind { return KindFunction }

// Predefined type instances (singletons).
// Used throughout the compiler so primitive types never allocate and can
// be compared cheaply; Equals still works structurally regardless.
var (
	Int    = &IntType{}
	Long   = &LongType{}
	Double = &DoubleType{}
	Char   = &CharType{}
	String = &StringType{}
	Bool   = &BoolType{}
	Void   = &VoidType{}
	Nil    = &NilType{}
)

// Helper functions

// IsNumeric returns true for the arithmetic types (int, long, double).
func IsNumeric(t Type) bool {
	switch t.(type) {
	case *IntType, *LongType, *DoubleType:
		return true
	default:
		return false
	}
}

// IsPrintable returns true for the primitive types print accepts and
// string interpolation can render.
func IsPrintable(t Type) bool {
	switch t.(type) {
	case *IntType, *LongType, *DoubleType, *CharType, *StringType, *BoolType:
		return true
	default:
		return false
	}
}

// NewArray creates an array type over the given element type.
func NewArray(elementType Type) *ArrayType {
	return &ArrayType{ElementType: elementType}
}

// NewFunction creates a function type.
func NewFunction(parameters []Type, returnType Type) *FunctionType {
	return &FunctionType{
		Parameters: parameters,
		ReturnType: returnType,
	}
}
