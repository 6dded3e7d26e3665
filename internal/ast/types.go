package ast

import "strings"

// TypeKind is the tag of the Type variant.
type TypeKind int

const (
	TypeBuiltin TypeKind = iota
	TypeQualified
	TypePointer
	TypeLValueRef
	TypeRValueRef
	TypeNamed
)

// BuiltinKind enumerates builtin scalar kinds. Width variants (short, long,
// long long) are distinct kinds; signedness is tracked separately.
type BuiltinKind int

const (
	BuiltinVoid BuiltinKind = iota
	BuiltinBool
	BuiltinChar
	BuiltinWChar
	BuiltinShort
	BuiltinInt
	BuiltinLong
	BuiltinLongLong
	BuiltinFloat
	BuiltinDouble
)

func (k BuiltinKind) String() string {
	switch k {
	case BuiltinVoid:
		return "void"
	case BuiltinBool:
		return "bool"
	case BuiltinChar:
		return "char"
	case BuiltinWChar:
		return "wchar_t"
	case BuiltinShort:
		return "short"
	case BuiltinInt:
		return "int"
	case BuiltinLong:
		return "long"
	case BuiltinLongLong:
		return "long long"
	case BuiltinFloat:
		return "float"
	case BuiltinDouble:
		return "double"
	default:
		return "builtin?"
	}
}

// Signedness of a builtin type as spelled in source. Unspecified means the
// source did not spell signed/unsigned; whether that collapses to signed is
// an equivalence-policy concern, not a model concern.
type Signedness int

const (
	SignUnspecified Signedness = iota
	SignSigned
	SignUnsigned
)

// Type is an immutable tagged variant. Only the fields relevant to Kind are
// populated; the rest stay at their zero values.
type Type struct {
	Kind TypeKind

	// TypeBuiltin
	Builtin BuiltinKind
	Sign    Signedness

	// TypeQualified (qualified inner type) and TypePointer/TypeLValueRef/
	// TypeRValueRef (pointee).
	Inner *Type

	// TypeQualified
	Const    bool
	Volatile bool

	// TypeNamed: reference to a record or template-specialization declaration
	// in the same tree. TargetName is informational for display only.
	Target     DeclID
	TargetName string
}

// NewBuiltin returns a builtin type.
func NewBuiltin(kind BuiltinKind, sign Signedness) *Type {
	return &Type{Kind: TypeBuiltin, Builtin: kind, Sign: sign}
}

// Qualify wraps inner with cv-qualifiers. Qualifying an already qualified
// type merges the flags instead of stacking wrappers.
func Qualify(inner *Type, isConst, isVolatile bool) *Type {
	if !isConst && !isVolatile {
		return inner
	}
	if inner.Kind == TypeQualified {
		return &Type{
			Kind:     TypeQualified,
			Inner:    inner.Inner,
			Const:    inner.Const || isConst,
			Volatile: inner.Volatile || isVolatile,
		}
	}
	return &Type{Kind: TypeQualified, Inner: inner, Const: isConst, Volatile: isVolatile}
}

// Unqualified strips a top-level qualifier wrapper, if any.
func Unqualified(t *Type) *Type {
	if t != nil && t.Kind == TypeQualified {
		return t.Inner
	}
	return t
}

// PointerTo returns a pointer to pointee.
func PointerTo(pointee *Type) *Type {
	return &Type{Kind: TypePointer, Inner: pointee}
}

// LValueRefTo returns an lvalue reference to pointee.
func LValueRefTo(pointee *Type) *Type {
	return &Type{Kind: TypeLValueRef, Inner: pointee}
}

// RValueRefTo returns an rvalue reference to pointee.
func RValueRefTo(pointee *Type) *Type {
	return &Type{Kind: TypeRValueRef, Inner: pointee}
}

// NewNamed returns a reference to a declaration in the same tree.
func NewNamed(name string, target DeclID) *Type {
	return &Type{Kind: TypeNamed, Target: target, TargetName: name}
}

// String renders the type roughly the way it was spelled. Used in warnings
// and verdict output only; equivalence never compares spellings.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case TypeBuiltin:
		var b strings.Builder
		switch t.Sign {
		case SignSigned:
			b.WriteString("signed ")
		case SignUnsigned:
			b.WriteString("unsigned ")
		}
		b.WriteString(t.Builtin.String())
		return b.String()
	case TypeQualified:
		var b strings.Builder
		if t.Const {
			b.WriteString("const ")
		}
		if t.Volatile {
			b.WriteString("volatile ")
		}
		b.WriteString(t.Inner.String())
		return b.String()
	case TypePointer:
		return t.Inner.String() + " *"
	case TypeLValueRef:
		return t.Inner.String() + " &"
	case TypeRValueRef:
		return t.Inner.String() + " &&"
	case TypeNamed:
		return t.TargetName
	default:
		return "<type?>"
	}
}
