package ast

import "fmt"

// DeclKind is the tag of the Decl variant.
type DeclKind int

const (
	DeclVariable DeclKind = iota
	DeclField
	DeclFunction
	DeclMethod
	DeclConstructor
	DeclConversion
	DeclRecord
	DeclTemplateSpec
	DeclClassTemplate
	DeclNamespace
)

func (k DeclKind) String() string {
	switch k {
	case DeclVariable:
		return "variable"
	case DeclField:
		return "field"
	case DeclFunction:
		return "function"
	case DeclMethod:
		return "method"
	case DeclConstructor:
		return "constructor"
	case DeclConversion:
		return "conversion"
	case DeclRecord:
		return "record"
	case DeclTemplateSpec:
		return "specialization"
	case DeclClassTemplate:
		return "template"
	case DeclNamespace:
		return "namespace"
	default:
		return "decl?"
	}
}

// ParseDeclKind maps a CLI/manifest kind name to a DeclKind.
func ParseDeclKind(s string) (DeclKind, error) {
	kinds := []DeclKind{
		DeclVariable, DeclField, DeclFunction, DeclMethod, DeclConstructor,
		DeclConversion, DeclRecord, DeclTemplateSpec, DeclClassTemplate, DeclNamespace,
	}
	for _, k := range kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown declaration kind %q", s)
}

// AccessSpec is a member access specifier.
type AccessSpec int

const (
	AccessPublic AccessSpec = iota
	AccessProtected
	AccessPrivate
)

func (a AccessSpec) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	default:
		return "access?"
	}
}

// RefQualifier restricts the implicit object parameter of a method.
type RefQualifier int

const (
	RefNone RefQualifier = iota
	RefLValue
	RefRValue
)

// ExceptionSpecKind enumerates the shapes an exception specification can
// take. The spelled shapes are deliberately all distinct: an absent spec, a
// dynamic throw list, throw(...), bare noexcept and noexcept(true/false) are
// pairwise non-equivalent.
type ExceptionSpecKind int

const (
	ExceptNone ExceptionSpecKind = iota
	ExceptDynamic
	ExceptUnspecified // throw(...)
	ExceptNoexcept    // noexcept with no evaluated expression
	ExceptNoexceptTrue
	ExceptNoexceptFalse
)

// ExceptionSpec is the declared exception contract of a function. Thrown is
// populated for ExceptDynamic only; throw() is a Dynamic spec with an empty
// list.
type ExceptionSpec struct {
	Kind   ExceptionSpecKind
	Thrown []*Type
}

// BaseSpec is one entry of a record's ordered base-class list. Access on
// inheritance edges is recorded but not part of equivalence (known
// limitation inherited from the reference behavior).
type BaseSpec struct {
	Type      *Type
	IsVirtual bool
	Access    AccessSpec
}

// Decl is a declaration node: one struct with a Kind tag, only the fields
// relevant to the kind are set.
//
// Name conventions: constructors carry their record's name, conversion
// operators carry "operator <type>", overloaded operators carry
// "operator<symbol>".
type Decl struct {
	Kind   DeclKind
	Name   string
	Access AccessSpec

	// DeclVariable, DeclField: declared type.
	// DeclConversion: conversion target type.
	Type *Type

	// Function-like kinds.
	Return       *Type
	Params       []*Type
	ParamNames   []string // informational only, never compared
	Variadic     bool
	Except       ExceptionSpec
	IsDefinition bool // body present

	// DeclMethod and subkinds.
	IsConst     bool
	IsStatic    bool
	IsVirtual   bool
	IsPure      bool
	IsDeleted   bool
	IsDefaulted bool
	IsExplicit  bool // DeclConstructor
	RefQual     RefQualifier

	// DeclRecord, DeclTemplateSpec.
	Bases     []BaseSpec
	Members   []DeclID
	IsForward bool

	// DeclTemplateSpec: ordered template arguments.
	TemplateArgs []*Type

	// DeclClassTemplate: parameter names and the pattern record.
	TemplateParams []string
	Pattern        DeclID

	// DeclNamespace reuses Members.
}

// IsFunctionLike reports whether the declaration carries a signature.
func (d *Decl) IsFunctionLike() bool {
	switch d.Kind {
	case DeclFunction, DeclMethod, DeclConstructor, DeclConversion:
		return true
	}
	return false
}
