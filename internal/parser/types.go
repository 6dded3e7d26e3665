package parser

import (
	"strings"

	"github.com/decleq/decleq/internal/ast"
)

var builtinTokens = map[string]bool{
	"void": true, "bool": true, "char": true, "wchar_t": true,
	"short": true, "int": true, "long": true, "float": true, "double": true,
	"signed": true, "unsigned": true,
}

// parseType parses a full type: leading cv-qualifiers, a builtin or named
// base type, then any pointer/reference/qualifier suffixes.
func (s *state) parseType() *ast.Type {
	leadConst, leadVolatile := s.parseQualifiers()
	t := ast.Qualify(s.parseBaseType(), leadConst, leadVolatile)

	for {
		switch {
		case s.accept("*"):
			t = ast.PointerTo(t)
		case s.accept("&"):
			t = ast.LValueRefTo(t)
		case s.accept("&&"):
			t = ast.RValueRefTo(t)
		case s.atText("const") || s.atText("volatile"):
			isConst, isVolatile := s.parseQualifiers()
			t = ast.Qualify(t, isConst, isVolatile)
		default:
			return t
		}
	}
}

func (s *state) parseQualifiers() (isConst, isVolatile bool) {
	for {
		switch {
		case s.accept("const"):
			isConst = true
		case s.accept("volatile"):
			isVolatile = true
		default:
			return isConst, isVolatile
		}
	}
}

func (s *state) parseBaseType() *ast.Type {
	if s.at(tokIdent) && builtinTokens[s.cur().text] {
		return s.parseBuiltinType()
	}
	// Elaborated type specifier keywords are transparent here.
	if !s.accept("struct") {
		s.accept("class")
	}

	parts := []string{s.takeIdent()}
	// Stop before "::operator ..." so out-of-line operator declarators are
	// not swallowed into the type.
	for s.atText("::") && s.peek().text != "operator" {
		s.expect("::")
		parts = append(parts, s.takeIdent())
	}
	spelled := strings.Join(parts, "::")

	if s.accept("<") {
		// Template-id: materialize an implicit forward specialization the
		// engine compares by name and arguments.
		args := s.parseTypeList()
		target := s.tree.Add(ast.Decl{
			Kind:         ast.DeclTemplateSpec,
			Name:         parts[len(parts)-1],
			TemplateArgs: args,
			IsForward:    true,
		})
		return ast.NewNamed(spelled, target)
	}

	id, ok := s.resolveQualified(parts)
	if !ok {
		if len(parts) > 1 {
			s.fail("unknown name %q", spelled)
		}
		// An unseen bare name acts as an implicit forward record, the way
		// an elaborated "struct X" reference would.
		id = s.tree.Add(ast.Decl{Kind: ast.DeclRecord, Name: parts[0], IsForward: true})
		s.declare(parts[0], id)
	}
	return ast.NewNamed(spelled, id)
}

// parseBuiltinType folds a builtin specifier sequence (signed, unsigned,
// short, long, the base keyword) into one kind plus signedness.
func (s *state) parseBuiltinType() *ast.Type {
	sign := ast.SignUnspecified
	short := false
	longs := 0
	base := ""

	for s.at(tokIdent) && builtinTokens[s.cur().text] {
		switch t := s.takeIdent(); t {
		case "signed":
			sign = ast.SignSigned
		case "unsigned":
			sign = ast.SignUnsigned
		case "short":
			short = true
		case "long":
			longs++
		default:
			base = t
		}
	}

	var kind ast.BuiltinKind
	switch {
	case base == "void":
		kind = ast.BuiltinVoid
	case base == "bool":
		kind = ast.BuiltinBool
	case base == "char":
		kind = ast.BuiltinChar
	case base == "wchar_t":
		kind = ast.BuiltinWChar
	case base == "float":
		kind = ast.BuiltinFloat
	case base == "double":
		kind = ast.BuiltinDouble
	case short:
		kind = ast.BuiltinShort
	case longs >= 2:
		kind = ast.BuiltinLongLong
	case longs == 1:
		kind = ast.BuiltinLong
	default:
		kind = ast.BuiltinInt
	}
	return ast.NewBuiltin(kind, sign)
}

// parseTypeList parses "T, U, V>" (the opening angle bracket is already
// consumed).
func (s *state) parseTypeList() []*ast.Type {
	var args []*ast.Type
	for {
		args = append(args, s.parseType())
		if s.accept(",") {
			continue
		}
		s.expect(">")
		return args
	}
}

type signature struct {
	params      []*ast.Type
	paramNames  []string
	variadic    bool
	isConst     bool
	refQual     ast.RefQualifier
	except      ast.ExceptionSpec
	isPure      bool
	isDeleted   bool
	isDefaulted bool
	hasBody     bool
}

// parseSignature parses everything from the parameter list opening paren
// through the terminating semicolon or (skipped) body.
func (s *state) parseSignature() signature {
	var sig signature
	s.expect("(")
	if !s.atText(")") {
		for {
			if s.accept("...") {
				sig.variadic = true
				break
			}
			// Top-level cv-qualifiers on a parameter do not participate in
			// the signature; the front-end canonicalizes them away.
			pt := ast.Unqualified(s.parseType())
			name := ""
			if s.at(tokIdent) {
				name = s.takeIdent()
			}
			sig.params = append(sig.params, pt)
			sig.paramNames = append(sig.paramNames, name)
			if s.accept("...") {
				sig.variadic = true
				break
			}
			if s.accept(",") {
				continue
			}
			break
		}
	}
	s.expect(")")

	for {
		switch {
		case s.accept("const"):
			sig.isConst = true
			continue
		case s.accept("volatile"):
			s.warnf("line %d: volatile method qualifiers are not modeled, ignored", s.cur().line)
			continue
		case s.accept("&"):
			sig.refQual = ast.RefLValue
			continue
		case s.accept("&&"):
			sig.refQual = ast.RefRValue
			continue
		}
		break
	}

	switch {
	case s.atText("throw"):
		sig.except = s.parseThrowSpec()
	case s.atText("noexcept"):
		sig.except = s.parseNoexceptSpec()
	}

	if s.accept("=") {
		switch t := s.cur().text; t {
		case "0":
			sig.isPure = true
		case "delete":
			sig.isDeleted = true
		case "default":
			sig.isDefaulted = true
		default:
			s.fail("expected 0, delete or default after %q", "=")
		}
		s.pos++
	}

	// Constructor initializer lists precede the body and are skipped.
	if s.atText(":") {
		for !s.atText("{") && !s.at(tokEOF) {
			s.pos++
		}
	}

	if s.atText("{") {
		s.skipBalanced("{", "}")
		sig.hasBody = true
		return sig
	}
	s.expect(";")
	return sig
}

func (s *state) parseThrowSpec() ast.ExceptionSpec {
	s.expect("throw")
	s.expect("(")
	if s.accept(")") {
		return ast.ExceptionSpec{Kind: ast.ExceptDynamic}
	}
	if s.accept("...") {
		s.expect(")")
		return ast.ExceptionSpec{Kind: ast.ExceptUnspecified}
	}
	var thrown []*ast.Type
	for {
		thrown = append(thrown, s.parseType())
		if s.accept(",") {
			continue
		}
		s.expect(")")
		return ast.ExceptionSpec{Kind: ast.ExceptDynamic, Thrown: thrown}
	}
}

// parseNoexceptSpec keeps only the literal boolean spelling. A non-literal
// operand collapses to the unevaluated form: the engine compares shapes,
// never expression values.
func (s *state) parseNoexceptSpec() ast.ExceptionSpec {
	s.expect("noexcept")
	if !s.atText("(") {
		return ast.ExceptionSpec{Kind: ast.ExceptNoexcept}
	}

	kind := ast.ExceptNoexcept
	if s.peek().text == "true" || s.peek().text == "false" {
		// Only the exact noexcept(true) / noexcept(false) spellings count
		// as literal.
		save := s.pos
		s.expect("(")
		lit := s.takeIdent()
		if s.accept(")") {
			if lit == "true" {
				return ast.ExceptionSpec{Kind: ast.ExceptNoexceptTrue}
			}
			return ast.ExceptionSpec{Kind: ast.ExceptNoexceptFalse}
		}
		s.pos = save
	}

	s.warnf("line %d: non-literal noexcept operand treated as unevaluated", s.cur().line)
	s.skipBalanced("(", ")")
	return ast.ExceptionSpec{Kind: kind}
}
