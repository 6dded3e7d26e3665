package parser

import "github.com/decleq/decleq/internal/ast"

// parseRecord parses a struct/class declaration or definition starting at
// the struct/class keyword. When isSpec is set the record is an explicit
// template specialization and may carry a template argument list after its
// name. The caller consumes the trailing semicolon.
func (s *state) parseRecord(isSpec bool) ast.DeclID {
	defaultAccess := ast.AccessPrivate
	if s.accept("struct") {
		defaultAccess = ast.AccessPublic
	} else {
		s.expect("class")
	}
	name := s.takeIdent()

	kind := ast.DeclRecord
	var targs []*ast.Type
	if isSpec {
		kind = ast.DeclTemplateSpec
		s.expect("<")
		targs = s.parseTypeList()
	}

	// Forward declaration: reuse an earlier declaration of the same record
	// so later references resolve to one node.
	if s.atText(";") {
		if id, ok := s.resolveLocal(name); ok && s.tree.Decl(id).Kind == kind {
			return id
		}
		id := s.tree.Add(ast.Decl{Kind: kind, Name: name, TemplateArgs: targs, IsForward: true})
		if !isSpec {
			s.declare(name, id)
		}
		return id
	}

	// Definition. The node goes in before bases and members are parsed so
	// self-references (a base list naming the record itself) resolve.
	id, merged := s.resolveLocal(name)
	if !merged || s.tree.Decl(id).Kind != kind || isSpec {
		id = s.tree.Add(ast.Decl{Kind: kind, Name: name, TemplateArgs: targs, IsForward: true})
		if !isSpec {
			s.declare(name, id)
		}
	}

	var bases []ast.BaseSpec
	if s.accept(":") {
		bases = s.parseBaseClause()
	}

	s.expect("{")
	s.pushScope(id)
	members := s.parseMembers(name, defaultAccess)
	s.popScope()
	s.expect("}")

	d := s.tree.Decl(id)
	d.Bases = bases
	d.Members = members
	d.IsForward = false
	return id
}

func (s *state) parseBaseClause() []ast.BaseSpec {
	var bases []ast.BaseSpec
	for {
		base := ast.BaseSpec{Access: ast.AccessPublic}
		for {
			switch {
			case s.accept("virtual"):
				base.IsVirtual = true
				continue
			case s.accept("public"):
				base.Access = ast.AccessPublic
				continue
			case s.accept("protected"):
				base.Access = ast.AccessProtected
				continue
			case s.accept("private"):
				base.Access = ast.AccessPrivate
				continue
			}
			break
		}
		base.Type = s.parseType()
		bases = append(bases, base)
		if s.accept(",") {
			continue
		}
		return bases
	}
}

type memberFlags struct {
	isVirtual  bool
	isStatic   bool
	isExplicit bool
}

func (s *state) parseMembers(recordName string, access ast.AccessSpec) []ast.DeclID {
	var members []ast.DeclID
	for !s.atText("}") && !s.at(tokEOF) {
		switch {
		case s.accept(";"):
		case s.atAccessLabel():
			access = s.takeAccessLabel()
		case s.atText("struct") || s.atText("class"):
			id := s.parseRecord(false)
			s.expect(";")
			members = append(members, id)
		case s.atText("friend"):
			s.warnf("line %d: friend declarations are not modeled, skipped", s.cur().line)
			s.skipDeclarationTail()
		case s.atText("~"):
			s.warnf("line %d: destructors are not modeled, skipped", s.cur().line)
			s.skipDeclarationTail()
		default:
			members = append(members, s.parseMember(recordName, access)...)
		}
	}
	return members
}

func (s *state) atAccessLabel() bool {
	t := s.cur().text
	return (t == "public" || t == "protected" || t == "private") && s.peek().text == ":"
}

func (s *state) takeAccessLabel() ast.AccessSpec {
	t := s.takeIdent()
	s.expect(":")
	switch t {
	case "protected":
		return ast.AccessProtected
	case "private":
		return ast.AccessPrivate
	default:
		return ast.AccessPublic
	}
}

func (s *state) parseMember(recordName string, access ast.AccessSpec) []ast.DeclID {
	var flags memberFlags
	for {
		switch {
		case s.accept("virtual"):
			flags.isVirtual = true
			continue
		case s.accept("static"):
			flags.isStatic = true
			continue
		case s.accept("explicit"):
			flags.isExplicit = true
			continue
		case s.accept("inline"):
			continue
		}
		break
	}

	// Conversion operator: no return type.
	if s.atText("operator") {
		name, target := s.parseOperatorName()
		sig := s.parseSignature()
		return []ast.DeclID{s.tree.Add(ast.Decl{
			Kind:         ast.DeclConversion,
			Name:         name,
			Access:       access,
			Type:         target,
			Return:       target,
			Params:       sig.params,
			ParamNames:   sig.paramNames,
			Variadic:     sig.variadic,
			Except:       sig.except,
			IsDefinition: sig.hasBody,
			IsConst:      sig.isConst,
			IsVirtual:    flags.isVirtual,
			IsExplicit:   flags.isExplicit,
			IsPure:       sig.isPure,
			IsDeleted:    sig.isDeleted,
			IsDefaulted:  sig.isDefaulted,
			RefQual:      sig.refQual,
		})}
	}

	// Constructor: the declarator is the record name itself.
	if s.atText(recordName) && s.peek().text == "(" {
		name := s.takeIdent()
		sig := s.parseSignature()
		return []ast.DeclID{s.tree.Add(ast.Decl{
			Kind:         ast.DeclConstructor,
			Name:         name,
			Access:       access,
			Params:       sig.params,
			ParamNames:   sig.paramNames,
			Variadic:     sig.variadic,
			Except:       sig.except,
			IsDefinition: sig.hasBody,
			IsExplicit:   flags.isExplicit,
			IsDeleted:    sig.isDeleted,
			IsDefaulted:  sig.isDefaulted,
			RefQual:      sig.refQual,
		})}
	}

	ty := s.parseType()

	var name string
	if s.atText("operator") {
		opName, target := s.parseOperatorName()
		if target != nil {
			s.fail("unexpected conversion operator after return type")
		}
		name = opName
	} else {
		name = s.takeIdent()
	}

	if s.atText("(") {
		sig := s.parseSignature()
		return []ast.DeclID{s.tree.Add(ast.Decl{
			Kind:         ast.DeclMethod,
			Name:         name,
			Access:       access,
			Return:       ty,
			Params:       sig.params,
			ParamNames:   sig.paramNames,
			Variadic:     sig.variadic,
			Except:       sig.except,
			IsDefinition: sig.hasBody,
			IsConst:      sig.isConst,
			IsStatic:     flags.isStatic,
			IsVirtual:    flags.isVirtual,
			IsPure:       sig.isPure,
			IsDeleted:    sig.isDeleted,
			IsDefaulted:  sig.isDefaulted,
			RefQual:      sig.refQual,
		})}
	}

	// Field, possibly a comma-separated declarator list sharing one type.
	// Per-declarator pointer suffixes are outside the subset.
	ids := []ast.DeclID{s.tree.Add(ast.Decl{Kind: ast.DeclField, Name: name, Access: access, Type: ty})}
	for s.accept(",") {
		extra := s.takeIdent()
		ids = append(ids, s.tree.Add(ast.Decl{Kind: ast.DeclField, Name: extra, Access: access, Type: ty}))
	}
	s.expect(";")
	return ids
}
