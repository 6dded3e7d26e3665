// Package parser is the front-end: it builds a declaration tree from the
// C++ declaration subset the equivalence engine understands. Function
// bodies are skipped, not parsed; constructs outside the subset are skipped
// with a warning where that is safe and rejected where it is not.
package parser

import (
	"fmt"
	"log"

	"github.com/decleq/decleq/internal/ast"
)

// Parser builds a declaration tree from one translation unit.
type Parser interface {
	Parse(filename string, src []byte) (*ast.Tree, error)
}

type parserImpl struct{}

// New returns the default parser.
func New() Parser {
	return &parserImpl{}
}

type syntaxError struct {
	msg string
}

func (p *parserImpl) Parse(filename string, src []byte) (tree *ast.Tree, err error) {
	toks, err := lex(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	s := &state{
		file:     filename,
		toks:     toks,
		tree:     ast.NewTree(filename),
		children: make(map[ast.DeclID]map[string]ast.DeclID),
	}
	s.pushScope(ast.NoDecl)

	defer func() {
		if r := recover(); r != nil {
			se, ok := r.(syntaxError)
			if !ok {
				panic(r)
			}
			tree = nil
			err = fmt.Errorf("%s: %s", filename, se.msg)
		}
	}()

	var topLevel []ast.DeclID
	for !s.at(tokEOF) {
		s.parseDeclaration(&topLevel)
	}
	return s.tree, nil
}

type scope struct {
	owner ast.DeclID
	names map[string]ast.DeclID
}

type state struct {
	file   string
	toks   []token
	pos    int
	tree   *ast.Tree
	scopes []*scope

	// children indexes the named members of records, namespaces and
	// template patterns for qualified-name resolution after their scope
	// has closed.
	children map[ast.DeclID]map[string]ast.DeclID
}

// token plumbing

func (s *state) cur() token { return s.toks[s.pos] }

func (s *state) peek() token {
	if s.pos+1 < len(s.toks) {
		return s.toks[s.pos+1]
	}
	return s.toks[len(s.toks)-1]
}

func (s *state) at(kind tokenKind) bool { return s.cur().kind == kind }

func (s *state) atText(text string) bool { return s.cur().kind != tokEOF && s.cur().text == text }

func (s *state) accept(text string) bool {
	if s.atText(text) {
		s.pos++
		return true
	}
	return false
}

func (s *state) expect(text string) {
	if !s.accept(text) {
		s.fail("expected %q, found %q", text, s.cur().text)
	}
}

func (s *state) takeIdent() string {
	if !s.at(tokIdent) {
		s.fail("expected identifier, found %q", s.cur().text)
	}
	t := s.cur().text
	s.pos++
	return t
}

func (s *state) fail(format string, args ...any) {
	panic(syntaxError{msg: fmt.Sprintf("line %d: %s", s.cur().line, fmt.Sprintf(format, args...))})
}

func (s *state) warnf(format string, args ...any) {
	log.Printf("decleq: warning: %s: %s", s.file, fmt.Sprintf(format, args...))
}

// scopes and name resolution

func (s *state) pushScope(owner ast.DeclID) {
	s.scopes = append(s.scopes, &scope{owner: owner, names: make(map[string]ast.DeclID)})
}

func (s *state) popScope() {
	s.scopes = s.scopes[:len(s.scopes)-1]
}

func (s *state) declare(name string, id ast.DeclID) {
	top := s.scopes[len(s.scopes)-1]
	top.names[name] = id
	if top.owner != ast.NoDecl {
		kids := s.children[top.owner]
		if kids == nil {
			kids = make(map[string]ast.DeclID)
			s.children[top.owner] = kids
		}
		kids[name] = id
	}
}

func (s *state) resolveLocal(name string) (ast.DeclID, bool) {
	id, ok := s.scopes[len(s.scopes)-1].names[name]
	return id, ok
}

func (s *state) resolve(name string) (ast.DeclID, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if id, ok := s.scopes[i].names[name]; ok {
			return id, true
		}
	}
	return ast.NoDecl, false
}

func (s *state) resolveQualified(parts []string) (ast.DeclID, bool) {
	id, ok := s.resolve(parts[0])
	if !ok {
		return ast.NoDecl, false
	}
	for _, part := range parts[1:] {
		next, ok := s.children[id][part]
		if !ok && s.tree.Decl(id).Kind == ast.DeclClassTemplate {
			next, ok = s.children[s.tree.Decl(id).Pattern][part]
		}
		if !ok {
			return ast.NoDecl, false
		}
		id = next
	}
	return id, true
}

// declarations

func (s *state) parseDeclaration(members *[]ast.DeclID) {
	switch {
	case s.accept(";"):
	case s.atText("namespace"):
		s.parseNamespace(members)
	case s.atText("template"):
		s.parseTemplate(members)
	case s.atText("struct") || s.atText("class"):
		id := s.parseRecord(false)
		s.expect(";")
		*members = append(*members, id)
	case s.atText("using") || s.atText("typedef"):
		s.warnf("line %d: %s declarations are not modeled, skipped", s.cur().line, s.cur().text)
		s.skipPast(";")
	default:
		s.parseFunctionOrVariable(members)
	}
}

func (s *state) parseNamespace(members *[]ast.DeclID) {
	s.expect("namespace")
	name := s.takeIdent()

	id, ok := s.resolveLocal(name)
	if !ok || s.tree.Decl(id).Kind != ast.DeclNamespace {
		id = s.tree.Add(ast.Decl{Kind: ast.DeclNamespace, Name: name})
		s.declare(name, id)
		*members = append(*members, id)
	}

	s.expect("{")
	s.pushScope(id)
	var inner []ast.DeclID
	for !s.atText("}") && !s.at(tokEOF) {
		s.parseDeclaration(&inner)
	}
	s.popScope()
	s.expect("}")

	d := s.tree.Decl(id)
	d.Members = append(d.Members, inner...)
}

func (s *state) parseTemplate(members *[]ast.DeclID) {
	s.expect("template")
	s.expect("<")

	if s.accept(">") {
		// Explicit specialization.
		if !s.atText("struct") && !s.atText("class") {
			s.warnf("line %d: only class template specializations are modeled, skipped", s.cur().line)
			s.skipDeclarationTail()
			return
		}
		id := s.parseRecord(true)
		s.expect(";")
		*members = append(*members, id)
		return
	}

	var params []string
	for {
		if !s.accept("class") && !s.accept("typename") {
			s.fail("expected template parameter, found %q", s.cur().text)
		}
		params = append(params, s.takeIdent())
		if s.accept(",") {
			continue
		}
		break
	}
	s.expect(">")

	if !s.atText("struct") && !s.atText("class") {
		s.warnf("line %d: only class templates are modeled, skipped", s.cur().line)
		s.skipDeclarationTail()
		return
	}

	// The template name is visible inside its own pattern, so the shell
	// declaration goes in first.
	name := s.peek().text
	tmplID := s.tree.Add(ast.Decl{Kind: ast.DeclClassTemplate, Name: name})
	s.declare(name, tmplID)

	s.pushScope(tmplID)
	for _, p := range params {
		paramID := s.tree.Add(ast.Decl{Kind: ast.DeclRecord, Name: p, IsForward: true})
		s.declare(p, paramID)
	}
	patternID := s.parseRecord(false)
	s.popScope()
	s.expect(";")

	d := s.tree.Decl(tmplID)
	d.TemplateParams = params
	d.Pattern = patternID
	*members = append(*members, tmplID)
}

func (s *state) parseFunctionOrVariable(members *[]ast.DeclID) {
	retType := s.parseType()
	parts, convTarget := s.parseDeclaratorName()

	if s.atText("(") {
		s.parseTopLevelFunction(retType, parts, convTarget, members)
		return
	}

	if len(parts) != 1 || convTarget != nil {
		s.fail("unsupported declarator %q", joinParts(parts))
	}
	for {
		id := s.tree.Add(ast.Decl{Kind: ast.DeclVariable, Name: parts[0], Type: retType})
		*members = append(*members, id)
		if s.accept(",") {
			parts = []string{s.takeIdent()}
			continue
		}
		break
	}
	s.expect(";")
}

// parseDeclaratorName reads a possibly qualified declarator name. For
// conversion operators the target type is returned as well and the last
// name part is the rendered "operator <type>" form.
func (s *state) parseDeclaratorName() (parts []string, convTarget *ast.Type) {
	for {
		if s.atText("operator") {
			name, target := s.parseOperatorName()
			return append(parts, name), target
		}
		parts = append(parts, s.takeIdent())
		if s.accept("::") {
			continue
		}
		return parts, nil
	}
}

// parseOperatorName handles both overloaded operators (operator+) and
// conversion operators (operator bool).
func (s *state) parseOperatorName() (string, *ast.Type) {
	s.expect("operator")
	if s.at(tokIdent) {
		target := s.parseType()
		return "operator " + target.String(), target
	}
	name := "operator"
	for s.at(tokPunct) && !s.atText("(") {
		name += s.cur().text
		s.pos++
	}
	if name == "operator" {
		s.fail("expected operator symbol, found %q", s.cur().text)
	}
	return name, nil
}

func (s *state) parseTopLevelFunction(retType *ast.Type, parts []string, convTarget *ast.Type, members *[]ast.DeclID) {
	sig := s.parseSignature()
	name := parts[len(parts)-1]

	if len(parts) == 1 {
		id := s.tree.Add(ast.Decl{
			Kind:         ast.DeclFunction,
			Name:         name,
			Return:       retType,
			Params:       sig.params,
			ParamNames:   sig.paramNames,
			Variadic:     sig.variadic,
			Except:       sig.except,
			IsDefinition: sig.hasBody,
		})
		*members = append(*members, id)
		return
	}

	// Out-of-line member definition: the in-class declaration supplies the
	// attributes the definition cannot spell (virtual, static, access,
	// explicit), the definition supplies the signature it carries.
	ownerID, ok := s.resolveQualified(parts[:len(parts)-1])
	if !ok {
		s.fail("unknown scope %q in out-of-line definition", joinParts(parts[:len(parts)-1]))
	}
	memberID, ok := s.findMember(ownerID, name)
	if !ok {
		s.fail("out-of-line definition of %q has no matching member in %q",
			name, joinParts(parts[:len(parts)-1]))
	}

	in := *s.tree.Decl(memberID)
	d := ast.Decl{
		Kind:         in.Kind,
		Name:         name,
		Access:       in.Access,
		Type:         in.Type,
		Return:       retType,
		Params:       sig.params,
		ParamNames:   sig.paramNames,
		Variadic:     sig.variadic,
		Except:       sig.except,
		IsDefinition: sig.hasBody,
		IsConst:      sig.isConst,
		RefQual:      sig.refQual,
		IsStatic:     in.IsStatic,
		IsVirtual:    in.IsVirtual,
		IsPure:       in.IsPure,
		IsExplicit:   in.IsExplicit,
	}
	if in.Kind == ast.DeclConstructor || in.Kind == ast.DeclConversion {
		d.Return = in.Return
	}
	if convTarget != nil {
		d.Type = convTarget
	}
	id := s.tree.Add(d)
	*members = append(*members, id)
}

func (s *state) findMember(ownerID ast.DeclID, name string) (ast.DeclID, bool) {
	owner := s.tree.Decl(ownerID)
	if owner.Kind == ast.DeclClassTemplate {
		owner = s.tree.Decl(owner.Pattern)
	}
	for _, m := range owner.Members {
		md := s.tree.Decl(m)
		if md.IsFunctionLike() && md.Name == name {
			return m, true
		}
	}
	return ast.NoDecl, false
}

// skipping helpers

func (s *state) skipPast(text string) {
	for !s.at(tokEOF) && !s.accept(text) {
		s.pos++
	}
}

// skipDeclarationTail consumes tokens up to and including either a
// terminating semicolon or a balanced top-level brace block.
func (s *state) skipDeclarationTail() {
	for !s.at(tokEOF) {
		if s.accept(";") {
			return
		}
		if s.atText("{") {
			s.skipBalanced("{", "}")
			s.accept(";")
			return
		}
		s.pos++
	}
}

func (s *state) skipBalanced(open, close string) {
	s.expect(open)
	depth := 1
	for depth > 0 && !s.at(tokEOF) {
		switch s.cur().text {
		case open:
			depth++
		case close:
			depth--
		}
		s.pos++
	}
}

func joinParts(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "::"
		}
		out += p
	}
	return out
}
