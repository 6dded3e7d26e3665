package equiv

import (
	"testing"

	"github.com/decleq/decleq/internal/ast"
	"github.com/decleq/decleq/internal/matcher"
)

func makeRecords(t *testing.T, src0, src1 string) sides {
	t.Helper()
	return makeNamedDecls(t, src0, src1, ast.DeclRecord, "foo")
}

func TestRecords_Match(t *testing.T) {
	s := makeRecords(t,
		"struct foo { int x; char y; };",
		"struct foo { int x; char y; };")
	expectMatch(t, s, true)
}

func TestRecords_NameMismatch(t *testing.T) {
	s := makeDecls(t,
		"struct foo { int x; };",
		"struct bar { int x; };",
		matcher.Query{Kind: ast.DeclRecord, Name: "foo"},
		matcher.Query{Kind: ast.DeclRecord, Name: "bar"})
	expectMatch(t, s, false)
}

func TestRecords_FieldCount(t *testing.T) {
	s := makeRecords(t,
		"struct foo { int x; };",
		"struct foo { int x; int y; };")
	expectMatch(t, s, false)
}

func TestRecords_FieldType(t *testing.T) {
	s := makeRecords(t,
		"struct foo { int x; };",
		"struct foo { char x; };")
	expectMatch(t, s, false)
}

func TestRecords_FieldName(t *testing.T) {
	s := makeRecords(t,
		"struct foo { int x; };",
		"struct foo { int y; };")
	expectMatch(t, s, false)
}

// Reordered members are caught by comparing field names positionally.
func TestRecords_FieldOrder(t *testing.T) {
	s := makeRecords(t,
		"struct foo { int x; int y; };",
		"struct foo { int y; int x; };")
	expectMatch(t, s, false)
}

func TestRecords_CommaDeclarators(t *testing.T) {
	s := makeRecords(t,
		"struct foo { int x, y; };",
		"struct foo { int x; int y; };")
	expectMatch(t, s, true)
}

func TestRecords_CharSignInField(t *testing.T) {
	s := makeRecords(t,
		"struct foo { char c; };",
		"struct foo { signed char c; };")
	expectMatch(t, s, false)

	if !verdict(t, s, Policy{CollapseCharSign: true}) {
		t.Fatalf("collapse policy should equate char fields")
	}
}

// A forward declaration is compatible with any definition of the same name.
func TestRecords_ForwardVsDefinition(t *testing.T) {
	s := makeRecords(t, "struct foo;", "struct foo { int x; };")
	expectMatch(t, s, true)

	s = makeRecords(t, "struct foo;", "struct foo;")
	expectMatch(t, s, true)
}

// Methods do not participate in record identity; only fields and bases do.
func TestRecords_MethodsIgnored(t *testing.T) {
	s := makeRecords(t,
		"struct foo { int x; void f(); };",
		"struct foo { int x; void g() const; };")
	expectMatch(t, s, true)
}

func TestRecords_Bases(t *testing.T) {
	s := makeRecords(t,
		"struct A { int a; }; struct foo : A { int x; };",
		"struct A { int a; }; struct foo : A { int x; };")
	expectMatch(t, s, true)

	s = makeRecords(t,
		"struct A { int a; }; struct foo : A { int x; };",
		"struct B { int a; }; struct foo : B { int x; };")
	expectMatch(t, s, false)

	s = makeRecords(t,
		"struct A { int a; }; struct foo : A { int x; };",
		"struct A { int a; }; struct foo { int x; };")
	expectMatch(t, s, false)
}

func TestRecords_VirtualBase(t *testing.T) {
	s := makeRecords(t,
		"struct A { int a; }; struct foo : virtual A { };",
		"struct A { int a; }; struct foo : A { };")
	expectMatch(t, s, false)

	s = makeRecords(t,
		"struct A { int a; }; struct foo : virtual A { };",
		"struct A { int a; }; struct foo : virtual A { };")
	expectMatch(t, s, true)
}

// A base whose definition differs makes the derived record differ too.
func TestRecords_BaseDefinitionDiffers(t *testing.T) {
	s := makeRecords(t,
		"struct A { int a; }; struct foo : A { };",
		"struct A { char a; }; struct foo : A { };")
	expectMatch(t, s, false)
}

func TestRecords_MutualRecursion(t *testing.T) {
	src := "struct B; struct A { B *b; }; struct B { A *a; };"
	s := makeNamedDecls(t, src, src, ast.DeclRecord, "A")
	expectMatch(t, s, true)

	s = makeDecls(t,
		src,
		"struct B; struct A { B *b; }; struct B { A *a; int extra; };",
		matcher.Query{Kind: ast.DeclRecord, Name: "A", DefinitionOnly: true},
		matcher.Query{Kind: ast.DeclRecord, Name: "A", DefinitionOnly: true})
	expectMatch(t, s, false)
}

// The classic self-referential CRTP hierarchy must terminate and match.
func TestRecords_RecursiveHierarchy(t *testing.T) {
	src := `
template <class T> struct Base { int a; };
struct Derived : Base<Derived> { Derived *next; };
`
	s := makeDecls(t, src, src,
		matcher.Query{Kind: ast.DeclRecord, Name: "Derived", DefinitionOnly: true},
		matcher.Query{Kind: ast.DeclRecord, Name: "Derived", DefinitionOnly: true})
	expectMatch(t, s, true)
}

// Two distinct records referenced from the same signature stay distinct
// even after one pair of them was assumed equivalent mid-walk.
func TestRecords_SameNameUsedTwice(t *testing.T) {
	s := makeFunctions(t,
		"struct A { int x; }; struct B { int x; }; void foo(A a, A b);",
		"struct A { int x; }; struct B { int x; }; void foo(A a, B b);")
	expectMatch(t, s, false)
}

func TestTemplateSpecs_Args(t *testing.T) {
	cases := []struct {
		arg0, arg1 string
		want       bool
	}{
		{"int", "int", true},
		{"int", "signed int", true},
		{"char", "signed char", false},
		{"int", "char", false},
	}
	for _, tc := range cases {
		src0 := "template <class T> struct foo; template <> struct foo<" + tc.arg0 + "> { };"
		src1 := "template <class T> struct foo; template <> struct foo<" + tc.arg1 + "> { };"
		s := makeNamedDecls(t, src0, src1, ast.DeclTemplateSpec, "foo")
		if got := verdict(t, s, Policy{}); got != tc.want {
			t.Fatalf("foo<%s> vs foo<%s> = %v, want %v", tc.arg0, tc.arg1, got, tc.want)
		}
	}
}

func TestClassTemplates_Pattern(t *testing.T) {
	s := makeNamedDecls(t,
		"template <class T> struct foo { T t; int x; };",
		"template <class T> struct foo { T t; int x; };",
		ast.DeclClassTemplate, "foo")
	expectMatch(t, s, true)

	s = makeNamedDecls(t,
		"template <class T> struct foo { T t; int x; };",
		"template <class T> struct foo { T t; char x; };",
		ast.DeclClassTemplate, "foo")
	expectMatch(t, s, false)
}

func TestClassTemplates_ParamCount(t *testing.T) {
	s := makeNamedDecls(t,
		"template <class T> struct foo { T t; };",
		"template <class T, class U> struct foo { T t; };",
		ast.DeclClassTemplate, "foo")
	expectMatch(t, s, false)
}

func TestNamespaces_UnorderedDefault(t *testing.T) {
	s := makeNamedDecls(t,
		"namespace NS { struct A { int x; }; struct B { char y; }; }",
		"namespace NS { struct B { char y; }; struct A { int x; }; }",
		ast.DeclNamespace, "NS")
	expectMatch(t, s, true)

	if verdict(t, s, Policy{OrderedNamespaces: true}) {
		t.Fatalf("ordered policy should reject reordered members")
	}
}

func TestNamespaces_MemberMismatch(t *testing.T) {
	s := makeNamedDecls(t,
		"namespace NS { struct A { int x; }; }",
		"namespace NS { struct A { char x; }; }",
		ast.DeclNamespace, "NS")
	expectMatch(t, s, false)

	s = makeNamedDecls(t,
		"namespace NS { struct A { int x; }; }",
		"namespace NS { struct A { int x; }; struct B { }; }",
		ast.DeclNamespace, "NS")
	expectMatch(t, s, false)
}

func TestNamespaces_Reopened(t *testing.T) {
	s := makeNamedDecls(t,
		"namespace NS { struct A { int x; }; } namespace NS { struct B { char y; }; }",
		"namespace NS { struct A { int x; }; struct B { char y; }; }",
		ast.DeclNamespace, "NS")
	expectMatch(t, s, true)
}
