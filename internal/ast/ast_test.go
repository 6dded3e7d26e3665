package ast

import "testing"

func TestTree_AddAndDecl(t *testing.T) {
	tree := NewTree("unit.cc")
	if tree.Len() != 0 {
		t.Fatalf("new tree should be empty")
	}

	id := tree.Add(Decl{Kind: DeclRecord, Name: "foo"})
	if tree.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tree.Len())
	}
	if got := tree.Decl(id); got.Name != "foo" || got.Kind != DeclRecord {
		t.Fatalf("Decl(%d) = %+v", id, got)
	}
	if tree.Name() != "unit.cc" {
		t.Fatalf("Name() = %q", tree.Name())
	}
}

func TestTree_DeclPanicsOnDanglingID(t *testing.T) {
	tree := NewTree("unit.cc")
	tree.Add(Decl{Kind: DeclRecord, Name: "foo"})

	defer func() {
		if recover() == nil {
			t.Fatalf("dangling id should panic")
		}
	}()
	tree.Decl(DeclID(5))
}

func TestQualify_MergesFlags(t *testing.T) {
	base := NewBuiltin(BuiltinInt, SignUnspecified)

	q := Qualify(base, true, false)
	if q.Kind != TypeQualified || !q.Const || q.Volatile {
		t.Fatalf("Qualify const: %+v", q)
	}

	// Qualifying again merges instead of stacking wrappers.
	qq := Qualify(q, false, true)
	if qq.Kind != TypeQualified || !qq.Const || !qq.Volatile {
		t.Fatalf("merged qualify: %+v", qq)
	}
	if qq.Inner.Kind != TypeBuiltin {
		t.Fatalf("qualifier wrappers stacked")
	}

	if Qualify(base, false, false) != base {
		t.Fatalf("no-op qualify should return the input")
	}
}

func TestUnqualified(t *testing.T) {
	base := NewBuiltin(BuiltinChar, SignSigned)
	if Unqualified(Qualify(base, true, true)) != base {
		t.Fatalf("Unqualified should strip the wrapper")
	}
	if Unqualified(base) != base {
		t.Fatalf("Unqualified on bare type should be identity")
	}
	if Unqualified(nil) != nil {
		t.Fatalf("Unqualified(nil) should be nil")
	}
}

func TestType_String(t *testing.T) {
	cases := []struct {
		t    *Type
		want string
	}{
		{NewBuiltin(BuiltinInt, SignUnspecified), "int"},
		{NewBuiltin(BuiltinChar, SignUnsigned), "unsigned char"},
		{NewBuiltin(BuiltinLongLong, SignSigned), "signed long long"},
		{PointerTo(Qualify(NewBuiltin(BuiltinChar, SignUnspecified), true, false)), "const char *"},
		{LValueRefTo(NewBuiltin(BuiltinInt, SignUnspecified)), "int &"},
		{RValueRefTo(NewBuiltin(BuiltinInt, SignUnspecified)), "int &&"},
		{NewNamed("NS::Widget", 3), "NS::Widget"},
	}
	for _, tc := range cases {
		if got := tc.t.String(); got != tc.want {
			t.Fatalf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestParseDeclKind(t *testing.T) {
	for _, k := range []DeclKind{
		DeclVariable, DeclField, DeclFunction, DeclMethod, DeclConstructor,
		DeclConversion, DeclRecord, DeclTemplateSpec, DeclClassTemplate, DeclNamespace,
	} {
		got, err := ParseDeclKind(k.String())
		if err != nil {
			t.Fatalf("ParseDeclKind(%q): %v", k, err)
		}
		if got != k {
			t.Fatalf("ParseDeclKind(%q) = %v", k, got)
		}
	}
	if _, err := ParseDeclKind("gadget"); err == nil {
		t.Fatalf("unknown kind should error")
	}
}

func TestDecl_IsFunctionLike(t *testing.T) {
	fn := Decl{Kind: DeclMethod}
	if !fn.IsFunctionLike() {
		t.Fatalf("method should be function-like")
	}
	rec := Decl{Kind: DeclRecord}
	if rec.IsFunctionLike() {
		t.Fatalf("record should not be function-like")
	}
}
