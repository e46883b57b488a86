package ast

// NodeKind is the variant tag of a node.
type NodeKind uint8

const (
	KindInvalid NodeKind = iota

	// structure
	KindFile
	KindImport

	// declarations
	KindFuncDecl
	KindVarDecl
	KindTypeDecl
	KindParam

	// statements
	KindBlock
	KindIfStmt
	KindForStmt
	KindReturnStmt
	KindAssignStmt
	KindExprStmt

	// expressions
	KindIdent
	KindLiteral
	KindCallExpr
	KindBinaryExpr
	KindUnaryExpr
	KindMemberExpr
	KindIndexExpr

	// types
	KindTypeRef

	kindCount
)

// Category groups kinds into the coarse syntactic buckets rules care about.
type Category uint8

const (
	CatOther Category = iota
	CatDecl
	CatStmt
	CatExpr
	CatType
)

var kindNames = [...]string{
	KindInvalid:    "invalid",
	KindFile:       "file",
	KindImport:     "import",
	KindFuncDecl:   "func_decl",
	KindVarDecl:    "var_decl",
	KindTypeDecl:   "type_decl",
	KindParam:      "param",
	KindBlock:      "block",
	KindIfStmt:     "if_stmt",
	KindForStmt:    "for_stmt",
	KindReturnStmt: "return_stmt",
	KindAssignStmt: "assign_stmt",
	KindExprStmt:   "expr_stmt",
	KindIdent:      "ident",
	KindLiteral:    "literal",
	KindCallExpr:   "call_expr",
	KindBinaryExpr: "binary_expr",
	KindUnaryExpr:  "unary_expr",
	KindMemberExpr: "member_expr",
	KindIndexExpr:  "index_expr",
	KindTypeRef:    "type_ref",
}

func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// KindFromString maps the wire name back to a kind; used by the front-end
// AST decoder. Returns KindInvalid for unknown names.
func KindFromString(s string) NodeKind {
	for k, name := range kindNames {
		if name == s && NodeKind(k) != KindInvalid {
			return NodeKind(k)
		}
	}
	return KindInvalid
}

func (k NodeKind) Category() Category {
	switch k {
	case KindFuncDecl, KindVarDecl, KindTypeDecl, KindParam:
		return CatDecl
	case KindBlock, KindIfStmt, KindForStmt, KindReturnStmt, KindAssignStmt, KindExprStmt:
		return CatStmt
	case KindIdent, KindLiteral, KindCallExpr, KindBinaryExpr, KindUnaryExpr, KindMemberExpr, KindIndexExpr:
		return CatExpr
	case KindTypeRef:
		return CatType
	default:
		return CatOther
	}
}

// IsDecl reports whether the kind introduces a name into the file's scope.
func (k NodeKind) IsDecl() bool {
	return k.Category() == CatDecl
}

// AllKinds lists every valid kind; the lint registry uses it for rules that
// subscribe to whole categories.
func AllKinds() []NodeKind {
	out := make([]NodeKind, 0, int(kindCount)-1)
	for k := KindFile; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
