package move

// Inspect traverses the tree rooted at node in depth-first pre-order. If f
// returns false, the children of that node are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}

	for _, child := range children(node) {
		Inspect(child, f)
	}
}

func children(node Node) []Node {
	var out []Node

	add := func(nodes ...Node) {
		for _, n := range nodes {
			if n != nil {
				out = append(out, n)
			}
		}
	}

	switch n := node.(type) {
	case *File:
		for _, mod := range n.Modules {
			add(mod)
		}
	case *Module:
		add(n.Members...)
	case *Function:
		if n.Body != nil {
			add(n.Body)
		}
	case *Const:
		add(n.Value)
	case *Block:
		for _, s := range n.Stmts {
			add(s)
		}

		add(n.Result)
	case *LetStmt:
		add(n.Value)
	case *ExprStmt:
		add(n.X)
	case *BinaryExpr:
		add(n.X, n.Y)
	case *UnaryExpr:
		add(n.X)
	case *CallExpr:
		add(n.Fun)
		add(exprNodes(n.Args)...)
	case *FieldExpr:
		add(n.X)
	case *IndexExpr:
		add(n.X, n.Index)
	case *ParenExpr:
		add(n.X)
	case *CastExpr:
		add(n.X)
	case *TupleExpr:
		add(exprNodes(n.Elems)...)
	case *VectorLit:
		add(exprNodes(n.Elems)...)
	case *StructLit:
		for _, f := range n.Fields {
			add(f.Value)
		}
	case *IfExpr:
		add(n.Cond, n.Then, n.Else)
	case *WhileExpr:
		add(n.Cond, n.Body)
	case *LoopExpr:
		add(n.Body)
	case *ReturnExpr:
		add(n.X)
	case *AbortExpr:
		add(n.X)
	case *AssignExpr:
		add(n.Lhs, n.Rhs)
	case *LambdaExpr:
		add(n.Body)
	}

	return out
}

func exprNodes(exprs []Expr) []Node {
	nodes := make([]Node, 0, len(exprs))
	for _, e := range exprs {
		nodes = append(nodes, e)
	}

	return nodes
}
