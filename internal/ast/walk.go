package ast

import "fmt"

// Inspect traverses the tree depth-first in source order. If fn returns false
// the children of that node are skipped.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	for _, child := range childNodes(node) {
		Inspect(child, fn)
	}
}

// childNodes returns the direct children of node in source order. Absent
// optional children (bare return value, missing else branch) are omitted.
func childNodes(node Node) []Node {
	switch n := node.(type) {
	case *Program:
		return statements(n.Statements)
	case *LetStatement:
		return nonNil(n.Name, n.Value)
	case *ReturnStatement:
		return nonNil(n.ReturnValue)
	case *ExpressionStatement:
		return nonNil(n.Expression)
	case *BlockStatement:
		return statements(n.Statements)
	case *Identifier, *IntegerLiteral, *Boolean:
		return nil
	case *PrefixExpression:
		return nonNil(n.Right)
	case *InfixExpression:
		return nonNil(n.Left, n.Right)
	case *IfExpression:
		out := nonNil(n.Condition, n.Consequence)
		if n.Alternative != nil {
			out = append(out, n.Alternative)
		}
		return out
	case *FunctionLiteral:
		out := make([]Node, 0, len(n.Parameters)+1)
		for _, p := range n.Parameters {
			out = append(out, p)
		}
		if n.Body != nil {
			out = append(out, n.Body)
		}
		return out
	case *CallExpression:
		out := nonNil(n.Function)
		for _, a := range n.Arguments {
			out = append(out, a)
		}
		return out
	default:
		panic(fmt.Sprintf("ast: unexpected node type %T", node))
	}
}

func statements(stmts []Statement) []Node {
	out := make([]Node, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, s)
	}
	return out
}

// nonNil drops nil interfaces and typed nil pointers.
func nonNil(nodes ...Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if isNil(n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func isNil(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Identifier:
		return v == nil
	case *BlockStatement:
		return v == nil
	default:
		return false
	}
}
