package ast

import "fmt"

// DumpNode is a serialisable view of a tree node.
type DumpNode struct {
	Kind     string              `json:"kind" yaml:"kind"`
	Token    string              `json:"token,omitempty" yaml:"token,omitempty"`
	Value    any                 `json:"value,omitempty" yaml:"value,omitempty"`
	Children map[string]DumpNode `json:"children,omitempty" yaml:"children,omitempty"`
	List     []DumpNode          `json:"list,omitempty" yaml:"list,omitempty"`
}

// Dump converts node into a DumpNode tree. Returns nil for a nil node.
func Dump(node Node) *DumpNode {
	if isNil(node) {
		return nil
	}
	d := dump(node)
	return &d
}

func dump(node Node) DumpNode {
	switch n := node.(type) {
	case *Program:
		return DumpNode{Kind: "Program", List: dumpStatements(n.Statements)}
	case *LetStatement:
		return DumpNode{
			Kind:     "LetStatement",
			Token:    n.TokenLiteral(),
			Children: children("name", n.Name, "value", n.Value),
		}
	case *ReturnStatement:
		return DumpNode{
			Kind:     "ReturnStatement",
			Token:    n.TokenLiteral(),
			Children: children("value", n.ReturnValue),
		}
	case *ExpressionStatement:
		return DumpNode{
			Kind:     "ExpressionStatement",
			Token:    n.TokenLiteral(),
			Children: children("expression", n.Expression),
		}
	case *BlockStatement:
		return DumpNode{Kind: "BlockStatement", Token: n.TokenLiteral(), List: dumpStatements(n.Statements)}
	case *Identifier:
		return DumpNode{Kind: "Identifier", Token: n.TokenLiteral(), Value: n.Value}
	case *IntegerLiteral:
		return DumpNode{Kind: "IntegerLiteral", Token: n.TokenLiteral(), Value: n.Value}
	case *Boolean:
		return DumpNode{Kind: "Boolean", Token: n.TokenLiteral(), Value: n.Value}
	case *PrefixExpression:
		return DumpNode{
			Kind:     "PrefixExpression",
			Token:    n.TokenLiteral(),
			Value:    n.Operator,
			Children: children("right", n.Right),
		}
	case *InfixExpression:
		return DumpNode{
			Kind:     "InfixExpression",
			Token:    n.TokenLiteral(),
			Value:    n.Operator,
			Children: children("left", n.Left, "right", n.Right),
		}
	case *IfExpression:
		return DumpNode{
			Kind:     "IfExpression",
			Token:    n.TokenLiteral(),
			Children: children("condition", n.Condition, "consequence", n.Consequence, "alternative", n.Alternative),
		}
	case *FunctionLiteral:
		params := make([]DumpNode, 0, len(n.Parameters))
		for _, p := range n.Parameters {
			params = append(params, dump(p))
		}
		return DumpNode{
			Kind:     "FunctionLiteral",
			Token:    n.TokenLiteral(),
			List:     params,
			Children: children("body", n.Body),
		}
	case *CallExpression:
		args := make([]DumpNode, 0, len(n.Arguments))
		for _, a := range n.Arguments {
			args = append(args, dump(a))
		}
		return DumpNode{
			Kind:     "CallExpression",
			Token:    n.TokenLiteral(),
			List:     args,
			Children: children("function", n.Function),
		}
	default:
		panic(fmt.Sprintf("ast: unexpected node type %T", node))
	}
}

func dumpStatements(stmts []Statement) []DumpNode {
	out := make([]DumpNode, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, dump(s))
	}
	return out
}

// children builds a named child map from alternating name/node pairs,
// skipping absent nodes.
func children(pairs ...any) map[string]DumpNode {
	out := make(map[string]DumpNode, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		node, _ := pairs[i+1].(Node)
		if isNil(node) {
			continue
		}
		out[pairs[i].(string)] = dump(node)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
