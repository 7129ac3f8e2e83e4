package ast

import (
	"strings"

	"github.com/DjordjeVuckovic/monkey-parser/internal/token"
)

// Node is implemented by every tree node. String renders the canonical source
// form of the node, independent of the original formatting.
type Node interface {
	TokenLiteral() string
	String() string
}

// Statement is sealed: only this package defines statement variants.
type Statement interface {
	Node
	statementNode()
}

// Expression is sealed: only this package defines expression variants.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of every parse.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// String concatenates the statements. An expression statement followed by
// another statement is terminated with `;` so the output parses back to the
// same statement list.
func (p *Program) String() string {
	var b strings.Builder
	for i, s := range p.Statements {
		b.WriteString(s.String())
		if _, ok := s.(*ExpressionStatement); ok && i < len(p.Statements)-1 {
			b.WriteString(";")
		}
	}
	return b.String()
}

type LetStatement struct {
	Token token.Token // the token.LET token
	Name  *Identifier
	Value Expression
}

func (ls *LetStatement) statementNode()       {}
func (ls *LetStatement) TokenLiteral() string { return ls.Token.Literal }

func (ls *LetStatement) String() string {
	var b strings.Builder
	b.WriteString(ls.TokenLiteral())
	b.WriteString(" ")
	b.WriteString(ls.Name.String())
	b.WriteString(" = ")
	if ls.Value != nil {
		b.WriteString(ls.Value.String())
	}
	b.WriteString(";")
	return b.String()
}

// ReturnStatement has a nil ReturnValue for a bare `return;`.
type ReturnStatement struct {
	Token       token.Token // the token.RETURN token
	ReturnValue Expression
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }

func (rs *ReturnStatement) String() string {
	if rs.ReturnValue == nil {
		return rs.TokenLiteral() + ";"
	}
	return rs.TokenLiteral() + " " + rs.ReturnValue.String() + ";"
}

type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }

func (es *ExpressionStatement) String() string {
	if es.Expression == nil {
		return ""
	}
	return es.Expression.String()
}

type BlockStatement struct {
	Token      token.Token // the token.LBRACE token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }

// String renders `{ stmt; stmt; }`. Expression statements get an explicit
// terminator so the block stays parseable.
func (bs *BlockStatement) String() string {
	var b strings.Builder
	b.WriteString("{")
	for _, s := range bs.Statements {
		b.WriteString(" ")
		b.WriteString(s.String())
		if _, ok := s.(*ExpressionStatement); ok {
			b.WriteString(";")
		}
	}
	b.WriteString(" }")
	return b.String()
}

type Identifier struct {
	Token token.Token // the token.IDENT token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) String() string       { return il.Token.Literal }

type Boolean struct {
	Token token.Token
	Value bool
}

func (b *Boolean) expressionNode()      {}
func (b *Boolean) TokenLiteral() string { return b.Token.Literal }
func (b *Boolean) String() string       { return b.Token.Literal }

type PrefixExpression struct {
	Token    token.Token // the prefix token, e.g. !
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }

func (pe *PrefixExpression) String() string {
	return "(" + pe.Operator + pe.Right.String() + ")"
}

type InfixExpression struct {
	Token    token.Token // the operator token, e.g. +
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }

func (ie *InfixExpression) String() string {
	return "(" + ie.Left.String() + " " + ie.Operator + " " + ie.Right.String() + ")"
}

type IfExpression struct {
	Token       token.Token // the 'if' token
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement // nil without an else branch
}

func (ie *IfExpression) expressionNode()      {}
func (ie *IfExpression) TokenLiteral() string { return ie.Token.Literal }

func (ie *IfExpression) String() string {
	var b strings.Builder
	b.WriteString("if ")
	b.WriteString(parenthesize(ie.Condition))
	b.WriteString(" ")
	b.WriteString(ie.Consequence.String())
	if ie.Alternative != nil {
		b.WriteString(" else ")
		b.WriteString(ie.Alternative.String())
	}
	return b.String()
}

type FunctionLiteral struct {
	Token      token.Token // the 'fn' token
	Parameters []*Identifier
	Body       *BlockStatement
}

func (fl *FunctionLiteral) expressionNode()      {}
func (fl *FunctionLiteral) TokenLiteral() string { return fl.Token.Literal }

func (fl *FunctionLiteral) String() string {
	params := make([]string, 0, len(fl.Parameters))
	for _, p := range fl.Parameters {
		params = append(params, p.String())
	}
	return fl.TokenLiteral() + "(" + strings.Join(params, ", ") + ") " + fl.Body.String()
}

type CallExpression struct {
	Token     token.Token // the '(' token
	Function  Expression  // Identifier or FunctionLiteral
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }

func (ce *CallExpression) String() string {
	args := make([]string, 0, len(ce.Arguments))
	for _, a := range ce.Arguments {
		args = append(args, a.String())
	}
	return ce.Function.String() + "(" + strings.Join(args, ", ") + ")"
}

// parenthesize wraps e unless its own rendering already starts with a paren.
func parenthesize(e Expression) string {
	switch e.(type) {
	case *PrefixExpression, *InfixExpression:
		return e.String()
	default:
		return "(" + e.String() + ")"
	}
}
