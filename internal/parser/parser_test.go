package parser

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/DjordjeVuckovic/monkey-parser/internal/apperr"
	"github.com/DjordjeVuckovic/monkey-parser/internal/ast"
	"github.com/DjordjeVuckovic/monkey-parser/internal/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string, opts ...Option) (*ast.Program, *Parser) {
	t.Helper()
	p := New(lexer.New(input), opts...)
	return p.ParseProgram(), p
}

func parseValid(t *testing.T, input string) *ast.Program {
	t.Helper()
	program, p := parse(t, input)
	require.Empty(t, p.Errors(), "input %q", input)
	require.NotNil(t, program)
	return program
}

func singleExpression(t *testing.T, input string) ast.Expression {
	t.Helper()
	program := parseValid(t, input)
	require.Len(t, program.Statements, 1)
	stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
	require.True(t, ok, "expected *ast.ExpressionStatement, got %T", program.Statements[0])
	return stmt.Expression
}

func assertIdentifier(t *testing.T, exp ast.Expression, name string) {
	t.Helper()
	ident, ok := exp.(*ast.Identifier)
	require.True(t, ok, "expected *ast.Identifier, got %T", exp)
	assert.Equal(t, name, ident.Value)
	assert.Equal(t, name, ident.TokenLiteral())
}

func TestLetStatements(t *testing.T) {
	tests := []struct {
		input         string
		expectedName  string
		expectedValue string
	}{
		{"let x = 5;", "x", "5"},
		{"let y = true;", "y", "true"},
		{"let foobar = y;", "foobar", "y"},
		{"let z = 1 + 2", "z", "(1 + 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program := parseValid(t, tt.input)
			require.Len(t, program.Statements, 1)

			stmt, ok := program.Statements[0].(*ast.LetStatement)
			require.True(t, ok, "expected *ast.LetStatement, got %T", program.Statements[0])
			assert.Equal(t, "let", stmt.TokenLiteral())
			assertIdentifier(t, stmt.Name, tt.expectedName)
			assert.Equal(t, tt.expectedValue, stmt.Value.String())
		})
	}
}

func TestLetStatement_RoundTrip(t *testing.T) {
	program := parseValid(t, "let   myVar =\n\tanotherVar ;")

	assert.Equal(t, "let myVar = anotherVar;", program.String())
}

func TestReturnStatements(t *testing.T) {
	program := parseValid(t, `
return 5;
return 10;
return 993322;
`)

	require.Len(t, program.Statements, 3)
	for _, stmt := range program.Statements {
		ret, ok := stmt.(*ast.ReturnStatement)
		require.True(t, ok, "expected *ast.ReturnStatement, got %T", stmt)
		assert.Equal(t, "return", ret.TokenLiteral())
		assert.NotNil(t, ret.ReturnValue)
	}
	assert.Equal(t, "return 5;return 10;return 993322;", program.String())
}

func TestReturnStatement_Bare(t *testing.T) {
	program := parseValid(t, "return; return x")

	require.Len(t, program.Statements, 2)
	bare := program.Statements[0].(*ast.ReturnStatement)
	assert.Nil(t, bare.ReturnValue)
	withValue := program.Statements[1].(*ast.ReturnStatement)
	assertIdentifier(t, withValue.ReturnValue, "x")
}

func TestIdentifierExpression(t *testing.T) {
	assertIdentifier(t, singleExpression(t, "foobar;"), "foobar")
}

func TestIntegerLiteralExpression(t *testing.T) {
	exp := singleExpression(t, "5;")

	literal, ok := exp.(*ast.IntegerLiteral)
	require.True(t, ok, "expected *ast.IntegerLiteral, got %T", exp)
	assert.Equal(t, int64(5), literal.Value)
	assert.Equal(t, "5", literal.TokenLiteral())
}

func TestIntegerLiteral_Overflow(t *testing.T) {
	program, p := parse(t, "let x = 99999999999999999999;")

	assert.Empty(t, program.Statements)
	assert.Equal(t, []string{`could not parse "99999999999999999999" as integer`}, p.Errors())
}

func TestBooleanExpression(t *testing.T) {
	for input, expected := range map[string]bool{"true;": true, "false;": false} {
		exp := singleExpression(t, input)
		b, ok := exp.(*ast.Boolean)
		require.True(t, ok, "expected *ast.Boolean, got %T", exp)
		assert.Equal(t, expected, b.Value)
	}
}

func TestPrefixExpressions(t *testing.T) {
	tests := []struct {
		input    string
		operator string
		right    string
	}{
		{"!5;", "!", "5"},
		{"-15;", "-", "15"},
		{"!true;", "!", "true"},
		{"!false;", "!", "false"},
		{"-a", "-", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			exp := singleExpression(t, tt.input)
			prefix, ok := exp.(*ast.PrefixExpression)
			require.True(t, ok, "expected *ast.PrefixExpression, got %T", exp)
			assert.Equal(t, tt.operator, prefix.Operator)
			assert.Equal(t, tt.right, prefix.Right.String())
		})
	}
}

func TestInfixExpressions(t *testing.T) {
	tests := []struct {
		input    string
		left     string
		operator string
		right    string
	}{
		{"5 + 5;", "5", "+", "5"},
		{"5 - 5;", "5", "-", "5"},
		{"5 * 5;", "5", "*", "5"},
		{"5 / 5;", "5", "/", "5"},
		{"5 > 5;", "5", ">", "5"},
		{"5 < 5;", "5", "<", "5"},
		{"5 == 5;", "5", "==", "5"},
		{"5 != 5;", "5", "!=", "5"},
		{"true == true", "true", "==", "true"},
		{"true != false", "true", "!=", "false"},
		{"alice * bob", "alice", "*", "bob"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			exp := singleExpression(t, tt.input)
			infix, ok := exp.(*ast.InfixExpression)
			require.True(t, ok, "expected *ast.InfixExpression, got %T", exp)
			assert.Equal(t, tt.left, infix.Left.String())
			assert.Equal(t, tt.operator, infix.Operator)
			assert.Equal(t, tt.right, infix.Right.String())
		})
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a + b * c", "(a + (b * c))"},
		{"-a * b", "((-a) * b)"},
		{"!-a", "(!(-a))"},
		{"a + b + c", "((a + b) + c)"},
		{"a + b - c", "((a + b) - c)"},
		{"a * b * c", "((a * b) * c)"},
		{"a * b / c", "((a * b) / c)"},
		{"a + b / c", "(a + (b / c))"},
		{"a + b * c + d / e - f", "(((a + (b * c)) + (d / e)) - f)"},
		{"3 + 4; -5 * 5", "(3 + 4);((-5) * 5)"},
		{"5 > 4 == 3 < 4", "((5 > 4) == (3 < 4))"},
		{"5 < 4 != 3 > 4", "((5 < 4) != (3 > 4))"},
		{"3 + 4 * 5 == 3 * 1 + 4 * 5", "((3 + (4 * 5)) == ((3 * 1) + (4 * 5)))"},
		{"true", "true"},
		{"3 > 5 == false", "((3 > 5) == false)"},
		{"3 < 5 == true", "((3 < 5) == true)"},
		{"1 + (2 + 3) + 4", "((1 + (2 + 3)) + 4)"},
		{"(5 + 5) * 2", "((5 + 5) * 2)"},
		{"2 / (5 + 5)", "(2 / (5 + 5))"},
		{"-(5 + 5)", "(-(5 + 5))"},
		{"!(true == true)", "(!(true == true))"},
		{"a + add(b * c) + d", "((a + add((b * c))) + d)"},
		{"add(a, b, 1, 2 * 3, 4 + 5, add(6, 7 * 8))", "add(a, b, 1, (2 * 3), (4 + 5), add(6, (7 * 8)))"},
		{"add(a + b + c * d / f + g)", "add((((a + b) + ((c * d) / f)) + g))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseValid(t, tt.input).String())
		})
	}
}

func TestProgramString_ParsesBackToSameProgram(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a; b;", "a;b"},
		{"1; 2;", "1;2"},
		{"x; -y;", "x;(-y)"},
		{"f; (g);", "f;g"},
		{"a; (b + c) * d; !e", "a;((b + c) * d);(!e)"},
		{"let x = 1; x; return x;", "let x = 1;x;return x;"},
		{"if (a) { b } c", "if (a) { b; };c"},
		{"fn(x) { x }; f(1); true", "fn(x) { x; };f(1);true"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program := parseValid(t, tt.input)
			rendered := program.String()
			assert.Equal(t, tt.expected, rendered)

			reparsed := parseValid(t, rendered)
			assert.Equal(t, rendered, reparsed.String())
			assert.Len(t, reparsed.Statements, len(program.Statements))
		})
	}
}

func TestIfExpression(t *testing.T) {
	exp := singleExpression(t, "if (x < y) { x }")

	ifExp, ok := exp.(*ast.IfExpression)
	require.True(t, ok, "expected *ast.IfExpression, got %T", exp)
	assert.Equal(t, "(x < y)", ifExp.Condition.String())
	require.Len(t, ifExp.Consequence.Statements, 1)
	consequence := ifExp.Consequence.Statements[0].(*ast.ExpressionStatement)
	assertIdentifier(t, consequence.Expression, "x")
	assert.Nil(t, ifExp.Alternative)
	assert.Equal(t, "if (x < y) { x; }", ifExp.String())
}

func TestIfElseExpression(t *testing.T) {
	exp := singleExpression(t, "if (x < y) { x } else { return y; }")

	ifExp, ok := exp.(*ast.IfExpression)
	require.True(t, ok, "expected *ast.IfExpression, got %T", exp)
	require.NotNil(t, ifExp.Alternative)
	require.Len(t, ifExp.Alternative.Statements, 1)
	_, isReturn := ifExp.Alternative.Statements[0].(*ast.ReturnStatement)
	assert.True(t, isReturn)
	assert.Equal(t, "if (x < y) { x; } else { return y; }", ifExp.String())
}

func TestFunctionLiteral(t *testing.T) {
	exp := singleExpression(t, "fn(x, y) { x + y; }")

	fn, ok := exp.(*ast.FunctionLiteral)
	require.True(t, ok, "expected *ast.FunctionLiteral, got %T", exp)
	require.Len(t, fn.Parameters, 2)
	assertIdentifier(t, fn.Parameters[0], "x")
	assertIdentifier(t, fn.Parameters[1], "y")
	require.Len(t, fn.Body.Statements, 1)
	assert.Equal(t, "(x + y)", fn.Body.Statements[0].String())
	assert.Equal(t, "fn(x, y) { (x + y); }", fn.String())
}

func TestFunctionParameters(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"fn() {};", []string{}},
		{"fn(x) {};", []string{"x"}},
		{"fn(x, y, z) {};", []string{"x", "y", "z"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			fn := singleExpression(t, tt.input).(*ast.FunctionLiteral)
			names := make([]string, 0, len(fn.Parameters))
			for _, p := range fn.Parameters {
				names = append(names, p.Value)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestCallExpression(t *testing.T) {
	exp := singleExpression(t, "add(1, 2 * 3, 4 + 5);")

	call, ok := exp.(*ast.CallExpression)
	require.True(t, ok, "expected *ast.CallExpression, got %T", exp)
	assertIdentifier(t, call.Function, "add")
	require.Len(t, call.Arguments, 3)
	assert.Equal(t, "1", call.Arguments[0].String())
	assert.Equal(t, "(2 * 3)", call.Arguments[1].String())
	assert.Equal(t, "(4 + 5)", call.Arguments[2].String())
}

func TestCallExpression_FunctionLiteralCallee(t *testing.T) {
	program := parseValid(t, "fn(x) { return x; }(5)")

	assert.Equal(t, "fn(x) { return x; }(5)", program.String())
}

func TestEmptyProgram(t *testing.T) {
	for _, input := range []string{"", "   \n\t"} {
		program := parseValid(t, input)
		assert.Empty(t, program.Statements)
		assert.Equal(t, "", program.TokenLiteral())
	}
}

func TestParsingErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "let without identifier",
			input:    "let = 5;",
			expected: []string{"expected next token to be IDENT, got ASSIGN instead"},
		},
		{
			name:     "let without assign",
			input:    "let x 5;",
			expected: []string{"expected next token to be ASSIGN, got INT instead"},
		},
		{
			name:     "let without value",
			input:    "let x = ;",
			expected: []string{"no prefix parse function for SEMICOLON found"},
		},
		{
			name:     "operator without prefix rule",
			input:    "+5;",
			expected: []string{"no prefix parse function for PLUS found"},
		},
		{
			name:     "illegal token",
			input:    "let x = @;",
			expected: []string{"no prefix parse function for ILLEGAL found"},
		},
		{
			name:     "missing right operand",
			input:    "1 +",
			expected: []string{"no prefix parse function for EOF found"},
		},
		{
			name:     "unclosed group",
			input:    "(1 + 2",
			expected: []string{"expected next token to be RPAREN, got EOF instead"},
		},
		{
			name:     "if without parens",
			input:    "if x { y }",
			expected: []string{"expected next token to be LPAREN, got IDENT instead"},
		},
		{
			name:     "unterminated block",
			input:    "if (x) { x",
			expected: []string{"expected RBRACE to close block, got EOF instead"},
		},
		{
			name:     "non identifier parameter",
			input:    "fn(1) {}",
			expected: []string{"expected next token to be IDENT, got INT instead"},
		},
		{
			name:     "unclosed call",
			input:    "add(1, 2",
			expected: []string{"expected next token to be RPAREN, got EOF instead"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, p := parse(t, tt.input)
			require.NotNil(t, program)
			assert.Empty(t, program.Statements)
			assert.Equal(t, tt.expected, p.Errors())
		})
	}
}

func TestRecoverMode_ContinuesAfterBadStatement(t *testing.T) {
	program, p := parse(t, "let = 5; let y = 10; let 3; return y;")

	require.NotNil(t, program)
	assert.Equal(t, "let y = 10;return y;", program.String())
	assert.Equal(t, []string{
		"expected next token to be IDENT, got ASSIGN instead",
		"expected next token to be IDENT, got INT instead",
	}, p.Errors())
}

func TestRecoverMode_SkipsWholeBlock(t *testing.T) {
	program, p := parse(t, "let f = fn(x) { let = 1; x }; let y = 2;")

	require.NotNil(t, program)
	assert.Equal(t, "let y = 2;", program.String())
	assert.Equal(t, []string{"expected next token to be IDENT, got ASSIGN instead"}, p.Errors())
}

func TestRecoverMode_StrayClosingBrace(t *testing.T) {
	program, p := parse(t, "} let a = 1;")

	assert.Equal(t, "let a = 1;", program.String())
	assert.Equal(t, []string{"no prefix parse function for RBRACE found"}, p.Errors())
}

func TestStrictMode_AbortsOnFirstError(t *testing.T) {
	program, p := parse(t, "let y = 10; let = 5; let 3;", WithMode(ModeStrict))

	assert.Nil(t, program)
	assert.Equal(t, []string{"expected next token to be IDENT, got ASSIGN instead"}, p.Errors())
}

func TestStrictMode_ValidProgram(t *testing.T) {
	program, p := parse(t, "return 5; return 10; return 993322;", WithMode(ModeStrict))

	require.NotNil(t, program)
	assert.Len(t, program.Statements, 3)
	assert.Empty(t, p.Errors())
}

func TestErrors_AccumulateForParserLifetime(t *testing.T) {
	p := New(lexer.New("let = 1; let = 2;"))
	p.ParseProgram()
	first := len(p.Errors())

	p.ParseProgram()

	assert.Equal(t, 2, first)
	assert.Len(t, p.Errors(), first)
}

func TestParse(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		program, err := Parse("let five = 5;")
		require.NoError(t, err)
		assert.Equal(t, "let five = 5;", program.String())
	})

	t.Run("rejected in recover mode", func(t *testing.T) {
		program, err := Parse("let = 5; x")
		require.Error(t, err)
		require.NotNil(t, program)
		assert.Equal(t, "x", program.String())

		var ve *apperr.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "program rejected", ve.Message)
		assert.Equal(t, []string{"expected next token to be IDENT, got ASSIGN instead"}, ve.Details)
	})

	t.Run("rejected in strict mode", func(t *testing.T) {
		program, err := Parse("let = 5; x", WithMode(ModeStrict))
		require.Error(t, err)
		assert.Nil(t, program)
	})
}

func TestWithLogger_LogsRecovery(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, p := parse(t, "let = 5; let x = 1;", WithLogger(logger))

	assert.Len(t, p.Errors(), 1)
	assert.Contains(t, buf.String(), "Recovered from statement error")
	assert.Contains(t, buf.String(), "token=SEMICOLON")
}
