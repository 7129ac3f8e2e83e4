package token

type Type int

const (
	ILLEGAL Type = iota
	EOF

	// identifiers + literals
	IDENT
	INT

	// operators
	ASSIGN
	PLUS
	MINUS
	BANG
	ASTERISK
	SLASH
	LT
	GT
	EQ
	NOT_EQ

	// delimiters
	COMMA
	SEMICOLON
	LPAREN
	RPAREN
	LBRACE
	RBRACE

	// keywords
	FUNCTION
	LET
	TRUE
	FALSE
	IF
	ELSE
	RETURN
)

var names = [...]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "EOF",
	IDENT:     "IDENT",
	INT:       "INT",
	ASSIGN:    "ASSIGN",
	PLUS:      "PLUS",
	MINUS:     "MINUS",
	BANG:      "BANG",
	ASTERISK:  "ASTERISK",
	SLASH:     "SLASH",
	LT:        "LT",
	GT:        "GT",
	EQ:        "EQ",
	NOT_EQ:    "NOT_EQ",
	COMMA:     "COMMA",
	SEMICOLON: "SEMICOLON",
	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	LBRACE:    "LBRACE",
	RBRACE:    "RBRACE",
	FUNCTION:  "FUNCTION",
	LET:       "LET",
	TRUE:      "TRUE",
	FALSE:     "FALSE",
	IF:        "IF",
	ELSE:      "ELSE",
	RETURN:    "RETURN",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(names) {
		return "UNKNOWN"
	}
	return names[t]
}

// MarshalText renders the type by name so JSON and YAML output stay readable.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Token represents a lexical token with its type and literal value.
type Token struct {
	Type    Type   `json:"type" yaml:"type"`
	Literal string `json:"literal" yaml:"literal"`
}

var keywords = map[string]Type{
	"fn":     FUNCTION,
	"let":    LET,
	"true":   TRUE,
	"false":  FALSE,
	"if":     IF,
	"else":   ELSE,
	"return": RETURN,
}

// LookupIdent resolves a scanned word against the keyword table.
func LookupIdent(ident string) Type {
	if t, ok := keywords[ident]; ok {
		return t
	}
	return IDENT
}

// ParseType is the inverse of Type.String.
func ParseType(name string) (Type, bool) {
	for i, n := range names {
		if n == name {
			return Type(i), true
		}
	}
	return ILLEGAL, false
}

// UnmarshalText accepts the names produced by MarshalText.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, ok := ParseType(string(text))
	if !ok {
		return &UnknownTypeError{Name: string(text)}
	}
	*t = parsed
	return nil
}

type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return "unknown token type: " + e.Name
}
