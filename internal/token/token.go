package token

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	// Identifiers + literals
	IDENT  = "IDENT"  // add, foobar, x, y, ...
	NUMBER = "NUMBER" // 1343456
	STRING = "STRING" // "foobar"

	// Operators
	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	BANG     = "!"
	ASTERISK = "*"
	SLASH    = "/"
	PERCENT  = "%"

	LT    = "<"
	LT_EQ = "<="
	GT    = ">"
	GT_EQ = ">="

	EQ     = "=="
	NOT_EQ = "!="

	// Delimiters
	COMMA     = ","
	SEMICOLON = ";"

	LPAREN   = "("
	RPAREN   = ")"
	LBRACE   = "{"
	RBRACE   = "}"
	LBRACKET = "["
	RBRACKET = "]"

	// Keywords
	FUNCTION = "FUNCTION"
	VAL      = "VAL"
	VAR      = "VAR"
	TRUE     = "TRUE"
	FALSE    = "FALSE"
	NONE     = "NONE"
	IF       = "IF"
	ELSE     = "ELSE"
	RETURN   = "RETURN"
	AND      = "AND"
	OR       = "OR"
	NOT      = "NOT"
)

type Token struct {
	Type     TokenType
	Literal  string
	Position int // the src index of the token
}

var keywords = map[string]TokenType{
	// constants
	"none":  NONE,
	"true":  TRUE,
	"false": FALSE,

	// declarations
	"fn":  FUNCTION,
	"val": VAL,
	"var": VAR,

	// flow control
	"if":     IF,
	"else":   ELSE,
	"return": RETURN,

	// logical operators
	"and": AND,
	"or":  OR,
	"not": NOT,
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
