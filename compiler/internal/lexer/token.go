package lexer

// TokKind enumerates token kinds produced by the lexer.
type TokKind int

const (
	// Special
	TokEOF     TokKind = iota
	TokIllegal         // character or literal the lexer could not accept
	TokComment         // "# ..." to end of line

	// Literals/identifiers
	TokIdent
	TokNumber
	TokStr

	// Keywords
	TokSet
	TokTo
	TokProgram
	TokObject
	TokEnd
	TokStart
	TokLap
	TokForever
	TokIf
	TokElse
	TokSay
	TokStop
	TokRunning
	TokAsk

	// Operators/punctuation
	TokEq     // =
	TokNe     // !=
	TokLt     // <
	TokLe     // <=
	TokGt     // >
	TokGe     // >=
	TokPlus   // +
	TokMinus  // -
	TokStar   // *
	TokSlash  // /
	TokCaret  // ^
	TokLParen // (
	TokRParen // )
	TokDot    // .
	TokComma  // ,

	// Boolean & logical words
	TokTrue
	TokFalse
	TokAnd
	TokOr
	TokNot
)

var kindNames = map[TokKind]string{
	TokEOF: "EOF", TokIllegal: "ILLEGAL", TokComment: "COMMENT",
	TokIdent: "IDENT", TokNumber: "NUMBER", TokStr: "STRING",
	TokSet: "set", TokTo: "to", TokProgram: "program", TokObject: "object",
	TokEnd: "end", TokStart: "start", TokLap: "lap", TokForever: "forever",
	TokIf: "if", TokElse: "else", TokSay: "say", TokStop: "stop",
	TokRunning: "running", TokAsk: "ask",
	TokEq: "=", TokNe: "!=", TokLt: "<", TokLe: "<=", TokGt: ">", TokGe: ">=",
	TokPlus: "+", TokMinus: "-", TokStar: "*", TokSlash: "/", TokCaret: "^",
	TokLParen: "(", TokRParen: ")", TokDot: ".", TokComma: ",",
	TokTrue: "true", TokFalse: "false", TokAnd: "and", TokOr: "or", TokNot: "not",
}

func (k TokKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "?"
}

// IsKeyword reports whether k is a reserved word.
func (k TokKind) IsKeyword() bool {
	return (k >= TokSet && k <= TokAsk) || (k >= TokTrue && k <= TokNot)
}

// Token is a single lexeme with source position.
type Token struct {
	Kind TokKind
	Lex  string
	Line int
	Col  int

	// SpaceBefore is set when whitespace separates this token from the
	// previous one; property access requires a tight ".".
	SpaceBefore bool
}
