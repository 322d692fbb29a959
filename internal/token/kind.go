package token

// Kind is the closed set of syntax kinds shared by tokens, trivia and tree nodes.
type Kind uint8

const (
	// Invalid marks bytes the lexer could not classify.
	Invalid Kind = iota

	LParen   // (
	RParen   // )
	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]

	// Symbol is a bare name such as foo, +, a.b or ~=.
	Symbol
	// Number covers decimal, hex, .inf and .nan literals.
	Number
	// String is a double-quoted literal including its quotes.
	String
	// Keyword is ':' followed by a symbol run.
	Keyword
	// Boolean is exactly true or false.
	Boolean

	// Prefix is one of # @ ? ~ ^ ' ` , when it introduces an expression.
	Prefix
	// HashDirective is a '#' line at the very start of the file.
	HashDirective
	// End is the final zero-width token; its Leading holds the file's trailing trivia.
	End

	Space   // trivia
	Newline // trivia
	Comment // trivia

	Root
	List     // ( ... )
	Sequence // [ ... ]
	Table    // { ... }
	Pair     // key value inside a Table
	Prefixed // prefix + expression
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	LParen:        "LParen",
	RParen:        "RParen",
	LBrace:        "LBrace",
	RBrace:        "RBrace",
	LBracket:      "LBracket",
	RBracket:      "RBracket",
	Symbol:        "Symbol",
	Number:        "Number",
	String:        "String",
	Keyword:       "Keyword",
	Boolean:       "Boolean",
	Prefix:        "Prefix",
	HashDirective: "HashDirective",
	End:           "End",
	Space:         "Space",
	Newline:       "Newline",
	Comment:       "Comment",
	Root:          "Root",
	List:          "List",
	Sequence:      "Sequence",
	Table:         "Table",
	Pair:          "Pair",
	Prefixed:      "Prefixed",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsTrivia reports whether k is a trivia kind.
func (k Kind) IsTrivia() bool {
	return k == Space || k == Newline || k == Comment
}

// IsLiteral reports whether k is an atom that forms an expression on its own.
func (k Kind) IsLiteral() bool {
	switch k {
	case Symbol, Number, String, Keyword, Boolean:
		return true
	default:
		return false
	}
}

// IsOpen reports whether k opens a delimited container.
func (k Kind) IsOpen() bool {
	return k == LParen || k == LBrace || k == LBracket
}

// IsClose reports whether k closes a delimited container.
func (k Kind) IsClose() bool {
	return k == RParen || k == RBrace || k == RBracket
}

// IsContainer reports whether k is a tree node kind.
func (k Kind) IsContainer() bool {
	return k >= Root && k <= Prefixed
}

// Closer returns the closing delimiter matching an opening one, or Invalid.
func (k Kind) Closer() Kind {
	switch k {
	case LParen:
		return RParen
	case LBrace:
		return RBrace
	case LBracket:
		return RBracket
	default:
		return Invalid
	}
}

// Container returns the node kind an opening delimiter produces, or Invalid.
func (k Kind) Container() Kind {
	switch k {
	case LParen:
		return List
	case LBrace:
		return Table
	case LBracket:
		return Sequence
	default:
		return Invalid
	}
}

// Delims returns the opening and closing text of a delimited container kind.
func (k Kind) Delims() (open, closing string) {
	switch k {
	case List:
		return "(", ")"
	case Sequence:
		return "[", "]"
	case Table:
		return "{", "}"
	default:
		return "", ""
	}
}
