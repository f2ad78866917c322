package calc

// Kind identifies an input token.
type Kind int

const (
	KindDigit Kind = iota // '0'-'9' or '.'
	KindBinary
	KindEquals
	KindClearAll
	KindClearEntry
	KindOpenParen
	KindCloseParen
	KindUnary
	KindMemoryClear
	KindMemoryRecall
	KindMemoryAdd
	KindMemorySub
	KindModeCycle
	KindAngleToggle
	KindPaste

	// Graphing mode only.
	KindSlotSelect
	KindSlotCommit
	KindTraceToggle
	KindTraceLeft
	KindTraceRight
	KindZoomIn
	KindZoomOut
	KindWindowReset
)

// Token is one discrete input event. Keyboard and pointer input are both
// translated to tokens before they reach the calculator.
type Token struct {
	Kind   Kind
	Digit  byte     // KindDigit
	Binary BinaryOp // KindBinary
	Unary  UnaryOp  // KindUnary
	Slot   int      // KindSlotSelect, KindSlotCommit
	Text   string   // KindSlotCommit, KindPaste
}

// Digit creates a digit or decimal point token.
func Digit(c byte) Token { return Token{Kind: KindDigit, Digit: c} }

// Binary creates a binary operator token.
func Binary(op BinaryOp) Token { return Token{Kind: KindBinary, Binary: op} }

// Unary creates a unary operation token.
func Unary(op UnaryOp) Token { return Token{Kind: KindUnary, Unary: op} }

// Key creates a token of the given kind that carries no argument.
func Key(k Kind) Token { return Token{Kind: k} }

// SelectSlot creates a token making function slot i active.
func SelectSlot(i int) Token { return Token{Kind: KindSlotSelect, Slot: i} }

// CommitSlot creates a token storing text in function slot i.
func CommitSlot(i int, text string) Token {
	return Token{Kind: KindSlotCommit, Slot: i, Text: text}
}

// Paste creates a token that enters text as the current operand.
func Paste(text string) Token { return Token{Kind: KindPaste, Text: text} }

// graphing reports whether k belongs to the graphing vocabulary.
func (k Kind) graphing() bool {
	return k >= KindSlotSelect
}
