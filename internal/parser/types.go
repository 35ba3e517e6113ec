package parser

type IntentKind int

const (
	Command IntentKind = iota
	Query
	Help
	Unknown
)

type Quantity struct {
	Raw  string
	N    int
	Unit string
}

type Intent struct {
	Raw        string
	Normalised string
	Kind       IntentKind
	Verb       string
	Args       []string
	Quantity   *Quantity
	Confidence float64
	Clarify    *ClarifyQuestion
}

type ClarifyQuestion struct {
	Prompt  string
	Options []Intent
}

// ParseContext tells the parser which situational commands make sense
// right now so inference and suggestions stay relevant.
type ParseContext struct {
	AtRiver      bool
	AtFork       bool
	AtSettlement bool
	LastVerb     string
}

// CommandDef is one parseable command. ArgOptions is the closed
// vocabulary its argument resolves against, if it takes one.
type CommandDef struct {
	Canonical  string
	Aliases    []string
	ArgOptions []string
	DefaultArg string
	MaxArgs    int
	Kind       IntentKind
}
