// Package parser turns raw player input into expedition day commands.
// Typos, aliases and a little free text all resolve to the same closed
// command set; ambiguity comes back as a clarify question rather than a
// guess.
package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type Parser struct {
	registry *Registry
}

func New() *Parser {
	return &Parser{registry: DefaultRegistry()}
}

func (p *Parser) RegisterCommand(c CommandDef) {
	p.registry.RegisterCommand(c)
}

func (p *Parser) Parse(ctx ParseContext, raw string) Intent {
	intent := Intent{
		Raw:        raw,
		Normalised: normaliseInput(raw),
		Kind:       Unknown,
		Confidence: 0,
	}
	if intent.Normalised == "" {
		intent.Clarify = &ClarifyQuestion{Prompt: "Enter a command."}
		return intent
	}

	tokens := tokenise(intent.Normalised)
	cmdMatch, alternates := p.registry.matchCommand(tokens)
	if cmdMatch.Canonical == "" || cmdMatch.Score < 0.5 {
		if inferred := inferFreeTextIntent(ctx, intent.Raw, intent.Normalised); inferred != nil {
			return *inferred
		}
		intent.Clarify = &ClarifyQuestion{
			Prompt: "I couldn't map that to a command. Try help, travel, rest, hunt, forage, fish, cross, trade, scout, status, supplies, map.",
		}
		return intent
	}

	if len(alternates) > 0 && (cmdMatch.Score-alternates[0].Score) < 0.05 && alternates[0].Score > 0.65 {
		options := []Intent{
			{
				Raw:        raw,
				Normalised: cmdMatch.Canonical,
				Kind:       p.kindOf(cmdMatch.Canonical),
				Verb:       cmdMatch.Canonical,
				Confidence: cmdMatch.Score,
			},
			{
				Raw:        raw,
				Normalised: alternates[0].Canonical,
				Kind:       p.kindOf(alternates[0].Canonical),
				Verb:       alternates[0].Canonical,
				Confidence: alternates[0].Score,
			},
		}
		intent.Clarify = &ClarifyQuestion{Prompt: "Did you mean:", Options: options}
		return intent
	}

	def, _ := p.registry.command(cmdMatch.Canonical)
	intent.Verb = cmdMatch.Canonical
	intent.Kind = def.Kind
	intent.Confidence = clampScore(cmdMatch.Score)

	argTokens := tokens
	if cmdMatch.Consumed > 0 && len(tokens) >= cmdMatch.Consumed {
		argTokens = tokens[cmdMatch.Consumed:]
	}
	argTokens, q := splitQuantity(argTokens)
	intent.Quantity = q

	resolved, clarify, argScore := resolveArgs(def, argTokens, raw)
	if clarify != nil {
		intent.Clarify = clarify
		intent.Confidence = 0.45
		return intent
	}
	intent.Args = resolved
	intent.Confidence = clampScore((intent.Confidence * 0.75) + (argScore * 0.25))
	return intent
}

func (p *Parser) kindOf(canonical string) IntentKind {
	if def, ok := p.registry.command(canonical); ok {
		return def.Kind
	}
	return Unknown
}

// splitQuantity pulls the first quantity-looking token out of the
// argument list ("rest 3 days" yields 3 with unit days).
func splitQuantity(tokens []string) ([]string, *Quantity) {
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		if q := parseQuantityToken(token); q != nil {
			rest := append(append([]string{}, tokens[:i]...), tokens[i+1:]...)
			// "3 days" spelled as two tokens.
			if q.Unit == "count" && len(rest) > i {
				switch rest[i] {
				case "days", "day", "d":
					q.Unit = "days"
					rest = append(rest[:i], rest[i+1:]...)
				}
			}
			return rest, q
		}
	}
	return tokens, nil
}

// resolveArgs matches leftover tokens against the command's closed
// argument vocabulary. A near-tie between two options asks instead of
// guessing.
func resolveArgs(def CommandDef, tokens []string, raw string) ([]string, *ClarifyQuestion, float64) {
	if len(tokens) == 0 {
		if def.DefaultArg != "" {
			return []string{def.DefaultArg}, nil, 0.9
		}
		return nil, nil, 1.0
	}
	if len(def.ArgOptions) == 0 {
		if def.MaxArgs == 0 {
			// Extra tokens on a bare command are noise, not an error.
			return nil, nil, 0.8
		}
		if len(tokens) > def.MaxArgs {
			tokens = tokens[:def.MaxArgs]
		}
		return tokens, nil, 0.85
	}

	joined := strings.Join(tokens, " ")
	matches, confidence, tie := bestMatches(joined, def.ArgOptions)
	if len(matches) == 0 && len(tokens) > 1 {
		// Filler words around the real option ("cross the river ford").
		for _, token := range tokens {
			m, c, tokenTie := bestMatches(token, def.ArgOptions)
			if len(m) > 0 && c > confidence {
				matches, confidence, tie = m, c, tokenTie
			}
		}
	}
	if tie && len(matches) >= 2 {
		options := make([]Intent, 0, 2)
		for idx := 0; idx < 2; idx++ {
			options = append(options, Intent{
				Raw:        raw,
				Kind:       def.Kind,
				Verb:       def.Canonical,
				Args:       []string{matches[idx]},
				Confidence: confidence - float64(idx)*0.01,
			})
		}
		return nil, &ClarifyQuestion{
			Prompt:  fmt.Sprintf("Did you mean %s %s or %s %s?", def.Canonical, matches[0], def.Canonical, matches[1]),
			Options: options,
		}, 0
	}
	if len(matches) == 1 {
		return []string{matches[0]}, nil, confidence
	}
	if def.DefaultArg != "" {
		return []string{def.DefaultArg}, nil, 0.6
	}
	return nil, &ClarifyQuestion{
		Prompt: fmt.Sprintf("%s takes one of: %s", def.Canonical, strings.Join(def.ArgOptions, ", ")),
	}, 0
}

func bestMatches(token string, options []string) ([]string, float64, bool) {
	if len(options) == 0 {
		return nil, 0, false
	}
	type scored struct {
		val   string
		score float64
	}
	results := make([]scored, 0, len(options))
	for _, cand := range options {
		score := 0.0
		switch {
		case token == cand:
			score = 1.0
		case strings.HasPrefix(cand, token) && len(token) >= 2:
			score = 0.9
		default:
			dist := levenshtein.ComputeDistance(token, cand)
			if dist > levenshteinLimit(len(cand)) {
				continue
			}
			score = 0.72 - (0.08 * float64(dist))
		}
		results = append(results, scored{val: cand, score: clampScore(score)})
	}
	if len(results) == 0 {
		return nil, 0, false
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].val < results[j].val
		}
		return results[i].score > results[j].score
	})

	best := results[0]
	tie := len(results) > 1 && (best.score-results[1].score) < 0.05 && results[1].score > 0.6
	if tie {
		return []string{best.val, results[1].val}, best.score, true
	}
	return []string{best.val}, best.score, false
}

// inferFreeTextIntent maps common trail phrasings onto commands when
// no registered verb matched.
func inferFreeTextIntent(ctx ParseContext, raw, normalised string) *Intent {
	n := normalised
	makeIntent := func(kind IntentKind, verb string, args []string, confidence float64) *Intent {
		return &Intent{
			Raw:        raw,
			Normalised: normalised,
			Kind:       kind,
			Verb:       verb,
			Args:       args,
			Confidence: clampScore(confidence),
		}
	}

	if containsAnyPhrase(n,
		"keep moving", "lets go", "hit the trail", "move out", "press on", "onward",
	) {
		return makeIntent(Command, "travel", nil, 0.86)
	}
	if containsAnyPhrase(n,
		"make camp", "set up camp", "take a rest", "stop for the day", "we need rest",
	) {
		return makeIntent(Command, "rest", nil, 0.84)
	}
	if containsAnyPhrase(n, "go hunting", "find some meat", "shoot something") {
		return makeIntent(Command, "hunt", []string{"normal"}, 0.82)
	}
	if containsAnyPhrase(n, "look for food", "look for berries", "find food") {
		return makeIntent(Command, "forage", []string{"berries"}, 0.8)
	}
	if containsAnyPhrase(n, "find water", "get water", "fill the barrels") {
		return makeIntent(Command, "forage", []string{"water"}, 0.82)
	}
	if ctx.AtRiver && containsAnyPhrase(n, "get across", "other side", "across the river") {
		return makeIntent(Command, "cross", nil, 0.78)
	}
	if ctx.AtFork && containsAnyPhrase(n, "which way", "which trail", "take the") {
		return makeIntent(Command, "route", nil, 0.76)
	}
	if ctx.AtSettlement && containsAnyPhrase(n, "resupply", "stock up", "go shopping") {
		return makeIntent(Query, "trade", nil, 0.8)
	}
	if containsAnyPhrase(n, "how is everyone", "how are we", "check on everyone", "hows the party") {
		return makeIntent(Query, "status", nil, 0.86)
	}
	if containsAnyPhrase(n, "what do we have", "check the wagon", "whats left") {
		return makeIntent(Query, "supplies", nil, 0.86)
	}
	if containsAnyPhrase(n, "how far", "how much farther", "are we there yet") {
		return makeIntent(Query, "map", nil, 0.84)
	}
	return nil
}

func containsAnyPhrase(value string, phrases ...string) bool {
	for _, phrase := range phrases {
		if containsPhrase(value, phrase) {
			return true
		}
	}
	return false
}

func containsPhrase(value, phrase string) bool {
	p := normaliseInput(phrase)
	if p == "" {
		return false
	}
	return strings.Contains(" "+value+" ", " "+p+" ")
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
