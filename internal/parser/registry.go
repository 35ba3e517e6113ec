package parser

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type commandPhrase struct {
	canonical string
	alias     string
	tokens    []string
}

type Registry struct {
	commands map[string]CommandDef
	phrases  []commandPhrase
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]CommandDef),
	}
}

func (r *Registry) RegisterCommand(c CommandDef) {
	c.Canonical = normaliseInput(c.Canonical)
	if c.Canonical == "" {
		return
	}
	r.commands[c.Canonical] = c

	r.phrases = append(r.phrases, commandPhrase{
		canonical: c.Canonical,
		alias:     c.Canonical,
		tokens:    tokenise(c.Canonical),
	})
	for _, a := range c.Aliases {
		n := normaliseInput(a)
		if n == "" {
			continue
		}
		r.phrases = append(r.phrases, commandPhrase{
			canonical: c.Canonical,
			alias:     n,
			tokens:    tokenise(n),
		})
	}
}

func (r *Registry) command(canonical string) (CommandDef, bool) {
	canonical = normaliseInput(canonical)
	cmd, ok := r.commands[canonical]
	return cmd, ok
}

type commandCandidate struct {
	Canonical string
	Alias     string
	Consumed  int
	Score     float64
	Source    string
}

func (r *Registry) matchCommand(tokens []string) (commandCandidate, []commandCandidate) {
	if len(tokens) == 0 {
		return commandCandidate{}, nil
	}
	in := strings.Join(tokens, " ")
	cands := make([]commandCandidate, 0, len(r.phrases))
	for _, phrase := range r.phrases {
		if len(phrase.tokens) == 0 {
			continue
		}
		consumed := min(len(tokens), len(phrase.tokens))
		prefix := strings.Join(tokens[:consumed], " ")

		if consumed == len(phrase.tokens) && prefix == phrase.alias {
			score := 1.0
			source := "exact"
			if phrase.alias != phrase.canonical {
				score = 0.97
				source = "alias"
			}
			cands = append(cands, commandCandidate{
				Canonical: phrase.canonical,
				Alias:     phrase.alias,
				Consumed:  consumed,
				Score:     score,
				Source:    source,
			})
			continue
		}

		if len(phrase.tokens) == 1 && strings.HasPrefix(phrase.alias, tokens[0]) && len(tokens[0]) >= 2 {
			cands = append(cands, commandCandidate{
				Canonical: phrase.canonical,
				Alias:     phrase.alias,
				Consumed:  1,
				Score:     0.9,
				Source:    "prefix",
			})
			continue
		}

		// Fuzzy: only when there was no exact/prefix hit for this phrase.
		cut := consumed
		compare := prefix
		if len(phrase.tokens) > 1 && len(tokens) >= len(phrase.tokens) {
			cut = len(phrase.tokens)
			compare = strings.Join(tokens[:cut], " ")
		}
		if cut == 0 || compare == "" {
			continue
		}
		if len(compare) < 3 {
			continue
		}
		dist := levenshtein.ComputeDistance(compare, phrase.alias)
		limit := levenshteinLimit(len(phrase.alias))
		if dist > limit {
			continue
		}
		score := 0.72 - (0.08 * float64(dist))
		if strings.Contains(in, phrase.alias) {
			score += 0.04
		}
		if phrase.alias != phrase.canonical {
			score += 0.03
		}
		cands = append(cands, commandCandidate{
			Canonical: phrase.canonical,
			Alias:     phrase.alias,
			Consumed:  cut,
			Score:     score,
			Source:    "lev",
		})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score == cands[j].Score {
			if cands[i].Consumed == cands[j].Consumed {
				return cands[i].Canonical < cands[j].Canonical
			}
			return cands[i].Consumed > cands[j].Consumed
		}
		return cands[i].Score > cands[j].Score
	})

	if len(cands) == 0 {
		return commandCandidate{}, nil
	}
	best := cands[0]
	alts := make([]commandCandidate, 0, 4)
	seen := map[string]bool{best.Canonical: true}
	for _, c := range cands[1:] {
		if seen[c.Canonical] {
			continue
		}
		seen[c.Canonical] = true
		alts = append(alts, c)
		if len(alts) >= 4 {
			break
		}
	}
	return best, alts
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func DefaultRegistry() *Registry {
	r := NewRegistry()
	commands := []CommandDef{
		{Canonical: "travel", Aliases: []string{"go", "move", "continue", "push on", "keep going"}, MaxArgs: 0},
		{Canonical: "rest", Aliases: []string{"camp", "make camp", "sleep", "take a break"}, MaxArgs: 2},
		{Canonical: "hunt", Aliases: []string{"go hunting", "shoot"},
			ArgOptions: []string{"conservative", "normal", "aggressive"}, DefaultArg: "normal", MaxArgs: 1},
		{Canonical: "forage", Aliases: []string{"gather", "pick"},
			ArgOptions: []string{"berries", "herbs", "water"}, DefaultArg: "berries", MaxArgs: 1},
		{Canonical: "fish", Aliases: []string{"go fishing"},
			ArgOptions: []string{"line", "net", "spear"}, DefaultArg: "line", MaxArgs: 1},
		{Canonical: "cross", Aliases: []string{"cross river", "ford river", "cross the river"},
			ArgOptions: []string{"ford", "caulk", "ferry", "bridge", "wait"}, MaxArgs: 1},
		{Canonical: "route", Aliases: []string{"take route", "choose route", "pick route"}, MaxArgs: 1},
		{Canonical: "wait", Aliases: []string{"wait out", "hold", "stay put"}, MaxArgs: 1},
		{Canonical: "scout", Aliases: []string{"scout ahead", "look ahead"}, Kind: Query, MaxArgs: 0},
		{Canonical: "trade", Aliases: []string{"shop", "barter"}, Kind: Query, MaxArgs: 0},
		{Canonical: "buy", ArgOptions: []string{"food", "water", "ammunition", "medical", "clothing", "tools"}, MaxArgs: 2},
		{Canonical: "sell", ArgOptions: []string{"food", "water", "ammunition", "medical", "clothing", "tools"}, MaxArgs: 2},
		{Canonical: "pace", ArgOptions: []string{"slow", "steady", "fast", "grueling"}, MaxArgs: 1},
		{Canonical: "rations", Aliases: []string{"ration"},
			ArgOptions: []string{"filling", "normal", "meager", "starving"}, MaxArgs: 1},
		{Canonical: "repair", Aliases: []string{"fix", "mend"}, MaxArgs: 2},

		{Canonical: "status", Aliases: []string{"party", "how are we doing"}, Kind: Query, MaxArgs: 0},
		{Canonical: "supplies", Aliases: []string{"inventory", "inv", "stores", "check supplies"}, Kind: Query, MaxArgs: 0},
		{Canonical: "map", Aliases: []string{"trail", "where are we", "progress"}, Kind: Query, MaxArgs: 0},
		{Canonical: "equipment", Aliases: []string{"gear", "kit"}, Kind: Query, MaxArgs: 0},
		{Canonical: "records", Aliases: []string{"history", "hall of fame"}, Kind: Query, MaxArgs: 0},

		{Canonical: "save", MaxArgs: 1},
		{Canonical: "load", MaxArgs: 1},
		{Canonical: "help", Aliases: []string{"h", "commands", "?"}, Kind: Help, MaxArgs: 0},
		{Canonical: "quit", Aliases: []string{"exit", "q"}, MaxArgs: 0},
	}
	for _, cmd := range commands {
		r.RegisterCommand(cmd)
	}
	return r
}
