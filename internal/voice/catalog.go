package voice

import (
	"strings"

	"github.com/saikrishna-dev/mandimitra-backend/pkg/enums"
)

// Command is one recognizable voice intent. Aliases cover the English, Hindi,
// and Telugu ways street vendors name the produce, plus common romanizations.
type Command struct {
	Key     string
	Name    string
	NameHi  string
	NameTe  string
	Aliases []string
}

var commands = []Command{
	{
		Key:     "1",
		Name:    "onion",
		NameHi:  "प्याज",
		NameTe:  "ఉల్లిపాయ",
		Aliases: []string{"onion", "onions", "pyaz", "pyaaz", "kanda", "ullipaya", "ullipayalu", "प्याज", "ఉల్లిపాయ"},
	},
	{
		Key:     "2",
		Name:    "tomato",
		NameHi:  "टमाटर",
		NameTe:  "టమాటా",
		Aliases: []string{"tomato", "tomatoes", "tamatar", "tamata", "टमाटर", "టమాటా"},
	},
	{
		Key:     "3",
		Name:    "potato",
		NameHi:  "आलू",
		NameTe:  "బంగాళదుంప",
		Aliases: []string{"potato", "potatoes", "aloo", "alu", "batata", "bangaladumpa", "आलू", "బంగాళదుంప"},
	},
	{
		Key:     "4",
		Name:    "coriander",
		NameHi:  "धनिया",
		NameTe:  "కొత్తిమీర",
		Aliases: []string{"coriander", "dhaniya", "dhania", "kothimeera", "kothimira", "धनिया", "కొత్తిమీర"},
	},
	{
		Key:     "5",
		Name:    "chilli",
		NameHi:  "मिर्ची",
		NameTe:  "మిరపకాయ",
		Aliases: []string{"chilli", "chillies", "chili", "mirchi", "mirch", "mirapakaya", "mirapakayalu", "मिर्ची", "మిరపకాయ"},
	},
	{
		Key:     "6",
		Name:    "ginger",
		NameHi:  "अदरक",
		NameTe:  "అల్లం",
		Aliases: []string{"ginger", "adrak", "adarak", "allam", "अदरक", "అల్లం"},
	},
}

// Commands returns the full catalog.
func Commands() []Command {
	out := make([]Command, len(commands))
	copy(out, commands)
	return out
}

// LocalizedName returns the command's produce name for the given language.
func (c Command) LocalizedName(lang enums.Language) string {
	switch lang {
	case enums.LanguageHindi:
		return c.NameHi
	case enums.LanguageTelugu:
		return c.NameTe
	}
	return c.Name
}

// MatchCommand scans a transcript for the first catalog alias it contains.
// Matching is longest-alias-first so "green chilli" does not lose to a
// shorter overlapping alias.
func MatchCommand(transcript string) (Command, bool) {
	normalized := normalize(transcript)
	if normalized == "" {
		return Command{}, false
	}

	best := -1
	bestLen := 0
	for i, cmd := range commands {
		for _, alias := range cmd.Aliases {
			if len(alias) > bestLen && containsWord(normalized, alias) {
				best = i
				bestLen = len(alias)
			}
		}
	}
	if best < 0 {
		return Command{}, false
	}
	return commands[best], true
}

var quantityWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"ek": 1, "do": 2, "teen": 3, "char": 4, "paanch": 5, "panch": 5,
	"chhe": 6, "saat": 7, "aath": 8, "nau": 9, "das": 10,
	"okati": 1, "rendu": 2, "moodu": 3, "nalugu": 4, "aidu": 5,
	"एक": 1, "दो": 2, "तीन": 3, "चार": 4, "पांच": 5,
	"ఒకటి": 1, "రెండు": 2, "మూడు": 3, "నాలుగు": 4, "ఐదు": 5,
}

// MaxQuantity bounds what a single spoken order may ask for. Larger numbers
// are almost always misrecognitions, so they are rejected rather than capped.
const MaxQuantity = 1000

// ParseQuantity extracts a spoken quantity from the transcript, defaulting to
// one when nothing usable is found.
func ParseQuantity(transcript string) int {
	for _, field := range strings.Fields(normalize(transcript)) {
		if qty := digitsValue(field); qty > 0 {
			return qty
		}
		if qty, ok := quantityWords[field]; ok {
			return qty
		}
	}
	return 1
}

func digitsValue(field string) int {
	value := 0
	seen := false
	for _, r := range field {
		if r < '0' || r > '9' {
			return 0
		}
		seen = true
		value = value*10 + int(r-'0')
		if value > MaxQuantity {
			// Anything past the bound reads the same; the interpreter
			// rejects it.
			return MaxQuantity + 1
		}
	}
	if !seen {
		return 0
	}
	return value
}

func normalize(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

func containsWord(haystack, needle string) bool {
	idx := strings.Index(haystack, needle)
	for idx >= 0 {
		before := idx == 0 || haystack[idx-1] == ' '
		end := idx + len(needle)
		after := end == len(haystack) || haystack[end] == ' '
		if before && after {
			return true
		}
		next := strings.Index(haystack[idx+1:], needle)
		if next < 0 {
			return false
		}
		idx += 1 + next
	}
	return false
}
