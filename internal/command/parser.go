// Package command parses the draft editor's command line.
package command

import (
	"regexp"
	"strings"

	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/logger"
)

// Compile-time interface check.
var _ domain.CommandParser = (*KeywordParser)(nil)

// Help lists the draft editor commands. Indices start at 1.
const Help = `title <text>                     rename the recipe
add component                    append a component
component <c> name <text>        rename component c
rm component <c>                 remove component c
add ingredient <c>               append an ingredient row to component c
ingredient <c> <i> name <text>   set ingredient i of component c
ingredient <c> <i> qty <n>
ingredient <c> <i> unit <text>
rm ingredient <c> <i>            remove an ingredient
add step <c>                     append a step to component c
step <c> <s> <text>              set the text of step s
rm step <c> <s>                  remove a step (others keep their numbers)
renumber <c>                     sort steps and number them 1..n
undo                             revert the last edit
scrap                            start the draft over
import url <url>                 extract a recipe from a web page
import image <path>              extract a recipe from a photo
save                             submit the draft
close                            leave the editor`

// KeywordParser matches editor input to commands with anchored patterns.
// Captured groups become the command arguments, in order.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex *regexp.Regexp
	cmd   domain.CommandType
}

// NewKeywordParser creates the draft command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^title\s+(.+)$`), domain.CommandTitle},
		{regexp.MustCompile(`(?i)^add\s+component$`), domain.CommandAddComponent},
		{regexp.MustCompile(`(?i)^component\s+(\d+)\s+name\s+(.+)$`), domain.CommandRenameComponent},
		{regexp.MustCompile(`(?i)^(?:rm|remove|delete)\s+component\s+(\d+)$`), domain.CommandRemoveComponent},
		{regexp.MustCompile(`(?i)^add\s+ingredient\s+(\d+)$`), domain.CommandAddIngredient},
		{regexp.MustCompile(`(?i)^ingredient\s+(\d+)\s+(\d+)\s+(name|qty|quantity|unit)(?:\s+(.*))?$`), domain.CommandSetIngredient},
		{regexp.MustCompile(`(?i)^(?:rm|remove|delete)\s+ingredient\s+(\d+)\s+(\d+)$`), domain.CommandRemoveIngredient},
		{regexp.MustCompile(`(?i)^add\s+step\s+(\d+)$`), domain.CommandAddStep},
		{regexp.MustCompile(`(?i)^step\s+(\d+)\s+(\d+)\s+(.+)$`), domain.CommandSetStep},
		{regexp.MustCompile(`(?i)^(?:rm|remove|delete)\s+step\s+(\d+)\s+(\d+)$`), domain.CommandRemoveStep},
		{regexp.MustCompile(`(?i)^renumber\s+(\d+)$`), domain.CommandRenumber},
		{regexp.MustCompile(`(?i)^(?:undo|u)$`), domain.CommandUndo},
		{regexp.MustCompile(`(?i)^(?:scrap|reset)$`), domain.CommandScrap},
		{regexp.MustCompile(`(?i)^import\s+url\s+(\S+)$`), domain.CommandImportURL},
		{regexp.MustCompile(`(?i)^import\s+image\s+(.+)$`), domain.CommandImportImage},
		{regexp.MustCompile(`(?i)^(?:save|submit)$`), domain.CommandSave},
		{regexp.MustCompile(`(?i)^(?:close|cancel)$`), domain.CommandClose},
		{regexp.MustCompile(`(?i)^(?:help|h|\?)$`), domain.CommandHelp},
	}
	return p
}

// Parse converts a line into a command. Unrecognized input yields
// CommandUnknown carrying the trimmed line.
func (p *KeywordParser) Parse(input string) domain.Command {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return domain.Command{Type: domain.CommandUnknown}
	}

	p.log.Debug("parsing command: %q", trimmed)

	for _, rule := range p.patterns {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		args := make([]string, 0, len(m)-1)
		for _, g := range m[1:] {
			args = append(args, strings.TrimSpace(g))
		}
		if rule.cmd == domain.CommandSetIngredient {
			args[2] = strings.ToLower(args[2])
		}
		p.log.Debug("matched command: %s %q", rule.cmd, args)
		return domain.Command{Type: rule.cmd, Args: args}
	}

	p.log.Debug("no match, returning unknown command")
	return domain.Command{Type: domain.CommandUnknown, Args: []string{trimmed}}
}
