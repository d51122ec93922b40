package domain

// CommandType classifies a draft editor command.
type CommandType int

const (
	CommandUnknown CommandType = iota
	CommandTitle
	CommandAddComponent
	CommandRenameComponent
	CommandRemoveComponent
	CommandAddIngredient
	CommandSetIngredient // Args: component, ingredient, field (name|qty|unit), value
	CommandRemoveIngredient
	CommandAddStep
	CommandSetStep
	CommandRemoveStep
	CommandRenumber
	CommandUndo
	CommandScrap // discard the draft and start over
	CommandImportURL
	CommandImportImage
	CommandSave
	CommandClose
	CommandHelp
)

// String returns a human-readable command type.
func (c CommandType) String() string {
	for name, t := range commandNames {
		if t == c {
			return name
		}
	}
	return "unknown"
}

// Command is a parsed draft editor line. Indices in Args are 1-based as
// typed by the user.
type Command struct {
	Type CommandType
	Args []string
}

// commandNames maps snake_case names to CommandType values.
var commandNames = map[string]CommandType{
	"title":             CommandTitle,
	"add_component":     CommandAddComponent,
	"rename_component":  CommandRenameComponent,
	"remove_component":  CommandRemoveComponent,
	"add_ingredient":    CommandAddIngredient,
	"set_ingredient":    CommandSetIngredient,
	"remove_ingredient": CommandRemoveIngredient,
	"add_step":          CommandAddStep,
	"set_step":          CommandSetStep,
	"remove_step":       CommandRemoveStep,
	"renumber":          CommandRenumber,
	"undo":              CommandUndo,
	"scrap":             CommandScrap,
	"import_url":        CommandImportURL,
	"import_image":      CommandImportImage,
	"save":              CommandSave,
	"close":             CommandClose,
	"help":              CommandHelp,
	"unknown":           CommandUnknown,
}

// CommandFromString converts a snake_case command name to a CommandType.
// Returns CommandUnknown for unrecognized names.
func CommandFromString(name string) CommandType {
	if t, ok := commandNames[name]; ok {
		return t
	}
	return CommandUnknown
}
