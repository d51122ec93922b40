package display

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/recipedesk/internal/console"
	"github.com/hammamikhairi/recipedesk/internal/domain"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case alertMsg:
		if msg.urgent {
			m.alert = &msg
		} else {
			m.notice = msg.text
		}
		return m, nil

	case doneMsg:
		m.finish(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		// Any key dismisses an alert and does nothing else.
		if m.alert != nil {
			m.alert = nil
			return m, nil
		}
		m.showCmds = false
		cmd := m.handleKey(msg)
		m.sync()
		return m, cmd
	}

	var cmd tea.Cmd
	if m.focus == focusMatch {
		m.matchInput, cmd = m.matchInput.Update(msg)
	} else {
		m.recipeInput, cmd = m.recipeInput.Update(msg)
	}
	return m, cmd
}

// finish records the outcome of a console call. Catalog failures were
// already alerted by the notifier; usage errors become the notice line.
func (m *model) finish(msg doneMsg) {
	switch err := msg.err; {
	case err == nil:
	case errors.Is(err, domain.ErrSuperseded), errors.Is(err, context.Canceled):
		m.log.Debug("display: %s: %v", msg.op, err)
	case domain.Quiet(err):
		m.notice = err.Error()
	default:
		m.log.Debug("display: %s failed: %v", msg.op, err)
	}
	m.sync()
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Switch):
		if m.focus == focusMatch {
			m.setFocus(focusRecipe)
		} else {
			m.setFocus(focusMatch)
		}
		return nil

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		return m.move(msg)

	case key.Matches(msg, m.keys.Select):
		return m.enter()

	case key.Matches(msg, m.keys.Back):
		m.back()
		return nil

	case key.Matches(msg, m.keys.New):
		m.create()
		return nil

	case key.Matches(msg, m.keys.Edit):
		m.setFocus(focusRecipe)
		m.inline("edit", m.console.Browser.BeginEdit())
		return nil

	case key.Matches(msg, m.keys.Delete):
		b := m.console.Browser
		if b.State() != domain.BrowserRecipeDetail {
			return nil
		}
		if !b.View().DeleteArmed {
			m.inline("arm delete", b.Delete(m.ctx))
			return nil
		}
		return m.run("delete recipe", b.Delete)

	case key.Matches(msg, m.keys.Save):
		if !m.console.Browser.State().Drafting() {
			return nil
		}
		return m.run("save recipe", m.console.Browser.SubmitDraft)

	case key.Matches(msg, m.keys.Undo):
		if m.console.Browser.State().Drafting() {
			m.inline("undo", m.console.Browser.Undo())
		}
		return nil
	}

	return m.typeKey(msg)
}

// inline records the outcome of a console call that does not touch the
// catalog and so runs inside Update.
func (m *model) inline(op string, err error) {
	m.finish(doneMsg{op: op, err: err})
}

func (m *model) move(msg tea.KeyMsg) tea.Cmd {
	if m.focus == focusRecipe && m.showsDocument() {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return cmd
	}
	if key.Matches(msg, m.keys.Up) {
		m.cursor--
	} else {
		m.cursor++
	}
	m.clampCursor()
	return nil
}

func (m *model) enter() tea.Cmd {
	if m.focus == focusMatch {
		v := m.console.Match.View()
		if v.State != domain.MatchTyping || m.cursor >= len(v.Suggestions) {
			return nil
		}
		item := v.Suggestions[m.cursor]
		return m.run("select ingredient", func(ctx context.Context) error {
			return m.console.Match.Select(ctx, item)
		})
	}

	b := m.console.Browser
	v := b.View()
	switch v.State {
	case domain.BrowserDishSearch:
		if m.cursor < len(v.Dishes) {
			dish := v.Dishes[m.cursor]
			return m.run("select dish", func(ctx context.Context) error {
				return b.SelectDish(ctx, dish)
			})
		}
	case domain.BrowserDishCreate:
		name := m.recipeInput.Value()
		return m.run("create dish", func(ctx context.Context) error {
			return b.SubmitDish(ctx, name)
		})
	case domain.BrowserRecipeSearch:
		if m.cursor < len(v.Recipes) {
			summary := v.Recipes[m.cursor]
			return m.run("select recipe", func(ctx context.Context) error {
				return b.SelectRecipe(ctx, summary)
			})
		}
	case domain.BrowserRecipeCreate, domain.BrowserRecipeEdit:
		line := m.recipeInput.Value()
		m.recipeInput.Reset()
		return m.command(line)
	}
	return nil
}

// command runs one editor line. Catalog-bound commands go off the loop;
// draft edits apply immediately so they keep their order.
func (m *model) command(line string) tea.Cmd {
	cmd := m.parser.Parse(line)
	switch cmd.Type {
	case domain.CommandHelp:
		m.showCmds = true
		return nil
	case domain.CommandUnknown:
		if len(cmd.Args) > 0 {
			m.notice = "unknown command, type help"
		}
		return nil
	case domain.CommandSave, domain.CommandImportURL, domain.CommandImportImage:
		return m.run(cmd.Type.String(), func(ctx context.Context) error {
			return m.console.Browser.Run(ctx, cmd)
		})
	}
	m.notice = ""
	m.inline(cmd.Type.String(), m.console.Browser.Run(m.ctx, cmd))
	return nil
}

func (m *model) back() {
	if m.focus == focusMatch {
		m.console.Match.Clear()
		return
	}
	b := m.console.Browser
	v := b.View()
	switch {
	case v.DeleteArmed:
		b.CancelDelete()
	case v.State.Drafting():
		m.inline("close draft", b.CloseDraft())
	case v.State == domain.BrowserDishSearch:
		if v.Query != "" {
			b.SetQuery("")
		}
	default:
		m.inline("back", b.Back())
	}
}

func (m *model) create() {
	m.setFocus(focusRecipe)
	b := m.console.Browser
	switch b.State() {
	case domain.BrowserDishSearch:
		m.inline("new dish", b.BeginCreateDish())
	case domain.BrowserRecipeSearch:
		m.inline("new recipe", b.BeginCreateRecipe())
	}
}

// typeKey forwards a key to the focused input and pushes a changed search
// query into the console.
func (m *model) typeKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	if m.focus == focusMatch {
		before := m.matchInput.Value()
		m.matchInput, cmd = m.matchInput.Update(msg)
		if v := m.matchInput.Value(); v != before {
			m.console.Match.SetQuery(v)
			m.cursor = 0
		}
		return cmd
	}

	before := m.recipeInput.Value()
	m.recipeInput, cmd = m.recipeInput.Update(msg)
	v := m.recipeInput.Value()
	if v == before {
		return cmd
	}
	switch m.console.Browser.State() {
	case domain.BrowserDishSearch, domain.BrowserRecipeSearch:
		m.console.Browser.SetQuery(v)
		m.cursor = 0
	}
	return cmd
}

func (m *model) setFocus(f focus) {
	m.focus = f
	m.cursor = 0
	if f == focusMatch {
		m.matchInput.Focus()
		m.recipeInput.Blur()
	} else {
		m.recipeInput.Focus()
		m.matchInput.Blur()
	}
}

// sync brings inputs, prompt, cursor and the document viewport in line
// with the console after any change.
func (m *model) sync() {
	mv := m.console.Match.View()
	if m.matchInput.Value() != mv.Query {
		m.matchInput.SetValue(mv.Query)
	}

	bv := m.console.Browser.View()
	prompt := promptFor(bv.State)
	if m.recipeInput.Prompt != prompt {
		m.recipeInput.Prompt = prompt
		m.recipeInput.Placeholder = placeholderFor(bv.State)
		m.recipeInput.Reset()
		m.cursor = 0
		m.resizeInputs()
	}
	switch bv.State {
	case domain.BrowserDishSearch, domain.BrowserRecipeSearch:
		if m.recipeInput.Value() != bv.Query {
			m.recipeInput.SetValue(bv.Query)
		}
	}

	m.clampCursor()
	m.refreshDocument(bv)
}

func (m *model) clampCursor() {
	n := m.listLen()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) listLen() int {
	if m.focus == focusMatch {
		return len(m.console.Match.View().Suggestions)
	}
	v := m.console.Browser.View()
	switch v.State {
	case domain.BrowserDishSearch:
		return len(v.Dishes)
	case domain.BrowserRecipeSearch:
		return len(v.Recipes)
	}
	return 0
}

func (m *model) showsDocument() bool {
	switch m.console.Browser.State() {
	case domain.BrowserRecipeDetail, domain.BrowserRecipeCreate, domain.BrowserRecipeEdit:
		return true
	}
	return false
}

func (m *model) refreshDocument(v console.BrowserView) {
	var doc string
	switch {
	case v.Draft != nil:
		doc = DraftMarkdown(*v.Draft)
	case v.State == domain.BrowserRecipeDetail && v.Recipe != nil:
		doc = RecipeMarkdown(*v.Recipe)
	}
	if doc == m.lastDoc {
		return
	}
	m.lastDoc = doc
	if doc == "" {
		m.detail.SetContent("")
		return
	}
	m.detail.SetContent(m.markdown.Render(doc, m.detail.Width))
}

func (m *model) resize(w, h int) {
	m.width, m.height = w, h
	m.help.Width = w
	m.detail.Width = w
	m.detail.Height = max(5, h-16)
	m.resizeInputs()
	m.lastDoc = ""
	m.sync()
}

func (m *model) resizeInputs() {
	if n := m.width - len(m.matchInput.Prompt) - 1; n > 0 {
		m.matchInput.Width = n
	}
	if n := m.width - len(m.recipeInput.Prompt) - 1; n > 0 {
		m.recipeInput.Width = n
	}
}

func promptFor(s domain.BrowserState) string {
	switch s {
	case domain.BrowserDishCreate:
		return "new dish> "
	case domain.BrowserRecipeSearch:
		return "recipe> "
	case domain.BrowserRecipeDetail:
		return "> "
	case domain.BrowserRecipeCreate:
		return "draft> "
	case domain.BrowserRecipeEdit:
		return "edit> "
	default:
		return "dish> "
	}
}

func placeholderFor(s domain.BrowserState) string {
	switch s {
	case domain.BrowserDishCreate:
		return "name of the new dish"
	case domain.BrowserRecipeSearch:
		return "search recipes"
	case domain.BrowserRecipeDetail:
		return "ctrl+e edit · ctrl+d delete · esc back"
	case domain.BrowserRecipeCreate, domain.BrowserRecipeEdit:
		return "type a command, help lists them"
	default:
		return "search dishes"
	}
}
