package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/drewcray/skillpack/internal/model"
)

// BundlePickerAction represents the outcome of the bundle picker.
type BundlePickerAction int

const (
	// BundlePickerActionNone means no selection was made (user quit).
	BundlePickerActionNone BundlePickerAction = iota
	// BundlePickerActionSelect means the user selected a bundle.
	BundlePickerActionSelect
)

// BundlePickerResult contains the result of the picker interaction.
type BundlePickerResult struct {
	Action BundlePickerAction
	Bundle *model.Bundle
}

// bundlePickerKeyMap defines the key bindings for the bundle picker.
type bundlePickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultBundlePickerKeyMap() bundlePickerKeyMap {
	return bundlePickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var titleCaser = cases.Title(language.English)

var bundlePickerStyles = struct {
	Description lipgloss.Style
	Badge       lipgloss.Style
	Status      lipgloss.Style
}{
	Description: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 4),
	Badge:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
}

// BundlePickerModel is the BubbleTea model for choosing one bundle from
// a discovered list.
type BundlePickerModel struct {
	title    string
	bundles  []*model.Bundle
	cursor   int
	keys     bundlePickerKeyMap
	result   BundlePickerResult
	showHelp bool
	quitting bool
}

// NewBundlePickerModel creates a picker over the given bundles.
func NewBundlePickerModel(title string, bundles []*model.Bundle) BundlePickerModel {
	return BundlePickerModel{
		title:   title,
		bundles: bundles,
		keys:    defaultBundlePickerKeyMap(),
	}
}

// Result returns the picker outcome after the program finishes.
func (m BundlePickerModel) Result() BundlePickerResult {
	return m.result
}

// Init implements tea.Model.
func (m BundlePickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m BundlePickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Help):
		m.showHelp = !m.showHelp

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.bundles)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Select):
		if len(m.bundles) > 0 {
			m.result = BundlePickerResult{
				Action: BundlePickerActionSelect,
				Bundle: m.bundles[m.cursor],
			}
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m BundlePickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(Styles.Title.Render(m.title))
	b.WriteString("\n\n")

	if len(m.bundles) == 0 {
		b.WriteString(Styles.Normal.Render("no bundles found"))
		b.WriteString("\n")
		return b.String()
	}

	for i, bundle := range m.bundles {
		badge := fmt.Sprintf("%s · %s",
			titleCaser.String(string(bundle.Scope)),
			bundle.Platform,
		)
		line := fmt.Sprintf("%s  %s", bundle.Name, bundlePickerStyles.Badge.Render(badge))

		if i == m.cursor {
			b.WriteString(Styles.Selected.Render("▸ " + line))
		} else {
			b.WriteString(Styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")

		if i == m.cursor && bundle.Manifest.Description != "" {
			b.WriteString(bundlePickerStyles.Description.Render(bundle.Manifest.Description))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(Styles.Help.Render("↑/k up · ↓/j down · enter select · ? help · q quit"))
	} else {
		b.WriteString(bundlePickerStyles.Status.Render(fmt.Sprintf("%d bundle(s) · ? for help", len(m.bundles))))
	}
	b.WriteString("\n")

	return b.String()
}

// PickBundle runs the picker and returns the selected bundle, or nil if
// the user quit without selecting.
func PickBundle(title string, bundles []*model.Bundle) (*model.Bundle, error) {
	final, err := Run(NewBundlePickerModel(title, bundles))
	if err != nil {
		return nil, err
	}
	picker, ok := final.(BundlePickerModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type from picker")
	}
	if picker.Result().Action != BundlePickerActionSelect {
		return nil, nil
	}
	return picker.Result().Bundle, nil
}
