package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anchorsmith/anchorsmith/pkg/lower"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// ArtifactModel is the bubbletea model for browsing a generated bundle
// without writing it to disk. The left pane lists files, enter opens
// one, esc returns to the list.
type ArtifactModel struct {
	Artifact *lower.Artifact
	Cursor   int
	Viewing  bool
	Scroll   int
	Height   int
}

// NewArtifactModel creates a browser over the artifact's files.
func NewArtifactModel(artifact *lower.Artifact) ArtifactModel {
	return ArtifactModel{Artifact: artifact, Height: 20}
}

func (m ArtifactModel) Init() tea.Cmd {
	return nil
}

func (m ArtifactModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Viewing {
				m.Viewing = false
				m.Scroll = 0
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.Viewing {
				if m.Scroll > 0 {
					m.Scroll--
				}
			} else if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Viewing {
				if m.Scroll < m.maxScroll() {
					m.Scroll++
				}
			} else if m.Cursor < len(m.Artifact.Files)-1 {
				m.Cursor++
			}
		case "enter":
			if !m.Viewing && len(m.Artifact.Files) > 0 {
				m.Viewing = true
				m.Scroll = 0
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ArtifactModel) View() string {
	if m.Viewing {
		return m.fileView()
	}
	return m.listView()
}

func (m ArtifactModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Artifact.ProgramName))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  q quit"))
	b.WriteString("\n\n")

	for i, f := range m.Artifact.Files {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-28s %s", cursor, f.Name,
			listDimStyle.Render(fmt.Sprintf("%d bytes", len(f.Content))))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Artifact.Files))))

	return b.String()
}

func (m ArtifactModel) fileView() string {
	f := m.Artifact.Files[m.Cursor]
	lines := strings.Split(f.Content, "\n")

	end := m.Scroll + m.Height
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(f.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ scroll  esc back  q quit"))
	b.WriteString("\n\n")
	for _, line := range lines[m.Scroll:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d-%d/%d]", m.Scroll+1, end, len(lines))))

	return b.String()
}

func (m ArtifactModel) maxScroll() int {
	lines := strings.Count(m.Artifact.Files[m.Cursor].Content, "\n") + 1
	if lines <= m.Height {
		return 0
	}
	return lines - m.Height
}
