package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	apperrors "github.com/mvoelker/tourmaline/pkg/errors"
	"github.com/mvoelker/tourmaline/pkg/parse"
)

// List styles
var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// Directory Scanning
// =============================================================================

// InstanceEntry describes one instance file found by a directory scan.
type InstanceEntry struct {
	Path   string
	Name   string
	Cities int
	Format parse.Format
	Err    error // non-nil when the file did not parse
}

// scanInstances lists the instance files directly under dir, sorted by
// name. Files that fail to parse are included with their error so the
// picker can show them dimmed.
func scanInstances(dir string) ([]InstanceEntry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "scan %s", dir)
	}

	var entries []InstanceEntry
	for _, de := range dirEntries {
		if de.IsDir() || !isInstanceFile(de.Name()) {
			continue
		}
		path := filepath.Join(dir, de.Name())
		entry := InstanceEntry{Path: path, Name: de.Name()}
		if data, err := os.ReadFile(path); err != nil {
			entry.Err = err
		} else {
			entry.Format = parse.DetectFormat(string(data))
			if inst, err := parse.ReadText(string(data), de.Name()); err != nil {
				entry.Err = err
			} else {
				entry.Cities = inst.Matrix.Dim()
			}
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// isInstanceFile reports whether name has a recognized instance extension.
func isInstanceFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".tsp":
		return true
	}
	return false
}

// pickInstance runs the interactive picker over the scanned entries and
// returns the chosen path, or "" when the picker is dismissed.
func pickInstance(entries []InstanceEntry) (string, error) {
	finalModel, err := tea.NewProgram(NewInstanceListModel(entries)).Run()
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, err, "instance picker")
	}
	m, ok := finalModel.(InstanceListModel)
	if !ok || m.Selected == nil {
		return "", nil
	}
	return m.Selected.Path, nil
}

// =============================================================================
// InstanceListModel - Interactive instance selection
// =============================================================================

// InstanceListModel is the bubbletea model for interactive instance
// selection. Unparseable files are listed but cannot be selected.
type InstanceListModel struct {
	Entries  []InstanceEntry
	Cursor   int
	Selected *InstanceEntry
	Height   int
	Offset   int
}

// NewInstanceListModel creates a new instance list model.
func NewInstanceListModel(entries []InstanceEntry) InstanceListModel {
	return InstanceListModel{
		Entries: entries,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m InstanceListModel) Init() tea.Cmd {
	return nil
}

func (m InstanceListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			entry := m.Entries[m.Cursor]
			if entry.Err != nil {
				return m, nil
			}
			m.Selected = &entry
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m InstanceListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Instance"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		cities := "—"
		if e.Err == nil {
			cities = strconv.Itoa(e.Cities)
		}

		format := string(e.Format)
		if e.Err != nil {
			format = "invalid"
		}

		rows = append(rows, []string{cursor, e.Name, cities, format})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Instance", "Cities", "Format").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Entries) {
				return lipgloss.NewStyle()
			}
			e := m.Entries[actualIdx]
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if col == 3 {
				base = base.Foreground(colorDim)
			}

			if e.Err != nil {
				if isCurrent {
					return base.Foreground(colorDim).Bold(true)
				}
				return base.Foreground(colorDim)
			}
			if isCurrent {
				if col != 3 {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Bold(true)
			}
			if col != 3 {
				return base.Foreground(colorWhite)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}
