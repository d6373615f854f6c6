// Package tui provides the Bubble Tea interactive solver.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/verte-zerg/wordhint/internal/game"
	"github.com/verte-zerg/wordhint/internal/model"
	"github.com/verte-zerg/wordhint/internal/report"
	"github.com/verte-zerg/wordhint/internal/solver"
	"github.com/verte-zerg/wordhint/internal/store"
	"github.com/verte-zerg/wordhint/internal/wordlist"
)

type phase int

const (
	phaseWord phase = iota
	phaseFeedback
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea solver UI.
type Model struct {
	cfg   model.Config
	store *store.Store
	words []string
	index *wordlist.Index
	log   *log.Logger
	color bool

	session *game.Session
	resp    solver.Response

	phase         phase
	pendingWord   string
	wordInput     textinput.Model
	feedbackInput textinput.Model
	recTable      table.Model

	status string
	errMsg string

	width  int
	height int
}

// NewModel constructs the solver UI. It resumes the active journaled game
// when it matches cfg, otherwise starts a new one. A nil store keeps games in memory.
// color selects styled feedback tiles over the plain bracketed form.
func NewModel(cfg model.Config, st *store.Store, words []string, logger *log.Logger, color bool) (*Model, error) {
	m := &Model{
		cfg:   cfg,
		store: st,
		words: words,
		index: wordlist.NewIndex(words),
		log:   logger,
		color: color,
	}
	m.wordInput = newInput("Guess: ", strings.Repeat("_", cfg.Length), cfg.Length)
	m.feedbackInput = newInput("Feedback (g/y/b): ", strings.Repeat("b", cfg.Length), cfg.Length)
	m.recTable = newRecTable()
	m.wordInput.Focus()

	ctx := context.Background()
	if st != nil {
		session, err := game.Resume(ctx, st)
		switch {
		case err == nil && session.Matches(cfg):
			m.session = session
			m.status = fmt.Sprintf("Resumed game %d", session.Game().ID)
		case err == nil:
			// A different puzzle shape was requested; abandon the stale game.
			if err := session.End(ctx, false, time.Now()); err != nil {
				return nil, err
			}
			if logger != nil {
				logger.Debug("abandoned game", "id", session.Game().ID)
			}
		case err != nil && !errors.Is(err, store.ErrNoActiveGame):
			return nil, err
		}
	}
	if m.session == nil {
		if err := m.startGame(ctx); err != nil {
			return nil, err
		}
	}
	m.refresh()
	return m, nil
}

func newInput(prompt, placeholder string, limit int) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = placeholder
	input.CharLimit = limit
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func newRecTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 3},
			{Title: "Word", Width: 12},
			{Title: "Score", Width: 7},
		}),
		table.WithHeight(solver.MaxRecommendations+1),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true)
	styles.Selected = styles.Cell
	t.SetStyles(styles)
	return t
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+n":
			m.newGame()
			return m, nil
		case "esc":
			if m.phase == phaseFeedback {
				m.backToWord()
				return m, nil
			}
			return m, tea.Quit
		}
		if m.session.Game().Finished() {
			if msg.String() == "enter" {
				m.newGame()
			}
			return m, nil
		}
		if m.phase == phaseWord {
			return m.updateWord(msg)
		}
		return m.updateFeedback(msg)
	}

	var cmd tea.Cmd
	if m.phase == phaseWord {
		m.wordInput, cmd = m.wordInput.Update(msg)
	} else {
		m.feedbackInput, cmd = m.feedbackInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateWord(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if len(m.resp.Recommendations) > 0 {
			m.wordInput.SetValue(m.resp.Recommendations[0].Word)
			m.wordInput.CursorEnd()
		}
		return m, nil
	case "enter":
		m.submitWord()
		return m, nil
	}
	var cmd tea.Cmd
	m.wordInput, cmd = m.wordInput.Update(msg)
	return m, cmd
}

func (m *Model) updateFeedback(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		m.submitFeedback()
		return m, nil
	}
	var cmd tea.Cmd
	m.feedbackInput, cmd = m.feedbackInput.Update(msg)
	return m, cmd
}

func (m *Model) submitWord() {
	word := strings.ToLower(strings.TrimSpace(m.wordInput.Value()))
	if n := utf8.RuneCountInString(word); n != m.cfg.Length {
		m.errMsg = fmt.Sprintf("guess must have %d letters, got %d", m.cfg.Length, n)
		return
	}
	m.errMsg = ""
	m.status = ""
	if !m.index.Contains(word) {
		m.status = fmt.Sprintf("%q is not in the word list", word)
	}
	m.pendingWord = word
	m.phase = phaseFeedback
	m.wordInput.Blur()
	m.feedbackInput.Reset()
	m.feedbackInput.Focus()
}

func (m *Model) submitFeedback() {
	ctx := context.Background()
	rec, err := m.session.Guess(ctx, m.pendingWord, strings.TrimSpace(m.feedbackInput.Value()), time.Now())
	if err != nil {
		m.errMsg = err.Error()
		if m.log != nil {
			m.log.Debug("guess rejected", "word", m.pendingWord, "err", err)
		}
		return
	}
	m.errMsg = ""
	m.backToWord()
	m.refresh()
	if rec.Solved() {
		m.status = fmt.Sprintf("Solved in %d guesses. Press enter for a new game.", len(m.session.Records()))
	}
}

func (m *Model) backToWord() {
	m.phase = phaseWord
	m.pendingWord = ""
	m.feedbackInput.Reset()
	m.feedbackInput.Blur()
	m.wordInput.Reset()
	m.wordInput.Focus()
}

func (m *Model) newGame() {
	ctx := context.Background()
	now := time.Now()
	if !m.session.Game().Finished() {
		if err := m.session.End(ctx, false, now); err != nil {
			m.errMsg = err.Error()
			return
		}
	}
	if err := m.startGame(ctx); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.status = "New game"
	m.errMsg = ""
	m.backToWord()
	m.refresh()
}

func (m *Model) startGame(ctx context.Context) error {
	session, err := game.Start(ctx, m.store, m.cfg, time.Now())
	if err != nil {
		return err
	}
	m.session = session
	return nil
}

func (m *Model) refresh() {
	resp, err := m.session.Next(m.words)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.resp = resp
	m.recTable.SetRows(recRows(resp.Recommendations))
}

func recRows(recs []solver.Recommendation) []table.Row {
	rows := make([]table.Row, 0, len(recs))
	for i, rec := range recs {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			rec.Word,
			fmt.Sprintf("%.2f", rec.Score),
		})
	}
	return rows
}

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderBody()
	footer := m.renderFooter()
	if m.width == 0 || m.height < 3 {
		return content + "\n\n" + footer
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderBody() string {
	title := fmt.Sprintf("wordhint · %d letters", m.cfg.Length)
	if m.cfg.Prefix != "" {
		title += fmt.Sprintf(" · prefix %q", m.cfg.Prefix)
	}
	lines := []string{titleStyle.Render(title), ""}
	for _, rec := range m.session.Records() {
		lines = append(lines, report.Tiles(rec, m.color))
	}
	if len(m.session.Records()) > 0 {
		lines = append(lines, "")
	}

	if !m.session.Game().Finished() {
		if m.phase == phaseWord {
			lines = append(lines, m.wordInput.View())
		} else {
			lines = append(lines, mutedStyle.Render("Guess: "+strings.ToUpper(m.pendingWord)), m.feedbackInput.View())
		}
	}
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	}
	if m.status != "" {
		lines = append(lines, statusStyle.Render(m.status))
	}
	lines = append(lines, "", mutedStyle.Render(fmt.Sprintf("Guess %d · %d candidates remaining", m.resp.GuessCount, m.resp.RemainingCount)))
	if m.resp.RemainingCount == 0 {
		lines = append(lines, errorStyle.Render("No words match this feedback."))
		return strings.Join(lines, "\n")
	}
	lines = append(lines, m.recTable.View())
	if len(m.resp.Fillers) > 0 {
		lines = append(lines, "", mutedStyle.Render("Fillers: ")+strings.Join(m.resp.Fillers, " "))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	segments := []string{"enter submit", "esc back/quit", "ctrl+n new game"}
	if m.phase == phaseWord {
		segments = append([]string{"tab use top pick"}, segments...)
	}
	return footerStyle.Render(strings.Join(segments, " · "))
}
