package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeplay"
	"github.com/SeamusWaldron/cubeplay/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive scramble and solve mode",
	Long: `Start an interactive TUI for scrambling and solving a virtual cube.

Type a scramble in standard face notation, press Enter to apply it, then
press Ctrl+S to request a solution from the solver and watch it play back.

Keyboard shortcuts:
  Enter   - Apply the typed scramble
  Ctrl+S  - Request and play back a solution
  Esc     - Quit

Successful solves are recorded in the history database.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().DurationVar(&playStepDelay, "step-delay", defaultStepDelay, "Pause between animated moves")
}

var playStepDelay time.Duration

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	inputStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Messages
type tickMsg time.Time
type scrambleDoneMsg struct{ err error }
type solveDoneMsg struct{ err error }
type solveRecordedMsg struct{ err error }

// Model
type playModel struct {
	session  *cubeplay.Session
	animator *Animator
	repo     *storage.SolveRepository
	baseURL  string

	input    string
	err      error
	width    int
	height   int
	quitting bool
}

func newPlayModel(session *cubeplay.Session, animator *Animator, repo *storage.SolveRepository, baseURL string) *playModel {
	return &playModel{
		session:  session,
		animator: animator,
		repo:     repo,
		baseURL:  baseURL,
	}
}

func (m *playModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *playModel) tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *playModel) scrambleCmd() tea.Cmd {
	input := m.input
	return func() tea.Msg {
		return scrambleDoneMsg{err: m.session.Scramble(context.Background(), input)}
	}
}

func (m *playModel) solveCmd() tea.Cmd {
	return func() tea.Msg {
		return solveDoneMsg{err: m.session.Solve(context.Background())}
	}
}

// recordSolveCmd persists a successful solve to the history database.
func (m *playModel) recordSolveCmd() tea.Cmd {
	scramble := m.session.CommittedScramble()
	solution := m.session.LastSolution()
	roundTrip := m.session.LastRoundTrip()
	return func() tea.Msg {
		if m.repo == nil {
			return solveRecordedMsg{}
		}
		_, err := m.repo.Create(scramble, solution, roundTrip, m.baseURL)
		return solveRecordedMsg{err: err}
	}
}

// recordFailureCmd persists a failed solver request with its error text.
func (m *playModel) recordFailureCmd(solveErr error) tea.Cmd {
	scramble := m.session.CommittedScramble()
	return func() tea.Msg {
		if m.repo == nil {
			return solveRecordedMsg{}
		}
		_, err := m.repo.CreateFailed(scramble, 0, m.baseURL, solveErr.Error())
		return solveRecordedMsg{err: err}
	}
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			if m.session.ScrambleEnabled() {
				m.err = nil
				return m, m.scrambleCmd()
			}

		case "ctrl+s":
			if m.session.SolveEnabled() {
				m.err = nil
				return m, m.solveCmd()
			}

		case "backspace":
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}

		default:
			if msg.Type == tea.KeyRunes || msg.String() == " " {
				m.input += string(msg.Runes)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, m.tickCmd()

	case scrambleDoneMsg:
		// ErrBusy and ErrEmptyScramble are reflected in the status line.
		if msg.err != nil && msg.err != cubeplay.ErrBusy && msg.err != cubeplay.ErrEmptyScramble {
			m.err = msg.err
		}

	case solveDoneMsg:
		if msg.err == nil {
			return m, m.recordSolveCmd()
		}
		if msg.err != cubeplay.ErrBusy && msg.err != cubeplay.ErrNoScramble {
			m.err = msg.err
			return m, m.recordFailureCmd(msg.err)
		}

	case solveRecordedMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("failed to record solve: %w", msg.err)
		}
	}

	return m, nil
}

func (m *playModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder

	// Title
	b.WriteString(titleStyle.Render("Cube Scramble Player"))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("Solver: %s", m.baseURL)))
	b.WriteString("\n\n")

	// Cube
	cubeState, algorithm, cursor, playing := m.animator.Snapshot()
	b.WriteString(cubeState.String())
	b.WriteString("\n")

	// Algorithm with playback cursor
	if algorithm != "" {
		fields := strings.Fields(algorithm)
		var rendered []string
		for i, f := range fields {
			if i < cursor {
				rendered = append(rendered, moveStyle.Render(f))
			} else if i == cursor && playing {
				rendered = append(rendered, cursorStyle.Render(f))
			} else {
				rendered = append(rendered, f)
			}
		}
		b.WriteString(fmt.Sprintf("Playing: %s  (%d/%d)\n", strings.Join(rendered, " "), cursor, len(fields)))
		b.WriteString("\n")
	}

	// Scramble input
	b.WriteString(fmt.Sprintf("Scramble: %s\n", inputStyle.Render(m.input+"_")))
	b.WriteString("\n")

	// Status and timing from the session
	if status := m.session.Status(); status != "" {
		b.WriteString(statusStyle.Render(status))
		b.WriteString("\n")
	}
	if timing := m.session.Timing(); timing != "" {
		b.WriteString(statusStyle.Render(timing))
		b.WriteString("\n")
	}

	// Error
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	// Help reflects which actions are currently available
	var actions []string
	if m.session.ScrambleEnabled() {
		actions = append(actions, "Enter=scramble")
	}
	if m.session.SolveEnabled() {
		actions = append(actions, "Ctrl+S=solve")
	}
	actions = append(actions, "Esc=quit")
	b.WriteString(helpStyle.Render("Keys: " + strings.Join(actions, "  ")))
	b.WriteString("\n")

	return b.String()
}

func runPlay(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	animator := NewAnimator()
	animator.SetStepDelay(playStepDelay)

	solver := cubeplay.NewSolverClient(solverURL)
	session := cubeplay.NewSession(animator, solver)
	repo := storage.NewSolveRepository(db)

	model := newPlayModel(session, animator, repo, solver.BaseURL())
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
