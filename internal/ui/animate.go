package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// FrameInfo describes one finished present.
type FrameInfo struct {
	Client  [2]int // requested width, height
	Window  [2]int // authoritative width, height at present time
	Elapsed time.Duration
}

// FrameFunc draws and presents frame n.
type FrameFunc func(n int) (FrameInfo, error)

type tickMsg struct{}

// FrameMsg reports the outcome of a FrameFunc call.
type FrameMsg struct {
	N    int
	Info FrameInfo
	Err  error
}

// AnimateModel drives a present loop. Frames are strictly sequential: the
// next tick is only scheduled once the previous frame message arrives.
type AnimateModel struct {
	render   FrameFunc
	interval time.Duration
	limit    int
	spinner  spinner.Model

	frames int
	last   FrameInfo
	total  time.Duration
	err    error
	paused bool
	done   bool
	busy   bool // a frame is being rendered
}

// NewAnimateModel creates a model presenting at fps until limit frames have
// been shown (limit 0 runs until quit).
func NewAnimateModel(render FrameFunc, fps, limit int) *AnimateModel {
	if fps <= 0 {
		fps = 30
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return &AnimateModel{
		render:   render,
		interval: time.Second / time.Duration(fps),
		limit:    limit,
		spinner:  s,
	}
}

func (m *AnimateModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.frame())
}

func (m *AnimateModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m *AnimateModel) frame() tea.Cmd {
	if m.busy {
		return nil
	}
	m.busy = true

	render, n := m.render, m.frames
	return func() tea.Msg {
		info, err := render(n)
		return FrameMsg{N: n, Info: info, Err: err}
	}
}

func (m *AnimateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.done = true
			return m, tea.Quit
		case " ", "space":
			m.paused = !m.paused
			if !m.paused {
				return m, m.frame()
			}
		}

	case tickMsg:
		if m.paused || m.done {
			return m, nil
		}
		return m, m.frame()

	case FrameMsg:
		m.busy = false
		if msg.Err != nil {
			m.err = msg.Err
			m.done = true
			return m, tea.Quit
		}
		m.frames++
		m.last = msg.Info
		m.total += msg.Info.Elapsed
		if m.limit > 0 && m.frames >= m.limit {
			m.done = true
			return m, tea.Quit
		}
		if m.paused {
			return m, nil
		}
		return m, m.tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// Frames returns the number of frames presented.
func (m *AnimateModel) Frames() int {
	return m.frames
}

// Err returns the error that stopped the loop, if any.
func (m *AnimateModel) Err() error {
	return m.err
}

// AveragePresent returns the mean present duration.
func (m *AnimateModel) AveragePresent() time.Duration {
	if m.frames == 0 {
		return 0
	}
	return m.total / time.Duration(m.frames)
}

func (m *AnimateModel) View() string {
	var b strings.Builder

	status := m.spinner.View() + " presenting"
	if m.paused {
		status = WarningStyle.Render(IconWarning + " paused")
	}
	if m.done {
		status = SuccessStyle.Render(IconSuccess + " done")
	}
	if m.err != nil {
		status = ErrorStyle.Render(IconError + " " + m.err.Error())
	}

	b.WriteString(FormatHeader("softbuf animate"))
	b.WriteString("\n")
	b.WriteString(status)
	b.WriteString("\n\n")
	b.WriteString(FormatField("frames", fmt.Sprintf("%d", m.frames)))
	b.WriteString("\n")
	b.WriteString(FormatField("client", FormatSize(m.last.Client[0], m.last.Client[1])))
	b.WriteString("\n")
	b.WriteString(FormatField("window", FormatSize(m.last.Window[0], m.last.Window[1])))
	b.WriteString("\n")
	b.WriteString(FormatField("present", m.AveragePresent().String()))
	b.WriteString("\n\n")
	b.WriteString(FormatControl("space", "pause") + "  " + FormatControl("q", "quit"))
	b.WriteString("\n")

	return b.String()
}
