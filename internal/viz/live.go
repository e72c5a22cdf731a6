package viz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/odeint/internal/dynamo"
	"github.com/san-kum/odeint/internal/integrators"
)

const (
	defaultBatch    = 50
	historyCapacity = 600
	barWidth        = 40
)

// ErrInterrupted is returned by Live.Result when the user quit early.
var ErrInterrupted = errors.New("run interrupted")

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// LiveOptions tunes a Live view. Zero values pick defaults.
type LiveOptions struct {
	// Batch is the number of advances per frame.
	Batch    int
	Column   int
	MaxSteps int
	Observer dynamo.Observer
	Frame    time.Duration
}

// Live is a bubbletea model that drives an integrator a batch of steps per
// frame and shows its progress towards tEnd.
type Live struct {
	it        integrators.Integrator
	opts      LiveOptions
	t0, tEnd  float64
	t         float64
	x         dynamo.State
	steps     int
	history   []float64
	err       error
	quit      bool
	started   time.Time
	elapsed   time.Duration
	observed  bool
	interrupt bool
}

func NewLive(it integrators.Integrator, tEnd float64, opts LiveOptions) *Live {
	if opts.Batch <= 0 {
		opts.Batch = defaultBatch
	}
	if opts.Frame <= 0 {
		opts.Frame = time.Second / 30
	}
	t0, x0 := it.Trajectory().Last()
	if opts.Column < 0 || opts.Column >= len(x0) {
		opts.Column = 0
	}
	return &Live{
		it:      it,
		opts:    opts,
		t0:      t0,
		tEnd:    tEnd,
		t:       t0,
		x:       x0.Clone(),
		history: make([]float64, 0, historyCapacity),
	}
}

func (m *Live) tick() tea.Cmd {
	return tea.Tick(m.opts.Frame, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Live) Init() tea.Cmd {
	return m.tick()
}

func (m *Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.interrupt = true
			m.quit = true
			return m, tea.Quit
		}
	case TickMsg:
		if m.quit {
			return m, nil
		}
		m.advance()
		if m.quit {
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

// advance runs one batch, mirroring integrators.Run's bookkeeping.
func (m *Live) advance() {
	if !m.observed {
		m.started = time.Now()
		m.observed = true
		m.push(m.t, m.x)
	}

	for i := 0; i < m.opts.Batch; i++ {
		if m.it.Done() {
			m.finish(nil)
			return
		}
		if m.opts.MaxSteps > 0 && m.steps >= m.opts.MaxSteps {
			m.finish(fmt.Errorf("%w: step limit %d reached", dynamo.ErrNotConverged, m.opts.MaxSteps))
			return
		}
		t, x, err := m.it.Advance()
		if err != nil {
			m.finish(err)
			return
		}
		m.steps++
		m.push(t, x)
	}
	if m.it.Done() {
		m.finish(nil)
	}
}

func (m *Live) push(t float64, x dynamo.State) {
	m.t, m.x = t, x
	if m.opts.Observer != nil {
		m.opts.Observer.OnStep(t, x)
	}
	if m.opts.Column >= len(x) {
		return
	}
	if len(m.history) == historyCapacity {
		copy(m.history, m.history[1:])
		m.history = m.history[:historyCapacity-1]
	}
	m.history = append(m.history, x[m.opts.Column])
}

func (m *Live) finish(err error) {
	if err != nil {
		lastT, lastX := m.it.Trajectory().Last()
		m.err = &dynamo.StepError{Step: m.steps, Time: lastT, State: lastX.Clone(), Wrapped: err}
	}
	m.elapsed = time.Since(m.started)
	m.quit = true
}

// Done reports whether the view has stopped driving the integrator.
func (m *Live) Done() bool { return m.quit }

func (m *Live) Steps() int { return m.steps }

func (m *Live) Elapsed() time.Duration { return m.elapsed }

// Result follows integrators.Run: fatal errors return a nil trajectory and
// recoverable ones the samples recorded so far.
func (m *Live) Result() (*dynamo.Trajectory, error) {
	if m.interrupt {
		return m.it.Trajectory(), ErrInterrupted
	}
	if m.err != nil && !integrators.Recoverable(m.err) {
		return nil, m.err
	}
	return m.it.Trajectory(), m.err
}

// Progress is the fraction of [t0, tEnd] covered so far.
func (m *Live) Progress() float64 {
	span := m.tEnd - m.t0
	if span <= 0 {
		return 1
	}
	p := (m.t - m.t0) / span
	return max(0, min(p, 1))
}

func (m *Live) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.it.Name())) + "\n")

	status := StatusRunning.Render("RUNNING")
	switch {
	case m.interrupt:
		status = Subtle.Render("INTERRUPTED")
	case m.err != nil:
		status = StatusFailed.Render("FAILED")
	case m.quit:
		status = StatusRunning.Render("DONE")
	}
	s.WriteString(status + "\n\n")
	s.WriteString(ProgressBar(m.Progress(), barWidth) + fmt.Sprintf(" %5.1f%%\n\n", 100*m.Progress()))

	stats := m.it.Trajectory().Stats
	s.WriteString(MetricLabel.Render("t") + MetricValue.Render(fmt.Sprintf("%.6g / %.6g", m.t, m.tEnd)) + "\n")
	s.WriteString(MetricLabel.Render("x") + MetricValue.Render(formatState(m.x)) + "\n")
	s.WriteString(MetricLabel.Render("steps") + MetricValue.Render(fmt.Sprintf("%d", m.steps)) + "\n")
	s.WriteString(MetricLabel.Render("evaluations") + MetricValue.Render(fmt.Sprintf("%d", stats.Evaluations)) + "\n")
	s.WriteString(MetricLabel.Render("rejected") + MetricValue.Render(fmt.Sprintf("%d", stats.Rejected)) + "\n")

	if data := plottable(m.history); len(data) > 1 {
		chart := asciigraph.Plot(data, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption(columnCaption(m.opts.Column)))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if m.err != nil {
		s.WriteString(StatusFailed.Render(m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("q: quit"))
	return s.String()
}
