// internal/tui/model.go
package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tamzrod/padlink/internal/config"
	"github.com/tamzrod/padlink/internal/controller"
	"github.com/tamzrod/padlink/internal/sampler"
	"github.com/tamzrod/padlink/internal/uart"
)

// Controller is what the presentation layer drives.
// It holds no decision logic of its own.
type Controller interface {
	Tick()
	Snapshot() controller.Snapshot
	ListPorts() ([]uart.Port, error)
	Connect(path string, baud int) error
	Disconnect() error
	SetReconnectMode(enabled bool)
}

var (
	okStyle   = lipgloss.NewStyle().Background(lipgloss.Color("2")).Foreground(lipgloss.Color("15")).Padding(0, 1)
	badStyle  = lipgloss.NewStyle().Background(lipgloss.Color("1")).Foreground(lipgloss.Color("15")).Padding(0, 1)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	axisNames = [sampler.MaxAxes]string{"LX", "LY", "RX", "RY", "L2", "R2"}
)

type tickMsg time.Time

// portItem implements list.Item
type portItem struct{ uart.Port }

func (p portItem) Title() string       { return p.Port.Description }
func (p portItem) Description() string { return p.Path }
func (p portItem) FilterValue() string { return p.Path }

// Model is the Bubble Tea model. Every controller call happens in Update,
// so ticks and user operations never overlap.
type Model struct {
	ctl       Controller
	interval  time.Duration
	baud      int
	observers []func(controller.Snapshot)

	ports list.Model
	snap  controller.Snapshot
	err   string
}

func New(ctl Controller, interval time.Duration, baud int, observers ...func(controller.Snapshot)) Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	ports := list.New([]list.Item{}, delegate, 40, 10)
	ports.Title = "Serial ports"
	ports.SetShowStatusBar(false)
	ports.SetShowHelp(false)
	ports.SetFilteringEnabled(false)

	m := Model{
		ctl:       ctl,
		interval:  interval,
		baud:      baud,
		observers: observers,
		ports:     ports,
		snap:      ctl.Snapshot(),
	}
	m.scanPorts()
	return m
}

func (m Model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.ctl.Tick()
		m.snap = m.ctl.Snapshot()
		for _, fn := range m.observers {
			fn(m.snap)
		}
		return m, tickCmd(m.interval)

	case tea.WindowSizeMsg:
		m.ports.SetSize(min(60, msg.Width), max(6, msg.Height-16))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			m.toggleConnection()
			return m, nil
		case "d":
			m.setErr(m.ctl.Disconnect())
			m.snap = m.ctl.Snapshot()
			return m, nil
		case "a":
			m.ctl.SetReconnectMode(!m.snap.Reconnect)
			m.snap = m.ctl.Snapshot()
			return m, nil
		case "s":
			m.scanPorts()
			return m, nil
		case "+", "-":
			m.baud = stepBaud(m.baud, msg.String() == "+")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.ports, cmd = m.ports.Update(msg)
	return m, cmd
}

// toggleConnection mirrors the connect button: disconnect when connected,
// otherwise connect the selected port at the selected baud.
func (m *Model) toggleConnection() {
	if m.snap.Connection == uart.Connected {
		m.setErr(m.ctl.Disconnect())
	} else if item, ok := m.ports.SelectedItem().(portItem); ok {
		m.setErr(m.ctl.Connect(item.Path, m.baud))
	} else {
		m.err = "no port selected"
	}
	m.snap = m.ctl.Snapshot()
}

func (m *Model) scanPorts() {
	ports, err := m.ctl.ListPorts()
	m.setErr(err)

	items := make([]list.Item, 0, len(ports))
	for _, p := range ports {
		items = append(items, portItem{p})
	}
	m.ports.SetItems(items)
}

func (m *Model) setErr(err error) {
	if err != nil {
		m.err = err.Error()
	} else {
		m.err = ""
	}
}

func stepBaud(cur int, up bool) int {
	i := slices.Index(config.StandardBauds, cur)
	switch {
	case i < 0:
		return config.DefaultBaud
	case up && i < len(config.StandardBauds)-1:
		return config.StandardBauds[i+1]
	case !up && i > 0:
		return config.StandardBauds[i-1]
	default:
		return cur
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(statusLine(m.snap))
	b.WriteString("\n\n")
	b.WriteString(boxStyle.Render(stateView(m.snap)))
	b.WriteString("\n")
	b.WriteString(m.ports.View())
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Baud: %d   Auto-reconnect: %v\n", m.baud, onOff(m.snap.Reconnect)))
	if m.err != "" {
		b.WriteString(errStyle.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("enter connect/disconnect • d disconnect • a auto-reconnect • s scan • +/- baud • q quit"))
	return b.String()
}

func statusLine(s controller.Snapshot) string {
	uartLabel := badStyle.Render("UART: Disconnected")
	if s.Connection == uart.Connected {
		uartLabel = okStyle.Render(fmt.Sprintf("UART: Connected %s @ %d", s.Port, s.Baud))
	}

	padLabel := badStyle.Render("Controller: Disconnected")
	if s.Device == controller.Bound {
		padLabel = okStyle.Render("Controller: " + s.DeviceName)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, uartLabel, " ", padLabel)
}

func stateView(s controller.Snapshot) string {
	if !s.HasFrame() {
		return dimStyle.Render("no controller data")
	}

	var b strings.Builder
	for i, v := range s.Fields.Axes {
		fmt.Fprintf(&b, "%s %4d  ", axisNames[i], v)
	}
	fmt.Fprintf(&b, "\nButton: %016b\n", s.Fields.Buttons)
	fmt.Fprintf(&b, "Data  : % X", s.Frame)
	fmt.Fprintf(&b, "\nSent %d  Write errors %d", s.FramesSent, s.WriteErrors)
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// Run starts the program and blocks until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
