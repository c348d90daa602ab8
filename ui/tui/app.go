// Package tui is the interactive terminal dashboard.
package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"hwmonitor/internal/control"
	"hwmonitor/internal/engine"
	"hwmonitor/internal/output"
	"hwmonitor/internal/simulator"
	"hwmonitor/ui/console"
	"hwmonitor/ui/tui/components"
	"hwmonitor/ui/tui/state"
	"hwmonitor/ui/tui/views"
)

const (
	maxConsoleLogs = 100
	ambientStep    = 1.0
)

// Source produces polls. *database.DataWorker implements it.
type Source interface {
	PullOnce(ctx context.Context) (*output.PipelinePayload, error)
	Paused() bool
}

// Settings exposes the generator knobs. *simulator.Simulator implements it.
type Settings interface {
	LoadMode() simulator.LoadMode
	AmbientTemperature() float64
	UpdateInterval() time.Duration
}

// Deps wires the model to the rest of the program.
type Deps struct {
	Source     Source
	Settings   Settings
	Controller *control.Controller
	Checks     engine.Config
}

// MainModel is the Bubble Tea Model acting as the Controller
type MainModel struct {
	deps           Deps
	state          state.AppState
	spinner        spinner.Model
	widgets        map[string]*components.MetricWidget
	menuCursor     int
	animCursor     float64
	velocity       float64 // Physics velocity
	spring         harmonica.Spring
	consoleScrollY int
	mouseX         int
	mouseY         int
	quitting       bool
	width          int
	height         int
}

// Messages
type TickMsg time.Time
type AnimateMsg time.Time
type PayloadLoadedMsg struct {
	Payload *output.PipelinePayload
	Err     error
}

// Chart keys.
const (
	chartCPUTemp  = "cpu_temp"
	chartCPUUsage = "cpu_usage"
	chartGPUTemp  = "gpu_temp"
	chartGPUUsage = "gpu_usage"
	chartMemUsage = "mem_usage"
	chartStorage  = "storage_temp"
	chartBoard    = "board_temp"
	chartFanRPM   = "fan_rpm"
)

// pageCharts lists the charts shown on each detail page.
var pageCharts = map[state.Page][]string{
	state.PageCPU:     {chartCPUTemp, chartCPUUsage},
	state.PageGPU:     {chartGPUTemp, chartGPUUsage},
	state.PageStorage: {chartMemUsage, chartStorage},
	state.PageCooling: {chartBoard, chartFanRPM},
}

var pageDetails = map[state.Page]struct {
	title string
	kinds []simulator.Kind
}{
	state.PageCPU:     {"Processor Telemetry", []simulator.Kind{simulator.KindCPU}},
	state.PageGPU:     {"Graphics Telemetry", []simulator.Kind{simulator.KindGPU}},
	state.PageStorage: {"Memory & Storage", []simulator.Kind{simulator.KindMemory, simulator.KindStorage}},
	state.PageCooling: {"Board & Cooling", []simulator.Kind{simulator.KindMotherboard, simulator.KindFans}},
}

// cardPages maps a dashboard card to the detail page it opens.
var cardPages = map[simulator.Kind]state.Page{
	simulator.KindCPU:         state.PageCPU,
	simulator.KindGPU:         state.PageGPU,
	simulator.KindMemory:      state.PageStorage,
	simulator.KindStorage:     state.PageStorage,
	simulator.KindMotherboard: state.PageCooling,
	simulator.KindFans:        state.PageCooling,
}

func newWidgets(w, h int) map[string]*components.MetricWidget {
	return map[string]*components.MetricWidget{
		chartCPUTemp:  components.NewMetricWidget("CPU Temperature", "°C", w, h, 100),
		chartCPUUsage: components.NewMetricWidget("CPU Usage", "%", w, h, 100),
		chartGPUTemp:  components.NewMetricWidget("GPU Temperature", "°C", w, h, 100),
		chartGPUUsage: components.NewMetricWidget("GPU Usage", "%", w, h, 100),
		chartMemUsage: components.NewMetricWidget("Memory Usage", "%", w, h, 100),
		chartStorage:  components.NewMetricWidget("Storage Temperature", "°C", w, h, 100),
		chartBoard:    components.NewMetricWidget("Board Temperature", "°C", w, h, 100),
		chartFanRPM:   components.NewMetricWidget("Fan Speed", " RPM", w, h, 3000),
	}
}

func InitialModel(deps Deps) MainModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	// Higher frequency for a fast response, damping below 1 to avoid overshoot.
	spring := harmonica.NewSpring(harmonica.FPS(60), 12.0, 0.9)

	if deps.Checks == (engine.Config{}) {
		deps.Checks = engine.DefaultConfig()
	}

	m := MainModel{
		deps:    deps,
		spinner: s,
		widgets: newWidgets(30, 10),
		spring:  spring,
		state: state.AppState{
			CurrentPage: state.PageMenu,
		},
	}
	m.refreshSettings()
	return m
}

func (m *MainModel) Init() tea.Cmd {
	zone.NewGlobal()
	return tea.Batch(
		m.spinner.Tick,
		fetchPayloadCmd(m.deps.Source),
		m.tickCmd(),
		animateCmd(),
	)
}

// Commands
func (m *MainModel) tickCmd() tea.Cmd {
	interval := time.Second
	if m.deps.Settings != nil {
		interval = m.deps.Settings.UpdateInterval()
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animateCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*16, func(t time.Time) tea.Msg {
		return AnimateMsg(t)
	})
}

func fetchPayloadCmd(src Source) tea.Cmd {
	if src == nil {
		return nil
	}
	return func() tea.Msg {
		p, err := src.PullOnce(context.Background())
		return PayloadLoadedMsg{Payload: p, Err: err}
	}
}

func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case AnimateMsg:
		return m.handleAnimateMsg(msg)

	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)

	case TickMsg:
		return m.handleTickMsg(msg)

	case PayloadLoadedMsg:
		return m.handlePayloadLoadedMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	}

	return m, nil
}

func (m *MainModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	if cmd, ok := m.controlFor(key); ok {
		m.apply(cmd)
		return m, nil
	}

	if m.state.CurrentPage == state.PageMenu {
		switch key {
		case "up", "k":
			if m.menuCursor > 0 {
				m.menuCursor--
			}
		case "down", "j":
			if m.menuCursor < len(views.MenuOptions)-1 {
				m.menuCursor++
			}
		case "enter":
			m.navigateTo(m.menuCursor)
		}
		return m, nil
	}

	if m.state.CurrentPage == state.PageConsole {
		switch key {
		case "up", "k":
			if m.consoleScrollY > 0 {
				m.consoleScrollY--
			}
		case "down", "j":
			m.consoleScrollY++
		}
	}

	if key == "b" || key == "esc" || key == "backspace" {
		m.state.CurrentPage = state.PageMenu
		m.consoleScrollY = 0
		return m, nil
	}

	return m, nil
}

// controlFor maps a key to a generator command.
func (m *MainModel) controlFor(key string) (control.Command, bool) {
	switch key {
	case "n":
		return control.SetLoad(simulator.LoadNormal), true
	case "g":
		return control.SetLoad(simulator.LoadGaming), true
	case "s":
		return control.SetLoad(simulator.LoadStress), true
	case "+", "=":
		return control.SetAmbient(m.state.Settings.Ambient + ambientStep), true
	case "-", "_":
		return control.SetAmbient(m.state.Settings.Ambient - ambientStep), true
	case "]":
		return control.SetInterval(m.state.Settings.Interval + time.Second), true
	case "[":
		return control.SetInterval(m.state.Settings.Interval - time.Second), true
	case "r":
		return control.Command{Action: control.ActionReset}, true
	case "p":
		if m.state.Settings.Paused {
			return control.Command{Action: control.ActionResume}, true
		}
		return control.Command{Action: control.ActionPause}, true
	}
	return control.Command{}, false
}

func (m *MainModel) apply(cmd control.Command) {
	if m.deps.Controller == nil {
		m.state.Notice = "controls disabled"
		return
	}
	if err := m.deps.Controller.Apply(cmd); err != nil {
		m.state.Err = err
		return
	}
	m.state.Err = nil
	if cmd.Action == control.ActionReset {
		for _, w := range m.widgets {
			w.Reset()
		}
	}
	m.refreshSettings()
	m.state.Notice = fmt.Sprintf("%s applied: load %s, ambient %.0f°C, every %s",
		cmd.Action, m.state.Settings.Load, m.state.Settings.Ambient, m.state.Settings.Interval)
}

func (m *MainModel) refreshSettings() {
	if m.deps.Settings != nil {
		m.state.Settings.Load = m.deps.Settings.LoadMode()
		m.state.Settings.Ambient = m.deps.Settings.AmbientTemperature()
		m.state.Settings.Interval = m.deps.Settings.UpdateInterval()
	}
	if m.deps.Source != nil {
		m.state.Settings.Paused = m.deps.Source.Paused()
	}
}

func (m *MainModel) navigateTo(cursor int) {
	switch cursor {
	case 0:
		m.state.CurrentPage = state.PageConsole
	case 1:
		m.state.CurrentPage = state.PageDashboard
	case 2:
		m.state.CurrentPage = state.PageCPU
	case 3:
		m.state.CurrentPage = state.PageGPU
	case 4:
		m.state.CurrentPage = state.PageStorage
	case 5:
		m.state.CurrentPage = state.PageCooling
	}
}

func (m *MainModel) handleAnimateMsg(msg AnimateMsg) (tea.Model, tea.Cmd) {
	var v float64 = m.velocity
	m.animCursor, v = m.spring.Update(m.animCursor, float64(m.menuCursor), v)
	m.velocity = v
	return m, animateCmd()
}

func (m *MainModel) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	newW := msg.Width/2 - 6
	if newW > 10 {
		for _, w := range m.widgets {
			w.Resize(newW, 10)
		}
	}
	return m, nil
}

func (m *MainModel) handleTickMsg(msg TickMsg) (tea.Model, tea.Cmd) {
	m.refreshSettings()
	if m.state.Settings.Paused {
		return m, m.tickCmd()
	}
	return m, tea.Batch(
		fetchPayloadCmd(m.deps.Source),
		m.tickCmd(),
	)
}

func (m *MainModel) handlePayloadLoadedMsg(msg PayloadLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.state.Err = msg.Err
		return m, nil
	}

	p := msg.Payload
	snap := p.Snapshot
	m.state.Err = nil
	m.state.Payload = p
	m.state.View = output.BuildDashboard(p.Checks, snap, m.deps.Checks)
	m.state.LastUpdate = snap.Timestamp

	m.widgets[chartCPUTemp].Push(snap.CPU.Temperature)
	m.widgets[chartCPUUsage].Push(snap.CPU.Usage)
	m.widgets[chartGPUTemp].Push(snap.GPU.Temperature)
	m.widgets[chartGPUUsage].Push(snap.GPU.Usage)
	m.widgets[chartMemUsage].Push(snap.Memory.Usage)
	m.widgets[chartStorage].Push(snap.Storage.Temperature)
	m.widgets[chartBoard].Push(snap.Motherboard.Temperature)
	m.widgets[chartFanRPM].Push(snap.Fans.RPM)

	logLine := fmt.Sprintf("[%s] %-8s CPU %.1f°C %.1f%% | GPU %.1f°C %.1f%% | RAM %.1f%% | %.0fW | %s",
		snap.Timestamp.Format("15:04:05"),
		snap.System.Status,
		snap.CPU.Temperature, snap.CPU.Usage,
		snap.GPU.Temperature, snap.GPU.Usage,
		snap.Memory.Usage,
		snap.System.TotalPower,
		snap.System.Load,
	)
	m.state.ConsoleLogs = append(m.state.ConsoleLogs, logLine)
	if len(m.state.ConsoleLogs) > maxConsoleLogs {
		m.state.ConsoleLogs = m.state.ConsoleLogs[1:]
	}
	m.refreshSettings()
	return m, nil
}

func (m *MainModel) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.mouseX = msg.X
	m.mouseY = msg.Y

	if msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	switch m.state.CurrentPage {
	case state.PageMenu:
		for i := range views.MenuOptions {
			if zone.Get(views.MenuZoneID(i)).InBounds(msg) {
				m.menuCursor = i
				m.navigateTo(i)
				return m, nil
			}
		}
	case state.PageDashboard:
		for _, kind := range simulator.Kinds {
			if zone.Get(views.CardZoneID(kind)).InBounds(msg) {
				m.state.CurrentPage = cardPages[kind]
				return m, nil
			}
		}
	}
	return m, nil
}

// consoleContent is the plain report of the latest poll followed by the poll log.
func (m *MainModel) consoleContent() string {
	var buf bytes.Buffer
	if m.state.HasData() {
		console.NewPrinter(&buf).WithColor(false).Print(m.state.View)
	}
	buf.WriteString(strings.Join(m.state.ConsoleLogs, "\n"))
	return buf.String()
}

func (m *MainModel) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	switch m.state.CurrentPage {
	case state.PageMenu:
		return views.RenderMenu(m.width, m.height, m.menuCursor, m.animCursor, m.mouseX, m.mouseY)
	case state.PageDashboard:
		return views.RenderDashboard(m.state, m.spinner.View())
	case state.PageConsole:
		return views.RenderConsole(m.state, m.consoleContent(), m.width, m.height, m.consoleScrollY)
	default:
		d, ok := pageDetails[m.state.CurrentPage]
		if !ok {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
				lipgloss.NewStyle().Bold(true).Render("Unknown page\n\nPress 'b' to go back"),
			)
		}
		var charts []string
		for _, key := range pageCharts[m.state.CurrentPage] {
			charts = append(charts, m.widgets[key].View())
		}
		return views.RenderDetail(m.state, d.title, d.kinds, m.spinner.View(), charts, m.width, m.height)
	}
}

func Start(deps Deps) error {
	m := InitialModel(deps)
	p := tea.NewProgram(
		&m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
