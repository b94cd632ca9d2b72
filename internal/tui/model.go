package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/couchcryptid/forecast-download-wizard/internal/domain"
	"github.com/couchcryptid/forecast-download-wizard/internal/download"
)

// Options answers the region option queries for the three region steps.
type Options interface {
	Level1Options() []string
	Level2Options(level1 string) []string
	Level3Options(level1, level2 string) []string
}

// LoadFunc loads the region options. It must not fail: an unavailable region
// table is reported as empty options.
type LoadFunc func(ctx context.Context) Options

// Downloader triggers the archive download for a selection.
type Downloader interface {
	Trigger(ctx context.Context, sel domain.Selection) (download.Result, error)
}

type regionsLoadedMsg struct{ options Options }

type downloadDoneMsg struct {
	result download.Result
	err    error
}

// Model is the bubbletea model driving the selection wizard.
type Model struct {
	ctx        context.Context
	load       LoadFunc
	downloader Downloader

	options Options
	loading bool
	busy    bool

	wizard  domain.Wizard
	choices []string
	cursor  int
	status  string
	failed  bool

	keys    keyMap
	help    help.Model
	spinner spinner.Model
}

// New creates the wizard UI. ctx bounds region loading and downloads.
func New(ctx context.Context, load LoadFunc, downloader Downloader) Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accentStyle))
	m := Model{
		ctx:        ctx,
		load:       load,
		downloader: downloader,
		loading:    true,
		wizard:     domain.NewWizard(),
		keys:       defaultKeyMap(),
		help:       help.New(),
		spinner:    sp,
	}
	m.choices = m.currentChoices()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return regionsLoadedMsg{options: m.load(m.ctx)}
	}
}

func (m Model) downloadCmd(sel domain.Selection) tea.Cmd {
	return func() tea.Msg {
		res, err := m.downloader.Trigger(m.ctx, sel)
		return downloadDoneMsg{result: res, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case regionsLoadedMsg:
		m.loading = false
		m.options = msg.options
		m.refresh()
		return m, nil

	case downloadDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.setAlert(download.AlertMessage(msg.err))
			return m, nil
		}
		m.status = fmt.Sprintf("다운로드 완료: %s (%d bytes)", msg.result.Path, msg.result.Bytes)
		m.failed = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.loading || m.busy {
		return m, nil
	}
	m.status = ""
	m.failed = false

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		m.selectCurrent()
	case key.Matches(msg, m.keys.Back):
		m.wizard = m.wizard.Back()
		m.refresh()
	case key.Matches(msg, m.keys.Toggle):
		if m.wizard.Step() == domain.StepVariables && len(m.choices) > 0 {
			if w, err := m.wizard.ToggleVariable(m.choices[m.cursor]); err == nil {
				m.wizard = w
			}
		}
	case key.Matches(msg, m.keys.Download):
		sel := m.wizard.Selection()
		if _, err := domain.NewDownloadRequest(sel); err != nil {
			m.setAlert(download.AlertMessage(err))
			return m, nil
		}
		m.busy = true
		m.status = "다운로드 중..."
		return m, tea.Batch(m.spinner.Tick, m.downloadCmd(sel))
	}
	return m, nil
}

// selectCurrent advances the wizard with the highlighted choice. Errors from
// the state machine cannot be triggered from the UI and leave it unchanged.
func (m *Model) selectCurrent() {
	if len(m.choices) == 0 {
		return
	}
	choice := m.choices[m.cursor]

	var (
		next domain.Wizard
		err  error
	)
	switch m.wizard.Step() {
	case domain.StepForecast:
		f, ok := domain.ForecastByName(choice)
		if !ok {
			return
		}
		next, err = m.wizard.SelectForecast(f)
	case domain.StepLevel1:
		next, err = m.wizard.SelectLevel1(choice)
	case domain.StepLevel2:
		next, err = m.wizard.SelectLevel2(choice)
	case domain.StepLevel3:
		next, err = m.wizard.SelectLevel3(choice)
	default:
		return
	}
	if err != nil {
		return
	}
	m.wizard = next
	m.refresh()
}

func (m *Model) setAlert(text string) {
	m.status = text
	m.failed = true
}

func (m *Model) refresh() {
	m.choices = m.currentChoices()
	m.cursor = 0
}

func (m Model) currentChoices() []string {
	sel := m.wizard.Selection()
	switch m.wizard.Step() {
	case domain.StepForecast:
		types := domain.ForecastTypes()
		names := make([]string, len(types))
		for i, f := range types {
			names[i] = f.Name
		}
		return names
	case domain.StepLevel1:
		return m.regionOptions(func(o Options) []string { return o.Level1Options() })
	case domain.StepLevel2:
		return m.regionOptions(func(o Options) []string { return o.Level2Options(sel.Level1) })
	case domain.StepLevel3:
		return m.regionOptions(func(o Options) []string { return o.Level3Options(sel.Level1, sel.Level2) })
	case domain.StepVariables:
		return domain.VariableNames(sel.Forecast.Kind)
	}
	return nil
}

func (m Model) regionOptions(f func(Options) []string) []string {
	if m.options == nil {
		return nil
	}
	return f(m.options)
}

// Wizard exposes the current state machine value.
func (m Model) Wizard() domain.Wizard { return m.wizard }
