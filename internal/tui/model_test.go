package tui

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/forecast-download-wizard/internal/domain"
	"github.com/couchcryptid/forecast-download-wizard/internal/download"
)

// --- fakes ---

type fakeDownloader struct {
	calls  []domain.Selection
	result download.Result
	err    error
}

func (f *fakeDownloader) Trigger(_ context.Context, sel domain.Selection) (download.Result, error) {
	f.calls = append(f.calls, sel)
	return f.result, f.err
}

func testIndex() *domain.RegionIndex {
	return domain.NewRegionIndex([]domain.RegionRecord{
		{Level1: "Seoul", Level2: "Jung-gu", Level3: "Pildong", ReqListLast: "2"},
		{Level1: "Seoul", Level2: "Jung-gu", Level3: "Myeong-dong", ReqListLast: "1"},
		{Level1: "Busan", Level2: "Jung-gu", Level3: "Jungang-dong", ReqListLast: "3"},
	})
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyBksp  = tea.KeyMsg{Type: tea.KeyBackspace}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m, cmd
}

func loadedModel(t *testing.T, dl Downloader) Model {
	t.Helper()
	m := New(context.Background(), func(context.Context) Options { return testIndex() }, dl)
	m, _ = send(t, m, regionsLoadedMsg{options: testIndex()})
	return m
}

// atVariables walks to the variable step with 단기예보 / Seoul / Jung-gu / Myeong-dong.
func atVariables(t *testing.T, dl Downloader) Model {
	t.Helper()
	m := loadedModel(t, dl)
	m, _ = send(t, m, keyEnter, keyDown, keyEnter, keyEnter, keyEnter)
	require.Equal(t, domain.StepVariables, m.Wizard().Step())
	return m
}

// findMsg runs cmd, expanding batches, and returns the first message of type T.
func findMsg[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	require.NotNil(t, cmd)
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case T:
			return msg
		}
	}
	var zero T
	t.Fatalf("no %T produced", zero)
	return zero
}

// --- tests ---

func TestModel_LoadingState(t *testing.T) {
	m := New(context.Background(), func(context.Context) Options { return testIndex() }, &fakeDownloader{})

	assert.Contains(t, m.View(), loadingText)

	m, _ = send(t, m, keyEnter)
	assert.Equal(t, domain.StepForecast, m.Wizard().Step(), "keys are ignored while loading")

	loaded := findMsg[regionsLoadedMsg](t, m.Init())
	m, _ = send(t, m, loaded)
	assert.NotContains(t, m.View(), loadingText)
	assert.Contains(t, m.View(), "예보 유형 선택")
}

func TestModel_LoadUsesContext(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "wizard")

	var seen any
	m := New(ctx, func(c context.Context) Options {
		seen = c.Value(ctxKey{})
		return testIndex()
	}, &fakeDownloader{})

	findMsg[regionsLoadedMsg](t, m.loadCmd())
	assert.Equal(t, "wizard", seen)
}

func TestModel_ForwardPath(t *testing.T) {
	m := loadedModel(t, &fakeDownloader{})
	assert.Equal(t, []string{"단기예보", "초단기예보", "초단기실황"}, m.choices)

	m, _ = send(t, m, keyEnter)
	assert.Equal(t, domain.StepLevel1, m.Wizard().Step())
	assert.Equal(t, []string{"Busan", "Seoul"}, m.choices)

	m, _ = send(t, m, keyDown, keyEnter)
	assert.Equal(t, "Seoul", m.Wizard().Selection().Level1)
	assert.Equal(t, []string{"Jung-gu"}, m.choices)

	m, _ = send(t, m, keyEnter)
	assert.Equal(t, []string{"Myeong-dong", "Pildong"}, m.choices)

	m, _ = send(t, m, keyDown, keyEnter)
	sel := m.Wizard().Selection()
	assert.Equal(t, domain.StepVariables, m.Wizard().Step())
	assert.Equal(t, "Pildong", sel.Level3)
	assert.Equal(t, domain.VariableNames(domain.ForecastShort), m.choices)
	assert.Equal(t, 0, m.cursor)
}

func TestModel_CursorBounds(t *testing.T) {
	m := loadedModel(t, &fakeDownloader{})

	m, _ = send(t, m, keyUp)
	assert.Equal(t, 0, m.cursor)

	m, _ = send(t, m, keyDown, keyDown, keyDown, keyDown)
	assert.Equal(t, 2, m.cursor)

	m, _ = send(t, m, runeKey('k'))
	assert.Equal(t, 1, m.cursor)
}

func TestModel_ToggleVariables(t *testing.T) {
	m := atVariables(t, &fakeDownloader{})

	m, _ = send(t, m, keySpace, keyDown, keySpace)
	assert.Equal(t, []string{"1시간기온", "풍속"}, m.Wizard().Selection().Variables)

	view := m.View()
	assert.Contains(t, view, "2 / 12개")
	assert.Contains(t, view, "선택 완료")
	assert.Contains(t, view, "Seoul › Jung-gu › Myeong-dong")

	m, _ = send(t, m, keySpace)
	assert.Equal(t, []string{"1시간기온"}, m.Wizard().Selection().Variables)
}

func TestModel_ToggleOutsideVariableStepIsIgnored(t *testing.T) {
	m := loadedModel(t, &fakeDownloader{})
	m, _ = send(t, m, keySpace)
	assert.Equal(t, domain.StepForecast, m.Wizard().Step())
	assert.Empty(t, m.Wizard().Selection().Variables)
}

func TestModel_Back(t *testing.T) {
	m := atVariables(t, &fakeDownloader{})
	m, _ = send(t, m, keySpace)

	m, _ = send(t, m, keyEsc)
	assert.Equal(t, domain.StepLevel3, m.Wizard().Step())
	assert.Empty(t, m.Wizard().Selection().Level3)
	assert.Empty(t, m.Wizard().Selection().Variables)
	assert.Equal(t, []string{"Myeong-dong", "Pildong"}, m.choices)

	m, _ = send(t, m, keyBksp, keyEsc, keyEsc)
	assert.Equal(t, domain.StepForecast, m.Wizard().Step())
	assert.Equal(t, domain.Selection{}, m.Wizard().Selection())

	m, _ = send(t, m, keyEsc)
	assert.Equal(t, domain.StepForecast, m.Wizard().Step())
}

func TestModel_DownloadSuccess(t *testing.T) {
	dl := &fakeDownloader{result: download.Result{Path: "Myeong-dong_20240101_20240131.zip", Bytes: 42}}
	m := atVariables(t, dl)
	m, _ = send(t, m, keySpace)

	m, cmd := send(t, m, runeKey('d'))
	assert.True(t, m.busy)

	done := findMsg[downloadDoneMsg](t, cmd)
	require.Len(t, dl.calls, 1)
	assert.Equal(t, "Myeong-dong", dl.calls[0].Level3)
	assert.Equal(t, []string{"1시간기온"}, dl.calls[0].Variables)

	m, _ = send(t, m, done)
	assert.False(t, m.busy)
	assert.Contains(t, m.status, "Myeong-dong_20240101_20240131.zip")
	assert.Equal(t, domain.StepVariables, m.Wizard().Step())
}

func TestModel_DownloadFailureShowsAlert(t *testing.T) {
	dl := &fakeDownloader{err: fmt.Errorf("%w: status 500", download.ErrDownloadFailed)}
	m := atVariables(t, dl)
	m, _ = send(t, m, keySpace)
	before := m.Wizard()

	m, cmd := send(t, m, runeKey('d'))
	m, _ = send(t, m, findMsg[downloadDoneMsg](t, cmd))

	assert.Equal(t, download.AlertFailed, m.status)
	assert.True(t, m.failed)
	assert.Equal(t, before, m.Wizard())
	assert.Contains(t, m.View(), download.AlertFailed)
}

func TestModel_DownloadIncompleteMakesNoRequest(t *testing.T) {
	dl := &fakeDownloader{}
	m := atVariables(t, dl)

	m, cmd := send(t, m, runeKey('d'))
	assert.Nil(t, cmd)
	assert.Empty(t, dl.calls)
	assert.Equal(t, download.AlertIncomplete, m.status)

	m, _ = send(t, m, keyDown)
	assert.Empty(t, m.status, "alert clears on the next key press")
}

func TestModel_DownloadBeforeVariablesStep(t *testing.T) {
	dl := &fakeDownloader{}
	m := loadedModel(t, dl)
	m, _ = send(t, m, keyEnter)

	m, cmd := send(t, m, runeKey('d'))
	assert.Nil(t, cmd)
	assert.Empty(t, dl.calls)
	assert.Equal(t, download.AlertIncomplete, m.status)
}

func TestModel_EmptyRegionOptions(t *testing.T) {
	m := New(context.Background(), nil, &fakeDownloader{})
	m, _ = send(t, m, regionsLoadedMsg{options: domain.NewRegionIndex(nil)}, keyEnter)

	assert.Equal(t, domain.StepLevel1, m.Wizard().Step())
	assert.Empty(t, m.choices)
	assert.Contains(t, m.View(), "선택할 항목이 없습니다")

	m, _ = send(t, m, keyEnter)
	assert.Equal(t, domain.StepLevel1, m.Wizard().Step())
}

func TestModel_Quit(t *testing.T) {
	for _, k := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyCtrlC}} {
		m := New(context.Background(), nil, &fakeDownloader{})
		_, cmd := send(t, m, k)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	}
}

func TestBreadcrumb(t *testing.T) {
	f, _ := domain.ForecastByID("short")
	assert.Empty(t, breadcrumb(domain.Selection{}))
	assert.Equal(t, "단기예보 › Seoul", breadcrumb(domain.Selection{Forecast: f, Level1: "Seoul"}))
}
