package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/couchcryptid/forecast-download-wizard/internal/domain"
)

const loadingText = "데이터를 불러오는 중..."

var (
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	alertStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	summaryStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("10")).
			Padding(0, 1)
)

type stepInfo struct {
	title string
	hint  func(domain.Selection) string
}

var steps = [...]stepInfo{
	domain.StepForecast:  {"예보 유형 선택", func(domain.Selection) string { return "다운로드할 데이터의 예보 유형을 선택하세요" }},
	domain.StepLevel1:    {"시/도 선택", func(domain.Selection) string { return "데이터를 다운로드할 시/도를 선택하세요" }},
	domain.StepLevel2:    {"구/군 선택", func(s domain.Selection) string { return s.Level1 + "의 구/군을 선택하세요" }},
	domain.StepLevel3:    {"동/읍/면 선택", func(s domain.Selection) string { return s.Level1 + " " + s.Level2 + "의 동/읍/면을 선택하세요" }},
	domain.StepVariables: {"예보 변수 선택", func(domain.Selection) string { return "다운로드할 예보 변수를 선택하세요" }},
}

func (m Model) View() string {
	if m.loading {
		return fmt.Sprintf("\n  %s %s\n", m.spinner.View(), loadingText)
	}

	step := m.wizard.Step()
	sel := m.wizard.Selection()
	info := steps[step]

	var b strings.Builder
	b.WriteString(titleStyle.Render("기상 데이터 다운로드") + "\n")
	if crumb := breadcrumb(sel); crumb != "" {
		b.WriteString(dimStyle.Render(crumb) + "\n")
	}
	b.WriteString("\n")

	header := fmt.Sprintf("%d/5 %s", int(step)+1, info.title)
	if step == domain.StepVariables {
		header += fmt.Sprintf("  %d / %d개", len(sel.Variables), len(m.choices))
	}
	b.WriteString(titleStyle.Render(header) + "\n")
	b.WriteString(dimStyle.Render(info.hint(sel)) + "\n\n")

	if len(m.choices) == 0 {
		b.WriteString(dimStyle.Render("  선택할 항목이 없습니다") + "\n")
	}
	for i, c := range m.choices {
		b.WriteString(m.renderChoice(i, c, step, sel) + "\n")
	}

	if step == domain.StepVariables && len(sel.Variables) > 0 {
		b.WriteString("\n" + summaryStyle.Render(summary(sel)) + "\n")
	}

	if m.status != "" {
		style := accentStyle
		if m.failed {
			style = alertStyle
		}
		line := m.status
		if m.busy {
			line = m.spinner.View() + " " + line
		}
		b.WriteString("\n" + style.Render(line) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}

func (m Model) renderChoice(i int, c string, step domain.Step, sel domain.Selection) string {
	cursor := "  "
	if i == m.cursor {
		cursor = accentStyle.Render("> ")
	}

	label := c
	switch step {
	case domain.StepForecast:
		if f, ok := domain.ForecastByName(c); ok {
			label = fmt.Sprintf("%s  %s", c, dimStyle.Render(fmt.Sprintf("%s · %d개 변수 제공", f.Description, len(domain.Variables(f.Kind)))))
		}
	case domain.StepVariables:
		mark := "[ ]"
		if sel.HasVariable(c) {
			mark = "[x]"
			label = selectedStyle.Render(c)
		}
		label = mark + " " + label
	}
	return cursor + label
}

func breadcrumb(sel domain.Selection) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{sel.ForecastName(), sel.Level1, sel.Level2, sel.Level3} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " › ")
}

func summary(sel domain.Selection) string {
	return strings.Join([]string{
		"선택 완료",
		fmt.Sprintf("지역: %s › %s › %s", sel.Level1, sel.Level2, sel.Level3),
		"예보: " + sel.ForecastName(),
		fmt.Sprintf("변수: %d개 선택됨", len(sel.Variables)),
		"d 키를 눌러 데이터 다운로드",
	}, "\n")
}
