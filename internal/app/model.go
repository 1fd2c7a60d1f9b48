package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/theimaginaryfoundation/mood-assistant/internal/ui"
	"github.com/theimaginaryfoundation/mood-assistant/mood"

	tea "github.com/charmbracelet/bubbletea"
)

// Tab identifies which view is shown under the input line.
type Tab int

const (
	TabAnalysis Tab = iota
	TabHistory
)

const (
	tabAnalysisTitle = "🧠 التحليل والأنشطة"
	tabHistoryTitle  = "📊 سجل حالتي النفسية"

	// NoHistoryMessage is shown on the history tab before anything has been logged.
	NoHistoryMessage = "لا توجد بيانات محفوظة حتى الآن."
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Analyzer is the part of mood.Assistant the shell drives.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (mood.Analysis, bool, error)
	Timeline() ([]mood.Entry, error)
}

// Resetter clears the stored history. Optional.
type Resetter interface {
	Reset() error
}

// Model is the root bubbletea model for the mood assistant.
type Model struct {
	ctx      context.Context
	analyzer Analyzer
	resetter Resetter
	chart    mood.TextRenderer

	// Input line
	input []rune

	// Analysis state
	analyzing    bool
	spinnerFrame int
	analysis     *mood.Analysis

	// History state
	history        []mood.Entry
	historyMissing bool
	historyLoaded  bool

	// UI state
	activeTab Tab
	width     int
	height    int

	// Errors
	errorMessage string

	statusText string
}

// New creates a Model. resetter may be nil, which disables clearing history.
func New(ctx context.Context, analyzer Analyzer, resetter Resetter, chartStyle mood.ChartStyle) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	return Model{
		ctx:        ctx,
		analyzer:   analyzer,
		resetter:   resetter,
		chart:      mood.TextRenderer{Style: chartStyle},
		activeTab:  TabAnalysis,
		statusText: "اكتب شعورك بكلمة أو جملة ثم اضغط Enter",
	}
}

// Init loads the history so the second tab is ready.
func (m Model) Init() tea.Cmd {
	return loadHistoryCmd(m.analyzer)
}

func analyzeCmd(ctx context.Context, a Analyzer, text string) tea.Cmd {
	return func() tea.Msg {
		res, ok, err := a.Analyze(ctx, text)
		return AnalysisDoneMsg{Analysis: res, OK: ok, Err: err}
	}
}

func loadHistoryCmd(a Analyzer) tea.Cmd {
	return func() tea.Msg {
		entries, err := a.Timeline()
		return HistoryLoadedMsg{Entries: entries, Err: err}
	}
}

func clearHistoryCmd(r Resetter) tea.Cmd {
	return func() tea.Msg {
		return HistoryClearedMsg{Err: r.Reset()}
	}
}

func spinnerTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case AnalysisDoneMsg:
		m.analyzing = false
		if msg.Err != nil {
			m.errorMessage = msg.Err.Error()
			m.statusText = "تعذر تحليل النص"
			return m, nil
		}
		if !msg.OK {
			return m, nil
		}
		res := msg.Analysis
		m.analysis = &res
		m.errorMessage = ""
		m.input = nil
		m.statusText = "تم الحفظ في السجل"
		return m, loadHistoryCmd(m.analyzer)

	case HistoryLoadedMsg:
		m.historyLoaded = true
		switch {
		case msg.Err == nil:
			m.history = msg.Entries
			m.historyMissing = false
		case errors.Is(msg.Err, mood.ErrNotFound):
			m.history = nil
			m.historyMissing = true
		default:
			m.errorMessage = msg.Err.Error()
		}
		return m, nil

	case HistoryClearedMsg:
		if msg.Err != nil {
			m.errorMessage = msg.Err.Error()
			return m, nil
		}
		m.statusText = "تم مسح السجل"
		return m, loadHistoryCmd(m.analyzer)

	case spinnerTickMsg:
		if !m.analyzing {
			return m, nil
		}
		m.spinnerFrame = (m.spinnerFrame + 1) % len(spinnerFrames)
		return m, spinnerTickCmd()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
		return m, nil
	case tea.KeySpace:
		m.input = append(m.input, ' ')
		return m, nil
	}

	switch msg.String() {
	case KeyQuit, KeyCtrlC:
		return m, tea.Quit

	case KeyTab, KeyShiftTab:
		if m.activeTab == TabAnalysis {
			m.activeTab = TabHistory
		} else {
			m.activeTab = TabAnalysis
		}
		return m, nil

	case KeyEnter:
		text := strings.TrimSpace(string(m.input))
		if text == "" || m.analyzing {
			return m, nil
		}
		m.analyzing = true
		m.errorMessage = ""
		m.statusText = "🔍 جاري تحليل مشاعرك..."
		m.activeTab = TabAnalysis
		return m, tea.Batch(analyzeCmd(m.ctx, m.analyzer, text), spinnerTickCmd())

	case KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil

	case KeyCtrlU:
		m.input = nil
		return m, nil

	case KeyReload:
		return m, loadHistoryCmd(m.analyzer)

	case KeyClearHistory:
		if m.resetter == nil {
			return m, nil
		}
		return m, clearHistoryCmd(m.resetter)
	}
	return m, nil
}

func (m Model) View() string {
	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderInput())
	sections = append(sections, m.renderTabs())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.dividerWidth())))

	if m.activeTab == TabHistory {
		sections = append(sections, m.renderHistory())
	} else {
		sections = append(sections, m.renderAnalysis())
	}

	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.dividerWidth())))
	if m.errorMessage != "" {
		sections = append(sections, m.renderErrorBar())
	}
	sections = append(sections, m.renderStatusBar())
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) dividerWidth() int {
	if m.width <= 0 {
		return 60
	}
	return m.width
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("🌤️ Daily Mood Assistant")
	sub := ui.SubtitleStyle.Render("💖 اكتب شعورك وسنقترح لك أنشطة، ونعرض لك آية قرآنية تلامس حالتك")
	return title + "\n" + sub
}

func (m Model) renderInput() string {
	prompt := ui.PromptStyle.Render("🧠 اكتب شعورك بكلمة أو جملة: ")
	return prompt + ui.InputStyle.Render(string(m.input)) + ui.CursorStyle.Render("▏")
}

func (m Model) renderTabs() string {
	a, h := ui.TabStyle, ui.TabStyle
	if m.activeTab == TabHistory {
		h = ui.TabActiveStyle
	} else {
		a = ui.TabActiveStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, a.Render(tabAnalysisTitle), h.Render(tabHistoryTitle))
}

func categoryStyle(c mood.Category) lipgloss.Style {
	switch c {
	case mood.Negative:
		return ui.NegativeStyle
	case mood.Positive:
		return ui.PositiveStyle
	default:
		return ui.NeutralStyle
	}
}

func (m Model) renderAnalysis() string {
	if m.analyzing {
		return ui.SpinnerStyle.Render(spinnerFrames[m.spinnerFrame]) + " " + ui.StatusStyle.Render("🔍 جاري تحليل مشاعرك...")
	}
	if m.analysis == nil {
		return ui.DimStyle.Render("لا يوجد تحليل بعد.")
	}

	a := m.analysis
	cls := a.Classification
	label := categoryStyle(cls.Category).Render(cls.Category.Label())

	var lines []string
	switch {
	case cls.Polarity != nil:
		lines = append(lines, ui.SuccessStyle.Render(fmt.Sprintf("💡 الشعور: %s | درجة الإيجابية: %.2f", cls.Category.Label(), *cls.Polarity)))
	case cls.Label != "":
		lines = append(lines, ui.SuccessStyle.Render(fmt.Sprintf("💡 الشعور: %s | التقييم: %s (%.0f%%)", cls.Category.Label(), cls.Label, cls.Confidence*100)))
	}
	lines = append(lines, "🌈 تم تصنيف شعورك على أنه: "+label)
	lines = append(lines, "")
	lines = append(lines, "📖 قال تعالى:")
	lines = append(lines, ui.VerseStyle.Render("> "+a.Verse))
	lines = append(lines, "")
	lines = append(lines, ui.SectionStyle.Render("🎯 اقتراحات لأنشطتك اليوم:"))
	for _, act := range a.Activities {
		lines = append(lines, "✅ "+act)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderHistory() string {
	title := ui.SectionStyle.Render("📈 المخطط الزمني لتغير حالتك النفسية")
	if !m.historyLoaded {
		return title + "\n" + ui.DimStyle.Render("...")
	}
	if m.historyMissing || len(m.history) == 0 {
		return title + "\n" + ui.InfoStyle.Render(NoHistoryMessage)
	}

	chart := m.chart
	if m.width > 20 {
		chart.Width = m.width - 20
	}
	tl := mood.BuildTimeline(m.history)
	counts := tl.Counts()
	var summary []string
	for _, c := range mood.DisplayOrder {
		summary = append(summary, categoryStyle(c).Render(fmt.Sprintf("%s: %d", c.Label(), counts[c])))
	}
	return title + "\n" + chart.Render(tl) + strings.Join(summary, "  ")
}

func (m Model) renderErrorBar() string {
	return ui.ErrorStyle.Render("Error: ") + ui.ErrorTextStyle.Render(m.errorMessage)
}

func (m Model) renderStatusBar() string {
	return ui.StatusStyle.Render(m.statusText)
}

func (m Model) renderFooter() string {
	var parts []string
	parts = append(parts, ui.FooterKeyStyle.Render("Enter")+ui.FooterDescStyle.Render(" Analyze"))
	parts = append(parts, ui.FooterKeyStyle.Render("Tab")+ui.FooterDescStyle.Render(" Switch view"))
	parts = append(parts, ui.FooterKeyStyle.Render("Ctrl+R")+ui.FooterDescStyle.Render(" Reload"))
	if m.resetter != nil {
		parts = append(parts, ui.FooterKeyStyle.Render("Ctrl+X")+ui.FooterDescStyle.Render(" Clear history"))
	}
	parts = append(parts, ui.FooterKeyStyle.Render("Esc")+ui.FooterDescStyle.Render(" Quit"))
	return strings.Join(parts, "  ")
}
