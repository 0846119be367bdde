package adapter_bubbletea

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"
	"golang.org/x/text/language"

	"github.com/ionut-t/vkeyboard/adapter-bubbletea/highlighter"
	editor "github.com/ionut-t/vkeyboard/core"
	"github.com/ionut-t/vkeyboard/i18n"
	"github.com/ionut-t/vkeyboard/keyboard"
)

type Theme struct {
	LevelStyle       lipgloss.Style
	LanguageStyle    lipgloss.Style
	StatusLineStyle  lipgloss.Style
	CommandLineStyle lipgloss.Style
	MessageStyle     lipgloss.Style
	ErrorStyle       lipgloss.Style
	SelectionStyle   lipgloss.Style
	CursorStyle      lipgloss.Style
	PlaceholderStyle lipgloss.Style
	KeyStyle         lipgloss.Style
	KeyActiveStyle   lipgloss.Style
	KeyPressedStyle  lipgloss.Style
}

var DefaultTheme = Theme{
	LevelStyle:       lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255")),
	LanguageStyle:    lipgloss.NewStyle().Background(lipgloss.Color("26")).Foreground(lipgloss.Color("255")),
	CommandLineStyle: lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("255")),
	StatusLineStyle:  lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	MessageStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	SelectionStyle:   lipgloss.NewStyle().Background(lipgloss.Color("237")),
	CursorStyle:      lipgloss.NewStyle().Reverse(true),
	PlaceholderStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	KeyStyle:         lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("252")),
	KeyActiveStyle:   lipgloss.NewStyle().Background(lipgloss.Color("127")).Foreground(lipgloss.Color("255")),
	KeyPressedStyle:  lipgloss.NewStyle().Background(lipgloss.Color("208")).Foreground(lipgloss.Color("0")).Bold(true),
}

type cursorBlinkMsg struct{}
type cursorBlinkCanceledMsg struct{}
type resumeBlinkCycleMsg struct{}

type CursorMode int

const (
	CursorSteady CursorMode = iota
	CursorBlink
)

const cursorBlinkInterval = 500 * time.Millisecond
const cursorActivityResetDelay = 250 * time.Millisecond

const defaultMessageDuration = 3 * time.Second

type cursorBlinkContext struct {
	ctx    context.Context
	cancel context.CancelFunc
}

type Model struct {
	editor     editor.Editor
	metrics    *editor.CellMetrics
	keyboard   *keyboard.Keyboard
	translator *i18n.Translator
	logger     *slog.Logger
	viewport   viewport.Model

	width              int
	height             int
	textHeight         int // Rows of the text area above the keyboard
	showStatusLine     bool
	showKeyboard       bool
	theme              Theme
	StatusLineFunc     func() string
	err                error
	message            string
	messageDuration    time.Duration
	isFocused          bool
	placeholder        string
	cursorMode         CursorMode
	cursorVisible      bool
	cursorBlinkContext *cursorBlinkContext
	clearMsgCancel     context.CancelFunc
	highlighter        *highlighter.Highlighter
	language           string
	highlighterTheme   string

	pressedKey string      // On-screen key held down with the mouse
	repeats    chan string // Key codes fired by the keyboard repeater

	originX int // Terminal column of the model's top left cell
	originY int
}

// ErrorMsg reports a failed editor command.
type ErrorMsg struct {
	ID    editor.ErrorId
	Error error
}

// CursorMsg is sent after the caret moved or the selection changed.
type CursorMsg struct {
	Selection editor.Selection
	CaretRow  int
}

// ContentMsg is sent after the buffer changed.
type ContentMsg struct {
	Content string
}

type LayoutMsg struct {
	Rows int
}

// ClipboardMsg is sent after a copy, cut or paste of Size characters.
type ClipboardMsg struct {
	Kind editor.CommandKind
	Size int
}

// LanguageMsg is sent after the keyboard switched layout.
type LanguageMsg struct {
	Language language.Tag
}

type clearMsg struct{}

type keyRepeatMsg struct {
	code string
}

func (m *Model) dispatchClearMsg(duration time.Duration) tea.Cmd {
	if m.clearMsgCancel != nil {
		m.clearMsgCancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	m.clearMsgCancel = cancel

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return clearMsg{}
		}
		return nil
	}
}

type clipboardImpl struct{}

func (c *clipboardImpl) Write(text string) error {
	return clipboard.WriteAll(text)
}

func (c *clipboardImpl) Read() (string, error) {
	return clipboard.ReadAll()
}

type options struct {
	logger    *slog.Logger
	clipboard editor.Clipboard
	tab       string
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClipboard replaces the system clipboard.
func WithClipboard(c editor.Clipboard) Option {
	return func(o *options) {
		o.clipboard = c
	}
}

func WithTab(tab string) Option {
	return func(o *options) {
		o.tab = tab
	}
}

// New creates a text area of width x height cells with the on-screen
// keyboard kb beneath it. Status messages are localized with translator.
func New(width, height int, kb *keyboard.Keyboard, translator *i18n.Translator, opts ...Option) Model {
	o := options{
		logger:    slog.Default(),
		clipboard: &clipboardImpl{},
		tab:       editor.DefaultTab,
	}
	for _, opt := range opts {
		opt(&o)
	}

	metrics := editor.NewCellMetrics(1, 1)
	ed := editor.New(metrics,
		editor.WithClipboard(o.clipboard),
		editor.WithLogger(o.logger),
		editor.WithTab(o.tab),
	)

	m := Model{
		editor:          ed,
		metrics:         metrics,
		keyboard:        kb,
		translator:      translator,
		logger:          o.logger,
		viewport:        viewport.New(width, height),
		showStatusLine:  true,
		showKeyboard:    true,
		theme:           DefaultTheme,
		messageDuration: defaultMessageDuration,
		cursorMode:      CursorSteady,
		cursorVisible:   true,
		cursorBlinkContext: &cursorBlinkContext{
			ctx: context.Background(),
		},
		repeats: make(chan string, 1),
	}

	m.SetSize(width, height)

	return m
}

// chromeHeight is the number of rows below the text area.
func (m *Model) chromeHeight() int {
	h := 0
	if m.showKeyboard {
		h += len(m.keyboard.Rows())
	}
	if m.showStatusLine {
		h += 2
	}
	return h
}

// SetSize lays the text out again for a new terminal size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.textHeight = max(1, height-m.chromeHeight())

	m.viewport.Width = width
	m.viewport.Height = m.textHeight

	// One column stays free for the caret after the last character of a row.
	textWidth := float64(max(1, width-1))

	geometry := editor.Geometry{
		Width:      textWidth,
		Height:     float64(m.textHeight),
		LineHeight: m.metrics.LineHeight(),
	}
	oracle := editor.GreedyWrapper{Metrics: m.metrics, Width: textWidth}

	if err := m.editor.SyncLayout(geometry, oracle); err != nil {
		m.logger.Warn("layout sync failed", "width", width, "height", height, "error", err)
	}

	m.renderVisibleSlice()
}

// SetOrigin tells the model where its view starts on the terminal, so that
// mouse events can be made relative to it. A parent drawing a border or
// padding around View sets it.
func (m *Model) SetOrigin(x, y int) {
	m.originX = max(0, x)
	m.originY = max(0, y)
}

// SetBytes sets the content of the editor.
func (m *Model) SetBytes(content []byte) {
	m.editor.SetContent(content)
	m.renderVisibleSlice()
}

// SetContent sets the content of the editor from a string.
func (m *Model) SetContent(content string) {
	m.SetBytes([]byte(content))
}

// GetCurrentContent returns the text of the buffer.
func (m *Model) GetCurrentContent() string {
	return m.editor.Text()
}

// WithTheme allows setting a custom theme for the editor.
func (m *Model) WithTheme(theme Theme) {
	m.theme = theme
}

// SetLanguage sets the programming language for syntax highlighting.
//
// If the language is empty, syntax highlighting will be disabled.
//
// The theme parameter allows specifying a Chroma theme for the syntax highlighter.
// For a full list of available themes, see: https://github.com/alecthomas/chroma/blob/master/styles
func (m *Model) SetLanguage(language string, theme string) {
	if m.language == language && m.highlighterTheme == theme {
		return
	}

	m.language = language
	m.highlighterTheme = theme
	if language == "" {
		m.highlighter = nil
		return
	}

	m.highlighter = highlighter.New(language, theme)
}

// WithSyntaxHighlighter allows setting a custom syntax highlighter.
func (m *Model) WithSyntaxHighlighter(highlighter *highlighter.Highlighter) {
	m.highlighter = highlighter
}

// DispatchMessage allows setting a message to be displayed in the command line for a specified duration.
func (m *Model) DispatchMessage(message string, duration time.Duration) tea.Cmd {
	m.message = message
	m.err = nil

	return m.dispatchClearMsg(duration)
}

// DispatchError allows setting an error to be displayed in the command line for a specified duration.
func (m *Model) DispatchError(err error, duration time.Duration) tea.Cmd {
	m.err = err
	m.message = ""

	return m.dispatchClearMsg(duration)
}

// SetMessageDuration sets how long status messages stay visible.
func (m *Model) SetMessageDuration(duration time.Duration) {
	m.messageDuration = duration
}

// HideStatusLine controls whether to show the status and message lines.
func (m *Model) HideStatusLine(hide bool) {
	m.showStatusLine = !hide
	m.SetSize(m.width, m.height)
}

// HideKeyboard controls whether to show the on-screen keyboard.
func (m *Model) HideKeyboard(hide bool) {
	m.showKeyboard = !hide
	m.SetSize(m.width, m.height)
}

// GetEditor returns the underlying editor instance
func (m *Model) GetEditor() editor.Editor {
	return m.editor
}

// GetKeyboard returns the on-screen keyboard.
func (m *Model) GetKeyboard() *keyboard.Keyboard {
	return m.keyboard
}

// Focus sets the editor to focused state.
func (m *Model) Focus() {
	m.isFocused = true
	m.cursorVisible = true
}

// Blur sets the editor to unfocused state. Key repeat stops and a held
// shift is released.
func (m *Model) Blur() {
	m.isFocused = false
	m.pressedKey = ""
	m.keyboard.Blur()
}

// IsFocused returns whether the editor is currently focused.
func (m *Model) IsFocused() bool {
	return m.isFocused
}

// SetPlaceholder sets the placeholder text for the editor.
func (m *Model) SetPlaceholder(placeholder string) {
	m.placeholder = placeholder
}

// IsEmpty checks if the editor buffer is empty.
func (m *Model) IsEmpty() bool {
	return m.editor.GetBuffer().IsEmpty()
}

// SetCursorMode sets the cursor mode for the editor.
// It can be either CursorSteady or CursorBlink.
func (m *Model) SetCursorMode(mode CursorMode) {
	m.cursorMode = mode
	m.cursorVisible = m.isFocused
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listenForEditorUpdate(), m.listenForKeyRepeat())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.IsFocused() {
			break
		}

		cmds = append(cmds, m.handleKey(msg), m.resetCursorBlink())

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case keyRepeatMsg:
		if msg.code == m.pressedKey {
			if cmd, ok := m.keyboard.Resolve(msg.code); ok {
				m.dispatch(cmd)
			}
		}
		cmds = append(cmds, m.listenForKeyRepeat())

	case tea.FocusMsg:
		m.Focus()
		cmds = append(cmds, m.CursorBlink())

	case tea.BlurMsg:
		m.Blur()

	case ErrorMsg:
		cmds = append(cmds,
			m.DispatchError(errors.New(m.localizeError(msg.ID, msg.Error)), m.messageDuration),
			m.listenForEditorUpdate())

	case ClipboardMsg:
		if text := m.clipboardMessage(msg); text != "" {
			cmds = append(cmds, m.DispatchMessage(text, m.messageDuration))
		}
		cmds = append(cmds, m.listenForEditorUpdate())

	case CursorMsg, ContentMsg, LayoutMsg:
		cmds = append(cmds, m.listenForEditorUpdate())

	case clearMsg:
		m.message = ""
		m.err = nil
		m.clearMsgCancel = nil

	case cursorBlinkMsg:
		if m.isFocused && m.cursorMode == CursorBlink {
			m.cursorVisible = !m.cursorVisible
			cmds = append(cmds, m.CursorBlink())
		} else {
			m.cursorVisible = m.isFocused
		}

	case resumeBlinkCycleMsg:
		if m.isFocused && m.cursorMode == CursorBlink {
			m.cursorVisible = true
			cmds = append(cmds, m.CursorBlink())
		}
	}

	m.renderVisibleSlice()

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyF2 {
		return m.applyKeyboardEffects(m.keyboard.SwitchLanguage())
	}

	if msg.Paste {
		m.dispatch(editor.Insert(string(msg.Runes)))
		return nil
	}

	key := convertBubbleKey(msg)

	cmd, ok := editor.CommandForKey(key)
	if !ok {
		return nil
	}

	// Characters typed on the physical keyboard follow the active layout.
	if cmd.Kind == editor.CmdInsertChar {
		if text, ok := m.keyboard.Translate(key.Rune); ok {
			cmd = editor.Insert(text)
		}

		// A latched on-screen shift is spent by the next character either way.
		if state := m.keyboard.State(); state.Shift {
			m.keyboard.Apply(state.ReleaseShift())
		}
	}

	m.dispatch(cmd)
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}

		x, y := msg.X-m.originX, msg.Y-m.originY
		if x < 0 || y < 0 {
			return nil
		}

		if y < m.textHeight {
			m.dispatch(editor.Click(float64(x), float64(y)))
			return nil
		}

		if code, ok := m.keyAt(x, y-m.textHeight); ok {
			return m.pressKey(code)
		}

	case tea.MouseActionRelease:
		if m.pressedKey == "" {
			return nil
		}

		code := m.pressedKey
		m.pressedKey = ""

		// A clicked shift stays latched until the next character key.
		if m.keyboard.IsModifier(code) {
			m.keyboard.Repeater().Stop()
			return nil
		}
		return m.applyKeyboardEffects(m.keyboard.Release(code))
	}

	return nil
}

// pressKey handles a click on the on-screen key with code.
func (m *Model) pressKey(code string) tea.Cmd {
	m.pressedKey = code

	cmd, effects, ok := m.keyboard.Press(code, true)
	if ok {
		m.dispatch(cmd)

		if m.keyboard.IsRepeatable(code) {
			repeats := m.repeats
			m.keyboard.Repeater().Start(func() {
				select {
				case repeats <- code:
				default:
				}
			})
		}
	}

	return m.applyKeyboardEffects(effects)
}

// applyKeyboardEffects follows up on keyboard state changes. Key labels and
// the caps indicator are drawn from the keyboard state on every View.
func (m *Model) applyKeyboardEffects(effects []keyboard.Effect) tea.Cmd {
	var cmds []tea.Cmd

	for _, effect := range effects {
		if effect != keyboard.EffectLanguageChanged {
			continue
		}

		lang := m.keyboard.Language()
		m.translator.SetLanguage(lang)

		text := m.translator.TextWith(i18n.LayoutSwitched, map[string]any{
			"Language": m.translator.LanguageName(lang),
		})
		cmds = append(cmds,
			m.DispatchMessage(text, m.messageDuration),
			func() tea.Msg { return LanguageMsg{Language: lang} })
	}

	return tea.Batch(cmds...)
}

func (m *Model) dispatch(cmd editor.Command) {
	if _, err := m.editor.Dispatch(cmd); err != nil {
		m.logger.Debug("command failed", "command", cmd.String(), "error", err)
	}
}

func (m *Model) localizeError(id editor.ErrorId, err error) string {
	switch id {
	case editor.ErrCopyFailedId, editor.ErrCutFailedId, editor.ErrPasteFailedId:
		return m.translator.Text(i18n.ClipboardUnavailable)
	case editor.ErrUnknownCommandId:
		return m.translator.Text(i18n.UnknownCommand)
	case editor.ErrLayoutNotReadyId:
		return m.translator.Text(i18n.LayoutNotReady)
	}

	if err == nil {
		return ""
	}
	return err.Error()
}

func (m *Model) clipboardMessage(msg ClipboardMsg) string {
	switch msg.Kind {
	case editor.CmdCopy:
		return m.translator.Plural(i18n.ClipboardCopied, msg.Size)
	case editor.CmdCut:
		return m.translator.Plural(i18n.ClipboardCut, msg.Size)
	case editor.CmdPaste:
		return m.translator.Plural(i18n.ClipboardPasted, msg.Size)
	default:
		return ""
	}
}

func (m Model) View() string {
	parts := []string{m.viewport.View()}

	if m.showKeyboard {
		parts = append(parts, m.renderKeyboard())
	}

	if !m.showStatusLine {
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	commandLine := m.theme.CommandLineStyle.Render("")

	if m.message != "" {
		commandLine = m.theme.MessageStyle.
			Background(m.theme.CommandLineStyle.GetBackground()).
			Render(m.message)
	}

	if m.err != nil {
		commandLine = m.theme.ErrorStyle.
			Background(m.theme.CommandLineStyle.GetBackground()).
			Render(m.err.Error())
	}

	statusLine := m.getStatusLine()

	paddingWidth := m.width - lipgloss.Width(statusLine)
	if paddingWidth > 0 {
		statusLine += m.theme.StatusLineStyle.Render(strings.Repeat(" ", paddingWidth))
	}

	paddingWidth = m.width - lipgloss.Width(commandLine)
	if paddingWidth > 0 {
		commandLine += m.theme.CommandLineStyle.Render(strings.Repeat(" ", paddingWidth))
	}

	parts = append(parts, statusLine, commandLine)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) getStatusLine() string {
	if m.StatusLineFunc != nil {
		return m.StatusLineFunc()
	}

	level := " " + m.translator.Text("level_"+string(m.keyboard.State().Level())) + " "
	lang := " " + m.translator.LanguageName(m.keyboard.Language()) + " "

	info := m.caretInfo()
	if sel := m.editor.Selection(); !sel.IsEmpty() {
		info = m.translator.Plural(i18n.SelectionCount, sel.Len()) + "  " + info
	}
	info += " "

	statusLine := m.theme.LevelStyle.Render(level) + m.theme.LanguageStyle.Render(lang)

	width := m.width - (uniseg.StringWidth(level) + uniseg.StringWidth(lang) + uniseg.StringWidth(info))
	gap := strings.Repeat(" ", max(0, width))

	statusLine += m.theme.StatusLineStyle.Render(gap + info)

	return statusLine
}

// caretInfo is the 1-based row and column of the caret in the visual rows.
func (m *Model) caretInfo() string {
	row := m.editor.CaretRow()

	col := m.editor.GetCursor().Head()
	if rows := m.editor.Rows(); row < len(rows) {
		col -= rows[row].Start
	}

	return m.translator.TextWith(i18n.CaretPosition, map[string]any{
		"Row": row + 1,
		"Col": col + 1,
	})
}

func (m *Model) listenForEditorUpdate() tea.Cmd {
	return func() tea.Msg {
		editorChan := m.editor.GetUpdateSignalChan()
		return signalToMsg(<-editorChan)
	}
}

func signalToMsg(signal editor.Signal) tea.Msg {
	switch signal := signal.(type) {
	case editor.CursorSignal:
		selection, caretRow, _ := signal.Value()
		return CursorMsg{Selection: selection, CaretRow: caretRow}

	case editor.ContentSignal:
		return ContentMsg{Content: signal.Value()}

	case editor.LayoutSignal:
		return LayoutMsg{Rows: signal.Value()}

	case editor.ClipboardSignal:
		kind, size := signal.Value()
		return ClipboardMsg{Kind: kind, Size: size}

	case editor.ErrorSignal:
		id, err := signal.Value()
		return ErrorMsg{ID: id, Error: err}
	}

	return nil
}

func (m *Model) listenForKeyRepeat() tea.Cmd {
	repeats := m.repeats
	return func() tea.Msg {
		return keyRepeatMsg{code: <-repeats}
	}
}

// Convert Bubbletea key to editor.Key
func convertBubbleKey(msg tea.KeyMsg) editor.KeyEvent {
	key := editor.KeyEvent{}

	if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 {
		key.Rune = msg.Runes[0]
	}

	if msg.Alt {
		key.Modifiers |= editor.ModAlt
	}

	switch msg.Type {
	case tea.KeyEnter:
		key.Key = editor.KeyEnter
	case tea.KeySpace:
		key.Key = editor.KeySpace
		key.Rune = ' '
	case tea.KeyEsc:
		key.Key = editor.KeyEscape
	case tea.KeyBackspace:
		key.Key = editor.KeyBackspace
	case tea.KeyTab:
		key.Key = editor.KeyTab
	case tea.KeyUp:
		key.Key = editor.KeyUp
	case tea.KeyDown:
		key.Key = editor.KeyDown
	case tea.KeyLeft:
		key.Key = editor.KeyLeft
	case tea.KeyRight:
		key.Key = editor.KeyRight
	case tea.KeyShiftUp:
		key.Key = editor.KeyUp
		key.Modifiers |= editor.ModShift
	case tea.KeyShiftDown:
		key.Key = editor.KeyDown
		key.Modifiers |= editor.ModShift
	case tea.KeyShiftLeft:
		key.Key = editor.KeyLeft
		key.Modifiers |= editor.ModShift
	case tea.KeyShiftRight:
		key.Key = editor.KeyRight
		key.Modifiers |= editor.ModShift
	case tea.KeyHome:
		key.Key = editor.KeyHome
	case tea.KeyEnd:
		key.Key = editor.KeyEnd
	case tea.KeyCtrlHome:
		key.Key = editor.KeyHome
		key.Modifiers |= editor.ModCtrl
	case tea.KeyCtrlEnd:
		key.Key = editor.KeyEnd
		key.Modifiers |= editor.ModCtrl
	case tea.KeyDelete:
		key.Key = editor.KeyDelete
	case tea.KeyPgUp:
		key.Key = editor.KeyPageUp
	case tea.KeyPgDown:
		key.Key = editor.KeyPageDown
	case tea.KeyCtrlA:
		key.Rune = 'a'
		key.Modifiers |= editor.ModCtrl
	case tea.KeyCtrlC:
		key.Rune = 'c'
		key.Modifiers |= editor.ModCtrl
	case tea.KeyCtrlX:
		key.Rune = 'x'
		key.Modifiers |= editor.ModCtrl
	case tea.KeyCtrlV:
		key.Rune = 'v'
		key.Modifiers |= editor.ModCtrl
	}

	return key
}

// CursorBlink is the main command for the blinking cursor effect (toggling visibility)
func (m *Model) CursorBlink() tea.Cmd {
	if m.cursorMode != CursorBlink || !m.isFocused {
		m.cursorVisible = m.isFocused
		return nil
	}

	if m.cursorBlinkContext != nil && m.cursorBlinkContext.cancel != nil {
		m.cursorBlinkContext.cancel()
	}

	ctx, cancel := context.WithTimeout(m.cursorBlinkContext.ctx, cursorBlinkInterval)
	m.cursorBlinkContext.cancel = cancel

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return cursorBlinkMsg{}
		}
		return cursorBlinkCanceledMsg{}
	}
}

// resetCursorBlink shows the caret after user activity and delays the
// resumption of blinking.
func (m *Model) resetCursorBlink() tea.Cmd {
	m.cursorVisible = true
	if m.cursorBlinkContext != nil && m.cursorBlinkContext.cancel != nil {
		m.cursorBlinkContext.cancel()
	}

	if m.cursorMode != CursorBlink || !m.isFocused {
		m.cursorVisible = m.isFocused
		return nil
	}

	return tea.Tick(cursorActivityResetDelay, func(t time.Time) tea.Msg {
		return resumeBlinkCycleMsg{}
	})
}
