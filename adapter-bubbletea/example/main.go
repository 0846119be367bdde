package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	editor "github.com/ionut-t/vkeyboard/adapter-bubbletea"
	"github.com/ionut-t/vkeyboard/config"
	"github.com/ionut-t/vkeyboard/i18n"
	"github.com/ionut-t/vkeyboard/internal/logging"
	"github.com/ionut-t/vkeyboard/keyboard"
)

type Model struct {
	editor editor.Model
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.editor.Init(), m.editor.CursorBlink())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor.SetSize(msg.Width-frame.GetHorizontalFrameSize(), msg.Height-frame.GetVerticalFrameSize())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+q", "esc":
			return m, tea.Quit
		}
	}

	editorModel, cmd := m.editor.Update(msg)
	m.editor = editorModel.(editor.Model)

	return m, cmd
}

var frame = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

func (m Model) View() string {
	return frame.Render(m.editor.View())
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	file := flag.String("file", "", "file to load into the editor")
	replay := flag.String("replay", "", "run the commands in this file headless and print the result")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		cfg = loaded
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Error opening log: %v", err)
	}
	defer closeLog()

	if *replay != "" {
		if err := runReplay(cfg, logger, *replay, os.Stdout); err != nil {
			log.Fatalf("Error replaying %s: %v", *replay, err)
		}
		return
	}

	kb, err := keyboard.New(cfg.Keyboard.Language,
		keyboard.WithRepeat(cfg.Keyboard.RepeatDelay.Duration, cfg.Keyboard.RepeatPeriod.Duration),
		keyboard.WithLogger(logger.Logger))
	if err != nil {
		log.Fatalf("Error loading keyboard: %v", err)
	}

	translator, err := i18n.New(kb.Language())
	if err != nil {
		log.Fatalf("Error loading messages: %v", err)
	}

	textEditor := editor.New(80, 20, kb, translator,
		editor.WithLogger(logger.Logger),
		editor.WithTab(cfg.Font.Tab))
	textEditor.Focus()
	textEditor.SetCursorMode(editor.CursorBlink)
	textEditor.SetLanguage(cfg.Editor.Syntax, cfg.Editor.Theme)
	textEditor.HideKeyboard(!cfg.Keyboard.Visible)
	textEditor.SetPlaceholder("Type here, or click the keys below")
	textEditor.SetOrigin(
		frame.GetBorderLeftSize()+frame.GetPaddingLeft(),
		frame.GetBorderTopSize()+frame.GetPaddingTop())

	if *file != "" {
		if content, err := os.ReadFile(*file); err == nil {
			textEditor.SetBytes(content)
		}
	}

	m := Model{editor: textEditor}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())

	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running Bubble Tea program: %v", err)
	}
}

// newLogger builds the logger from cfg. Without a log file the output is
// discarded, since the terminal belongs to the UI.
func newLogger(cfg config.Log) (*logging.Logger, func(), error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	format, err := logging.ParseFormat(cfg.Format)
	if err != nil {
		return nil, nil, err
	}

	if cfg.File == "" {
		return logging.New(io.Discard, level, format), func() {}, nil
	}

	f, err := logging.Open(cfg.File)
	if err != nil {
		return nil, nil, fmt.Errorf("log file %s: %w", cfg.File, err)
	}

	return logging.New(f, level, format), func() { _ = f.Close() }, nil
}
