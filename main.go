package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"appdeck/internal/config"
	"appdeck/internal/icon"
	"appdeck/internal/launcher"
	"appdeck/internal/models"
	"appdeck/internal/overrides"
	"appdeck/internal/scanner"
	"appdeck/internal/server"
	"appdeck/internal/ui"
	"appdeck/internal/ui/components"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Version info (set by ldflags)
var (
	version   = "dev"
	buildTime = "unknown"
	debugMode = false // Enable with --debug flag
)

// Screen represents different screens in the app
type Screen int

const (
	ScreenMain Screen = iota
	ScreenHelp
)

// Model is the root bubbletea model.
type Model struct {
	cfg     *config.Settings
	scanner *scanner.Scanner
	store   *overrides.Store

	screen      Screen
	keys        ui.KeyMap
	help        help.Model
	spinner     spinner.Model
	appList     *components.AppList
	picker      *components.CategoryPicker
	filterInput textinput.Model
	filtering   bool
	scanning    bool
	status      string
	width       int
	height      int
}

// New builds the root model from loaded settings.
func New(cfg *config.Settings) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ui.Primary)

	fi := textinput.New()
	fi.Placeholder = "filter by name"
	fi.CharLimit = 64
	fi.Width = 30

	return &Model{
		cfg:         cfg,
		scanner:     cfg.Scanner(),
		store:       cfg.Overrides(),
		keys:        ui.DefaultKeyMap(),
		help:        help.New(),
		spinner:     sp,
		appList:     components.NewAppList(nil),
		picker:      components.NewCategoryPicker(),
		filterInput: fi,
		scanning:    true,
		status:      "Scanning...",
	}
}

// scanDoneMsg carries a finished scan's results
type scanDoneMsg struct {
	apps []models.AppRecord
}

func scanCmd(sc *scanner.Scanner) tea.Cmd {
	return func() tea.Msg {
		return scanDoneMsg{apps: sc.Scan()}
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, scanCmd(m.scanner))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.appList.Width = max(40, msg.Width-4)
		m.appList.Height = max(8, msg.Height-8)
		return m, nil

	case scanDoneMsg:
		m.scanning = false
		m.appList.SetApps(msg.apps)
		m.status = fmt.Sprintf("%d applications", len(msg.apps))
		return m, nil

	case spinner.TickMsg:
		if !m.scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Filter input grabs everything except escape/enter while active.
	if m.filtering {
		switch msg.String() {
		case "esc":
			m.filtering = false
			m.filterInput.SetValue("")
			m.appList.SetFilter("")
			return m, nil
		case "enter":
			m.filtering = false
			return m, nil
		}
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.appList.SetFilter(m.filterInput.Value())
		return m, cmd
	}

	if m.picker.Visible {
		return m.handlePickerKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.screen == ScreenHelp {
			m.screen = ScreenMain
		} else {
			m.screen = ScreenHelp
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.screen = ScreenMain
		return m, nil

	case key.Matches(msg, m.keys.Rescan):
		m.scanning = true
		m.status = "Scanning..."
		return m, tea.Batch(m.spinner.Tick, scanCmd(m.scanner))

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filterInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Category):
		if app := m.appList.Current(); app != nil {
			m.picker.Show(*app)
		}
		return m, nil

	case key.Matches(msg, m.keys.Launch):
		if app := m.appList.Current(); app != nil {
			launcher.Open(app.Path)
			m.status = fmt.Sprintf("Launched %s", app.Name)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.appList.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.appList.MoveDown()
	case key.Matches(msg, m.keys.PageUp):
		m.appList.PageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.appList.PageDown()
	case key.Matches(msg, m.keys.Home):
		m.appList.GoToFirst()
	case key.Matches(msg, m.keys.End):
		m.appList.GoToLast()
	}

	return m, nil
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Quit):
		m.picker.Hide()

	case key.Matches(msg, m.keys.Up):
		m.picker.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.picker.MoveDown()

	case key.Matches(msg, m.keys.Launch):
		chosen := m.picker.Current()
		m.store.Save(m.picker.AppPath, chosen)
		for i := range m.appList.Apps {
			if m.appList.Apps[i].Path == m.picker.AppPath {
				m.appList.Apps[i].Category = chosen
			}
		}
		m.status = fmt.Sprintf("%s → %s", m.picker.AppName, chosen)
		m.picker.Hide()
	}
	return m, nil
}

func (m *Model) View() string {
	header := ui.HeaderStyle.Render(
		ui.TitleStyle.Render("appdeck") + " " + ui.VersionStyle.Render(version),
	)

	if m.screen == ScreenHelp {
		return ui.AppStyle.Render(header + "\n" + m.help.FullHelpView(m.keys.FullHelp()))
	}

	var body string
	switch {
	case m.scanning:
		body = m.spinner.View() + " Scanning applications..."
	case m.picker.Visible:
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.appList.View(), " ", m.picker.View())
	default:
		body = m.appList.View()
	}

	var bottom string
	if m.filtering {
		bottom = ui.StatusBarStyle.Render("/ " + m.filterInput.View())
	} else {
		bottom = ui.StatusBarStyle.Render(ui.StatusTextStyle.Render(m.status)) + "\n" +
			ui.HelpBarStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	}

	return ui.AppStyle.Render(header + "\n" + body + "\n" + bottom)
}

// serve runs the HTTP API until interrupted.
func serve(cfg *config.Settings, addr string) error {
	if addr == "" {
		addr = cfg.ListenAddr
	}

	srv := server.New(cfg.Scanner(), cfg.Overrides())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(addr)
	}()
	fmt.Fprintf(os.Stderr, "appdeck API listening on %s\n", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func main() {
	serveMode := false
	addr := ""
	configPath := ""

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-v", "--version", "version":
			fmt.Printf("appdeck %s (built %s)\n", version, buildTime)
			return
		case "-h", "--help", "help":
			fmt.Println("appdeck - macOS application launcher backend")
			fmt.Println()
			fmt.Println("Usage: appdeck [serve] [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  -v, --version      Show version")
			fmt.Println("  -h, --help         Show this help")
			fmt.Println("  -d, --debug        Enable debug mode (logs to stderr)")
			fmt.Println("  --addr <host:port> Listen address for serve mode")
			fmt.Println("  --config <path>    Settings file (default ~/.config/appdeck/config.yaml)")
			fmt.Println()
			fmt.Println("Run without arguments to start the TUI; 'serve' runs the HTTP API.")
			return
		case "-d", "--debug", "debug":
			debugMode = true
			scanner.DebugMode = true
			icon.DebugMode = true
			fmt.Fprintln(os.Stderr, "[DEBUG] Debug mode enabled")
		case "serve":
			serveMode = true
		case "--addr":
			if i+1 < len(args) {
				i++
				addr = args[i]
			}
		case "--config":
			if i+1 < len(args) {
				i++
				configPath = args[i]
			}
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if serveMode {
		if err := serve(cfg, addr); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
