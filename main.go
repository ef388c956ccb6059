package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Guerrilla-Interactive/totonoe/app"
	"github.com/Guerrilla-Interactive/totonoe/app/cli"
	commands "github.com/Guerrilla-Interactive/totonoe/app/commands/args"
	"github.com/Guerrilla-Interactive/totonoe/app/export"
	"github.com/Guerrilla-Interactive/totonoe/app/flow"
	"github.com/Guerrilla-Interactive/totonoe/app/logging"
	"github.com/Guerrilla-Interactive/totonoe/app/screens"
	"github.com/Guerrilla-Interactive/totonoe/app/store"
	config "github.com/Guerrilla-Interactive/totonoe/internal"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Version is set via linker flags during build.
var Version = "v0.3.0"

// ProgramModel wraps app.Model so we can hold Update logic in one place.
type ProgramModel struct {
	M       app.Model
	Env     *screens.Env
	initCmd tea.Cmd
}

// Init runs whatever the first screen asked for (cursor blink, progress).
func (pm ProgramModel) Init() tea.Cmd {
	return pm.initCmd
}

// Update handles incoming Msgs and routes keys to the current screen.
func (pm ProgramModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch typedMsg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.M.Resize(typedMsg.Width, typedMsg.Height)
		return pm, nil

	case screens.CopiedMsg:
		pm.M = screens.HandleCopied(pm.M, typedMsg, pm.Env)
		return pm, nil

	case tea.KeyMsg:
		switch pm.M.CurrentScreen {
		case app.ScreenGuided:
			pm.M, cmd = screens.UpdateScreenGuided(pm.M, typedMsg, pm.Env)
		case app.ScreenResult:
			pm.M, cmd = screens.UpdateScreenResult(pm.M, typedMsg, pm.Env)
		case app.ScreenBranch:
			pm.M, cmd = screens.UpdateScreenBranch(pm.M, typedMsg, pm.Env)
		case app.ScreenDeepDive:
			pm.M, cmd = screens.UpdateScreenDeepDive(pm.M, typedMsg, pm.Env)
		case app.ScreenLab:
			pm.M, cmd = screens.UpdateScreenLab(pm.M, typedMsg, pm.Env)
		case app.ScreenConfirm:
			pm.M, cmd = screens.UpdateScreenConfirm(pm.M, typedMsg, pm.Env)
		case app.ScreenHistory:
			pm.M, cmd = screens.UpdateScreenHistory(pm.M, typedMsg, pm.Env)
		}
		return pm, cmd
	}

	// Cursor blinks, progress frames and the like.
	pm.M, cmd = screens.UpdateWidgets(pm.M, msg)
	return pm, cmd
}

// View selects which screen's View function to call based on pm.M.CurrentScreen.
func (pm ProgramModel) View() string {
	switch pm.M.CurrentScreen {
	case app.ScreenGuided:
		return screens.ViewScreenGuided(pm.M, pm.Env)
	case app.ScreenResult:
		return screens.ViewScreenResult(pm.M, pm.Env)
	case app.ScreenBranch:
		return screens.ViewScreenBranch(pm.M, pm.Env)
	case app.ScreenDeepDive:
		return screens.ViewScreenDeepDive(pm.M, pm.Env)
	case app.ScreenLab:
		return screens.ViewScreenLab(pm.M, pm.Env)
	case app.ScreenConfirm:
		return screens.ViewScreenConfirm(pm.M, pm.Env)
	case app.ScreenHistory:
		return screens.ViewScreenHistory(pm.M, pm.Env)
	}
	return ""
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	parsedArgs := cli.ParseCommandLineArgs(args, commands.Lookup{})
	if len(parsedArgs.Errors) > 0 {
		fmt.Println("Error parsing arguments:")
		for _, err := range parsedArgs.Errors {
			fmt.Printf("  - %v\n", err)
		}
		return 1
	}

	// --version takes precedence over everything else.
	if parsedArgs.VersionRequested {
		fmt.Printf("totonoe %s\n", Version)
		return 0
	}
	if parsedArgs.HelpRequested {
		if parsedArgs.CommandName != "" {
			displayCommandHelp(parsedArgs.CommandName)
		} else {
			displayGeneralHelp()
		}
		return 0
	}
	if parsedArgs.CommandName == "" && (len(parsedArgs.Variables) > 0 || len(parsedArgs.Flags) > 0 || len(parsedArgs.BoolFlags) > 0) {
		fmt.Println("Error: Unknown command or flags.")
		fmt.Println("Run `totonoe --help` for usage.")
		return 1
	}
	cli.SetDebugEnabled(parsedArgs.DebugRequested)

	settings, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load settings, running in memory only: %v\n", err)
		settings = config.Config{
			StateDir:     filepath.Join(os.TempDir(), "totonoe"),
			StoreBackend: store.BackendMemory,
			LogLevel:     "info",
		}
	}
	level := settings.LogLevel
	if cli.IsDebugEnabled() {
		level = "debug"
	}
	log, err := logging.NewOrNop(level, settings.LogPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer func() { _ = log.Sync() }()

	s, err := store.Open(settings.StoreBackend, settings.StateDir)
	if err != nil {
		log.Warn("store unavailable, keeping state in memory",
			zap.String("backend", settings.StoreBackend), zap.Error(err))
	}
	persist := store.NewPersistence(s, log)
	defer func() { _ = persist.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	controller := flow.New(ctx, persist, log)
	clipboard := export.Clipboard{}

	if parsedArgs.CommandName != "" {
		return executeCommand(ctx, parsedArgs, &commands.Env{
			Flow:      controller,
			Stdin:     os.Stdin,
			Stdout:    os.Stdout,
			Clipboard: clipboard,
			Log:       log,
		})
	}

	env := &screens.Env{Ctx: ctx, Flow: controller, Clipboard: clipboard, Log: log}
	m, startCmd := screens.Start(app.NewModel(Version, controller.Configuration()), env)
	if persist.Degraded() {
		m.SetStatus("保存領域が使えないため、この回はメモリ上でのみ動作します。", true)
	}

	p := tea.NewProgram(ProgramModel{M: m, Env: env, initCmd: startCmd}, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		log.Error("program exited with error", zap.Error(err))
		fmt.Println("Error running program:", err)
		return 1
	}
	return 0
}

// executeCommand runs a direct-execution command and maps its error to an
// exit code.
func executeCommand(ctx context.Context, parsedArgs cli.CommandArgs, env *commands.Env) int {
	cmd, found := commands.GetCommand(parsedArgs.CommandName)
	if !found {
		fmt.Printf("Error: Unknown command '%s'\n", parsedArgs.CommandName)
		return 1
	}
	env.Log.Debug("executing command",
		zap.String("command", parsedArgs.CommandName),
		zap.Strings("variables", parsedArgs.Variables))
	if err := commands.Run(ctx, cmd, env, parsedArgs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// displayGeneralHelp prints the top-level help message.
func displayGeneralHelp() {
	fmt.Println("TOTONOE - think it through, one question at a time")
	fmt.Println("Usage: totonoe [command] [variables...] [--flags...]")
	fmt.Println("Run without arguments to enter interactive mode.")

	allCmds := commands.GetAllCommands()
	fmt.Println("\nAvailable Commands:")
	for _, cmd := range allCmds {
		fmt.Printf("  %-15s %s\n", cmd.Name(), cmd.Description())
	}
	fmt.Println("\nRun 'totonoe [command] --help' for more information on a specific command.")
	fmt.Println("\nGlobal Flags: --help, -h, --version, --debug")
}

// displayCommandHelp displays detailed help for a specific command.
func displayCommandHelp(commandName string) {
	cmd, found := commands.GetCommand(commandName)
	if !found {
		fmt.Printf("Error: Unknown command '%s'\n", commandName)
		displayGeneralHelp()
		return
	}

	fmt.Printf("Usage: totonoe %s %s\n\n", cmd.Name(), cmd.Usage())
	fmt.Printf("  %s\n", cmd.Description())

	if args := cmd.ExpectedArgs(); len(args) > 0 {
		fmt.Println("\nArguments:")
		for _, arg := range args {
			required := ""
			if arg.Required {
				required = " (required)"
			}
			fmt.Printf("  %-15s %s%s\n", arg.Name, arg.Description, required)
		}
	}

	if flags := cmd.ExpectedFlags(); len(flags) > 0 {
		fmt.Println("\nFlags:")
		for _, flag := range flags {
			flagUsage := "--" + flag.Name
			if flag.ShortName != "" {
				flagUsage += ", -" + flag.ShortName
			}
			if flag.HasValue {
				flagUsage += " <value>"
			}
			required := ""
			if flag.Required {
				required = " (required)"
			}
			fmt.Printf("  %-15s %s%s\n", flagUsage, flag.Description, required)
		}
	}
	fmt.Println("\nGlobal Flags: --help, -h, --version, --debug")
}
