package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"newt/internal/evaluator"
	_ "newt/internal/foreign"
	"newt/internal/lexer"
	"newt/internal/object"
	"newt/internal/parser"
	"newt/internal/repl"
	"newt/internal/util"
	"newt/internal/validator"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
)

var (
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"

	help    bool
	version bool
	// logging
	logLevel string
	logFile  string
	// config vars
	configFile string
	rootPath   string
)

func init() {
	flag.BoolVar(&help, "help", false, "Display help information and exit")
	flag.BoolVar(&help, "h", false, "Display help information and exit")
	flag.BoolVar(&version, "version", false, "Display version information and exit")
	flag.BoolVar(&version, "v", false, "Display version information and exit")
	// evaluator config
	flag.StringVar(&configFile, "config", defaultConfigPath(), "Path to a TOML configuration file")
	flag.StringVar(&rootPath, "root", "", "Set the root context for the program (overrides the config file)")
	// log config
	flag.StringVar(&logLevel, "log-level", "error", "Log level: debug, info, warn, error")
	flag.StringVar(&logFile, "log-file", "", "Log file path (if not set, logs to stderr)")
}

func main() {
	flag.Parse()

	loggerOptions := &slog.HandlerOptions{
		AddSource: false,
		Level:     logLevelFromString(logLevel),
	}
	logWriter := configureLogWriter()
	defaultLogger := slog.New(slog.NewJSONHandler(logWriter, loggerOptions))
	slog.SetDefault(defaultLogger)

	if version {
		printVersion()
		return
	}
	if help {
		printHelp()
		return
	}

	config, err := util.LoadConfiguration(configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	config.Version = Version
	config.BuildDate = BuildDate
	config.Commit = Commit
	config.NewtHome = os.Getenv("NEWT_HOME")
	if rootPath != "" {
		config.RootPath = rootPath
	}
	config.Apply()

	// Ctrl-C cancels the running evaluation instead of killing the process
	// mid-statement.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flag.NArg() == 0 {
		fmt.Printf("newt v%s\n", Version)
		repl.Start(ctx, os.Stdin, os.Stdout)
		return
	}

	if err := runFile(ctx, flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runFile(ctx context.Context, filename string) error {
	source, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read '%s': %w", filename, err)
	}

	l := lexer.New(string(source))
	p := parser.New(l)
	program := p.ParseProgram()
	if len(p.Errors()) != 0 {
		for _, msg := range p.Errors() {
			fmt.Fprintln(os.Stderr, msg)
		}
		return fmt.Errorf("%s: %d parse errors", filename, len(p.Errors()))
	}

	v := validator.New(evaluator.BuiltinNames())
	if err := v.Validate(program); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	env := object.NewEnvironment()
	ev := evaluator.New(ctx)
	result := ev.Eval(program, env)

	switch result := result.(type) {
	case *object.Error:
		return fmt.Errorf("%s: %s", filename, result.Inspect())
	case *object.Interrupt:
		return fmt.Errorf("%s: %s", filename, result.Inspect())
	}
	return nil
}

func configureLogWriter() *os.File {
	var logWriter *os.File
	var err error
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log directory for '%s': %v; falling back to stderr\n", logFile, err)
			return os.Stderr
		}
		logWriter, err = os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file '%s': %v; falling back to stderr\n", logFile, err)
			logWriter = os.Stderr
		}
	} else {
		logWriter = os.Stderr
	}
	return logWriter
}

func defaultConfigPath() string {
	if home := os.Getenv("NEWT_HOME"); home != "" {
		return filepath.Join(home, "newt.toml")
	}
	return "newt.toml"
}

func printVersion() {
	fmt.Printf("newt version 'v%s' %s %s\n", Version, BuildDate, Commit)
}

func printHelp() {
	fmt.Printf(`Usage: newt [options] [filename]

Options:
  -config <path>     Path to a TOML configuration file. Default is '$NEWT_HOME/newt.toml'.
  -root <path>       Set the root context for the program. Overrides the config file.
  -help              Display this help information and exit.
  -version           Display version information and exit.
  -log-level <level> Set the log level: debug, info, warn, error. Default is 'error'.
  -log-file <path>   Specify a log file to write logs. Default is stderr.

Details:
This is the newt scripting language. With no filename it starts a REPL.

Examples:
  newt -log-level=debug         Start the REPL with debug logging enabled
  newt myfile.newt              Execute the provided newt file

Version Information:
  Version:    %s
  Build Date: %s
  Commit:     %s
`, Version, BuildDate, Commit)
}

func logLevelFromString(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelError
	}
}
