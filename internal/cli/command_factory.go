package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/charopevez/eob-dbinit/internal/mongodb"
	"github.com/charopevez/eob-dbinit/internal/telemetry"
	"github.com/charopevez/eob-dbinit/internal/terminal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CommandFactory is a command factory
type CommandFactory struct {
	profile          *Profile
	ui               terminal.UI
	uiConfig         terminal.UIConfig
	inReader         io.Reader
	outWriter        io.Writer
	errWriter        io.Writer
	outFile          *os.File
	errLogger        *log.Logger
	telemetryService telemetry.Service
	newConnector     func(uri string) mongodb.Connector
}

// CommandFactoryOption configures a command factory
type CommandFactoryOption func(factory *CommandFactory)

// WithUI makes the factory print through the provided UI
// instead of one built from the global flags
func WithUI(ui terminal.UI) CommandFactoryOption {
	return func(factory *CommandFactory) { factory.ui = ui }
}

// WithConnector makes the factory connect to MongoDB through the provided connectors
func WithConnector(newConnector func(uri string) mongodb.Connector) CommandFactoryOption {
	return func(factory *CommandFactory) { factory.newConnector = newConnector }
}

// NewCommandFactory creates a new command factory
func NewCommandFactory(opts ...CommandFactoryOption) (*CommandFactory, error) {
	profile, profileErr := NewDefaultProfile()
	if profileErr != nil {
		return nil, profileErr
	}

	factory := &CommandFactory{
		profile:      profile,
		errLogger:    log.New(os.Stderr, "UTC ERROR ", log.Ltime|log.Lmsgprefix),
		newConnector: mongodb.NewConnector,
	}
	for _, opt := range opts {
		opt(factory)
	}
	return factory, nil
}

// Build builds a Cobra command from the specified CommandDefinition
func (factory *CommandFactory) Build(command CommandDefinition) *cobra.Command {
	display := command.Display
	if display == "" {
		display = command.Use
	}

	cmd := cobra.Command{
		Use:     command.Use,
		Short:   command.Description,
		Long:    command.Help,
		Aliases: command.Aliases,
	}

	cmd.InheritedFlags().SortFlags = false // ensures command usage text displays global flags unsorted

	for _, subCommand := range command.SubCommands {
		cmd.AddCommand(factory.Build(subCommand))
	}

	if command.Command == nil {
		return &cmd
	}

	if command, ok := command.Command.(CommandFlags); ok {
		fs := cmd.Flags()
		fs.SortFlags = false // ensures command flags are added unsorted
		for _, flag := range command.Flags() {
			flag.Register(fs)
		}
	}

	cmd.PersistentPreRunE = func(c *cobra.Command, a []string) error {
		if err := factory.Setup(); err != nil {
			return err
		}

		factory.ensureUI()
		c.SetIn(factory.inReader)
		c.SetOut(factory.outWriter)
		c.SetErr(factory.errWriter)

		if err := factory.profile.ResolveFlags(); err != nil {
			return err
		}

		factory.telemetryService = telemetry.NewService(
			factory.profile.TelemetryMode,
			display,
			Version,
			factory.outWriter,
		)
		return nil
	}

	if command, ok := command.Command.(CommandInputs); ok {
		cmd.PreRunE = func(c *cobra.Command, a []string) error {
			if err := command.Inputs().Resolve(factory.profile, factory.ui); err != nil {
				return fmt.Errorf("%s setup failed: %w", display, errDisableUsage{err})
			}
			return nil
		}
	}

	cmd.RunE = func(c *cobra.Command, a []string) error {
		factory.telemetryService.TrackEvent(telemetry.EventTypeCommandStart)

		err := command.Command.Handler(factory.profile, factory.ui, Clients{
			Mongo:     factory.newConnector(factory.profile.URI),
			Telemetry: factory.telemetryService,
		})
		if err != nil {
			factory.telemetryService.TrackEvent(telemetry.EventTypeCommandError, telemetry.EventDataError(err)...)
			return fmt.Errorf("%s failed: %w", display, errDisableUsage{err})
		}

		factory.telemetryService.TrackEvent(telemetry.EventTypeCommandComplete)
		return nil
	}

	return &cmd
}

// Close closes the command factory
func (factory *CommandFactory) Close() {
	if factory.telemetryService != nil {
		factory.telemetryService.Close()
	}

	if factory.outFile != nil {
		factory.outFile.Close()
	}
}

// Run executes the command and returns the process exit code
func (factory *CommandFactory) Run(cmd *cobra.Command) int {
	defer factory.Close()

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	handleUsage(cmd, err)

	if factory.ui == nil {
		factory.errLogger.Println(err)
		return 1
	}

	logs := []terminal.Log{terminal.NewErrorLog(err)}

	var suggester CommandSuggester
	if errors.As(err, &suggester) && len(suggester.SuggestedCommands()) > 0 {
		logs = append(logs, terminal.NewFollowupLog(terminal.MsgSuggestedCommands, toItems(suggester.SuggestedCommands())...))
	}

	var referrer LinkReferrer
	if errors.As(err, &referrer) && len(referrer.ReferenceLinks()) > 0 {
		logs = append(logs, terminal.NewFollowupLog(terminal.MsgReferenceLinks, toItems(referrer.ReferenceLinks())...))
	}

	factory.ui.Print(logs...)
	return 1
}

// SetGlobalFlags sets the global flags
func (factory *CommandFactory) SetGlobalFlags(fs *pflag.FlagSet) {
	fs.SortFlags = false // ensures global flags are added unsorted

	// profile flags
	fs.StringVar(&factory.profile.Name, FlagProfile, DefaultProfile, FlagProfileUsage)
	fs.StringVar(&factory.profile.URI, FlagURI, "", FlagURIUsage)
	fs.Var(&factory.profile.TelemetryMode, telemetry.FlagMode, telemetry.FlagModeUsage)

	// ui flags
	fs.StringVarP(&factory.uiConfig.OutputTarget, terminal.FlagOutputTarget, terminal.FlagOutputTargetShort, "", terminal.FlagOutputTargetUsage)
	fs.VarP(&factory.uiConfig.OutputFormat, terminal.FlagOutputFormat, terminal.FlagOutputFormatShort, terminal.FlagOutputFormatUsage)
	fs.BoolVar(&factory.uiConfig.DisableColors, terminal.FlagDisableColors, false, terminal.FlagDisableColorsUsage)
}

// Setup loads the CLI profile and opens the output target, if any
func (factory *CommandFactory) Setup() error {
	if err := factory.profile.Load(); err != nil {
		return err
	}

	if filepath := factory.uiConfig.OutputTarget; filepath != "" && factory.outFile == nil {
		f, err := os.OpenFile(filepath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0660)
		if err != nil {
			return NewPrivileged("failed to open target file", err)
		}
		factory.outFile = f
		factory.outWriter = f
	}
	return nil
}

func (factory *CommandFactory) ensureUI() {
	if factory.inReader == nil {
		factory.inReader = os.Stdin
	}

	if factory.outWriter == nil {
		factory.outWriter = os.Stdout
	}

	if factory.errWriter == nil {
		if factory.uiConfig.OutputTarget != "" {
			factory.errWriter = factory.outWriter
		} else {
			factory.errWriter = os.Stderr
		}
	}

	if factory.ui == nil {
		factory.ui = terminal.NewUI(factory.uiConfig, factory.inReader, factory.outWriter, factory.errWriter)
	}
}

func handleUsage(cmd *cobra.Command, err error) {
	var disableUsage DisableUsage
	if errors.As(err, &disableUsage) {
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), cmd.UsageString())
}

func toItems(values []string) []interface{} {
	items := make([]interface{}, len(values))
	for i, value := range values {
		items[i] = value
	}
	return items
}
