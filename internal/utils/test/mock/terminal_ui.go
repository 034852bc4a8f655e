package mock

import (
	"bytes"
	"io"
	"time"

	"github.com/charopevez/eob-dbinit/internal/terminal"

	"github.com/Netflix/go-expect"
	"github.com/hinshun/vt10x"
)

// StaticTime is the time stamped on every log printed by a mock UI, displayed as 01:23:45
var StaticTime = time.Date(1989, 6, 22, 1, 23, 45, 0, time.UTC)

// UIOptions are the options to configure the mock terminal UI
type UIOptions struct {
	UseColors bool
	UseJSON   bool
}

func newUIConfig(options UIOptions) terminal.UIConfig {
	outputFormat := terminal.OutputFormatText
	if options.UseJSON {
		outputFormat = terminal.OutputFormatJSON
	}
	return terminal.UIConfig{
		DisableColors: !options.UseColors,
		OutputFormat:  outputFormat,
	}
}

type ui struct {
	terminal.UI
}

func (ui ui) Print(logs ...terminal.Log) {
	for i := range logs {
		logs[i].Time = StaticTime
	}
	ui.UI.Print(logs...)
}

// NewUI returns a new *bytes.Buffer and a mock terminal UI that writes to the buffer
func NewUI() (*bytes.Buffer, terminal.UI) {
	out := new(bytes.Buffer)
	return out, NewUIWithOptions(UIOptions{}, out)
}

// NewUIWithOptions creates a new mock terminal UI based on the provided options
func NewUIWithOptions(options UIOptions, writer io.Writer) terminal.UI {
	return ui{terminal.NewUI(newUIConfig(options), nil, writer, writer)}
}

// NewConsole returns a new *expect.Console along with its corresponding mock terminal UI
func NewConsole(writers ...io.Writer) (*expect.Console, terminal.UI, error) {
	console, err := expect.NewConsole(expect.WithStdout(writers...))
	if err != nil {
		return nil, nil, err
	}
	return console, ui{terminal.NewUI(newUIConfig(UIOptions{}), console.Tty(), console.Tty(), console.Tty())}, nil
}

// NewVT10XConsole returns a new *expect.Console backed by a virtual terminal
// along with its *vt10x.State and corresponding mock terminal UI
func NewVT10XConsole(writers ...io.Writer) (*expect.Console, *vt10x.State, terminal.UI, error) {
	console, state, err := vt10x.NewVT10XConsole(expect.WithStdout(writers...))
	if err != nil {
		return nil, nil, nil, err
	}
	return console, state, ui{terminal.NewUI(newUIConfig(UIOptions{}), console.Tty(), console.Tty(), console.Tty())}, nil
}
