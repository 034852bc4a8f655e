package terminal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const (
	logFieldHeaders = "headers"
	logFieldData    = "data"
)

// set of exported spacing options
const (
	Indent = "  "
	Gutter = "  "
)

var (
	tableFields = []string{logFieldMessage, logFieldData, logFieldHeaders}

	errTableNoHeaders = errors.New("cannot create a table without headers")
)

type table struct {
	message      string
	headers      []string
	data         []map[string]string
	columnWidths map[string]int
}

// newTable keeps the header columns of every non-empty row, formatted as text
func newTable(message string, headers []string, data []map[string]interface{}) table {
	if len(headers) == 0 {
		return table{}
	}

	t := table{
		message:      message,
		headers:      headers,
		data:         make([]map[string]string, 0, len(data)),
		columnWidths: make(map[string]int, len(headers)),
	}

	for _, header := range headers {
		t.widen(header, header)
	}

	for _, row := range data {
		if len(row) == 0 {
			continue
		}

		cells := make(map[string]string, len(headers))
		for _, header := range headers {
			cells[header] = parseValue(row[header])
			t.widen(header, cells[header])
		}
		t.data = append(t.data, cells)
	}
	return t
}

func (t table) widen(header, cell string) {
	if len(cell) > t.columnWidths[header] {
		t.columnWidths[header] = len(cell)
	}
}

func (t table) Message() (string, error) {
	if err := t.validate(); err != nil {
		return "", err
	}

	bold := color.New(color.Bold).SprintFunc()

	lines := make([]string, 0, len(t.data)+3)
	lines = append(lines,
		t.message,
		t.line(func(header string) (string, int) { return bold(header), len(header) }),
		t.line(func(header string) (string, int) {
			return strings.Repeat("-", t.columnWidths[header]), t.columnWidths[header]
		}),
	)
	for _, row := range t.data {
		lines = append(lines, t.line(func(header string) (string, int) { return row[header], len(row[header]) }))
	}
	return strings.Join(lines, "\n"), nil
}

func (t table) Payload() ([]string, map[string]interface{}, error) {
	if err := t.validate(); err != nil {
		return nil, nil, err
	}
	return tableFields, map[string]interface{}{
		logFieldMessage: t.message,
		logFieldHeaders: t.headers,
		logFieldData:    t.data,
	}, nil
}

func (t table) validate() error {
	if len(t.headers) == 0 {
		return errTableNoHeaders
	}
	return nil
}

// line pads every cell to its column width,
// cell returns the displayed text along with its printable width
func (t table) line(cell func(header string) (string, int)) string {
	var sb strings.Builder
	sb.WriteString(Indent)
	for i, header := range t.headers {
		if i > 0 {
			sb.WriteString(Gutter)
		}
		text, width := cell(header)
		sb.WriteString(text)
		sb.WriteString(strings.Repeat(" ", t.columnWidths[header]-width))
	}
	return sb.String()
}

func parseValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	}
	return fmt.Sprintf("%+v", v)
}
