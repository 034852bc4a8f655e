package terminal

import (
	"fmt"
	"strings"
)

var (
	listFields = []string{logFieldMessage, logFieldData}
)

type list struct {
	message string
	data    []string
}

func newList(message string, data []interface{}) list {
	l := list{
		message: message,
		data:    make([]string, 0, len(data)),
	}
	for _, item := range data {
		l.data = append(l.data, parseValue(item))
	}
	return l
}

func (l list) Message() (string, error) {
	rows := make([]string, len(l.data))
	for i, item := range l.data {
		rows[i] = Indent + item
	}
	return fmt.Sprintf("%s\n%s", l.message, strings.Join(rows, "\n")), nil
}

func (l list) Payload() ([]string, map[string]interface{}, error) {
	return listFields, map[string]interface{}{
		logFieldMessage: l.message,
		logFieldData:    l.data,
	}, nil
}
