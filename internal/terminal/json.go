package terminal

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
)

const (
	logFieldTitle = "title"
	logFieldDoc   = "doc"
)

var (
	jsonDocumentFields       = []string{logFieldDoc}
	titledJSONDocumentFields = []string{logFieldTitle, logFieldDoc}
)

type jsonDocument struct {
	title string
	data  interface{}
}

func (j jsonDocument) Message() (string, error) {
	data, err := json.MarshalIndent(j.data, "", "  ")
	if err != nil {
		return "", err
	}
	if j.title == "" {
		return string(data), nil
	}

	title := color.New(color.Bold).SprintFunc()(j.title)
	return fmt.Sprintf("%s\n---\n%s", title, data), nil
}

func (j jsonDocument) Payload() ([]string, map[string]interface{}, error) {
	if j.title == "" {
		return jsonDocumentFields, map[string]interface{}{
			logFieldDoc: j.data,
		}, nil
	}
	return titledJSONDocumentFields, map[string]interface{}{
		logFieldTitle: j.title,
		logFieldDoc:   j.data,
	}, nil
}
