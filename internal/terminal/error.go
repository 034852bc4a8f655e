package terminal

import (
	"errors"
)

const (
	logFieldErr = "err"
)

var (
	errorMessageFields = []string{logFieldErr}

	errPromptJSON = errors.New("cannot prompt for input while the output format is json")
)

type errorMessage struct {
	error
}

func (e errorMessage) Message() (string, error) {
	return e.Error(), nil
}

func (e errorMessage) Payload() ([]string, map[string]interface{}, error) {
	return errorMessageFields, map[string]interface{}{
		logFieldErr: e.Error(),
	}, nil
}
