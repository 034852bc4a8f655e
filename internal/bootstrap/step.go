package bootstrap

import "fmt"

// Step is one of the ordered bootstrap steps
type Step int

// set of bootstrap steps, in the order they run
const (
	StepAuthenticateAdmin Step = iota + 1
	StepSelectNamespace
	StepCreateUser
	StepAuthenticateUser
)

var stepNames = map[Step]string{
	StepAuthenticateAdmin: "authenticate as administrator",
	StepSelectNamespace:   "select target namespace",
	StepCreateUser:        "create user",
	StepAuthenticateUser:  "authenticate as new user",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step %d", int(s))
}
