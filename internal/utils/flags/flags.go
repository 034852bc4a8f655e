// Package flags describes command flags independently of the pflag set they register to
package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Flag is a command flag
type Flag interface {
	Register(fs *pflag.FlagSet)
}

// Meta is the flag metadata
type Meta struct {
	Name      string
	Shorthand string
	Usage     Usage
	Hidden    bool
}

// Usage is the flag usage
type Usage struct {
	Description   string
	DefaultValue  string
	AllowedValues []string
}

// String returns the usage text shown in the command help
func (u Usage) String() string {
	var details []string
	if u.DefaultValue != "" {
		details = append(details, "Default value: "+u.DefaultValue)
	}
	if len(u.AllowedValues) > 0 {
		details = append(details, "Allowed values: "+strings.Join(u.AllowedValues, ", "))
	}
	if len(details) == 0 {
		return u.Description
	}
	return fmt.Sprintf("%s [%s]", u.Description, strings.Join(details, "; "))
}

func (m Meta) markHidden(fs *pflag.FlagSet) {
	if m.Hidden {
		MarkHidden(fs, m.Name)
	}
}

// MarkHidden hides the named flag from the help text
func MarkHidden(fs *pflag.FlagSet, name string) {
	if err := fs.MarkHidden(name); err != nil {
		panic(err) // the flag must be registered before it is hidden
	}
}

// BoolFlag is a bool flag
type BoolFlag struct {
	Meta
	Value        *bool
	DefaultValue bool
}

// Register registers the flag to the flag set
func (f BoolFlag) Register(fs *pflag.FlagSet) {
	if f.Shorthand == "" {
		fs.BoolVar(f.Value, f.Name, f.DefaultValue, f.Usage.String())
	} else {
		fs.BoolVarP(f.Value, f.Name, f.Shorthand, f.DefaultValue, f.Usage.String())
	}
	f.markHidden(fs)
}

// StringFlag is a string flag
type StringFlag struct {
	Meta
	Value        *string
	DefaultValue string
}

// Register registers the flag to the flag set
func (f StringFlag) Register(fs *pflag.FlagSet) {
	if f.Shorthand == "" {
		fs.StringVar(f.Value, f.Name, f.DefaultValue, f.Usage.String())
	} else {
		fs.StringVarP(f.Value, f.Name, f.Shorthand, f.DefaultValue, f.Usage.String())
	}
	f.markHidden(fs)
}

// CustomFlag is a flag holding any pflag.Value
type CustomFlag struct {
	Meta
	Value pflag.Value
}

// Register registers the flag to the flag set
func (f CustomFlag) Register(fs *pflag.FlagSet) {
	if f.Shorthand == "" {
		fs.Var(f.Value, f.Name, f.Usage.String())
	} else {
		fs.VarP(f.Value, f.Name, f.Shorthand, f.Usage.String())
	}
	f.markHidden(fs)
}

// StringSetOptions are the options of a string set flag
type StringSetOptions struct {
	Meta
	ValidValues []string
}

// NewStringSetFlag creates a flag accepting a set of unique values,
// restricted to the valid values when there are any
func NewStringSetFlag(value *[]string, opts StringSetOptions) CustomFlag {
	meta := opts.Meta
	if len(opts.ValidValues) > 0 && len(meta.Usage.AllowedValues) == 0 {
		meta.Usage.AllowedValues = make([]string, len(opts.ValidValues))
		for i, v := range opts.ValidValues {
			meta.Usage.AllowedValues[i] = fmt.Sprintf("%q", v)
		}
	}
	return CustomFlag{meta, newStringSet(value, opts.ValidValues)}
}
