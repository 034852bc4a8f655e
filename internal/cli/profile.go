package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charopevez/eob-dbinit/internal/bootstrap"
	"github.com/charopevez/eob-dbinit/internal/mongodb"
	"github.com/charopevez/eob-dbinit/internal/telemetry"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	// DefaultProfile is the default profile name
	DefaultProfile = "default"

	// ProfileType is the file type for profiles
	ProfileType = "yaml"

	envPrefix = "eob"
)

// set of supported CLI profile flags
const (
	FlagProfile      = "profile"
	FlagProfileUsage = `Specify your profile (Default value: "default")`

	FlagURI      = "uri"
	FlagURIUsage = "Specify the MongoDB connection string (Default value: the profile's uri)"
)

// set of supported CLI profile keys
const (
	KeyURI           = "uri"
	KeyAdminUsername = "admin_username"
	KeyAdminPassword = "admin_password"
	KeyAdminSource   = "admin_source"
	KeyNamespace     = "namespace"
	KeyUsername      = "username"
	KeyPassword      = "password"
	KeyRole          = "role"
	KeyMechanisms    = "mechanisms"
	KeyDigestor      = "digestor"
	KeyTelemetryMode = "telemetry_mode"
)

var defaults = map[string]string{
	KeyURI:           mongodb.DefaultURI,
	KeyAdminUsername: bootstrap.DefaultAdminUsername,
	KeyAdminPassword: bootstrap.DefaultAdminPassword,
	KeyAdminSource:   mongodb.AdminDatabase,
	KeyNamespace:     bootstrap.DefaultNamespace,
	KeyUsername:      bootstrap.DefaultUsername,
	KeyPassword:      bootstrap.DefaultPassword,
	KeyRole:          bootstrap.DefaultRole,
	KeyMechanisms:    mongodb.MechanismSCRAMSHA1.String(),
	KeyDigestor:      string(mongodb.DigestorClient),
}

// Profile is the CLI profile
type Profile struct {
	Flags
	Name string

	dir string
	fs  afero.Fs
}

// Flags are the CLI profile flags
type Flags struct {
	URI           string
	TelemetryMode telemetry.Mode
}

// NewDefaultProfile creates a new default CLI profile
func NewDefaultProfile() (*Profile, error) {
	return NewProfile(DefaultProfile)
}

// NewProfile creates a new CLI profile
func NewProfile(name string) (*Profile, error) {
	dir, dirErr := homeDir()
	if dirErr != nil {
		return nil, fmt.Errorf("failed to create CLI profile: %w", dirErr)
	}

	return &Profile{
		Name: name,
		dir:  dir,
		fs:   afero.NewOsFs(),
	}, nil
}

// Clear clears the specified CLI profile property
func (p Profile) Clear(name string) {
	p.SetString(name, "")
}

// SetString sets the specified CLI profile property
func (p Profile) SetString(name, value string) {
	viper.Set(p.propertyKey(name), value)
}

// GetString gets the specified CLI profile property,
// falling back to its default when it was never set
func (p Profile) GetString(name string) string {
	key := p.propertyKey(name)
	if !viper.IsSet(key) {
		return defaults[name]
	}
	return viper.GetString(key)
}

func (p Profile) propertyKey(name string) string {
	return fmt.Sprintf("%s.%s", p.Name, name)
}

// Dir returns the CLI profile directory
func (p Profile) Dir() string {
	return p.dir
}

// Path returns the CLI profile filepath
func (p Profile) Path() string {
	return filepath.Join(p.dir, p.Name+"."+ProfileType)
}

// Load loads the CLI profile
func (p Profile) Load() error {
	viper.SetConfigName(p.Name)
	viper.AddConfigPath(p.dir)
	viper.SetConfigPermissions(0600)
	viper.SetConfigType(ProfileType)

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil // proceed if profile doesn't exist
		}
		return fmt.Errorf("failed to load CLI profile: %w", err)
	}
	return nil
}

// Save saves the CLI profile
func (p *Profile) Save() error {
	exists, existsErr := afero.DirExists(p.fs, p.dir)
	if existsErr != nil {
		return fmt.Errorf("failed to save CLI profile: %w", existsErr)
	}

	if !exists {
		if err := p.fs.MkdirAll(p.dir, 0700); err != nil {
			return fmt.Errorf("failed to save CLI profile: %w", err)
		}
	}

	if err := viper.WriteConfigAs(p.Path()); err != nil {
		return fmt.Errorf("failed to save CLI profile: %w", err)
	}
	return nil
}

// ResolveFlags resolves the CLI profile flags
// A flag value takes precedence over the stored one
func (p *Profile) ResolveFlags() error {
	if p.Flags.URI == "" {
		p.Flags.URI = p.GetString(KeyURI)
	}
	p.SetString(KeyURI, p.Flags.URI)

	if p.Flags.TelemetryMode == telemetry.ModeEmpty {
		if err := p.Flags.TelemetryMode.Set(p.GetString(KeyTelemetryMode)); err != nil {
			return fmt.Errorf("failed to resolve %s of profile %s: %w", KeyTelemetryMode, p.Name, err)
		}
	}
	p.SetString(KeyTelemetryMode, p.Flags.TelemetryMode.String())
	return nil
}

// Settings are the bootstrap settings stored in a CLI profile
type Settings struct {
	URI           string `yaml:"uri" json:"uri"`
	AdminUsername string `yaml:"admin_username" json:"admin_username"`
	AdminPassword string `yaml:"admin_password" json:"admin_password"`
	AdminSource   string `yaml:"admin_source" json:"admin_source"`
	Namespace     string `yaml:"namespace" json:"namespace"`
	Username      string `yaml:"username" json:"username"`
	Password      string `yaml:"password" json:"password"`
	Role          string `yaml:"role" json:"role"`
	Mechanisms    string `yaml:"mechanisms" json:"mechanisms"`
	Digestor      string `yaml:"digestor" json:"digestor"`
	TelemetryMode string `yaml:"telemetry_mode,omitempty" json:"telemetry_mode,omitempty"`
}

// Settings returns the bootstrap settings of the CLI profile
func (p Profile) Settings() Settings {
	return Settings{
		URI:           p.GetString(KeyURI),
		AdminUsername: p.GetString(KeyAdminUsername),
		AdminPassword: p.GetString(KeyAdminPassword),
		AdminSource:   p.GetString(KeyAdminSource),
		Namespace:     p.GetString(KeyNamespace),
		Username:      p.GetString(KeyUsername),
		Password:      p.GetString(KeyPassword),
		Role:          p.GetString(KeyRole),
		Mechanisms:    p.GetString(KeyMechanisms),
		Digestor:      p.GetString(KeyDigestor),
		TelemetryMode: p.GetString(KeyTelemetryMode),
	}
}

// SetSettings stores every bootstrap setting in the CLI profile
func (p Profile) SetSettings(s Settings) {
	p.SetString(KeyURI, s.URI)
	p.SetString(KeyAdminUsername, s.AdminUsername)
	p.SetString(KeyAdminPassword, s.AdminPassword)
	p.SetString(KeyAdminSource, s.AdminSource)
	p.SetString(KeyNamespace, s.Namespace)
	p.SetString(KeyUsername, s.Username)
	p.SetString(KeyPassword, s.Password)
	p.SetString(KeyRole, s.Role)
	p.SetString(KeyMechanisms, s.Mechanisms)
	p.SetString(KeyDigestor, s.Digestor)
	if s.TelemetryMode != "" {
		p.SetString(KeyTelemetryMode, s.TelemetryMode)
	}
}

// Redacted returns the settings with every secret masked
func (s Settings) Redacted() Settings {
	s.URI = mongodb.RedactURI(s.URI)
	s.AdminPassword = Redact(s.AdminPassword)
	s.Password = Redact(s.Password)
	return s
}

// Redact masks every character of a secret
func Redact(secret string) string {
	return strings.Repeat("*", len(secret))
}
