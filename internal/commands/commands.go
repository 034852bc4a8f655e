package commands

import (
	"github.com/charopevez/eob-dbinit/internal/cli"
	"github.com/charopevez/eob-dbinit/internal/commands/bootstrap"
	"github.com/charopevez/eob-dbinit/internal/commands/profile"
	"github.com/charopevez/eob-dbinit/internal/commands/user"
)

// set of commands
var (
	Bootstrap = cli.CommandDefinition{
		Command:     &bootstrap.Command{},
		Use:         "bootstrap",
		Aliases:     []string{"init"},
		Description: "Provision the application user of a MongoDB deployment",
		Help: `Provision the application user of a MongoDB deployment

	Authenticates as the administrator, creates the application user in its
	namespace with the configured roles and mechanisms, then authenticates as
	that user. With a default profile, the user eobuser is granted readWrite on
	eob_system and authenticates with SCRAM-SHA-1 using a client digested password.
	Any failure stops the run and exits with a non-zero code.`,
	}

	User = cli.CommandDefinition{
		Use:         "user",
		Aliases:     []string{"users"},
		Description: "Inspect the users of the application namespace",
		Help:        "user",
		SubCommands: []cli.CommandDefinition{
			cli.CommandDefinition{
				Use:         "list",
				Aliases:     []string{"ls"},
				Display:     "user list",
				Description: "List the users of the application namespace",
				Help:        "Authenticates as the administrator and lists the users of the application namespace",
				Command:     &user.CommandList{},
			},
			cli.CommandDefinition{
				Use:         "verify",
				Display:     "user verify",
				Description: "Authenticate as the application user",
				Help:        "Authenticates as the application user without provisioning anything",
				Command:     &user.CommandVerify{},
			},
		},
	}

	Profile = cli.CommandDefinition{
		Command:     &profile.Command{},
		Use:         "profile",
		Description: "Display the settings of the CLI profile",
		Help: `Display the settings of the CLI profile

	Settings are read from the profile file, then from the environment variables
	prefixed with EOB_ and finally fall back to their defaults. Secrets are masked.`,
	}
)
