package shared

import (
	"github.com/charopevez/eob-dbinit/internal/mongodb"
)

// set of user table headers
const (
	HeaderID         = "ID"
	HeaderUser       = "User"
	HeaderRoles      = "Roles"
	HeaderMechanisms = "Mechanisms"
)

// UserTableHeaders are the headers of a table of users
var UserTableHeaders = []string{HeaderID, HeaderUser, HeaderRoles, HeaderMechanisms}

// UserTableRow is the table row of a user
func UserTableRow(user mongodb.User) map[string]interface{} {
	roles := make([]string, len(user.Roles))
	for i, role := range user.Roles {
		roles[i] = role.String()
	}

	mechanisms := make([]string, len(user.Mechanisms))
	for i, mechanism := range user.Mechanisms {
		mechanisms[i] = mechanism.String()
	}

	return map[string]interface{}{
		HeaderID:         user.ID,
		HeaderUser:       user.Username,
		HeaderRoles:      roles,
		HeaderMechanisms: mechanisms,
	}
}
