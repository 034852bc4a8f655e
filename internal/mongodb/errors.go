package mongodb

import (
	"errors"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver"
)

// set of server error codes the bootstrap cares about
const (
	CodeUnauthorized         int32 = 13
	CodeAuthenticationFailed int32 = 18
	CodeDuplicateKey         int32 = 11000
	CodeUserAlreadyExists    int32 = 51003
)

// ErrorCode returns the server error code carried by err, or 0 if there is none
func ErrorCode(err error) int32 {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code
	}

	var driverErr driver.Error
	if errors.As(err, &driverErr) {
		return driverErr.Code
	}
	return 0
}

// IsAuthenticationFailure reports whether err is the server rejecting a credential
func IsAuthenticationFailure(err error) bool {
	if err == nil {
		return false
	}
	if ErrorCode(err) == CodeAuthenticationFailed {
		return true
	}

	// handshake failures surface as connection errors whose cause is only kept as text
	msg := err.Error()
	return strings.Contains(msg, "auth error") ||
		strings.Contains(msg, "AuthenticationFailed") ||
		strings.Contains(msg, "Authentication failed")
}

// IsDuplicateUser reports whether err is the server refusing to create an existing user
func IsDuplicateUser(err error) bool {
	switch ErrorCode(err) {
	case CodeUserAlreadyExists, CodeDuplicateKey:
		return true
	}
	return false
}

// IsUnauthorized reports whether err is the server refusing a command for lack of privilege
func IsUnauthorized(err error) bool {
	return ErrorCode(err) == CodeUnauthorized
}

// RedactURI masks the password of a connection string
func RedactURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.User == nil {
		return uri
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
