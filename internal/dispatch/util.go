package dispatch

import (
	"strings"

	"github.com/iamNilotpal/redcask/internal/keyspace"
	"github.com/iamNilotpal/redcask/pkg/errors"
)

const keyspaceNoExpiryMs = keyspace.NoExpiry

func equalFoldStr(b []byte) string {
	return strings.ToUpper(string(b))
}

func newNotAnInteger(arg []byte) error {
	return errors.NewNotAnIntegerError(string(arg))
}

func newNotAFloat(arg []byte) error {
	return errors.NewNotAFloatError(string(arg))
}
