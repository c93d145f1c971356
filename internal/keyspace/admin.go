package keyspace

import "github.com/iamNilotpal/redcask/pkg/options"

// RuntimeConfig exposes the subset of server options CONFIG GET/SET may
// inspect or change at runtime, at minimum appendfsync per spec.md §4.6.
// It wraps the same options.AppendFsyncPolicy the durability engine reads,
// so a CONFIG SET takes effect on the engine's very next flush decision.
type RuntimeConfig struct {
	AppendFsync *options.AppendFsyncPolicy
}

// ConfigGet returns the current string value of a runtime-configurable
// parameter, and whether the name is recognized.
func (rc *RuntimeConfig) ConfigGet(name string) (string, bool) {
	switch name {
	case "appendfsync":
		return string(*rc.AppendFsync), true
	default:
		return "", false
	}
}

// ConfigSet updates a runtime-configurable parameter, reporting whether the
// name and value were both recognized.
func (rc *RuntimeConfig) ConfigSet(name, value string) bool {
	switch name {
	case "appendfsync":
		switch options.AppendFsyncPolicy(value) {
		case options.AppendFsyncAlways, options.AppendFsyncEverysec, options.AppendFsyncNo:
			*rc.AppendFsync = options.AppendFsyncPolicy(value)
			return true
		}
	}
	return false
}
