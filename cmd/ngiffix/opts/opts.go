package opts

import (
	"github.com/walteh/ngiffix/pkg/log"
	"github.com/walteh/ngiffix/pkg/normalize"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// RulesFile is an optional rules config path
	RulesFile string
	Debug     bool

	// Rules is the active rule list, filled in before any command runs
	Rules      []normalize.Rule
	UserLogger *log.UserLogger
}
