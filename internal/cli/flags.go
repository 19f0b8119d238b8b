// Copyright (c) 2026 Keymaster Team
// Zynq - one-shot SFTP directory push
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"

	"github.com/toeirei/zynq/internal/failure"
	"github.com/toeirei/zynq/internal/i18n"
)

// valueCutset is stripped from both ends of every flag value. Shells and
// wrapper scripts tend to leave quotes and whitespace behind.
const valueCutset = " '\"\n\t"

var errAlreadySet = errors.New("already set")

// onceValue is a string flag that may be given only once. Setting it again
// while it holds a non-empty value records the offending argument.
type onceValue struct {
	name    string
	target  *string
	illegal *string
}

var _ pflag.Value = (*onceValue)(nil)

func (o *onceValue) String() string {
	if o.target == nil {
		return ""
	}
	return *o.target
}

func (o *onceValue) Set(v string) error {
	if *o.target != "" {
		if *o.illegal == "" {
			*o.illegal = "--" + o.name + "=" + v
		}
		return errAlreadySet
	}
	*o.target = strings.Trim(v, valueCutset)
	return nil
}

func (o *onceValue) Type() string { return "string" }

// detachedValue returns the first value-taking flag in args that is not
// joined to its value with '=', or "" when every such flag is.
func detachedValue(fs *pflag.FlagSet, args []string) string {
	for _, arg := range args {
		if arg == "--" {
			return ""
		}
		if !strings.HasPrefix(arg, "--") || strings.Contains(arg, "=") {
			continue
		}
		f := fs.Lookup(strings.TrimPrefix(arg, "--"))
		if f == nil {
			continue
		}
		if _, ok := f.Value.(*onceValue); ok {
			return arg
		}
	}
	return ""
}

// illegalArgument builds the Argument error reported for arg.
func illegalArgument(arg string) error {
	return failure.New(failure.Argument, "%s", i18n.T("args.illegal", arg))
}

// offendingArg pulls the argument out of a pflag parse error such as
// "unknown flag: --foo" or "flag needs an argument: 'r' in -r".
func offendingArg(err error) string {
	fields := strings.Fields(err.Error())
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
