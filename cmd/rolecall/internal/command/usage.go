package command

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrBadUsage = errors.New("bad usage string")

// usageArgs matches "[optional]" and "<required>" usage placeholders.
var usageArgs = regexp.MustCompile(`\[([^\[\]]+)\]|<([^<>]+)>`)

// ValidateUsage checks that a usage string's placeholders read
// sensibly: required arguments never follow optional ones, and
// nothing follows a rest argument (one whose name starts with "*").
func ValidateUsage(usage string) error {
	if usage == "" {
		return fmt.Errorf("%w: usage is required", ErrBadUsage)
	}

	var prevOptional, prevRest bool
	for _, match := range usageArgs.FindAllStringSubmatch(usage, -1) {
		optional := match[1] != ""
		name := match[1]
		if !optional {
			name = match[2]
		}

		if prevRest {
			return fmt.Errorf("%w: no argument may follow a rest argument", ErrBadUsage)
		}
		if !optional && prevOptional {
			return fmt.Errorf("%w: required argument %q follows an optional one", ErrBadUsage, name)
		}

		prevOptional = optional
		prevRest = strings.HasPrefix(name, "*")
	}

	return nil
}
