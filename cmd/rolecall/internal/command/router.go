// Package command routes chat messages addressed to the bot into
// typed, parsed arguments.
package command

import (
	"fmt"
	"regexp"
)

type ArgParser interface {
	ParseArg(s string) error
}

// Spec describes one chat command.
type Spec struct {
	Name        string
	Usage       string
	Description string
	Hidden      bool
	New         func() ArgParser
}

type route struct {
	matcher *regexp.Regexp
	spec    Spec
}

type Router struct {
	name   string
	routes []route
}

// NewRouter builds a router for messages addressed to name, which is
// usually the bot's @-mention.
func NewRouter(name string) *Router {
	r := &Router{name: name}

	specs := []Spec{
		{
			Name:        "add",
			Usage:       "add <role>",
			Description: "Assign yourself a whitelisted role.",
			New:         func() ArgParser { return new(AddArgs) },
		},
		{
			Name:        "remove",
			Usage:       "remove <role>",
			Description: "Remove one of your whitelisted roles.",
			New:         func() ArgParser { return new(RemoveArgs) },
		},
		{
			Name:        "list",
			Usage:       "list",
			Description: "List the whitelisted roles.",
			New:         func() ArgParser { return new(ListArgs) },
		},
		{
			Name:        "mine",
			Usage:       "mine",
			Description: "List the whitelisted roles you hold.",
			New:         func() ArgParser { return new(MineArgs) },
		},
		{
			Name:        "top",
			Usage:       "top",
			Description: "Show the role leaderboard.",
			New:         func() ArgParser { return new(TopArgs) },
		},
		{
			Name:        "menu",
			Usage:       "menu",
			Description: "Open the interactive role menu.",
			New:         func() ArgParser { return new(MenuArgs) },
		},
		{
			Name:        "help",
			Usage:       "help",
			Description: "Show this help text.",
			Hidden:      true,
			New:         func() ArgParser { return new(HelpArgs) },
		},
	}

	for _, spec := range specs {
		mustRegister(r, spec)
	}

	return r
}

// Register installs a command. Its usage string must validate.
func (r *Router) Register(spec Spec) error {
	if spec.Name == "" {
		return fmt.Errorf("command name is required")
	}
	if spec.Description == "" {
		return fmt.Errorf("command %q: description is required", spec.Name)
	}
	if err := ValidateUsage(spec.Usage); err != nil {
		return fmt.Errorf("command %q: %w", spec.Name, err)
	}
	if spec.New == nil {
		return fmt.Errorf("command %q: constructor is required", spec.Name)
	}

	matcher := regexp.MustCompile(
		`^` + regexp.QuoteMeta(r.name) + `\s+` + regexp.QuoteMeta(spec.Name) + `\b`)
	r.routes = append(r.routes, route{matcher: matcher, spec: spec})
	return nil
}

func mustRegister(r *Router, spec Spec) {
	if err := r.Register(spec); err != nil {
		panic(err)
	}
}

// Route matches s against the installed commands. It returns a nil
// ArgParser when the message is not addressed to any command.
func (r *Router) Route(s string) (args ArgParser, remainder string) {
	for _, rt := range r.routes {
		if matched := rt.matcher.ReplaceAllString(s, ""); matched != s {
			return rt.spec.New(), matched
		}
	}

	return nil, s
}

// Specs returns the installed commands in registration order.
func (r *Router) Specs() []Spec {
	specs := make([]Spec, 0, len(r.routes))
	for _, rt := range r.routes {
		specs = append(specs, rt.spec)
	}
	return specs
}
