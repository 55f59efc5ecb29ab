package command

import (
	"errors"
	"strings"
)

var (
	ErrMissingArgument = errors.New("missing argument")
)

type AddArgs struct {
	Role string
}

func (args *AddArgs) ParseArg(s string) error {
	role := strings.TrimSpace(s)
	if role == "" {
		return ErrMissingArgument
	}
	args.Role = role
	return nil
}

type RemoveArgs struct {
	Role string
}

func (args *RemoveArgs) ParseArg(s string) error {
	role := strings.TrimSpace(s)
	if role == "" {
		return ErrMissingArgument
	}
	args.Role = role
	return nil
}

type ListArgs struct{}

func (args *ListArgs) ParseArg(s string) error { return nil }

type MineArgs struct{}

func (args *MineArgs) ParseArg(s string) error { return nil }

type TopArgs struct{}

func (args *TopArgs) ParseArg(s string) error { return nil }

type MenuArgs struct{}

func (args *MenuArgs) ParseArg(s string) error { return nil }

type HelpArgs struct{}

func (args *HelpArgs) ParseArg(s string) error { return nil }
