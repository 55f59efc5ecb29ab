package rolecall

import (
	"errors"
	"fmt"
	"strings"
	"text/template"

	rcerrors "github.com/mktierney/rolecall/errors"
)

// User-visible strings for every role operation outcome and read-only view.
// The bot and the interactive menu both render through these so the two
// surfaces never drift apart.

var (
	templateHeld = template.Must(template.New("held").Parse(
		`***{{ .User }}'s {{ .Prefix }} roles:

{{ range .Roles }}{{ . }}
{{ end }}***`))
	templateWhitelist = template.Must(template.New("whitelist").Parse(
		`***Whitelisted {{ .Prefix }} roles:

{{ range .Roles }}{{ . }}
{{ end }}***`))
	templateBoard = template.Must(template.New("board").Parse(
		`***{{ .Prefix }} roles leaderboard:

{{ range .Board }}Current {{ .Role }} users: {{ .Count }}
{{ end }}***`))
)

func AddedMessage(reg Registry, user, role string) string {
	return fmt.Sprintf("***%s has been added to the %s %s role***", user, role, reg.Prefix())
}

func RemovedMessage(reg Registry, user, role string) string {
	return fmt.Sprintf("***%s has been removed from the %s %s role***", user, role, reg.Prefix())
}

func NotWhitelistedMessage(reg Registry, role string) string {
	return fmt.Sprintf("***%s is not a whitelisted %s role***", role, reg.Prefix())
}

func MaxRolesMessage(reg Registry, user string) string {
	return fmt.Sprintf("***%s has the max amount of %s roles***", user, reg.Prefix())
}

func AlreadyHasMessage(reg Registry, user, role string) string {
	return fmt.Sprintf("***%s already has the %s %s role***", user, role, reg.Prefix())
}

func DoesNotHaveMessage(reg Registry, user, role string) string {
	return fmt.Sprintf("***%s does not have the %s %s role***", user, role, reg.Prefix())
}

// ResultMessage maps a business outcome from AddRole or RemoveRole to its
// user-visible message. It returns false for errors that are not business
// outcomes (remote failures), which callers must propagate instead.
func ResultMessage(reg Registry, user, role string, err error) (string, bool) {
	switch {
	case errors.Is(err, rcerrors.ErrNotWhitelisted):
		return NotWhitelistedMessage(reg, role), true
	case errors.Is(err, rcerrors.ErrMaxRoles):
		return MaxRolesMessage(reg, user), true
	case errors.Is(err, rcerrors.ErrAlreadyHasRole):
		return AlreadyHasMessage(reg, user, role), true
	case errors.Is(err, rcerrors.ErrDoesNotHaveRole):
		return DoesNotHaveMessage(reg, user, role), true
	}
	return "", false
}

// RolesMessage lists the whitelisted roles a member holds.
func RolesMessage(reg Registry, user string, held []string) string {
	if len(held) == 0 {
		return fmt.Sprintf("***%s has no %s roles yet***", user, reg.Prefix())
	}

	var b strings.Builder
	_ = templateHeld.Execute(&b, struct {
		User   string
		Prefix string
		Roles  []string
	}{user, reg.Prefix(), held})
	return b.String()
}

// WhitelistMessage lists every configured whitelist entry.
func WhitelistMessage(reg Registry) string {
	if reg.Len() == 0 {
		return fmt.Sprintf("***There are currently no whitelisted %s roles***", reg.Prefix())
	}

	var b strings.Builder
	_ = templateWhitelist.Execute(&b, struct {
		Prefix string
		Roles  []string
	}{reg.Prefix(), reg.Names()})
	return b.String()
}

// LeaderboardMessage renders a leaderboard already sorted by member count.
func LeaderboardMessage(reg Registry, board []BoardEntry) string {
	if len(board) == 0 {
		return fmt.Sprintf("***Nobody has any %s roles yet***", reg.Prefix())
	}

	var b strings.Builder
	_ = templateBoard.Execute(&b, struct {
		Prefix string
		Board  []BoardEntry
	}{reg.Prefix(), board})
	return b.String()
}

// InfoMessage summarizes the registry configuration.
func InfoMessage(reg Registry) string {
	return fmt.Sprintf(
		"***%s roles info:\n\nWhitelisted roles: %d\nMax roles per member: %d***",
		reg.Prefix(), reg.Len(), reg.MaxRoles(),
	)
}
