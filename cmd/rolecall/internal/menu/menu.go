// Package menu implements the interactive role panel: a message with
// buttons for each role action, and a paginated select menu for
// picking roles.
package menu

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/mktierney/rolecall"
)

// Action is the mode the panel is in after a button press.
type Action int

const (
	ActionNone Action = iota
	ActionAdd
	ActionRemove
	ActionList
	ActionYourRoles
	ActionLeaderboard
	ActionInfo
)

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "Add"
	case ActionRemove:
		return "Remove"
	case ActionList:
		return "List"
	case ActionYourRoles:
		return "Your Roles"
	case ActionLeaderboard:
		return "Leaderboard"
	case ActionInfo:
		return "Info"
	default:
		return "None"
	}
}

const (
	customIDSelect = "rolemenu:select"
	customIDBack   = "rolemenu:back"
	customIDAdd    = "rolemenu:add"
	customIDRemove = "rolemenu:remove"
	customIDList   = "rolemenu:list"
	customIDYours  = "rolemenu:yours"
	customIDTop    = "rolemenu:top"
	customIDInfo   = "rolemenu:info"
)

// Select menu sentinel values that are not role names.
const (
	nextValue = "Next Page"
	prevValue = "Previous Page"
	noneValue = "No Options Available"
)

var buttonActions = map[string]Action{
	customIDAdd:    ActionAdd,
	customIDRemove: ActionRemove,
	customIDList:   ActionList,
	customIDYours:  ActionYourRoles,
	customIDTop:    ActionLeaderboard,
	customIDInfo:   ActionInfo,
}

// Messenger is the outgoing surface a panel needs.
type Messenger interface {
	SendPanel(channelID string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) (string, error)
	EditPanel(channelID, messageID string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error
}

// Click is one component interaction on the panel.
type Click struct {
	UserID   string
	UserName string
	CustomID string
	Values   []string
	Ack      func() error
}

// Session is the state of one open panel. Only its owner, the member
// who opened it, may drive it.
type Session struct {
	mu sync.Mutex

	svc *rolecall.Service
	ui  Messenger

	guildID   string
	channelID string
	messageID string
	ownerID   string
	ownerName string

	action  Action
	index   int
	entries []string
	desc    string
}

// Open posts a new panel and returns its session.
func Open(ctx context.Context, svc *rolecall.Service, ui Messenger, guildID, channelID, ownerID, ownerName string) (*Session, error) {
	s := &Session{
		svc:       svc,
		ui:        ui,
		guildID:   guildID,
		channelID: channelID,
		ownerID:   ownerID,
		ownerName: ownerName,
	}

	embed, components := s.render()
	messageID, err := ui.SendPanel(channelID, embed, components)
	if err != nil {
		return nil, err
	}

	s.messageID = messageID
	return s, nil
}

// MessageID is the panel message this session is attached to.
func (s *Session) MessageID() string {
	return s.messageID
}

// Handle applies one click to the panel. Clicks from anyone but the
// owner are acknowledged and otherwise ignored.
func (s *Session) Handle(ctx context.Context, click Click) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if click.UserID != s.ownerID {
		return click.Ack()
	}

	var err error
	switch {
	case click.CustomID == customIDBack:
		s.reset()
	case click.CustomID == customIDSelect:
		err = s.selected(ctx, click)
	default:
		action, ok := buttonActions[click.CustomID]
		if !ok {
			return click.Ack()
		}
		err = s.enter(ctx, action)
	}
	if err != nil {
		return err
	}

	embed, components := s.render()
	if err := s.ui.EditPanel(s.channelID, s.messageID, embed, components); err != nil {
		return err
	}
	return click.Ack()
}

// reset returns the panel to its main button view.
func (s *Session) reset() {
	s.action = ActionNone
	s.index = 0
	s.entries = nil
	s.desc = ""
}

// enter switches the panel into an action, recomputing the candidate
// entries and the descriptive text for that action.
func (s *Session) enter(ctx context.Context, action Action) error {
	reg := s.svc.Registry()

	var entries []string
	var desc string
	switch action {
	case ActionAdd:
		entries = reg.Names()
		desc = "Please select an option"
	case ActionRemove:
		held, err := s.svc.HeldRoles(ctx, s.guildID, s.ownerID)
		if err != nil {
			return err
		}
		entries = held
		desc = "Please select an option"
	case ActionList:
		entries = reg.Names()
		desc = rolecall.WhitelistMessage(reg)
	case ActionYourRoles:
		held, err := s.svc.HeldRoles(ctx, s.guildID, s.ownerID)
		if err != nil {
			return err
		}
		entries = reg.Names()
		desc = rolecall.RolesMessage(reg, s.ownerName, held)
	case ActionLeaderboard:
		board, err := s.svc.Leaderboard(ctx, s.guildID)
		if err != nil {
			return err
		}
		entries = reg.Names()
		desc = rolecall.LeaderboardMessage(reg, board)
	case ActionInfo:
		entries = reg.Names()
		desc = rolecall.InfoMessage(reg)
	}

	s.action = action
	s.index = 0
	s.entries = entries
	s.desc = desc
	return nil
}

// selected applies a select menu choice.
func (s *Session) selected(ctx context.Context, click Click) error {
	if s.action == ActionNone || len(click.Values) == 0 {
		return nil
	}

	switch value := click.Values[0]; value {
	case nextValue:
		s.index += rolecall.PageSize
	case prevValue:
		s.index -= rolecall.PageSize
		if s.index < 0 {
			s.index = 0
		}
	case noneValue:
		return s.enter(ctx, s.action)
	default:
		return s.picked(ctx, value)
	}
	return nil
}

// picked applies a role choice in Add or Remove mode. Business
// failures become panel text; anything else propagates.
func (s *Session) picked(ctx context.Context, role string) error {
	var name string
	var err error

	switch s.action {
	case ActionAdd:
		name, err = s.svc.AddRole(ctx, s.guildID, s.ownerID, role)
	case ActionRemove:
		name, err = s.svc.RemoveRole(ctx, s.guildID, s.ownerID, role)
	default:
		// Viewing actions treat a pick as a refresh.
		return s.enter(ctx, s.action)
	}

	reg := s.svc.Registry()
	if err == nil {
		if s.action == ActionAdd {
			s.desc = rolecall.AddedMessage(reg, s.ownerName, name)
		} else {
			s.desc = rolecall.RemovedMessage(reg, s.ownerName, name)
		}
	} else {
		msg, business := rolecall.ResultMessage(reg, s.ownerName, role, err)
		if !business {
			return err
		}
		s.desc = msg
	}

	// Recompute candidates so the selector reflects the new state.
	action, desc := s.action, s.desc
	if err := s.enter(ctx, action); err != nil {
		return err
	}
	s.desc = desc
	return nil
}

func (s *Session) title() string {
	reg := s.svc.Registry()
	if s.action == ActionNone {
		return reg.Title()
	}
	return fmt.Sprintf("%s %s", reg.Title(), s.action)
}

// render produces the panel's current embed and components.
func (s *Session) render() (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	reg := s.svc.Registry()

	if s.action == ActionNone {
		embed := newEmbed(reg.Title(), "Please select an option", reg.Color())
		return embed, mainButtons()
	}

	desc := s.desc
	if desc == "" {
		desc = "Please select an option"
	}

	embed := newEmbed(s.title(), desc, reg.Color())
	window := rolecall.Paginate(s.entries, s.index)
	s.index = window.Start

	components := []discordgo.MessageComponent{
		selector(window, rolecall.PageNumber(window.Start)),
		backRow(),
	}
	return embed, components
}
