// Package discord adapts a discordgo session to the narrow interfaces
// the rest of the program wants: a stream of guild messages, a stream
// of component clicks, and the guild role surface.
package discord

import (
	"context"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/mktierney/rolecall"
)

// Message is a guild chat message addressed to nobody in particular.
type Message struct {
	ID        string
	GuildID   string
	ChannelID string
	AuthorID  string
	Author    string
	Content   string
}

// Component is a click on a message component (a button or a select
// menu). Ack acknowledges the interaction without changing the
// message; the caller edits the panel separately.
type Component struct {
	MessageID string
	ChannelID string
	GuildID   string
	UserID    string
	User      string
	CustomID  string
	Values    []string
	Ack       func() error
}

type Session struct {
	s *discordgo.Session
}

func NewSession(s *discordgo.Session) *Session {
	return &Session{
		s: s,
	}
}

// Username is the bot account's own username.
func (s *Session) Username() string {
	return s.s.State.User.Username
}

// eventSource is the part of a discordgo session that the streams
// need: register a gateway handler and get back its detach func.
type eventSource interface {
	AddHandler(handler interface{}) func()
}

// Messages streams guild messages until ctx is done. Messages from
// the bot itself and DMs are dropped.
func (s *Session) Messages(ctx context.Context) <-chan Message {
	return messages(ctx, s.s)
}

func messages(ctx context.Context, source eventSource) <-chan Message {
	ch := make(chan Message, 16)

	var closeOnce sync.Once
	detach := source.AddHandler(func(sess *discordgo.Session, m *discordgo.MessageCreate) {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if sess.State.User.ID == m.Author.ID {
			return
		}

		// No DMs.
		if len(m.GuildID) == 0 {
			return
		}

		msg := Message{
			ID:        m.ID,
			GuildID:   m.GuildID,
			ChannelID: m.ChannelID,
			AuthorID:  m.Author.ID,
			Author:    m.Author.Username,
			Content:   strings.TrimSpace(m.ContentWithMentionsReplaced()),
		}

		select {
		case <-ctx.Done():
			return
		case ch <- msg:
		}
	})

	// Detach before closing so late gateway events can't send on a
	// closed channel.
	go func() {
		<-ctx.Done()
		detach()
		closeOnce.Do(func() { close(ch) })
	}()

	return ch
}

// Components streams component interactions until ctx is done.
func (s *Session) Components(ctx context.Context) <-chan Component {
	return components(ctx, s.s)
}

func components(ctx context.Context, source eventSource) <-chan Component {
	ch := make(chan Component, 16)

	var closeOnce sync.Once
	detach := source.AddHandler(func(sess *discordgo.Session, i *discordgo.InteractionCreate) {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if i.Type != discordgo.InteractionMessageComponent {
			return
		}

		if i.Member == nil || i.Member.User == nil {
			return
		}

		data := i.MessageComponentData()
		interaction := i.Interaction
		click := Component{
			MessageID: i.Message.ID,
			ChannelID: i.ChannelID,
			GuildID:   i.GuildID,
			UserID:    i.Member.User.ID,
			User:      i.Member.User.Username,
			CustomID:  data.CustomID,
			Values:    data.Values,
			Ack: func() error {
				return sess.InteractionRespond(interaction, &discordgo.InteractionResponse{
					Type: discordgo.InteractionResponseDeferredMessageUpdate,
				})
			},
		}

		select {
		case <-ctx.Done():
			return
		case ch <- click:
		}
	})

	go func() {
		<-ctx.Done()
		detach()
		closeOnce.Do(func() { close(ch) })
	}()

	return ch
}

func (s *Session) SendMessage(channelID, message string) error {
	_, err := s.s.ChannelMessageSend(channelID, message)
	return err
}

// SendPanel posts an embed with components and returns the new
// message's ID.
func (s *Session) SendPanel(channelID string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) (string, error) {
	msg, err := s.s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}

// EditPanel replaces a previously sent panel's embed and components.
func (s *Session) EditPanel(channelID, messageID string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	embeds := []*discordgo.MessageEmbed{embed}
	_, err := s.s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Embeds:     &embeds,
		Components: &components,
	})
	return err
}

// Roles lists the guild's roles.
func (s *Session) Roles(ctx context.Context, guildID string) ([]rolecall.Role, error) {
	guildRoles, err := s.s.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	roles := make([]rolecall.Role, 0, len(guildRoles))
	for _, role := range guildRoles {
		roles = append(roles, rolecall.Role{ID: role.ID, Name: role.Name})
	}
	return roles, nil
}

// MemberRoles lists the roles a member holds.
func (s *Session) MemberRoles(ctx context.Context, guildID, userID string) ([]rolecall.Role, error) {
	member, err := s.s.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	guildRoles, err := s.s.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]string, len(guildRoles))
	for _, role := range guildRoles {
		byID[role.ID] = role.Name
	}

	var roles []rolecall.Role
	for _, id := range member.Roles {
		if name, ok := byID[id]; ok {
			roles = append(roles, rolecall.Role{ID: id, Name: name})
		}
	}
	return roles, nil
}

func (s *Session) CreateRole(ctx context.Context, guildID, name string, color int) (rolecall.Role, error) {
	role, err := s.s.GuildRoleCreate(guildID, &discordgo.RoleParams{
		Name:  name,
		Color: &color,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return rolecall.Role{}, err
	}
	return rolecall.Role{ID: role.ID, Name: role.Name}, nil
}

func (s *Session) DeleteRole(ctx context.Context, guildID, roleID string) error {
	return s.s.GuildRoleDelete(guildID, roleID, discordgo.WithContext(ctx))
}

func (s *Session) AddMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	return s.s.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx))
}

func (s *Session) RemoveMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	return s.s.GuildMemberRoleRemove(guildID, userID, roleID, discordgo.WithContext(ctx))
}

// RoleMemberCount walks the member list counting holders of a role.
func (s *Session) RoleMemberCount(ctx context.Context, guildID, roleID string) (int, error) {
	var count int
	var after string
	for {
		members, err := s.s.GuildMembers(guildID, after, 1000, discordgo.WithContext(ctx))
		if err != nil {
			return 0, err
		}
		if len(members) == 0 {
			return count, nil
		}

		for _, member := range members {
			for _, id := range member.Roles {
				if id == roleID {
					count++
					break
				}
			}
		}

		after = members[len(members)-1].User.ID
	}
}

var _ rolecall.Guild = (*Session)(nil)
