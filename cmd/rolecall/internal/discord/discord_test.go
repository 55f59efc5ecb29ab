package discord

import (
	"context"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sourceStub struct {
	mu       sync.Mutex
	handler  interface{}
	detached bool
}

func (s *sourceStub) AddHandler(handler interface{}) func() {
	s.handler = handler
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.detached = true
	}
}

func (s *sourceStub) isDetached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detached
}

func botSession(t *testing.T) *discordgo.Session {
	t.Helper()

	state := discordgo.NewState()
	state.User = &discordgo.User{
		ID:       "bot-id",
		Username: "rolecall",
	}

	return &discordgo.Session{State: state}
}

func TestMessages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &sourceStub{}
	ch := messages(ctx, src)

	sess := botSession(t)
	deliver := src.handler.(func(*discordgo.Session, *discordgo.MessageCreate))

	deliver(sess, &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "msg-1",
		GuildID:   "guild-1",
		ChannelID: "chan-1",
		Author:    &discordgo.User{ID: "user-1", Username: "alex"},
		Content:   "  @rolecall add Red  ",
	}})

	got := <-ch
	assert.Equal(t, "msg-1", got.ID)
	assert.Equal(t, "guild-1", got.GuildID)
	assert.Equal(t, "chan-1", got.ChannelID)
	assert.Equal(t, "user-1", got.AuthorID)
	assert.Equal(t, "alex", got.Author)
	assert.Equal(t, "@rolecall add Red", got.Content)

	t.Run("it drops its own messages", func(t *testing.T) {
		deliver(sess, &discordgo.MessageCreate{Message: &discordgo.Message{
			ID:      "msg-2",
			GuildID: "guild-1",
			Author:  &discordgo.User{ID: "bot-id", Username: "rolecall"},
			Content: "@rolecall add Red",
		}})

		assert.Zero(t, len(ch))
	})

	t.Run("it drops direct messages", func(t *testing.T) {
		deliver(sess, &discordgo.MessageCreate{Message: &discordgo.Message{
			ID:      "msg-3",
			Author:  &discordgo.User{ID: "user-1", Username: "alex"},
			Content: "@rolecall add Red",
		}})

		assert.Zero(t, len(ch))
	})

	t.Run("it detaches the handler before closing the stream", func(t *testing.T) {
		cancel()

		_, open := <-ch
		require.False(t, open)
		assert.True(t, src.isDetached())

		// An event already in flight when the stream shut down must
		// not send on the closed channel.
		deliver(sess, &discordgo.MessageCreate{Message: &discordgo.Message{
			ID:      "msg-4",
			GuildID: "guild-1",
			Author:  &discordgo.User{ID: "user-1", Username: "alex"},
			Content: "@rolecall add Red",
		}})
	})
}

func TestComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &sourceStub{}
	ch := components(ctx, src)

	sess := botSession(t)
	deliver := src.handler.(func(*discordgo.Session, *discordgo.InteractionCreate))

	interaction := func(customID string, values ...string) *discordgo.InteractionCreate {
		return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
			Type:      discordgo.InteractionMessageComponent,
			GuildID:   "guild-1",
			ChannelID: "chan-1",
			Message:   &discordgo.Message{ID: "panel-1"},
			Member: &discordgo.Member{
				User: &discordgo.User{ID: "user-1", Username: "alex"},
			},
			Data: discordgo.MessageComponentInteractionData{
				CustomID: customID,
				Values:   values,
			},
		}}
	}

	deliver(sess, interaction("rolemenu:select", "Red"))

	got := <-ch
	assert.Equal(t, "panel-1", got.MessageID)
	assert.Equal(t, "chan-1", got.ChannelID)
	assert.Equal(t, "guild-1", got.GuildID)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "alex", got.User)
	assert.Equal(t, "rolemenu:select", got.CustomID)
	assert.Equal(t, []string{"Red"}, got.Values)

	t.Run("it drops interactions that are not component clicks", func(t *testing.T) {
		deliver(sess, &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
		}})

		assert.Zero(t, len(ch))
	})

	t.Run("it drops clicks without a guild member", func(t *testing.T) {
		click := interaction("rolemenu:add")
		click.Member = nil
		deliver(sess, click)

		assert.Zero(t, len(ch))
	})

	t.Run("it detaches the handler before closing the stream", func(t *testing.T) {
		cancel()

		_, open := <-ch
		require.False(t, open)
		assert.True(t, src.isDetached())

		deliver(sess, interaction("rolemenu:select", "Red"))
	})
}
