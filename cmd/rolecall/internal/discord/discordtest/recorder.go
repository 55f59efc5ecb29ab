// Package discordtest records outgoing Discord traffic for tests.
package discordtest

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

type Send struct {
	ChannelID string
	Content   string
}

type Panel struct {
	ChannelID  string
	MessageID  string
	Embed      *discordgo.MessageEmbed
	Components []discordgo.MessageComponent
}

// Recorder implements the bot's outgoing Discord surface in memory.
type Recorder struct {
	mu     sync.Mutex
	nextID int

	// Err, when set, is returned from every call.
	Err error

	Sends  []Send
	Panels []Panel
	Edits  []Panel
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) SendMessage(channelID, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}

	r.Sends = append(r.Sends, Send{ChannelID: channelID, Content: content})
	return nil
}

func (r *Recorder) SendPanel(channelID string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return "", r.Err
	}

	r.nextID++
	id := fmt.Sprintf("panel-%d", r.nextID)
	r.Panels = append(r.Panels, Panel{
		ChannelID:  channelID,
		MessageID:  id,
		Embed:      embed,
		Components: components,
	})
	return id, nil
}

func (r *Recorder) EditPanel(channelID, messageID string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}

	r.Edits = append(r.Edits, Panel{
		ChannelID:  channelID,
		MessageID:  messageID,
		Embed:      embed,
		Components: components,
	})
	return nil
}

// LastEdit returns the most recent panel edit.
func (r *Recorder) LastEdit() (Panel, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.Edits) == 0 {
		return Panel{}, false
	}
	return r.Edits[len(r.Edits)-1], true
}

// LastSend returns the most recent plain message.
func (r *Recorder) LastSend() (Send, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.Sends) == 0 {
		return Send{}, false
	}
	return r.Sends[len(r.Sends)-1], true
}
