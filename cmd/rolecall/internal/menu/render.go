package menu

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/mktierney/rolecall"
)

func newEmbed(title, description string, color int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
	}
}

// mainButtons is the panel's top-level view, one button per action.
func mainButtons() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Add", Style: discordgo.PrimaryButton, CustomID: customIDAdd},
				discordgo.Button{Label: "Remove", Style: discordgo.PrimaryButton, CustomID: customIDRemove},
				discordgo.Button{Label: "List", Style: discordgo.PrimaryButton, CustomID: customIDList},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Your Roles", Style: discordgo.PrimaryButton, CustomID: customIDYours},
				discordgo.Button{Label: "Leaderboard", Style: discordgo.PrimaryButton, CustomID: customIDTop},
				discordgo.Button{Label: "Info", Style: discordgo.PrimaryButton, CustomID: customIDInfo},
			},
		},
	}
}

// selector renders one page of entries as a select menu. Navigation
// options bracket the page, and an empty window degrades to a single
// placeholder option.
func selector(window rolecall.Window, page int) discordgo.MessageComponent {
	var options []discordgo.SelectMenuOption

	if len(window.Entries) == 0 {
		options = append(options, discordgo.SelectMenuOption{
			Label: noneValue,
			Value: noneValue,
		})
	}

	if window.HasPrev {
		options = append(options, discordgo.SelectMenuOption{
			Label: "<-- Previous Page",
			Value: prevValue,
		})
	}

	for i, entry := range window.Entries {
		options = append(options, discordgo.SelectMenuOption{
			Label: fmt.Sprintf("%d. %s", window.Start+i+1, entry),
			Value: entry,
		})
	}

	if window.HasNext {
		options = append(options, discordgo.SelectMenuOption{
			Label: "Next Page -->",
			Value: nextValue,
		})
	}

	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID:    customIDSelect,
				Placeholder: fmt.Sprintf("Page %d", page),
				Options:     options,
			},
		},
	}
}

func backRow() discordgo.MessageComponent {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "Back", Style: discordgo.DangerButton, CustomID: customIDBack},
		},
	}
}
