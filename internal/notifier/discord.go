package notifier

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/eventflow-api/internal/models"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Notifier interface {
	NotifyRegistration(event models.Event, registration models.Registration) error
	NotifyCheckIn(event models.Event, registration models.Registration) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

// NewDiscordNotifierFromToken opens a bot session for token.
func NewDiscordNotifierFromToken(botToken, channelID string) (*DiscordNotifier, error) {
	if botToken == "" {
		return nil, errors.New("discord bot token is empty")
	}
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create discord session")
	}
	return NewDiscordNotifier(session, channelID), nil
}

func (n *DiscordNotifier) NotifyRegistration(event models.Event, registration models.Registration) error {
	message := fmt.Sprintf("🎟️ **New Registration**\n**Event:** %s (%s %s)\n**Attendee:** %s\n**Seats:** %d / %d",
		event.Title,
		event.Date,
		event.Time,
		registration.UserName,
		event.Attendees,
		event.Capacity,
	)
	return n.send(message)
}

func (n *DiscordNotifier) NotifyCheckIn(event models.Event, registration models.Registration) error {
	message := fmt.Sprintf("✅ **Check-in**\n**Event:** %s\n**Attendee:** %s\n**Checked in:** %d / %d",
		event.Title,
		registration.UserName,
		event.CheckedInCount,
		event.Attendees,
	)
	return n.send(message)
}

func (n *DiscordNotifier) send(message string) error {
	if n.session == nil {
		return errors.New("discord session is nil")
	}
	if n.channelID == "" {
		return errors.New("discord channel ID is empty")
	}

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		log.Error().Err(err).Str("channel_id", n.channelID).Msg("Failed to send discord message")
		return err
	}

	return nil
}
