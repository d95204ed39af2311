package notifier

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/azurvoyages/tours-api/internal/config"
	"github.com/azurvoyages/tours-api/internal/models"
)

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(cfg *config.Config) (*DiscordNotifier, error) {
	if cfg.DiscordBotToken == "" || cfg.DiscordNotificationsChannelID == "" {
		return nil, fmt.Errorf("discord notifications not configured")
	}
	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return &DiscordNotifier{
		session:   session,
		channelID: cfg.DiscordNotificationsChannelID,
	}, nil
}

func (n *DiscordNotifier) NotifyBooking(booking *models.Booking, tour *models.Tour) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}

	tourTitle := "(no tour)"
	if tour != nil {
		tourTitle = tour.Title
	}

	message := fmt.Sprintf("🧳 **New Booking**\n**Tour:** %s\n**Customer:** %s (%s)\n**Date:** %s\n**Participants:** %d\n**Total:** %s\n**Status:** %s",
		tourTitle,
		booking.UserName,
		booking.UserEmail,
		booking.BookingDate.Format("2006-01-02"),
		booking.Participants,
		booking.TotalPrice,
		booking.Status,
	)

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}

	return nil
}
