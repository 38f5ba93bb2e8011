package bot

import (
	"bytes"
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"finbot/internal/log"
)

// Discord binds the router to a Discord gateway session. It is the
// only place that knows about the chat platform.
type Discord struct {
	session *discordgo.Session
	router  *Router
	logger  *log.Logger
}

func NewDiscord(token string, router *Router, logger *log.Logger) (*Discord, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	d := &Discord{
		session: session,
		router:  router,
		logger:  logger,
	}
	session.AddHandler(d.onReady)
	session.AddHandler(d.onMessageCreate)

	return d, nil
}

// Open connects to the gateway and starts receiving events.
func (d *Discord) Open() error {
	if err := d.session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	return nil
}

func (d *Discord) Close() error {
	return d.session.Close()
}

func (d *Discord) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	d.logger.Info("Logged in to Discord", log.FieldUser, r.User.Username)
}

func (d *Discord) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	ctx := context.Background()

	reply := d.router.Handle(ctx, Message{
		User:      m.Author.Username,
		Content:   m.Content,
		ChannelID: m.ChannelID,
		FromBot:   m.Author.Bot,
	})
	if reply == nil {
		return
	}

	if err := d.send(m.ChannelID, reply); err != nil {
		d.logger.ErrorContext(ctx, "Failed to deliver reply",
			log.FieldChannelID, m.ChannelID,
			log.FieldError, err)
	}
}

func (d *Discord) send(channelID string, reply *Reply) error {
	if reply.File != nil {
		_, err := d.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
			Content: reply.Content,
			Files: []*discordgo.File{{
				Name:        reply.File.Name,
				ContentType: "image/png",
				Reader:      bytes.NewReader(reply.File.Data),
			}},
		})
		return err
	}
	_, err := d.session.ChannelMessageSend(channelID, reply.Content)
	return err
}

// Post sends a message with an attached image to a channel; used by the
// weekly report job.
func (d *Discord) Post(_ context.Context, channelID, content, filename string, image []byte) error {
	_, err := d.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Files: []*discordgo.File{{
			Name:        filename,
			ContentType: "image/png",
			Reader:      bytes.NewReader(image),
		}},
	})
	if err != nil {
		return fmt.Errorf("post to channel %s: %w", channelID, err)
	}
	return nil
}
