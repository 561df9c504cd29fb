package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/oklahomer/go-kasumi/logger"
	"github.com/oklahomer/go-sarah/v4"
)

const (
	// DISCORD is a designated sarah.BotType for Discord integration.
	DISCORD sarah.BotType = "discord"
)

// session is an internal interface that abstracts the discordgo.Session methods
// used by the Adapter. This allows mocking the session in tests.
// *discordgo.Session satisfies this interface.
type session interface {
	AddHandler(handler interface{}) func()
	Open() error
	Close() error
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendReply(channelID string, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// ChannelID represents a Discord channel as sarah.OutputDestination.
type ChannelID string

var _ sarah.OutputDestination = ChannelID("")

// MessageReply represents a message to reply to as sarah.OutputDestination.
// Replies sent to this destination are threaded to the referenced message.
type MessageReply struct {
	ChannelID string
	MessageID string
	GuildID   string
}

var _ sarah.OutputDestination = MessageReply{}

func (r MessageReply) reference() *discordgo.MessageReference {
	return &discordgo.MessageReference{
		MessageID: r.MessageID,
		ChannelID: r.ChannelID,
		GuildID:   r.GuildID,
	}
}

// InteractionReply represents a pending application command interaction as sarah.OutputDestination.
type InteractionReply struct {
	Interaction *discordgo.Interaction
}

var _ sarah.OutputDestination = InteractionReply{}

// AdapterOption defines a function signature for Adapter's functional options.
type AdapterOption func(adapter *Adapter)

// WithSession creates an AdapterOption with the given *discordgo.Session.
// Use this to inject a pre-configured session.
// If this option is not given, NewAdapter creates a new session from Config.Token.
func WithSession(session *discordgo.Session) AdapterOption {
	return func(adapter *Adapter) {
		adapter.session = session
	}
}

// Adapter is a sarah.Adapter implementation for Discord.
type Adapter struct {
	config  *Config
	session session
}

var _ sarah.Adapter = (*Adapter)(nil)

// NewAdapter creates a new Adapter with the given Config and options.
func NewAdapter(config *Config, options ...AdapterOption) (*Adapter, error) {
	adapter := &Adapter{
		config: config,
	}

	for _, opt := range options {
		opt(adapter)
	}

	if adapter.session == nil {
		s, err := NewSession(config)
		if err != nil {
			return nil, err
		}
		adapter.session = s
	}

	return adapter, nil
}

// NewSession creates a *discordgo.Session authenticated with Config.Token and
// identifying with Config.Intents.
func NewSession(config *Config) (*discordgo.Session, error) {
	if config.Token == "" {
		return nil, ErrEmptyToken
	}

	s, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	s.Identify.Intents = config.Intents
	return s, nil
}

// BotType returns a designated BotType for Discord integration.
func (a *Adapter) BotType() sarah.BotType {
	return DISCORD
}

// Run establishes a connection with Discord and blocks until the context is canceled.
func (a *Adapter) Run(ctx context.Context, enqueueInput func(sarah.Input) error, notifyErr func(error)) {
	a.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		a.handleMessage(s, m, enqueueInput)
	})
	a.session.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		a.handleInteraction(i, enqueueInput)
	})

	err := a.session.Open()
	if err != nil {
		notifyErr(sarah.NewBotNonContinuableError(fmt.Sprintf("failed to open Discord session: %s", err.Error())))
		return
	}

	// Block until the context is canceled.
	<-ctx.Done()

	if closeErr := a.session.Close(); closeErr != nil {
		logger.Errorf("Failed to close Discord session: %+v", closeErr)
	}
}

// handleMessage processes an incoming Discord message and routes it to enqueueInput.
func (a *Adapter) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate, enqueueInput func(sarah.Input) error) {
	input, err := MessageToInput(m)
	if err != nil {
		// MessageToInput returns ErrNoAuthor for system messages with no author.
		logger.Debugf("Skipping message: %+v", err)
		return
	}

	// Ignore messages from the bot itself.
	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	var enqueueErr error
	trimmed := strings.TrimSpace(input.Message())
	if a.config.HelpCommand != "" && trimmed == a.config.HelpCommand {
		enqueueErr = enqueueInput(sarah.NewHelpInput(input))
	} else {
		enqueueErr = enqueueInput(input)
	}
	if enqueueErr != nil {
		logger.Errorf("Failed to enqueue input: %+v", enqueueErr)
	}
}

// handleInteraction converts application command interactions to *SlashInput and routes them to enqueueInput.
// Other interaction types such as component clicks are ignored.
func (a *Adapter) handleInteraction(i *discordgo.InteractionCreate, enqueueInput func(sarah.Input) error) {
	input, err := InteractionToInput(i)
	if err != nil {
		logger.Debugf("Skipping interaction: %+v", err)
		return
	}

	if err := enqueueInput(input); err != nil {
		logger.Errorf("Failed to enqueue interaction %s: %+v", input.CommandName(), err)
	}
}

// SendMessage sends the given message to Discord.
func (a *Adapter) SendMessage(_ context.Context, output sarah.Output) {
	switch dest := output.Destination().(type) {
	case ChannelID:
		a.sendToChannel(string(dest), output.Content())

	case MessageReply:
		a.sendReply(dest, output.Content())

	case InteractionReply:
		a.respondInteraction(dest, output.Content())

	default:
		logger.Errorf("Destination is not a Discord destination. %#v.", output.Destination())
	}
}

func (a *Adapter) sendToChannel(channelID string, content interface{}) {
	switch c := content.(type) {
	case string:
		_, err := a.session.ChannelMessageSend(channelID, c)
		if err != nil {
			logger.Errorf("Failed to send message to %s: %+v", channelID, err)
		}

	case *discordgo.MessageSend:
		_, err := a.session.ChannelMessageSendComplex(channelID, c)
		if err != nil {
			logger.Errorf("Failed to send complex message to %s: %+v", channelID, err)
		}

	case *sarah.CommandHelps:
		_, err := a.session.ChannelMessageSend(channelID, renderHelps(c))
		if err != nil {
			logger.Errorf("Failed to send help message to %s: %+v", channelID, err)
		}

	default:
		logger.Warnf("Unexpected content %#v", content)
	}
}

func (a *Adapter) sendReply(dest MessageReply, content interface{}) {
	var texts []string
	switch c := content.(type) {
	case string:
		texts = []string{c}

	case []string:
		texts = c

	case *discordgo.MessageSend:
		c.Reference = dest.reference()
		_, err := a.session.ChannelMessageSendComplex(dest.ChannelID, c)
		if err != nil {
			logger.Errorf("Failed to send complex reply to %s/%s: %+v", dest.ChannelID, dest.MessageID, err)
		}
		return

	case *sarah.CommandHelps:
		texts = []string{renderHelps(c)}

	default:
		logger.Warnf("Unexpected content %#v", content)
		return
	}

	// Each text is an independent reply; one failure does not stop the rest.
	for _, text := range texts {
		_, err := a.session.ChannelMessageSendReply(dest.ChannelID, text, dest.reference())
		if err != nil {
			logger.Errorf("Failed to reply to %s/%s: %+v", dest.ChannelID, dest.MessageID, err)
		}
	}
}

func (a *Adapter) respondInteraction(dest InteractionReply, content interface{}) {
	if dest.Interaction == nil {
		logger.Errorf("Interaction destination has no interaction.")
		return
	}

	var data *discordgo.InteractionResponseData
	switch c := content.(type) {
	case string:
		data = &discordgo.InteractionResponseData{Content: c}

	case *discordgo.InteractionResponseData:
		data = c

	case *sarah.CommandHelps:
		data = &discordgo.InteractionResponseData{Content: renderHelps(c)}

	default:
		logger.Warnf("Unexpected content %#v", content)
		return
	}

	err := a.session.InteractionRespond(dest.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		logger.Errorf("Failed to respond to interaction %s: %+v", dest.Interaction.ID, err)
	}
}

func renderHelps(helps *sarah.CommandHelps) string {
	lines := make([]string, 0, len(*helps))
	for _, h := range *helps {
		lines = append(lines, fmt.Sprintf("**%s**: %s", h.Identifier, h.Instruction))
	}
	return strings.Join(lines, "\n")
}

// Input is a sarah.Input implementation that represents a received Discord message.
type Input struct {
	Event     *discordgo.MessageCreate
	senderKey string
	text      string
	sentAt    time.Time
	replyTo   MessageReply
}

var _ sarah.Input = (*Input)(nil)

// SenderKey returns a unique key representing the sender in the channel.
func (i *Input) SenderKey() string {
	return i.senderKey
}

// Message returns the received text.
func (i *Input) Message() string {
	return i.text
}

// SentAt returns when the message was sent.
func (i *Input) SentAt() time.Time {
	return i.sentAt
}

// ReplyTo returns the received message so that responses are threaded to it.
func (i *Input) ReplyTo() sarah.OutputDestination {
	return i.replyTo
}

// MessageToInput converts a *discordgo.MessageCreate event to *Input.
func MessageToInput(m *discordgo.MessageCreate) (*Input, error) {
	if m.Author == nil {
		return nil, ErrNoAuthor
	}

	return &Input{
		Event:     m,
		senderKey: fmt.Sprintf("%s_%s", m.ChannelID, m.Author.ID),
		text:      m.Content,
		sentAt:    m.Timestamp,
		replyTo: MessageReply{
			ChannelID: m.ChannelID,
			MessageID: m.ID,
			GuildID:   m.GuildID,
		},
	}, nil
}

// SlashInput is a sarah.Input implementation that represents an invoked application command.
type SlashInput struct {
	Event     *discordgo.InteractionCreate
	data      discordgo.ApplicationCommandInteractionData
	senderKey string
	user      *discordgo.User
	sentAt    time.Time
}

var _ sarah.Input = (*SlashInput)(nil)

// SenderKey returns a unique key representing the invoking user in the channel.
func (i *SlashInput) SenderKey() string {
	return i.senderKey
}

// Message returns the command name prefixed with a slash.
func (i *SlashInput) Message() string {
	return "/" + i.data.Name
}

// SentAt returns when the interaction was created.
func (i *SlashInput) SentAt() time.Time {
	return i.sentAt
}

// ReplyTo returns the interaction itself; the response is sent as the interaction's reply.
func (i *SlashInput) ReplyTo() sarah.OutputDestination {
	return InteractionReply{Interaction: i.Event.Interaction}
}

// CommandName returns the name of the invoked application command.
func (i *SlashInput) CommandName() string {
	return i.data.Name
}

// UserID returns the ID of the user who invoked the command.
func (i *SlashInput) UserID() string {
	return i.user.ID
}

// StringOption returns the value of the string option with the given name.
func (i *SlashInput) StringOption(name string) (string, bool) {
	opt := i.option(name)
	if opt == nil || opt.Type != discordgo.ApplicationCommandOptionString {
		return "", false
	}
	value, ok := opt.Value.(string)
	return value, ok
}

// UserOption returns the user given as the user option with the given name.
// The user is looked up in the interaction's resolved data so no API call is made;
// when it is absent only the ID is populated.
func (i *SlashInput) UserOption(name string) (*discordgo.User, bool) {
	opt := i.option(name)
	if opt == nil || opt.Type != discordgo.ApplicationCommandOptionUser {
		return nil, false
	}
	id, ok := opt.Value.(string)
	if !ok || id == "" {
		return nil, false
	}
	if i.data.Resolved != nil {
		if u, found := i.data.Resolved.Users[id]; found && u != nil {
			return u, true
		}
	}
	return &discordgo.User{ID: id}, true
}

func (i *SlashInput) option(name string) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range i.data.Options {
		if opt != nil && opt.Name == name {
			return opt
		}
	}
	return nil
}

// InteractionToInput converts an application command *discordgo.InteractionCreate event to *SlashInput.
func InteractionToInput(i *discordgo.InteractionCreate) (*SlashInput, error) {
	if i.Interaction == nil || i.Type != discordgo.InteractionApplicationCommand {
		return nil, ErrNotApplicationCommand
	}

	data, ok := i.Data.(discordgo.ApplicationCommandInteractionData)
	if !ok {
		return nil, ErrNotApplicationCommand
	}

	// Member is set for guild invocations, User for direct messages.
	var user *discordgo.User
	if i.Member != nil && i.Member.User != nil {
		user = i.Member.User
	} else if i.User != nil {
		user = i.User
	}
	if user == nil {
		return nil, ErrNoAuthor
	}

	sentAt, err := discordgo.SnowflakeTimestamp(i.ID)
	if err != nil {
		sentAt = time.Now()
	}

	return &SlashInput{
		Event:     i,
		data:      data,
		senderKey: fmt.Sprintf("%s_%s", i.ChannelID, user.ID),
		user:      user,
		sentAt:    sentAt,
	}, nil
}

// NewResponse creates a *sarah.CommandResponse with the given content.
// Content may be a string, a []string of independent replies, or a discordgo payload
// matching the input's destination.
func NewResponse(input sarah.Input, content interface{}) (*sarah.CommandResponse, error) {
	switch input.(type) {
	case *Input, *SlashInput:
	default:
		return nil, fmt.Errorf("%T is not a Discord input", input)
	}

	return &sarah.CommandResponse{
		Content: content,
	}, nil
}
