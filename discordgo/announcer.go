// Package discordgo provides Discord API adapters using package github.com/bwmarrin/discordgo
package discordgo

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/cadence"
	"github.com/benjamonnguyen/cadence/schedule"
)

const queueSize = 32

// MessageSender is the part of *discordgo.Session the announcer needs.
type MessageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Announcer posts schedule events to a Discord text channel.
// Event handlers only enqueue; Run does the sending so the engine's goroutine never
// waits on the network.
type Announcer struct {
	cl        MessageSender
	channelID string
	botName   string
	l         *log.Logger
	queue     chan string
}

func NewAnnouncer(cl MessageSender, channelID, botName string, logger *log.Logger) *Announcer {
	return &Announcer{
		cl:        cl,
		channelID: channelID,
		botName:   botName,
		l:         logger,
		queue:     make(chan string, queueSize),
	}
}

// Events returns handlers announcing tpl's block transitions and completion.
// Ticks are not announced.
func (a *Announcer) Events(tpl cadence.SessionTemplate) schedule.Events {
	return schedule.Events{
		OnBlockStart: func(i int, b cadence.SessionBlock) {
			a.enqueue(blockStartMessage(tpl, i, b))
		},
		OnBlockEnd: func(_ int, b cadence.SessionBlock) {
			a.enqueue(fmt.Sprintf("%s finished.", b.Label))
		},
		OnComplete: func() {
			a.enqueue(fmt.Sprintf("**%s** complete! (%d min)", tpl.Name, cadence.TotalMinutes(tpl)))
		},
	}
}

// Run sends queued messages in order until ctx is done or Close is called.
func (a *Announcer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-a.queue:
			if !ok {
				return
			}
			if _, err := a.cl.ChannelMessageSend(a.channelID, msg); err != nil {
				a.l.Error("failed to send announcement", "channelID", a.channelID, "err", err)
				continue
			}
			a.l.Debug("sent announcement", "channelID", a.channelID, "msg", msg)
		}
	}
}

// Close stops accepting events. Must not race with event handlers.
func (a *Announcer) Close() {
	close(a.queue)
}

func (a *Announcer) enqueue(msg string) {
	if a.botName != "" {
		msg = fmt.Sprintf("[%s] %s", a.botName, msg)
	}
	select {
	case a.queue <- msg:
	default:
		a.l.Warn("announcement queue full, dropping", "msg", msg)
	}
}

func blockStartMessage(tpl cadence.SessionTemplate, i int, b cadence.SessionBlock) string {
	return fmt.Sprintf("%s: **%s** (%s) started, block %d/%d",
		tpl.Name, b.Label, cadence.FormatClock(b.Duration()), i+1, len(tpl.Blocks))
}
