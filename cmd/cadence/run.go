package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	dg "github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/cadence"
	"github.com/benjamonnguyen/cadence/clock"
	"github.com/benjamonnguyen/cadence/discordgo"
	"github.com/benjamonnguyen/cadence/schedule"
	"github.com/benjamonnguyen/cadence/templates"
)

func runCommand(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	templateID := fs.String("template", "", "saved template ID")
	def := templates.DefaultPomodoroSettings()
	pomodoro := fs.Int("pomodoro", int(def.Pomodoro.Minutes()), "pomodoro minutes")
	shortBreak := fs.Int("short-break", int(def.ShortBreak.Minutes()), "short break minutes")
	longBreak := fs.Int("long-break", int(def.LongBreak.Minutes()), "long break minutes")
	intervals := fs.Int("intervals", def.Intervals, "pomodoros per long break")
	rounds := fs.Int("rounds", def.Rounds, "times to repeat the whole schedule")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	var tpl cadence.SessionTemplate
	if *templateID != "" {
		rec, err := a.templates.GetTemplate(ctx, cadence.TemplateID(*templateID))
		if err != nil {
			return fmt.Errorf("template %q: %w", *templateID, err)
		}
		tpl = rec.Template
	} else {
		var err error
		tpl, err = templates.Pomodoro(templates.PomodoroSettings{
			Pomodoro:   time.Duration(cadence.ClampMinutes(*pomodoro)) * time.Minute,
			ShortBreak: time.Duration(max(0, *shortBreak)) * time.Minute,
			LongBreak:  time.Duration(max(0, *longBreak)) * time.Minute,
			Intervals:  *intervals,
			Rounds:     *rounds,
		})
		if err != nil {
			return err
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := []schedule.Events{logEvents(log.Default()), {
		OnComplete: cancel,
	}}

	// announcer
	var announcer *discordgo.Announcer
	announcerDone := make(chan struct{})
	if a.cfg.DiscordEnabled() {
		cl, err := dg.New("Bot " + a.cfg.BotToken)
		if err != nil {
			return fmt.Errorf("discord client: %w", err)
		}
		cl.UserAgent = fmt.Sprintf("%s (%s, v%s)", a.cfg.BotName, RepoURL, Version)
		announcer = discordgo.NewAnnouncer(cl, a.cfg.DiscordChannelID, a.cfg.BotName, log.Default())
		events = append(events, announcer.Events(tpl))
		go func() {
			defer close(announcerDone)
			// keep sending queued messages after runCtx ends
			announcer.Run(context.WithoutCancel(ctx))
		}()
	} else {
		close(announcerDone)
	}

	loop := clock.NewLoop(64)
	engine, err := schedule.New(tpl, schedule.Chain(events...),
		schedule.WithClock(loop.Clock(clock.System)),
		schedule.WithInterval(a.cfg.TickInterval),
		schedule.WithLogger(log.Default()),
	)
	if err != nil {
		return err
	}

	log.Info("starting", "template", tpl.Name, "blocks", len(tpl.Blocks), "cycles", tpl.Cycles(), "minutes", cadence.TotalMinutes(tpl))
	loop.Post(engine.Start)
	go readCommands(runCtx, os.Stdin, loop, engine, cancel)

	err = loop.Run(runCtx)
	if announcer != nil {
		announcer.Close()
	}
	select {
	case <-announcerDone:
	case <-time.After(10 * time.Second):
		log.Warn("timed out sending announcements")
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// logEvents logs block transitions and one line per remaining minute.
func logEvents(l *log.Logger) schedule.Events {
	lastMinute := -1
	return schedule.Events{
		OnBlockStart: func(i int, b cadence.SessionBlock) {
			lastMinute = -1
			l.Info("block started", "index", i, "label", b.Label, "type", b.Type, "duration", cadence.FormatClock(b.Duration()))
		},
		OnTick: func(d time.Duration) {
			if m := int(d / time.Minute); m != lastMinute {
				lastMinute = m
				l.Info("remaining", "clock", cadence.FormatClock(d))
			}
		},
		OnBlockEnd: func(i int, b cadence.SessionBlock) {
			l.Info("block ended", "index", i, "label", b.Label)
		},
		OnComplete: func() {
			l.Info("schedule complete")
		},
	}
}

type command struct {
	name    string
	minutes int
}

// parseCommand reads one line of headless input: p(ause), s(kip), e(xtend) [minutes],
// r(eset), q(uit).
func parseCommand(line string) (command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return command{}, fmt.Errorf("empty command")
	}
	var name string
	switch fields[0] {
	case "p", "pause", "resume", "start":
		name = "toggle"
	case "s", "skip":
		name = "skip"
	case "e", "extend":
		name = "extend"
	case "r", "reset":
		name = "reset"
	case "q", "quit":
		name = "quit"
	default:
		return command{}, fmt.Errorf("unknown command %q", fields[0])
	}

	c := command{name: name, minutes: 1}
	if name == "extend" && len(fields) > 1 {
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return command{}, fmt.Errorf("extend: want minutes, got %q", fields[1])
		}
		c.minutes = n
	}
	return c, nil
}

func (c command) apply(e *schedule.Engine) {
	switch c.name {
	case "toggle":
		if e.Status() == cadence.StatusRunning {
			e.Pause()
		} else {
			e.Start()
		}
	case "skip":
		e.Skip()
	case "extend":
		e.Extend(c.minutes)
	case "reset":
		e.Reset()
	}
}

// readCommands forwards stdin commands onto the loop. It returns on EOF, quit, or the
// first command sent after the loop stops; a read already blocked on stdin outlives ctx
// until the process exits.
func readCommands(ctx context.Context, r io.Reader, loop *clock.Loop, e *schedule.Engine, quit func()) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		c, err := parseCommand(scanner.Text())
		if err != nil {
			log.Warn(err)
			continue
		}
		if c.name == "quit" {
			quit()
			return
		}
		if err := loop.Do(ctx, func() { c.apply(e) }); err != nil {
			return
		}
	}
}
