package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/cadence"
	"github.com/benjamonnguyen/cadence/templates"
)

func templatesCommand(ctx context.Context, a *app, w io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("templates: missing subcommand: %w", errUsage)
	}
	switch args[0] {
	case "list":
		recs, err := a.templates.ListTemplates(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tBLOCKS\tCYCLES\tMINUTES\tMOSTLY")
		for _, rec := range recs {
			tpl := rec.Template
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n",
				tpl.ID, tpl.Name, len(tpl.Blocks), tpl.Cycles(), cadence.TotalMinutes(tpl), cadence.DominantType(tpl))
		}
		return tw.Flush()

	case "show":
		if len(args) != 2 {
			return fmt.Errorf("templates show: provide ID: %w", errUsage)
		}
		rec, err := a.templates.GetTemplate(ctx, cadence.TemplateID(args[1]))
		if err != nil {
			return fmt.Errorf("template %q: %w", args[1], err)
		}
		return templates.Encode(w, rec.Template)

	case "import":
		if len(args) != 2 {
			return fmt.Errorf("templates import: provide FILE: %w", errUsage)
		}
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close() //nolint
		tpls, err := templates.Decode(f)
		if err != nil {
			return err
		}
		for _, tpl := range tpls {
			rec, err := a.templates.SaveTemplate(ctx, tpl)
			if err != nil {
				return fmt.Errorf("save template %q: %w", tpl.Name, err)
			}
			log.Debug("imported template", "id", rec.ID, "name", tpl.Name)
		}
		fmt.Fprintf(w, "imported %d template(s)\n", len(tpls))
		return nil

	case "export":
		var tpls []cadence.SessionTemplate
		if len(args) == 1 {
			recs, err := a.templates.ListTemplates(ctx)
			if err != nil {
				return err
			}
			for _, rec := range recs {
				tpls = append(tpls, rec.Template)
			}
		}
		for _, id := range args[1:] {
			rec, err := a.templates.GetTemplate(ctx, cadence.TemplateID(id))
			if err != nil {
				return fmt.Errorf("template %q: %w", id, err)
			}
			tpls = append(tpls, rec.Template)
		}
		return templates.Encode(w, tpls...)

	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("templates rm: provide ID: %w", errUsage)
		}
		rec, err := a.templates.DeleteTemplate(ctx, cadence.TemplateID(args[1]))
		if err != nil {
			return fmt.Errorf("template %q: %w", args[1], err)
		}
		fmt.Fprintf(w, "removed %s (%s)\n", rec.ID, rec.Template.Name)
		return nil

	default:
		return fmt.Errorf("templates: unknown subcommand %q: %w", args[0], errUsage)
	}
}

func tasksCommand(ctx context.Context, a *app, w io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("tasks: missing subcommand: %w", errUsage)
	}
	switch args[0] {
	case "add":
		rec, err := a.tasks.AddTask(ctx, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(w, formatTask(rec))
		return nil

	case "list":
		recs, err := a.tasks.ListTasks(ctx)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			fmt.Fprintln(w, formatTask(rec))
		}
		return nil

	case "toggle":
		if len(args) != 2 {
			return fmt.Errorf("tasks toggle: provide ID: %w", errUsage)
		}
		rec, err := a.tasks.ToggleTask(ctx, cadence.TaskID(args[1]))
		if err != nil {
			return fmt.Errorf("task %q: %w", args[1], err)
		}
		fmt.Fprintln(w, formatTask(rec))
		return nil

	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("tasks rm: provide ID: %w", errUsage)
		}
		if _, err := a.tasks.DeleteTask(ctx, cadence.TaskID(args[1])); err != nil {
			return fmt.Errorf("task %q: %w", args[1], err)
		}
		return nil

	default:
		return fmt.Errorf("tasks: unknown subcommand %q: %w", args[0], errUsage)
	}
}

func formatTask(rec cadence.ExistingTaskRecord) string {
	box := "[ ]"
	if rec.Done {
		box = "[x]"
	}
	return fmt.Sprintf("%s %s  %s", box, rec.ID, rec.Title)
}

func settingsCommand(ctx context.Context, a *app, w io.Writer, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("settings: missing subcommand: %w", errUsage)
	}
	s, err := a.settings.LoadSettings(ctx, cadence.DefaultSettings())
	if err != nil {
		return err
	}

	switch args[0] {
	case "show":
	case "set":
		if len(args) < 2 {
			return fmt.Errorf("settings set: provide KEY=VALUE: %w", errUsage)
		}
		for _, kv := range args[1:] {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("settings set: %q is not KEY=VALUE: %w", kv, errUsage)
			}
			if s, err = applySetting(s, k, v); err != nil {
				return err
			}
		}
		if err := a.settings.SaveSettings(ctx, s); err != nil {
			return err
		}
	default:
		return fmt.Errorf("settings: unknown subcommand %q: %w", args[0], errUsage)
	}

	fmt.Fprintf(w, "session_minutes=%d\nauto_start=%t\nsound=%t\nnotifications=%t\ntheme=%s\ntimer_mode=%s\n",
		s.SessionMinutes, s.AutoStart, s.SoundEnabled, s.NotificationsEnabled, s.Theme, s.TimerMode)
	return nil
}

func applySetting(s cadence.Settings, key, value string) (cadence.Settings, error) {
	parseBool := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("%s: want true or false, got %q", key, value)
		}
		return b, nil
	}

	var err error
	switch key {
	case "session_minutes":
		n, perr := strconv.Atoi(value)
		if perr != nil {
			return s, fmt.Errorf("%s: want a number of minutes, got %q", key, value)
		}
		s.SessionMinutes = cadence.ClampMinutes(n)
	case "auto_start":
		s.AutoStart, err = parseBool()
	case "sound":
		s.SoundEnabled, err = parseBool()
	case "notifications":
		s.NotificationsEnabled, err = parseBool()
	case "theme":
		switch t := cadence.Theme(value); t {
		case cadence.DarkTheme, cadence.LightTheme:
			s.Theme = t
		default:
			err = fmt.Errorf("%s: want dark or light, got %q", key, value)
		}
	case "timer_mode":
		switch m := cadence.TimerMode(value); m {
		case cadence.DigitalMode, cadence.BarMode:
			s.TimerMode = m
		default:
			err = fmt.Errorf("%s: want digital or bar, got %q", key, value)
		}
	default:
		err = fmt.Errorf("unknown setting %q", key)
	}
	return s, err
}
