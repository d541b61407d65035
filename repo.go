package cadence

import "context"

type TemplateRepo interface {
	SaveTemplate(context.Context, SessionTemplate) (ExistingTemplateRecord, error)
	GetTemplate(ctx context.Context, id TemplateID) (ExistingTemplateRecord, error)
	ListTemplates(context.Context) ([]ExistingTemplateRecord, error)
	DeleteTemplate(ctx context.Context, id TemplateID) (ExistingTemplateRecord, error)
}

type TaskRepo interface {
	AddTask(ctx context.Context, title string) (ExistingTaskRecord, error)
	ListTasks(context.Context) ([]ExistingTaskRecord, error)
	ToggleTask(ctx context.Context, id TaskID) (ExistingTaskRecord, error)
	DeleteTask(ctx context.Context, id TaskID) (ExistingTaskRecord, error)
}

type SettingsRepo interface {
	// LoadSettings returns defaults when nothing has been saved yet.
	LoadSettings(ctx context.Context, defaults Settings) (Settings, error)
	SaveSettings(context.Context, Settings) error
}
