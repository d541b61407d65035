package templates

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/cadence"
)

// Seed saves the built-in templates when repo holds none.
func Seed(ctx context.Context, repo cadence.TemplateRepo, logger *log.Logger) error {
	existing, err := repo.ListTemplates(ctx)
	if err != nil {
		return fmt.Errorf("list templates: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	tpls, err := BuiltIn()
	if err != nil {
		return err
	}
	for _, tpl := range tpls {
		if _, err := repo.SaveTemplate(ctx, tpl); err != nil {
			return fmt.Errorf("seed template %q: %w", tpl.ID, err)
		}
	}
	logger.Info("seeded built-in templates", "count", len(tpls))
	return nil
}
