package templates

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjamonnguyen/cadence"
)

// mockTemplateRepo is an in-memory cadence.TemplateRepo
type mockTemplateRepo struct {
	saved   []cadence.SessionTemplate
	listErr error
}

func (m *mockTemplateRepo) SaveTemplate(_ context.Context, tpl cadence.SessionTemplate) (cadence.ExistingTemplateRecord, error) {
	m.saved = append(m.saved, tpl)
	return cadence.ExistingTemplateRecord{
		ExistingRecord: cadence.NewExistingRecord(tpl.ID),
		Template:       tpl,
	}, nil
}

func (m *mockTemplateRepo) GetTemplate(context.Context, cadence.TemplateID) (cadence.ExistingTemplateRecord, error) {
	return cadence.ExistingTemplateRecord{}, nil
}

func (m *mockTemplateRepo) ListTemplates(context.Context) ([]cadence.ExistingTemplateRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var recs []cadence.ExistingTemplateRecord
	for _, tpl := range m.saved {
		recs = append(recs, cadence.ExistingTemplateRecord{Template: tpl})
	}
	return recs, nil
}

func (m *mockTemplateRepo) DeleteTemplate(context.Context, cadence.TemplateID) (cadence.ExistingTemplateRecord, error) {
	return cadence.ExistingTemplateRecord{}, nil
}

var _ cadence.TemplateRepo = (*mockTemplateRepo)(nil)

func TestSeed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	logger := log.New(io.Discard)

	t.Run("empty repo gets built-ins once", func(t *testing.T) {
		t.Parallel()

		repo := &mockTemplateRepo{}
		require.NoError(t, Seed(ctx, repo, logger))
		assert.Len(t, repo.saved, 4)

		require.NoError(t, Seed(ctx, repo, logger))
		assert.Len(t, repo.saved, 4)
	})

	t.Run("list error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		err := Seed(ctx, &mockTemplateRepo{listErr: boom}, logger)
		assert.ErrorIs(t, err, boom)
	})
}
