package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunReportStoreContract runs a suite of tests to verify that a ReportStore implementation
// adheres to the defined interface contract.
func RunReportStoreContract(t *testing.T, store ReportStore) {
	ctx := context.Background()
	reportID := "contract-test-report-" + time.Now().Format("20060102150405")

	newReport := func(id string) *domain.Report {
		return &domain.Report{
			ID:        id,
			Device:    domain.DeviceInfo{Name: "iPhone", Idiom: domain.IdiomPhone, Orientation: domain.Portrait},
			StartedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			Results: []domain.CaseResult{
				{Name: "Typing", Status: domain.CasePassed, Duration: 2 * time.Second},
				{Name: "Clipboard", Status: domain.CaseFailed, Errors: []string{"value mismatch"}},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		report := newReport(reportID)

		err := store.Save(ctx, report)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, reportID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, report.ID, loaded.ID)
		assert.Equal(t, report.Device, loaded.Device)
		assert.True(t, report.StartedAt.Equal(loaded.StartedAt))
		require.Len(t, loaded.Results, 2)
		assert.Equal(t, domain.CaseFailed, loaded.Results[1].Status)
		assert.Equal(t, []string{"value mismatch"}, loaded.Results[1].Errors)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})

	t.Run("Stored copy is isolated", func(t *testing.T) {
		report := newReport(reportID + "-iso")
		require.NoError(t, store.Save(ctx, report))
		defer func() { _ = store.Delete(ctx, report.ID) }()

		report.Results[0].Status = domain.CaseSkipped

		loaded, err := store.Load(ctx, report.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.CasePassed, loaded.Results[0].Status)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, newReport(reportID))
		require.NoError(t, err)

		err = store.Delete(ctx, reportID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound, "Load after Delete should return ErrReportNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := reportID + "-1"
		id2 := reportID + "-2"
		_ = store.Save(ctx, newReport(id1))
		_ = store.Save(ctx, newReport(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
