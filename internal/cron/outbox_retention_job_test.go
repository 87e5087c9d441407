package cron

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sunfieldhq/solarops-backend/pkg/db/models"
	"github.com/sunfieldhq/solarops-backend/pkg/enums"
	"github.com/sunfieldhq/solarops-backend/pkg/logger"
	"github.com/sunfieldhq/solarops-backend/pkg/outbox"
)

func TestOutboxRetentionJobPrunesOldPublishedRows(t *testing.T) {
	t.Parallel()

	dsn := "file:retention_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.OutboxEvent{}))

	now := time.Date(2026, 8, 23, 6, 0, 0, 0, time.UTC)
	old := now.Add(-40 * 24 * time.Hour)
	recent := now.Add(-2 * 24 * time.Hour)

	seed := func(published *time.Time) uuid.UUID {
		event := models.OutboxEvent{
			ID:            uuid.New(),
			EventType:     enums.EventScheduleProposed,
			AggregateType: enums.AggregateScheduleRecord,
			AggregateID:   uuid.New(),
			Payload:       []byte(`{}`),
			PublishedAt:   published,
		}
		require.NoError(t, db.Create(&event).Error)
		return event.ID
	}

	seed(&old)
	keptPublished := seed(&recent)
	keptUnpublished := seed(nil)

	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	job, err := NewOutboxRetentionJob(OutboxRetentionJobParams{
		Logger:     logg,
		Repository: outbox.NewRepository(db),
		Retention:  30,
	})
	require.NoError(t, err)
	job.(*outboxRetentionJob).now = func() time.Time { return now }

	require.NoError(t, job.Run(context.Background()))

	var remaining []models.OutboxEvent
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 2)
	ids := map[uuid.UUID]bool{}
	for _, event := range remaining {
		ids[event.ID] = true
	}
	assert.True(t, ids[keptPublished])
	assert.True(t, ids[keptUnpublished], "unpublished rows are never pruned")
}
