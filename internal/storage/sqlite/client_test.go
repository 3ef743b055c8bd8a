package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlens/backend/internal/storage/models"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	require.NoError(t, client.InitSchema())
	return client
}

func TestInitSchema_Idempotent(t *testing.T) {
	client := newTestClient(t)

	assert.NoError(t, client.InitSchema())
}

func TestItemRoundTrip(t *testing.T) {
	client := newTestClient(t)

	now := time.Now()
	item := &models.Item{
		Lens:                "platforms",
		Name:                "Payments",
		Description:         "Card and wallet processing",
		LifecycleStatus:     models.StatusInvest,
		Parent:              "Core",
		Tags:                []string{"pci", "critical"},
		PrimaryArchitect:    "Carol",
		SecondaryArchitects: []string{"Bob"},
		Hyperlinks:          []models.Hyperlink{{Label: "Runbook", URL: "https://wiki.example/payments"}},
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	id, err := client.InsertItem(item)
	require.NoError(t, err)

	got, err := client.GetItem(id)
	require.NoError(t, err)

	assert.Equal(t, "Payments", got.Name)
	assert.Equal(t, models.StatusInvest, got.LifecycleStatus)
	assert.Equal(t, []string{"pci", "critical"}, got.Tags)
	assert.Equal(t, []string{"Bob"}, got.SecondaryArchitects)
	require.Len(t, got.Hyperlinks, 1)
	assert.Equal(t, "Runbook", got.Hyperlinks[0].Label)
	assert.Equal(t, now.Unix(), got.CreatedAt.Unix())
}

func TestGetItem_NotFound(t *testing.T) {
	client := newTestClient(t)

	_, err := client.GetItem(42)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateItem_NotFound(t *testing.T) {
	client := newTestClient(t)

	err := client.UpdateItem(&models.Item{ID: 42, Lens: "platforms", Name: "Ghost"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteItem_NotFound(t *testing.T) {
	client := newTestClient(t)

	assert.ErrorIs(t, client.DeleteItem(42), ErrNotFound)
}

func TestInsertItem_UniqueNamePerLens(t *testing.T) {
	client := newTestClient(t)

	now := time.Now()
	_, err := client.InsertItem(&models.Item{Lens: "platforms", Name: "Payments", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	_, err = client.InsertItem(&models.Item{Lens: "platforms", Name: "Payments", CreatedAt: now, UpdatedAt: now})
	assert.Error(t, err, "UNIQUE(lens, name) is enforced by the schema")

	_, err = client.InsertItem(&models.Item{Lens: "channels", Name: "Payments", CreatedAt: now, UpdatedAt: now})
	assert.NoError(t, err)
}

func TestListItemsByLens(t *testing.T) {
	client := newTestClient(t)

	now := time.Now()
	for _, item := range []models.Item{
		{Lens: "platforms", Name: "Payments"},
		{Lens: "platforms", Name: "Identity"},
		{Lens: "channels", Name: "Web"},
	} {
		item.CreatedAt = now
		item.UpdatedAt = now
		_, err := client.InsertItem(&item)
		require.NoError(t, err)
	}

	items, err := client.ListItemsByLens("platforms")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	count, err := client.CountItems()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestTaskCompletedAtNullable(t *testing.T) {
	client := newTestClient(t)

	now := time.Now()
	id, err := client.InsertTask(&models.Task{
		Description: "Review target state",
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)

	task, err := client.GetTask(id)
	require.NoError(t, err)
	assert.Nil(t, task.CompletedAt)

	done := now
	task.CompletedAt = &done
	require.NoError(t, client.UpdateTask(task))

	task, err = client.GetTask(id)
	require.NoError(t, err)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, done.Unix(), task.CompletedAt.Unix())
}

func TestListTasksForNote(t *testing.T) {
	client := newTestClient(t)

	now := time.Now()
	noteID, err := client.InsertMeetingNote(&models.MeetingNote{
		Title: "Review", DateTime: now, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	_, err = client.InsertTask(&models.Task{Description: "linked", MeetingNoteID: &noteID, CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	_, err = client.InsertTask(&models.Task{Description: "standalone", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	tasks, err := client.ListTasksForNote(noteID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "linked", tasks[0].Description)
}

func TestTeamMemberUniqueName(t *testing.T) {
	client := newTestClient(t)

	_, err := client.InsertTeamMember(&models.TeamMember{Name: "Alice"})
	require.NoError(t, err)

	_, err = client.InsertTeamMember(&models.TeamMember{Name: "Alice"})
	assert.Error(t, err)
}

func TestIsBusy(t *testing.T) {
	assert.True(t, isBusy(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.True(t, isBusy(sqlite3.Error{Code: sqlite3.ErrLocked}))
	assert.False(t, isBusy(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.False(t, isBusy(assert.AnError))
}
