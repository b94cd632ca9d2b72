package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDownloadEvent(t *testing.T) {
	fixed := time.Date(2024, 2, 1, 9, 30, 0, 0, time.FixedZone("KST", 9*60*60))
	SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { SetClock(nil) })

	sel := completeSelection()
	req, err := NewDownloadRequest(sel)
	require.NoError(t, err)

	ev := NewDownloadEvent(sel, req, "/tmp/명동_20240101_20240131.zip", 2048)

	assert.Regexp(t, `^dl-[0-9a-f]{16}$`, ev.ID)
	assert.Equal(t, "short", ev.ForecastID)
	assert.Equal(t, "단기예보", ev.ForecastName)
	assert.Equal(t, "명동", ev.Town)
	assert.Equal(t, []string{"1시간기온", "풍속"}, ev.Variables)
	assert.Equal(t, int64(2048), ev.Bytes)
	assert.Equal(t, fixed.UTC(), ev.RequestedAt)
	assert.Equal(t, time.UTC, ev.RequestedAt.Location())
}

func TestNewDownloadEvent_DeterministicID(t *testing.T) {
	fake := clockwork.NewFakeClockAt(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	SetClock(fake)
	t.Cleanup(func() { SetClock(nil) })

	req, err := NewDownloadRequest(completeSelection())
	require.NoError(t, err)

	a := NewDownloadEvent(completeSelection(), req, "a.zip", 1)
	b := NewDownloadEvent(completeSelection(), req, "b.zip", 2)
	assert.Equal(t, a.ID, b.ID)

	fake.Advance(time.Second)
	c := NewDownloadEvent(completeSelection(), req, "a.zip", 1)
	assert.NotEqual(t, a.ID, c.ID)
}

func TestDownloadEvent_JSON(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { SetClock(nil) })

	req, err := NewDownloadRequest(completeSelection())
	require.NoError(t, err)
	ev := NewDownloadEvent(completeSelection(), req, "명동.zip", 10)

	data, err := json.Marshal(ev)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"id", "forecast_id", "forecast_name", "city", "district", "town", "variables", "start", "end", "file", "bytes", "requested_at"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, "2024-02-01T00:00:00Z", raw["requested_at"])
}
