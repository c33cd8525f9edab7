package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	feedService "github.com/reshetovitsme/discord-thread-digest/internal/modules/feed/service"
	summaryDomain "github.com/reshetovitsme/discord-thread-digest/internal/modules/summary/domain"
	"github.com/reshetovitsme/discord-thread-digest/internal/shared/config"
	sharedErrors "github.com/reshetovitsme/discord-thread-digest/internal/shared/errors"
	"github.com/stretchr/testify/require"
)

type digestStub struct {
	digest *summaryDomain.Digest
}

func (d *digestStub) Latest() (*summaryDomain.Digest, error) {
	if d.digest == nil {
		return nil, sharedErrors.ErrNoDigest
	}
	return d.digest, nil
}

func newTestServer(digests *digestStub) http.Handler {
	cfg := &config.Config{HTTPPort: "8080"}
	return New(cfg, feedService.New(digests), digests).Handler()
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(&digestStub{}), "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestDigest_NotBuiltYet(t *testing.T) {
	handler := newTestServer(&digestStub{})

	require.Equal(t, http.StatusNotFound, get(t, handler, "/digest").Code)
	require.Equal(t, http.StatusNotFound, get(t, handler, "/digest/rss").Code)
}

func TestDigest_ServesLatest(t *testing.T) {
	at := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	digests := &digestStub{digest: &summaryDomain.Digest{
		ID:        uuid.New(),
		GuildID:   "g",
		StartedAt: at,
		Published: 1,
		Summaries: []summaryDomain.Summary{{
			ChannelID:   "c1",
			ChannelName: "general",
			Mention:     "<#c1>",
			BuiltAt:     at,
			Fragment:    summaryDomain.Fragment{Lines: []string{" - [plan](https://discord.com/channels/g/t/m)"}},
		}},
	}}
	handler := newTestServer(digests)

	rec := get(t, handler, "/digest")
	require.Equal(t, http.StatusOK, rec.Code)

	var body summaryDomain.Digest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, digests.digest.ID, body.ID)
	require.Equal(t, "general", body.Summaries[0].ChannelName)

	rss := get(t, handler, "/digest/rss")
	require.Equal(t, http.StatusOK, rss.Code)
	require.Equal(t, "application/rss+xml; charset=utf-8", rss.Header().Get("Content-Type"))
	require.Contains(t, rss.Body.String(), "#general")

	atom := get(t, handler, "/digest/atom")
	require.Equal(t, "application/atom+xml; charset=utf-8", atom.Header().Get("Content-Type"))
	require.Contains(t, atom.Body.String(), "<feed")

	require.Equal(t, http.StatusNotFound, get(t, handler, "/digest/yaml").Code)
}
