package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/massimodamico86-art/bizscreen-sub004/internal/repository"
	"github.com/massimodamico86-art/bizscreen-sub004/internal/service"
)

type fakePlayerService struct {
	content    *service.PlayerContent
	resolveErr error

	heartbeatErr error
	heartbeats   []string
}

func (f *fakePlayerService) ResolveContent(_ context.Context, req service.ResolveContentRequest) (*service.PlayerContent, error) {
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	return f.content, nil
}

func (f *fakePlayerService) Heartbeat(_ context.Context, screenID string) error {
	f.heartbeats = append(f.heartbeats, screenID)
	return f.heartbeatErr
}

func newTestRouter(svc service.PlayerService) *Router {
	r := NewRouter(zap.NewNop())
	r.RegisterPlayerRoutes(NewPlayerHandler(svc, zap.NewNop()))
	return r
}

func doRequest(t *testing.T, router *Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestResolveContentOK(t *testing.T) {
	svc := &fakePlayerService{
		content: &service.PlayerContent{
			Mode:   "playlist",
			Source: "assigned_playlist",
			Device: service.DeviceInfo{ID: "screen-1", Timezone: "UTC", ResolvedLanguage: "en"},
			Playlist: &service.PlaylistPayload{
				ID:   "pl-1",
				Name: "Lobby Loop",
			},
		},
	}
	rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/player/api/v1/screens/screen-1/content")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var out Result[service.PlayerContent]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, ResultSuccess, out.Code)
	assert.Equal(t, "success", out.Type)
	assert.Equal(t, "playlist", out.Result.Mode)
	assert.Equal(t, "screen-1", out.Result.Device.ID)
	require.NotNil(t, out.Result.Playlist)
	assert.Equal(t, "pl-1", out.Result.Playlist.ID)
}

func TestResolveContentScreenNotFound(t *testing.T) {
	svc := &fakePlayerService{
		resolveErr: fmt.Errorf("device screen-x: %w", repository.ErrNotFound),
	}
	rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/player/api/v1/screens/screen-x/content")

	require.Equal(t, http.StatusNotFound, rec.Code)

	var out Result[any]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, ResultError, out.Code)
	assert.Equal(t, "error", out.Type)
}

func TestResolveContentDanglingEmergency(t *testing.T) {
	svc := &fakePlayerService{
		resolveErr: fmt.Errorf("%w: media em-1 missing", service.ErrDanglingReference),
	}
	rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/player/api/v1/screens/screen-1/content")

	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestResolveContentInternalError(t *testing.T) {
	svc := &fakePlayerService{resolveErr: fmt.Errorf("connection refused")}
	rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/player/api/v1/screens/screen-1/content")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestResolveContentMethodNotAllowed(t *testing.T) {
	svc := &fakePlayerService{}
	rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/player/api/v1/screens/screen-1/content")

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHeartbeatOK(t *testing.T) {
	svc := &fakePlayerService{}
	rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/player/api/v1/screens/screen-7/heartbeat")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"screen-7"}, svc.heartbeats)
}

func TestHeartbeatScreenNotFound(t *testing.T) {
	svc := &fakePlayerService{
		heartbeatErr: fmt.Errorf("device gone: %w", repository.ErrNotFound),
	}
	rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/player/api/v1/screens/gone/heartbeat")

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHeartbeatGetNotAllowed(t *testing.T) {
	svc := &fakePlayerService{}
	rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/player/api/v1/screens/screen-1/heartbeat")

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestUnknownActionNotFound(t *testing.T) {
	svc := &fakePlayerService{}
	rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/player/api/v1/screens/screen-1/snapshot")

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMissingScreenIDNotFound(t *testing.T) {
	svc := &fakePlayerService{}
	rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/player/api/v1/screens//content")

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	svc := &fakePlayerService{}
	rec := doRequest(t, newTestRouter(svc), http.MethodGet, "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
