package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/b4os-dev/classboard-api/internal/handler"
	"github.com/b4os-dev/classboard-api/internal/service"
)

type stubSnapshotService struct {
	count int
	err   error
	calls int
}

func (s *stubSnapshotService) RefreshLeaderboard(_ context.Context) (int, error) {
	s.calls++
	return s.count, s.err
}

var _ service.SnapshotService = (*stubSnapshotService)(nil)

func TestRefreshLeaderboardReturnsCount(t *testing.T) {
	svc := &stubSnapshotService{count: 12}
	app := fiber.New()
	handler.NewAdminHandler(svc, zerolog.Nop()).Register(app.Group("/api/v1/admin"))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/admin/leaderboard/refresh", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var data struct {
		Students int `json:"students"`
	}
	success, _ := decodeEnvelope(t, resp, &data)
	require.True(t, success)
	require.Equal(t, 12, data.Students)
	require.Equal(t, 1, svc.calls)
}

func TestRefreshLeaderboardFailure(t *testing.T) {
	app := fiber.New()
	handler.NewAdminHandler(&stubSnapshotService{err: errors.New("boom")}, zerolog.Nop()).Register(app.Group("/api/v1/admin"))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/admin/leaderboard/refresh", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
