package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adsync-api/internal/api/handler/router"
	"github.com/vfg2006/adsync-api/internal/domain"
	"github.com/vfg2006/adsync-api/internal/scheduler"
	"github.com/vfg2006/adsync-api/internal/usecases/integration/mocks"
	"github.com/vfg2006/adsync-api/internal/usecases/ownership"
	"github.com/vfg2006/adsync-api/internal/usecases/snapshotting"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
	"github.com/vfg2006/adsync-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

const accountID = "1234567890"

type fakeRunner struct {
	triggered []scheduler.Task
}

func (f *fakeRunner) Trigger(task scheduler.Task) error {
	switch task {
	case scheduler.TaskCacheSweep, scheduler.TaskSnapshotPurge, scheduler.TaskAuditCleanup, scheduler.TaskAll:
		f.triggered = append(f.triggered, task)
		return nil
	}
	return scheduler.ErrUnknownTask
}

func (f *fakeRunner) Status() map[scheduler.Task]scheduler.TaskStatus {
	return map[scheduler.Task]scheduler.TaskStatus{scheduler.TaskCacheSweep: {Cron: "0 */6 * * *"}}
}

func (f *fakeRunner) Enabled() bool { return false }

func newTestRouter(service *mocks.MockIntegrator, runner MaintenanceRunner) router.Router {
	return router.New(
		router.WithRoutes(Healthcheck()...),
		router.WithRoutes(OAuth(service)...),
		router.WithRoutes(Connections(service)...),
		router.WithRoutes(AccountData(service)...),
		router.WithRoutes(Snapshots(service)...),
		router.WithRoutes(Audit(service)...),
		router.WithRoutes(Maintenance(runner)...),
	)
}

func asUser(r *http.Request, userID, roleID int) *http.Request {
	claims := &domain.Claims{UserID: userID, UserRoleID: roleID}
	return r.WithContext(context.WithValue(r.Context(), middleware.ContextKeyUser, claims))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	var apiErr apiErrors.APIError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
	return apiErr
}

func TestGetResource(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		setup      func(service *mocks.MockIntegrator)
		wantStatus int
		validate   func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "dados do cache",
			url:  "/v1/accounts/" + accountID + "/data/campaigns?start=2024-04-01&end=2024-04-30",
			setup: func(service *mocks.MockIntegrator) {
				dr := domain.NewDateRange(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC))
				service.EXPECT().
					Resource(gomock.Any(), 42, accountID, domain.ResourceCampaigns, dr).
					Return([]domain.Campaign{{ID: "1", Name: "Marca"}}, true, nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp struct {
					Resource string           `json:"resource"`
					Cached   bool             `json:"cached"`
					Data     []map[string]any `json:"data"`
				}
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "campaigns", resp.Resource)
				assert.True(t, resp.Cached)
				require.Len(t, resp.Data, 1)
			},
		},
		{
			name:       "intervalo invertido",
			url:        "/v1/accounts/" + accountID + "/data/campaigns?start=2024-05-01&end=2024-04-01",
			setup:      func(service *mocks.MockIntegrator) {},
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, apiErrors.ErrInvalidFormat, decodeError(t, rec).Code)
			},
		},
		{
			name: "conta de outro usuário",
			url:  "/v1/accounts/" + accountID + "/data/keywords",
			setup: func(service *mocks.MockIntegrator) {
				service.EXPECT().
					Resource(gomock.Any(), 42, accountID, domain.ResourceKeywords, (*domain.DateRange)(nil)).
					Return(nil, false, ownership.NewOwnershipError(ownership.ErrAccessDenied, apiErrors.ErrAccessDenied, 42, accountID, ""))
			},
			wantStatus: http.StatusForbidden,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, apiErrors.ErrAccessDenied, decodeError(t, rec).Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := mocks.NewMockIntegrator(ctrl)
			tt.setup(service)

			rec := httptest.NewRecorder()
			req := asUser(httptest.NewRequest(http.MethodGet, tt.url, nil), 42, domain.RoleMember)

			newTestRouter(service, &fakeRunner{}).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			tt.validate(t, rec)
		})
	}
}

func TestDeleteConnection(t *testing.T) {
	t.Run("desconecta por padrão", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockIntegrator(ctrl)
		service.EXPECT().Disconnect(gomock.Any(), 42, accountID, gomock.Any()).Return(nil)

		rec := httptest.NewRecorder()
		req := asUser(httptest.NewRequest(http.MethodDelete, "/v1/connections/"+accountID, nil), 42, domain.RoleMember)
		newTestRouter(service, &fakeRunner{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("remove com remove=true e repassa o IP", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockIntegrator(ctrl)
		service.EXPECT().
			RemoveAccount(gomock.Any(), 42, accountID, domain.RequestMeta{IPAddress: "10.0.0.1", UserAgent: "test"}).
			Return(nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/connections/"+accountID+"?remove=true", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req.Header.Set("User-Agent", "test")
		newTestRouter(service, &fakeRunner{}).ServeHTTP(rec, asUser(req, 42, domain.RoleMember))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestOAuthCallback(t *testing.T) {
	t.Run("devolve o lote sem tokens", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockIntegrator(ctrl)

		batch := domain.NewConnectBatchResult()
		batch.Add(domain.ConnectResult{ExternalAccountID: accountID, Outcome: domain.ConnectOutcomeConnected})

		service.EXPECT().
			CompleteAuthorization(gomock.Any(), "code-1", "state-1", gomock.Any()).
			Return(&domain.AuthorizationResult{
				OwnerID: 42,
				Tokens:  &domain.TokenSet{AccessToken: "secret-access", RefreshToken: "secret-refresh"},
				Batch:   batch,
			}, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/oauth/callback?code=code-1&state=state-1", nil)
		newTestRouter(service, &fakeRunner{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), accountID)
		assert.NotContains(t, rec.Body.String(), "secret")
	})

	t.Run("consentimento negado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockIntegrator(ctrl)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/oauth/callback?error=access_denied", nil)
		newTestRouter(service, &fakeRunner{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, apiErrors.ErrProviderDenied, decodeError(t, rec).Code)
	})
}

func TestSnapshotsHandlers(t *testing.T) {
	t.Run("grava snapshot da data informada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockIntegrator(ctrl)
		date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

		service.EXPECT().
			RecordSnapshot(gomock.Any(), 42, accountID, date, gomock.Any()).
			Return(&domain.Snapshot{ID: 7, ExternalAccountID: accountID, Date: date}, nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/accounts/"+accountID+"/snapshots", strings.NewReader(`{"date":"2024-05-01"}`))
		newTestRouter(service, &fakeRunner{}).ServeHTTP(rec, asUser(req, 42, domain.RoleMember))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("snapshot duplicado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockIntegrator(ctrl)

		service.EXPECT().
			RecordSnapshot(gomock.Any(), 42, accountID, gomock.Any(), gomock.Any()).
			Return(nil, snapshotting.NewSnapshotError(snapshotting.ErrSnapshotAlreadyExists, apiErrors.ErrConflict, accountID, ""))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/accounts/"+accountID+"/snapshots", nil)
		newTestRouter(service, &fakeRunner{}).ServeHTTP(rec, asUser(req, 42, domain.RoleMember))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("último snapshot inexistente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockIntegrator(ctrl)

		service.EXPECT().
			LatestSnapshot(gomock.Any(), 42, accountID).
			Return(nil, snapshotting.NewSnapshotError(snapshotting.ErrSnapshotNotFound, apiErrors.ErrNotFound, accountID, ""))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/accounts/"+accountID+"/snapshots/latest", nil)
		newTestRouter(service, &fakeRunner{}).ServeHTTP(rec, asUser(req, 42, domain.RoleMember))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("tendência exige os dois períodos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := mocks.NewMockIntegrator(ctrl)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/accounts/"+accountID+"/snapshots/trend?p1_start=2024-05-01&p1_end=2024-05-31", nil)
		newTestRouter(service, &fakeRunner{}).ServeHTTP(rec, asUser(req, 42, domain.RoleMember))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrMissingRequiredData, decodeError(t, rec).Code)
	})
}

func TestListAudit_ScopedToCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockIntegrator(ctrl)

	service.EXPECT().
		ListAudit(gomock.Any(), 42, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int, filter domain.AuditFilter) ([]*domain.AuditEntry, error) {
			assert.True(t, filter.OnlyFailures)
			assert.Equal(t, 10, filter.Limit)
			return []*domain.AuditEntry{}, nil
		})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/audit?failures=true&limit=10", nil)
	newTestRouter(service, &fakeRunner{}).ServeHTTP(rec, asUser(req, 42, domain.RoleMember))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMaintenanceHandlers(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		roleID     int
		wantStatus int
	}{
		{name: "admin dispara varredura", url: "/v1/maintenance/run/cache-sweep", roleID: domain.RoleAdmin, wantStatus: http.StatusAccepted},
		{name: "tarefa desconhecida", url: "/v1/maintenance/run/reindex", roleID: domain.RoleAdmin, wantStatus: http.StatusBadRequest},
		{name: "membro não pode disparar", url: "/v1/maintenance/run/all", roleID: domain.RoleMember, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			runner := &fakeRunner{}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, tt.url, nil)
			newTestRouter(mocks.NewMockIntegrator(ctrl), runner).ServeHTTP(rec, asUser(req, 1, tt.roleID))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	t.Run("status", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/maintenance/status", nil)
		newTestRouter(mocks.NewMockIntegrator(ctrl), &fakeRunner{}).ServeHTTP(rec, asUser(req, 1, domain.RoleAdmin))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"enabled":false`)
	})
}

func TestRouter_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)

	rec := httptest.NewRecorder()
	newTestRouter(mocks.NewMockIntegrator(ctrl), &fakeRunner{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/unknown", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
