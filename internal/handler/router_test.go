package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoshCentner/ShadowMatchPro/internal/auth"
	"github.com/JoshCentner/ShadowMatchPro/internal/config"
	"github.com/JoshCentner/ShadowMatchPro/internal/handler"
	"github.com/JoshCentner/ShadowMatchPro/internal/metrics"
	"github.com/JoshCentner/ShadowMatchPro/internal/model"
	"github.com/JoshCentner/ShadowMatchPro/internal/seed"
	"github.com/JoshCentner/ShadowMatchPro/internal/service"
	"github.com/JoshCentner/ShadowMatchPro/internal/storage/memory"
)

type testServer struct {
	router http.Handler
	store  *memory.Store
	tokens *auth.TokenManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := config.Load()
	store := memory.NewStore()
	require.NoError(t, seed.Run(context.Background(), store))

	tokenManager := auth.NewTokenManager("test_secret", time.Hour)
	registry := prometheus.NewRegistry()

	router := handler.NewRouter(handler.RouterDeps{
		Config:       cfg,
		Store:        store,
		Users:        service.NewUserService(store, tokenManager),
		Lifecycle:    service.NewLifecycleService(store, nil),
		TokenManager: tokenManager,
		Metrics:      metrics.NewCollector(registry),
		Gatherer:     registry,
	})

	return &testServer{router: router, store: store, tokens: tokenManager}
}

func (ts *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out), "body: %s", rec.Body.String())
	return out
}

// registerUser creates a user through the API and completes the profile so
// the user can create opportunities.
func (ts *testServer) registerUser(t *testing.T, email, name string, orgID int) model.User {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email": email,
		"name":  name,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	user := decode[model.User](t, rec)

	if orgID > 0 {
		rec = ts.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d", user.ID), map[string]any{
			"organisationId": orgID,
			"currentRole":    "Product Manager",
		}, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		user = decode[model.User](t, rec)
	}
	return user
}

func (ts *testServer) createOpportunity(t *testing.T, creatorID int) model.Opportunity {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/api/opportunities", map[string]any{
		"title":           "Platform Product Management Shadowing",
		"description":     "Shadow the platform product team for two days",
		"format":          "In-Person",
		"durationLimit":   "2 Days",
		"organisationId":  1,
		"createdByUserId": creatorID,
		"learningAreaIds": []int{1, 2},
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[model.Opportunity](t, rec)
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "shadowmatch_http_requests_total")
}

func TestClientConfig(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/config", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Contains(t, body, "apiBaseUrl")
	assert.Contains(t, body, "googleClientId")
}

func TestRegisterEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email": "jo@seek.com.au",
		"name":  "Jo",
	}, "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	user := decode[model.User](t, rec)
	assert.NotZero(t, user.ID)

	t.Run("existing email returns 200", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/auth/register", map[string]string{
			"email": "jo@seek.com.au",
			"name":  "Jo",
		}, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		again := decode[model.User](t, rec)
		assert.Equal(t, user.ID, again.ID)
	})

	t.Run("invalid body returns 400", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/auth/register", map[string]string{
			"email": "not-an-email",
			"name":  "Jo",
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGoogleSignInEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/auth/google-signin", map[string]string{
		"email":      "jo@seek.com.au",
		"name":       "Jo",
		"pictureUrl": "https://example.com/jo.png",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		User  model.User `json:"user"`
		Token string     `json:"token"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.NotZero(t, out.User.ID)
	assert.NotEmpty(t, out.Token)

	claims, err := ts.tokens.Validate(out.Token)
	require.NoError(t, err)
	assert.Equal(t, "jo@seek.com.au", claims.Email)
}

func TestMeEndpoint(t *testing.T) {
	ts := newTestServer(t)
	user := ts.registerUser(t, "jo@seek.com.au", "Jo", 0)

	rec := ts.do(t, http.MethodGet, fmt.Sprintf("/api/auth/me?userId=%d", user.ID), nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	t.Run("missing id returns 401", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/auth/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/auth/me?userId=999", nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestOrganisationsAndLearningAreas(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/organisations", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	orgs := decode[[]model.Organisation](t, rec)
	require.NotEmpty(t, orgs)
	assert.Equal(t, "SEEK", orgs[0].Name)

	rec = ts.do(t, http.MethodGet, "/api/learning-areas", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	areas := decode[[]model.LearningArea](t, rec)
	assert.NotEmpty(t, areas)
}

func TestOpportunityFlow(t *testing.T) {
	ts := newTestServer(t)
	creator := ts.registerUser(t, "leon@seek.com.au", "Leon", 1)
	applicant := ts.registerUser(t, "priya@rea-group.com", "Priya", 0)

	opp := ts.createOpportunity(t, creator.ID)
	assert.Equal(t, model.StatusOpen, opp.Status)

	t.Run("fetching it back returns the same fields", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, fmt.Sprintf("/api/opportunities/%d", opp.ID), nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		detail := decode[model.OpportunityDetail](t, rec)
		assert.Equal(t, opp.Title, detail.Title)
		assert.Equal(t, opp.Format, detail.Format)
		assert.Equal(t, opp.DurationLimit, detail.DurationLimit)
		assert.Equal(t, creator.ID, detail.Creator.ID)
		assert.Len(t, detail.LearningAreas, 2)
	})

	t.Run("applying shows up in the detail", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/applications", map[string]any{
			"userId":        applicant.ID,
			"opportunityId": opp.ID,
			"message":       "Interested",
		}, "")
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		rec = ts.do(t, http.MethodGet, fmt.Sprintf("/api/opportunities/%d", opp.ID), nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		detail := decode[model.OpportunityDetail](t, rec)
		assert.Equal(t, 1, detail.ApplicationCount)
		require.Len(t, detail.Applications, 1)
		assert.Equal(t, applicant.ID, detail.Applications[0].UserID)
	})

	t.Run("second application is rejected", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/applications", map[string]any{
			"userId":        applicant.ID,
			"opportunityId": opp.ID,
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = ts.do(t, http.MethodGet, fmt.Sprintf("/api/opportunities/%d/applications", opp.ID), nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		apps := decode[[]model.ApplicationWithUser](t, rec)
		assert.Len(t, apps, 1)
	})

	t.Run("accepting fills the opportunity", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/applications/accept", map[string]any{
			"opportunityId": opp.ID,
			"userId":        applicant.ID,
		}, "")
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		rec = ts.do(t, http.MethodGet, fmt.Sprintf("/api/opportunities/%d", opp.ID), nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		detail := decode[model.OpportunityDetail](t, rec)
		assert.Equal(t, model.StatusFilled, detail.Status)
		require.NotNil(t, detail.SuccessfulApplicant)
		assert.Equal(t, applicant.ID, detail.SuccessfulApplicant.ID)
	})

	t.Run("second accept is rejected", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/applications/accept", map[string]any{
			"opportunityId": opp.ID,
			"userId":        applicant.ID,
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("applying after the fill is rejected", func(t *testing.T) {
		late := ts.registerUser(t, "late@xero.com", "Late", 0)

		rec := ts.do(t, http.MethodPost, "/api/applications", map[string]any{
			"userId":        late.ID,
			"opportunityId": opp.ID,
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = ts.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d/applications", late.ID), nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		apps := decode[[]model.ApplicationDetail](t, rec)
		assert.Empty(t, apps)
	})
}

func TestClosedOpportunityRejectsApplications(t *testing.T) {
	ts := newTestServer(t)
	creator := ts.registerUser(t, "leon@seek.com.au", "Leon", 1)
	applicant := ts.registerUser(t, "priya@rea-group.com", "Priya", 0)
	opp := ts.createOpportunity(t, creator.ID)

	rec := ts.do(t, http.MethodPut, fmt.Sprintf("/api/opportunities/%d", opp.ID), map[string]any{
		"status": "Closed",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[model.Opportunity](t, rec)
	assert.Equal(t, model.StatusClosed, updated.Status)

	rec = ts.do(t, http.MethodPost, "/api/applications", map[string]any{
		"userId":        applicant.ID,
		"opportunityId": opp.ID,
	}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	t.Run("reopening is rejected", func(t *testing.T) {
		rec := ts.do(t, http.MethodPut, fmt.Sprintf("/api/opportunities/%d", opp.ID), map[string]any{
			"status": "Open",
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestOpportunityListFilters(t *testing.T) {
	ts := newTestServer(t)
	creator := ts.registerUser(t, "leon@seek.com.au", "Leon", 1)
	opp := ts.createOpportunity(t, creator.ID)

	rec := ts.do(t, http.MethodPut, fmt.Sprintf("/api/opportunities/%d", opp.ID), map[string]any{
		"status": "Closed",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	second := ts.createOpportunity(t, creator.ID)

	rec = ts.do(t, http.MethodGet, "/api/opportunities?status=Open", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	open := decode[[]model.OpportunityDetail](t, rec)
	require.Len(t, open, 1)
	assert.Equal(t, second.ID, open[0].ID)

	rec = ts.do(t, http.MethodGet, "/api/opportunities?organisationId=1", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	byOrg := decode[[]model.OpportunityDetail](t, rec)
	assert.Len(t, byOrg, 2)

	rec = ts.do(t, http.MethodGet, "/api/opportunities?organisationId=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, fmt.Sprintf("/api/users/%d/opportunities", creator.ID), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decode[[]model.OpportunityDetail](t, rec)
	assert.Len(t, mine, 2)
}

func TestCreateOpportunityValidation(t *testing.T) {
	ts := newTestServer(t)
	creator := ts.registerUser(t, "leon@seek.com.au", "Leon", 1)
	incomplete := ts.registerUser(t, "new@seek.com.au", "New Starter", 0)

	t.Run("missing fields return 400", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/opportunities", map[string]any{
			"title": "No description",
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown format returns 400", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/opportunities", map[string]any{
			"title":           "Bad format",
			"description":     "x",
			"format":          "Carrier Pigeon",
			"durationLimit":   "1 Hour",
			"organisationId":  1,
			"createdByUserId": creator.ID,
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("creator without an organisation returns 400", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/opportunities", map[string]any{
			"title":           "No profile",
			"description":     "x",
			"format":          "Online",
			"durationLimit":   "1 Hour",
			"organisationId":  1,
			"createdByUserId": incomplete.ID,
		}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown opportunity returns 404", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/opportunities/999", nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCreatorOnlyChecksWithBearerToken(t *testing.T) {
	ts := newTestServer(t)
	creator := ts.registerUser(t, "leon@seek.com.au", "Leon", 1)
	applicant := ts.registerUser(t, "priya@rea-group.com", "Priya", 0)
	opp := ts.createOpportunity(t, creator.ID)

	rec := ts.do(t, http.MethodPost, "/api/applications", map[string]any{
		"userId":        applicant.ID,
		"opportunityId": opp.ID,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	applicantToken, err := ts.tokens.Generate(applicant.ID, applicant.Email)
	require.NoError(t, err)
	creatorToken, err := ts.tokens.Generate(creator.ID, creator.Email)
	require.NoError(t, err)

	t.Run("a non-creator caller cannot accept", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/applications/accept", map[string]any{
			"opportunityId": opp.ID,
			"userId":        applicant.ID,
		}, applicantToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("a non-creator caller cannot update", func(t *testing.T) {
		rec := ts.do(t, http.MethodPut, fmt.Sprintf("/api/opportunities/%d", opp.ID), map[string]any{
			"title": "Hijacked",
		}, applicantToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("the creator can accept", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/applications/accept", map[string]any{
			"opportunityId": opp.ID,
			"userId":        applicant.ID,
		}, creatorToken)
		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})
}

func TestUpdateProfileEndpoint(t *testing.T) {
	ts := newTestServer(t)
	user := ts.registerUser(t, "jo@seek.com.au", "Jo", 0)

	rec := ts.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d", user.ID), map[string]any{
		"organisationId": 1,
		"lookingFor":     "Platform product exposure",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[model.User](t, rec)
	require.NotNil(t, updated.OrganisationID)
	assert.Equal(t, 1, *updated.OrganisationID)

	t.Run("unknown user returns 404", func(t *testing.T) {
		rec := ts.do(t, http.MethodPut, "/api/users/999", map[string]any{
			"lookingFor": "anything",
		}, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown organisation returns 404", func(t *testing.T) {
		rec := ts.do(t, http.MethodPut, fmt.Sprintf("/api/users/%d", user.ID), map[string]any{
			"organisationId": 999,
		}, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
