package admin_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-forms/internal/engine"
	"github.com/KirkDiggler/rpg-forms/internal/entities"
	"github.com/KirkDiggler/rpg-forms/internal/handlers/admin"
	"github.com/KirkDiggler/rpg-forms/internal/metrics"
	"github.com/KirkDiggler/rpg-forms/internal/orchestrators/session"
	"github.com/KirkDiggler/rpg-forms/internal/orchestrators/transformation"
	"github.com/KirkDiggler/rpg-forms/internal/repositories/player"
	"github.com/KirkDiggler/rpg-forms/internal/testutils"
)

type HandlerTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    *player.MemoryRepository
	session *session.Session
	server  *httptest.Server
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = player.NewMemory(nil)

	reg := prometheus.NewRegistry()
	recorder, err := metrics.NewPrometheus(reg)
	s.Require().NoError(err)

	policy := transformation.DefaultPolicy()
	policy.TransformTicks = 0
	s.session, err = session.New(&session.Config{
		Registry:   engine.DefaultRegistry(),
		Repository: s.repo,
		EventBus:   events.NewBus(),
		Metrics:    recorder,
		Policy:     &policy,
	})
	s.Require().NoError(err)

	h, err := admin.NewHandler(&admin.HandlerConfig{
		Registry:   engine.DefaultRegistry(),
		Repository: s.repo,
		Session:    s.session,
		Gatherer:   reg,
	})
	s.Require().NoError(err)
	s.server = httptest.NewServer(h)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *HandlerTestSuite) get(path string) *http.Response {
	resp, err := http.Get(s.server.URL + path)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (s *HandlerTestSuite) post(path, body string) *http.Response {
	resp, err := http.Post(s.server.URL+path, "application/json", strings.NewReader(body))
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (s *HandlerTestSuite) decode(resp *http.Response, v any) {
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(v))
}

func (s *HandlerTestSuite) join(record *entities.PlayerRecord, authoritative bool) {
	_, err := s.repo.Save(s.ctx, player.SaveInput{Record: record})
	s.Require().NoError(err)
	_, err = s.session.Join(s.ctx, session.JoinInput{EntityID: record.EntityID, Authoritative: authoritative})
	s.Require().NoError(err)
}

func (s *HandlerTestSuite) TestNewHandlerValidation() {
	_, err := admin.NewHandler(&admin.HandlerConfig{})
	s.Require().Error(err)
	s.Contains(err.Error(), "Registry")
	s.Contains(err.Error(), "Session")
}

func (s *HandlerTestSuite) TestHealth() {
	resp := s.get("/healthz")
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *HandlerTestSuite) TestListForms() {
	resp := s.get("/v1/forms")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var forms []admin.FormView
	s.decode(resp, &forms)
	s.Len(forms, engine.DefaultRegistry().Len())

	byKey := make(map[entities.FormKey]admin.FormView)
	for _, f := range forms {
		byKey[f.Key] = f
	}
	s.Equal(entities.BranchAscension, byKey[engine.FormUSSJ].Branch)
	s.NotEmpty(byKey[engine.FormUSSJ].Sources)
}

func (s *HandlerTestSuite) TestGetPlayer() {
	s.Run("stored record", func() {
		_, err := s.repo.Save(s.ctx, player.SaveInput{
			Record: testutils.CreateTestPlayerRecordAtStage("player-1", testutils.StageLegendary),
		})
		s.Require().NoError(err)

		resp := s.get("/v1/players/player-1")
		s.Require().Equal(http.StatusOK, resp.StatusCode)

		var record entities.PlayerRecord
		s.decode(resp, &record)
		s.True(record.IsLegendary)
		s.True(record.Achievements[engine.FormLSSJ2])
	})

	s.Run("missing record maps to 404", func() {
		resp := s.get("/v1/players/nobody")
		s.Equal(http.StatusNotFound, resp.StatusCode)

		var body map[string]any
		s.decode(resp, &body)
		s.Equal("NOT_FOUND", body["code"])
	})
}

func (s *HandlerTestSuite) TestListPlayers() {
	for _, id := range []string{"player-b", "player-a"} {
		_, err := s.repo.Save(s.ctx, player.SaveInput{Record: testutils.CreateTestPlayerRecord(id)})
		s.Require().NoError(err)
	}

	resp := s.get("/v1/players")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var records []entities.PlayerRecord
	s.decode(resp, &records)
	s.Require().Len(records, 2)
	s.Equal("player-a", records[0].EntityID)
}

func (s *HandlerTestSuite) TestJoinTransformLeave() {
	_, err := s.repo.Save(s.ctx, player.SaveInput{
		Record: testutils.CreateTestPlayerRecordAtStage("player-1", testutils.StageEscalationRoot),
	})
	s.Require().NoError(err)

	resp := s.post("/v1/players/player-1/join", `{"authoritative":true}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var joined admin.JoinResponse
	s.decode(resp, &joined)
	s.False(joined.Created)
	s.True(joined.Snapshot.Authoritative)

	resp = s.post("/v1/players/player-1/join", `{"authoritative":true}`)
	s.Equal(http.StatusConflict, resp.StatusCode)

	resp = s.post("/v1/players/player-1/transform", `{"form":"ssj1"}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp = s.post("/v1/players/player-1/leave", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var left admin.LeaveResponse
	s.decode(resp, &left)
	s.True(left.Saved)
	s.Require().NotNil(left.Record)
	s.True(left.Record.Achievements[engine.FormSSJ1])

	resp = s.get("/v1/snapshots/player-1")
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *HandlerTestSuite) TestJoinNewPlayerAsCopy() {
	resp := s.post("/v1/players/player-new/join", "")
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var joined admin.JoinResponse
	s.decode(resp, &joined)
	s.True(joined.Created)
	s.False(joined.Snapshot.Authoritative)

	resp = s.post("/v1/players/player-new/leave", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var left admin.LeaveResponse
	s.decode(resp, &left)
	s.False(left.Saved)
	s.Nil(left.Record)

	resp = s.get("/v1/players/player-new")
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *HandlerTestSuite) TestJoinLeaveRejections() {
	resp := s.post("/v1/players/player-1/join", `{`)
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	resp = s.post("/v1/players/nobody/leave", "")
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *HandlerTestSuite) TestTransformAndPowerDown() {
	s.join(testutils.CreateTestPlayerRecordAtStage("player-1", testutils.StageEscalationRoot), false)

	resp := s.post("/v1/players/player-1/transform", `{"form":"ssj1"}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var snap entities.FormSnapshot
	s.decode(resp, &snap)
	s.Require().NotNil(snap.ActiveForm)
	s.Equal(engine.FormSSJ1, *snap.ActiveForm)

	// Snapshots publish at tick boundaries
	s.session.Step(s.ctx)
	resp = s.get("/v1/snapshots/player-1")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.decode(resp, &snap)
	s.Require().NotNil(snap.ActiveForm)

	resp = s.post("/v1/players/player-1/power-down", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	snap = entities.FormSnapshot{}
	s.decode(resp, &snap)
	s.Nil(snap.ActiveForm)
}

func (s *HandlerTestSuite) TestTransformRejections() {
	s.join(testutils.CreateTestPlayerRecord("player-1"), false)

	testCases := []struct {
		name   string
		path   string
		body   string
		status int
		reason string
	}{
		{"missing achievement", "/v1/players/player-1/transform", `{"form":"ssj1"}`, http.StatusPreconditionFailed, engine.ReasonAchievementMissing},
		{"unknown form", "/v1/players/player-1/transform", `{"form":"ssj9"}`, http.StatusNotFound, engine.ReasonUnknownForm},
		{"restricted form", "/v1/players/player-1/transform", `{"form":"spectrum"}`, http.StatusForbidden, engine.ReasonUnauthorized},
		{"empty form", "/v1/players/player-1/transform", `{}`, http.StatusBadRequest, ""},
		{"bad body", "/v1/players/player-1/transform", `{`, http.StatusBadRequest, ""},
		{"player not in session", "/v1/players/nobody/transform", `{"form":"ssj1"}`, http.StatusNotFound, ""},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			resp := s.post(tc.path, tc.body)
			s.Equal(tc.status, resp.StatusCode)

			var body struct {
				Meta map[string]any `json:"meta"`
			}
			s.decode(resp, &body)
			if tc.reason != "" {
				s.Equal(tc.reason, body.Meta["reason"])
			}
		})
	}
}

func (s *HandlerTestSuite) TestSnapshotNotInSession() {
	resp := s.get("/v1/snapshots/nobody")
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp = s.post("/v1/players/nobody/power-down", "")
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *HandlerTestSuite) TestMetrics() {
	s.join(testutils.CreateTestPlayerRecord("player-1"), false)

	resp := s.get("/metrics")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(body), "forms_session_entities 1")
}
