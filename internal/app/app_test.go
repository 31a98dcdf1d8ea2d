package app

import (
	"bytes"
	"cyberlearn_backend/internal/config"
	"cyberlearn_backend/internal/generation"
	"cyberlearn_backend/internal/service"
	"cyberlearn_backend/internal/store"
	"cyberlearn_backend/internal/util"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-with-enough-characters!!"

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.Store.Type = util.StoreMemory
	cfg.Generation.Provider = generation.ProviderTemplate
	cfg.JWT.Secret = testSecret
	cfg.JWT.ExpireTime = time.Hour
	cfg.Storage.Type = util.StorageLocal
	cfg.Storage.LocalPath = t.TempDir()
	cfg.CORS.AllowedOrigins = []string{"*"}

	return Build(cfg, Deps{
		Store:     store.NewMemoryStore(),
		Generator: generation.NewTemplateGenerator(),
	})
}

func do(t *testing.T, a *App, method, target string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestRootAndTopics(t *testing.T) {
	a := newTestApp(t)

	w := do(t, a, http.MethodGet, "/api/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	root := decode[map[string]string](t, w)
	assert.Equal(t, Version, root["version"])

	w = do(t, a, http.MethodGet, "/api/topics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var topics struct {
		Topics        map[string]string `json:"topics"`
		Levels        map[string]string `json:"levels"`
		QuestionTypes map[string]string `json:"question_types"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &topics))
	assert.Len(t, topics.Topics, 13)
	assert.Contains(t, topics.Levels, "expert")
	assert.Contains(t, topics.QuestionTypes, "fill_blank")
}

func TestHealth(t *testing.T) {
	a := newTestApp(t)

	w := do(t, a, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	h := decode[map[string]any](t, w)
	assert.Equal(t, "healthy", h["status"])
	assert.Equal(t, "mock", h["ollama"])
	assert.Equal(t, "connected", h["database"])
	assert.Equal(t, true, h["mock_mode"])
}

func TestGenerateAssessment_InvalidTopic(t *testing.T) {
	a := newTestApp(t)

	w := do(t, a, http.MethodPost, "/api/generate-assessment?topic=basket-weaving&level=beginner", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[util.ErrorResponse](t, w)
	assert.Contains(t, resp.ValidValues, "network-security")

	w = do(t, a, http.MethodPost, "/api/generate-assessment?topic=cryptography", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp = decode[util.ErrorResponse](t, w)
	assert.Contains(t, resp.ValidValues, "beginner")

	w = do(t, a, http.MethodPost, "/api/generate-assessment?level=beginner", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp = decode[util.ErrorResponse](t, w)
	assert.Contains(t, resp.ValidValues, "network-security")
}

func TestGenerateLearningPlan_MissingFields(t *testing.T) {
	a := newTestApp(t)

	w := do(t, a, http.MethodPost, "/api/generate-learning-plan", map[string]any{"level": "beginner"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode[util.ErrorResponse](t, w)
	assert.Contains(t, resp.ValidValues, "network-security")

	w = do(t, a, http.MethodPost, "/api/generate-learning-plan", map[string]any{"topic": "cryptography"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	resp = decode[util.ErrorResponse](t, w)
	assert.Contains(t, resp.ValidValues, "advanced")
}

func TestAssessmentFlow(t *testing.T) {
	a := newTestApp(t)
	token, err := util.GenerateJWT("learner-7", testSecret, time.Hour)
	require.NoError(t, err)

	w := do(t, a, http.MethodPost, "/api/generate-assessment?topic=network-security&level=beginner&career_goal=student", nil)
	require.Equal(t, http.StatusOK, w.Code)
	gen := decode[service.GeneratedAssessment](t, w)
	require.NotEmpty(t, gen.Questions)
	assert.NotContains(t, w.Body.String(), "correct_answer")

	w = do(t, a, http.MethodGet, "/api/assessments/"+gen.AssessmentID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	sub := map[string]any{
		"assessment_id": gen.AssessmentID,
		"responses": []map[string]any{
			{"question_id": gen.Questions[0].ID, "answer": "not sure"},
		},
	}
	w = do(t, a, http.MethodPost, "/api/submit-assessment", sub, "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[service.SubmissionResult](t, w)
	assert.True(t, res.Success)
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, gen.TotalQuestions, res.TotalQuestions)
	assert.Equal(t, "beginner", res.SkillLevel)

	w = do(t, a, http.MethodGet, "/api/assessment-result/"+res.ResultID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stored := decode[map[string]any](t, w)
	assert.Equal(t, "learner-7", stored["user_id"])

	w = do(t, a, http.MethodGet, "/api/user-progress/learner-7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	progress := decode[service.UserProgressView](t, w)
	assert.Equal(t, 50, progress.TotalPoints)
	assert.Equal(t, 1, progress.AssessmentsCompleted)
	require.Len(t, progress.UnlockedAchievements, 1)
	assert.Equal(t, "first_assessment", progress.UnlockedAchievements[0].ID)

	w = do(t, a, http.MethodGet, "/api/assessment-result/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitAssessment_InvalidToken(t *testing.T) {
	a := newTestApp(t)

	w := do(t, a, http.MethodPost, "/api/submit-assessment", map[string]any{"assessment_id": "x"}, "Authorization", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLearningPlanFlow(t *testing.T) {
	a := newTestApp(t)

	w := do(t, a, http.MethodPost, "/api/generate-learning-plan", map[string]any{
		"topic":          "cloud-security",
		"level":          "intermediate",
		"duration_weeks": 4,
		"focus_areas":    []string{"Hands-on Labs"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	plan := decode[service.LearningPlanResponse](t, w)
	require.NotEmpty(t, plan.PlanID)
	require.NotEmpty(t, plan.TableOfContents.Chapters)

	w = do(t, a, http.MethodGet, "/api/learning-plans?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[service.PlanList](t, w)
	assert.Equal(t, int64(1), list.Total)
	assert.Equal(t, 5, list.Limit)

	chapter := plan.TableOfContents.Chapters[0]
	w = do(t, a, http.MethodGet, "/api/learning-plans/"+plan.PlanID+"/chapter/"+chapter.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, a, http.MethodGet, "/api/learning-plans/"+plan.PlanID+"/chapter/chapter-99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, a, http.MethodPost, "/api/approve-learning-plan/"+plan.PlanID+"?approved=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, a, http.MethodPost, "/api/approve-learning-plan/"+plan.PlanID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, a, http.MethodGet, "/api/learning-plans/"+plan.PlanID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stored := decode[map[string]any](t, w)
	assert.Equal(t, true, stored["approved"])

	w = do(t, a, http.MethodPost, "/api/learning-plans/"+plan.PlanID+"/export", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, a, http.MethodDelete, "/api/learning-plans/"+plan.PlanID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, a, http.MethodGet, "/api/learning-plans/"+plan.PlanID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionAndChat(t *testing.T) {
	a := newTestApp(t)

	w := do(t, a, http.MethodPost, "/api/generate-learning-plan", map[string]any{"topic": "blue-team", "level": "beginner"})
	require.Equal(t, http.StatusOK, w.Code)
	plan := decode[service.LearningPlanResponse](t, w)

	w = do(t, a, http.MethodPost, "/api/start-learning-session?plan_id="+plan.PlanID+"&user_id=learner-9", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sess := decode[service.SessionStarted](t, w)
	require.NotEmpty(t, sess.SessionID)

	w = do(t, a, http.MethodPost, "/api/start-learning-session?plan_id=missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	q := url.Values{"session_id": {sess.SessionID}, "message": {"What does a SOC analyst do?"}}
	w = do(t, a, http.MethodPost, "/api/chat-with-ai?"+q.Encode(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	reply := decode[service.ChatReply](t, w)
	assert.NotEmpty(t, reply.AIResponse)

	w = do(t, a, http.MethodPost, "/api/chat-with-ai", map[string]string{"session_id": sess.SessionID, "message": "And a threat hunter?"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, a, http.MethodGet, "/api/chat-history/"+sess.SessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := decode[service.ChatHistory](t, w)
	assert.Equal(t, int64(4), history.Total)
	require.Len(t, history.Messages, 4)
	assert.Equal(t, "user", history.Messages[0].Sender)

	w = do(t, a, http.MethodPost, "/api/update-progress?session_id="+sess.SessionID+"&progress_percentage=30&time_spent=45", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, a, http.MethodPost, "/api/update-progress?session_id="+sess.SessionID+"&progress_percentage=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, a, http.MethodPost, "/api/update-progress?session_id="+sess.SessionID+"&progress_percentage=140", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, a, http.MethodGet, "/api/user-progress/learner-9", nil)
	require.Equal(t, http.StatusOK, w.Code)
	progress := decode[service.UserProgressView](t, w)
	// first_session 75 + ai_helper 25 + progress_tracker 200
	assert.Equal(t, 300, progress.TotalPoints)
	assert.Equal(t, 45, progress.TotalTimeSpent)
}

func TestAnalyzeProfile(t *testing.T) {
	a := newTestApp(t)

	w := do(t, a, http.MethodPost, "/api/analyze-profile", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, a, http.MethodPost, "/api/analyze-profile", map[string]string{"text": "I am a student learning about firewalls"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChatWebSocket(t *testing.T) {
	a := newTestApp(t)
	srv := httptest.NewServer(a.Router)
	defer srv.Close()

	w := do(t, a, http.MethodPost, "/api/generate-learning-plan", map[string]any{"topic": "red-team", "level": "advanced"})
	require.Equal(t, http.StatusOK, w.Code)
	plan := decode[service.LearningPlanResponse](t, w)
	w = do(t, a, http.MethodPost, "/api/start-learning-session?plan_id="+plan.PlanID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	sess := decode[service.SessionStarted](t, w)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws/chat?session_id=" + sess.SessionID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"message":"How do C2 frameworks work?"}`)))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var reply service.WSReply
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Empty(t, reply.Error)
	assert.NotEmpty(t, reply.AIResponse)
	assert.NotEmpty(t, reply.MessageID)

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/ws/chat?session_id=missing", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	a := newTestApp(t)
	do(t, a, http.MethodGet, "/api/", nil)

	w := do(t, a, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "chat_websocket_connections")
}
