package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"hybrid-guard/ai"
	"hybrid-guard/domain"
	"hybrid-guard/errors"
	"hybrid-guard/mocks"
	"hybrid-guard/runtime"
	"hybrid-guard/schema"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeModels struct {
	current   *runtime.ModelSnapshot
	reloaded  *runtime.ModelSnapshot
	reloadErr error
}

func (f *fakeModels) Current() *runtime.ModelSnapshot {
	return f.current
}

func (f *fakeModels) Reload(context.Context) (*runtime.ModelSnapshot, error) {
	if f.reloadErr != nil {
		return nil, f.reloadErr
	}
	f.current = f.reloaded
	return f.reloaded, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func snapshot(t *testing.T) *runtime.ModelSnapshot {
	v, err := ai.Fit([]string{"free money now", "quarterly meeting agenda"}, 0)
	require.NoError(t, err)
	s, err := runtime.NewSnapshot(v, &ai.LogisticModel{Weights: make([]float64, v.Width()+6)}, schema.FeatureColumns(v.Vocabulary()), uuid.New())
	require.NoError(t, err)
	return s
}

func do(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		expectedKind domain.Kind
		scored       bool
		status       int
		errContains  string
	}{
		{"Default type is email", `{"input_text":"free money now"}`, domain.Text, true, http.StatusOK, ""},
		{"Explicit email", `{"input_text":"free money now","input_type":"email"}`, domain.Text, true, http.StatusOK, ""},
		{"Url", `{"input_text":"http://a-b.com/x@y","input_type":"url"}`, domain.UrlLike, true, http.StatusOK, ""},
		{"Empty input", `{"input_text":"","input_type":"email"}`, "", false, http.StatusBadRequest, errors.ErrEmptyInput.Error()},
		{"Missing input", `{}`, "", false, http.StatusBadRequest, errors.ErrEmptyInput.Error()},
		{"Unknown type", `{"input_text":"x","input_type":"pdf"}`, "", false, http.StatusBadRequest, errors.ErrUnknownInputType.Error()},
		{"Malformed body", `{"input_text":`, "", false, http.StatusBadRequest, "Invalid JSON body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			ctrl := gomock.NewController(t)
			scorer := mocks.NewMockIScorerService(ctrl)
			expected := domain.NewScoreResult(0.9)
			if tt.scored {
				scorer.EXPECT().
					Score(gomock.Any(), gomock.AssignableToTypeOf(domain.Sample{})).
					DoAndReturn(func(_ context.Context, s domain.Sample) domain.ScoreResult {
						req.Equal(tt.expectedKind, s.Kind)
						return expected
					})
			}
			server := NewServer(scorer, &fakeModels{}, logs.GetLoggerFromLevel(slog.LevelDebug))

			rec := do(server.Handler(), http.MethodPost, "/analyze", tt.body)

			req.Equal(tt.status, rec.Code)
			if tt.scored {
				var got domain.ScoreResult
				req.NoError(json.Unmarshal(rec.Body.Bytes(), &got))
				req.Equal(expected, got)
				return
			}
			var got map[string]string
			req.NoError(json.Unmarshal(rec.Body.Bytes(), &got))
			req.Contains(got["error"], tt.errContains)
		})
	}
}

func TestAnalyze_EmptyInputBody(t *testing.T) {
	req := require.New(t)
	server := NewServer(nil, &fakeModels{}, logs.GetLoggerFromLevel(slog.LevelDebug))

	rec := do(server.Handler(), http.MethodPost, "/analyze", `{"input_text":""}`)

	req.Equal(http.StatusBadRequest, rec.Code)
	req.JSONEq(`{"error":"No input provided"}`, rec.Body.String())
}

func TestAnalyze_ScoringErrorIsStill200(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	scorer := mocks.NewMockIScorerService(ctrl)
	scorer.EXPECT().Score(gomock.Any(), gomock.Any()).Return(domain.ErrorResult(errors.ErrModelNotLoaded))
	server := NewServer(scorer, &fakeModels{}, logs.GetLoggerFromLevel(slog.LevelDebug))

	rec := do(server.Handler(), http.MethodPost, "/analyze", `{"input_text":"hello"}`)

	req.Equal(http.StatusOK, rec.Code)
	var got map[string]any
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	req.Equal(0.0, got["security_score"])
	req.Equal("Unknown", got["threat_level"])
	req.Equal(false, got["is_malicious"])
	req.Equal(errors.ErrModelNotLoaded.Error(), got["error"])
}

func TestHealth(t *testing.T) {
	req := require.New(t)
	models := &fakeModels{}
	server := NewServer(nil, models, logs.GetLoggerFromLevel(slog.LevelDebug))

	rec := do(server.Handler(), http.MethodGet, "/health", "")
	req.Equal(http.StatusOK, rec.Code)
	var got HealthResponse
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	req.False(got.ModelLoaded)
	req.Equal("degraded", got.Status)

	models.current = snapshot(t)
	rec = do(server.Handler(), http.MethodGet, "/health", "")
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	req.True(got.ModelLoaded)
	req.Equal("ok", got.Status)
	req.Equal(models.current.Version.String(), got.ModelVersion)
}

func TestReload(t *testing.T) {
	req := require.New(t)
	next := snapshot(t)
	models := &fakeModels{reloaded: next}
	server := NewServer(nil, models, logs.GetLoggerFromLevel(slog.LevelDebug))

	rec := do(server.Handler(), http.MethodPost, "/admin/reload", "")
	req.Equal(http.StatusOK, rec.Code)
	req.Contains(rec.Body.String(), next.Version.String())
	req.Same(next, models.Current())

	models.reloadErr = errors.ErrArtifactNotFound
	rec = do(server.Handler(), http.MethodPost, "/admin/reload", "")
	req.Equal(http.StatusNotFound, rec.Code)

	models.reloadErr = errors.ErrWidthMismatch
	rec = do(server.Handler(), http.MethodPost, "/admin/reload", "")
	req.Equal(http.StatusInternalServerError, rec.Code)
	req.Same(next, models.Current())
}
