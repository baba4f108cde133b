package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clydenvis-afk/nutriaitracker/internal/model"
)

func candidateBody(t *testing.T, text string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		},
	})
	require.NoError(t, err)
	return body
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return &Client{APIKey: "demo", BaseURL: ts.URL, Model: "test-model", HTTPClient: ts.Client()}
}

func TestAnalyzeFoodParsesCandidate(t *testing.T) {
	t.Parallel()

	var gotPath, gotKey string
	var gotReq generateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotReq)
		_, _ = w.Write(candidateBody(t, `{"foodItems":[{"name":"Chickenjoy","description":"1 piece","calories":320,"protein":20,"carbs":11,"fat":21}]}`))
	})

	items, err := c.AnalyzeFood(context.Background(), "1 chickenjoy")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, model.FoodEstimate{Name: "Chickenjoy", Description: "1 piece", Calories: 320, Protein: 20, Carbs: 11, Fat: 21}, items[0])

	assert.Equal(t, "/v1beta/models/test-model:generateContent", gotPath)
	assert.Equal(t, "demo", gotKey)
	assert.Equal(t, "application/json", gotReq.GenerationConfig.ResponseMimeType)
	assert.Equal(t, []string{"foodItems"}, gotReq.GenerationConfig.ResponseSchema.Required)
	require.Len(t, gotReq.Contents, 1)
	assert.Contains(t, gotReq.Contents[0].Parts[0].Text, `"1 chickenjoy"`)
}

func TestAnalyzeFoodRejectsMissingFields(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(candidateBody(t, `{"foodItems":[{"name":"Rice","calories":200}]}`))
	})

	_, err := c.AnalyzeFood(context.Background(), "rice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carbs, description, fat, protein")
}

func TestAnalyzeFoodErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    func(t *testing.T) []byte
		wantErr error
	}{
		{name: "non-2xx", status: http.StatusTooManyRequests, body: func(*testing.T) []byte { return []byte(`{}`) }},
		{name: "empty text", status: http.StatusOK, body: func(t *testing.T) []byte { return candidateBody(t, "") }, wantErr: ErrEmptyResponse},
		{name: "no candidates", status: http.StatusOK, body: func(*testing.T) []byte { return []byte(`{"candidates":[]}`) }, wantErr: ErrEmptyResponse},
		{name: "malformed json", status: http.StatusOK, body: func(t *testing.T) []byte { return candidateBody(t, `{"foodItems":[`) }},
		{name: "missing array", status: http.StatusOK, body: func(t *testing.T) []byte { return candidateBody(t, `{}`) }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write(tt.body(t))
			})
			items, err := c.AnalyzeFood(context.Background(), "anything")
			require.Error(t, err)
			assert.Nil(t, items)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
		})
	}
}

func TestMissingAPIKeySkipsNetwork(t *testing.T) {
	t.Parallel()

	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { called = true })
	c.APIKey = " "

	_, err := c.AnalyzeExercise(context.Background(), "run", 70)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	_, err = c.SuggestRecipes(context.Background(), model.RecipeRequest{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.False(t, called)
}

func TestAnalyzeExerciseIncludesWeight(t *testing.T) {
	t.Parallel()

	var prompt string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		prompt = req.Contents[0].Parts[0].Text
		_, _ = w.Write(candidateBody(t, `{"exercises":[{"name":"Running","durationMinutes":30,"caloriesBurned":310}]}`))
	})

	items, err := c.AnalyzeExercise(context.Background(), "ran 30 minutes", 72.5)
	require.NoError(t, err)
	assert.Equal(t, []model.ExerciseEstimate{{Name: "Running", DurationMinutes: 30, CaloriesBurned: 310}}, items)
	assert.Contains(t, prompt, "72.5kg")
}

func TestSuggestRecipes(t *testing.T) {
	t.Parallel()

	var prompt string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		prompt = req.Contents[0].Parts[0].Text
		_, _ = w.Write(candidateBody(t, `{"recipes":[{"name":"Tinola","description":"Ginger chicken soup","ingredients":["chicken","ginger"],"calories":350,"protein":30,"carbs":12,"fat":18}]}`))
	})

	recent := []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7", "m8", "m9", "m10", "m11"}
	recipes, err := c.SuggestRecipes(context.Background(), model.RecipeRequest{Age: 30, TargetCalories: 2000, RecentMeals: recent})
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, []string{"chicken", "ginger"}, recipes[0].Ingredients)
	assert.Contains(t, prompt, "m10.")
	assert.NotContains(t, prompt, "m11")
	assert.Contains(t, prompt, "daily target of 2000 calories")
}

func TestSuggestRecipesEmptyTextYieldsNoRecipes(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(candidateBody(t, ""))
	})

	recipes, err := c.SuggestRecipes(context.Background(), model.RecipeRequest{Age: 25, TargetCalories: 1800})
	require.NoError(t, err)
	assert.Empty(t, recipes)
}
