package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/clydenvis-afk/nutriaitracker/internal/model"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-3-flash-preview"
	// recipe prompts mention at most this many recent meals
	maxRecentMeals = 10
)

var (
	ErrMissingAPIKey = errors.New("missing Gemini API key (set GEMINI_API_KEY)")
	ErrEmptyResponse = errors.New("no response from AI")
)

type Client struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

func (c *Client) AnalyzeFood(ctx context.Context, input string) ([]model.FoodEstimate, error) {
	prompt := fmt.Sprintf(`Analyze the following food/drink input and estimate nutritional values.
The user might mention specific brands (e.g., Jollibee, Starbucks, Monster Energy) or generic foods.
If the quantity is specified (e.g., 100g, 1 cup), calculate based on that.
If not specified, estimate a standard serving size.
Input: %q`, input)

	text, err := c.generate(ctx, "food", prompt, foodSchema)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, ErrEmptyResponse
	}
	var parsed struct {
		FoodItems *[]foodItemWire `json:"foodItems"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("decode food analysis: %w", err)
	}
	if parsed.FoodItems == nil {
		return nil, fmt.Errorf("decode food analysis: missing foodItems")
	}
	out := make([]model.FoodEstimate, 0, len(*parsed.FoodItems))
	for i, item := range *parsed.FoodItems {
		est, err := item.toModel()
		if err != nil {
			return nil, fmt.Errorf("food item %d: %w", i, err)
		}
		out = append(out, est)
	}
	return out, nil
}

func (c *Client) AnalyzeExercise(ctx context.Context, input string, weightKg float64) ([]model.ExerciseEstimate, error) {
	prompt := fmt.Sprintf(`Analyze the following exercise input. The user weighs %gkg.
Estimate the calories burned.
Input: %q`, weightKg, input)

	text, err := c.generate(ctx, "exercise", prompt, exerciseSchema)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, ErrEmptyResponse
	}
	var parsed struct {
		Exercises *[]exerciseWire `json:"exercises"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("decode exercise analysis: %w", err)
	}
	if parsed.Exercises == nil {
		return nil, fmt.Errorf("decode exercise analysis: missing exercises")
	}
	out := make([]model.ExerciseEstimate, 0, len(*parsed.Exercises))
	for i, item := range *parsed.Exercises {
		est, err := item.toModel()
		if err != nil {
			return nil, fmt.Errorf("exercise %d: %w", i, err)
		}
		out = append(out, est)
	}
	return out, nil
}

// SuggestRecipes asks for three recipes. An empty model reply yields no
// recipes rather than an error.
func (c *Client) SuggestRecipes(ctx context.Context, req model.RecipeRequest) ([]model.Recipe, error) {
	var userContext string
	if len(req.RecentMeals) > 0 {
		recent := req.RecentMeals
		if len(recent) > maxRecentMeals {
			recent = recent[:maxRecentMeals]
		}
		userContext = fmt.Sprintf("The user is %d years old. Recent meals: %s. Suggest something different or complementary.", req.Age, strings.Join(recent, ", "))
	} else {
		userContext = fmt.Sprintf("The user is %d years old. Suggest generally healthy balanced meals.", req.Age)
	}
	prompt := fmt.Sprintf(`You are a nutrition assistant. Create 3 distinct, healthy recipe suggestions for a user with a daily target of %g calories.
%s
Each recipe should be practical to cook at home.
Provide estimated nutrition per serving.`, req.TargetCalories, userContext)

	text, err := c.generate(ctx, "recipes", prompt, recipeSchema)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return []model.Recipe{}, nil
	}
	var parsed struct {
		Recipes *[]recipeWire `json:"recipes"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("decode recipe suggestions: %w", err)
	}
	if parsed.Recipes == nil {
		return nil, fmt.Errorf("decode recipe suggestions: missing recipes")
	}
	out := make([]model.Recipe, 0, len(*parsed.Recipes))
	for i, item := range *parsed.Recipes {
		r, err := item.toModel()
		if err != nil {
			return nil, fmt.Errorf("recipe %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
	ResponseSchema   schema `json:"responseSchema"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate returns the concatenated text of the first candidate. An empty
// string means the model answered without text.
func (c *Client) generate(ctx context.Context, kind, prompt string, s schema) (string, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return "", ErrMissingAPIKey
	}
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	modelName := strings.TrimSpace(c.Model)
	if modelName == "" {
		modelName = defaultModel
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   s,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal Gemini payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", baseURL, url.PathEscape(modelName))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create Gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	log := logrus.WithFields(logrus.Fields{"kind": kind, "model": modelName})
	log.Debug("calling Gemini")
	started := time.Now()

	resp, err := httpClient.Do(req)
	if err != nil {
		log.WithError(err).Error("Gemini request failed")
		return "", fmt.Errorf("execute Gemini request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read Gemini response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.WithField("status", resp.StatusCode).Error("Gemini request rejected")
		return "", fmt.Errorf("Gemini request failed with status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode Gemini response: %w", err)
	}
	log.WithField("elapsed", time.Since(started)).Debug("Gemini answered")

	if len(parsed.Candidates) == 0 {
		return "", nil
	}
	var sb strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}
