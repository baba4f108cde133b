package nutri

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliEnv struct {
	dir     string
	db      string
	config  string
	mu      sync.Mutex
	prompts []string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	env := &cliEnv{
		dir:    dir,
		db:     filepath.Join(dir, "nutri.db"),
		config: filepath.Join(dir, "config.toml"),
	}
	ts := httptest.NewServer(http.HandlerFunc(env.serveGemini))
	t.Cleanup(ts.Close)

	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("API_KEY", "")
	t.Setenv("NUTRI_AI_BASE_URL", ts.URL)

	prev := confirmPrompt
	t.Cleanup(func() { confirmPrompt = prev })
	confirmPrompt = func(string) (bool, error) {
		t.Errorf("unexpected confirmation prompt")
		return false, nil
	}
	return env
}

// serveGemini answers like the generateContent endpoint, choosing the payload
// from the prompt.
func (e *cliEnv) serveGemini(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	prompt := ""
	if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
		prompt = req.Contents[0].Parts[0].Text
	}
	e.mu.Lock()
	e.prompts = append(e.prompts, prompt)
	e.mu.Unlock()

	var text string
	switch {
	case strings.Contains(prompt, "food/drink"):
		text = `{"foodItems":[
{"name":"Rice","description":"1 cup","calories":205,"protein":4.3,"carbs":44.5,"fat":0.4},
{"name":"Chicken Adobo","description":"1 serving","calories":400,"protein":32,"carbs":6,"fat":27}]}`
	case strings.Contains(prompt, "exercise input"):
		text = `{"exercises":[{"name":"Running","durationMinutes":30,"caloriesBurned":320}]}`
	case strings.Contains(prompt, "nutrition assistant"):
		text = `{"recipes":[
{"name":"Chicken Tinola","description":"Ginger soup","ingredients":["chicken","ginger","papaya"],"calories":380,"protein":35,"carbs":14,"fat":18},
{"name":"Tofu Sisig","description":"Crispy tofu","ingredients":["tofu","onion"],"calories":420,"protein":22,"carbs":18,"fat":28},
{"name":"Fish Sinigang","description":"Sour soup","ingredients":["milkfish","tamarind"],"calories":310,"protein":30,"carbs":12,"fat":14}]}`
	}
	body, _ := json.Marshal(map[string]any{
		"candidates": []any{map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}}},
	})
	_, _ = w.Write(body)
}

func (e *cliEnv) lastPrompt() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.prompts) == 0 {
		return ""
	}
	return e.prompts[len(e.prompts)-1]
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes one CLI invocation against the env's database and config.
func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return e.runWithDB(t, e.db, args...)
}

func (e *cliEnv) runWithDB(t *testing.T, dbFile string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(append([]string{"--db", dbFile, "--config", e.config}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func (e *cliEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, "nutri %s", strings.Join(args, " "))
	return out
}

func TestRootHelp(t *testing.T) {
	resetFlags(rootCmd)
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--help"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "nutri")
}

func TestInitCommandIdempotent(t *testing.T) {
	env := newCLIEnv(t)
	for i := 0; i < 2; i++ {
		out := env.mustRun(t, "init")
		assert.Contains(t, out, "Initialized nutri database at "+env.db)
	}
}

func TestVersionCommand(t *testing.T) {
	env := newCLIEnv(t)
	out := env.mustRun(t, "version")
	assert.True(t, strings.HasPrefix(out, "nutri dev"))
}
