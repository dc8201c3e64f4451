package template

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aescanero/dago-node-render/internal/helpers"
)

func newTestEngine(cacheSize int) *Engine {
	return NewEngine(helpers.Default(helpers.Options{}), cacheSize, zap.NewNop())
}

func TestEngine_Render(t *testing.T) {
	engine := newTestEngine(0)

	data := map[string]interface{}{
		"user": map[string]interface{}{"name": "ada"},
		"sent": "2024-03-05T10:00:00Z",
	}

	out, err := engine.Render(`Hi {{uppercase user.name}}, {{formatDate sent "long"}}`, data)
	require.NoError(t, err)
	assert.Equal(t, "Hi ADA, March 5, 2024", out)
}

func TestEngine_RenderPositionalArguments(t *testing.T) {
	engine := newTestEngine(0)
	data := map[string]interface{}{
		"sent":   "2024-03-05T22:30:00Z",
		"amount": 1234.5,
	}

	tests := []struct {
		source string
		want   string
	}{
		{`{{formatDate sent "long"}}`, "March 5, 2024"},
		{`{{formatDate sent "long" "de-de"}}`, "5. März 2024"},
		{`{{formatDate sent "short" "en-us" "+05:30"}}`, "3/6/2024"},
		{`{{formatDate sent "short" timezone="+05:30"}}`, "3/6/2024"},
		{`{{formatNumber amount "de-DE"}}`, "1.234,5"},
		{`{{trim "hello world" 5}}`, "hello"},
		{`{{split "a,b,c" "," 1}}`, "b"},
		{`{{uppercase (split "a,b,c" "," 2)}}`, "C"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			out, err := engine.Render(tt.source, data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	assert.NoError(t, engine.ValidateTemplate(`{{formatDate sent "long"}}`))
}

func TestEngine_RenderNilData(t *testing.T) {
	engine := newTestEngine(0)

	out, err := engine.Render(`{{setVariable "x" "1"}}[{{x}}]`, nil)
	require.NoError(t, err)
	assert.Equal(t, "[1]", out)
}

func TestEngine_RootVisibleInsideBlocks(t *testing.T) {
	engine := newTestEngine(0)
	data := map[string]interface{}{
		"devices": []interface{}{"onesignal_player_id:P1"},
	}

	out, err := engine.Render(`{{#each devices}}{{isOnesignal this}}{{/each}}{{onesignal_token}}`, data)
	require.NoError(t, err)
	assert.Equal(t, "P1", out)
	assert.Equal(t, "P1", data["onesignal_token"])
}

func TestEngine_ParseError(t *testing.T) {
	engine := newTestEngine(0)

	_, err := engine.Render(`{{#if x}}unterminated`, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to compile template")
	assert.Error(t, engine.ValidateTemplate(`{{#if x}}unterminated`))
	assert.NoError(t, engine.ValidateTemplate(`{{x}}`))
}

func TestEngine_ExecutionError(t *testing.T) {
	engine := newTestEngine(0)

	_, err := engine.Render(`{{formatTime "2024-03-05" "YYYY" rewind="1 day"}}`, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template execution failed")
}

func TestEngine_RegisterHelperOverwritesAndFlushes(t *testing.T) {
	engine := newTestEngine(0)
	const source = `{{uppercase "x"}}`

	out, err := engine.Render(source, nil)
	require.NoError(t, err)
	assert.Equal(t, "X", out)
	assert.Equal(t, 1, engine.CacheLen())

	require.NoError(t, engine.RegisterHelper("uppercase", func(s string) string {
		return "<" + s + ">"
	}))
	assert.Equal(t, 0, engine.CacheLen())

	out, err = engine.Render(`{{{uppercase "x"}}}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "<x>", out)

	assert.ErrorIs(t, engine.RegisterHelper("bad", 1), helpers.ErrInvalidHelper)
	assert.Contains(t, engine.Helpers(), "uppercase")
}

func TestEngine_CacheBound(t *testing.T) {
	engine := newTestEngine(2)

	for _, source := range []string{"a", "b", "c", "d"} {
		_, err := engine.Render(source, nil)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, engine.CacheLen())

	engine.ClearCache()
	assert.Equal(t, 0, engine.CacheLen())
}

func TestEngine_ConcurrentRenders(t *testing.T) {
	engine := newTestEngine(0)
	const source = `{{#switch kind}}{{#case "a"}}A{{/case}}{{switch-default "other"}}{{/switch}}`

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			kind := "a"
			if i%2 == 1 {
				kind = "b"
			}
			out, err := engine.Render(source, map[string]interface{}{"kind": kind})
			if err == nil {
				results[i] = out
			}
		}(i)
	}
	wg.Wait()

	for i, out := range results {
		if i%2 == 0 {
			assert.Equal(t, "A", out)
		} else {
			assert.Equal(t, "other", out)
		}
	}
}
