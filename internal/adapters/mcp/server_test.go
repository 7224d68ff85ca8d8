package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aretw0/screenwalk"
	"github.com/aretw0/screenwalk/internal/wait"
	"github.com/aretw0/screenwalk/pkg/adapters/sim"
	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *screenwalk.Harness) {
	t.Helper()
	ctx := context.Background()
	app := sim.New()
	require.NoError(t, app.Launch(ctx, domain.DefaultLaunchArguments()))

	h := screenwalk.New(app, screenwalk.WithWaitOptions(wait.Options{Timeout: 200 * time.Millisecond, Interval: 5 * time.Millisecond}))
	require.NoError(t, h.Start(ctx))
	return NewServer(h, nil), h
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (*mcp.CallToolResult, string) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return res, text.Text
}

func TestListScreens(t *testing.T) {
	s, _ := newTestServer(t)
	res, out := call(t, s.handleListScreens, nil)
	require.False(t, res.IsError)

	var resp screensResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "NewTabScreen", resp.Launch)
	assert.Contains(t, resp.Screens, "HomeSettings")
	assert.Contains(t, resp.Actions, "SelectTopSitesRows")
}

func TestGotoAndCurrentScreen(t *testing.T) {
	s, h := newTestServer(t)

	res, out := call(t, s.handleGoto, map[string]any{"screen": "HomeSettings"})
	require.False(t, res.IsError, out)
	assert.Equal(t, domain.HomeSettings, h.Current())

	_, out = call(t, s.handleCurrentScreen, nil)
	var pos positionResponse
	require.NoError(t, json.Unmarshal([]byte(out), &pos))
	assert.Equal(t, "HomeSettings", pos.Screen)
	assert.Equal(t, []string{"NewTabScreen", "BrowserTabMenu", "SettingsScreen", "HomeSettings"}, pos.Stack)
}

func TestGoto_UnknownScreen(t *testing.T) {
	s, _ := newTestServer(t)
	res, out := call(t, s.handleGoto, map[string]any{"screen": "Nowhere"})
	assert.True(t, res.IsError)
	assert.Contains(t, out, "Nowhere")

	res, _ = call(t, s.handleGoto, nil)
	assert.True(t, res.IsError)
}

func TestPerformAction(t *testing.T) {
	s, h := newTestServer(t)

	res, out := call(t, s.handlePerformAction, map[string]any{"action": "SelectTopSitesRows", "rows": 3})
	require.False(t, res.IsError, out)
	assert.Equal(t, domain.HomeSettings, h.Current())

	res, out = call(t, s.handlePerformAction, map[string]any{"action": "SelectTopSitesRows", "rows": 9})
	assert.True(t, res.IsError)
	assert.Contains(t, out, "top sites rows 9")
}

func TestOpenURL(t *testing.T) {
	s, h := newTestServer(t)

	res, out := call(t, s.handleOpenURL, map[string]any{"url": "www.example.com"})
	require.False(t, res.IsError, out)
	assert.Equal(t, domain.BrowserTab, h.Current())
}
