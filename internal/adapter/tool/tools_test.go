package tool

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webpilot/internal/application/port/output"
	"webpilot/internal/domain/entity"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)                      {}
func (nopLogger) Info(string, ...any)                       {}
func (nopLogger) Warn(string, ...any)                       {}
func (nopLogger) Error(string, ...any)                      {}
func (n nopLogger) WithField(string, any) output.LoggerPort { return n }
func (nopLogger) Close() error                              { return nil }

type recordingBrowser struct {
	calls      []string
	currentURL string
	failWith   error
}

func (r *recordingBrowser) record(call string) error {
	r.calls = append(r.calls, call)
	return r.failWith
}

func (r *recordingBrowser) Navigate(ctx context.Context, url string) error {
	r.currentURL = url
	return r.record("navigate:" + url)
}
func (r *recordingBrowser) Click(ctx context.Context, sel string) error {
	return r.record("click:" + sel)
}
func (r *recordingBrowser) Fill(ctx context.Context, sel, text string) error {
	return r.record(fmt.Sprintf("fill:%s=%s", sel, text))
}
func (r *recordingBrowser) PressEnter(ctx context.Context) error {
	return r.record("press_enter")
}
func (r *recordingBrowser) Scroll(ctx context.Context, dir string, amt int) error {
	return r.record("scroll:" + dir)
}
func (r *recordingBrowser) GetPageText(ctx context.Context) (string, error) {
	return "visible page text", r.record("text")
}
func (r *recordingBrowser) GetUIElements(ctx context.Context) ([]entity.UIElement, error) {
	return []entity.UIElement{
		{ID: "ui-0000", Type: "button", Text: "Submit", Selector: "//button[1]"},
	}, r.record("elements")
}
func (r *recordingBrowser) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	return &entity.Screenshot{Data: []byte{0xFF, 0xD8}, Format: "jpeg", Width: 800, Height: 600}, r.record("screenshot")
}
func (r *recordingBrowser) CurrentURL() string { return r.currentURL }
func (r *recordingBrowser) Close()             {}

func TestNavigateTool(t *testing.T) {
	browser := &recordingBrowser{}
	tool := NewNavigateTool(browser, nopLogger{})

	assert.Equal(t, "navigate", tool.Name())

	out, err := tool.Execute(context.Background(), `{"url":"https://example.com"}`)
	require.NoError(t, err)
	assert.Equal(t, "Navigated to https://example.com", out)
	assert.Equal(t, []string{"navigate:https://example.com"}, browser.calls)
}

func TestNavigateTool_BadArguments(t *testing.T) {
	tool := NewNavigateTool(&recordingBrowser{}, nopLogger{})

	_, err := tool.Execute(context.Background(), "not json")
	assert.Error(t, err)
}

func TestClickTool(t *testing.T) {
	browser := &recordingBrowser{}
	tool := NewClickTool(browser, nopLogger{})

	out, err := tool.Execute(context.Background(), `{"selector":"#submit"}`)
	require.NoError(t, err)
	assert.Equal(t, "Clicked #submit", out)
	assert.Equal(t, []string{"click:#submit"}, browser.calls)
}

func TestFillTool(t *testing.T) {
	browser := &recordingBrowser{}
	tool := NewFillTool(browser, nopLogger{})

	out, err := tool.Execute(context.Background(), `{"selector":"#name","text":"John Doe"}`)
	require.NoError(t, err)
	assert.Equal(t, "Filled #name", out)
	assert.Equal(t, []string{"fill:#name=John Doe"}, browser.calls)
}

func TestScrollTool(t *testing.T) {
	browser := &recordingBrowser{}
	tool := NewScrollTool(browser, nopLogger{})

	out, err := tool.Execute(context.Background(), `{"direction":"down"}`)
	require.NoError(t, err)
	assert.Equal(t, "Scrolled down", out)
	assert.Equal(t, []string{"scroll:down"}, browser.calls)
}

func TestPressEnterTool(t *testing.T) {
	browser := &recordingBrowser{}
	tool := NewPressEnterTool(browser, nopLogger{})

	out, err := tool.Execute(context.Background(), `{}`)
	require.NoError(t, err)
	assert.Equal(t, "Enter pressed", out)
}

func TestScreenshotTool_ReturnsDataURI(t *testing.T) {
	browser := &recordingBrowser{}
	tool := NewScreenshotTool(browser, nopLogger{})

	out, err := tool.Execute(context.Background(), `{}`)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "data:image/jpeg;base64,"))

	encoded := strings.TrimPrefix(out, "data:image/jpeg;base64,")
	data, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8}, data)
}

func TestExtractTextTool(t *testing.T) {
	tool := NewExtractTextTool(&recordingBrowser{}, nopLogger{})

	out, err := tool.Execute(context.Background(), `{}`)
	require.NoError(t, err)
	assert.Equal(t, "visible page text", out)
}

func TestUISummaryTool_ReturnsJSON(t *testing.T) {
	tool := NewUISummaryTool(&recordingBrowser{}, nopLogger{})

	out, err := tool.Execute(context.Background(), `{}`)
	require.NoError(t, err)
	assert.Contains(t, out, `"ui-0000"`)
	assert.Contains(t, out, `"Submit"`)
	assert.Contains(t, out, `"//button[1]"`)
}

func TestToolErrorsPropagate(t *testing.T) {
	browser := &recordingBrowser{failWith: fmt.Errorf("element not found")}

	tools := []output.ToolPort{
		NewClickTool(browser, nopLogger{}),
		NewFillTool(browser, nopLogger{}),
		NewScrollTool(browser, nopLogger{}),
		NewPressEnterTool(browser, nopLogger{}),
		NewExtractTextTool(browser, nopLogger{}),
		NewUISummaryTool(browser, nopLogger{}),
	}

	for _, tool := range tools {
		_, err := tool.Execute(context.Background(), `{"selector":"#x","text":"y","direction":"down"}`)
		assert.Error(t, err, tool.Name())
	}
}

func TestToolParameterSchemas(t *testing.T) {
	browser := &recordingBrowser{}

	tools := []output.ToolPort{
		NewNavigateTool(browser, nopLogger{}),
		NewClickTool(browser, nopLogger{}),
		NewFillTool(browser, nopLogger{}),
		NewScrollTool(browser, nopLogger{}),
		NewPressEnterTool(browser, nopLogger{}),
		NewScreenshotTool(browser, nopLogger{}),
		NewExtractTextTool(browser, nopLogger{}),
		NewUISummaryTool(browser, nopLogger{}),
	}

	seen := make(map[string]bool)
	for _, tool := range tools {
		assert.NotEmpty(t, tool.Name())
		assert.NotEmpty(t, tool.Description())
		assert.False(t, seen[tool.Name()], "duplicate tool name %s", tool.Name())
		seen[tool.Name()] = true

		params := tool.Parameters()
		assert.Equal(t, "object", params["type"], tool.Name())
		assert.Contains(t, params, "properties", tool.Name())
	}
}
