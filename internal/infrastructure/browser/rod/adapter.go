// Package rod drives a Chromium instance through go-rod and exposes it
// behind the BrowserPort contract.
package rod

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"webpilot/internal/application/port/output"
	"webpilot/internal/domain/entity"
)

const (
	defaultSlowMotion     = 500 * time.Millisecond
	defaultTimeout        = 10 * time.Second
	defaultViewportWidth  = 1280
	defaultViewportHeight = 1024
	screenshotMaxWidth    = 1024
	maxUIElements         = 500
)

var (
	ErrInvalidURL             = errors.New("url must use http or https scheme")
	ErrInvalidSelector        = errors.New("selector must not be empty")
	ErrInvalidScrollDirection = errors.New("scroll direction must be up, down, top or bottom")
	ErrBrowserNotConnected    = errors.New("browser is closed")
)

var _ output.BrowserPort = (*BrowserAdapter)(nil)

type BrowserAdapter struct {
	browser      *rod.Browser
	launcher     *launcher.Launcher
	page         *rod.Page
	timeout      time.Duration
	storageState string
	closed       bool
}

type BrowserConfig struct {
	Headless       bool
	ViewportWidth  int
	ViewportHeight int
	UserDataDir    string
	// StorageState is an opaque cookie file: loaded before the first
	// navigation if present, written back on Close.
	StorageState            string
	SlowMotion              time.Duration
	Timeout                 time.Duration
	NoSandbox               bool
	DevTools                bool
	DisableSecurityFeatures bool
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:       false,
		ViewportWidth:  defaultViewportWidth,
		ViewportHeight: defaultViewportHeight,
		SlowMotion:     defaultSlowMotion,
		Timeout:        defaultTimeout,
	}
}

func NewBrowserAdapter(ctx context.Context, cfg BrowserConfig) (*BrowserAdapter, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.ViewportWidth <= 0 {
		cfg.ViewportWidth = defaultViewportWidth
	}
	if cfg.ViewportHeight <= 0 {
		cfg.ViewportHeight = defaultViewportHeight
	}

	l := launcher.New().
		Headless(cfg.Headless).
		Devtools(cfg.DevTools).
		Set("window-size", fmt.Sprintf("%d,%d", cfg.ViewportWidth, cfg.ViewportHeight)).
		Delete("use-mock-keychain")

	if cfg.NoSandbox {
		l = l.NoSandbox(true).Set("disable-setuid-sandbox")
	}
	if cfg.DisableSecurityFeatures {
		l = l.Set("disable-web-security").Set("allow-running-insecure-content")
	}
	if cfg.UserDataDir != "" {
		l = l.UserDataDir(cfg.UserDataDir)
	}

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().
		ControlURL(url).
		SlowMotion(cfg.SlowMotion)

	if err := browser.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	if cfg.StorageState != "" {
		if err := loadStorageState(browser, cfg.StorageState); err != nil {
			browser.Close()
			l.Kill()
			l.Cleanup()
			return nil, fmt.Errorf("failed to load storage state: %w", err)
		}
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		browser.Close()
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             cfg.ViewportWidth,
		Height:            cfg.ViewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		browser.Close()
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("failed to set viewport: %w", err)
	}

	return &BrowserAdapter{
		browser:      browser,
		launcher:     l,
		page:         page,
		timeout:      cfg.Timeout,
		storageState: cfg.StorageState,
	}, nil
}

func (b *BrowserAdapter) IsReady() bool {
	return !b.closed && b.browser != nil && b.page != nil
}

func (b *BrowserAdapter) GetTimeout() time.Duration {
	return b.timeout
}

func (b *BrowserAdapter) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		b.timeout = timeout
	}
}

func (b *BrowserAdapter) Navigate(ctx context.Context, url string) error {
	if b.closed {
		return ErrBrowserNotConnected
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%w: %q", ErrInvalidURL, url)
	}

	if err := b.page.Navigate(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if err := b.page.WaitLoad(); err != nil {
		return fmt.Errorf("page load failed: %w", err)
	}
	b.page.WaitIdle(5 * time.Second)
	return nil
}

func (b *BrowserAdapter) Click(ctx context.Context, selector string) error {
	if b.closed {
		return ErrBrowserNotConnected
	}
	if strings.TrimSpace(selector) == "" {
		return ErrInvalidSelector
	}

	var el *rod.Element
	var err error

	if isXPathSelector(selector) {
		el, err = b.page.Timeout(b.timeout).ElementX(strings.TrimPrefix(selector, "xpath="))
	} else {
		el, err = b.page.Timeout(b.timeout).Element(selector)
	}
	if err != nil {
		return fmt.Errorf("element not found: %s: %w", selector, err)
	}

	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}

	b.page.WaitIdle(2 * time.Second)
	return nil
}

func (b *BrowserAdapter) Fill(ctx context.Context, selector, text string) error {
	if b.closed {
		return ErrBrowserNotConnected
	}
	if strings.TrimSpace(selector) == "" {
		return ErrInvalidSelector
	}

	el, err := b.page.Timeout(b.timeout).Element(selector)
	if err != nil {
		return fmt.Errorf("field not found: %s: %w", selector, err)
	}

	if err := el.SelectAllText(); err == nil {
		_ = el.Input("")
	}

	if err := el.Input(text); err != nil {
		return fmt.Errorf("input failed: %w", err)
	}

	return nil
}

func (b *BrowserAdapter) PressEnter(ctx context.Context) error {
	if b.closed {
		return ErrBrowserNotConnected
	}

	el, err := b.page.Timeout(b.timeout).Element("body")
	if err != nil {
		return fmt.Errorf("body not found: %w", err)
	}
	if err := el.Input("\r"); err != nil {
		return fmt.Errorf("failed to press Enter: %w", err)
	}
	b.page.WaitIdle(1 * time.Second)
	return nil
}

func (b *BrowserAdapter) Scroll(ctx context.Context, direction string, amount int) error {
	if b.closed {
		return ErrBrowserNotConnected
	}

	direction = strings.ToLower(strings.TrimSpace(direction))

	var err error
	switch direction {
	case "down":
		_, err = b.page.Eval(`() => window.scrollBy(0, window.innerHeight * 2)`)
	case "up":
		_, err = b.page.Eval(`() => window.scrollBy(0, -window.innerHeight * 2)`)
	case "top":
		_, err = b.page.Eval(`() => window.scrollTo(0, 0)`)
	case "bottom":
		_, err = b.page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidScrollDirection, direction)
	}
	if err != nil {
		return fmt.Errorf("scroll failed: %w", err)
	}

	b.page.WaitIdle(800 * time.Millisecond)
	return nil
}

func (b *BrowserAdapter) GetPageText(ctx context.Context) (string, error) {
	if b.closed {
		return "", ErrBrowserNotConnected
	}

	body, err := b.page.Timeout(b.timeout).Element("body")
	if err != nil {
		return "", fmt.Errorf("body not found: %w", err)
	}

	text, err := body.Text()
	if err != nil {
		return "", fmt.Errorf("failed to get text: %w", err)
	}

	return text, nil
}

func (b *BrowserAdapter) GetUIElements(ctx context.Context) ([]entity.UIElement, error) {
	if b.closed {
		return nil, ErrBrowserNotConnected
	}

	result := make([]entity.UIElement, 0)
	seen := make(map[string]bool)
	counter := 0

	add := func(el *rod.Element, typ string) {
		if el == nil || counter >= maxUIElements {
			return
		}

		visible, err := el.Visible()
		if err != nil || !visible {
			return
		}

		selectorObj, err := el.ElementX("@")
		if err != nil {
			return
		}
		selector := selectorObj.String()
		if seen[selector] {
			return
		}
		seen[selector] = true

		text, _ := el.Text()
		text = strings.TrimSpace(text)
		aria, _ := el.Attribute("aria-label")
		role, _ := el.Attribute("role")

		result = append(result, entity.UIElement{
			ID:         fmt.Sprintf("ui-%04d", counter),
			Type:       typ,
			Text:       text,
			AriaLabel:  pointerToString(aria),
			Role:       pointerToString(role),
			Visible:    true,
			InViewport: true,
			Selector:   selector,
		})
		counter++
	}

	if elements, err := b.page.Elements("button, [role='button'], [data-tooltip], [aria-label]:not([aria-label=''])"); err == nil {
		for _, el := range elements {
			add(el, "button")
		}
	}

	if elements, err := b.page.Elements("input, textarea"); err == nil {
		for _, el := range elements {
			add(el, "input")
		}
	}

	if elements, err := b.page.Elements("a"); err == nil {
		for _, el := range elements {
			add(el, "link")
		}
	}

	return result, nil
}

func (b *BrowserAdapter) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	if b.closed {
		return nil, ErrBrowserNotConnected
	}

	imgBytes, err := b.page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(80),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	if img.Bounds().Dx() > screenshotMaxWidth {
		img = imaging.Resize(img, screenshotMaxWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 75}); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}

	return &entity.Screenshot{
		Data:   buf.Bytes(),
		Format: "jpeg",
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

func (b *BrowserAdapter) CurrentURL() string {
	if b.closed {
		return ""
	}
	info, err := b.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (b *BrowserAdapter) Close() {
	if b.closed {
		return
	}
	b.closed = true

	if b.storageState != "" && b.browser != nil {
		_ = saveStorageState(b.browser, b.storageState)
	}
	if b.browser != nil {
		_ = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
}

func isXPathSelector(selector string) bool {
	return strings.HasPrefix(selector, "/") ||
		strings.HasPrefix(selector, "(") ||
		strings.HasPrefix(selector, "xpath=")
}

func pointerToString(s *string) string {
	if s != nil {
		return *s
	}
	return ""
}
