package wda

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/screenwalk/internal/logging"
	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/aretw0/screenwalk/pkg/ports"
)

// DefaultBundleID is the application launched when none is configured.
const DefaultBundleID = "org.mozilla.ios.Fennec"

// Driver talks to a WebDriverAgent server running on the device.
type Driver struct {
	baseURL  string
	bundleID string
	client   *http.Client
	logger   *slog.Logger

	mu        sync.Mutex
	sessionID string
}

// Option configures the Driver.
type Option func(*Driver)

// WithBundleID sets the application under test.
func WithBundleID(id string) Option {
	return func(d *Driver) {
		d.bundleID = id
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Driver) {
		d.client = c
	}
}

// WithLogger configures a logger for requests.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates a driver for the WebDriverAgent listening at baseURL.
func New(baseURL string, opts ...Option) *Driver {
	d := &Driver{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		bundleID: DefaultBundleID,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var _ ports.Driver = (*Driver)(nil)

type capabilities struct {
	BundleID         string   `json:"bundleId"`
	Arguments        []string `json:"arguments,omitempty"`
	ShouldWaitForApp bool     `json:"shouldWaitForQuiescence"`
}

type sessionRequest struct {
	Capabilities struct {
		AlwaysMatch capabilities `json:"alwaysMatch"`
	} `json:"capabilities"`
}

// Launch opens a new session, which relaunches the app with args.
func (d *Driver) Launch(ctx context.Context, args []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.sessionID != "" {
		if err := d.call(ctx, http.MethodDelete, "/session/"+d.sessionID, nil, nil); err != nil {
			d.logger.Warn("failed to close previous session", "session", d.sessionID, "err", err)
		}
		d.sessionID = ""
	}

	var req sessionRequest
	req.Capabilities.AlwaysMatch = capabilities{BundleID: d.bundleID, Arguments: args, ShouldWaitForApp: true}

	var reply struct {
		SessionID string `json:"sessionId"`
	}
	if err := d.call(ctx, http.MethodPost, "/session", req, &reply); err != nil {
		return fmt.Errorf("failed to launch %s: %w", d.bundleID, err)
	}
	if reply.SessionID == "" {
		return fmt.Errorf("failed to launch %s: no session id in reply", d.bundleID)
	}
	d.sessionID = reply.SessionID
	d.logger.Debug("wda session opened", "session", d.sessionID, "args", args)
	return nil
}

// Terminate stops the app and closes the session.
func (d *Driver) Terminate(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sessionID == "" {
		return nil
	}

	sid := d.sessionID
	d.sessionID = ""
	err := d.call(ctx, http.MethodPost, "/session/"+sid+"/wda/apps/terminate", map[string]string{"bundleId": d.bundleID}, nil)
	return errors.Join(err, d.call(ctx, http.MethodDelete, "/session/"+sid, nil, nil))
}

func (d *Driver) session() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sessionID == "" {
		return "", domain.ErrNotLaunched
	}
	return "/session/" + d.sessionID, nil
}

type elementRef struct {
	ID     string `json:"ELEMENT"`
	W3CRef string `json:"element-6066-11e4-a52e-4f735466cecf"`
}

func (r elementRef) id() string {
	if r.W3CRef != "" {
		return r.W3CRef
	}
	return r.ID
}

func (d *Driver) find(ctx context.Context, sel domain.Selector) ([]string, error) {
	s, err := d.session()
	if err != nil {
		return nil, err
	}
	var refs []elementRef
	query := map[string]string{"using": "class chain", "value": ClassChain(sel)}
	if err := d.call(ctx, http.MethodPost, s+"/elements", query, &refs); err != nil {
		return nil, err
	}
	ids := make([]string, len(refs))
	for i, r := range refs {
		ids[i] = r.id()
	}
	return ids, nil
}

func (d *Driver) first(ctx context.Context, sel domain.Selector) (string, error) {
	ids, err := d.find(ctx, sel)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("%w: %s", domain.ErrElementNotFound, sel)
	}
	return ids[0], nil
}

func (d *Driver) attribute(ctx context.Context, s, id, name string) (string, error) {
	var v any
	if err := d.call(ctx, http.MethodGet, s+"/element/"+id+"/attribute/"+name, nil, &v); err != nil {
		return "", err
	}
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool:
		if val {
			return "true", nil
		}
		return "false", nil
	default:
		return fmt.Sprint(val), nil
	}
}

func (d *Driver) Query(ctx context.Context, sel domain.Selector) ([]domain.Element, error) {
	ids, err := d.find(ctx, sel)
	if err != nil {
		return nil, err
	}
	s, err := d.session()
	if err != nil {
		return nil, err
	}

	out := make([]domain.Element, 0, len(ids))
elements:
	for _, id := range ids {
		attrs := map[string]string{}
		for _, name := range []string{"type", "name", "label", "value", "enabled"} {
			v, err := d.attribute(ctx, s, id, name)
			if gone(err) {
				d.logger.Debug("element went away while reading it", "selector", sel, "element", id, "err", err)
				continue elements
			}
			if err != nil {
				return nil, fmt.Errorf("failed to read %s of %s: %w", name, sel, err)
			}
			attrs[name] = v
		}
		out = append(out, domain.Element{
			Kind:       kindOf(attrs["type"]),
			Identifier: attrs["name"],
			Label:      attrs["label"],
			Value:      attrs["value"],
			Enabled:    attrs["enabled"] == "true" || attrs["enabled"] == "1",
		})
	}
	return out, nil
}

func (d *Driver) Tap(ctx context.Context, sel domain.Selector) error {
	id, err := d.first(ctx, sel)
	if err != nil {
		return err
	}
	s, err := d.session()
	if err != nil {
		return err
	}
	return d.call(ctx, http.MethodPost, s+"/element/"+id+"/click", struct{}{}, nil)
}

func (d *Driver) TypeText(ctx context.Context, sel domain.Selector, text string) error {
	id, err := d.first(ctx, sel)
	if err != nil {
		return err
	}
	s, err := d.session()
	if err != nil {
		return err
	}
	return d.call(ctx, http.MethodPost, s+"/element/"+id+"/value", map[string]any{
		"text":  text,
		"value": strings.Split(text, ""),
	}, nil)
}

func (d *Driver) Press(ctx context.Context, sel domain.Selector, dur time.Duration) error {
	id, err := d.first(ctx, sel)
	if err != nil {
		return err
	}
	s, err := d.session()
	if err != nil {
		return err
	}
	return d.call(ctx, http.MethodPost, s+"/wda/element/"+id+"/touchAndHold", map[string]float64{
		"duration": dur.Seconds(),
	}, nil)
}

func (d *Driver) SetClipboard(ctx context.Context, text string) error {
	s, err := d.session()
	if err != nil {
		return err
	}
	return d.call(ctx, http.MethodPost, s+"/wda/setPasteboard", map[string]string{
		"content":     base64.StdEncoding.EncodeToString([]byte(text)),
		"contentType": "plaintext",
	}, nil)
}

func (d *Driver) SetOrientation(ctx context.Context, o domain.Orientation) error {
	s, err := d.session()
	if err != nil {
		return err
	}
	return d.call(ctx, http.MethodPost, s+"/orientation", map[string]string{
		"orientation": strings.ToUpper(string(o)),
	}, nil)
}

type deviceInfo struct {
	Name  string `json:"name"`
	Model string `json:"model"`
	Idiom int    `json:"userInterfaceIdiom"`
}

func (d *Driver) Device(ctx context.Context) (domain.DeviceInfo, error) {
	var info deviceInfo
	if err := d.call(ctx, http.MethodGet, "/wda/device/info", nil, &info); err != nil {
		return domain.DeviceInfo{}, err
	}
	out := domain.DeviceInfo{Name: info.Name, Idiom: domain.IdiomPhone, Orientation: domain.Portrait}
	if info.Idiom == 1 {
		out.Idiom = domain.IdiomTablet
	}

	if s, err := d.session(); err == nil {
		var o string
		if err := d.call(ctx, http.MethodGet, s+"/orientation", nil, &o); err == nil && strings.HasPrefix(strings.ToUpper(o), "LANDSCAPE") {
			out.Orientation = domain.Landscape
		}
	}
	return out, nil
}

func (d *Driver) DebugDescription(ctx context.Context) (string, error) {
	var src string
	if err := d.call(ctx, http.MethodGet, "/source?format=description", nil, &src); err != nil {
		return "", err
	}
	return src, nil
}
