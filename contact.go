package folio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gojektech/heimdall/v6/httpclient"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/folio/views"
)

// Contact notices shown to the visitor.
const (
	MsgContactNotConfigured = "Contact form is not configured. Please set FOLIO_CONTACT_KEY."
	MsgContactSent          = "Thank you for your message! I'll get back to you soon."
	MsgContactFailed        = "Something went wrong. Please try again."
	MsgContactNetwork       = "Network error. Please check your connection and try again."
	MsgContactRateLimited   = "Too many messages. Please wait a minute and try again."
)

var (
	// ErrContactNotConfigured is returned by Send when no access key is set.
	ErrContactNotConfigured = errors.New("folio: contact relay not configured")
	// ErrContactUnreachable covers transport failures talking to the relay.
	ErrContactUnreachable = errors.New("folio: contact relay unreachable")
)

// ContactForm is the submitted contact form.
type ContactForm struct {
	Name    string `form:"name" validate:"required,max=200"`
	Email   string `form:"email" validate:"required,email,max=320"`
	Message string `form:"message" validate:"required,max=5000"`
}

// RelayError is a rejection reported by the relay itself.
type RelayError struct {
	Status  int
	Message string // from the relay; empty when its response was unreadable
}

func (e *RelayError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("folio: contact relay rejected the message (status %d)", e.Status)
	}
	return "folio: contact relay: " + e.Message
}

type relayResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ContactRelay forwards contact submissions to a third-party form endpoint.
type ContactRelay struct {
	endpoint string
	key      string
	http     *httpclient.Client
}

// NewContactRelay builds a relay for endpoint. An empty key leaves the relay
// unconfigured; Send then fails with ErrContactNotConfigured.
func NewContactRelay(endpoint, key string, timeout time.Duration) *ContactRelay {
	return &ContactRelay{
		endpoint: endpoint,
		key:      key,
		http: httpclient.NewClient(
			httpclient.WithHTTPTimeout(timeout),
			httpclient.WithRetryCount(0),
		),
	}
}

// Configured reports whether an access key is set.
func (r *ContactRelay) Configured() bool {
	return r.key != ""
}

// Send posts the form to the relay.
func (r *ContactRelay) Send(ctx context.Context, f ContactForm) error {
	if !r.Configured() {
		return ErrContactNotConfigured
	}
	form := url.Values{
		"access_key": {r.key},
		"name":       {f.Name},
		"email":      {f.Email},
		"message":    {f.Message},
		"subject":    {"New message from " + f.Name},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("folio: build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrContactUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrContactUnreachable, err)
	}
	var out relayResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return &RelayError{Status: resp.StatusCode}
	}
	if !out.Success {
		return &RelayError{Status: resp.StatusCode, Message: out.Message}
	}
	return nil
}

// formValidator adapts go-playground/validator to echo.Validator.
type formValidator struct {
	v *validator.Validate
}

func newFormValidator() *formValidator {
	return &formValidator{v: validator.New()}
}

func (fv *formValidator) Validate(i any) error {
	return fv.v.Struct(i)
}

// invalidFieldMessage turns the first failing field into a visitor-facing hint.
func invalidFieldMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return MsgContactFailed
	}
	switch verrs[0].Field() {
	case "Name":
		return "Please enter your name."
	case "Email":
		return "Please enter a valid email address."
	case "Message":
		return "Please enter a message."
	}
	return MsgContactFailed
}

func (a *App) handleContact(c echo.Context) error {
	return a.renderPage(c, http.StatusOK,
		views.PageMeta{Title: "Contact", Description: "Send a message."},
		a.Views.Contact(popFlash(c), CsrfToken(c)))
}

func (a *App) handleContactSubmit(c echo.Context) error {
	if !a.contactLimiter.Allow(c.RealIP()) {
		notice := views.Notice{Kind: views.NoticeError, Text: MsgContactRateLimited}
		return a.renderPage(c, http.StatusTooManyRequests,
			views.PageMeta{Title: "Contact"},
			a.Views.Contact(notice, CsrfToken(c)))
	}
	notice := a.submitContact(c)
	if err := setFlash(c, notice); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/contact/")
}

func (a *App) submitContact(c echo.Context) views.Notice {
	fail := func(msg string) views.Notice {
		return views.Notice{Kind: views.NoticeError, Text: msg}
	}
	if !a.relay.Configured() {
		a.Log.Warn("contact submission without relay key")
		return fail(MsgContactNotConfigured)
	}

	var f ContactForm
	if err := c.Bind(&f); err != nil {
		return fail(MsgContactFailed)
	}
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Message = strings.TrimSpace(f.Message)
	if err := c.Validate(&f); err != nil {
		return fail(invalidFieldMessage(err))
	}

	err := a.relay.Send(c.Request().Context(), f)
	var relayErr *RelayError
	switch {
	case err == nil:
		a.Log.Info("contact message relayed")
		return views.Notice{Kind: views.NoticeSuccess, Text: MsgContactSent}
	case errors.Is(err, ErrContactUnreachable):
		a.Log.Warn("contact relay unreachable", zap.Error(err))
		return fail(MsgContactNetwork)
	case errors.As(err, &relayErr) && relayErr.Message != "":
		a.Log.Warn("contact relay rejected message", zap.Error(err))
		return fail(relayErr.Message)
	default:
		a.Log.Error("contact relay failed", zap.Error(err))
		return fail(MsgContactFailed)
	}
}
