package folio

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

const testSite = `{
  "familyName": "Ngo Family",
  "tagline": "Researchers and builders",
  "profiles": [
    {"slug": "tra-ngo", "name": "Tra Ngo", "template": "academic"},
    {"slug": "amy-ngo", "name": "Amy Ngo", "template": "business"}
  ]
}`

const testProfile = `{
  "meta": {"name": "Tra Ngo", "slug": "tra-ngo", "template": "academic"},
  "hero": {"title": "Tra Ngo", "subtitle": "Postdoctoral Researcher", "bio": "Studies things."},
  "status": {"currentRole": "Postdoc", "organization": "MIT", "location": {"city": "Boston", "country": "USA"}, "lastUpdated": "2025-01"},
  "sections": [{"type": "about", "title": "About Me", "content": {"paragraphs": ["Hello from Boston."]}}],
  "activityFeed": [
    {"date": "2025-01-15", "type": "career", "title": "Joined MIT"},
    {"date": "2024-06-01", "type": "publication", "title": "On Things"}
  ],
  "getInTouch": {"text": "Write any time."}
}`

func writeFixtures(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func defaultFixtures() map[string]string {
	return map[string]string{
		"data/site.json":             testSite,
		"data/profiles/tra-ngo.json": testProfile,
		"data/profiles/broken.json":  `{"meta": `,
		"data/profiles/bad-sec.json": strings.Replace(testProfile, `{"paragraphs": ["Hello from Boston."]}`, `"oops"`, 1),
	}
}

type testServer struct {
	app    *App
	srv    *httptest.Server
	client *http.Client
}

func newTestServer(t *testing.T, cfg Config, opts ...Option) *testServer {
	t.Helper()
	if cfg.PublicDir == "" {
		cfg.PublicDir = writeFixtures(t, defaultFixtures())
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "test-session-secret"
	}
	cfg.URL = "https://ngo.example"
	a := New(cfg, opts...)
	if err := a.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	srv := httptest.NewServer(a.Echo)
	t.Cleanup(func() {
		srv.Close()
		a.Close()
	})
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &testServer{app: a, srv: srv, client: &http.Client{Jar: jar}}
}

func (ts *testServer) get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := ts.client.Get(ts.srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return readBody(t, resp)
}

func (ts *testServer) noFollow() *http.Client {
	return &http.Client{
		Jar: ts.client.Jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func readBody(t *testing.T, resp *http.Response) (int, string) {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestSetupRequiresSessionSecret(t *testing.T) {
	a := New(Config{})
	defer a.Close()
	err := a.Setup()
	if err == nil || err.Error() != "folio: SessionSecret is required" {
		t.Fatalf("Setup() error = %v", err)
	}
}

func TestNewDefaults(t *testing.T) {
	a := New(Config{})
	if a.Config.Addr != ":3000" || a.Config.PublicDir != "public" || a.Config.ContactEndpoint != DefaultContactEndpoint {
		t.Fatalf("defaults not applied: %+v", a.Config)
	}
	if a.staticDir != "public" {
		t.Errorf("staticDir = %q, want public", a.staticDir)
	}
	if a.Views.Profile == nil || a.Views.Layout == nil || a.Views.Contact == nil {
		t.Errorf("default views not set")
	}
}

func TestHomeRedirectsToFirstProfile(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp, err := ts.noFollow().Get(ts.srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/profiles/tra-ngo/" {
		t.Errorf("Location = %q", loc)
	}
}

func TestHomeWithoutProfilesIsNotFound(t *testing.T) {
	dir := writeFixtures(t, map[string]string{"data/site.json": `{"familyName": "x", "profiles": []}`})
	ts := newTestServer(t, Config{PublicDir: dir})
	code, body := ts.get(t, "/")
	if code != http.StatusNotFound || !strings.Contains(body, "Page Not Found") {
		t.Fatalf("status = %d, body = %q", code, body)
	}
}

func TestProfilePage(t *testing.T) {
	ts := newTestServer(t, Config{})
	code, body := ts.get(t, "/profiles/tra-ngo/")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	for _, want := range []string{
		"<title>Tra Ngo | Ngo Family</title>",
		`<link rel="canonical" href="https://ngo.example/profiles/tra-ngo/">`,
		`"@type":"ProfilePage"`,
		"Hello from Boston.",
		`href="/profiles/amy-ngo/"`,
		"Researchers and builders",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("profile page missing %q", want)
		}
	}
}

func TestProfileErrors(t *testing.T) {
	ts := newTestServer(t, Config{})
	tests := []struct {
		path string
		code int
		msg  string
	}{
		{"/profiles/nobody/", http.StatusNotFound, "Profile not found."},
		{"/profiles/..hidden/", http.StatusNotFound, "Profile not found."},
		{"/profiles/broken/", http.StatusBadGateway, "Failed to load profile. Please try refreshing the page."},
		{"/profiles/bad-sec/", http.StatusBadGateway, "Failed to load profile. Please try refreshing the page."},
	}
	for _, tt := range tests {
		code, body := ts.get(t, tt.path)
		if code != tt.code {
			t.Errorf("GET %s: status = %d, want %d", tt.path, code, tt.code)
		}
		if !strings.Contains(body, tt.msg) {
			t.Errorf("GET %s: body missing %q", tt.path, tt.msg)
		}
		if !strings.Contains(body, "Ngo Family") {
			t.Errorf("GET %s: site header missing", tt.path)
		}
	}
}

func TestMarkdownPages(t *testing.T) {
	ts := newTestServer(t, Config{})

	code, body := ts.get(t, "/about/")
	if code != http.StatusOK || !strings.Contains(body, "About This Site") {
		t.Fatalf("/about/: status = %d", code)
	}
	if !strings.Contains(body, `href="/misc/smi-fsm/"`) {
		t.Errorf("misc dropdown missing from header")
	}

	code, body = ts.get(t, "/misc/smi-fsm/")
	if code != http.StatusOK || !strings.Contains(body, "<strong>Idle</strong>") {
		t.Fatalf("/misc/smi-fsm/: status = %d", code)
	}

	code, body = ts.get(t, "/misc/nope/")
	if code != http.StatusNotFound || !strings.Contains(body, "Page Not Found") {
		t.Fatalf("/misc/nope/: status = %d", code)
	}
}

func TestUnknownRouteRendersNotFound(t *testing.T) {
	ts := newTestServer(t, Config{})
	code, body := ts.get(t, "/does/not/exist/")
	if code != http.StatusNotFound || !strings.Contains(body, "Go Home") {
		t.Fatalf("status = %d", code)
	}
}

func TestTrailingSlashRedirect(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp, err := ts.noFollow().Get(ts.srv.URL + "/about")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMovedPermanently || resp.Header.Get("Location") != "/about/" {
		t.Fatalf("status = %d, Location = %q", resp.StatusCode, resp.Header.Get("Location"))
	}
}

func TestLocalDataIsServed(t *testing.T) {
	ts := newTestServer(t, Config{})
	code, body := ts.get(t, "/data/site.json")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var site map[string]any
	if err := json.Unmarshal([]byte(body), &site); err != nil {
		t.Fatalf("site.json not served verbatim: %v", err)
	}
}

func TestSitemap(t *testing.T) {
	ts := newTestServer(t, Config{})
	code, body := ts.get(t, "/sitemap.xml")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	for _, want := range []string{
		"<loc>https://ngo.example/profiles/tra-ngo/</loc>",
		"<loc>https://ngo.example/profiles/amy-ngo/</loc>",
		"<loc>https://ngo.example/about/</loc>",
		"<loc>https://ngo.example/misc/smi-fsm/</loc>",
		"<loc>https://ngo.example/contact/</loc>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("sitemap missing %q", want)
		}
	}
}

func TestFeedAggregatesLoadableProfiles(t *testing.T) {
	ts := newTestServer(t, Config{})
	code, body := ts.get(t, "/feed.xml")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	first := strings.Index(body, "Tra Ngo: Joined MIT")
	second := strings.Index(body, "Tra Ngo: On Things")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("feed items missing or out of order:\n%s", body)
	}
	if !strings.Contains(body, "<title>Ngo Family</title>") {
		t.Errorf("channel title should be the family name")
	}
	if !strings.Contains(body, "<category>career</category>") {
		t.Errorf("feed type missing from item")
	}
}

func TestRobotsFallback(t *testing.T) {
	ts := newTestServer(t, Config{})
	code, body := ts.get(t, "/robots.txt")
	if code != http.StatusOK || !strings.Contains(body, "Sitemap: https://ngo.example/sitemap.xml") {
		t.Fatalf("status = %d, body = %q", code, body)
	}
}

var csrfInput = regexp.MustCompile(`name="_csrf" value="([^"]+)"`)

func (ts *testServer) csrf(t *testing.T) string {
	t.Helper()
	code, body := ts.get(t, "/contact/")
	if code != http.StatusOK {
		t.Fatalf("GET /contact/: status = %d", code)
	}
	m := csrfInput.FindStringSubmatch(body)
	if m == nil {
		t.Fatalf("no csrf token in contact form")
	}
	return m[1]
}

func (ts *testServer) postContact(t *testing.T, form url.Values) (int, string) {
	t.Helper()
	form.Set("_csrf", ts.csrf(t))
	resp, err := ts.client.PostForm(ts.srv.URL+"/contact/", form)
	if err != nil {
		t.Fatalf("POST /contact/: %v", err)
	}
	return readBody(t, resp)
}

func validForm() url.Values {
	return url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"message": {"Hello!"},
	}
}

func TestContactWithoutKeyShowsConfigurationMessage(t *testing.T) {
	ts := newTestServer(t, Config{})
	code, body := ts.postContact(t, validForm())
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if !strings.Contains(body, "Contact form is not configured. Please set FOLIO_CONTACT_KEY.") {
		t.Fatalf("configuration message missing")
	}

	_, body = ts.get(t, "/contact/")
	if strings.Contains(body, "not configured") {
		t.Errorf("flash shown twice")
	}
}

type fakeRelay struct {
	mu    sync.Mutex
	forms []url.Values
	reply string
	code  int
}

func (f *fakeRelay) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err == nil {
		f.mu.Lock()
		f.forms = append(f.forms, r.PostForm)
		f.mu.Unlock()
	}
	code := f.code
	if code == 0 {
		code = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	io.WriteString(w, f.reply)
}

func newRelay(t *testing.T, code int, reply string) (*fakeRelay, string) {
	f := &fakeRelay{code: code, reply: reply}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, srv.URL
}

func TestContactRelaysMessage(t *testing.T) {
	relay, endpoint := newRelay(t, http.StatusOK, `{"success": true, "message": "ok"}`)
	ts := newTestServer(t, Config{ContactKey: "key-123", ContactEndpoint: endpoint})

	code, body := ts.postContact(t, validForm())
	if code != http.StatusOK || !strings.Contains(body, "get back to you soon") {
		t.Fatalf("status = %d, success notice missing", code)
	}
	relay.mu.Lock()
	defer relay.mu.Unlock()
	if len(relay.forms) != 1 {
		t.Fatalf("relay received %d submissions", len(relay.forms))
	}
	got := relay.forms[0]
	if got.Get("access_key") != "key-123" || got.Get("email") != "ada@example.com" || got.Get("message") != "Hello!" {
		t.Errorf("relay form = %v", got)
	}
}

func TestContactOutcomes(t *testing.T) {
	tests := []struct {
		name  string
		code  int
		reply string
		form  url.Values
		want  string
	}{
		{"relay rejects", http.StatusBadRequest, `{"success": false, "message": "Invalid access key"}`, validForm(), "Invalid access key"},
		{"relay rejects silently", http.StatusOK, `{"success": false}`, validForm(), MsgContactFailed},
		{"relay garbage", http.StatusInternalServerError, `<html>`, validForm(), MsgContactFailed},
		{"bad email", http.StatusOK, `{"success": true}`, url.Values{"name": {"Ada"}, "email": {"nope"}, "message": {"Hi"}}, "Please enter a valid email address."},
		{"blank name", http.StatusOK, `{"success": true}`, url.Values{"name": {"  "}, "email": {"a@b.co"}, "message": {"Hi"}}, "Please enter your name."},
	}
	for _, tt := range tests {
		_, endpoint := newRelay(t, tt.code, tt.reply)
		ts := newTestServer(t, Config{ContactKey: "key", ContactEndpoint: endpoint})
		_, body := ts.postContact(t, tt.form)
		if !strings.Contains(body, tt.want) {
			t.Errorf("%s: body missing %q", tt.name, tt.want)
		}
	}
}

func TestContactRelayUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	ts := newTestServer(t, Config{ContactKey: "key", ContactEndpoint: endpoint})
	_, body := ts.postContact(t, validForm())
	if !strings.Contains(body, "Network error. Please check your connection and try again.") {
		t.Fatalf("network notice missing")
	}
}

func TestContactRateLimited(t *testing.T) {
	_, endpoint := newRelay(t, http.StatusOK, `{"success": true}`)
	ts := newTestServer(t, Config{ContactKey: "key", ContactEndpoint: endpoint})
	for i := 0; i < 5; i++ {
		if code, _ := ts.postContact(t, validForm()); code != http.StatusOK {
			t.Fatalf("submission %d: status = %d", i, code)
		}
	}
	code, body := ts.postContact(t, validForm())
	if code != http.StatusTooManyRequests || !strings.Contains(body, MsgContactRateLimited) {
		t.Fatalf("status = %d, want 429", code)
	}
}

func TestContactRequiresCSRFToken(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp, err := ts.client.PostForm(ts.srv.URL+"/contact/", validForm())
	if err != nil {
		t.Fatal(err)
	}
	code, _ := readBody(t, resp)
	if code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp, err := ts.client.Get(ts.srv.URL + "/about/")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.Header.Get("X-Frame-Options") != "DENY" {
		t.Errorf("X-Frame-Options = %q", resp.Header.Get("X-Frame-Options"))
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Errorf("missing request id")
	}
	if resp.Header.Get("Cache-Control") != "public, max-age=3600" {
		t.Errorf("Cache-Control = %q", resp.Header.Get("Cache-Control"))
	}
}

func TestCustomRoutesAndViews(t *testing.T) {
	ts := newTestServer(t, Config{},
		WithCustomRoutes(func(a *App) {
			a.Echo.GET("/healthz/", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
		}),
		WithViews(ViewFuncs{ProfileError: func(msg string) templ.Component { return templ.Raw("custom: " + msg) }}),
	)
	if code, body := ts.get(t, "/healthz/"); code != http.StatusOK || body != "ok" {
		t.Errorf("/healthz = %d %q", code, body)
	}
	if _, body := ts.get(t, "/profiles/nobody/"); !strings.Contains(body, "custom: Profile not found.") {
		t.Errorf("custom ProfileError not used")
	}
}
