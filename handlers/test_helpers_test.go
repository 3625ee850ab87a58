package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"color_robotics_site/config"
	"color_robotics_site/db"
	"color_robotics_site/middleware"
	"color_robotics_site/models"
	"color_robotics_site/services"
	"color_robotics_site/services/contactform"
	"color_robotics_site/services/variants"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests while allowing shared cache for async tasks
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, testDB.AutoMigrate(&models.Lead{}))

	// Set global DB
	db.DB = testDB
	t.Cleanup(func() { db.DB = nil })

	return testDB
}

// formEndpoint stands in for the third-party form endpoint
type formEndpoint struct {
	mu     sync.Mutex
	status int
	posts  []url.Values
	hold   chan struct{}
	server *httptest.Server
}

func newFormEndpoint(t *testing.T) *formEndpoint {
	fe := &formEndpoint{status: http.StatusOK}
	fe.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		fe.mu.Lock()
		fe.posts = append(fe.posts, r.PostForm)
		status, hold := fe.status, fe.hold
		fe.mu.Unlock()
		if hold != nil {
			<-hold
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(fe.server.Close)
	return fe
}

func (fe *formEndpoint) setStatus(code int) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	fe.status = code
}

// holdResponses keeps posts waiting until the returned release func is called
func (fe *formEndpoint) holdResponses(t *testing.T) func() {
	hold := make(chan struct{})
	fe.mu.Lock()
	fe.hold = hold
	fe.mu.Unlock()

	var once sync.Once
	release := func() { once.Do(func() { close(hold) }) }
	t.Cleanup(release)
	return release
}

func (fe *formEndpoint) received() []url.Values {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return append([]url.Values(nil), fe.posts...)
}

type testSite struct {
	cfg      *config.Config
	registry *variants.Registry
	tracker  *contactform.Tracker
	clock    *contactform.ManualClock
	endpoint *formEndpoint
}

// setupSite configures the handler dependencies against a fake form endpoint
func setupSite(t *testing.T, mode string) *testSite {
	registry, err := variants.NewRegistry("", "color-robotics")
	require.NoError(t, err)

	ts := &testSite{
		registry: registry,
		tracker:  contactform.NewTracker(time.Minute),
		clock:    &contactform.ManualClock{},
		endpoint: newFormEndpoint(t),
	}
	ts.cfg = &config.Config{
		Environment:      "test",
		AppURL:           "https://colorrobotics.test",
		FormEndpointBase: ts.endpoint.server.URL,
		FormSuccessMode:  mode,
		FormSuccessDelay: time.Second,
		RelayTimeout:     time.Second,
		IPHashSecret:     "test-secret-with-enough-length-000000",
		EmailTestMode:    true,
	}

	Configure(SiteDeps{
		Registry: registry,
		Tracker:  ts.tracker,
		Relay:    services.NewFormRelay(time.Second),
		Clock:    ts.clock,
	})
	t.Cleanup(func() { Configure(SiteDeps{}) })
	return ts
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", &config.Config{
		Environment: "test",
	})

	return e, c, rec
}

// request builds a context for ts, optionally as an htmx request with route params
func (ts *testSite) request(method, path string, form url.Values, htmx bool, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	_, c, rec := setupEcho(method, path, body)
	c.Set("config", ts.cfg)
	if htmx {
		c.Request().Header.Set("HX-Request", "true")
	}
	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

// withVariant runs h behind the variant middleware, as the router does
func (ts *testSite) withVariant(h echo.HandlerFunc) echo.HandlerFunc {
	return middleware.Variant(ts.registry)(h)
}
