package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"ppm-service/internal/model"
	"ppm-service/internal/store"
	"ppm-service/pkg/config"
	"ppm-service/pkg/jwtutil"
	"ppm-service/pkg/logger"
)

// fakeStore is an in-memory store.Store for handler tests.
type fakeStore struct {
	ds          store.Dataset
	users       []model.User
	loadErr     error
	appendErr   error
	createErr   error
	appendDelay time.Duration // simulates a slow persist
}

func (f *fakeStore) Load() (*store.Dataset, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	ds := f.ds
	return &ds, nil
}

func (f *fakeStore) AppendSubmission(sub model.Submission) error {
	if f.appendDelay > 0 {
		time.Sleep(f.appendDelay)
	}
	if f.appendErr != nil {
		return f.appendErr
	}
	f.ds.Submissions = append(f.ds.Submissions, sub)
	return nil
}

func (f *fakeStore) FindUser(phone string) (*model.User, error) {
	for i := range f.users {
		if f.users[i].Phone == phone {
			return &f.users[i], nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeStore) CreateUser(user model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.users = append(f.users, user)
	return nil
}

func testStore() *fakeStore {
	return &fakeStore{
		ds: store.Dataset{
			Projects: []model.Project{
				{Owner: "Acme", Name: "Tower A", Emirate: "Dubai", IndoorQty: 10, VRFQty: 5, DXQty: 0, AHUQty: 2},
				{Owner: "Globex", Name: "Mall", Emirate: "Abu Dhabi", IndoorQty: 100, VRFQty: 20, DXQty: 10, AHUQty: 4},
			},
			Technicians: []model.Technician{{Name: "Ali"}, {Name: "Omar"}, {Name: "Sami"}},
		},
	}
}

// newTestContext builds an Echo context the way requests arrive in production:
// validator registered, JSON body bound by the handler itself.
func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewRequestValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestMain(m *testing.M) {
	cfg := &config.Config{
		Server: config.ServerConfig{Env: "development"},
		Log:    config.LogConfig{Level: "error"},
		JWT:    config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1},
	}
	if err := logger.InitLogger(cfg); err != nil {
		panic(err)
	}
	jwtutil.Initialize(&cfg.JWT)
	m.Run()
}
