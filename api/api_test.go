package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/developer-portfolio-backend/database"
	"github.com/rpupo63/developer-portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter atomic.Int64

type fakeNotifier struct {
	mu       sync.Mutex
	err      error
	messages []models.ContactMessage
}

func (f *fakeNotifier) NotifyContactMessage(ctx context.Context, msg models.ContactMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
	return f.err
}

func newTestRouter(t *testing.T, notifier *fakeNotifier) (*chi.Mux, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:api_%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if notifier == nil {
		notifier = &fakeNotifier{}
	}
	router := newRouter(database.New(db), notifier, withConfig(map[string]string{
		"LOG_FORMAT":       "json",
		"ACCEPTED_ORIGINS": "https://portfolio.example.com",
	}))
	return router, db
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d, body = %s", rec.Code, want, rec.Body.String())
	}
}

func TestProfileRoutes(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := do(t, router, http.MethodGet, "/profile", "")
	expectStatus(t, rec, http.StatusOK)
	if strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("expected null profile, got %s", rec.Body.String())
	}

	rec = do(t, router, http.MethodPut, "/profile", `{"name":"Ada","experience_years":5,"aspirations":"Compilers"}`)
	expectStatus(t, rec, http.StatusOK)
	created := decode[models.DeveloperProfile](t, rec)
	if created.Name != "Ada" || created.Title != models.DefaultProfileTitle || created.ExperienceYears != 5 {
		t.Fatalf("created = %+v", created)
	}

	rec = do(t, router, http.MethodPut, "/profile", `{"bio":"X","aspirations":null}`)
	expectStatus(t, rec, http.StatusOK)
	updated := decode[models.DeveloperProfile](t, rec)
	if updated.ID != created.ID || updated.Bio != "X" || updated.Name != "Ada" || updated.Aspirations != nil {
		t.Fatalf("updated = %+v", updated)
	}

	rec = do(t, router, http.MethodGet, "/profile", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.DeveloperProfile](t, rec); got.Bio != "X" {
		t.Fatalf("stored = %+v", got)
	}
}

func TestProfileRejectsInvalidFields(t *testing.T) {
	router, db := newTestRouter(t, nil)

	cases := map[string]string{
		"null name":      `{"name":null}`,
		"empty title":    `{"title":""}`,
		"negative years": `{"experience_years":-1}`,
		"bad image url":  `{"profile_image_url":"not a url"}`,
		"wrong type":     `{"experience_years":"five"}`,
		"malformed json": `{"name":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rec := do(t, router, http.MethodPut, "/profile", body)
			expectStatus(t, rec, http.StatusBadRequest)
		})
	}

	var n int64
	db.Model(&models.DeveloperProfile{}).Count(&n)
	if n != 0 {
		t.Fatalf("invalid input reached the store: %d rows", n)
	}
}

func TestNullOnRequiredFieldNamesTheKey(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := do(t, router, http.MethodPut, "/profile", `{"bio":"ok","aspirations":null,"experience_years":null}`)
	expectStatus(t, rec, http.StatusBadRequest)
	if got := decode[ErrorResponse](t, rec); got.Field != "experience_years" {
		t.Fatalf("error = %+v", got)
	}

	rec = do(t, router, http.MethodPost, "/rpc/updateSkill", `{"id":1,"display_order":null}`)
	expectStatus(t, rec, http.StatusBadRequest)
	if got := decode[ErrorResponse](t, rec); got.Field != "display_order" {
		t.Fatalf("error = %+v", got)
	}
}

func TestSkillRoutes(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := do(t, router, http.MethodPost, "/skill", `{"name":"Go","category":"Language","proficiency_level":5,"display_order":2}`)
	expectStatus(t, rec, http.StatusCreated)
	goSkill := decode[models.Skill](t, rec)

	rec = do(t, router, http.MethodPost, "/skill", `{"name":"SQL","category":"Data","proficiency_level":3}`)
	expectStatus(t, rec, http.StatusCreated)
	sqlSkill := decode[models.Skill](t, rec)
	if sqlSkill.DisplayOrder != 0 {
		t.Fatalf("display_order default = %d", sqlSkill.DisplayOrder)
	}

	rec = do(t, router, http.MethodGet, "/skills", "")
	expectStatus(t, rec, http.StatusOK)
	skills := decode[[]models.Skill](t, rec)
	if len(skills) != 2 || skills[0].ID != sqlSkill.ID || skills[1].ID != goSkill.ID {
		t.Fatalf("skills = %+v", skills)
	}

	rec = do(t, router, http.MethodPut, fmt.Sprintf("/skill/%d", goSkill.ID), `{"proficiency_level":4}`)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.Skill](t, rec); got.ProficiencyLevel != 4 || got.Name != "Go" {
		t.Fatalf("updated = %+v", got)
	}

	rec = do(t, router, http.MethodDelete, fmt.Sprintf("/skill/%d", goSkill.ID), "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[successResponse](t, rec); !got.Success {
		t.Fatalf("delete response = %s", rec.Body.String())
	}
	rec = do(t, router, http.MethodDelete, fmt.Sprintf("/skill/%d", goSkill.ID), "")
	expectStatus(t, rec, http.StatusOK)
}

func TestSkillValidationNeverReachesStore(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	for _, body := range []string{
		`{"name":"Go","category":"Language","proficiency_level":6}`,
		`{"name":"Go","category":"Language","proficiency_level":0}`,
		`{"name":"Go","category":"Language"}`,
		`{"category":"Language","proficiency_level":3}`,
		`{"name":"Go","category":"Language","proficiency_level":3,"icon_url":"nope"}`,
	} {
		rec := do(t, router, http.MethodPost, "/skill", body)
		expectStatus(t, rec, http.StatusBadRequest)
	}

	rec := do(t, router, http.MethodPost, "/skill", `{"name":"Go","category":"Language","proficiency_level":6}`)
	if got := decode[ErrorResponse](t, rec); got.Field != "proficiency_level" {
		t.Fatalf("field = %q", got.Field)
	}

	rec = do(t, router, http.MethodGet, "/skills", "")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("skills = %s", rec.Body.String())
	}
}

func TestUpdateMissingSkillIsNotFound(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := do(t, router, http.MethodPut, "/skill/999", `{"name":"ghost"}`)
	expectStatus(t, rec, http.StatusNotFound)
	if got := decode[ErrorResponse](t, rec); got.Field != "id" {
		t.Fatalf("error = %+v", got)
	}

	rec = do(t, router, http.MethodPut, "/skill/abc", `{"name":"ghost"}`)
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestProjectRoutes(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	for _, body := range []string{
		`{"title":"A","description":"d","short_description":"s","technologies_used":"[\"Go\"]","display_order":1}`,
		`{"title":"B","description":"d","short_description":"s","technologies_used":"Go","display_order":10,"is_featured":true}`,
		`{"title":"C","description":"d","short_description":"s","technologies_used":"","is_featured":true}`,
	} {
		expectStatus(t, do(t, router, http.MethodPost, "/project", body), http.StatusCreated)
	}

	rec := do(t, router, http.MethodGet, "/projects", "")
	expectStatus(t, rec, http.StatusOK)
	projects := decode[[]models.Project](t, rec)
	var order []int
	for _, p := range projects {
		order = append(order, p.DisplayOrder)
	}
	if fmt.Sprint(order) != "[0 1 10]" {
		t.Fatalf("order = %v", order)
	}

	rec = do(t, router, http.MethodGet, "/projects/featured", "")
	expectStatus(t, rec, http.StatusOK)
	featured := decode[[]models.Project](t, rec)
	if len(featured) != 2 || featured[0].Title != "C" || featured[1].Title != "B" {
		t.Fatalf("featured = %+v", featured)
	}

	rec = do(t, router, http.MethodPut, fmt.Sprintf("/project/%d", projects[1].ID), `{"is_featured":true,"live_demo_url":"https://a.example.com"}`)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.Project](t, rec); !got.IsFeatured || got.LiveDemoURL == nil || got.Title != "A" {
		t.Fatalf("updated = %+v", got)
	}

	rec = do(t, router, http.MethodPost, "/project", `{"title":"D","description":"d","short_description":"s"}`)
	expectStatus(t, rec, http.StatusBadRequest)
	if got := decode[ErrorResponse](t, rec); got.Field != "technologies_used" {
		t.Fatalf("error = %+v", got)
	}

	expectStatus(t, do(t, router, http.MethodPut, "/project/12345", `{"title":"x"}`), http.StatusNotFound)
	expectStatus(t, do(t, router, http.MethodDelete, "/project/12345", ""), http.StatusOK)
}

func TestContactRoutes(t *testing.T) {
	notifier := &fakeNotifier{}
	router, _ := newTestRouter(t, notifier)

	rec := do(t, router, http.MethodPost, "/contact-message",
		`{"name":"Jane Smith","email":"jane.smith@example.com","subject":null,"message":"Hi"}`)
	expectStatus(t, rec, http.StatusCreated)
	msg := decode[models.ContactMessage](t, rec)
	if msg.IsRead || msg.Subject != nil || msg.ID <= 0 {
		t.Fatalf("message = %+v", msg)
	}
	if len(notifier.messages) != 1 || notifier.messages[0].ID != msg.ID {
		t.Fatalf("notifier saw %+v", notifier.messages)
	}

	rec = do(t, router, http.MethodPost, "/contact-message", `{"name":"Jane","email":"not-an-email","message":"Hi"}`)
	expectStatus(t, rec, http.StatusBadRequest)
	if got := decode[ErrorResponse](t, rec); got.Field != "email" {
		t.Fatalf("field = %q", got.Field)
	}

	rec = do(t, router, http.MethodPut, fmt.Sprintf("/contact-message/%d/read", msg.ID), "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.ContactMessage](t, rec); !got.IsRead {
		t.Fatalf("mark read = %+v", got)
	}

	rec = do(t, router, http.MethodGet, "/contact-messages", "")
	expectStatus(t, rec, http.StatusOK)
	if msgs := decode[[]models.ContactMessage](t, rec); len(msgs) != 1 || !msgs[0].IsRead {
		t.Fatalf("messages = %+v", msgs)
	}

	expectStatus(t, do(t, router, http.MethodPut, "/contact-message/777/read", ""), http.StatusNotFound)

	rec = do(t, router, http.MethodGet, "/contact-info", "")
	if strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("contact info = %s", rec.Body.String())
	}
	rec = do(t, router, http.MethodPut, "/contact-info", `{"github_url":"https://github.com/ada"}`)
	expectStatus(t, rec, http.StatusOK)
	info := decode[models.ContactInfo](t, rec)
	if info.Email != models.DefaultContactEmail || info.GithubURL == nil {
		t.Fatalf("info = %+v", info)
	}
	expectStatus(t, do(t, router, http.MethodPut, "/contact-info", `{"email":"nope"}`), http.StatusBadRequest)
}

func TestNotificationFailureDoesNotFailRequest(t *testing.T) {
	router, _ := newTestRouter(t, &fakeNotifier{err: errors.New("smtp down")})

	rec := do(t, router, http.MethodPost, "/contact-message", `{"name":"Bob","email":"bob@example.com","message":"Hi"}`)
	expectStatus(t, rec, http.StatusCreated)
}

func TestRPCMatchesREST(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := do(t, router, http.MethodPost, "/rpc/createSkill", `{"name":"Go","category":"Language","proficiency_level":5}`)
	expectStatus(t, rec, http.StatusOK)
	skill := decode[models.Skill](t, rec)

	rec = do(t, router, http.MethodPost, "/rpc/updateSkill", fmt.Sprintf(`{"id":%d,"display_order":3}`, skill.ID))
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.Skill](t, rec); got.DisplayOrder != 3 {
		t.Fatalf("updated = %+v", got)
	}

	rpcList := do(t, router, http.MethodGet, "/rpc/getSkills", "")
	restList := do(t, router, http.MethodGet, "/skills", "")
	expectStatus(t, rpcList, http.StatusOK)
	if rpcList.Body.String() != restList.Body.String() {
		t.Fatalf("rpc %s != rest %s", rpcList.Body.String(), restList.Body.String())
	}

	rec = do(t, router, http.MethodPost, "/rpc/updateSkill", `{"id":999,"name":"x"}`)
	expectStatus(t, rec, http.StatusNotFound)

	rec = do(t, router, http.MethodPost, "/rpc/updateSkill", `{"name":"x"}`)
	expectStatus(t, rec, http.StatusBadRequest)
	if got := decode[ErrorResponse](t, rec); got.Field != "id" {
		t.Fatalf("field = %q", got.Field)
	}

	rec = do(t, router, http.MethodPost, "/rpc/deleteSkill", fmt.Sprintf(`{"id":%d}`, skill.ID))
	expectStatus(t, rec, http.StatusOK)
	rec = do(t, router, http.MethodPost, "/rpc/deleteSkill", fmt.Sprintf(`{"id":%d}`, skill.ID))
	expectStatus(t, rec, http.StatusOK)
}

func TestRPCQueryInputAndMarkRead(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := do(t, router, http.MethodPost, "/rpc/createContactMessage", `{"name":"Jane","email":"jane@example.com","message":"Hi"}`)
	expectStatus(t, rec, http.StatusOK)
	msg := decode[models.ContactMessage](t, rec)

	rec = do(t, router, http.MethodPost, "/rpc/markMessageRead", fmt.Sprintf(`{"id":%d}`, msg.ID))
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.ContactMessage](t, rec); !got.IsRead {
		t.Fatalf("mark read = %+v", got)
	}

	rec = do(t, router, http.MethodGet, "/rpc/getFeaturedProjects?input="+url.QueryEscape(`{}`), "")
	expectStatus(t, rec, http.StatusOK)
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("featured = %s", rec.Body.String())
	}
}

func TestRPCErrors(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := do(t, router, http.MethodGet, "/rpc/dropDatabase", "")
	expectStatus(t, rec, http.StatusNotFound)
	if got := decode[ErrorResponse](t, rec); got.Field != "procedure" {
		t.Fatalf("error = %+v", got)
	}

	rec = do(t, router, http.MethodGet, "/rpc/createSkill", "")
	expectStatus(t, rec, http.StatusMethodNotAllowed)
	if rec.Header().Get("Allow") != http.MethodPost {
		t.Fatalf("Allow = %q", rec.Header().Get("Allow"))
	}

	expectStatus(t, do(t, router, http.MethodPost, "/rpc/getSkills", `{}`), http.StatusMethodNotAllowed)
}

func TestUnsupportedMediaType(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/skill", strings.NewReader("name=Go"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	expectStatus(t, rec, http.StatusUnsupportedMediaType)
}

func TestHealthcheckAndRequestID(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	rec := do(t, router, http.MethodGet, "/healthcheck", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[healthResponse](t, rec); got.Status != "ok" || got.Database != "ok" || got.Timestamp.IsZero() {
		t.Fatalf("health = %+v", got)
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatal("missing request id header")
	}

	rec = do(t, router, http.MethodGet, "/rpc/healthcheck", "")
	expectStatus(t, rec, http.StatusOK)
	if got := decode[healthResponse](t, rec); got.Status != "ok" || got.Timestamp.IsZero() {
		t.Fatalf("rpc health = %+v", got)
	}
	expectStatus(t, do(t, router, http.MethodPost, "/rpc/healthcheck", `{}`), http.StatusMethodNotAllowed)

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	req.Header.Set(requestIDHeader, "3f2c1b7e-8a4d-4c2e-9f6a-1b2c3d4e5f60")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != "3f2c1b7e-8a4d-4c2e-9f6a-1b2c3d4e5f60" {
		t.Fatalf("request id = %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/skills", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	expectStatus(t, rec, http.StatusForbidden)

	req = httptest.NewRequest(http.MethodOptions, "/skills", nil)
	req.Header.Set("Origin", "https://portfolio.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://portfolio.example.com" {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}
}
