package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lidmar/site-api/internal/api/middleware"
	"github.com/lidmar/site-api/internal/core/domain"
	"github.com/lidmar/site-api/internal/core/ports"
)

type stubPageService struct {
	getFn    func(ctx context.Context, viewer *domain.SessionClaims, id string) (*ports.PageView, error)
	listFn   func(ctx context.Context, claims *domain.SessionClaims) ([]*domain.Page, error)
	createFn func(ctx context.Context, claims *domain.SessionClaims, in ports.CreatePageInput) (*domain.Page, error)
	updateFn func(ctx context.Context, claims *domain.SessionClaims, id string, u domain.PageUpdate) (*domain.Page, error)
	deleteFn func(ctx context.Context, claims *domain.SessionClaims, id string) error
}

func (s *stubPageService) Get(ctx context.Context, viewer *domain.SessionClaims, id string) (*ports.PageView, error) {
	return s.getFn(ctx, viewer, id)
}

func (s *stubPageService) ListMine(ctx context.Context, claims *domain.SessionClaims) ([]*domain.Page, error) {
	return s.listFn(ctx, claims)
}

func (s *stubPageService) Create(ctx context.Context, claims *domain.SessionClaims, in ports.CreatePageInput) (*domain.Page, error) {
	return s.createFn(ctx, claims, in)
}

func (s *stubPageService) Update(ctx context.Context, claims *domain.SessionClaims, id string, u domain.PageUpdate) (*domain.Page, error) {
	return s.updateFn(ctx, claims, id, u)
}

func (s *stubPageService) Delete(ctx context.Context, claims *domain.SessionClaims, id string) error {
	return s.deleteFn(ctx, claims, id)
}

func newPageContext(method, target, body string, claims *domain.SessionClaims) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set(middleware.ClaimsKey, claims)
	}
	return c, rec
}

func TestPageHandler_Get_ReportsCanEdit(t *testing.T) {
	viewer := &domain.SessionClaims{SubjectID: 1}
	stub := &stubPageService{
		getFn: func(_ context.Context, v *domain.SessionClaims, id string) (*ports.PageView, error) {
			if v != viewer || id != "5" {
				t.Fatalf("unexpected args: %+v %s", v, id)
			}
			return &ports.PageView{
				Page:    &domain.Page{ID: 5, Title: "T", OwnerID: 1, UpdatedAt: time.Now()},
				CanEdit: true,
			}, nil
		},
	}

	c, rec := newPageContext(http.MethodGet, "/v1/pages/5", "", viewer)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := NewPageHandler(stub).Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "5" || resp["owner_id"] != "1" {
		t.Fatalf("ids must be rendered as strings, got %v / %v", resp["id"], resp["owner_id"])
	}
	if resp["can_edit"] != true {
		t.Fatalf("expected can_edit=true, got %v", resp["can_edit"])
	}
}

func TestPageHandler_Get_PropagatesNotFound(t *testing.T) {
	stub := &stubPageService{
		getFn: func(context.Context, *domain.SessionClaims, string) (*ports.PageView, error) {
			return nil, domain.ErrPageNotFound
		},
	}
	c, _ := newPageContext(http.MethodGet, "/v1/pages/9", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := NewPageHandler(stub).Get(c); err != domain.ErrPageNotFound {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestPageHandler_Update_DecodesTolerantly(t *testing.T) {
	claims := &domain.SessionClaims{SubjectID: 1}
	var got domain.PageUpdate
	stub := &stubPageService{
		updateFn: func(_ context.Context, cl *domain.SessionClaims, id string, u domain.PageUpdate) (*domain.Page, error) {
			if cl != claims || id != "3" {
				t.Fatalf("unexpected args: %+v %s", cl, id)
			}
			got = u
			return &domain.Page{ID: 3}, nil
		},
	}

	c, rec := newPageContext(http.MethodPut, "/v1/pages/3", `{"title":"New","owner_id":"2"}`, claims)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := NewPageHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.Title == nil || *got.Title != "New" || got.Content != nil {
		t.Fatalf("unexpected update: %+v", got)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Fatalf("expected success body, got %s", rec.Body.String())
	}
}

func TestPageHandler_Update_AnonymousReachesService(t *testing.T) {
	called := false
	stub := &stubPageService{
		updateFn: func(_ context.Context, cl *domain.SessionClaims, _ string, _ domain.PageUpdate) (*domain.Page, error) {
			called = true
			if cl != nil {
				t.Fatalf("expected nil claims")
			}
			return nil, domain.ErrUnauthenticated
		},
	}
	c, _ := newPageContext(http.MethodPut, "/v1/pages/3", `not json`, nil)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := NewPageHandler(stub).Update(c); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if !called {
		t.Fatalf("service not called")
	}
}

func TestPageHandler_Create_ValidatesTitle(t *testing.T) {
	stub := &stubPageService{
		createFn: func(context.Context, *domain.SessionClaims, ports.CreatePageInput) (*domain.Page, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	c, _ := newPageContext(http.MethodPost, "/v1/pages", `{"content":"body"}`, &domain.SessionClaims{SubjectID: 1})

	err := NewPageHandler(stub).Create(c)
	if err == nil || !strings.Contains(err.Error(), "title is required") {
		t.Fatalf("expected title validation error, got %v", err)
	}
}

func TestPageHandler_Create_Success(t *testing.T) {
	claims := &domain.SessionClaims{SubjectID: 4}
	stub := &stubPageService{
		createFn: func(_ context.Context, cl *domain.SessionClaims, in ports.CreatePageInput) (*domain.Page, error) {
			if in.Title != "Hello" || in.Content != "World" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Page{ID: 10, Title: in.Title, Content: in.Content, OwnerID: cl.SubjectID}, nil
		},
	}
	c, rec := newPageContext(http.MethodPost, "/v1/pages", `{"title":"Hello","content":"World","owner_id":"1"}`, claims)

	if err := NewPageHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"owner_id":"4"`) {
		t.Fatalf("owner must come from the session, got %s", rec.Body.String())
	}
}

func TestPageHandler_ListMine(t *testing.T) {
	stub := &stubPageService{
		listFn: func(_ context.Context, cl *domain.SessionClaims) ([]*domain.Page, error) {
			return []*domain.Page{{ID: 1, OwnerID: cl.SubjectID}, {ID: 2, OwnerID: cl.SubjectID}}, nil
		},
	}
	c, rec := newPageContext(http.MethodGet, "/v1/me/pages", "", &domain.SessionClaims{SubjectID: 3})

	if err := NewPageHandler(stub).ListMine(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp pageListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(resp.Pages))
	}
}
