package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cardealer/cardealer_backend/models"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func postJSON(t *testing.T, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// In-memory boundary stores. Only the lookups and inserts the handlers
// under test exercise carry real behavior.

type fakeUsers struct {
	users   []*models.User
	created []*models.User
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
	}
	return &fakeUsers{users: users}
}

func (s *fakeUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (s *fakeUsers) Create(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	s.users = append(s.users, user)
	s.created = append(s.created, user)
	return nil
}

func (s *fakeUsers) UpdateByEmail(_ context.Context, _ string, _ bson.M) error {
	return nil
}

func (s *fakeUsers) Find(_ context.Context, _ bson.M, _, _ int) ([]models.User, error) {
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *fakeUsers) Count(_ context.Context, _ bson.M) (int64, error) {
	return int64(len(s.users)), nil
}

type fakeCategories struct {
	categories []*models.Category
	created    []*models.Category
}

func newFakeCategories(categories ...*models.Category) *fakeCategories {
	for _, c := range categories {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
	}
	return &fakeCategories{categories: categories}
}

func (s *fakeCategories) FindByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (s *fakeCategories) FindBySlug(_ context.Context, slug string) (*models.Category, error) {
	for _, c := range s.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (s *fakeCategories) FindByName(_ context.Context, name string) (*models.Category, error) {
	for _, c := range s.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (s *fakeCategories) Create(_ context.Context, category *models.Category) error {
	category.ID = primitive.NewObjectID()
	s.categories = append(s.categories, category)
	s.created = append(s.created, category)
	return nil
}

func (s *fakeCategories) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	kept := s.categories[:0]
	for _, c := range s.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.categories = kept
	return nil
}

func (s *fakeCategories) Find(_ context.Context, _, _ int) ([]models.Category, error) {
	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (s *fakeCategories) Count(_ context.Context) (int64, error) {
	return int64(len(s.categories)), nil
}
