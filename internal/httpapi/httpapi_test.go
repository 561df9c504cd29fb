package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sofiwisher/sofiwisher/internal/store"
)

type mockStore struct {
	listFunc func(ctx context.Context, userID string) ([]string, error)
	allFunc  func(ctx context.Context) ([]*store.Record, error)
}

var _ store.Store = (*mockStore)(nil)

func (m *mockStore) Register(context.Context, string, string) error {
	return errors.New("not implemented")
}

func (m *mockStore) Unregister(context.Context, string, string) error {
	return errors.New("not implemented")
}

func (m *mockStore) List(ctx context.Context, userID string) ([]string, error) {
	return m.listFunc(ctx, userID)
}

func (m *mockStore) All(ctx context.Context) ([]*store.Record, error) {
	return m.allFunc(ctx)
}

func (m *mockStore) Close(context.Context) error {
	return nil
}

func performRequest(r http.Handler, method string, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func TestHealthz(t *testing.T) {
	rec := performRequest(NewRouter(&mockStore{}), http.MethodGet, "/healthz")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Unexpected body %q: %+v", rec.Body.String(), err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
}

func TestUserSeries(t *testing.T) {
	tests := []struct {
		name         string
		series       []string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "listed",
			series:       []string{"naruto", "bleach"},
			expectedCode: http.StatusOK,
			expectedBody: `{"userId":"user-1","series":["naruto","bleach"]}`,
		},
		{
			name:         "no series",
			err:          store.ErrNoSeries,
			expectedCode: http.StatusNotFound,
			expectedBody: `{"error":"no series"}`,
		},
		{
			name:         "store failure",
			err:          store.NewError("list", errors.New("connection reset")),
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"store unavailable"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &mockStore{
				listFunc: func(_ context.Context, userID string) ([]string, error) {
					if userID != "user-1" {
						t.Errorf("Expected user-1, got %q", userID)
					}
					return tt.series, tt.err
				},
			}

			rec := performRequest(NewRouter(s), http.MethodGet, "/users/user-1/series")

			if rec.Code != tt.expectedCode {
				t.Errorf("Expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if rec.Body.String() != tt.expectedBody {
				t.Errorf("Expected body %s, got %s", tt.expectedBody, rec.Body.String())
			}
		})
	}
}

func TestUsers(t *testing.T) {
	t.Run("listed", func(t *testing.T) {
		s := &mockStore{
			allFunc: func(context.Context) ([]*store.Record, error) {
				return []*store.Record{{UserID: "user-1", Series: []string{"naruto"}}}, nil
			},
		}

		rec := performRequest(NewRouter(s), http.MethodGet, "/users")

		expected := `[{"userId":"user-1","series":["naruto"]}]`
		if rec.Code != http.StatusOK || rec.Body.String() != expected {
			t.Errorf("Expected 200 %s, got %d %s", expected, rec.Code, rec.Body.String())
		}
	})

	t.Run("empty", func(t *testing.T) {
		s := &mockStore{
			allFunc: func(context.Context) ([]*store.Record, error) {
				return nil, nil
			},
		}

		rec := performRequest(NewRouter(s), http.MethodGet, "/users")

		if rec.Code != http.StatusOK || rec.Body.String() != "[]" {
			t.Errorf("Expected 200 [], got %d %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("store failure", func(t *testing.T) {
		s := &mockStore{
			allFunc: func(context.Context) ([]*store.Record, error) {
				return nil, store.NewError("all", errors.New("connection reset"))
			},
		}

		rec := performRequest(NewRouter(s), http.MethodGet, "/users")

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("Expected status 500, got %d", rec.Code)
		}
	})
}

func TestServe(t *testing.T) {
	t.Run("stops on cancellation", func(t *testing.T) {
		config := NewConfig()
		config.Addr = "127.0.0.1:0"

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- Serve(ctx, config, NewRouter(&mockStore{}))
		}()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Unexpected error: %+v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("Serve did not return after cancellation")
		}
	})

	t.Run("listen failure", func(t *testing.T) {
		config := NewConfig()
		config.Addr = "127.0.0.1:99999"

		if err := Serve(context.Background(), config, NewRouter(&mockStore{})); err == nil {
			t.Error("Expected an error for an invalid address")
		}
	})
}
