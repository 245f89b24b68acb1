package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/skotchmaster/storefront/internal/models"
	"github.com/skotchmaster/storefront/internal/service"
	"github.com/skotchmaster/storefront/internal/store"
)

var testSecret = []byte("test_secret")

type testEnv struct {
	T *testing.T
	E *echo.Echo
}

func newTestEnv(t *testing.T) *testEnv {
	e := echo.New()

	catalogSvc := service.NewCatalogService(store.NewMemoryProductStore())
	authSvc := service.NewAuthService(store.NewMemoryUserStore(), testSecret, bcrypt.MinCost)

	deps := Deps{
		CatalogHandler: &CatalogHTTP{Svc: catalogSvc},
		AuthHandler:    &AuthHTTP{Svc: authSvc},
		JWTSecret:      testSecret,
	}
	Register(e, &deps)

	return &testEnv{T: t, E: e}
}

func (env *testEnv) doJSON(method, path string, body any, headers ...http.Header) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, h := range headers {
		for k, vs := range h {
			for _, v := range vs {
				req.Header.Add(k, v)
			}
		}
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func mugPayload() map[string]any {
	return map[string]any{
		"name":        "Mug",
		"price":       9.99,
		"image":       "mug.png",
		"description": "A mug",
	}
}

func TestProductLifecycle(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodPost, "/products", mugPayload())
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, uint(1), created.ID)
	require.Equal(t, "Mug", created.Name)

	rec = env.doJSON(http.MethodGet, "/products/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, created, got)

	rec = env.doJSON(http.MethodDelete, "/products/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var delResp struct {
		Message string           `json:"message"`
		Deleted []models.Product `json:"deleted"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &delResp))
	require.Equal(t, "Product deleted", delResp.Message)
	require.Len(t, delResp.Deleted, 1)
	require.Equal(t, created, delResp.Deleted[0])

	rec = env.doJSON(http.MethodGet, "/products/1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProductsEmpty(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateProductMissingFields(t *testing.T) {
	env := newTestEnv(t)

	payload := mugPayload()
	delete(payload, "description")
	rec := env.doJSON(http.MethodPost, "/products", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "All fields required")
}

func TestUpdateProductPartial(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodPost, "/products", mugPayload())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(http.MethodPut, "/products/1", map[string]any{"price": 12.5})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, 12.5, updated.Price)
	require.Equal(t, "Mug", updated.Name)
	require.Equal(t, "mug.png", updated.Image)
	require.Equal(t, "A mug", updated.Description)
}

func TestUpdateProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodPut, "/products/42", map[string]any{"price": 12.5})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Product not found")
}

func TestSignupAndLogin(t *testing.T) {
	env := newTestEnv(t)

	creds := map[string]string{"username": "alice", "password": "password"}

	rec := env.doJSON(http.MethodPost, "/api/signup", creds)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), "User created successfully")

	rec = env.doJSON(http.MethodPost, "/api/login", creds)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Login successful", resp.Message)
	require.NotEmpty(t, resp.Token)
}

func TestSignupValidationAndConflict(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodPost, "/api/signup", map[string]string{"username": "alice"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Username & password required")

	creds := map[string]string{"username": "alice", "password": "password"}
	rec = env.doJSON(http.MethodPost, "/api/signup", creds)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(http.MethodPost, "/api/signup", creds)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "User already exists")
}

func TestLoginFailuresSameMessage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodPost, "/api/signup", map[string]string{"username": "alice", "password": "password"})
	require.Equal(t, http.StatusCreated, rec.Code)

	recUnknown := env.doJSON(http.MethodPost, "/api/login", map[string]string{"username": "bob", "password": "password"})
	recWrongPw := env.doJSON(http.MethodPost, "/api/login", map[string]string{"username": "alice", "password": "wrong"})

	require.Equal(t, http.StatusBadRequest, recUnknown.Code)
	require.Equal(t, http.StatusBadRequest, recWrongPw.Code)
	require.Equal(t, recUnknown.Body.String(), recWrongPw.Body.String())
}

func TestMeRequiresValidToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodGet, "/api/me", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSON(http.MethodGet, "/api/me", nil, http.Header{
		echo.HeaderAuthorization: []string{"Bearer not.a.token"},
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	creds := map[string]string{"username": "alice", "password": "password"}
	require.Equal(t, http.StatusCreated, env.doJSON(http.MethodPost, "/api/signup", creds).Code)

	recLogin := env.doJSON(http.MethodPost, "/api/login", creds)
	require.Equal(t, http.StatusOK, recLogin.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(recLogin.Body.Bytes(), &login))

	rec = env.doJSON(http.MethodGet, "/api/me", nil, http.Header{
		echo.HeaderAuthorization: []string{fmt.Sprintf("Bearer %s", login.Token)},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	require.Equal(t, uint(1), me.ID)
	require.Equal(t, "alice", me.Username)
}
