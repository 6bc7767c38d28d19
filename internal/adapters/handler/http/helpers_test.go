package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/adapters/catalog"
	adapterHTTP "github.com/comitanigiacomo/kanso-routine-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/services"
)

const testUserID = "user-1"

type testEnv struct {
	router *gin.Engine
	users  *repository.InMemoryUserRepository
	states *repository.InMemoryStateRepository
}

// setupRouter wires the protected handlers on in-memory stores. The user id
// comes from the X-User-ID header instead of a bearer token.
func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := repository.NewInMemoryUserRepository()
	states := repository.NewInMemoryStateRepository()

	user, err := domain.NewUser(testUserID, "tester")
	require.NoError(t, err)
	require.NoError(t, users.Create(t.Context(), user))

	store := services.NewStateStore(states)
	authService := services.NewAuthService(users)
	routineService := services.NewRoutineService(store, catalog.Default())
	recordService := services.NewRecordService(store, catalog.Default(), nil)
	statsService := services.NewStatsService(store, users)
	catalogService := services.NewCatalogService(catalog.Default())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set(middleware.ContextUserIDKey, userID)
		}
		c.Next()
	})

	api := r.Group("/api/v1")
	adapterHTTP.NewMeHandler(authService, routineService).RegisterRoutes(api)
	adapterHTTP.NewRoutineHandler(routineService).RegisterRoutes(api)
	adapterHTTP.NewRecordHandler(recordService).RegisterRoutes(api)
	adapterHTTP.NewCatalogHandler(catalogService).RegisterRoutes(api)
	adapterHTTP.NewStatsHandler(statsService).RegisterRoutes(api)

	return &testEnv{router: r, users: users, states: states}
}

func (e *testEnv) do(method, path string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req, _ := http.NewRequest(method, "/api/v1"+path, &body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", testUserID)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type errorBody struct {
	Error      string `json:"error"`
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
}
