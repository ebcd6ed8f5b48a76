package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/phillip/crowdcube-go/config"
	controllers "github.com/phillip/crowdcube-go/controllers"
	middleware "github.com/phillip/crowdcube-go/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRouteTable(t *testing.T) {
	r := NewEngine(&config.Config{DBName: config.DefaultDBName}, Integrations{})

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"GET /",
		"GET /campaign",
		"GET /campaigns",
		"GET /campaign/:id",
		"POST /campaign",
		"PUT /campaign/:id",
		"DELETE /campaign/:id",
		"POST /campaign/:id/image",
		"GET /user/campaigns",
		"POST /donate",
		"GET /myDonations",
		"PUT /users",
		"POST /users",
		"GET /users/:email",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestRootGreeting(t *testing.T) {
	r := NewEngine(&config.Config{DBName: config.DefaultDBName}, Integrations{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, controllers.Greeting, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	r := NewEngine(&config.Config{DBName: config.DefaultDBName}, Integrations{})

	req := httptest.NewRequest(http.MethodOptions, "/campaign", nil)
	req.Header.Set("Origin", "https://crowdcube.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
