package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	config "github.com/phillip/crowdcube-go/config"
)

const testDB = "crowdcubedb"

func init() {
	gin.SetMode(gin.TestMode)
}

func newMockT(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func testConfig(mt *mtest.T) *config.Config {
	return &config.Config{
		DBName:         testDB,
		MongoClient:    mt.Client,
		RequestTimeout: 5 * time.Second,
	}
}

func ns(collection string) string {
	return testDB + "." + collection
}

// perform sends body as JSON unless it is already a string.
func perform(h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t testing.TB, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), "body: %s", w.Body.String())
}

// firstUpdate digs the first update statement out of an update command.
func firstUpdate(cmd bson.Raw) bson.Raw {
	return cmd.Lookup("updates").Array().Index(0).Value().Document()
}

func storageError() bson.D {
	return mtest.CreateCommandErrorResponse(mtest.CommandError{
		Code:    2,
		Name:    "BadValue",
		Message: "storage exploded",
	})
}
