package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"

	"sarpras-backend/docs"
	"sarpras-backend/internal/platform/auth"
	"sarpras-backend/internal/platform/db"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	conn := db.NewTestDB(t)
	cfg := &db.Config{Mode: "release", Version: "test"}
	authSvc := auth.NewService(conn, db.AuthConfig{JWTSecret: "test-secret"})
	return setupRouter(cfg, conn, authSvc)
}

var pathParam = regexp.MustCompile(`:(\w+)`)

// API 定義 (docs) と実際のルートが一致していること
func TestRoutesMatchSwaggerDoc(t *testing.T) {
	r := newTestEngine(t)

	raw, err := swag.ReadDoc()
	if err != nil {
		t.Fatalf("reading swagger doc: %v", err)
	}
	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("decoding swagger doc: %v", err)
	}
	if doc.BasePath != docs.SwaggerInfo.BasePath {
		t.Fatalf("basePath %q, want %q", doc.BasePath, docs.SwaggerInfo.BasePath)
	}

	documented := map[string]bool{}
	for p, ops := range doc.Paths {
		for m := range ops {
			documented[strings.ToUpper(m)+" "+p] = true
		}
	}

	registered := map[string]bool{}
	for _, rt := range r.Routes() {
		if !strings.HasPrefix(rt.Path, doc.BasePath+"/") {
			continue
		}
		p := pathParam.ReplaceAllString(strings.TrimPrefix(rt.Path, doc.BasePath), "{$1}")
		registered[rt.Method+" "+p] = true
	}

	var missing, stale []string
	for k := range registered {
		if !documented[k] {
			missing = append(missing, k)
		}
	}
	for k := range documented {
		if !registered[k] {
			stale = append(stale, k)
		}
	}
	sort.Strings(missing)
	sort.Strings(stale)
	if len(missing) > 0 {
		t.Errorf("routes without API doc (run go generate): %v", missing)
	}
	if len(stale) > 0 {
		t.Errorf("documented but not registered: %v", stale)
	}
	if !registered["DELETE /equipment/{id}"] {
		t.Error("DELETE /equipment/{id} not registered")
	}
}

func TestWriteRoutesRequireAuth(t *testing.T) {
	r := newTestEngine(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/equipment"},
		{http.MethodDelete, "/api/v1/equipment/1"},
		{http.MethodPost, "/api/v1/loans"},
		{http.MethodPost, "/api/v1/consumables/outbound"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", tc.method, tc.path, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/equipment", nil))
	if w.Code != http.StatusOK {
		t.Errorf("GET /api/v1/equipment: expected 200, got %d", w.Code)
	}
}
