package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogadmin.cl/app/internal/http/flash"
	"catalogadmin.cl/app/internal/shared/apperr"
	"catalogadmin.cl/app/pkg/view"
)

func testEngine() (*gin.Engine, *flash.Codec) {
	r, codec, _ := loggedEngine()
	return r, codec
}

func loggedEngine() (*gin.Engine, *flash.Codec, *bytes.Buffer) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	codec := flash.NewCodec([]byte("k"), "flash", false)

	r := gin.New()
	r.Use(RequestID(), AccessLog(l), Recovery(l), ErrorHandler(l), Flash(codec, l))
	r.GET("/api/missing", func(c *gin.Context) { Fail(c, apperr.NotFoundErr("Producto no encontrado.")) })
	r.GET("/page/boom", func(c *gin.Context) { Fail(c, errors.New("db down")) })
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })
	r.GET("/admin/productos/:seccion", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/flash", func(c *gin.Context) {
		if f := GetFlash(c); f != nil {
			c.String(http.StatusOK, string(f.Kind)+":"+f.Message)
			return
		}
		c.String(http.StatusOK, "none")
	})
	return r, codec, &buf
}

func logLines(t *testing.T, buf *bytes.Buffer, msg string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		if m["msg"] == msg {
			out = append(out, m)
		}
	}
	return out
}

func TestErrorHandler_JSON(t *testing.T) {
	r, _ := testEngine()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/missing", nil)
	req.Header.Set(HeaderRequestID, "rid-42")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Producto no encontrado.","request_id":"rid-42"}`, w.Body.String())
	assert.Equal(t, "rid-42", w.Header().Get(HeaderRequestID))
}

func TestErrorHandler_HTMLHidesInternalError(t *testing.T) {
	r, _ := testEngine()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Ocurrió un error inesperado.")
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestRecovery(t *testing.T) {
	r, _ := testEngine()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set("Accept", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "kaboom")
}

func TestFlash_ReadsAndClears(t *testing.T) {
	r, codec := testEngine()
	v, err := codec.Encode(view.Flash{Kind: view.FlashSuccess, Message: "Guardado"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/flash", nil)
	req.AddCookie(&http.Cookie{Name: "flash", Value: v})
	r.ServeHTTP(w, req)

	assert.Equal(t, "success:Guardado", w.Body.String())
	cleared := false
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "flash" && ck.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestFlash_RejectsTamperedCookie(t *testing.T) {
	r, _, buf := loggedEngine()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/flash", nil)
	req.AddCookie(&http.Cookie{Name: "flash", Value: "eyJ9.bad"})
	r.ServeHTTP(w, req)

	assert.Equal(t, "none", w.Body.String())
	assert.Len(t, logLines(t, buf, "flash_rejected"), 1)
	expired := false
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "flash" && ck.MaxAge < 0 {
			expired = true
		}
	}
	assert.True(t, expired)
}

func TestRequestID_AssignsUUID(t *testing.T) {
	r, _ := testEngine()
	for _, incoming := range []string{"", strings.Repeat("a", 65), "rid 42\r\nx: y", "<script>"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/flash", nil)
		if incoming != "" {
			req.Header.Set(HeaderRequestID, incoming)
		}
		r.ServeHTTP(w, req)

		rid := w.Header().Get(HeaderRequestID)
		_, err := uuid.Parse(rid)
		assert.NoError(t, err, "incoming %q", incoming)
	}
}

func TestAccessLog_LogsRouteNotRawPath(t *testing.T) {
	r, _, buf := loggedEngine()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/productos/cuidado-capilar?token=secreto", nil)
	req.Header.Set(HeaderRequestID, "rid-7")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	lines := logLines(t, buf, "http_request")
	require.Len(t, lines, 1)
	assert.Equal(t, "/admin/productos/:seccion", lines[0]["route"])
	assert.Equal(t, "cuidado-capilar", lines[0]["section"])
	assert.Equal(t, "rid-7", lines[0]["request_id"])
	assert.NotContains(t, buf.String(), "secreto")
}

func TestAccessLog_UnmatchedRoute(t *testing.T) {
	r, _, buf := loggedEngine()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/wp-admin/x.php", nil))

	lines := logLines(t, buf, "http_request")
	require.Len(t, lines, 1)
	assert.Equal(t, unmatchedRoute, lines[0]["route"])
	assert.NotContains(t, buf.String(), "wp-admin")
}

func TestWantsJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/productos/x", nil)
	assert.False(t, WantsJSON(c))

	c.Request.Header.Set("Accept", "application/json")
	assert.True(t, WantsJSON(c))

	c.Request = httptest.NewRequest(http.MethodGet, "/api/admin/productos/x", nil)
	assert.True(t, WantsJSON(c))
}
