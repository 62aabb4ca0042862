package logger

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cat_adoption_server/internal/config"
)

func TestInitWritesToConfiguredFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.LogConfig{LogPath: dir, Level: "debug"}
	require.NoError(t, Init(cfg, "release"))
	defer zap.ReplaceGlobals(zap.NewNop())

	assert.Equal(t, filepath.Join(dir, "cat_adoption.log"), filepath.Clean(cfg.FileName))
	zap.L().Info("hello")
	assert.FileExists(t, cfg.FileName)
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	err := Init(&config.LogConfig{LogPath: t.TempDir(), Level: "loud"}, "release")
	assert.Error(t, err)
}

func TestGinRecoveryReturnsEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinLogger(), GinRecovery(false))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":1005`)
}
