package app

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image/png"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kegliz/qtranslate/internal/qrender"
	"github.com/kegliz/qtranslate/internal/router"
	"github.com/kegliz/qtranslate/internal/tservice"
	"github.com/kegliz/qtranslate/qc/translate"
)

const internalServerErrorMsg = "internal server error"

// handleHealth reports liveness and the build version.
func (a *appServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": a.version})
}

// handleTranslate rewrites the posted circuit onto the requested
// target basis.
func (a *appServer) handleTranslate(c *gin.Context) {
	l := router.LoggerFrom(c, a.logger)

	var req tservice.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := a.ts.Translate(l, &req)
	if err != nil {
		var unreachable *translate.BasisUnreachableError
		if errors.As(err, &unreachable) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, translate.ErrBudgetExceeded) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// handleLibrary lists the (name, arity) keys the session library holds.
func (a *appServer) handleLibrary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"keys": a.ts.LibraryKeys()})
}

// handleRender returns a PNG diagram of the posted circuit, base64
// encoded.
func (a *appServer) handleRender(c *gin.Context) {
	l := router.LoggerFrom(c, a.logger)

	var spec tservice.CircuitSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	circ, err := a.ts.Decode(spec)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	img := qrender.NewDefaultRenderer().RenderCircuit(circ)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		l.Error().Err(err).Msg("png encoding failed")
		c.String(http.StatusInternalServerError, internalServerErrorMsg)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"image": base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
}
