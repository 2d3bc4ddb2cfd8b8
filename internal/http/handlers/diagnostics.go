package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	statusRunning        = "✅ Running"
	statusNotAvailable   = "❌ Not Available"
	statusAvailable      = "✅ Available"
	statusNotInitialized = "⚠️  Available but not initialized"
	statusWorking        = "✅ Connected & Working"
	statusSet            = "✅ Set"
	statusNotSet         = "❌ Not Set"

	maxCollections = 10
	maxErrorText   = 50
)

// DatabaseInspector is the read-only view of the store the diagnostics need.
type DatabaseInspector interface {
	Name() string
	CollectionNames(ctx context.Context) ([]string, error)
}

type Diagnostics struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

type DiagnosticsHandler struct {
	db      DatabaseInspector
	urlSet  bool
	nameSet bool
	timeout time.Duration
}

// NewDiagnosticsHandler takes a nil db when no database is configured.
// urlSet and nameSet report whether the connection settings were provided.
func NewDiagnosticsHandler(db DatabaseInspector, urlSet, nameSet bool) *DiagnosticsHandler {
	return &DiagnosticsHandler{
		db:      db,
		urlSet:  urlSet,
		nameSet: nameSet,
		timeout: 3 * time.Second,
	}
}

func (h *DiagnosticsHandler) Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Hello from the tournament backend!"})
}

func (h *DiagnosticsHandler) Hello(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Hello from the backend API!"})
}

// Test reports backend and database status. It never fails; problems are
// described in the body.
func (h *DiagnosticsHandler) Test(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.inspect(ctx.Request.Context()))
}

func (h *DiagnosticsHandler) inspect(ctx context.Context) Diagnostics {
	out := Diagnostics{
		Backend:          statusRunning,
		Database:         statusNotAvailable,
		DatabaseURL:      setOrNot(h.urlSet),
		DatabaseName:     setOrNot(h.nameSet),
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}

	if h.db == nil {
		out.Database = statusNotInitialized
		return out
	}

	out.Database = statusAvailable
	out.ConnectionStatus = "Connected"

	cctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	names, err := h.db.CollectionNames(cctx)
	if err != nil {
		out.Database = "⚠️  Connected but Error: " + truncate(err.Error(), maxErrorText)
		return out
	}

	if len(names) > maxCollections {
		names = names[:maxCollections]
	}

	out.Collections = append(out.Collections, names...)
	out.Database = statusWorking

	return out
}

func setOrNot(ok bool) string {
	if ok {
		return statusSet
	}
	return statusNotSet
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
