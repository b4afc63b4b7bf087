package app

import (
	"fmt"
	"net/http"

	"github.com/vk/gitgraphgo/internal/ctxlog"
)

// healthHandler reports that the server is up.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctxlog.FromContext(r.Context()).Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}
