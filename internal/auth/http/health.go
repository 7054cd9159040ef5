package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/familytree/internal/auth/store"
	"github.com/aussiebroadwan/familytree/pkg/authsdk"
	"github.com/aussiebroadwan/familytree/pkg/httpx"
)

// Checker is anything readiness can probe without a request context.
type Checker interface{ Validate() error }

type health struct {
	started time.Time
	version string
}

func (h health) response(status string) authsdk.HealthResponse {
	return authsdk.HealthResponse{
		Status:  status,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
		Version: h.version,
	}
}

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Always 200 while the process is serving.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	h := health{started: startTime, version: version}
	return func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, h.response("ok"))
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Reports whether the client store answers and the signing key is usable.
//	@Description	Any failing check turns the response into 503 "degraded".
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"one or more checks failed"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store, signer Checker) http.HandlerFunc {
	h := health{started: startTime, version: version}

	check := func(err error) string {
		if err != nil {
			return "error: " + err.Error()
		}
		return "ok"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		checks := &authsdk.HealthChecks{
			Store:  check(st.Ping(r.Context())),
			Signer: check(signer.Validate()),
		}

		status, code := "ok", http.StatusOK
		if checks.Store != "ok" || checks.Signer != "ok" {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		resp := h.response(status)
		resp.Checks = checks
		httpx.WriteJSON(w, code, resp)
	}
}
