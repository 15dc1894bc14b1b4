// Package httpapi exposes the local HTTP interface the browser extension
// talks to: decision lookups, timer control, and rule management.
package httpapi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pagegate/internal/gate/common/log"
	"pagegate/internal/gate/domain"
	"pagegate/internal/gate/gateways/redirect"
	"pagegate/internal/gate/repos/rules"
	"pagegate/internal/gate/services/evaluator"
)

// Timer is the control surface the API needs from the Pomodoro timer.
type Timer interface {
	Start()
	Stop()
	Pause()
	Resume()
	Status() domain.TimerStatus
}

// Reloader re-reads rule lists from their configured source.
type Reloader interface {
	Reload() error
}

// Config carries the redirect contract settings surfaced in decide responses.
type Config struct {
	RedirectURL   string
	RedirectDelay int // seconds; zero means immediate
}

// Server wires HTTP handlers to the evaluator, timer, and rule repository.
type Server struct {
	router   chi.Router
	eval     *evaluator.Evaluator
	timer    Timer
	rules    rules.Repository
	reloader Reloader
	cfg      Config
	logger   log.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(eval *evaluator.Evaluator, timer Timer, repo rules.Repository, reloader Reloader, cfg Config, logger log.Logger) *Server {
	s := &Server{
		eval:     eval,
		timer:    timer,
		rules:    repo,
		reloader: reloader,
		cfg:      cfg,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/healthz", s.healthz)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/decide", s.decide)

		r.Route("/timer", func(r chi.Router) {
			r.Get("/", s.timerStatus)
			r.Post("/start", s.timerAction((*Server).startTimer))
			r.Post("/stop", s.timerAction((*Server).stopTimer))
			r.Post("/pause", s.timerAction((*Server).pauseTimer))
			r.Post("/resume", s.timerAction((*Server).resumeTimer))
		})

		r.Route("/rules", func(r chi.Router) {
			r.Get("/", s.getRules)
			r.Put("/", s.putRules)
			r.Post("/reload", s.reloadRules)
		})
	})

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decisionResponse is the decide endpoint payload. The redirect block is
// present only when the page is blocked and redirect mode is configured.
type decisionResponse struct {
	Blocked     bool              `json:"blocked"`
	MatchedRule string            `json:"matchedRule,omitempty"`
	Target      string            `json:"target"`
	Reason      string            `json:"reason"`
	Redirect    *redirectContract `json:"redirect,omitempty"`
}

type redirectContract struct {
	Target       string `json:"target"`
	DelaySeconds int    `json:"delaySeconds"`
}

func (s *Server) decide(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "missing url parameter")
		return
	}

	hostname, pathname := splitLocation(raw)
	d := s.eval.DecideRaw(hostname, pathname)

	resp := decisionResponse{
		Blocked:     d.Blocked,
		MatchedRule: d.MatchedRule,
		Target:      d.Target,
		Reason:      string(d.Reason),
	}
	if d.Blocked && s.cfg.RedirectURL != "" {
		plan := redirect.NewPlan(s.cfg.RedirectURL, s.cfg.RedirectDelay)
		resp.Redirect = &redirectContract{
			Target:       plan.Target,
			DelaySeconds: int(plan.Delay / time.Second),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// splitLocation extracts a hostname/pathname pair from a raw page URL.
// Unparseable input degrades to treating the leading token as the hostname
// with no further extraction; it never fails the request.
func splitLocation(raw string) (hostname, pathname string) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err == nil && u.Hostname() != "" {
		return u.Hostname(), u.EscapedPath()
	}
	s := strings.TrimSpace(raw)
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexByte(s, '/'); i >= 0 {
		return s[:i], s[i:]
	}
	return s, ""
}

type timerResponse struct {
	State            string `json:"state"`
	Active           bool   `json:"active"`
	RemainingSeconds int    `json:"remainingSeconds"`
	Cycle            int    `json:"cycle"`
}

func (s *Server) timerStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toTimerResponse(s.timer.Status()))
}

// timerAction wraps a timer mutation and responds with the resulting status.
func (s *Server) timerAction(fn func(*Server)) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		fn(s)
		writeJSON(w, http.StatusOK, toTimerResponse(s.timer.Status()))
	}
}

func (s *Server) startTimer()  { s.timer.Start() }
func (s *Server) stopTimer()   { s.timer.Stop() }
func (s *Server) pauseTimer()  { s.timer.Pause() }
func (s *Server) resumeTimer() { s.timer.Resume() }

func toTimerResponse(st domain.TimerStatus) timerResponse {
	return timerResponse{
		State:            string(st.State),
		Active:           st.Active,
		RemainingSeconds: int(st.Remaining / time.Second),
		Cycle:            st.Cycle,
	}
}

type rulesResponse struct {
	Blocked []string `json:"blocked"`
	Allowed []string `json:"allowed"`
	Version uint64   `json:"version"`
}

func (s *Server) getRules(w http.ResponseWriter, _ *http.Request) {
	blocked, allowed := s.rules.Snapshot()
	writeJSON(w, http.StatusOK, rulesResponse{
		Blocked: blocked.Strings(),
		Allowed: allowed.Strings(),
		Version: s.rules.RepoStats().Store.Version,
	})
}

type putRulesRequest struct {
	Blocked []string `json:"blocked"`
	Allowed []string `json:"allowed"`
}

func (s *Server) putRules(w http.ResponseWriter, r *http.Request) {
	var req putRulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := s.rules.Update(req.Blocked, req.Allowed); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.getRules(w, r)
}

func (s *Server) reloadRules(w http.ResponseWriter, r *http.Request) {
	if s.reloader == nil {
		writeError(w, http.StatusNotFound, "no rule files configured")
		return
	}
	if err := s.reloader.Reload(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.getRules(w, r)
}
