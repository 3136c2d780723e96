// Package dashboard serves pulse analytics over HTTP: a JSON API plus
// a minimal HTML overview page.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/felixgeelhaar/pulse/pkg/application"
	"github.com/felixgeelhaar/pulse/pkg/domain/analytics"
)

// DataProvider supplies analytics results for the dashboard.
type DataProvider interface {
	Health() (*analytics.HealthReport, error)
	Delays() ([]analytics.DelayPrediction, error)
	Forecast(sprintID string) (*analytics.SprintForecast, error)
	Risk() (*analytics.RiskRadar, error)
	Capacity(months int) (*analytics.CapacityForecast, error)
	FullReport(months int) (*application.Report, error)
}

// Server is the dashboard HTTP server.
type Server struct {
	addr     string
	provider DataProvider
	server   *http.Server
	tmpl     *template.Template
}

// NewServer creates a new dashboard server.
func NewServer(addr string, provider DataProvider) (*Server, error) {
	funcMap := template.FuncMap{
		"statusClass": statusClass,
		"formatTime":  formatTime,
	}

	tmpl, err := template.New("index").Funcs(funcMap).Parse(indexHTML)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	return &Server{
		addr:     addr,
		provider: provider,
		tmpl:     tmpl,
	}, nil
}

// Handler returns the route mux. Split out so tests can drive it with
// httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /", s.handleIndex)
	mux.HandleFunc("GET /api/health", s.handleAPIHealth)
	mux.HandleFunc("GET /api/delays", s.handleAPIDelays)
	mux.HandleFunc("GET /api/forecast", s.handleAPIForecast)
	mux.HandleFunc("GET /api/risk", s.handleAPIRisk)
	mux.HandleFunc("GET /api/capacity", s.handleAPICapacity)
	mux.HandleFunc("GET /api/report", s.handleAPIReport)

	return mux
}

// Start starts the dashboard server.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.Printf("Pulse dashboard starting on %s", s.addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// PageData holds data for template rendering.
type PageData struct {
	Title  string
	Health *analytics.HealthReport
	Risk   *analytics.RiskRadar
	Delays []analytics.DelayPrediction
	Error  string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := PageData{Title: "Pulse"}

	health, err := s.provider.Health()
	if err != nil {
		data.Error = err.Error()
	} else {
		data.Health = health
	}

	risk, _ := s.provider.Risk()
	data.Risk = risk

	delays, _ := s.provider.Delays()
	data.Delays = delays

	if err := s.tmpl.Execute(w, data); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) handleAPIHealth(w http.ResponseWriter, r *http.Request) {
	report, err := s.provider.Health()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, report)
}

func (s *Server) handleAPIDelays(w http.ResponseWriter, r *http.Request) {
	predictions, err := s.provider.Delays()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if predictions == nil {
		predictions = []analytics.DelayPrediction{}
	}
	writeJSON(w, predictions)
}

func (s *Server) handleAPIForecast(w http.ResponseWriter, r *http.Request) {
	forecast, err := s.provider.Forecast(r.URL.Query().Get("sprint"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, forecast)
}

func (s *Server) handleAPIRisk(w http.ResponseWriter, r *http.Request) {
	radar, err := s.provider.Risk()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, radar)
}

func (s *Server) handleAPICapacity(w http.ResponseWriter, r *http.Request) {
	months := 0
	if v := r.URL.Query().Get("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "months must be an integer", http.StatusBadRequest)
			return
		}
		months = n
	}

	forecast, err := s.provider.Capacity(months)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, forecast)
}

func (s *Server) handleAPIReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.provider.FullReport(0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, report)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Encode error: %v", err)
	}
}

// Template helper functions
func statusClass(status analytics.HealthStatus) string {
	switch status {
	case analytics.HealthHealthy:
		return "status-healthy"
	case analytics.HealthAtRisk:
		return "status-at-risk"
	case analytics.HealthCritical:
		return "status-critical"
	default:
		return "status-unknown"
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<title>{{.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; color: #222; }
h1 { margin-bottom: 0; }
.status-healthy { color: #1a7f37; }
.status-at-risk { color: #b35900; }
.status-critical { color: #c0392b; }
table { border-collapse: collapse; margin-top: 1rem; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.8rem; text-align: left; }
.error { color: #c0392b; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{if .Health}}
<h2 class="{{statusClass .Health.Status}}">Health: {{.Health.Overall}}/100 ({{.Health.Status}})</h2>
<p>{{.Health.Summary}}</p>
<p>Generated {{formatTime .Health.GeneratedAt}}</p>
<table>
<tr><th>Metric</th><th>Score</th><th>Status</th><th>Trend</th></tr>
{{range .Health.Metrics}}<tr><td>{{.Name}}</td><td>{{.Score}}</td><td>{{.Status}}</td><td>{{.Trend}}</td></tr>
{{end}}
</table>
{{end}}
{{if .Risk}}
<h2>Risk radar</h2>
<table>
<tr><th>Dimension</th><th>Score</th></tr>
{{range .Risk.Dimensions}}<tr><td>{{.Name}}</td><td>{{.Score}}</td></tr>
{{end}}
</table>
{{if .Risk.Insight}}<p>{{.Risk.Insight}}</p>{{end}}
{{end}}
{{if .Delays}}
<h2>Likely delays</h2>
<table>
<tr><th>Task</th><th>Probability</th><th>Days</th><th>Reasons</th></tr>
{{range .Delays}}<tr><td>{{.TaskTitle}}</td><td>{{.Probability}}%</td><td>{{.PredictedDelayDays}}</td><td>{{range .Reasons}}{{.}}; {{end}}</td></tr>
{{end}}
</table>
{{end}}
</body>
</html>`
