package http

import (
	"context"
	stderrors "errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/reshetovitsme/portfolio-feed/internal/modules/feed/domain"
	feedService "github.com/reshetovitsme/portfolio-feed/internal/modules/feed/service"
	"github.com/reshetovitsme/portfolio-feed/internal/shared/config"
	"github.com/reshetovitsme/portfolio-feed/internal/shared/errors"
	sloghttp "github.com/samber/slog-http"
)

// Server serves the site feeds over HTTP
type Server struct {
	cfg         *config.Config
	feedService *feedService.Service
	logger      *slog.Logger

	mu     sync.Mutex
	server *http.Server
}

// New creates a new HTTP server
func New(cfg *config.Config, feedService *feedService.Service) *Server {
	return &Server{
		cfg:         cfg,
		feedService: feedService,
		logger:      slog.Default(),
	}
}

// SetLogger sets the logger
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Handler returns the routed handler wrapped in recovery and access logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /rss.xml", s.feedHandler(domain.FormatRss))
	mux.HandleFunc("GET /atom.xml", s.feedHandler(domain.FormatAtom))
	mux.HandleFunc("GET /feed.json", s.feedHandler(domain.FormatJson))
	mux.HandleFunc("GET /feed/{format}", s.handleFeedByName)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleRoot)

	handler := sloghttp.Recovery(mux)
	return sloghttp.New(s.logger)(handler)
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.cfg.HTTPPort)
	s.logger.Info("Feed server starting", "addr", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.mu.Lock()
	s.server = server
	s.mu.Unlock()

	if err := server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	server := s.server
	s.mu.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

func (s *Server) feedHandler(format domain.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeFeed(w, r, format)
	}
}

func (s *Server) handleFeedByName(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("format")
	format, err := domain.ParseFormat(name)
	if err != nil {
		http.Error(w, "Unknown feed format", http.StatusNotFound)
		return
	}
	s.writeFeed(w, r, format)
}

func (s *Server) writeFeed(w http.ResponseWriter, r *http.Request, format domain.Format) {
	doc, err := s.feedService.Feed(r.Context(), format)
	if err != nil {
		if stderrors.Is(err, errors.ErrUnsupportedFormat) {
			http.Error(w, "Unknown feed format", http.StatusNotFound)
			return
		}
		s.logger.Error("Error generating feed", "format", format, "error", err)
		http.Error(w, "Failed to generate feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc.Body))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

var rootPage = template.Must(template.New("root").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>{{.Title}} feeds</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 800px; margin: 50px auto; padding: 20px; }
        h1 { color: #333; }
        .info { background: #f5f5f5; padding: 15px; border-radius: 5px; margin: 20px 0; }
        code { background: #e8e8e8; padding: 2px 6px; border-radius: 3px; }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    <div class="info">
        <p>{{.Description}}</p>
        <ul>
            <li>RSS 2.0: <a href="{{.RSS}}"><code>{{.RSS}}</code></a></li>
            <li>Atom 1.0: <a href="{{.Atom}}"><code>{{.Atom}}</code></a></li>
            <li>JSON Feed: <a href="{{.JSON}}"><code>{{.JSON}}</code></a></li>
        </ul>
    </div>
    <p><a href="/health">Health Check</a></p>
</body>
</html>`))

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	urls := s.feedService.URLs()
	data := map[string]string{
		"Title":       s.cfg.SiteTitle,
		"Description": s.cfg.SiteDescription,
		"RSS":         urls[domain.FormatRss],
		"Atom":        urls[domain.FormatAtom],
		"JSON":        urls[domain.FormatJson],
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := rootPage.Execute(w, data); err != nil {
		s.logger.Error("Error rendering index", "error", err)
	}
}
