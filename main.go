package main

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"seo-audit-agent/agent"
	"seo-audit-agent/seo"
	"seo-audit-agent/tools"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	cfg, err := seo.LoadConfig(os.Getenv("SEO_CONFIG_FILE"))
	if err != nil {
		log.Fatal().Err(err).Msg("configuration rejected")
	}
	analyzer, err := seo.NewAnalyzer(cfg, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("analyzer construction failed")
	}

	toolbox := tools.New(analyzer)
	if endpoint := os.Getenv("SERP_ENDPOINT"); endpoint != "" {
		toolbox.SetSERPEndpoint(endpoint)
	}
	toolHandlers := tools.NewHandlers(toolbox)
	agentHandlers := agent.NewHandlers(agent.New(toolbox))

	routes := []struct {
		pattern string
		handler http.HandlerFunc
	}{
		// Tool endpoints
		{"/tools/meta", toolHandlers.Meta},
		{"/tools/speed", toolHandlers.Speed},
		{"/tools/broken-links", toolHandlers.BrokenLinks},
		{"/tools/serp", toolHandlers.SERP},
		{"/tools/keywords", toolHandlers.Keywords},
		{"/tools/page-backlinks", toolHandlers.PageBacklinks},
		{"/tools/links-by-category", toolHandlers.LinksByCategory},
		{"/tools/sitemap-parse", toolHandlers.SitemapParse},
		{"/tools/sitemap-crawl", toolHandlers.SitemapCrawl},
		{"/tools/urls-batch-analyze", toolHandlers.URLBatch},
		{"/tools/domain", toolHandlers.DomainInfo},

		// Agent workflows
		{"/agent/audit", agentHandlers.Audit},
		{"/agent/backlinks", agentHandlers.Backlinks},
		{"/agent/link-categorization", agentHandlers.LinkCategorization},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", statusHandler)
	for _, rt := range routes {
		mux.HandleFunc(rt.pattern, rt.handler)
		log.Info().Str("route", "POST "+rt.pattern).Msg("endpoint registered")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "*"
	}

	handler := corsMiddleware(requestLogger(mux), frontend)

	log.Info().Str("port", port).Msg("SEO agent service listening")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// statusHandler answers the root health probe.
func statusHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":   "SEO Agent Online",
		"docs_url": "/docs",
	})
}

// corsMiddleware sets the browser-facing headers the frontend needs and
// short-circuits preflight requests.
func corsMiddleware(next http.Handler, origin string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request served")
	})
}
