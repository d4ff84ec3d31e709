package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/landlordlink/landlordlink-services/api/internal/config"
	commonhttp "github.com/landlordlink/landlordlink-services/api/internal/interfaces/http/common"
	publichttp "github.com/landlordlink/landlordlink-services/api/internal/interfaces/http/public"
	"github.com/landlordlink/landlordlink-services/api/internal/observability/metrics"
	"github.com/landlordlink/landlordlink-services/api/internal/submission/application"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server は HTTP サーバーのライフサイクルを管理し、送信ハンドラへ依存注入するコンポジションルート。
type Server struct {
	logger            *log.Logger
	store             application.Store
	submissionService application.SubmissionService
	registry          *prometheus.Registry
	addr              string
	allowedOrigins    []string
	validationStatus  int
	maxRequestBody    int64
}

// disconnecter is implemented by stores that hold a connection pool.
type disconnecter interface {
	Disconnect(ctx context.Context) error
}

// Run はHTTPサーバーを起動し、シグナル受信まで待機する。
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP サーバー起動: http://%s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	return waitForShutdown(httpServer, errChan, s)
}

// Handler はミドルウェアとルーティングを組み立てた http.Handler を返す。
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(commonhttp.Recoverer(s.logger))
	router.Use(withCORS(s.allowedOrigins))

	router.NotFound(s.failureHandler(http.StatusNotFound))
	router.MethodNotAllowed(s.failureHandler(http.StatusMethodNotAllowed))

	router.Get("/health", s.healthHandler())
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:           s.logger,
		Submissions:      s.submissionService,
		ValidationStatus: s.validationStatus,
		MaxRequestBody:   s.maxRequestBody,
	})
	publicHandler.Register(router)

	return router
}

const corsAllowMethods = "DELETE, GET, HEAD, OPTIONS, PATCH, POST, PUT"

// withCORS applies the API's CORS policy. With "*" every origin, method and header is allowed;
// the caller's Origin is echoed so credentialed requests keep working. Otherwise only the listed origins get CORS headers.
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}
	if len(allowed) == 0 {
		allowAll = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""

			if origin == "" || (!allowAll && !originAllowed(origin, allowed)) {
				if preflight {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if preflight {
				w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
				requested := strings.TrimSpace(r.Header.Get("Access-Control-Request-Headers"))
				if requested == "" {
					requested = "*"
				}
				w.Header().Set("Access-Control-Allow-Headers", requested)
				w.Header().Set("Access-Control-Max-Age", "600")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed は指定された Origin が許可リストに含まれるか判定する。
func originAllowed(origin string, allowed map[string]struct{}) bool {
	_, ok := allowed[origin]
	return ok
}

// healthHandler は固定の生存応答を返す。ストアへの疎通確認は行わない。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		commonhttp.WriteSuccess(s.logger, w, "OK", nil)
	}
}

// failureHandler はルーティング失敗を共通の失敗エンベロープで返す。
func (s *Server) failureHandler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		commonhttp.WriteFailure(s.logger, w, status, http.StatusText(status), nil)
	}
}

// shutdown は接続プールを持つストアをタイムアウト付きで切断する。
func (s *Server) shutdown(ctx context.Context) {
	closer, ok := s.store.(disconnecter)
	if !ok {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := closer.Disconnect(shutdownCtx); err != nil {
		s.logger.Printf("ストア切断時にエラー: %v", err)
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	case sig := <-sigChan:
		srv.logger.Printf("シグナル %s を受信。サーバー停止処理を開始します。", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("サーバー停止時にエラー: %v", err)
		}
	}

	srv.shutdown(context.Background())
	return runErr
}

// New は Config とストアを受け取り、アプリケーションサービスとハンドラを組み立てた Server を返す。
func New(cfg config.Config, store application.Store) *Server {
	logger := cfg.ServerLog
	if logger == nil {
		logger = log.New(os.Stdout, "[landlordlink-api] ", log.LstdFlags|log.Lshortfile)
	}

	registry := prometheus.NewRegistry()
	submissionMetrics := metrics.NewSubmissionMetrics(registry)

	return &Server{
		logger: logger,
		store:  store,
		submissionService: application.NewSubmissionService(application.Config{
			Store:        store,
			Metrics:      submissionMetrics,
			StoreTimeout: cfg.StoreTimeout,
		}),
		registry:         registry,
		addr:             cfg.Addr,
		allowedOrigins:   append([]string(nil), cfg.AllowedOrigins...),
		validationStatus: cfg.ValidationStatus,
		maxRequestBody:   cfg.MaxRequestBody,
	}
}
