package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealership-sales-api/internal/api/handler"
	"github.com/vfg2006/dealership-sales-api/internal/api/handler/router"
	"github.com/vfg2006/dealership-sales-api/internal/config"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/authenticating"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/selling"
	"github.com/vfg2006/dealership-sales-api/pkg/middleware"
)

const defaultShutdownTimeout = 15 * time.Second

type shutdownHook struct {
	name string
	fn   func() error
}

type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	shutdownHooks   []shutdownHook
}

func New(
	config *config.Config,
	saleRecorder selling.SaleRecorder,
	authenticator authenticating.Authenticator,
	statsReconciliationService handler.CronJob,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		StatsReconciliationService: statsReconciliationService,
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           NewHandler(config, saleRecorder, authenticator, cronServices),
			ReadHeaderTimeout: 2 * time.Second,
		},
		shutdownTimeout: defaultShutdownTimeout,
	}

	return srv, nil
}

// NewHandler monta as rotas com a cadeia de middlewares globais
func NewHandler(
	config *config.Config,
	saleRecorder selling.SaleRecorder,
	authenticator authenticating.Authenticator,
	cronServices handler.CronJobServices,
) http.Handler {
	rt := router.New(
		router.WithInstrumentation(middleware.RouteMetrics),
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Sales(saleRecorder)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(authenticator, config.Auth.Enabled),
	}

	return alice.New(middlewares...).Then(rt)
}

// OnShutdown registra uma limpeza executada depois que o servidor HTTP para de
// aceitar requisições, na ordem inversa do registro
func (s *Server) OnShutdown(name string, fn func() error) {
	s.shutdownHooks = append(s.shutdownHooks, shutdownHook{name: name, fn: fn})
}

// Run atende até receber SIGINT/SIGTERM ou até ctx ser cancelado. Um erro de
// ListenAndServe (porta ocupada, por exemplo) também encerra o servidor
func (s *Server) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	var runErr error
	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	case runErr = <-serveErr:
		logrus.WithError(runErr).Error("Erro durante a execução do servidor")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", s.shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return errors.Join(runErr, err)
	}

	logrus.Info("Servidor desligado com sucesso")
	return runErr
}

// Shutdown para o servidor HTTP e depois executa os hooks registrados. Todos
// os hooks rodam mesmo que algum falhe
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("Servidor HTTP desligado com sucesso")

	var errs []error
	for i := len(s.shutdownHooks) - 1; i >= 0; i-- {
		hook := s.shutdownHooks[i]
		if err := hook.fn(); err != nil {
			logrus.WithError(err).WithField("hook", hook.name).Error("Erro ao liberar recurso no desligamento")
			errs = append(errs, fmt.Errorf("%s: %w", hook.name, err))
			continue
		}
		logrus.WithField("hook", hook.name).Info("Recurso liberado")
	}

	return errors.Join(errs...)
}
