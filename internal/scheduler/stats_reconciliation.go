package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealership-sales-api/infrastructure/repository"
	"github.com/vfg2006/dealership-sales-api/internal/config"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
)

var statsDriftDetected = promauto.NewCounter(prometheus.CounterOpts{
	Name: "dealership_stats_drift_detected_total",
	Help: "Vendedores com total_sales ou total_revenue divergentes das vendas confirmadas",
})

// StatsReconciliationConfig representa a configuração da conferência das estatísticas dos vendedores
type StatsReconciliationConfig struct {
	CronSchedule string
	Enabled      bool
	Repair       bool
}

// StatsReconciliationService confere periodicamente os contadores dos
// vendedores contra a tabela de vendas e, se configurado, corrige as divergências
type StatsReconciliationService struct {
	scheduler       *gocron.Scheduler
	config          StatsReconciliationConfig
	statsRepo       repository.SalespersonStatsRepository
	running         bool
	mutex           sync.Mutex
	lastStartedAt   time.Time
	lastCompletedAt time.Time
	lastResult      *domain.ReconciliationResult
	lastError       string
	now             func() time.Time
}

func NewStatsReconciliationService(
	statsRepo repository.SalespersonStatsRepository,
	appConfig *config.Config,
) *StatsReconciliationService {
	reconciliationConfig := StatsReconciliationConfig{
		CronSchedule: appConfig.StatsReconciliation.CronSchedule,
		Enabled:      appConfig.StatsReconciliation.Enabled,
		Repair:       appConfig.StatsReconciliation.Repair,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": reconciliationConfig.CronSchedule,
		"enabled":       reconciliationConfig.Enabled,
		"repair":        reconciliationConfig.Repair,
	}).Info("Configuração da conferência de estatísticas dos vendedores carregada")

	return &StatsReconciliationService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    reconciliationConfig,
		statsRepo: statsRepo,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Start inicia o agendador
func (s *StatsReconciliationService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Conferência de estatísticas dos vendedores desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador da conferência de estatísticas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.run(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar conferência de estatísticas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador da conferência de estatísticas")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *StatsReconciliationService) run(ctx context.Context) {
	if _, _, err := s.Reconcile(ctx); err != nil {
		logrus.WithError(err).Error("Erro na conferência de estatísticas dos vendedores")
	}
}

// Reconcile executa uma conferência. ran é false quando outra execução já
// está em andamento, e nesse caso nada é feito
func (s *StatsReconciliationService) Reconcile(ctx context.Context) (result *domain.ReconciliationResult, ran bool, err error) {
	s.mutex.Lock()
	if s.running {
		s.mutex.Unlock()
		logrus.Info("Conferência de estatísticas já em andamento, ignorando")
		return nil, false, nil
	}
	s.running = true
	s.lastStartedAt = s.now()
	s.mutex.Unlock()

	defer func() {
		s.mutex.Lock()
		s.running = false
		s.lastCompletedAt = s.now()
		s.lastResult = result
		s.lastError = ""
		if err != nil {
			s.lastError = err.Error()
		}
		s.mutex.Unlock()
	}()

	drifts, err := s.statsRepo.FindStatsDrift(ctx)
	if err != nil {
		return nil, true, fmt.Errorf("erro ao buscar divergências: %w", err)
	}

	result = &domain.ReconciliationResult{
		Drifts: drifts,
		RanAt:  s.now(),
	}

	if len(drifts) == 0 {
		logrus.Info("Estatísticas dos vendedores conferem com as vendas")
		return result, true, nil
	}

	statsDriftDetected.Add(float64(len(drifts)))
	for _, drift := range drifts {
		logrus.WithFields(logrus.Fields{
			"salesperson_id":   drift.SalespersonID,
			"stored_sales":     drift.StoredSales,
			"computed_sales":   drift.ComputedSales,
			"stored_revenue":   drift.StoredRevenue.StringFixed(2),
			"computed_revenue": drift.ComputedRevenue.StringFixed(2),
		}).Warn("Divergência nas estatísticas do vendedor")
	}

	if !s.config.Repair {
		return result, true, nil
	}

	repaired, err := s.statsRepo.RepairStatsDrift(ctx, result.RanAt)
	if err != nil {
		return result, true, fmt.Errorf("erro ao corrigir divergências: %w", err)
	}

	result.Drifts = repaired
	result.Repaired = true
	logrus.WithField("quantity", len(repaired)).Info("Estatísticas dos vendedores corrigidas")

	return result, true, nil
}

// TriggerManualSync dispara uma conferência fora do agendamento
func (s *StatsReconciliationService) TriggerManualSync() {
	s.mutex.Lock()
	if s.running {
		s.mutex.Unlock()
		logrus.Info("Conferência de estatísticas já em andamento, ignorando solicitação manual")
		return
	}
	s.mutex.Unlock()

	logrus.Info("Iniciando conferência manual de estatísticas dos vendedores")
	go s.run(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *StatsReconciliationService) GetStatus() map[string]any {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	status := map[string]any{
		"enabled":           s.config.Enabled,
		"cron":              s.config.CronSchedule,
		"repair":            s.config.Repair,
		"running":           s.running,
		"last_started_at":   s.lastStartedAt,
		"last_completed_at": s.lastCompletedAt,
	}
	if s.lastResult != nil {
		status["last_drift_count"] = len(s.lastResult.Drifts)
		status["last_repaired"] = s.lastResult.Repaired
	}
	if s.lastError != "" {
		status["last_error"] = s.lastError
	}

	return status
}
