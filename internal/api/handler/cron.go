package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
)

// CronJobTypeStatsReconciliation identifica a conferência das estatísticas dos vendedores
const CronJobTypeStatsReconciliation = "stats-reconciliation"

// CronJob é uma tarefa agendada que também pode ser disparada manualmente
type CronJob interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	StatsReconciliationService CronJob
}

func (s CronJobServices) byType(cronType string) (CronJob, bool) {
	switch cronType {
	case CronJobTypeStatsReconciliation:
		return s.StatsReconciliationService, s.StatsReconciliationService != nil
	default:
		return nil, false
	}
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		job, ok := services.byType(cronType)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrUnknownScheduledTask, "Tipo de cron job inválido. Valores aceitos: "+CronJobTypeStatsReconciliation, nil)
			return
		}

		job.TriggerManualSync()

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{}
		if services.StatsReconciliationService != nil {
			status[CronJobTypeStatsReconciliation] = services.StatsReconciliationService.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
