package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/dealership-sales-api/infrastructure/repository/mocks"
	"github.com/vfg2006/dealership-sales-api/internal/config"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func newDrift(id int64) *domain.SalespersonStatsDrift {
	return &domain.SalespersonStatsDrift{
		SalespersonID:   id,
		StoredSales:     5,
		StoredRevenue:   decimal.RequireFromString("100"),
		ComputedSales:   1,
		ComputedRevenue: decimal.RequireFromString("19500"),
	}
}

func TestStatsReconciliationService_Reconcile(t *testing.T) {
	fixedNow := time.Date(2025, 2, 1, 2, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		repair       bool
		setup        func(repo *mocks.MockSalespersonStatsRepository)
		wantErr      bool
		wantDrifts   int
		wantRepaired bool
	}{
		{
			name: "Sem divergências não tenta corrigir",
			setup: func(repo *mocks.MockSalespersonStatsRepository) {
				repo.EXPECT().FindStatsDrift(gomock.Any()).Return(nil, nil)
			},
			repair: true,
		},
		{
			name: "Com correção desabilitada apenas reporta",
			setup: func(repo *mocks.MockSalespersonStatsRepository) {
				repo.EXPECT().FindStatsDrift(gomock.Any()).Return([]*domain.SalespersonStatsDrift{newDrift(1), newDrift(2)}, nil)
			},
			wantDrifts: 2,
		},
		{
			name:   "Com correção habilitada sobrescreve os contadores",
			repair: true,
			setup: func(repo *mocks.MockSalespersonStatsRepository) {
				repo.EXPECT().FindStatsDrift(gomock.Any()).Return([]*domain.SalespersonStatsDrift{newDrift(1)}, nil)
				repo.EXPECT().RepairStatsDrift(gomock.Any(), fixedNow).Return([]*domain.SalespersonStatsDrift{newDrift(1)}, nil)
			},
			wantDrifts:   1,
			wantRepaired: true,
		},
		{
			name: "Erro na consulta é propagado",
			setup: func(repo *mocks.MockSalespersonStatsRepository) {
				repo.EXPECT().FindStatsDrift(gomock.Any()).Return(nil, errors.New("database is locked"))
			},
			wantErr: true,
		},
		{
			name:   "Erro na correção é propagado",
			repair: true,
			setup: func(repo *mocks.MockSalespersonStatsRepository) {
				repo.EXPECT().FindStatsDrift(gomock.Any()).Return([]*domain.SalespersonStatsDrift{newDrift(1)}, nil)
				repo.EXPECT().RepairStatsDrift(gomock.Any(), gomock.Any()).Return(nil, errors.New("deadlock detected"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockSalespersonStatsRepository(ctrl)
			tt.setup(repo)

			service := &StatsReconciliationService{
				config:    StatsReconciliationConfig{CronSchedule: "0 2 * * *", Repair: tt.repair},
				statsRepo: repo,
				now:       func() time.Time { return fixedNow },
			}

			result, ran, err := service.Reconcile(context.Background())
			assert.True(t, ran)

			status := service.GetStatus()
			assert.Equal(t, false, status["running"])
			assert.Equal(t, fixedNow, status["last_completed_at"])

			if tt.wantErr {
				require.Error(t, err)
				assert.NotEmpty(t, status["last_error"])
				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Len(t, result.Drifts, tt.wantDrifts)
			assert.Equal(t, tt.wantRepaired, result.Repaired)
			assert.Equal(t, fixedNow, result.RanAt)
			assert.Equal(t, tt.wantDrifts, status["last_drift_count"])
		})
	}
}

func TestStatsReconciliationService_SingleFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma chamada ao repositório é esperada
	repo := mocks.NewMockSalespersonStatsRepository(ctrl)
	service := &StatsReconciliationService{
		statsRepo: repo,
		running:   true,
		now:       time.Now,
	}

	result, ran, err := service.Reconcile(context.Background())
	assert.False(t, ran)
	assert.Nil(t, result)
	assert.NoError(t, err)

	service.TriggerManualSync()
	assert.Equal(t, true, service.GetStatus()["running"])
}

func TestStatsReconciliationService_Start(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockSalespersonStatsRepository(ctrl)

	t.Run("Desabilitado não agenda", func(t *testing.T) {
		cfg := &config.Config{StatsReconciliation: config.StatsReconciliation{CronSchedule: "0 2 * * *"}}
		service := NewStatsReconciliationService(repo, cfg)

		assert.NoError(t, service.Start(context.Background()))
		assert.Empty(t, service.scheduler.Jobs())
	})

	t.Run("Expressão cron inválida falha", func(t *testing.T) {
		cfg := &config.Config{StatsReconciliation: config.StatsReconciliation{CronSchedule: "todo dia", Enabled: true}}
		service := NewStatsReconciliationService(repo, cfg)

		assert.Error(t, service.Start(context.Background()))
	})

	t.Run("Habilitado agenda e para com o contexto", func(t *testing.T) {
		cfg := &config.Config{StatsReconciliation: config.StatsReconciliation{CronSchedule: "0 2 * * *", Enabled: true}}
		service := NewStatsReconciliationService(repo, cfg)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		require.NoError(t, service.Start(ctx))
		assert.Len(t, service.scheduler.Jobs(), 1)
	})
}
