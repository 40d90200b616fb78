// Package scheduler - фоновые задачи сервиса: синхронизация каталога,
// обновление курса валюты и уборка брошенных заказов.
package scheduler

import (
	"context"
	"time"

	"github.com/fsdevblog/simka/internal/service"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

type Config struct {
	// SyncDelay - пауза перед стартовой синхронизацией каталога, чтобы не
	// долбить вендора при рестартах в crash-loop.
	SyncDelay time.Duration
	// SyncInterval - период полной синхронизации каталога.
	SyncInterval time.Duration
	// RateInterval - период обновления курса (работает только при включенном
	// auto_update_rate).
	RateInterval time.Duration
	// SweepInterval - период уборки просроченных PENDING заказов.
	SweepInterval time.Duration
	// PendingTTL - сколько PENDING заказ живет до отмены.
	PendingTTL time.Duration
}

func DefaultConfig() Config {
	return Config{
		SyncDelay:     30 * time.Second, //nolint:mnd
		SyncInterval:  6 * time.Hour,    //nolint:mnd
		RateInterval:  24 * time.Hour,   //nolint:mnd
		SweepInterval: time.Hour,
		PendingTTL:    2 * time.Hour, //nolint:mnd
	}
}

type Scheduler struct {
	catalog *service.CatalogService
	pricing *service.PricingService
	orders  *service.OrderService
	conf    Config
	l       *logrus.Entry

	syncRunning  atomic.Bool
	sweepRunning atomic.Bool
}

func New(
	catalog *service.CatalogService,
	pricing *service.PricingService,
	orders *service.OrderService,
	conf Config,
	l *logrus.Logger,
) *Scheduler {
	return &Scheduler{
		catalog: catalog,
		pricing: pricing,
		orders:  orders,
		conf:    conf,
		l:       l.WithField("component", "scheduler"),
	}
}

// Start запускает все фоновые циклы. Блокируется до отмены контекста.
func (s *Scheduler) Start(ctx context.Context) {
	go s.syncLoop(ctx)
	go s.rateLoop(ctx)
	go s.sweepLoop(ctx)
	<-ctx.Done()
}

func (s *Scheduler) syncLoop(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(s.conf.SyncDelay):
	}
	s.runSync(ctx)

	ticker := time.NewTicker(s.conf.SyncInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runSync(ctx)
		}
	}
}

func (s *Scheduler) rateLoop(ctx context.Context) {
	ticker := time.NewTicker(s.conf.RateInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.pricing.AutoUpdateEnabled(ctx) {
				continue
			}
			rate, err := s.pricing.RefreshRate(ctx)
			if err != nil {
				s.l.WithError(err).Warn("rate refresh failed, keeping previous rate")
				continue
			}
			s.l.WithField("rate", rate.String()).Info("exchange rate updated")
		}
	}
}

func (s *Scheduler) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(s.conf.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runSweep(ctx)
		}
	}
}

// runSync выполняет синхронизацию каталога, пропуская запуск если предыдущий
// еще не закончился.
func (s *Scheduler) runSync(ctx context.Context) {
	if !s.syncRunning.CompareAndSwap(false, true) {
		s.l.Warn("catalog sync is already running, skipping")
		return
	}
	defer s.syncRunning.Store(false)

	report, err := s.catalog.Sync(ctx)
	if err != nil {
		s.l.WithError(err).Error("catalog sync failed")
		return
	}
	s.l.WithFields(logrus.Fields{
		"synced": report.Synced,
		"errors": report.Errors,
	}).Info("catalog sync finished")
}

func (s *Scheduler) runSweep(ctx context.Context) {
	if !s.sweepRunning.CompareAndSwap(false, true) {
		return
	}
	defer s.sweepRunning.Store(false)

	cancelled, err := s.orders.CancelExpired(ctx, s.conf.PendingTTL)
	if err != nil {
		s.l.WithError(err).Error("expired orders sweep failed")
		return
	}
	if cancelled > 0 {
		s.l.WithField("cancelled", cancelled).Info("expired orders cancelled")
	}
}
