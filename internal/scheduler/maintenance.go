package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/internal/config"
	"github.com/vfg2006/adsync-api/internal/usecases/auditing"
	"github.com/vfg2006/adsync-api/internal/usecases/caching"
	"github.com/vfg2006/adsync-api/internal/usecases/snapshotting"
)

type Task string

const (
	TaskCacheSweep    Task = "cache-sweep"
	TaskSnapshotPurge Task = "snapshot-purge"
	TaskAuditCleanup  Task = "audit-cleanup"
	TaskAll           Task = "all"
)

var ErrUnknownTask = errors.New("tarefa de manutenção desconhecida")

// MaintenanceConfig representa a configuração do agendador de manutenção
type MaintenanceConfig struct {
	Enabled           bool
	CacheSweepCron    string
	SnapshotPurgeCron string
	AuditCleanupCron  string
}

type TaskStatus struct {
	Running         bool       `json:"running"`
	Cron            string     `json:"cron"`
	LastStartedAt   *time.Time `json:"last_started_at,omitempty"`
	LastCompletedAt *time.Time `json:"last_completed_at,omitempty"`
	LastDeleted     int64      `json:"last_deleted"`
	LastError       string     `json:"last_error,omitempty"`
}

// MaintenanceService agenda as limpezas explícitas do núcleo: varredura do cache,
// expurgo de snapshots e limpeza da auditoria. Desligado por padrão; RunNow sempre funciona.
type MaintenanceService struct {
	scheduler *gocron.Scheduler
	config    MaintenanceConfig
	cache     caching.Cache
	snapshots snapshotting.Store
	audit     auditing.Log
	mutex     sync.Mutex
	status    map[Task]*TaskStatus
	now       func() time.Time
}

func NewMaintenanceService(appConfig *config.Config, cache caching.Cache, snapshots snapshotting.Store, audit auditing.Log) *MaintenanceService {
	maintenanceConfig := MaintenanceConfig{
		Enabled:           appConfig.Maintenance.Enabled,
		CacheSweepCron:    appConfig.Maintenance.CacheSweepCron,
		SnapshotPurgeCron: appConfig.Maintenance.SnapshotPurgeCron,
		AuditCleanupCron:  appConfig.Maintenance.AuditCleanupCron,
	}

	logrus.WithFields(logrus.Fields{
		"enabled":             maintenanceConfig.Enabled,
		"cache_sweep_cron":    maintenanceConfig.CacheSweepCron,
		"snapshot_purge_cron": maintenanceConfig.SnapshotPurgeCron,
		"audit_cleanup_cron":  maintenanceConfig.AuditCleanupCron,
	}).Info("scheduler: maintenance configuration loaded")

	return &MaintenanceService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    maintenanceConfig,
		cache:     cache,
		snapshots: snapshots,
		audit:     audit,
		status: map[Task]*TaskStatus{
			TaskCacheSweep:    {Cron: maintenanceConfig.CacheSweepCron},
			TaskSnapshotPurge: {Cron: maintenanceConfig.SnapshotPurgeCron},
			TaskAuditCleanup:  {Cron: maintenanceConfig.AuditCleanupCron},
		},
		now: time.Now,
	}
}

// Start agenda as tarefas quando habilitado e para o agendador quando ctx for cancelado
func (s *MaintenanceService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("scheduler: maintenance disabled by configuration")
		return nil
	}

	schedules := map[Task]string{
		TaskCacheSweep:    s.config.CacheSweepCron,
		TaskSnapshotPurge: s.config.SnapshotPurgeCron,
		TaskAuditCleanup:  s.config.AuditCleanupCron,
	}

	for task, cron := range schedules {
		if cron == "" {
			continue
		}

		_, err := s.scheduler.Cron(cron).Do(func() {
			if err := s.RunNow(ctx, task); err != nil {
				logrus.WithFields(logrus.Fields{
					"task":  task,
					"error": err.Error(),
				}).Error("scheduler: maintenance task failed")
			}
		})
		if err != nil {
			return fmt.Errorf("erro ao agendar %s: %w", task, err)
		}
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("scheduler: stopping maintenance")
		s.scheduler.Stop()
	}()

	return nil
}

// RunNow executa a tarefa de forma síncrona. Uma tarefa já em andamento é ignorada.
func (s *MaintenanceService) RunNow(ctx context.Context, task Task) error {
	if task == TaskAll {
		var errs []error
		for _, t := range []Task{TaskCacheSweep, TaskSnapshotPurge, TaskAuditCleanup} {
			if err := s.RunNow(ctx, t); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	run, err := s.runner(task)
	if err != nil {
		return err
	}

	if !s.begin(task) {
		logrus.WithField("task", task).Info("scheduler: task already running, skipping")
		return nil
	}

	deleted, err := run(ctx)
	s.finish(task, deleted, err)

	logrus.WithFields(logrus.Fields{
		"task":    task,
		"deleted": deleted,
	}).Info("scheduler: maintenance task finished")

	return err
}

// Trigger valida a tarefa e a executa em background
func (s *MaintenanceService) Trigger(task Task) error {
	if task != TaskAll {
		if _, err := s.runner(task); err != nil {
			return err
		}
	}

	go func() {
		if err := s.RunNow(context.Background(), task); err != nil {
			logrus.WithFields(logrus.Fields{
				"task":  task,
				"error": err.Error(),
			}).Error("scheduler: manual maintenance failed")
		}
	}()

	return nil
}

func (s *MaintenanceService) runner(task Task) (func(ctx context.Context) (int64, error), error) {
	switch task {
	case TaskCacheSweep:
		return func(ctx context.Context) (int64, error) {
			report := s.cache.Sweep(ctx)
			if failed := report.Failed(); len(failed) > 0 {
				logrus.WithField("failed", failed).Warn("scheduler: sweep finished with partial failures")
			}
			return report.TotalDeleted(), nil
		}, nil
	case TaskSnapshotPurge:
		return s.snapshots.Purge, nil
	case TaskAuditCleanup:
		return s.audit.Cleanup, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTask, task)
	}
}

func (s *MaintenanceService) begin(task Task) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	status := s.status[task]
	if status.Running {
		return false
	}

	startedAt := s.now()
	status.Running = true
	status.LastStartedAt = &startedAt
	return true
}

func (s *MaintenanceService) finish(task Task, deleted int64, err error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	completedAt := s.now()
	status := s.status[task]
	status.Running = false
	status.LastCompletedAt = &completedAt
	status.LastDeleted = deleted
	status.LastError = ""
	if err != nil {
		status.LastError = err.Error()
	}
}

// Status devolve uma cópia do estado de cada tarefa
func (s *MaintenanceService) Status() map[Task]TaskStatus {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	status := make(map[Task]TaskStatus, len(s.status))
	for task, current := range s.status {
		status[task] = *current
	}
	return status
}

func (s *MaintenanceService) Enabled() bool {
	return s.config.Enabled
}
