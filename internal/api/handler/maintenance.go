package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/adsync-api/internal/scheduler"
	"github.com/vfg2006/adsync-api/pkg/apiErrors"
)

// MaintenanceRunner é a parte do agendador exposta para os administradores
type MaintenanceRunner interface {
	Trigger(task scheduler.Task) error
	Status() map[scheduler.Task]scheduler.TaskStatus
	Enabled() bool
}

type MaintenanceStatusResponse struct {
	Enabled bool                                    `json:"enabled"`
	Tasks   map[scheduler.Task]scheduler.TaskStatus `json:"tasks"`
}

// RunMaintenance dispara a tarefa em background, mesmo com o agendamento desligado
func RunMaintenance(runner MaintenanceRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		task := scheduler.Task(httprouter.ParamsFromContext(r.Context()).ByName("task"))
		if task == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tarefa não especificada", nil)
			return
		}

		if err := runner.Trigger(task); err != nil {
			if errors.Is(err, scheduler.ErrUnknownTask) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
				return
			}
			apiErrors.WriteFromError(w, err)
			return
		}

		logrus.WithField("task", task).Info("handler: maintenance triggered")

		writeJSON(w, http.StatusAccepted, map[string]string{
			"message": "Tarefa iniciada",
			"task":    string(task),
		})
	}
}

func MaintenanceStatus(runner MaintenanceRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, MaintenanceStatusResponse{
			Enabled: runner.Enabled(),
			Tasks:   runner.Status(),
		})
	}
}
