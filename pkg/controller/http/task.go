package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mindverse-hq/taskdeck/pkg/domain/model"
	"github.com/mindverse-hq/taskdeck/pkg/domain/types"
	"github.com/mindverse-hq/taskdeck/pkg/usecase"
)

func createTaskHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input usecase.CreateTaskInput
		if err := decodeJSON(r, &input); err != nil {
			handleError(r.Context(), w, err)
			return
		}

		task, err := uc.Task.Create(r.Context(), &input)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		respondJSON(r.Context(), w, http.StatusCreated, task)
	}
}

func listTasksHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tasks, err := uc.Task.List(r.Context())
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		respondJSON(r.Context(), w, http.StatusOK, tasks)
	}
}

func getTaskHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.TaskID(chi.URLParam(r, "taskID"))

		task, err := uc.Task.Get(r.Context(), id)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		respondJSON(r.Context(), w, http.StatusOK, task)
	}
}

func updateTaskStatusHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Status types.TaskStatus `json:"progressStatus"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id := types.TaskID(chi.URLParam(r, "taskID"))

		var req request
		if err := decodeJSON(r, &req); err != nil {
			handleError(r.Context(), w, err)
			return
		}
		if req.Status == "" {
			handleError(r.Context(), w,
				goerr.Wrap(usecase.ErrInvalidInput, "progressStatus is required"))
			return
		}

		task, err := uc.Task.UpdateStatus(r.Context(), id, req.Status)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		respondJSON(r.Context(), w, http.StatusOK, task)
	}
}

func updateTaskHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Name        *string           `json:"name"`
		Description *string           `json:"description"`
		Status      *types.TaskStatus `json:"progressStatus"`
		Index       *int              `json:"index"`
		DueDate     *time.Time        `json:"dueDate"`
		Assignees   []types.UserID    `json:"assignTo"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id := types.TaskID(chi.URLParam(r, "taskID"))

		var req request
		if err := decodeJSON(r, &req); err != nil {
			handleError(r.Context(), w, err)
			return
		}

		task, err := uc.Task.Update(r.Context(), id, &model.TaskUpdate{
			Name:        req.Name,
			Description: req.Description,
			Status:      req.Status,
			Index:       req.Index,
			DueDate:     req.DueDate,
			Assignees:   req.Assignees,
		})
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		respondJSON(r.Context(), w, http.StatusOK, task)
	}
}

func deleteTaskHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.TaskID(chi.URLParam(r, "taskID"))

		if err := uc.Task.Delete(r.Context(), id); err != nil {
			handleError(r.Context(), w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
