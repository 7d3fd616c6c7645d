package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mindverse-hq/taskdeck/pkg/domain/types"
	"github.com/mindverse-hq/taskdeck/pkg/usecase"
)

func analyzeTaskHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		TaskID types.TaskID `json:"taskId"`
	}
	type response struct {
		Analysis   json.RawMessage     `json:"analysis"`
		Source     string              `json:"source"`
		TokensUsed int                 `json:"tokens_used"`
		Task       usecase.TaskSummary `json:"task"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeJSON(r, &req); err != nil {
			handleError(r.Context(), w, err)
			return
		}

		out, err := uc.Meeting.AnalyzeTask(r.Context(), req.TaskID)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		respondJSON(r.Context(), w, http.StatusOK, response{
			Analysis:   out.Result.Analysis,
			Source:     out.Result.Source,
			TokensUsed: out.Result.TokensUsed,
			Task:       out.Task,
		})
	}
}

func scheduleMeetingHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input usecase.ScheduleMeetingInput
		if err := decodeJSON(r, &input); err != nil {
			handleError(r.Context(), w, err)
			return
		}

		out, err := uc.Meeting.ScheduleMeeting(r.Context(), &input)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		respondJSON(r.Context(), w, http.StatusOK, out)
	}
}

func listMeetingsHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		meetings, err := uc.Meeting.ListMeetings(r.Context())
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		respondJSON(r.Context(), w, http.StatusOK, meetings)
	}
}

func getMeetingHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.MeetingID(chi.URLParam(r, "meetingID"))

		meeting, err := uc.Meeting.GetMeeting(r.Context(), id)
		if err != nil {
			handleError(r.Context(), w, err)
			return
		}

		respondJSON(r.Context(), w, http.StatusOK, meeting)
	}
}
