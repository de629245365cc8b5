package tasks

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/studioflow/agency-api/internal/jobs"
	"github.com/studioflow/agency-api/internal/models"
	"github.com/studioflow/agency-api/internal/users"
	"github.com/studioflow/agency-api/internal/utils"
	"gorm.io/gorm"
)

// Handler carries the active status vocabulary so a deployment can run
// either product variant without code changes.
type Handler struct {
	DB         *gorm.DB
	Repository *Repository
	Workflow   models.Workflow
}

func NewHandler(db *gorm.DB, workflow models.Workflow) *Handler {
	return &Handler{DB: db, Repository: NewRepository(db), Workflow: workflow}
}

type createTaskDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssigneeID  *uint  `json:"assigneeId"`
	DueDate     string `json:"dueDate"` // YYYY-MM-DD, optional
}

type statusDTO struct {
	Status string `json:"status"`
}

// Create handles POST /jobs/{id}/tasks. New tasks start in the
// vocabulary's initial state.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	jobID, _ := strconv.Atoi(mux.Vars(r)["id"])

	if _, err := jobs.NewRepository(h.DB).FindByID(uint(jobID)); err != nil {
		utils.WriteDomainError(w, err, "could not load job")
		return
	}

	var dto createTaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(dto.Title) == "" {
		utils.WriteError(w, http.StatusBadRequest, "title is required")
		return
	}

	if dto.AssigneeID != nil {
		if _, err := users.NewRepository(h.DB).FindByID(*dto.AssigneeID); err != nil {
			utils.WriteDomainError(w, err, "could not load assignee")
			return
		}
	}

	var due *time.Time
	if dto.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", dto.DueDate)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "dueDate must be YYYY-MM-DD")
			return
		}
		due = &parsed
	}

	t := Task{
		JobID:       uint(jobID),
		Title:       strings.TrimSpace(dto.Title),
		Description: dto.Description,
		Status:      h.Workflow.Initial(),
		AssigneeID:  dto.AssigneeID,
		DueDate:     due,
	}
	if err := h.Repository.Create(&t); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not save task")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, t)
}

// ListByJob handles GET /jobs/{id}/tasks.
func (h *Handler) ListByJob(w http.ResponseWriter, r *http.Request) {
	jobID, _ := strconv.Atoi(mux.Vars(r)["id"])
	if _, err := jobs.NewRepository(h.DB).FindByID(uint(jobID)); err != nil {
		utils.WriteDomainError(w, err, "could not load job")
		return
	}
	list, err := h.Repository.ListByJob(uint(jobID))
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not list tasks")
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// UpdateStatus handles PATCH /tasks/{id}/status. Re-setting the current
// status succeeds; nothing cascades to the job.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var dto statusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	t, err := h.Repository.FindByID(uint(id))
	if err != nil {
		utils.WriteDomainError(w, err, "could not load task")
		return
	}

	if !h.Workflow.Valid(dto.Status) {
		err := fmt.Errorf("status %q not in workflow %q: %w", dto.Status, h.Workflow.Name, models.ErrInvalidStatus)
		utils.WriteDomainError(w, err, "")
		return
	}

	if err := h.Repository.UpdateStatus(t.ID, dto.Status); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not update status")
		return
	}
	t.Status = dto.Status
	utils.WriteJSON(w, http.StatusOK, t)
}

// Delete handles DELETE /tasks/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if _, err := h.Repository.FindByID(uint(id)); err != nil {
		utils.WriteDomainError(w, err, "could not load task")
		return
	}
	if err := h.Repository.Delete(uint(id)); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not delete task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
