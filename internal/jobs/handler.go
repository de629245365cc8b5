package jobs

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/studioflow/agency-api/internal/clients"
	"github.com/studioflow/agency-api/internal/users"
	"github.com/studioflow/agency-api/internal/utils"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository *Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository(db)}
}

type createJobDTO struct {
	ClientID   uint   `json:"clientId"`
	Title      string `json:"title"`
	StartDate  string `json:"startDate"` // YYYY-MM-DD, defaults to today
	IsRetainer bool   `json:"isRetainer"`
}

type assignmentDTO struct {
	Role string `json:"role"`
}

// Create handles POST /jobs for engagements that don't come out of the
// pipeline (walk-in work).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto createJobDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if _, err := clients.NewRepository(h.DB).FindByID(dto.ClientID); err != nil {
		utils.WriteDomainError(w, err, "could not load client")
		return
	}

	start := time.Now()
	if dto.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", dto.StartDate)
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
			return
		}
		start = parsed
	}

	j := Job{
		ClientID:   dto.ClientID,
		Title:      dto.Title,
		Status:     StatusActive,
		StartDate:  start,
		IsRetainer: dto.IsRetainer,
	}
	if err := h.Repository.Create(&j); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not save job")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, j)
}

// List handles GET /jobs?status=Active&search=name.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	search := r.URL.Query().Get("search")
	list, err := h.Repository.List(status, search)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not list jobs")
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// FindByID handles GET /jobs/{id}.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	j, err := h.Repository.FindByID(uint(id))
	if err != nil {
		utils.WriteDomainError(w, err, "could not load job")
		return
	}
	utils.WriteJSON(w, http.StatusOK, j)
}

// Complete handles POST /jobs/{id}/complete. Completion is an explicit user
// action; it does not require every task to be Done.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	j, err := h.Repository.FindByID(uint(id))
	if err != nil {
		utils.WriteDomainError(w, err, "could not load job")
		return
	}
	if err := h.Repository.Complete(j.ID); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not complete job")
		return
	}
	j.Status = StatusCompleted
	utils.WriteJSON(w, http.StatusOK, j)
}

// Assign handles PUT /jobs/{id}/assignments/{userID}.
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobID, _ := strconv.Atoi(vars["id"])
	userID, _ := strconv.Atoi(vars["userID"])

	var dto assignmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if _, err := h.Repository.FindByID(uint(jobID)); err != nil {
		utils.WriteDomainError(w, err, "could not load job")
		return
	}
	if _, err := users.NewRepository(h.DB).FindByID(uint(userID)); err != nil {
		utils.WriteDomainError(w, err, "could not load user")
		return
	}

	a, err := h.Repository.UpsertAssignment(uint(jobID), uint(userID), dto.Role)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not save assignment")
		return
	}
	utils.WriteJSON(w, http.StatusOK, a)
}

// Unassign handles DELETE /jobs/{id}/assignments/{userID}.
func (h *Handler) Unassign(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobID, _ := strconv.Atoi(vars["id"])
	userID, _ := strconv.Atoi(vars["userID"])

	if _, err := h.Repository.FindByID(uint(jobID)); err != nil {
		utils.WriteDomainError(w, err, "could not load job")
		return
	}
	if err := h.Repository.RemoveAssignment(uint(jobID), uint(userID)); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not remove assignment")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
