package deals

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/studioflow/agency-api/internal/clients"
	"github.com/studioflow/agency-api/internal/models"
	"github.com/studioflow/agency-api/internal/notify"
	"github.com/studioflow/agency-api/internal/utils"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Pipeline   *Pipeline
	Webhook    *notify.Webhook
}

func NewHandler(db *gorm.DB, webhook *notify.Webhook) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Pipeline:   NewPipeline(db),
		Webhook:    webhook,
	}
}

// Create handles POST /deals. New deals start in stage New unless an
// explicit valid stage is supplied.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto createDealDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(dto.Title) == "" {
		utils.WriteError(w, http.StatusBadRequest, "title is required")
		return
	}
	if _, err := clients.NewRepository(h.DB).FindByID(dto.ClientID); err != nil {
		utils.WriteDomainError(w, err, "could not load client")
		return
	}

	stage := dto.Stage
	if stage == "" {
		stage = models.StageNew
	}
	if !models.ValidStage(stage) {
		utils.WriteDomainError(w, models.ErrInvalidStage, "")
		return
	}

	d := Deal{
		ClientID:     dto.ClientID,
		Title:        strings.TrimSpace(dto.Title),
		Value:        dto.Value,
		CostInternal: dto.CostInternal,
		CostExternal: dto.CostExternal,
		Stage:        stage,
		IsRecurring:  dto.IsRecurring,
		Notes:        dto.Notes,
	}
	if err := h.Repository.Save(h.DB, &d); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not save deal")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, toResponse(d))
}

// List handles GET /deals.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.List(h.DB)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not list deals")
		return
	}
	utils.WriteJSON(w, http.StatusOK, toResponses(list))
}

// Board handles GET /deals/board: deals grouped by stage in board order.
func (h *Handler) Board(w http.ResponseWriter, r *http.Request) {
	board := make(map[string][]dealResponse, len(models.Stages()))
	for _, stage := range models.Stages() {
		list, err := h.Repository.ListByStage(h.DB, stage)
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "could not build board")
			return
		}
		board[stage] = toResponses(list)
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"stages": models.Stages(),
		"deals":  board,
	})
}

// FindByID handles GET /deals/{id}.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	d, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		utils.WriteDomainError(w, err, "could not load deal")
		return
	}
	utils.WriteJSON(w, http.StatusOK, toResponse(*d))
}

// Update handles PUT /deals/{id}. Stage changes go through MoveStage, not
// here; the stored stage is left untouched.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	d, err := h.Repository.FindByID(h.DB, uint(id))
	if err != nil {
		utils.WriteDomainError(w, err, "could not load deal")
		return
	}

	var dto createDealDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(dto.Title) != "" {
		d.Title = strings.TrimSpace(dto.Title)
	}
	d.Value = dto.Value
	d.CostInternal = dto.CostInternal
	d.CostExternal = dto.CostExternal
	d.IsRecurring = dto.IsRecurring
	d.Notes = dto.Notes

	if err := h.Repository.Update(h.DB, d); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not update deal")
		return
	}
	utils.WriteJSON(w, http.StatusOK, toResponse(*d))
}

// MoveStage handles PATCH /deals/{id}/stage.
func (h *Handler) MoveStage(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var dto moveStageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if dto.Stage == "" {
		utils.WriteError(w, http.StatusBadRequest, "stage is required")
		return
	}

	d, job, err := h.Pipeline.MoveStage(uint(id), dto.Stage)
	if err != nil {
		utils.WriteDomainError(w, err, "could not move stage")
		return
	}

	if job != nil {
		clientName := ""
		if c, err := clients.NewRepository(h.DB).FindByID(d.ClientID); err == nil {
			clientName = c.Name
		}
		slog.Info("deal won, job created", "dealId", d.ID, "jobId", job.ID, "client", clientName)
		go h.Webhook.DealWon(d.ID, d.Title, clientName, job.ID, d.Value)
	}

	resp := map[string]interface{}{"deal": toResponse(*d)}
	if job != nil {
		resp["createdJob"] = job
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /deals/{id}. The linked job, if any, survives: the
// job's deal reference is weak.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if _, err := h.Repository.FindByID(h.DB, uint(id)); err != nil {
		utils.WriteDomainError(w, err, "could not load deal")
		return
	}
	if err := h.Repository.Delete(h.DB, uint(id)); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not delete deal")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
