package clients

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
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

type clientDTO struct {
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Create handles POST /clients.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto clientDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(dto.Name) == "" {
		utils.WriteError(w, http.StatusBadRequest, "name is required")
		return
	}

	c := Client{Name: strings.TrimSpace(dto.Name), Industry: dto.Industry, Email: dto.Email, Phone: dto.Phone}
	if err := h.Repository.Create(&c); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not save client")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, c)
}

// List handles GET /clients.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.List()
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not list clients")
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// FindByID handles GET /clients/{id}.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	c, err := h.Repository.FindByID(uint(id))
	if err != nil {
		utils.WriteDomainError(w, err, "could not load client")
		return
	}
	utils.WriteJSON(w, http.StatusOK, c)
}

// Update handles PUT /clients/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	c, err := h.Repository.FindByID(uint(id))
	if err != nil {
		utils.WriteDomainError(w, err, "could not load client")
		return
	}

	var dto clientDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(dto.Name) != "" {
		c.Name = strings.TrimSpace(dto.Name)
	}
	c.Industry = dto.Industry
	c.Email = dto.Email
	c.Phone = dto.Phone

	if err := h.Repository.Update(c); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not update client")
		return
	}
	utils.WriteJSON(w, http.StatusOK, c)
}

// Delete handles DELETE /clients/{id}. Refused while any deal or job still
// references the client.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if _, err := h.Repository.FindByID(uint(id)); err != nil {
		utils.WriteDomainError(w, err, "could not load client")
		return
	}
	if err := h.Repository.Delete(uint(id)); err != nil {
		utils.WriteDomainError(w, err, "could not delete client")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
