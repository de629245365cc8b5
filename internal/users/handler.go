package users

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/studioflow/agency-api/internal/auth"
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

type createUserDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type loginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /login and issues an access token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto loginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	u, err := h.Repository.FindByUsername(dto.Username)
	if err != nil || !utils.CheckPassword(u.PasswordHash, dto.Password) {
		utils.WriteError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := auth.GenerateToken(u.ID, u.IsAdmin())
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"token": token, "user": u})
}

// Create handles POST /users (admin only, enforced by route middleware).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto createUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(dto.Username) == "" || dto.Password == "" {
		utils.WriteError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	role := dto.Role
	if role != RoleAdmin && role != RolePhotographer {
		role = RolePhotographer
	}

	hash, err := utils.HashPassword(dto.Password)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not hash password")
		return
	}

	u := User{
		Username:     strings.TrimSpace(dto.Username),
		PasswordHash: hash,
		Role:         role,
		FullName:     dto.FullName,
		Email:        dto.Email,
	}
	if err := h.Repository.Create(&u); err != nil {
		utils.WriteError(w, http.StatusConflict, "username already taken")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, u)
}

// List handles GET /users. Every authenticated caller may list users; the
// presentation layer needs the roster per request for assignee dropdowns.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.List()
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not list users")
		return
	}
	utils.WriteJSON(w, http.StatusOK, list)
}

// FindByID handles GET /users/{id}.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	u, err := h.Repository.FindByID(uint(id))
	if err != nil {
		utils.WriteDomainError(w, err, "could not load user")
		return
	}
	utils.WriteJSON(w, http.StatusOK, u)
}

// Update handles PUT /users/{id} (admin only).
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	u, err := h.Repository.FindByID(uint(id))
	if err != nil {
		utils.WriteDomainError(w, err, "could not load user")
		return
	}

	var dto createUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if dto.Username != "" {
		u.Username = strings.TrimSpace(dto.Username)
	}
	if dto.Role == RoleAdmin || dto.Role == RolePhotographer {
		u.Role = dto.Role
	}
	u.FullName = dto.FullName
	u.Email = dto.Email
	if dto.Password != "" {
		hash, err := utils.HashPassword(dto.Password)
		if err != nil {
			utils.WriteError(w, http.StatusInternalServerError, "could not hash password")
			return
		}
		u.PasswordHash = hash
	}

	if err := h.Repository.Update(u); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not update user")
		return
	}
	utils.WriteJSON(w, http.StatusOK, u)
}

// Delete handles DELETE /users/{id} (admin only).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	if _, err := h.Repository.FindByID(uint(id)); err != nil {
		utils.WriteDomainError(w, err, "could not load user")
		return
	}
	if err := h.Repository.Delete(uint(id)); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not delete user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
