package profitshare

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/studioflow/agency-api/internal/utils"
	"gorm.io/gorm"
)

type Handler struct {
	DB     *gorm.DB
	Ledger *Ledger
}

func NewHandler(db *gorm.DB, strict bool) *Handler {
	return &Handler{DB: db, Ledger: NewLedger(db, strict)}
}

// SetShares handles PUT /deals/{id}/shares: replaces the full share set.
func (h *Handler) SetShares(w http.ResponseWriter, r *http.Request) {
	dealID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var entries []ShareEntry
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	shares, err := h.Ledger.SetShares(uint(dealID), entries)
	if err != nil {
		if errors.Is(err, ErrOverAllocated) {
			utils.WriteError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		utils.WriteDomainError(w, err, "could not save shares")
		return
	}
	utils.WriteJSON(w, http.StatusOK, shares)
}

// GetShares handles GET /deals/{id}/shares: shares plus the derived profit
// and per-share resolved amounts.
func (h *Handler) GetShares(w http.ResponseWriter, r *http.Request) {
	dealID, _ := strconv.Atoi(mux.Vars(r)["id"])

	profit, resolved, err := h.Ledger.Resolve(uint(dealID))
	if err != nil {
		utils.WriteDomainError(w, err, "could not load shares")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"profit": profit,
		"shares": resolved,
	})
}
