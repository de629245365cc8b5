package reporting

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/studioflow/agency-api/internal/tasks"
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

type calendarDay struct {
	Date  string       `json:"date"`
	Tasks []tasks.Task `json:"tasks"`
}

// Calendar handles GET /reports/calendar?month=YYYY-MM[&job=N]: tasks of
// the month grouped by due date, for calendar rendering.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	monthParam := r.URL.Query().Get("month")
	if monthParam == "" {
		monthParam = time.Now().Format("2006-01")
	}
	parsed, err := time.Parse("2006-01", monthParam)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}

	var jobID *uint
	if j := r.URL.Query().Get("job"); j != "" {
		n, err := strconv.Atoi(j)
		if err != nil || n <= 0 {
			utils.WriteError(w, http.StatusBadRequest, "job must be a positive id")
			return
		}
		id := uint(n)
		jobID = &id
	}

	list, err := h.Repository.TasksForMonth(parsed.Year(), parsed.Month(), jobID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not load calendar")
		return
	}

	// Tasks arrive ordered by due date; fold them into per-day buckets.
	var days []calendarDay
	for _, t := range list {
		date := t.DueDate.Format("2006-01-02")
		if len(days) == 0 || days[len(days)-1].Date != date {
			days = append(days, calendarDay{Date: date})
		}
		days[len(days)-1].Tasks = append(days[len(days)-1].Tasks, t)
	}
	if days == nil {
		days = []calendarDay{}
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"month": monthParam,
		"days":  days,
	})
}

// ClientSummary handles GET /reports/clients/{id}.
func (h *Handler) ClientSummary(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	s, err := h.Repository.ClientSummary(uint(id))
	if err != nil {
		utils.WriteDomainError(w, err, "could not build client summary")
		return
	}
	utils.WriteJSON(w, http.StatusOK, s)
}

// UserWorkload handles GET /reports/users/{id}/workload.
func (h *Handler) UserWorkload(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	wl, err := h.Repository.UserWorkload(uint(id))
	if err != nil {
		utils.WriteDomainError(w, err, "could not build workload")
		return
	}
	utils.WriteJSON(w, http.StatusOK, wl)
}

// Dashboard handles GET /reports/dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Repository.Dashboard()
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "could not build dashboard")
		return
	}
	utils.WriteJSON(w, http.StatusOK, d)
}
