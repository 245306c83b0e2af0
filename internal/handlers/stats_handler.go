package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"school-backend/internal/cache"
	"school-backend/internal/config"
	"school-backend/internal/models"
	"school-backend/internal/repositories"
	"school-backend/internal/services"
	"school-backend/internal/timeutil"
	"school-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type StatsHandler struct {
	Records     *repositories.FeeRecordRepository
	Payments    *repositories.FeePaymentRepository
	ClassStatus *services.ClassStatusService
	cfg         *config.Config
}

func NewStatsHandler(
	records *repositories.FeeRecordRepository,
	payments *repositories.FeePaymentRepository,
	classStatus *services.ClassStatusService,
	cfg *config.Config,
) *StatsHandler {
	return &StatsHandler{Records: records, Payments: payments, ClassStatus: classStatus, cfg: cfg}
}

// Summary serves the aggregate snapshot over every fee record, cached for
// five minutes and invalidated on any fee mutation.
func (h *StatsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if data, ok := cache.GetCached(r.Context(), cache.FeeStatsKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	records, err := h.Records.List(r.Context(), models.FeeRecordFilter{})
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	summary := services.Summarize(records, timeutil.Now(), h.cfg.Fees.DefaultersTopN)

	// Recent payments round out the dashboard snapshot; a failure here
	// degrades to an empty list rather than failing the whole summary
	if recent, err := h.Payments.List(r.Context(), 10); err == nil {
		summary.RecentPayments = recent
	}

	payload, err := json.Marshal(utils.Envelope{Success: true, Data: summary})
	if err == nil {
		cache.SetCached(r.Context(), cache.FeeStatsKey, payload, 5*time.Minute)
	}
	utils.JSON(w, http.StatusOK, summary)
}

// ClassFeeStatus serves per-student standing for a whole class, fetched in
// bounded batches so one big class cannot stampede the database.
func (h *StatsHandler) ClassFeeStatus(w http.ResponseWriter, r *http.Request) {
	classID, err := strconv.Atoi(mux.Vars(r)["classId"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid class id")
		return
	}

	rows, err := h.ClassStatus.ClassStatus(r.Context(), classID, timeutil.Now())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, rows)
}
