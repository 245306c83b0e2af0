package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"school-backend/internal/cache"
	"school-backend/internal/middleware"
	"school-backend/internal/models"
	"school-backend/internal/services"
	"school-backend/internal/timeutil"
	"school-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type FeeRecordHandler struct {
	Records *services.FeeRecordService
}

func NewFeeRecordHandler(records *services.FeeRecordService) *FeeRecordHandler {
	return &FeeRecordHandler{Records: records}
}

func (h *FeeRecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFeeRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.Records.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	cache.InvalidateFeeCaches(r.Context())
	utils.Message(w, http.StatusCreated, rec, "Fee record created")
}

func (h *FeeRecordHandler) CreateRecordsBulk(w http.ResponseWriter, r *http.Request) {
	var reqs []*models.CreateFeeRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(reqs) == 0 {
		utils.Error(w, http.StatusBadRequest, "At least one record is required")
		return
	}

	created, err := h.Records.CreateBulk(r.Context(), reqs)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	cache.InvalidateFeeCaches(r.Context())
	utils.Message(w, http.StatusCreated, created, "Fee records created")
}

// ListRecords supports the feeType, paymentStatus, academicYear, classId and
// search query filters
func (h *FeeRecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.FeeRecordFilter{
		FeeType:       q.Get("feeType"),
		PaymentStatus: q.Get("paymentStatus"),
		AcademicYear:  q.Get("academicYear"),
		Search:        q.Get("search"),
	}
	if classStr := q.Get("classId"); classStr != "" {
		classID, err := strconv.Atoi(classStr)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid classId")
			return
		}
		filter.ClassID = classID
	}

	records, err := h.Records.List(r.Context(), filter, timeutil.Now())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, recordsWithStatus(records))
}

func (h *FeeRecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid record id")
		return
	}

	rec, err := h.Records.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			utils.Error(w, http.StatusNotFound, err.Error())
			return
		}
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !canViewStudent(r.Context(), rec.StudentID) {
		utils.Error(w, http.StatusForbidden, "This fee record does not belong to your student")
		return
	}
	utils.JSON(w, http.StatusOK, recordWithStatus(rec))
}

func (h *FeeRecordHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid record id")
		return
	}

	var req models.UpdateFeeRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.Records.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			utils.Error(w, http.StatusNotFound, err.Error())
			return
		}
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	cache.InvalidateFeeCaches(r.Context())
	utils.Message(w, http.StatusOK, recordWithStatus(rec), "Fee record updated")
}

// DeleteRecord removes a record; the repository refuses once any payment has
// been applied
func (h *FeeRecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid record id")
		return
	}

	if err := h.Records.Delete(r.Context(), id); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	cache.InvalidateFeeCaches(r.Context())
	utils.Message(w, http.StatusOK, nil, "Fee record deleted")
}

func (h *FeeRecordHandler) ListByStudent(w http.ResponseWriter, r *http.Request) {
	studentID, err := strconv.Atoi(mux.Vars(r)["studentId"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid student id")
		return
	}

	records, err := h.Records.ListByStudent(r.Context(), studentID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, recordsWithStatus(records))
}

// MyRecords serves the parent self-service view: the fee records of the
// student linked to the authenticated account.
func (h *FeeRecordHandler) MyRecords(w http.ResponseWriter, r *http.Request) {
	studentID, ok := middleware.GetStudentIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusForbidden, "No student linked to this account")
		return
	}

	records, err := h.Records.ListByStudent(r.Context(), studentID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, recordsWithStatus(records))
}

// feeRecordView decorates a record with its derived fields for API output
type feeRecordView struct {
	*models.FeeRecord
	BalanceDue    float64 `json:"balance_due"`
	PaymentStatus string  `json:"payment_status"`
}

func recordWithStatus(rec *models.FeeRecord) feeRecordView {
	return feeRecordView{
		FeeRecord:     rec,
		BalanceDue:    rec.BalanceDue(),
		PaymentStatus: rec.Status(timeutil.Now()),
	}
}

func recordsWithStatus(records []*models.FeeRecord) []feeRecordView {
	views := make([]feeRecordView, len(records))
	for i, rec := range records {
		views[i] = recordWithStatus(rec)
	}
	return views
}
