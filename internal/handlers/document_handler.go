package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"school-backend/internal/models"
	"school-backend/internal/services"
	"school-backend/internal/timeutil"
	"school-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type DocumentHandler struct {
	Documents *services.DocumentService
}

func NewDocumentHandler(documents *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{Documents: documents}
}

// Bill streams the fee bill PDF covering the record's student
func (h *DocumentHandler) Bill(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid record id")
		return
	}

	rec, err := h.Documents.Records.Get(r.Context(), id)
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

	doc, err := h.Documents.GenerateBill(r.Context(), id, timeutil.Now())
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			utils.Error(w, http.StatusNotFound, err.Error())
			return
		}
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeDocument(w, doc)
}

// Receipt streams the receipt PDF for one recorded payment
func (h *DocumentHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	paymentID, err := strconv.Atoi(mux.Vars(r)["paymentId"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid payment id")
		return
	}

	payment, err := h.Documents.Payments.Get(r.Context(), paymentID)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Payment not found")
		return
	}
	if !canViewStudent(r.Context(), payment.StudentID) {
		utils.Error(w, http.StatusForbidden, "This receipt does not belong to your student")
		return
	}

	doc, err := h.Documents.GenerateReceipt(r.Context(), paymentID, timeutil.Now())
	if err != nil {
		utils.Error(w, http.StatusNotFound, err.Error())
		return
	}
	writeDocument(w, doc)
}

// Report streams the administrative report, honoring the same query filters
// as the record listing. format=csv exports the uncapped set.
func (h *DocumentHandler) Report(w http.ResponseWriter, r *http.Request) {
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

	var (
		doc *services.GeneratedDocument
		err error
	)
	if q.Get("format") == "csv" {
		doc, err = h.Documents.GenerateReportCSV(r.Context(), filter, timeutil.Now())
	} else {
		doc, err = h.Documents.GenerateReport(r.Context(), filter, timeutil.Now())
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeDocument(w, doc)
}

func writeDocument(w http.ResponseWriter, doc *services.GeneratedDocument) {
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.Write(doc.Data)
}
