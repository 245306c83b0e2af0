package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"school-backend/internal/cache"
	"school-backend/internal/middleware"
	"school-backend/internal/models"
	"school-backend/internal/repositories"
	"school-backend/internal/services"
	"school-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type PaymentHandler struct {
	Payments    *services.PaymentService
	PaymentRepo *repositories.FeePaymentRepository
}

func NewPaymentHandler(payments *services.PaymentService, paymentRepo *repositories.FeePaymentRepository) *PaymentHandler {
	return &PaymentHandler{Payments: payments, PaymentRepo: paymentRepo}
}

// Pay records a staff-entered payment against a fee record
func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	h.pay(w, r, models.PaidByAdmin)
}

// ParentPay is the parent self-service variant: same contract, but the payer
// must be the parent linked to the record's student.
func (h *PaymentHandler) ParentPay(w http.ResponseWriter, r *http.Request) {
	h.pay(w, r, models.PaidByParent)
}

func (h *PaymentHandler) pay(w http.ResponseWriter, r *http.Request, paidBy string) {
	feeRecordID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid record id")
		return
	}

	var req models.PayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authorization required")
		return
	}

	if paidBy == models.PaidByParent {
		if !h.parentOwnsRecord(r, feeRecordID) {
			utils.Error(w, http.StatusForbidden, "This fee record does not belong to your student")
			return
		}
	}

	payment, err := h.Payments.Pay(r.Context(), feeRecordID, &req, paidBy, userID)
	if err != nil {
		utils.Error(w, paymentErrorStatus(err), err.Error())
		return
	}

	cache.InvalidateFeeCaches(r.Context())
	utils.Message(w, http.StatusCreated, payment, "Payment recorded, receipt "+payment.ReceiptNumber)
}

// parentOwnsRecord checks the linked student on the parent account against
// the record's student
func (h *PaymentHandler) parentOwnsRecord(r *http.Request, feeRecordID int) bool {
	studentID, ok := middleware.GetStudentIDFromContext(r.Context())
	if !ok {
		return false
	}
	rec, err := h.Payments.Records.Get(r.Context(), feeRecordID)
	if err != nil {
		return false
	}
	return rec.StudentID == studentID
}

// paymentErrorStatus maps the processor's typed failures onto HTTP statuses
func paymentErrorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrOverpayment),
		errors.Is(err, models.ErrAlreadySettled),
		errors.Is(err, models.ErrDuplicatePayment):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func (h *PaymentHandler) ListByStudent(w http.ResponseWriter, r *http.Request) {
	studentID, err := strconv.Atoi(mux.Vars(r)["studentId"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid student id")
		return
	}

	payments, err := h.PaymentRepo.ListByStudent(r.Context(), studentID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	limit := 200
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}

	payments, err := h.PaymentRepo.List(r.Context(), limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, payments)
}
