package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"school-backend/internal/models"
	"school-backend/internal/repositories"
	"school-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// StudentHandler exposes the student directory the assignment engine
// expands structures over. Thin enough to sit directly on the repository.
type StudentHandler struct {
	Repo *repositories.StudentRepository
}

func NewStudentHandler(repo *repositories.StudentRepository) *StudentHandler {
	return &StudentHandler{Repo: repo}
}

func (h *StudentHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.AdmissionNumber == "" || req.ClassID <= 0 {
		utils.Error(w, http.StatusBadRequest, "Name, admission number and class are required")
		return
	}

	student := &models.Student{
		AdmissionNumber: req.AdmissionNumber,
		Name:            req.Name,
		ClassID:         req.ClassID,
		ClassName:       req.ClassName,
		GuardianName:    req.GuardianName,
		GuardianPhone:   req.GuardianPhone,
		IsEnrolled:      true,
	}
	if err := h.Repo.Create(r.Context(), student); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.Message(w, http.StatusCreated, student, "Student created")
}

func (h *StudentHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid student id")
		return
	}

	student, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, "Student not found")
		return
	}
	utils.JSON(w, http.StatusOK, student)
}

func (h *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	// Optional classId query narrows to one class's enrolled students
	if classStr := r.URL.Query().Get("classId"); classStr != "" {
		classID, err := strconv.Atoi(classStr)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "Invalid classId")
			return
		}
		students, err := h.Repo.ListEnrolledByClass(r.Context(), classID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, students)
		return
	}

	students, err := h.Repo.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, students)
}
