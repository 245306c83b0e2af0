package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"school-backend/internal/cache"
	"school-backend/internal/models"
	"school-backend/internal/services"
	"school-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type FeeStructureHandler struct {
	Structures *services.FeeStructureService
	Assigner   *services.AssignmentService
}

func NewFeeStructureHandler(structures *services.FeeStructureService, assigner *services.AssignmentService) *FeeStructureHandler {
	return &FeeStructureHandler{Structures: structures, Assigner: assigner}
}

func (h *FeeStructureHandler) CreateStructure(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFeeStructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	structure, err := h.Structures.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	cache.InvalidateFeeCaches(r.Context())
	utils.Message(w, http.StatusCreated, structure, "Fee structure created")
}

// CreateMulti creates one structure per non-zero component amount in a
// single submission
func (h *FeeStructureHandler) CreateMulti(w http.ResponseWriter, r *http.Request) {
	var req models.MultiFeeStructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	structures, err := h.Structures.CreateMulti(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	cache.InvalidateFeeCaches(r.Context())
	utils.Message(w, http.StatusCreated, structures, "Fee structures created")
}

func (h *FeeStructureHandler) ListStructures(w http.ResponseWriter, r *http.Request) {
	// Serve from cache when fresh; the list only changes on admin mutations
	if data, ok := cache.GetCached(r.Context(), cache.FeeStructuresKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	structures, err := h.Structures.List(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	payload, err := json.Marshal(utils.Envelope{Success: true, Data: structures})
	if err == nil {
		cache.SetCached(r.Context(), cache.FeeStructuresKey, payload, 5*time.Minute)
	}
	utils.JSON(w, http.StatusOK, structures)
}

func (h *FeeStructureHandler) UpdateStructure(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid structure id")
		return
	}

	var req models.CreateFeeStructureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	structure, err := h.Structures.Update(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	cache.InvalidateFeeCaches(r.Context())
	utils.Message(w, http.StatusOK, structure, "Fee structure updated")
}

// ToggleStructure flips isActive. Deactivation hides the structure from
// future assignment but never touches already-generated records.
func (h *FeeStructureHandler) ToggleStructure(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid structure id")
		return
	}

	structure, err := h.Structures.ToggleActive(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusNotFound, err.Error())
		return
	}

	cache.InvalidateFeeCaches(r.Context())
	utils.Message(w, http.StatusOK, structure, "Fee structure toggled")
}

func (h *FeeStructureHandler) DeleteStructure(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid structure id")
		return
	}

	if err := h.Structures.Delete(r.Context(), id); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	cache.InvalidateFeeCaches(r.Context())
	utils.Message(w, http.StatusOK, nil, "Fee structure deleted")
}

// Assign expands a structure into per-student fee records. Re-running is
// safe: students already holding a record are skipped.
func (h *FeeStructureHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FeeStructureID int `json:"fee_structure_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FeeStructureID <= 0 {
		utils.Error(w, http.StatusBadRequest, "fee_structure_id is required")
		return
	}

	created, err := h.Assigner.Assign(r.Context(), req.FeeStructureID)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	cache.InvalidateFeeCaches(r.Context())
	utils.Message(w, http.StatusOK, map[string]int{"created": created},
		strconv.Itoa(created)+" fee records created")
}
