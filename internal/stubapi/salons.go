package stubapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

const msgSalonNotFound = "salon not found"

// handleListSalons GET /api/salon
func (s *Server) handleListSalons(w http.ResponseWriter, r *http.Request) {
	salons := s.store.listSalons()
	respondJSON(w, http.StatusOK, map[string]interface{}{"salons": salons})
}

// handleGetSalon GET /api/salon/{salonId}
func (s *Server) handleGetSalon(w http.ResponseWriter, r *http.Request) {
	salonID := mux.Vars(r)["salonId"]

	salon, ok := s.store.salonByID(salonID)
	if !ok {
		s.logger.Warn("GET /salon/%s - not found", salonID)
		respondNotFound(w, msgSalonNotFound)
		return
	}

	respondJSON(w, http.StatusOK, salon)
}

// handleGetWorkingHours GET /api/salon/{salonId}/working-hours
func (s *Server) handleGetWorkingHours(w http.ResponseWriter, r *http.Request) {
	salonID := mux.Vars(r)["salonId"]

	salon, ok := s.store.salonByID(salonID)
	if !ok {
		respondNotFound(w, msgSalonNotFound)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"workingHours": salon.WorkingHours})
}

// handleGetServices GET /api/salon/{salonId}/services
func (s *Server) handleGetServices(w http.ResponseWriter, r *http.Request) {
	salonID := mux.Vars(r)["salonId"]

	salon, ok := s.store.salonByID(salonID)
	if !ok {
		respondNotFound(w, msgSalonNotFound)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"services": salon.Services})
}
