package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/zfit/zfit/internal/models"
	"github.com/zfit/zfit/internal/users"
)

const maxBodyBytes = 1 << 20

var emptyPlan = []models.StructuredWorkout{}

func (s *Server) handleGenerateProgram(w http.ResponseWriter, r *http.Request) {
	var body programBody
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&body); err != nil {
		s.log.Error("issue extracting user data", "error", err)
		writeJSON(w, http.StatusOK, emptyPlan)
		return
	}
	req, err := body.request()
	if err != nil {
		s.log.Error("issue extracting user data", "error", err)
		writeJSON(w, http.StatusOK, emptyPlan)
		return
	}

	writeJSON(w, http.StatusOK, s.plans.GenerateProgram(r.Context(), req))
}

func (s *Server) handleUpdateProgram(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.log.Error("could not read update body", "error", err)
		writeJSON(w, http.StatusOK, emptyPlan)
		return
	}
	program, changes, err := decodeUpdate(data)
	if err != nil {
		s.log.Error("could not alter program", "error", err)
		writeJSON(w, http.StatusOK, emptyPlan)
		return
	}

	writeJSON(w, http.StatusOK, s.plans.UpdateProgram(r.Context(), program, changes))
}

func (s *Server) handleInsertProgram(w http.ResponseWriter, r *http.Request) {
	var program []models.StructuredWorkout
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&program); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	s.plans.InsertProgram(r.Context(), program)
	writeText(w, http.StatusOK, "Insert Program Executed")
}

func (s *Server) handleGetInsights(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	writeText(w, http.StatusOK, s.insights.Generate(r.Context(), name))
}

func (s *Server) handleExerciseHistory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	sessions, err := s.insights.PastExerciseData(r.Context(), name)
	if err != nil {
		s.log.Error("history query failed", "exercise", name, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

type createUserBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var body createUserBody
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	u, err := users.NewUser(body.Email, body.Password, body.Name)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := s.users.Save(r.Context(), u); err != nil {
		s.log.Error("save user failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, publicUser(u))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.FindByEmail(r.Context(), chi.URLParam(r, "email"))
	if errors.Is(err, users.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, publicUser(u))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	err := s.users.Delete(r.Context(), chi.URLParam(r, "email"))
	if errors.Is(err, users.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func publicUser(u models.User) models.User {
	u.PasswordHash = ""
	return u
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, text)
}
