// Package api exposes the ledger over a JSON HTTP interface.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/splitledger/splitledger/internal/calculator"
	"github.com/splitledger/splitledger/internal/ledger"
	"github.com/splitledger/splitledger/internal/models"
)

// Server holds the API handlers.
type Server struct {
	ledger *ledger.Ledger
}

// NewServer creates a Server backed by the given ledger.
func NewServer(l *ledger.Ledger) *Server {
	return &Server{ledger: l}
}

// Handler returns the full HTTP handler: routes wrapped with request
// logging, metrics, and CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/users", s.createUser)
	mux.HandleFunc("GET /v1/users", s.listUsers)
	mux.HandleFunc("GET /v1/users/{id}", s.getUser)
	mux.HandleFunc("GET /v1/users/{id}/balance", s.userBalance)
	mux.HandleFunc("GET /v1/users/{id}/expenses", s.userExpenses)

	mux.HandleFunc("POST /v1/groups", s.createGroup)
	mux.HandleFunc("GET /v1/groups/{id}", s.getGroup)
	mux.HandleFunc("POST /v1/groups/{id}/members", s.addMember)
	mux.HandleFunc("DELETE /v1/groups/{id}/members/{userID}", s.removeMember)
	mux.HandleFunc("GET /v1/groups/{id}/expenses", s.groupExpenses)

	mux.HandleFunc("POST /v1/expenses", s.createExpense)
	mux.HandleFunc("POST /v1/settlements", s.createSettlement)
	mux.HandleFunc("GET /v1/settlements/suggestions", s.suggestSettlements)
	mux.HandleFunc("POST /v1/reset", s.reset)

	return loggingMiddleware(metricsMiddleware(mux, corsMiddleware(mux)))
}

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.ledger.CreateUser(r.Context(), req.Name, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.ListUsers())
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.ledger.GetUser(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type balanceResponse struct {
	UserID   string             `json:"user_id"`
	Balances map[string]float64 `json:"balances"`
	Total    float64            `json:"total"`
}

func (s *Server) userBalance(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if _, err := s.ledger.GetUser(userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{
		UserID:   userID,
		Balances: s.ledger.UserBalances(userID),
		Total:    s.ledger.TotalBalance(userID),
	})
}

func (s *Server) userExpenses(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if _, err := s.ledger.GetUser(userID); err != nil {
		writeError(w, err)
		return
	}
	expenses := s.ledger.UserExpenses(userID)
	if expenses == nil {
		expenses = []*models.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

type createGroupRequest struct {
	Name      string `json:"name"`
	CreatedBy string `json:"created_by"`
}

func (s *Server) createGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	group, err := s.ledger.CreateGroup(r.Context(), req.Name, req.CreatedBy)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (s *Server) getGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.ledger.GetGroup(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

type addMemberRequest struct {
	UserID string `json:"user_id"`
}

func (s *Server) addMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.ledger.AddMember(r.Context(), r.PathValue("id"), req.UserID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeMember(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.RemoveMember(r.Context(), r.PathValue("id"), r.PathValue("userID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) groupExpenses(w http.ResponseWriter, r *http.Request) {
	groupID := r.PathValue("id")
	if _, err := s.ledger.GetGroup(groupID); err != nil {
		writeError(w, err)
		return
	}
	expenses := s.ledger.GroupExpenses(groupID)
	if expenses == nil {
		expenses = []*models.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

type createExpenseRequest struct {
	Description  string             `json:"description"`
	Amount       float64            `json:"amount"`
	PaidBy       string             `json:"paid_by"`
	SplitAmong   []string           `json:"split_among"`
	GroupID      string             `json:"group_id,omitempty"`
	Date         string             `json:"date,omitempty"`
	SplitType    string             `json:"split_type,omitempty"`
	SplitDetails map[string]float64 `json:"split_details,omitempty"`
}

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	splitType := models.SplitType(req.SplitType)
	if req.SplitType == "" {
		splitType = models.SplitEqual
	}

	expense, err := s.ledger.AddExpense(r.Context(), ledger.ExpenseInput{
		Description:  req.Description,
		Amount:       req.Amount,
		PaidBy:       req.PaidBy,
		SplitAmong:   req.SplitAmong,
		GroupID:      req.GroupID,
		Date:         req.Date,
		SplitType:    splitType,
		SplitDetails: req.SplitDetails,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

type createSettlementRequest struct {
	PayerID    string  `json:"payer_id"`
	ReceiverID string  `json:"receiver_id"`
	Amount     float64 `json:"amount"`
}

func (s *Server) createSettlement(w http.ResponseWriter, r *http.Request) {
	var req createSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.ledger.Settle(r.Context(), req.PayerID, req.ReceiverID, req.Amount); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) suggestSettlements(w http.ResponseWriter, r *http.Request) {
	plan := s.ledger.SuggestSettlements()
	if plan == nil {
		plan = []ledger.SuggestedPayment{}
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.Reset(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps ledger errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrUnknownUser),
		errors.Is(err, ledger.ErrUnknownGroup),
		errors.Is(err, ledger.ErrNotMember):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, calculator.ErrInvalidSplit),
		errors.Is(err, ledger.ErrInvalidAmount):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrAlreadyMember),
		errors.Is(err, ledger.ErrCreatorImmutable):
		writeJSONError(w, http.StatusConflict, err.Error())
	default:
		slog.Error("Request failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}
