package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/leave"
	"github.com/hamkke-hr/hr-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	MyRequests(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Deny(w http.ResponseWriter, r *http.Request)
	Balances(w http.ResponseWriter, r *http.Request)
	MyBalance(w http.ResponseWriter, r *http.Request)
	SetTotalEarned(w http.ResponseWriter, r *http.Request)
	SetBonus(w http.ResponseWriter, r *http.Request)
	ResetBonus(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// Submit implements LeaveHandler.
func (l *LeaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var submitReq leave.SubmitRequest

	if err := json.NewDecoder(r.Body).Decode(&submitReq); err != nil {
		slog.Error("Submit leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := l.leaveService.Submit(r.Context(), submitReq)
	if err != nil {
		slog.Error("Submit leave service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted", created)
}

// MyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) MyRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := l.leaveService.MyRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// ListAll implements LeaveHandler.
func (l *LeaveHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	requests, err := l.leaveService.ListAll(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

// Approve implements LeaveHandler.
func (l *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	decided, err := l.leaveService.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request approved", decided)
}

// Deny implements LeaveHandler.
func (l *LeaveHandlerImpl) Deny(w http.ResponseWriter, r *http.Request) {
	decided, err := l.leaveService.Deny(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request denied", decided)
}

// Balances implements LeaveHandler.
func (l *LeaveHandlerImpl) Balances(w http.ResponseWriter, r *http.Request) {
	balances, err := l.leaveService.Balances(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balances)
}

// MyBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) MyBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := l.leaveService.MyBalance(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balance)
}

// SetTotalEarned implements LeaveHandler.
func (l *LeaveHandlerImpl) SetTotalEarned(w http.ResponseWriter, r *http.Request) {
	var req leave.SetTotalEarnedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	balance, err := l.leaveService.SetTotalEarned(r.Context(), chi.URLParam(r, "userID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave entitlement updated", balance)
}

// SetBonus implements LeaveHandler.
func (l *LeaveHandlerImpl) SetBonus(w http.ResponseWriter, r *http.Request) {
	var req leave.SetBonusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	balance, err := l.leaveService.SetBonus(r.Context(), chi.URLParam(r, "userID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Bonus days updated", balance)
}

// ResetBonus implements LeaveHandler.
func (l *LeaveHandlerImpl) ResetBonus(w http.ResponseWriter, r *http.Request) {
	balance, err := l.leaveService.ResetBonus(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Bonus days reset", balance)
}

// Calendar implements LeaveHandler. Defaults to the current month when
// year or month is absent.
func (l *LeaveHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		year = now.Year()
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		month = int(now.Month())
	}

	calendar, err := l.leaveService.Calendar(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, calendar)
}
