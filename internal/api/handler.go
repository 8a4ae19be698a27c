package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tylercoen/bankist/format"
	"github.com/tylercoen/bankist/ledger"
)

// Metrics
var (
	httpReqTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bankist_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bankist_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method", "endpoint"})
)

// Handler is the thin HTTP face over the ledger engine. It parses input and
// shapes output; every rule lives in the engine.
type Handler struct {
	engine *ledger.Engine
	clock  func() time.Time
}

func NewHandler(engine *ledger.Engine) *Handler {
	return &Handler{engine: engine, clock: time.Now}
}

// SetClock pins "now" for relative date labels. Tests use this.
func (h *Handler) SetClock(now func() time.Time) { h.clock = now }

type loginRequest struct {
	Username string `json:"username"`
	PIN      int    `json:"pin"`
}

type transferRequest struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

type loanRequest struct {
	Username string  `json:"username"`
	Amount   float64 `json:"amount"`
}

type closeRequest struct {
	ConfirmUsername string `json:"confirm_username"`
	ConfirmPIN      int    `json:"confirm_pin"`
}

type summaryResponse struct {
	Owner              string  `json:"owner"`
	Username           string  `json:"username"`
	Balance            float64 `json:"balance"`
	TotalIncome        float64 `json:"total_income"`
	TotalExpense       float64 `json:"total_expense"`
	QualifyingInterest float64 `json:"qualifying_interest"`

	// Display strings, already in the account's locale and currency.
	BalanceLabel  string `json:"balance_label"`
	IncomeLabel   string `json:"income_label"`
	ExpenseLabel  string `json:"expense_label"`
	InterestLabel string `json:"interest_label"`
}

type movementRow struct {
	Seq         int     `json:"seq"`
	Amount      float64 `json:"amount"`
	Type        string  `json:"type"`
	AmountLabel string  `json:"amount_label"`
	DateLabel   string  `json:"date_label"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpLatency.WithLabelValues("POST", "/login"))
	defer timer.ObserveDuration()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid JSON", "POST", "/login")
		return
	}

	acc, err := h.engine.Authenticate(req.Username, req.PIN)
	if err != nil {
		h.respondRejection(w, err, "POST", "/login")
		return
	}

	h.respondJSON(w, http.StatusOK, h.summarize(acc), "POST", "/login")
}

func (h *Handler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpLatency.WithLabelValues("POST", "/transfers"))
	defer timer.ObserveDuration()

	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid JSON", "POST", "/transfers")
		return
	}

	if err := h.engine.Transfer(req.From, req.To, req.Amount); err != nil {
		h.respondRejection(w, err, "POST", "/transfers")
		return
	}

	acc, _ := h.engine.Account(req.From)
	h.respondJSON(w, http.StatusCreated, h.summarize(acc), "POST", "/transfers")
}

func (h *Handler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpLatency.WithLabelValues("POST", "/loans"))
	defer timer.ObserveDuration()

	var req loanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid JSON", "POST", "/loans")
		return
	}

	granted, err := h.engine.RequestLoan(req.Username, req.Amount)
	if err != nil {
		h.respondRejection(w, err, "POST", "/loans")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]float64{"granted": granted}, "POST", "/loans")
}

func (h *Handler) CloseAccount(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpLatency.WithLabelValues("DELETE", "/accounts/{username}"))
	defer timer.ObserveDuration()

	username := mux.Vars(r)["username"]

	var req closeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid JSON", "DELETE", "/accounts/{username}")
		return
	}

	if err := h.engine.CloseAccount(username, req.ConfirmUsername, req.ConfirmPIN); err != nil {
		h.respondRejection(w, err, "DELETE", "/accounts/{username}")
		return
	}

	h.respondJSON(w, http.StatusNoContent, nil, "DELETE", "/accounts/{username}")
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	acc, ok := h.engine.Account(username)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Not Found", "GET", "/accounts/{username}/summary")
		return
	}

	h.respondJSON(w, http.StatusOK, h.summarize(acc), "GET", "/accounts/{username}/summary")
}

func (h *Handler) GetMovements(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	ascending := r.URL.Query().Get("sort") == "asc"

	acc, ok := h.engine.Account(username)
	if !ok {
		h.respondError(w, http.StatusNotFound, "Not Found", "GET", "/accounts/{username}/movements")
		return
	}

	now := h.clock()
	rows := make([]movementRow, 0, len(acc.Movements))
	for _, e := range acc.OrderedMovements(ascending) {
		kind := "deposit"
		if e.Amount < 0 {
			kind = "withdrawal"
		}
		rows = append(rows, movementRow{
			Seq:         e.Seq,
			Amount:      e.Amount,
			Type:        kind,
			AmountLabel: format.Currency(e.Amount, acc.Locale, acc.Currency),
			DateLabel:   format.RelativeDate(e.Date, now, acc.Locale),
		})
	}

	h.respondJSON(w, http.StatusOK, rows, "GET", "/accounts/{username}/movements")
}

func (h *Handler) summarize(acc *ledger.Account) summaryResponse {
	return summaryResponse{
		Owner:              acc.Owner,
		Username:           acc.Username,
		Balance:            acc.Balance(),
		TotalIncome:        acc.TotalIncome(),
		TotalExpense:       acc.TotalExpense(),
		QualifyingInterest: acc.QualifyingInterest(),
		BalanceLabel:       format.Currency(acc.Balance(), acc.Locale, acc.Currency),
		IncomeLabel:        format.Currency(acc.TotalIncome(), acc.Locale, acc.Currency),
		ExpenseLabel:       format.Currency(acc.TotalExpense(), acc.Locale, acc.Currency),
		InterestLabel:      format.Currency(acc.QualifyingInterest(), acc.Locale, acc.Currency),
	}
}

// respondRejection maps the engine's sentinel rejections onto HTTP statuses.
func (h *Handler) respondRejection(w http.ResponseWriter, err error, method, endpoint string) {
	switch {
	case errors.Is(err, ledger.ErrBadCredentials):
		h.respondError(w, http.StatusUnauthorized, "Bad credentials", method, endpoint)
	case errors.Is(err, ledger.ErrNotFound), errors.Is(err, ledger.ErrUnknownRecipient):
		h.respondError(w, http.StatusNotFound, "Account not found", method, endpoint)
	case errors.Is(err, ledger.ErrBadAmount),
		errors.Is(err, ledger.ErrSelfTransfer),
		errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrNoQualifyingDeposit):
		h.respondError(w, http.StatusUnprocessableEntity, err.Error(), method, endpoint)
	default:
		h.respondError(w, http.StatusInternalServerError, err.Error(), method, endpoint)
	}
}

// Helpers
func (h *Handler) respondJSON(w http.ResponseWriter, code int, payload interface{}, method, endpoint string) {
	httpReqTotal.WithLabelValues(method, endpoint, strconv.Itoa(code)).Inc()
	if payload == nil {
		w.WriteHeader(code)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func (h *Handler) respondError(w http.ResponseWriter, code int, msg, method, endpoint string) {
	h.respondJSON(w, code, map[string]string{"error": msg}, method, endpoint)
}
