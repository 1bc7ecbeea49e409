package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"cbrates-service/internal/domain"
)

// QuoteService is the application surface the HTTP layer consumes.
type QuoteService interface {
	CurrentQuote(ctx context.Context) domain.RateQuote
	History(ctx context.Context, days int) (domain.RateQuote, []domain.HistoryPoint)
	Summary(ctx context.Context) domain.Summary
}

type Server struct {
	svc QuoteService
}

func NewServer(svc QuoteService) *Server { return &Server{svc: svc} }

type currentResponse struct {
	Currency      string  `json:"currency"`
	Rate          float64 `json:"rate"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Date          string  `json:"date"`
	Source        string  `json:"source"`
	IsRealData    bool    `json:"is_real_data"`
	Timestamp     string  `json:"timestamp"`
}

type historyPoint struct {
	Date        string  `json:"date"`
	DisplayDate string  `json:"display_date"`
	Price       float64 `json:"price"`
}

type historyResponse struct {
	Currency   string         `json:"currency"`
	Source     string         `json:"source"`
	IsRealData bool           `json:"is_real_data"`
	Points     []historyPoint `json:"points"`
}

type summaryResponse struct {
	Currency      string  `json:"currency"`
	Current       float64 `json:"current"`
	Min           float64 `json:"min"`
	MinDate       string  `json:"min_date"`
	Max           float64 `json:"max"`
	MaxDate       string  `json:"max_date"`
	Avg           float64 `json:"avg"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	From          string  `json:"from"`
	To            string  `json:"to"`
}

func (s *Server) GetCurrent(w http.ResponseWriter, r *http.Request) {
	q := s.svc.CurrentQuote(r.Context())
	writeJSON(w, http.StatusOK, currentResponse{
		Currency:      domain.PairLabel(q.Currency),
		Rate:          q.Rate,
		Change:        q.Change,
		ChangePercent: q.ChangePercent,
		Date:          q.AsOfDate,
		Source:        q.Source,
		IsRealData:    q.IsRealData,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 365 {
			badRequest(w, "days must be an integer between 1 and 365")
			return
		}
		days = n
	}
	q, points := s.svc.History(r.Context(), days)
	resp := historyResponse{
		Currency:   domain.PairLabel(q.Currency),
		Source:     q.Source,
		IsRealData: q.IsRealData,
		Points:     make([]historyPoint, 0, len(points)),
	}
	for _, p := range points {
		resp.Points = append(resp.Points, historyPoint{Date: p.Date, DisplayDate: p.DisplayDate, Price: p.Price})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	sum := s.svc.Summary(r.Context())
	writeJSON(w, http.StatusOK, summaryResponse{
		Currency:      domain.PairLabel(sum.Currency),
		Current:       sum.Current,
		Min:           sum.Min,
		MinDate:       sum.MinDate,
		Max:           sum.Max,
		MaxDate:       sum.MaxDate,
		Avg:           sum.Avg,
		Change:        sum.Change,
		ChangePercent: sum.ChangePercent,
		From:          sum.From,
		To:            sum.To,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	http.Error(w, msg, http.StatusBadRequest)
}
