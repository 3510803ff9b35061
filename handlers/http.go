package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

type ErrorResponse struct {
	Errors string `json:"errors"`
}

type PriceResponse struct {
	Price   string         `json:"price"`
	History []HistoryPoint `json:"history"`
}

type HistoryPoint struct {
	RecordedAt string `json:"recorded_at"`
	Price      string `json:"price"`
}

type LeaderboardRow struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"user_id"`
	NetWorth string `json:"net_worth"`
}

// PriceHandler reports the current foxcoin price plus recent history.
func (h Handler) PriceHandler(w http.ResponseWriter, r *http.Request) {
	price, err := h.svc.CurrentPrice(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	limit := 24
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondWithError(w, http.StatusBadRequest, "tham số limit không hợp lệ")
			return
		}
		limit = n
	}
	history, err := h.svc.PriceHistory(r.Context(), limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := PriceResponse{Price: price.String()}
	for _, p := range history {
		resp.History = append(resp.History, HistoryPoint{
			RecordedAt: p.RecordedAt.Format("2006-01-02 15:04:05"),
			Price:      p.Price.String(),
		})
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func (h Handler) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Leaderboard(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rows := make([]LeaderboardRow, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, LeaderboardRow{
			Rank:     i + 1,
			UserID:   e.UserID,
			NetWorth: e.NetWorth.StringFixed(2),
		})
	}
	respondWithJSON(w, http.StatusOK, rows)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{Errors: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
