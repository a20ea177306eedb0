package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pokeshiri/server/internal/report"
)

func dexParam(r *http.Request) (int, error) {
	dex, err := strconv.Atoi(chi.URLParam(r, "dex"))
	if err != nil || dex <= 0 {
		return 0, report.New(report.CategoryValidation, report.SeverityInfo,
			"invalid pokedex number", "図鑑番号が正しくありません")
	}
	return dex, nil
}

func handleGetCard(reporter *report.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dex, err := dexParam(r)
		if err != nil {
			writeReport(w, r, reporter, err)
			return
		}
		card, err := sessionFrom(r).app.Card(dex)
		if err != nil {
			writeReport(w, r, reporter, err)
			return
		}
		writeJSON(w, http.StatusOK, card)
	}
}

func handleToggleHint(reporter *report.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dex, err := dexParam(r)
		if err != nil {
			writeReport(w, r, reporter, err)
			return
		}
		card, err := sessionFrom(r).app.ToggleHint(dex, chi.URLParam(r, "hint"))
		if err != nil {
			writeReport(w, r, reporter, err)
			return
		}
		writeJSON(w, http.StatusOK, card)
	}
}
