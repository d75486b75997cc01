package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/diewo77/go-timebill/internal/models"
)

// totalFormsField carries the row count of a work-entry batch; each row's
// fields are keyed by positional index (work_entries-{i}-work_date etc.).
const totalFormsField = "work_entries-TOTAL_FORMS"

// decodeWorkEntries turns the flat keyed batch format into work entries.
// This is the single decoding contract for entry input: a row is kept only
// when its date parses and it has hours or a description; blank hours default
// to zero; anything else is dropped without surfacing an error.
func decodeWorkEntries(form url.Values) []models.WorkEntry {
	total, err := strconv.Atoi(form.Get(totalFormsField))
	if err != nil || total <= 0 {
		return nil
	}

	var entries []models.WorkEntry
	for i := 0; i < total; i++ {
		prefix := fmt.Sprintf("work_entries-%d-", i)
		dateStr := form.Get(prefix + "work_date")
		hoursStr := form.Get(prefix + "hours")
		description := form.Get(prefix + "description")

		if dateStr == "" || (hoursStr == "" && description == "") {
			continue
		}
		workDate, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		hours := 0.0
		if hoursStr != "" {
			h, err := strconv.ParseFloat(hoursStr, 64)
			if err != nil {
				continue
			}
			hours = h
		}
		entries = append(entries, models.WorkEntry{
			WorkDate:    workDate,
			Hours:       hours,
			Description: description,
		})
	}
	return entries
}
