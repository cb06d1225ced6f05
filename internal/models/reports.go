package models

// CategoryReport is one row of the month report: total outgoing spend for a
// category, the summed magnitude rendered as a decimal string.
type CategoryReport struct {
	Name   string `json:"name"`
	Info   string `json:"info"`
	Amount string `json:"amount"`
}

// DailyReport is the outgoing total for a single day.
type DailyReport struct {
	Date   string `json:"date"`
	Amount string `json:"amount"`
}
