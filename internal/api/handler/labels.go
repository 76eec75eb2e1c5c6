package handler

import (
	"strings"
	"time"
)

const unknownAdvisorLabel = "Inconnu"

// frenchMonths are the abbreviated month names of the fr-FR locale.
var frenchMonths = [12]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// monthLabel turns "2026-01" into "janv. 26". Unparseable keys are returned
// unchanged.
func monthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return frenchMonths[t.Month()-1] + " " + t.Format("06")
}

// firstName is the first whitespace-separated token of name.
func firstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return unknownAdvisorLabel
	}
	return fields[0]
}
