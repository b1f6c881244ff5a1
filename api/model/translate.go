package model

import (
	"github.com/a-bouts/nav-translator/translator"
)

type Translate struct {
	// FlightPlan overrides the configured flight plan path.
	FlightPlan string `json:"flightPlan"`
}

type Translation struct {
	FlightPlan string              `json:"flightPlan"`
	Duration   string              `json:"duration"`
	Results    []translator.Result `json:"results"`
}

type Target struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Dir         string `json:"dir"`
	Profile     string `json:"profile"`
	DefaultTask bool   `json:"defaultTask"`
}

type Error struct {
	Error string `json:"error"`
}
