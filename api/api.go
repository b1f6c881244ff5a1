package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/nav-translator/api/model"
	"github.com/a-bouts/nav-translator/condor"
	"github.com/a-bouts/nav-translator/projection"
	"github.com/a-bouts/nav-translator/translator"
)

// Reporter is told about every run triggered through the API.
type Reporter interface {
	Report(flightPlan string, results []translator.Result) error
}

type server struct {
	cpuprofile bool
	runner     *translator.Runner
	reporter   Reporter
}

func InitServer(cpuprofile bool, runner *translator.Runner, reporter Reporter) *mux.Router {

	router := mux.NewRouter().StrictSlash(true)

	s := server{
		cpuprofile: cpuprofile,
		runner:     runner,
		reporter:   reporter,
	}

	api := router.PathPrefix("/translator").Subrouter()
	api.HandleFunc("/-/healthz", s.healthz).Methods(http.MethodGet)

	apiV1 := router.PathPrefix("/translator/api/v1").Subrouter()
	apiV1.HandleFunc("/translate", s.translate).Methods(http.MethodPost)
	apiV1.HandleFunc("/targets", s.targets).Methods(http.MethodGet)

	return router
}

func (s *server) healthz(w http.ResponseWriter, r *http.Request) {
	type health struct {
		Status string `json:"status"`
	}

	json.NewEncoder(w).Encode(health{Status: "Ok"})
}

func (s *server) targets(w http.ResponseWriter, r *http.Request) {
	targets := []model.Target{}
	for _, t := range s.runner.Config.Targets {
		targets = append(targets, model.Target{
			Name:        t.Name,
			Kind:        t.Kind.String(),
			Dir:         t.Dir,
			Profile:     t.ProfilePath(),
			DefaultTask: t.DefaultTask,
		})
	}
	json.NewEncoder(w).Encode(targets)
}

func status(err error) int {
	switch {
	case errors.Is(err, condor.ErrInput), errors.Is(err, condor.ErrVersion), errors.Is(err, projection.ErrConversion):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func fail(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(model.Error{Error: err.Error()})
}

func (s *server) translate(w http.ResponseWriter, req *http.Request) {
	if s.cpuprofile {
		defer profile.Start().Stop()
	}

	fields := log.Fields{
		"action": "translate",
	}
	if ip, err := getIp(req); err == nil {
		fields["IP"] = ip
	}
	requestLogger := log.WithFields(fields)

	var t model.Translate
	if err := json.NewDecoder(req.Body).Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		fail(w, http.StatusBadRequest, err)
		return
	}
	flightPlan, err := s.flightPlan(t.FlightPlan)
	if err != nil {
		requestLogger.Warnf("Rejected flight plan: %v", err)
		fail(w, http.StatusForbidden, err)
		return
	}

	requestLogger.Infof("Translate '%s'", flightPlan)

	start := time.Now()
	results, err := s.runner.Translate(flightPlan)
	if err != nil {
		requestLogger.Errorf("Translation failed: %v", err)
		fail(w, status(err), err)
		return
	}

	delta := time.Since(start)
	requestLogger.Infof("Translate took %s", delta.String())

	if s.reporter != nil {
		if err := s.reporter.Report(flightPlan, results); err != nil {
			requestLogger.Warnf("Report failed: %v", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(model.Translation{
		FlightPlan: flightPlan,
		Duration:   delta.String(),
		Results:    results,
	})
}

var errOutsideFlightPlans = errors.New("flight plan outside the flight plan directory")

// flightPlan resolves a requested flight plan. Only files next to the
// configured one can be translated; relative paths are taken from there.
func (s *server) flightPlan(requested string) (string, error) {
	configured := s.runner.Config.FlightPlan
	if requested == "" {
		return configured, nil
	}
	dir, err := filepath.Abs(filepath.Dir(configured))
	if err != nil {
		return "", err
	}
	path := requested
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	path = filepath.Clean(path)
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errOutsideFlightPlans
	}
	return path, nil
}

func getIp(r *http.Request) (string, error) {
	//Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip, nil
	}

	//Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	for _, ip := range strings.Split(ips, ",") {
		ip = strings.TrimSpace(ip)
		if net.ParseIP(ip) != nil {
			return ip, nil
		}
	}

	//Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	if net.ParseIP(ip) != nil {
		return ip, nil
	}
	return "", fmt.Errorf("No valid ip found")
}
