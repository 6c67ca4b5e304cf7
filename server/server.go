// Package server exposes chord recognition over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"chordscope/chord"
)

const maxBodyBytes = 64 << 10

// RecognizeRequest is the body of POST /recognize
type RecognizeRequest struct {
	Notes   []int `json:"notes"`
	Octaves bool  `json:"octaves"` // include octave numbers in names
}

// ChordResult is one recognised chord
type ChordResult struct {
	Label     string `json:"label"`
	Name      string `json:"name"`
	Abbrev    string `json:"abbrev"`
	Root      string `json:"root"`
	Bass      string `json:"bass"`
	Inversion int    `json:"inversion"`
	Quality   string `json:"quality"`
}

type RecognizeResponse struct {
	Notes  []string      `json:"notes"`
	Chords []ChordResult `json:"chords"`
}

type TemplateResult struct {
	Name             string `json:"name"`
	Abbrev           string `json:"abbrev"`
	Intervals        []int  `json:"intervals"`
	Quality          string `json:"quality"`
	ChallengeEnabled bool   `json:"challengeEnabled"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler builds the router. An empty origin list allows any origin.
func NewHandler(allowedOrigins []string) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/recognize", handleRecognize).Methods(http.MethodPost)
	router.HandleFunc("/templates", handleTemplates).Methods(http.MethodGet)
	router.HandleFunc("/health", handleHealth).Methods(http.MethodGet)
	router.Use(logRequests)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(router)
}

// ListenAndServe serves h on addr until ctx is cancelled
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func handleRecognize(w http.ResponseWriter, r *http.Request) {
	var req RecognizeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	held := make([]chord.Key, 0, len(req.Notes))
	for _, n := range req.Notes {
		if n < 0 || n >= chord.NumKeys {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("note %d out of range 0-%d", n, chord.NumKeys-1))
			return
		}
		held = append(held, chord.Key(n))
	}
	slices.Sort(held)
	held = slices.Compact(held)

	writeJSON(w, http.StatusOK, recognize(held, req.Octaves))
}

func recognize(held []chord.Key, octaves bool) RecognizeResponse {
	resp := RecognizeResponse{
		Notes:  make([]string, len(held)),
		Chords: []ChordResult{},
	}
	for i, k := range held {
		resp.Notes[i] = chord.NoteName(k, octaves)
	}
	for _, m := range chord.Recognize(held) {
		resp.Chords = append(resp.Chords, ChordResult{
			Label:     m.Label(),
			Name:      m.Template.Name,
			Abbrev:    m.Template.Abbrev,
			Root:      chord.NoteName(m.Root, octaves),
			Bass:      chord.NoteName(m.Bass, octaves),
			Inversion: m.Inversion,
			Quality:   m.Template.Quality.String(),
		})
	}
	return resp
}

func handleTemplates(w http.ResponseWriter, r *http.Request) {
	all := chord.All()
	res := make([]TemplateResult, len(all))
	for i, t := range all {
		res[i] = TemplateResult{
			Name:             t.Name,
			Abbrev:           t.Abbrev,
			Intervals:        t.Intervals,
			Quality:          t.Quality.String(),
			ChallengeEnabled: t.ChallengeEnabled,
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %v", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
