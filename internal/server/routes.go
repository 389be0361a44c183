package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/mathdaddy/pkg/core"
)

type solveRequest struct {
	Statement string `json:"statement"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
	Token  string `json:"token,omitempty"`
	Column int    `json:"column,omitempty"`
}

type tokenResponse struct {
	Type    string `json:"type"`
	Literal string `json:"literal"`
	Column  int    `json:"column"`
}

type convertResponse struct {
	Statement string          `json:"statement"`
	Notation  core.Notation   `json:"notation"`
	Postfix   string          `json:"postfix"`
	Tokens    []tokenResponse `json:"tokens"`
}

type operatorResponse struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Precedence    int    `json:"precedence"`
	Arity         string `json:"arity"`
	Associativity string `json:"associativity"`
}

// maxBodyBytes bounds POST bodies.
const maxBodyBytes = 64 << 10

func (s *Server) routes(r chi.Router) {
	r.Get("/healthz", s.handleHealth)
	r.Get("/operators", s.handleOperators)
	r.Get("/events", s.handleEvents)

	r.Get("/solve", s.handleSolve)
	r.Post("/solve", s.handleSolve)
	r.Get("/convert", s.handleConvert)
	r.Post("/convert", s.handleConvert)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"generation": s.Generation(),
	})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	statement, ok := readStatement(w, r)
	if !ok {
		return
	}

	res, err := s.Solver().Solve(statement)
	if err != nil {
		writeSolveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	statement, ok := readStatement(w, r)
	if !ok {
		return
	}

	conv, err := s.Solver().Convert(statement)
	if err != nil {
		writeSolveError(w, err)
		return
	}

	resp := convertResponse{
		Statement: conv.Statement,
		Notation:  conv.Notation,
		Postfix:   conv.Postfix.String(),
		Tokens:    make([]tokenResponse, len(conv.Tokens)),
	}
	for i, tok := range conv.Tokens {
		resp.Tokens[i] = tokenResponse{Type: tok.Type.String(), Literal: tok.Literal, Column: tok.Pos.Column}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOperators(w http.ResponseWriter, _ *http.Request) {
	defs := s.Solver().Table().Defs()
	resp := make([]operatorResponse, len(defs))
	for i, d := range defs {
		resp[i] = operatorResponse{
			Symbol:        d.Symbol,
			Name:          d.Name,
			Precedence:    d.Precedence,
			Arity:         d.Arity.String(),
			Associativity: d.Assoc.String(),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleEvents streams a reload event each time the solver is swapped.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming unsupported"})
		return
	}

	ch := s.events.Subscribe()
	defer s.events.Unsubscribe(ch)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case gen, ok := <-ch:
			if !ok {
				return
			}
			_, _ = fmt.Fprintf(w, "event: reload\ndata: %d\n\n", gen)
			flusher.Flush()
		}
	}
}

// readStatement takes the statement from ?q= on GET and from a JSON body
// on POST.
func readStatement(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method == http.MethodGet {
		q, ok := r.URL.Query()["q"]
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing query parameter q"})
			return "", false
		}
		return q[0], true
	}

	var req solveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return "", false
	}
	return req.Statement, true
}

// writeSolveError maps solver failures to 422 with the error kind and the
// offending token, when there is one.
func writeSolveError(w http.ResponseWriter, err error) {
	resp := errorResponse{Error: err.Error()}
	var cerr *core.Error
	if errors.As(err, &cerr) {
		resp.Kind = cerr.Kind.Error()
		if cerr.Token.Pos.IsValid() {
			resp.Token = cerr.Token.Literal
			resp.Column = cerr.Token.Pos.Column
		}
	}
	writeJSON(w, http.StatusUnprocessableEntity, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
