package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/luca-patrignani/organ-ledger/application"
	"github.com/luca-patrignani/organ-ledger/domain/organ"
	"github.com/luca-patrignani/organ-ledger/ledger"
)

// BlockView is the presentation form of a block.
type BlockView struct {
	Index     int    `json:"index"`
	Hash      string `json:"hash"`
	PrevHash  string `json:"prev_hash"`
	Timestamp string `json:"timestamp"`
	Data      string `json:"data"`
}

// NewBlockView renders b for display.
func NewBlockView(b ledger.Block) BlockView {
	return BlockView{
		Index:     b.Index,
		Hash:      b.Hash,
		PrevHash:  b.PrevHash,
		Timestamp: b.Time().UTC().Format(time.RFC3339Nano),
		Data:      b.Render(),
	}
}

func blockViews(blocks []ledger.Block) []BlockView {
	out := make([]BlockView, len(blocks))
	for i, b := range blocks {
		out[i] = NewBlockView(b)
	}
	return out
}

// MatchResponse is returned by POST /recipient.
type MatchResponse struct {
	Matched    bool         `json:"matched"`
	Message    string       `json:"message"`
	Recipient  BlockView    `json:"recipient"`
	Donor      *organ.Donor `json:"donor,omitempty"`
	Transplant *BlockView   `json:"transplant,omitempty"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// maxBodyBytes bounds the size of a submitted record.
const maxBodyBytes = 64 << 10

// decodeBody reads a JSON request body into v. It writes the error response
// itself and reports whether decoding succeeded.
func decodeBody(w http.ResponseWriter, r *http.Request, what string, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: what + " record too large"})
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + what + " record: " + err.Error()})
		return false
	}
	return true
}

type handlers struct {
	svc    *application.Service
	logger *slog.Logger
}

func (h handlers) register(mux *http.ServeMux) {
	mux.HandleFunc("POST /donor", h.submitDonor)
	mux.HandleFunc("POST /recipient", h.submitRecipient)
	mux.HandleFunc("GET /ledger/{name}", h.viewLedger)
	mux.HandleFunc("GET /ledger/{name}/search", h.searchLedger)
	mux.HandleFunc("GET /ledger/{name}/verify", h.verifyLedger)
}

func (h handlers) submitDonor(w http.ResponseWriter, r *http.Request) {
	var d organ.Donor
	if !decodeBody(w, r, "donor", &d) {
		return
	}
	d.ID, d.Used = "", false
	if err := organ.ValidateDonor(d); err != nil {
		h.writeError(w, err)
		return
	}
	b, err := h.svc.SubmitDonor(d)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, NewBlockView(b))
}

func (h handlers) submitRecipient(w http.ResponseWriter, r *http.Request) {
	var rec organ.Recipient
	if !decodeBody(w, r, "recipient", &rec) {
		return
	}
	rec.ID, rec.Transplanted = "", false
	if err := organ.ValidateRecipient(rec); err != nil {
		h.writeError(w, err)
		return
	}
	out, err := h.svc.SubmitRecipient(rec)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := MatchResponse{
		Matched:   out.Matched,
		Recipient: NewBlockView(out.Recipient),
		Message:   "No matching donor found. Recipient added to the waiting list.",
	}
	if out.Matched {
		tx := NewBlockView(out.Recorded.Transplant)
		resp.Message = "Match found! Transplant recorded."
		resp.Donor = &out.Donor
		resp.Transplant = &tx
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h handlers) viewLedger(w http.ResponseWriter, r *http.Request) {
	blocks, err := h.svc.ViewLedger(r.PathValue("name"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ledger": r.PathValue("name"),
		"total":  len(blocks),
		"items":  blockViews(blocks),
	})
}

func (h handlers) searchLedger(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")
	blocks, err := h.svc.SearchLedger(r.PathValue("name"), term)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ledger": r.PathValue("name"),
		"term":   term,
		"total":  len(blocks),
		"items":  blockViews(blocks),
	})
}

func (h handlers) verifyLedger(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := h.svc.VerifyLedger(name); err != nil {
		var unknown *ledger.UnknownLedgerError
		if errors.As(err, &unknown) {
			h.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ledger": name, "valid": false, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ledger": name, "valid": true})
}

// writeError maps service errors to HTTP statuses.
func (h handlers) writeError(w http.ResponseWriter, err error) {
	var (
		invalid  organ.ValidationError
		unknown  *ledger.UnknownLedgerError
		encoding *ledger.EncodingError
	)
	switch {
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: invalid})
	case errors.As(err, &unknown):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: unknown.Error()})
	case errors.As(err, &encoding):
		h.logger.Error("append failed", "ledger", encoding.Ledger, "err", encoding.Err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "record could not be stored"})
	default:
		h.logger.Error("request failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
