// Package remote serves the block store of a running block follower over
// HTTP and reads it from other processes. The embedded kv store takes an
// exclusive file lock, so tools running next to the follower read through
// it instead of opening the file.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/goodnatureofminers/blockinsight7000-rewards/internal/model"
	"go.uber.org/zap"
)

// MaxRange caps the heights answered by one range request.
const MaxRange = 10_000

type (
	// Reader is the store side served to other processes.
	Reader interface {
		BlocksInRange(ctx context.Context, from, to uint64) ([]model.BlockRecord, error)
		BlockByHeight(ctx context.Context, height uint64) (model.BlockRecord, bool, error)
		MaxContiguousBlockHeight(ctx context.Context) (uint64, error)
	}
)

type blockDoc struct {
	Height    uint64 `json:"height"`
	Proposer  string `json:"proposer"`
	Timestamp int64  `json:"timestamp"`
}

type rangeDoc struct {
	Blocks []blockDoc `json:"blocks"`
}

type heightDoc struct {
	Height uint64 `json:"height"`
}

type errorDoc struct {
	Error string `json:"error"`
}

// Routes returns the read routes to mount next to /metrics.
func Routes(store Reader, logger *zap.Logger) map[string]http.Handler {
	h := handler{store: store, logger: logger}
	return map[string]http.Handler{
		"GET /blocks":            http.HandlerFunc(h.blocksInRange),
		"GET /blocks/contiguous": http.HandlerFunc(h.contiguous),
		"GET /blocks/{height}":   http.HandlerFunc(h.blockByHeight),
	}
}

type handler struct {
	store  Reader
	logger *zap.Logger
}

func (h handler) blocksInRange(w http.ResponseWriter, r *http.Request) {
	from, err := parseHeight(r.URL.Query().Get("from"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorDoc{Error: "from: " + err.Error()})
		return
	}
	to, err := parseHeight(r.URL.Query().Get("to"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorDoc{Error: "to: " + err.Error()})
		return
	}
	if from > to || to-from >= MaxRange {
		writeJSON(w, http.StatusBadRequest, errorDoc{Error: fmt.Sprintf("range %d..%d must be ascending and span at most %d heights", from, to, MaxRange)})
		return
	}

	blocks, err := h.store.BlocksInRange(r.Context(), from, to)
	if err != nil {
		h.fail(w, "blocks in range", err)
		return
	}
	doc := rangeDoc{Blocks: make([]blockDoc, 0, len(blocks))}
	for _, b := range blocks {
		doc.Blocks = append(doc.Blocks, toDoc(b))
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h handler) blockByHeight(w http.ResponseWriter, r *http.Request) {
	height, err := parseHeight(r.PathValue("height"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorDoc{Error: err.Error()})
		return
	}
	b, found, err := h.store.BlockByHeight(r.Context(), height)
	if err != nil {
		h.fail(w, "block by height", err)
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, errorDoc{Error: fmt.Sprintf("block %d is not stored", height)})
		return
	}
	writeJSON(w, http.StatusOK, toDoc(b))
}

func (h handler) contiguous(w http.ResponseWriter, r *http.Request) {
	height, err := h.store.MaxContiguousBlockHeight(r.Context())
	if err != nil {
		h.fail(w, "max contiguous block height", err)
		return
	}
	writeJSON(w, http.StatusOK, heightDoc{Height: height})
}

func (h handler) fail(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	h.logger.Error("serve block store read failed", zap.String("operation", op), zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorDoc{Error: op + " failed"})
}

func parseHeight(s string) (uint64, error) {
	if s == "" {
		return 0, errors.New("height is required")
	}
	h, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid height %q", s)
	}
	return h, nil
}

func toDoc(b model.BlockRecord) blockDoc {
	return blockDoc{Height: b.Height, Proposer: b.Proposer, Timestamp: b.Timestamp.Unix()}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
