// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Provgraph Contributors

package ingest

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/provgraph-dev/provgraph/internal/core"
	pgerr "github.com/provgraph-dev/provgraph/pkg/errors"
)

// defaultProgressEvery is how many stream lines pass between progress
// log entries.
const defaultProgressEvery = 100000

// maxLineBytes bounds a single stream line. Entity records carry flat
// string annotations; anything past this is a malformed stream.
const maxLineBytes = 1 << 20

// auditRecord is one line of the newline-delimited JSON audit stream.
// Entity records name their vertex type in Record and carry a
// producer-side UUID; the literal record "event" marks an edge between
// two previously announced entities.
type auditRecord struct {
	Record      string            `json:"record"`
	ID          string            `json:"id,omitempty"`
	Type        string            `json:"type,omitempty"`
	From        string            `json:"from,omitempty"`
	To          string            `json:"to,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
}

const eventRecord = "event"

// ReporterConfig tunes an audit Reporter. The zero value is usable.
type ReporterConfig struct {
	// CacheBytes sizes the UUID-to-vertex resolution cache.
	CacheBytes int
	// Filters interpose between the stream and the sink.
	Filters Chain
	// ProgressEvery is the line interval between progress log entries.
	ProgressEvery int
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Reporter consumes a newline-delimited JSON audit event stream and
// feeds the decoded graph to a Sink. Entities are expected to appear on
// the stream before the events that reference them; an event whose
// endpoint cannot be resolved is dropped and counted, never buffered.
type Reporter struct {
	sink          Sink
	cache         *VertexCache
	filters       Chain
	logger        *slog.Logger
	progressEvery int

	linesRead       int64
	malformed       int64
	filtered        int64
	droppedEdges    int64
	verticesEmitted int64
	edgesEmitted    int64
}

// NewReporter wires a reporter to its sink.
func NewReporter(sink Sink, cfg ReporterConfig) *Reporter {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	progressEvery := cfg.ProgressEvery
	if progressEvery <= 0 {
		progressEvery = defaultProgressEvery
	}
	return &Reporter{
		sink:          sink,
		cache:         NewVertexCache(cfg.CacheBytes),
		filters:       cfg.Filters,
		logger:        logger,
		progressEvery: progressEvery,
	}
}

// Run reads the stream to EOF. Malformed lines and unresolvable events
// are logged and skipped; only stream-level failures (read errors,
// context cancellation) abort the run.
func (r *Reporter) Run(ctx context.Context, src io.Reader) error {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return pgerr.Wrap(err, pgerr.CodeIngestStreamFailure, "audit stream canceled")
		}

		r.linesRead++
		if r.linesRead%int64(r.progressEvery) == 0 {
			r.logger.Info("audit stream progress",
				"lines_read", r.linesRead,
				"vertices", r.verticesEmitted,
				"edges", r.edgesEmitted,
				"dropped_edges", r.droppedEdges)
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec auditRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			r.malformed++
			r.logger.Warn("skipping malformed audit line", "line", r.linesRead, "error", err)
			continue
		}

		if rec.Record == eventRecord {
			r.handleEvent(ctx, rec)
		} else {
			r.handleEntity(ctx, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return pgerr.Wrap(err, pgerr.CodeIngestStreamFailure, "reading audit stream",
			pgerr.Field("lines_read", r.linesRead))
	}

	r.logger.Info("audit stream complete",
		"lines_read", r.linesRead,
		"vertices", r.verticesEmitted,
		"edges", r.edgesEmitted,
		"malformed", r.malformed,
		"filtered", r.filtered,
		"dropped_edges", r.droppedEdges)
	return nil
}

func (r *Reporter) handleEntity(ctx context.Context, rec auditRecord) {
	if rec.Record == "" {
		r.malformed++
		r.logger.Warn("entity record without a type", "line", r.linesRead)
		return
	}
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		r.malformed++
		r.logger.Warn("entity record with an invalid id",
			"line", r.linesRead, "id", rec.ID, "error", err)
		return
	}

	v := core.NewVertex(rec.Record)
	for k, val := range rec.Annotations {
		v.AddAnnotation(k, val)
	}
	v.AddAnnotation("uuid", id.String())

	if !r.filters.AdmitVertex(v) {
		r.filtered++
		return
	}
	// Cache only admitted vertices: events touching a filtered entity
	// must resolve to nothing and be dropped.
	if err := r.cache.Put(id, v); err != nil {
		r.logger.Error("caching entity failed", "id", id.String(), "error", err)
	}
	if r.sink.PutVertex(ctx, v) {
		r.verticesEmitted++
	}
}

func (r *Reporter) handleEvent(ctx context.Context, rec auditRecord) {
	src, okSrc := r.resolve(rec.From)
	dst, okDst := r.resolve(rec.To)
	if !okSrc || !okDst {
		r.droppedEdges++
		r.logger.Debug("dropping event with unresolved endpoint",
			"line", r.linesRead, "from", rec.From, "to", rec.To)
		return
	}

	e := core.NewEdge(rec.Type, src, dst)
	for k, val := range rec.Annotations {
		e.AddAnnotation(k, val)
	}

	if !r.filters.AdmitEdge(e) {
		r.filtered++
		return
	}
	if r.sink.PutEdge(ctx, e) {
		r.edgesEmitted++
	}
}

func (r *Reporter) resolve(raw string) (*core.Vertex, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return r.cache.Get(id)
}

// Stats reports the counters accumulated by Run.
func (r *Reporter) Stats() ReporterStats {
	return ReporterStats{
		LinesRead:    r.linesRead,
		Vertices:     r.verticesEmitted,
		Edges:        r.edgesEmitted,
		Malformed:    r.malformed,
		Filtered:     r.filtered,
		DroppedEdges: r.droppedEdges,
	}
}

// ReporterStats summarizes one reporter run.
type ReporterStats struct {
	LinesRead    int64
	Vertices     int64
	Edges        int64
	Malformed    int64
	Filtered     int64
	DroppedEdges int64
}
