package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/adapter/xlsx"
	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/core/domain"
	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/core/port"
)

// updateRun is one processed upload: the rewritten rows, the table they came
// from and the engine's result.
type updateRun struct {
	table   *xlsx.ExportTable
	records []domain.SourceRecord
	result  *port.UpdateResult
}

// handleUpdate processes an upload and streams the updated workbook back as
// an attachment. Matched/unmatched counts and the run ID travel in response
// headers so a client can show them without a second request.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	run, ok := h.process(w, r)
	if !ok {
		return
	}
	run.table.ApplyRewrites(run.records)

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="updated_tiktok_export.xlsx"`)
	w.Header().Set("X-Run-Id", run.result.RunID)
	w.Header().Set("X-Matched-Count", strconv.Itoa(run.result.Summary.MatchedCount))
	w.Header().Set("X-Unmatched-Count", strconv.Itoa(run.result.Summary.UnmatchedCount))
	if err := run.table.Write(w); err != nil {
		h.logger.Error("write workbook", slog.Any("error", err))
	}
}

// summaryResponse is the JSON body of the summary endpoint.
type summaryResponse struct {
	RunID   string            `json:"run_id"`
	Summary domain.RunSummary `json:"summary"`
}

// handleUpdateSummary processes the same upload but returns only the run
// summary and log, for clients that want the processing report without the
// rewritten file.
func (h *Handler) handleUpdateSummary(w http.ResponseWriter, r *http.Request) {
	run, ok := h.process(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	resp := summaryResponse{RunID: run.result.RunID, Summary: run.result.Summary}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// process parses the multipart upload, reads the workbooks and runs the
// engine. On failure it writes the error response itself and returns
// ok=false. A tag workbook that fails to parse is skipped and reported in
// the summary log; only an invalid export workbook is fatal.
func (h *Handler) process(w http.ResponseWriter, r *http.Request) (*updateRun, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		http.Error(w, "invalid multipart upload", http.StatusBadRequest)
		return nil, false
	}

	exports := r.MultipartForm.File["export"]
	if len(exports) != 1 {
		http.Error(w, "exactly one 'export' file is required", http.StatusBadRequest)
		return nil, false
	}
	tagFiles := r.MultipartForm.File["tags"]
	if len(tagFiles) == 0 {
		http.Error(w, "at least one 'tags' file is required", http.StatusBadRequest)
		return nil, false
	}

	table, records, err := h.readExport(exports[0])
	if err != nil {
		var schemaErr *xlsx.SchemaError
		if errors.As(err, &schemaErr) {
			http.Error(w, schemaErr.Error(), http.StatusUnprocessableEntity)
		} else {
			http.Error(w, "export file is not a readable workbook", http.StatusBadRequest)
		}
		return nil, false
	}

	var (
		tagSets [][]domain.TagRecord
		skipped []string
	)
	for _, fh := range tagFiles {
		tags, err := h.readTags(fh)
		if err != nil {
			h.logger.Warn("tag file skipped", slog.String("file", fh.Filename), slog.Any("error", err))
			skipped = append(skipped, fmt.Sprintf("Skipped tag file %q: %v", fh.Filename, err))
			continue
		}
		tagSets = append(tagSets, tags)
	}

	result, err := h.svc.Update(r.Context(), records, tagSets)
	if err != nil {
		var dupErr *port.DuplicateKeyError
		if errors.As(err, &dupErr) {
			http.Error(w, dupErr.Error(), http.StatusConflict)
			return nil, false
		}
		h.logger.Error("update error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return nil, false
	}
	result.Summary.Log = append(result.Summary.Log, skipped...)

	h.logger.Info("run complete",
		slog.String("run_id", result.RunID),
		slog.Int("total", result.Summary.TotalRows),
		slog.Int("matched", result.Summary.MatchedCount),
		slog.Int("unmatched", result.Summary.UnmatchedCount),
		slog.Int("tag_files_skipped", len(skipped)))

	return &updateRun{table: table, records: records, result: result}, true
}

func (h *Handler) readExport(fh *multipart.FileHeader) (*xlsx.ExportTable, []domain.SourceRecord, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return xlsx.ReadExport(f, fh.Filename)
}

func (h *Handler) readTags(fh *multipart.FileHeader) ([]domain.TagRecord, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return xlsx.ReadTags(f, fh.Filename)
}
