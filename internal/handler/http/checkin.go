package http

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/biotrackhr/biotrack-backend-go/internal/handler/http/response"
	"github.com/biotrackhr/biotrack-backend-go/internal/service/checkinimport"
)

// Device exports are small text files; anything past this is not a real one.
const maxImportBodySize = 10 << 20

type CheckinHandler interface {
	Import(w http.ResponseWriter, r *http.Request)
}

type CheckinHandlerImpl struct {
	importService checkinimport.Service
}

// Import implements CheckinHandler. The body is the raw device export text,
// either as text/plain or as the "file" part of a multipart form.
func (h *CheckinHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	rawText, err := readImportBody(r)
	if err != nil {
		slog.Error("Import body read error", "error", err)
		response.BadRequest(w, "Failed to read import file", nil)
		return
	}

	if rawText == "" {
		response.BadRequest(w, "Import file is empty", nil)
		return
	}

	summary, err := h.importService.Import(r.Context(), rawText)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-in import completed", summary)
}

func readImportBody(r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImportBodySize); err != nil {
			return "", err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return "", err
		}
		defer file.Close()

		raw, err := io.ReadAll(io.LimitReader(file, maxImportBodySize))
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxImportBodySize))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func NewCheckinHandler(importService checkinimport.Service) CheckinHandler {
	return &CheckinHandlerImpl{
		importService: importService,
	}
}
