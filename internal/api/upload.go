package api

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/talentscout/intake/internal/resume"
)

// maxResumeBytes caps uploaded resume size at 10 MiB.
const maxResumeBytes = 10 << 20

// UploadResume accepts a PDF resume, extracts its text and contact details,
// and attaches the text to the session when a session_id is provided.
func (h *Handler) UploadResume(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxResumeBytes); err != nil {
		Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		Error(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		Error(w, http.StatusBadRequest, "only PDF resumes are supported")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxResumeBytes+1))
	if err != nil {
		Error(w, http.StatusBadRequest, "failed to read upload")
		return
	}
	if len(data) > maxResumeBytes {
		Error(w, http.StatusRequestEntityTooLarge, "resume exceeds the size limit")
		return
	}

	details, err := resume.ParsePDF(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if errors.Is(err, resume.ErrNoText) {
			Error(w, http.StatusBadRequest, "no text could be extracted from the PDF")
			return
		}
		slog.Warn("Resume parsing failed", "filename", header.Filename, "error", err)
		Error(w, http.StatusBadRequest, "failed to parse the PDF")
		return
	}

	if sessionID := r.FormValue("session_id"); sessionID != "" {
		if !h.engine.AttachResumeText(sessionID, details.Text) {
			slog.Info("Resume uploaded for unknown session", "session_id", sessionID)
		}
	}

	JSON(w, http.StatusOK, details)
}
