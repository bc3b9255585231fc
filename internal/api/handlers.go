package api

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/influencer-matcher/internal/export"
	"github.com/sells-group/influencer-matcher/internal/model"
	"github.com/sells-group/influencer-matcher/internal/source"
)

var allowedExt = map[string]bool{".csv": true, ".xlsx": true}

func (s *server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) stats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Stats())
}

func (s *server) loaded(w http.ResponseWriter) bool {
	if !s.engine.Stats().Loaded {
		writeError(w, http.StatusBadRequest, "No data loaded. Upload collaboration data first.")
		return false
	}
	return true
}

func (s *server) reloadData(w http.ResponseWriter, r *http.Request) {
	if s.reload == nil {
		writeError(w, http.StatusNotImplemented, "reload not configured")
		return
	}
	res, err := s.reload(r.Context())
	if err != nil {
		zap.L().Error("api: reload failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "reload failed")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) uploadData(w http.ResponseWriter, r *http.Request) {
	if s.reload == nil || s.uploadDir == "" {
		writeError(w, http.StatusNotImplemented, "upload not configured")
		return
	}
	if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
		writeError(w, http.StatusBadRequest, "No files provided")
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "No files provided")
		return
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		zap.L().Error("api: create upload dir", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not store files")
		return
	}

	uploaded := []string{}
	for _, fh := range files {
		name := filepath.Base(fh.Filename)
		if name == "." || name == string(filepath.Separator) || !allowedExt[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		if err := saveUpload(fh, filepath.Join(s.uploadDir, name)); err != nil {
			zap.L().Error("api: save upload", zap.String("file", name), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "could not store files")
			return
		}
		uploaded = append(uploaded, name)
	}

	res, err := s.reload(r.Context())
	if err != nil {
		zap.L().Error("api: reload after upload failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "reload failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"uploaded":        uploaded,
		"contacts_loaded": res.Contacts,
		"products_found":  res.Products,
	})
}

func (s *server) searchInfluencer(w http.ResponseWriter, r *http.Request) {
	if !s.loaded(w) {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Name required")
		return
	}

	res := s.engine.Search(req.Name)
	if !res.Found {
		writeJSON(w, http.StatusOK, map[string]any{
			"found":      false,
			"query":      res.Query,
			"message":    "No match found in database",
			"candidates": res.Candidates,
		})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) verifySingle(w http.ResponseWriter, r *http.Request) {
	if !s.loaded(w) {
		return
	}
	var req model.Pair
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Malformed() {
		writeError(w, http.StatusBadRequest, "Name and product required")
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Verify(req.Name, req.Product))
}

func (s *server) verifyBatch(w http.ResponseWriter, r *http.Request) {
	if !s.loaded(w) {
		return
	}

	var pairs []model.Pair
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		p, status, err := s.assignmentsFromUpload(r)
		if err != nil {
			writeError(w, status, err.Error())
			return
		}
		pairs = p
	} else {
		var req struct {
			Assignments []model.Pair `json:"assignments"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		pairs = req.Assignments
	}

	if len(pairs) == 0 {
		writeError(w, http.StatusBadRequest, "No assignments provided")
		return
	}
	writeJSON(w, http.StatusOK, s.engine.VerifyBatch(pairs))
}

// assignmentsFromUpload reads the multipart "file" field as an assignment
// list. The returned status applies when err is non-nil.
func (s *server) assignmentsFromUpload(r *http.Request) ([]model.Pair, int, error) {
	if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
		return nil, http.StatusBadRequest, eris.New("invalid multipart body")
	}
	fhs := r.MultipartForm.File["file"]
	if len(fhs) == 0 {
		return nil, http.StatusBadRequest, eris.New("No assignments provided")
	}
	ext := strings.ToLower(filepath.Ext(fhs[0].Filename))
	if !allowedExt[ext] {
		return nil, http.StatusBadRequest, eris.New("unsupported file type")
	}

	tmp, err := os.CreateTemp("", "assignments-*"+ext)
	if err != nil {
		return nil, http.StatusInternalServerError, eris.New("could not store file")
	}
	path := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(path)

	if err := saveUpload(fhs[0], path); err != nil {
		return nil, http.StatusInternalServerError, eris.New("could not store file")
	}
	pairs, err := source.ReadAssignments(r.Context(), path)
	if err != nil {
		if eris.Is(err, source.ErrNoProductColumn) {
			return nil, http.StatusBadRequest, eris.New("Could not find product column")
		}
		return nil, http.StatusBadRequest, eris.New("could not read assignment file")
	}
	return pairs, 0, nil
}

func (s *server) exportResults(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Results []model.Outcome `json:"results"`
		Format  string          `json:"format"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Results) == 0 {
		writeError(w, http.StatusBadRequest, "No results to export")
		return
	}
	format := export.FormatXLSX
	if req.Format != "" {
		f, err := export.ParseFormat(req.Format)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown export format")
			return
		}
		format = f
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, req.Results); err != nil {
		zap.L().Error("api: export failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	contentType := "text/csv; charset=utf-8"
	if format == export.FormatXLSX {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName("", format)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func saveUpload(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return eris.Wrap(err, "api: open upload")
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return eris.Wrap(err, "api: create file")
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return eris.Wrap(err, "api: write file")
	}
	return eris.Wrap(out.Close(), "api: close file")
}
