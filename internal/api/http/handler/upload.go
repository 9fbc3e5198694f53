package handler

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtroode/vidtube-server/internal/apierrors"
	"github.com/dtroode/vidtube-server/internal/model"
)

const maxFormValueSize = 64 << 10

// FileStager streams multipart uploads into a local temp directory.
type FileStager struct {
	dir     string
	maxSize int64
}

// NewFileStager creates a stager writing to dir and capping request bodies at maxSize bytes.
func NewFileStager(dir string, maxSize int64) *FileStager {
	return &FileStager{dir: dir, maxSize: maxSize}
}

// StagedForm holds the text fields and staged files of a multipart request.
type StagedForm struct {
	values map[string]string
	files  map[string]*model.LocalFile
}

// Value returns the first value of a text field.
func (f *StagedForm) Value(name string) string {
	return f.values[name]
}

// File returns the staged file of a field, or nil.
func (f *StagedForm) File(name string) *model.LocalFile {
	return f.files[name]
}

// Release removes every staged file. Files already removed are ignored.
func (f *StagedForm) Release() {
	for _, file := range f.files {
		_ = os.Remove(file.Path)
	}
}

// Stage reads a multipart body, keeping at most one file per allowed field.
// Files under other field names are rejected. On error nothing stays on disk.
func (s *FileStager) Stage(w http.ResponseWriter, r *http.Request, fileFields ...string) (*StagedForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxSize)

	reader, err := r.MultipartReader()
	if err != nil {
		return nil, apierrors.NewErrValidation("multipart form data expected")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	form := &StagedForm{values: make(map[string]string), files: make(map[string]*model.LocalFile)}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return form, nil
		}
		if err != nil {
			form.Release()
			return nil, bodyError(err)
		}

		if err := s.stagePart(form, part, fileFields); err != nil {
			part.Close()
			form.Release()
			return nil, err
		}
		part.Close()
	}
}

func (s *FileStager) stagePart(form *StagedForm, part *multipart.Part, fileFields []string) error {
	name := part.FormName()
	if name == "" {
		return nil
	}

	if part.FileName() == "" {
		if _, ok := form.values[name]; ok {
			return nil
		}
		value, err := io.ReadAll(io.LimitReader(part, maxFormValueSize))
		if err != nil {
			return bodyError(err)
		}
		form.values[name] = string(value)
		return nil
	}

	if !allowed(name, fileFields) {
		return apierrors.NewErrValidation(fmt.Sprintf("unexpected file field %q", name))
	}
	if _, ok := form.files[name]; ok {
		return apierrors.NewErrValidation(fmt.Sprintf("only one file allowed for %q", name))
	}

	ext := strings.ToLower(filepath.Ext(part.FileName()))
	tmp, err := os.CreateTemp(s.dir, name+"-*"+ext)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	file := &model.LocalFile{
		Path:         tmp.Name(),
		OriginalName: filepath.Base(part.FileName()),
		ContentType:  contentType(part, ext),
	}
	form.files[name] = file

	file.Size, err = io.Copy(tmp, part)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return bodyError(err)
	}

	return nil
}

func allowed(name string, fields []string) bool {
	for _, f := range fields {
		if f == name {
			return true
		}
	}
	return false
}

func contentType(part *multipart.Part, ext string) string {
	if ct := part.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	return mime.TypeByExtension(ext)
}

// bodyError maps body read failures to client errors.
func bodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apierrors.NewErrPayloadTooLarge()
	}
	return apierrors.NewErrValidation("malformed request body")
}
