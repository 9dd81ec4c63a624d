package server

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/koustreak/filedrop/internal/errs"
	"github.com/koustreak/filedrop/internal/filestore"
	"github.com/koustreak/filedrop/internal/logger"
)

// payloadField is the multipart field carrying the uploaded bytes.
const payloadField = "payload"

// filesHandler serves /v1/files. It holds no state of its own: every
// request is a translation from a Store outcome to a status and a body.
type filesHandler struct {
	store     filestore.Store
	maxBytes  int64
	sizeLimit string
	log       *logger.Logger
}

// listFiles handles GET /v1/files.
// An empty store is reported as 404 rather than an empty 200.
func (h *filesHandler) listFiles(w http.ResponseWriter, r *http.Request) {
	h.log.Debug("received request to list all uploaded files")

	names, err := h.store.List(r.Context())
	if err != nil {
		h.log.ErrorWith("failed to list uploaded files", err, nil)
		writeText(w, http.StatusInternalServerError,
			"An error occurred when listing uploaded files."+tryAgainSuffix)
		return
	}
	if len(names) == 0 {
		writeText(w, http.StatusNotFound, "No uploaded files found")
		return
	}

	sorted := slices.Clone(names)
	slices.Sort(sorted)
	writeText(w, http.StatusOK, strings.Join(sorted, ","))
}

// uploadFile handles POST /v1/files/{name} with a multipart body whose
// "payload" part is streamed straight into the store.
func (h *filesHandler) uploadFile(w http.ResponseWriter, r *http.Request) {
	name, err := fileNameParam(r)
	if err == nil {
		err = filestore.ValidateName(name)
	}
	if err != nil {
		writeText(w, http.StatusBadRequest, clientMessage(err))
		return
	}
	h.log.Debugf("received request to upload file %s", name)

	if h.maxBytes > 0 {
		// Rejecting on the declared length, before touching the body, lets a
		// client waiting on "Expect: 100-continue" skip sending it at all.
		if r.ContentLength > h.maxBytes {
			h.writeTooLarge(w, name)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	part, err := payloadPart(r)
	if err != nil {
		if isTooLarge(err) {
			h.writeTooLarge(w, name)
			return
		}
		h.log.Errorf("request did not contain a multipart '%s' body: %v", payloadField, err)
		writeText(w, http.StatusBadRequest, "Request did not contain a multipart 'payload' body")
		return
	}
	defer part.Close()

	err = h.store.Put(r.Context(), name, part)
	switch status := statusFor(err); {
	case err == nil:
		writeText(w, http.StatusOK, "File uploaded successfully")
	case status == http.StatusRequestEntityTooLarge:
		h.writeTooLarge(w, name)
	case status == http.StatusConflict:
		writeText(w, status, name+" already exists on server")
	case status == http.StatusBadRequest:
		writeText(w, status, clientMessage(err))
	default:
		h.log.ErrorWith("an error occurred during file upload", err, map[string]interface{}{"file": name})
		writeText(w, http.StatusInternalServerError, "An error occurred during file upload."+tryAgainSuffix)
	}
}

// deleteFile handles DELETE /v1/files/{name}.
func (h *filesHandler) deleteFile(w http.ResponseWriter, r *http.Request) {
	name, err := fileNameParam(r)
	if err == nil {
		err = filestore.ValidateName(name)
	}
	if err != nil {
		writeText(w, http.StatusBadRequest, clientMessage(err))
		return
	}
	h.log.Debugf("received request to delete file %s", name)

	err = h.store.Delete(r.Context(), name)
	switch status := statusFor(err); {
	case err == nil:
		writeText(w, http.StatusOK, "File deleted successfully")
	case status == http.StatusNotFound:
		writeText(w, status, name+" does not exist on server")
	case status == http.StatusBadRequest:
		writeText(w, status, clientMessage(err))
	default:
		h.log.ErrorWith("an error occurred during file deletion", err, map[string]interface{}{"file": name})
		writeText(w, http.StatusInternalServerError, "An error occurred during file deletion."+tryAgainSuffix)
	}
}

func (h *filesHandler) writeTooLarge(w http.ResponseWriter, name string) {
	h.log.Warnf("%s exceeds the upload size limit of %s", name, h.sizeLimit)
	writeText(w, http.StatusRequestEntityTooLarge,
		"Payload exceeds the upload size limit of "+h.sizeLimit)
}

// fileNameParam returns the decoded {name} path segment. chi matches on
// the raw path when the request has one, so the segment is still escaped
// in that case.
func fileNameParam(r *http.Request) (string, error) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name, nil
	}
	decoded, err := url.PathUnescape(name)
	if err != nil {
		return "", errs.Wrap(errs.ErrKindInvalidInput, "file name is not correctly escaped", err)
	}
	return decoded, nil
}

// payloadPart walks the multipart body up to the payload field.
// The caller owns the returned part.
func payloadPart(r *http.Request) (*multipart.Part, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, err
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, errs.New(errs.ErrKindInvalidInput, "no payload field")
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() == payloadField {
			return part, nil
		}
		part.Close()
	}
}
