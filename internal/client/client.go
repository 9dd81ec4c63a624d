// Package client talks to the file server's HTTP API. Every call is a
// single blocking request whose result, success or not, comes back as an
// Outcome and is reported through the logger.
package client

import (
	"context"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/koustreak/filedrop/internal/logger"
)

const (
	payloadField      = "payload"
	sizeLimitEndpoint = "fileUploadSizeLimit"

	// requestIDHeader is honoured by the server's request id middleware,
	// so both sides log the same id for a call.
	requestIDHeader = "X-Request-Id"
)

// Client is safe for concurrent use.
type Client struct {
	http     *resty.Client
	filesURL string
	statsURL string
	log      *logger.Logger

	mu        sync.Mutex
	sizeLimit string // empty until fetched successfully
}

// New builds a client for the API described by cfg. A nil cfg uses
// DefaultConfig.
func New(cfg *Config, log *logger.Logger) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("client")

	rc := resty.New().
		SetRetryCount(0).
		SetLogger(log)
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}

	return &Client{
		http:     rc,
		filesURL: cfg.FilesURL(),
		statsURL: cfg.StatsURL(),
		log:      log,
	}
}

// List fetches the names of all stored files.
func (c *Client) List(ctx context.Context) Outcome {
	c.log.Debug("requesting list of all uploaded files")

	req, reqID := c.request(ctx)
	resp, err := req.Get(c.filesURL)
	if err != nil {
		return c.report("list", reqID, Outcome{
			Kind:    TransportError,
			Err:     err,
			Message: "Error fetching list of all uploaded files. Please try again",
		})
	}

	out := Outcome{Status: resp.StatusCode(), Body: string(resp.Body())}
	switch out.Status {
	case http.StatusOK:
		out.Kind, out.Message = Success, "Currently uploaded files: "+out.Body
	case http.StatusNotFound:
		out.Kind, out.Message = NotFound, "No files have been uploaded yet"
	case http.StatusInternalServerError:
		out.Kind, out.Message = ServerError, "Unexpected server error when listing uploaded files. Please try again"
	default:
		out.Kind, out.Message = UnknownError, "Unexpected error when listing uploaded files. Please try again"
	}
	return c.report("list", reqID, out)
}

// Upload sends the file at localPath, stored remotely under its base name.
// The caller is expected to have checked that localPath exists; a read
// failure surfaces as a TransportError.
func (c *Client) Upload(ctx context.Context, localPath string) Outcome {
	name := filepath.Base(localPath)
	c.log.Debugf("requesting to upload the file %s", localPath)

	req, reqID := c.request(ctx)
	resp, err := req.
		SetHeader("Expect", "100-continue").
		SetPathParam("name", name).
		SetFile(payloadField, localPath).
		Post(c.filesURL + "/{name}")
	if err != nil {
		return c.report("upload", reqID, Outcome{
			Kind:    TransportError,
			Err:     err,
			Message: "Error uploading file. Please try again",
		})
	}

	out := Outcome{Status: resp.StatusCode(), Body: string(resp.Body())}
	switch out.Status {
	case http.StatusOK:
		out.Kind, out.Message = Success, "Successfully uploaded file "+name
	case http.StatusBadRequest:
		out.Kind, out.Message = BadRequest, "Upload error. Missing 'payload' from multipart body"
	case http.StatusConflict:
		out.Kind, out.Message = Conflict, "Upload error. "+name+" already exists on server"
	case http.StatusRequestEntityTooLarge:
		out.Kind = TooLarge
		out.Message = name + " is larger than size limit of " + c.UploadSizeLimit(ctx) +
			". Please try again with smaller files"
	case http.StatusInternalServerError:
		out.Kind, out.Message = ServerError, "Unexpected server error when uploading file "+name+". Please try again"
	default:
		out.Kind, out.Message = UnknownError, "Unexpected error when uploading file "+name+". Please try again"
	}
	return c.report("upload", reqID, out)
}

// Delete removes the stored file called name. The file does not need to
// exist locally.
func (c *Client) Delete(ctx context.Context, name string) Outcome {
	c.log.Debugf("requesting deletion of %s", name)

	req, reqID := c.request(ctx)
	resp, err := req.
		SetPathParam("name", name).
		Delete(c.filesURL + "/{name}")
	if err != nil {
		return c.report("delete", reqID, Outcome{
			Kind:    TransportError,
			Err:     err,
			Message: "Error deleting file. Please try again",
		})
	}

	out := Outcome{Status: resp.StatusCode(), Body: string(resp.Body())}
	switch out.Status {
	case http.StatusOK:
		out.Kind, out.Message = Success, "Successfully deleted file "+name
	case http.StatusNotFound:
		out.Kind, out.Message = NotFound, "Did not delete anything. File "+name+" is not present on server"
	case http.StatusInternalServerError:
		out.Kind, out.Message = ServerError, "Unexpected server error when deleting file "+name+". Please try again"
	default:
		out.Kind, out.Message = UnknownError, "Unexpected error when deleting file "+name+". Please try again"
	}
	return c.report("delete", reqID, out)
}

// UploadSizeLimit returns the server's upload size limit, fetching it on
// first use. Only a successful fetch is cached; on failure it returns ""
// and the next call asks the server again.
func (c *Client) UploadSizeLimit(ctx context.Context) string {
	c.mu.Lock()
	cached := c.sizeLimit
	c.mu.Unlock()
	if cached != "" {
		return cached
	}

	req, _ := c.request(ctx)
	resp, err := req.Get(c.statsURL + "/" + sizeLimitEndpoint)
	if err != nil || !resp.IsSuccess() {
		c.log.Debug("could not fetch the upload size limit; the server still enforces it")
		return ""
	}

	limit := string(resp.Body())
	c.mu.Lock()
	c.sizeLimit = limit
	c.mu.Unlock()
	return limit
}

// request starts a request tagged with a fresh request id.
func (c *Client) request(ctx context.Context) (*resty.Request, string) {
	id := uuid.NewString()
	return c.http.R().SetContext(ctx).SetHeader(requestIDHeader, id), id
}

// report logs out at a level matching its kind and returns it unchanged.
func (c *Client) report(op, reqID string, out Outcome) Outcome {
	log := c.log.With().
		Str("op", op).
		Str("request_id", reqID).
		Str("outcome", out.Kind.String()).
		Int("status", out.Status).
		Logger()

	switch {
	case out.Kind == Success:
		log.Info(out.Message)
	case out.Kind == NotFound && op == "list":
		log.Warn(out.Message)
	case out.Err != nil:
		log.ErrorWith(out.Message, out.Err, nil)
	default:
		log.Error(out.Message)
	}
	return out
}
