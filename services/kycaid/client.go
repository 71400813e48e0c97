package kycaid

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"

	fastshot "github.com/opus-domini/fast-shot"

	"github.com/kycflow/gateway/config"
	"github.com/kycflow/gateway/types"
	"github.com/kycflow/gateway/utils"
	"github.com/kycflow/gateway/utils/logger"
)

// Client forwards requests to the KYCAID REST API with the credential of
// the active mode. It holds no state of its own beyond configuration; the
// provider owns every resource it creates.
type Client struct {
	conf  *config.KycaidConfiguration
	modes *ModeStore
}

// NewClient builds a gateway client around the given mode store.
func NewClient(modes *ModeStore) *Client {
	return &Client{
		conf:  config.KycaidConfig(),
		modes: modes,
	}
}

// Modes exposes the mode store for the config endpoints.
func (c *Client) Modes() *ModeStore {
	return c.modes
}

// do performs one JSON request against the provider. The credential is
// resolved once, before the request is dispatched, so a concurrent mode
// change cannot split a single call across credentials.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (map[string]interface{}, error) {
	apiKey := c.modes.APIKey()

	client := fastshot.NewClient(c.conf.BaseURL).
		Config().SetTimeout(c.conf.RequestTimeout).
		Header().AddAll(map[string]string{
		"Accept":        "application/json",
		"Content-Type":  "application/json",
		"Authorization": "Token " + apiKey,
	}).Build()

	switch method {
	case http.MethodGet:
		res, err := client.GET(path).Send()
		if err != nil {
			logger.Errorf("KYCAID GET %s failed: %v", path, err)
			return nil, ErrProviderUnreachable{Err: err}
		}
		return c.relay(res.RawResponse, method, path)
	case http.MethodPost:
		res, err := client.POST(path).Body().AsJSON(body).Send()
		if err != nil {
			logger.Errorf("KYCAID POST %s failed: %v", path, err)
			return nil, ErrProviderUnreachable{Err: err}
		}
		return c.relay(res.RawResponse, method, path)
	case http.MethodDelete:
		res, err := client.DELETE(path).Send()
		if err != nil {
			logger.Errorf("KYCAID DELETE %s failed: %v", path, err)
			return nil, ErrProviderUnreachable{Err: err}
		}
		return c.relay(res.RawResponse, method, path)
	default:
		return nil, fmt.Errorf("unsupported method %q", method)
	}
}

// relay decodes the provider response and converts non-2xx statuses into
// pass-through errors.
func (c *Client) relay(res *http.Response, method, path string) (map[string]interface{}, error) {
	data, err := utils.ParseJSONResponse(res)
	if res.StatusCode >= 400 {
		logger.Warnf("KYCAID %s %s returned %d", method, path, res.StatusCode)
		return nil, &APIError{StatusCode: res.StatusCode, Body: data}
	}
	if err != nil {
		return nil, ErrProviderUnreachable{Err: err}
	}
	return data, nil
}

// CreateApplicant creates a provider-side applicant record.
func (c *Client) CreateApplicant(ctx context.Context, payload interface{}) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodPost, "/applicants", payload)
}

// GetApplicant fetches an applicant by id.
func (c *Client) GetApplicant(ctx context.Context, applicantID string) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodGet, "/applicants/"+applicantID, nil)
}

// CreateDocument attaches an uploaded file to an applicant as a document.
func (c *Client) CreateDocument(ctx context.Context, payload interface{}) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodPost, "/documents", payload)
}

// GetDocument fetches a document by id.
func (c *Client) GetDocument(ctx context.Context, documentID string) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodGet, "/documents/"+documentID, nil)
}

// DeleteDocument removes a document, used to clean up the throwaway
// document created for recognition.
func (c *Client) DeleteDocument(ctx context.Context, documentID string) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodDelete, "/documents/"+documentID, nil)
}

// CreateAddress creates a provider-side address for an applicant.
func (c *Client) CreateAddress(ctx context.Context, payload interface{}) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodPost, "/addresses", payload)
}

// CreateVerification submits an applicant for asynchronous verification.
func (c *Client) CreateVerification(ctx context.Context, payload interface{}) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodPost, "/verifications", payload)
}

// GetVerification fetches the raw verification resource.
func (c *Client) GetVerification(ctx context.Context, verificationID string) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodGet, "/verifications/"+verificationID, nil)
}

// GetVerificationSnapshot fetches a verification and decodes the fields
// the poller cares about.
func (c *Client) GetVerificationSnapshot(ctx context.Context, verificationID string) (*types.VerificationSnapshot, error) {
	data, err := c.GetVerification(ctx, verificationID)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode verification: %w", err)
	}
	var snapshot types.VerificationSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode verification: %w", err)
	}
	if snapshot.VerificationID == "" {
		snapshot.VerificationID = verificationID
	}
	return &snapshot, nil
}

// ListCountries fetches the provider's country reference list.
func (c *Client) ListCountries(ctx context.Context) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodGet, "/countries", nil)
}

// UploadFile streams a transient local file to the provider as a
// multipart body. The caller owns deleting the local copy; this method
// only reads it. fast-shot cannot stream multipart bodies, so this path
// uses the shared net/http client directly.
func (c *Client) UploadFile(ctx context.Context, localPath, filename, contentType string) (map[string]interface{}, error) {
	apiKey := c.modes.APIKey()

	file, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer file.Close()

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		defer pw.Close()
		defer writer.Close()

		if filename == "" {
			filename = filepath.Base(localPath)
		}
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.conf.BaseURL+"/files", pr)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	res, err := utils.GetHTTPClient().Do(req)
	if err != nil {
		logger.Errorf("KYCAID file upload failed: %v", err)
		return nil, ErrProviderUnreachable{Err: err}
	}

	return c.relay(res, http.MethodPost, "/files")
}
