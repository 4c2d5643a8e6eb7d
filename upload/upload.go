// Package upload sends creator videos to Cloudinary and records them
// with the backend.
package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/clipwave/clipwave/auth"
	"github.com/clipwave/clipwave/backend"
	"github.com/clipwave/clipwave/feed"
	"github.com/clipwave/clipwave/filesystem"
	"github.com/clipwave/clipwave/key"
	"github.com/clipwave/clipwave/log"
	"github.com/clipwave/clipwave/network"
	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
)

// DefaultEndpoint is the Cloudinary API root.
const DefaultEndpoint = "https://api.cloudinary.com/v1_1"

// Extensions are the accepted video containers.
var Extensions = []string{".mp4", ".mov", ".avi"}

var (
	ErrNotCreator  = errors.New("only creator accounts can upload")
	ErrUnsupported = fmt.Errorf("%w: unsupported file type, use %s", feed.ErrValidation, strings.Join(Extensions, " "))
	ErrTooLarge    = fmt.Errorf("%w: file is too large", feed.ErrValidation)
)

// API is the part of the backend an upload needs.
type API interface {
	UploadSignature(ctx context.Context, token string, m backend.Metadata) (backend.Signature, error)
	SaveUpload(ctx context.Context, token string, u backend.Uploaded) error
}

type Uploader struct {
	api     API
	session auth.Session
	http    *http.Client

	Endpoint  string
	CloudName string
	Preset    string
	// MaxSize is the largest accepted file in bytes.
	MaxSize int64
}

// New returns an uploader configured from upload.* keys.
func New(api API, session auth.Session) *Uploader {
	return &Uploader{
		api:       api,
		session:   session,
		http:      network.Client,
		Endpoint:  DefaultEndpoint,
		CloudName: viper.GetString(key.UploadCloudName),
		Preset:    viper.GetString(key.UploadPreset),
		MaxSize:   int64(viper.GetInt(key.UploadMaxSizeMB)) << 20,
	}
}

// Validate checks the account role and the file at path.
func (u *Uploader) Validate(path string) (os.FileInfo, error) {
	if !u.session.IsCreator() {
		return nil, ErrNotCreator
	}

	if !slices.Contains(Extensions, strings.ToLower(filepath.Ext(path))) {
		return nil, ErrUnsupported
	}

	info, err := filesystem.API().Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", feed.ErrValidation, path)
	}
	if u.MaxSize > 0 && info.Size() > u.MaxSize {
		return nil, fmt.Errorf("%w (%s, limit %s)", ErrTooLarge, humanize.IBytes(uint64(info.Size())), humanize.IBytes(uint64(u.MaxSize)))
	}

	return info, nil
}

// asset is the part of Cloudinary's answer that gets recorded.
type asset struct {
	PublicID  string  `json:"public_id"`
	SecureURL string  `json:"secure_url"`
	Duration  float64 `json:"duration"`
	Format    string  `json:"format"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload validates path, sends it and saves the record. progress, when
// not nil, is called from the calling goroutine and the upload goroutine.
func (u *Uploader) Upload(ctx context.Context, path string, meta backend.Metadata, progress func(Progress)) (backend.Uploaded, error) {
	report := func(p Progress) {
		if progress != nil {
			progress(p)
		}
	}
	fail := func(err error) (backend.Uploaded, error) {
		report(Progress{Status: Failed, Err: err})
		return backend.Uploaded{}, err
	}

	info, err := u.Validate(path)
	if err != nil {
		return fail(err)
	}

	if strings.TrimSpace(meta.Title) == "" {
		return fail(fmt.Errorf("%w: title is required", feed.ErrValidation))
	}

	total := info.Size()
	report(Progress{Status: Idle, Total: total})

	sig, err := u.api.UploadSignature(ctx, u.session.Token, meta)
	if err != nil {
		return fail(fmt.Errorf("upload signature: %w", err))
	}

	stored, err := u.send(ctx, path, meta, sig, total, report)
	if err != nil {
		return fail(err)
	}

	report(Progress{Status: Processing, Sent: total, Total: total})

	record := backend.Uploaded{
		CloudinaryID: stored.PublicID,
		Title:        meta.Title,
		Description:  meta.Description,
		Duration:     stored.Duration,
		Format:       stored.Format,
		URL:          stored.SecureURL,
	}
	if err := u.api.SaveUpload(ctx, u.session.Token, record); err != nil {
		return fail(fmt.Errorf("save upload: %w", err))
	}

	log.WithFields(log.Fields{"id": record.CloudinaryID, "size": total}).Info("video uploaded")
	report(Progress{Status: Completed, Sent: total, Total: total})
	return record, nil
}

func (u *Uploader) send(ctx context.Context, path string, meta backend.Metadata, sig backend.Signature, total int64, report func(Progress)) (asset, error) {
	file, err := filesystem.API().Open(path)
	if err != nil {
		return asset{}, err
	}
	defer file.Close()

	body, writer := io.Pipe()
	form := multipart.NewWriter(writer)

	go func() {
		writer.CloseWithError(writeForm(form, file, filepath.Base(path), u.fields(meta, sig), func(sent int64) {
			report(Progress{Status: Uploading, Sent: sent, Total: total})
		}))
	}()

	endpoint := fmt.Sprintf("%s/%s/video/upload", strings.TrimRight(u.Endpoint, "/"), u.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		body.Close()
		return asset{}, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := u.http.Do(req)
	if err != nil {
		return asset{}, fmt.Errorf("%w: %w", feed.ErrNetwork, err)
	}
	defer resp.Body.Close()

	var out asset
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := http.StatusText(resp.StatusCode)
		if decodeErr == nil && out.Error != nil {
			message = out.Error.Message
		}
		return asset{}, fmt.Errorf("%w: cloudinary: %d %s", feed.ErrNetwork, resp.StatusCode, message)
	}
	if decodeErr != nil {
		return asset{}, fmt.Errorf("%w: decode cloudinary response: %w", feed.ErrNetwork, decodeErr)
	}

	return out, nil
}

func (u *Uploader) fields(meta backend.Metadata, sig backend.Signature) [][2]string {
	return [][2]string{
		{"upload_preset", u.Preset},
		{"api_key", sig.APIKey},
		{"timestamp", strconv.FormatInt(sig.Timestamp, 10)},
		{"signature", sig.Signature},
		{"context", contextField(meta)},
	}
}

// contextField encodes meta as Cloudinary's key=value|key=value context.
func contextField(meta backend.Metadata) string {
	escape := strings.NewReplacer(`|`, `\|`, `=`, `\=`).Replace
	return "title=" + escape(meta.Title) + "|description=" + escape(meta.Description)
}

func writeForm(form *multipart.Writer, file io.Reader, name string, fields [][2]string, sent func(int64)) error {
	for _, field := range fields {
		if err := form.WriteField(field[0], field[1]); err != nil {
			return err
		}
	}

	part, err := form.CreateFormFile("file", name)
	if err != nil {
		return err
	}

	if _, err := io.Copy(part, &counter{r: file, sent: sent}); err != nil {
		return err
	}
	return form.Close()
}

type counter struct {
	r    io.Reader
	n    int64
	sent func(int64)
}

func (c *counter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.n += int64(n)
		c.sent(c.n)
	}
	return n, err
}
