// Package server exposes the codec over HTTP. Uploads are processed in memory and never written
// to disk.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/andresmejia3/lsbcrypt/internal/config"
	"github.com/andresmejia3/lsbcrypt/pkg/stego"
)

const (
	msgNotFound      = "No hidden message found"
	msgWrongKey      = "Failed to decrypt message. Incorrect key?"
	msgNoImage       = "No image file provided"
	msgInvalidImage  = "Invalid image file"
	msgUnreadable    = "Could not process the image"
	msgKeyRequired   = "A key is required"
	msgTooLarge      = "Upload too large"
	msgInternalError = "Internal server error"
)

// Server serves /encode, /decode, /capacity and /healthz.
type Server struct {
	cfg     config.Config
	codec   *stego.Codec
	order   stego.ChannelOrder
	logger  zerolog.Logger
	handler http.Handler
}

// New builds the handler chain. codec must be configured like cfg.Codec so that images encoded by
// the server can be decoded by the CLI.
func New(cfg config.Config, codec *stego.Codec, logger zerolog.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		codec:  codec,
		order:  cfg.Order(),
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /encode", s.handleEncode)
	mux.HandleFunc("POST /decode", s.handleDecode)
	mux.HandleFunc("POST /capacity", s.handleCapacity)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	})

	var h http.Handler = mux
	h = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("Request")
	})(h)
	h = hlog.RemoteAddrHandler("remote")(h)
	h = hlog.RequestIDHandler("request_id", "X-Request-Id")(h)
	h = hlog.NewHandler(logger)(h)
	s.handler = h

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves on cfg.Server.Address until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Address,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", srv.Addr).Msg("Listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}

	key := []byte(r.FormValue("key"))
	if len(key) == 0 {
		writeError(w, msgKeyRequired, http.StatusBadRequest)
		return
	}

	message, err := formMessage(r)
	if err != nil {
		writeError(w, "A message is required", http.StatusBadRequest)
		return
	}

	pixels, ok := s.readCarrier(w, r)
	if !ok {
		return
	}

	encoded, err := s.codec.Conceal(pixels, message, key)
	if err != nil {
		s.writeCodecError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := stego.EncodePNG(&buf, encoded); err != nil {
		s.writeCodecError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="encoded_image.png"`)
	w.Write(buf.Bytes())
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}

	key := []byte(r.FormValue("key"))
	if len(key) == 0 {
		writeError(w, msgKeyRequired, http.StatusBadRequest)
		return
	}

	pixels, ok := s.readCarrier(w, r)
	if !ok {
		return
	}

	message, err := s.codec.RevealText(pixels, key)
	if err != nil {
		s.writeCodecError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (s *Server) handleCapacity(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}

	pixels, ok := s.readCarrier(w, r)
	if !ok {
		return
	}

	bits := s.codec.Capacity(pixels.Width, pixels.Height)
	writeJSON(w, http.StatusOK, map[string]int{
		"width":  pixels.Width,
		"height": pixels.Height,
		"bits":   bits,
		"bytes":  bits / 8,
	})
}

// parseForm applies the upload limit and parses the multipart body.
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Limits.MaxUploadBytes)

	if err := r.ParseMultipartForm(s.cfg.Limits.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			writeError(w, msgTooLarge, http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, fmt.Sprintf("invalid multipart form: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

// readCarrier admits the "image" part by extension and header dimensions before decoding it.
func (s *Server) readCarrier(w http.ResponseWriter, r *http.Request) (*stego.PixelBuffer, bool) {
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, msgNoImage, http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	if !s.cfg.AllowsExtension(header.Filename) {
		writeError(w, msgInvalidImage, http.StatusBadRequest)
		return nil, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, msgUnreadable, http.StatusBadRequest)
		return nil, false
	}

	cfg, format, err := stego.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		writeError(w, msgUnreadable, http.StatusBadRequest)
		return nil, false
	}
	if cfg.Width > s.cfg.Limits.MaxWidth || cfg.Height > s.cfg.Limits.MaxHeight {
		writeError(w, fmt.Sprintf("Image too large: %dx%d exceeds %dx%d",
			cfg.Width, cfg.Height, s.cfg.Limits.MaxWidth, s.cfg.Limits.MaxHeight), http.StatusBadRequest)
		return nil, false
	}

	pixels, _, err := stego.DecodeImage(bytes.NewReader(data), s.order)
	if err != nil {
		writeError(w, msgUnreadable, http.StatusBadRequest)
		return nil, false
	}

	hlog.FromRequest(r).Debug().
		Str("format", format).
		Int("width", pixels.Width).
		Int("height", pixels.Height).
		Bool("lossy", stego.IsLossyFormat(format)).
		Msg("Decoded carrier")

	return pixels, true
}

// formMessage reads the message from a "message" file part, falling back to the form field.
func formMessage(r *http.Request) ([]byte, error) {
	if file, _, err := r.FormFile("message"); err == nil {
		defer file.Close()
		return io.ReadAll(file)
	} else if !errors.Is(err, http.ErrMissingFile) {
		return nil, err
	}

	if _, ok := r.MultipartForm.Value["message"]; !ok {
		return nil, http.ErrMissingFile
	}
	return []byte(r.FormValue("message")), nil
}

func (s *Server) writeCodecError(w http.ResponseWriter, r *http.Request, err error) {
	var capErr *stego.CapacityError

	switch {
	case errors.Is(err, stego.ErrNotFound):
		writeError(w, msgNotFound, http.StatusBadRequest)
	case stego.IsWrongKey(err):
		writeError(w, msgWrongKey, http.StatusBadRequest)
	case errors.As(err, &capErr):
		writeError(w, fmt.Sprintf("Message too long to fit in the image. Max bytes: %d", capErr.MaxBytes()), http.StatusBadRequest)
	case errors.Is(err, stego.ErrFormat), errors.Is(err, stego.ErrInvalidKey):
		writeError(w, err.Error(), http.StatusBadRequest)
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("Request failed")
		writeError(w, msgInternalError, http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
