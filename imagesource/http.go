/*
 * UpdateHub
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package imagesource

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/OSSystems/pkg/log"
	"github.com/anacrolix/missinggo/httptoo"
	"github.com/pkg/errors"

	"github.com/UpdateHub/easyfota/copy"
	"github.com/UpdateHub/easyfota/efuse"
	"github.com/UpdateHub/easyfota/metadata"
	"github.com/UpdateHub/easyfota/partition"
	"github.com/UpdateHub/easyfota/utils"
)

// SlotWriter is the flash side of a session
type SlotWriter interface {
	OpenInactive() (*partition.Slot, error)
	Verify(slot int, length int64) (bool, error)
	SetBootable(slot int) error
}

// HTTPSource fetches images with HTTP(S) GET requests
type HTTPSource struct {
	Partitions  SlotWriter
	FloorReader efuse.Reader
	CopyBackend copy.Interface
	// Transport overrides the transport built from the session Config
	Transport http.RoundTripper
}

// NewHTTPSource creates a HTTPSource writing into "partitions"
func NewHTTPSource(partitions SlotWriter, floorReader efuse.Reader) *HTTPSource {
	return &HTTPSource{
		Partitions:  partitions,
		FloorReader: floorReader,
		CopyBackend: copy.ExtendedIO{},
	}
}

// Begin is the Source interface implementation. It sends the first
// request and fails unless the server answers with the image.
func (src *HTTPSource) Begin(cfg *Config) (Session, error) {
	if cfg.URL == "" {
		return nil, errors.New("no image URL configured")
	}

	if cfg.ChunkSize < 1 {
		return nil, fmt.Errorf("invalid chunk size: %d", cfg.ChunkSize)
	}

	if cfg.PartialHTTPDownload && cfg.MaxHTTPRequestSize < 1 {
		return nil, fmt.Errorf("invalid maximum HTTP request size: %d", cfg.MaxHTTPRequestSize)
	}

	transport := src.Transport
	if transport == nil {
		tlsConfig, err := newTLSConfig(cfg)
		if err != nil {
			return nil, err
		}

		dialer := &net.Dialer{Timeout: cfg.Timeout}

		transport = &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			TLSClientConfig:       tlsConfig,
			TLSHandshakeTimeout:   cfg.Timeout,
			ResponseHeaderTimeout: cfg.Timeout,
			DisableKeepAlives:     !cfg.KeepAlive,
		}
	}

	header := http.Header{}
	if cfg.ClientInit != nil {
		err := cfg.ClientInit(header)
		if err != nil {
			return nil, errors.Wrap(err, "client init callback failed")
		}
	}

	s := &httpSession{
		src:    src,
		cfg:    cfg,
		client: &http.Client{Transport: transport},
		header: header,
		total:  -1,
	}

	err := s.request()
	if err != nil {
		return nil, err
	}

	log.Debug(fmt.Sprintf("session opened for '%s' (image length: %d)", cfg.URL, s.total))

	return s, nil
}

func newTLSConfig(cfg *Config) (*tls.Config, error) {
	var roots *x509.CertPool

	if len(cfg.CertPEM) > 0 {
		roots = x509.NewCertPool()
		if !roots.AppendCertsFromPEM(cfg.CertPEM) {
			return nil, errors.New("failed to parse root certificate")
		}
	}

	tlsConfig := &tls.Config{RootCAs: roots}

	if cfg.SkipCommonNameCheck {
		// chain verification is kept, only the host name is not checked
		tlsConfig.InsecureSkipVerify = true
		tlsConfig.VerifyPeerCertificate = func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
			return verifyChain(rawCerts, roots)
		}
	}

	return tlsConfig, nil
}

func verifyChain(rawCerts [][]byte, roots *x509.CertPool) error {
	if len(rawCerts) == 0 {
		return errors.New("no peer certificate")
	}

	certs := []*x509.Certificate{}
	for _, raw := range rawCerts {
		cert, err := x509.ParseCertificate(raw)
		if err != nil {
			return err
		}
		certs = append(certs, cert)
	}

	intermediates := x509.NewCertPool()
	for _, cert := range certs[1:] {
		intermediates.AddCert(cert)
	}

	_, err := certs[0].Verify(x509.VerifyOptions{
		Roots:         roots,
		Intermediates: intermediates,
	})

	return err
}

type httpSession struct {
	src    *HTTPSource
	cfg    *Config
	client *http.Client
	header http.Header

	body     io.ReadCloser
	offset   int64
	total    int64
	eof      bool
	released bool

	imageHeader *metadata.ImageHeader
	pending     []byte
	slot        *partition.Slot
	bytesRead   int64
}

// request asks for the bytes starting at s.offset
func (s *httpSession) request() error {
	req, err := http.NewRequest(http.MethodGet, s.cfg.URL, nil)
	if err != nil {
		return err
	}

	for k, v := range s.header {
		req.Header[k] = append([]string(nil), v...)
	}

	if s.cfg.PartialHTTPDownload {
		last := s.offset + s.cfg.MaxHTTPRequestSize - 1
		if s.total >= 0 && last >= s.total {
			last = s.total - 1
		}

		req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", s.offset, last))
	}

	res, err := s.client.Do(req)
	if err != nil {
		return err
	}

	switch res.StatusCode {
	case http.StatusOK:
		if s.offset > 0 {
			res.Body.Close()
			return fmt.Errorf("server ignored range request at offset %d", s.offset)
		}

		s.total = res.ContentLength
	case http.StatusPartialContent:
		cr, ok := httptoo.ParseBytesContentRange(res.Header.Get("Content-Range"))
		if !ok || cr.First != s.offset {
			res.Body.Close()
			return fmt.Errorf("invalid content range: '%s'", res.Header.Get("Content-Range"))
		}

		if cr.Length < 0 {
			res.Body.Close()
			return fmt.Errorf("unknown image length in content range: '%s'", res.Header.Get("Content-Range"))
		}

		s.total = cr.Length
	default:
		res.Body.Close()
		return fmt.Errorf("unexpected http status '%s'", res.Status)
	}

	s.body = res.Body

	return nil
}

// Read makes the ranged responses look like a single stream
func (s *httpSession) Read(p []byte) (int, error) {
	for {
		if s.body == nil {
			if s.total >= 0 && s.offset >= s.total {
				return 0, io.EOF
			}

			err := s.request()
			if err != nil {
				return 0, err
			}
		}

		n, err := s.body.Read(p)
		s.offset += int64(n)

		if err != io.EOF {
			return n, err
		}

		s.body.Close()
		s.body = nil

		if !s.cfg.PartialHTTPDownload || s.total < 0 || s.offset >= s.total {
			return n, io.EOF
		}

		if n > 0 {
			return n, nil
		}
	}
}

func (s *httpSession) ReadDescriptor() (*metadata.FirmwareDescriptor, error) {
	if s.released {
		return nil, ErrSessionReleased
	}

	if s.imageHeader != nil {
		d := s.imageHeader.Descriptor
		return &d, nil
	}

	data, err := s.readHeader()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read image header")
	}

	h, err := metadata.ParseImageHeader(data)
	if err != nil {
		return nil, err
	}

	s.imageHeader = h
	s.pending = data

	d := h.Descriptor

	return &d, nil
}

// readHeader reads the image header with the same per read timeout as
// the transfer steps
func (s *httpSession) readHeader() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, metadata.ImageHeaderLength))

	for buf.Len() < metadata.ImageHeaderLength {
		_, eof, err := s.src.CopyBackend.CopyChunk(buf, s, s.cfg.Timeout, metadata.ImageHeaderLength-buf.Len())
		if err != nil {
			return nil, err
		}

		if eof {
			s.eof = true

			if buf.Len() < metadata.ImageHeaderLength {
				return nil, io.ErrUnexpectedEOF
			}
		}
	}

	return buf.Bytes(), nil
}

func (s *httpSession) PerformStep() (StepStatus, error) {
	if s.released {
		return StepDone, ErrSessionReleased
	}

	if s.imageHeader == nil {
		_, err := s.ReadDescriptor()
		if err != nil {
			return StepDone, err
		}
	}

	if s.slot == nil {
		slot, err := s.src.Partitions.OpenInactive()
		if err != nil {
			return StepDone, err
		}

		s.slot = slot
	}

	if len(s.pending) > 0 {
		n, err := s.slot.Write(s.pending)
		s.bytesRead += int64(n)
		s.pending = nil

		if err != nil {
			return StepDone, err
		}

		return s.status(false), nil
	}

	n, eof, err := s.src.CopyBackend.CopyChunk(s.slot, s, s.cfg.Timeout, s.cfg.ChunkSize)
	s.bytesRead += int64(n)

	if err != nil {
		return StepDone, err
	}

	return s.status(eof), nil
}

func (s *httpSession) status(eof bool) StepStatus {
	if eof {
		s.eof = true
	}

	if s.eof || (s.total >= 0 && s.bytesRead >= s.total) {
		return StepDone
	}

	return StepInProgress
}

func (s *httpSession) BytesRead() int64 {
	return s.bytesRead
}

func (s *httpSession) IsComplete() bool {
	if s.total >= 0 {
		return s.bytesRead == s.total
	}

	return s.eof
}

func (s *httpSession) Finish() error {
	if s.released {
		return ErrSessionReleased
	}

	if !s.IsComplete() || s.slot == nil {
		s.release()
		return fmt.Errorf("image incomplete: %d bytes written", s.bytesRead)
	}

	err := s.release()
	if err != nil {
		return err
	}

	if s.imageHeader.HashAppended {
		ok, err := s.src.Partitions.Verify(s.slot.Index, s.bytesRead)
		if err != nil {
			return err
		}

		if !ok {
			return errors.Wrap(ErrValidateFailed, "sha256 mismatch")
		}
	}

	if s.cfg.AntiRollback && s.src.FloorReader != nil {
		floor, err := s.src.FloorReader.SecureVersion()
		if err != nil {
			return err
		}

		if s.imageHeader.Descriptor.SecureVersion < floor {
			return errors.Wrapf(ErrSmallSecureVersion, "%d < %d", s.imageHeader.Descriptor.SecureVersion, floor)
		}
	}

	return s.src.Partitions.SetBootable(s.slot.Index)
}

func (s *httpSession) Abort() error {
	if s.released {
		return nil
	}

	log.Debug(fmt.Sprintf("aborting session for '%s' after %d bytes", s.cfg.URL, s.bytesRead))

	return s.release()
}

func (s *httpSession) release() error {
	s.released = true

	errorList := []error{}

	if s.body != nil {
		errorList = append(errorList, s.body.Close())
		s.body = nil
	}

	if s.slot != nil {
		errorList = append(errorList, s.slot.Close())
	}

	s.client.CloseIdleConnections()

	return utils.MergeErrorList(errorList)
}

// HeaderFromPairs returns a HeaderInitFunc setting "pairs" (name, value, ...)
func HeaderFromPairs(pairs ...string) HeaderInitFunc {
	return func(header http.Header) error {
		if len(pairs)%2 != 0 {
			return fmt.Errorf("odd number of header arguments: %d", len(pairs))
		}

		for i := 0; i < len(pairs); i += 2 {
			header.Set(pairs[i], pairs[i+1])
		}

		return nil
	}
}
