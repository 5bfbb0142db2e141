package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/cognicore/nameparser/internal/metrics"
	"github.com/cognicore/nameparser/pkg/nameparser"
	"github.com/cognicore/nameparser/pkg/nameparser/internalerr"
	"github.com/cognicore/nameparser/pkg/nameparser/record"
	"github.com/cognicore/nameparser/pkg/nameparser/store"
)

// ParseRequest is the body of POST /api/v1/parse
type ParseRequest struct {
	Name           string `json:"name" validate:"required,max=1024"`
	PrefixInFamily *bool  `json:"prefix_in_family,omitempty"`
}

// BatchRequest is the body of POST /api/v1/parse/batch
type BatchRequest struct {
	Names          []string `json:"names" validate:"required,min=1,dive,required,max=1024"`
	PrefixInFamily *bool    `json:"prefix_in_family,omitempty"`
}

// ParseResponse is one parsed name
type ParseResponse struct {
	Input    string                   `json:"input"`
	Name     *nameparser.Name         `json:"name"`
	Contact  nameparser.ContactRecord `json:"contact"`
	N        string                   `json:"n"`
	RecordID string                   `json:"record_id,omitempty"`
}

// BatchResponse holds one result per requested name, in request order
type BatchResponse struct {
	Results []ParseResponse `json:"results"`
}

// RecordResponse is a stored record together with the name it describes
type RecordResponse struct {
	store.Record
	Name *nameparser.Name `json:"name"`
}

// HealthResponse is the body of GET /api/v1/health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
	Store   bool   `json:"store"`
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: s.cfg.Version,
		Uptime:  time.Since(s.started).Round(time.Second).String(),
		Store:   s.store != nil,
	})
}

func (s *Server) parse(c echo.Context) error {
	var req ParseRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	resp := s.parseOne(c, req.Name, s.prefixInFamily(req.PrefixInFamily))
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) parseBatch(c echo.Context) error {
	var req BatchRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if len(req.Names) > s.cfg.MaxBatch {
		return fmt.Errorf("%w: batch of %d names exceeds the limit of %d", internalerr.ErrInvalidInput, len(req.Names), s.cfg.MaxBatch)
	}

	prefixInFamily := s.prefixInFamily(req.PrefixInFamily)
	results := make([]ParseResponse, len(req.Names))
	for i, input := range req.Names {
		results[i] = s.parseOne(c, input, prefixInFamily)
	}
	return c.JSON(http.StatusOK, BatchResponse{Results: results})
}

func (s *Server) parseOne(c echo.Context, input string, prefixInFamily bool) ParseResponse {
	n := s.lookup(input)
	contact := n.ContactRecord(prefixInFamily)
	resp := ParseResponse{
		Input:   input,
		Name:    n,
		Contact: contact,
		N:       contact.N(),
	}

	if s.store != nil {
		rec := s.records.Build(input, s.cfg.Languages, n)
		if err := s.store.UpsertRecord(c.Request().Context(), rec); err != nil {
			metrics.StoreErrors.WithLabelValues("upsert").Inc()
			s.logger.Warn("failed to store parse result", zap.String("input", input), zap.Error(err))
		} else if stored, ok, err := s.store.GetRecordByInput(c.Request().Context(), input); err == nil && ok {
			resp.RecordID = stored.ID
		}
	}
	return resp
}

// lookup parses input, consulting the cache first. Names are immutable, so
// a cached result can be shared between requests.
func (s *Server) lookup(input string) *nameparser.Name {
	if s.cache != nil {
		if n, ok := s.cache.Get(input); ok {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return n
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	start := time.Now()
	n := s.parser.Parse(input)
	metrics.ObserveParse(n, time.Since(start))

	if s.cache != nil {
		s.cache.Add(input, n)
	}
	return n
}

func (s *Server) prefixInFamily(override *bool) bool {
	if override != nil {
		return *override
	}
	return s.cfg.PrefixInFamily
}

func (s *Server) listRecords(c echo.Context) error {
	if s.store == nil {
		return internalerr.ErrStoreUnavailable
	}
	limit := store.DefaultListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return fmt.Errorf("%w: limit must be a positive integer", internalerr.ErrInvalidInput)
		}
		limit = v
	}

	recs, err := s.store.ListRecords(c.Request().Context(), limit)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("list").Inc()
		return err
	}
	out := make([]RecordResponse, 0, len(recs))
	for _, r := range recs {
		resp, err := recordResponse(r)
		if err != nil {
			return err
		}
		out = append(out, resp)
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getRecord(c echo.Context) error {
	if s.store == nil {
		return internalerr.ErrStoreUnavailable
	}
	r, err := s.store.GetRecord(c.Request().Context(), c.Param("id"))
	if err != nil {
		if !errors.Is(err, internalerr.ErrNotFound) {
			metrics.StoreErrors.WithLabelValues("get").Inc()
		}
		return err
	}
	resp, err := recordResponse(r)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) stats(c echo.Context) error {
	if s.store == nil {
		return internalerr.ErrStoreUnavailable
	}
	counts, err := s.store.CountByCategory(c.Request().Context())
	if err != nil {
		metrics.StoreErrors.WithLabelValues("stats").Inc()
		return err
	}
	return c.JSON(http.StatusOK, counts)
}

func recordResponse(r store.Record) (RecordResponse, error) {
	n, err := record.Name(r)
	if err != nil {
		return RecordResponse{}, err
	}
	return RecordResponse{Record: r, Name: n}, nil
}
