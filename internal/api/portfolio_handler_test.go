package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/portfolio"
)

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, true, nil)

	assertStatus(t, s.do(t, http.MethodGet, "/health", nil, false), http.StatusOK)
	rec := s.do(t, http.MethodGet, "/metrics", nil, false)
	assertStatus(t, rec, http.StatusOK)
	assert.Contains(t, rec.Body.String(), "folio_")
}

func TestGetPortfolioServesDefaults(t *testing.T) {
	s := newTestServer(t, true, nil)

	rec := s.do(t, http.MethodGet, "/v1/portfolio", nil, false)
	assertStatus(t, rec, http.StatusOK)

	snap := decode[portfolio.Snapshot](t, rec)
	require.Len(t, snap.Projects, 1)
	assert.Equal(t, "Basti The Food Street", snap.Projects[0].Title)
	assert.Len(t, snap.Education, 2)
	assert.Len(t, snap.Skills, 3)
	assert.Equal(t, portfolio.ContactLinks(), snap.Contact)
}

func TestHeroRequiresToken(t *testing.T) {
	s := newTestServer(t, true, nil)

	rec := s.do(t, http.MethodPut, "/v1/hero", portfolio.Hero{Name: "X"}, false)
	assertStatus(t, rec, http.StatusUnauthorized)
	assert.Equal(t, portfolio.DefaultHero(), s.site.Hero())
}

func TestPutAndResetHero(t *testing.T) {
	s := newTestServer(t, true, nil)
	hero := portfolio.Hero{Name: "Ada", Accent: "L", Role: "Engineer", Description: "d", Image: "https://img"}

	rec := s.do(t, http.MethodPut, "/v1/hero", hero, true)
	assertStatus(t, rec, http.StatusOK)
	assert.Equal(t, hero, decode[portfolio.Hero](t, rec))

	rec = s.do(t, http.MethodGet, "/v1/hero", nil, false)
	assert.Equal(t, hero, decode[portfolio.Hero](t, rec))

	stored, err := s.store.Get(context.Background(), portfolio.KeyHero)
	require.NoError(t, err)
	assert.Contains(t, string(stored), `"name":"Ada"`)

	rec = s.do(t, http.MethodPost, "/v1/hero/reset", nil, true)
	assertStatus(t, rec, http.StatusOK)
	assert.Equal(t, portfolio.DefaultHero(), s.site.Hero())
}

func TestPutAbout(t *testing.T) {
	s := newTestServer(t, true, nil)
	about := portfolio.About{P1: "one", P2: "two", P3: "three"}

	rec := s.do(t, http.MethodPut, "/v1/about", about, true)
	assertStatus(t, rec, http.StatusOK)
	assert.Equal(t, about, s.site.About())

	rec = s.do(t, http.MethodPost, "/v1/about/reset", nil, true)
	assertStatus(t, rec, http.StatusOK)
	assert.Equal(t, portfolio.DefaultAbout(), s.site.About())
}

func TestPutHeroRejectsMalformedBody(t *testing.T) {
	s := newTestServer(t, true, nil)

	rec := s.do(t, http.MethodPut, "/v1/hero", "not an object", true)
	assertStatus(t, rec, http.StatusBadRequest)
}
