package scraper

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/d-directory/d-directory/internal/models"
)

const fixtureHTML = `<!DOCTYPE html>
<html><body>
<div data-testid="pro-card">
	<h3 data-testid="pro-name">Gulf Coast Remodeling</h3>
	<p data-testid="pro-description">Kitchen and bathroom remodeling experts.</p>
	<span data-testid="pro-location">Lake Charles, LA</span>
	<span data-testid="rating">4.9 stars</span>
	<span data-testid="review-count">57 reviews</span>
	<img src="https://example.com/gulf.jpg">
</div>
<div class="hz-pro-card">
	<h2>Acadiana Roofing</h2>
	<div class="description"></div>
	<span class="stars">Rated 4.2</span>
	<img src="/relative/path.jpg">
</div>
<div class="pro-card">
	<h3>AB</h3>
</div>
</body></html>`

// MockRepository реализует интерфейс scraper.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListContractors(ctx context.Context, filter models.ContractorFilter) ([]*models.Contractor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Contractor), args.Error(1)
}

func (m *MockRepository) CreateContractor(ctx context.Context, c models.Contractor) (int, error) {
	args := m.Called(ctx, c)
	return args.Int(0), args.Error(1)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestParse(t *testing.T) {
	contractors, err := Parse(strings.NewReader(fixtureHTML))
	require.NoError(t, err)
	require.Len(t, contractors, 2, "card with too short name must be skipped")

	first := contractors[0]
	assert.Equal(t, "Gulf Coast Remodeling", first.Name)
	assert.Equal(t, "Kitchen and bathroom remodeling experts.", first.Description)
	assert.Equal(t, "Lake Charles, LA", first.Location)
	assert.InDelta(t, 4.9, first.Rating, 0.001)
	assert.Equal(t, 57, first.ReviewCount)
	assert.Equal(t, "https://example.com/gulf.jpg", first.ImageURL)
	assert.Equal(t, "contact@gulfcoastremodeling.com", first.Email)

	second := contractors[1]
	assert.Equal(t, "Acadiana Roofing", second.Name)
	assert.InDelta(t, 4.2, second.Rating, 0.001)
	assert.Equal(t, 0, second.ReviewCount)
	assert.Equal(t, "Professional contractor services in the Lake Charles area.", second.Description)
	assert.Equal(t, fallbackImageURL, second.ImageURL, "relative image url must be replaced")
}

func TestParse_EmptyPage(t *testing.T) {
	contractors, err := Parse(strings.NewReader("<html><body><p>nothing here</p></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, contractors)
}

func TestScraper_Import(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(fixtureHTML))
	}))
	defer srv.Close()

	repo := new(MockRepository)
	repo.On("ListContractors", mock.Anything, models.ContractorFilter{}).
		Return([]*models.Contractor{
			{ID: 1, Name: "Gulf Coast Remodeling"},
		}, nil)
	repo.On("CreateContractor", mock.Anything, mock.MatchedBy(func(c models.Contractor) bool {
		return c.Name == "Acadiana Roofing"
	})).Return(2, nil)

	s := New(repo, srv.Client(), srv.URL, newTestLogger())

	added, err := s.Import(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, added, "already known contractor must be skipped")

	repo.AssertExpectations(t)
	repo.AssertNumberOfCalls(t, "CreateContractor", 1)
}

func TestScraper_Import_SampleFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	repo := new(MockRepository)
	repo.On("ListContractors", mock.Anything, models.ContractorFilter{}).
		Return([]*models.Contractor{}, nil)
	repo.On("CreateContractor", mock.Anything, mock.AnythingOfType("models.Contractor")).
		Return(1, nil)

	s := New(repo, srv.Client(), srv.URL, newTestLogger())

	added, err := s.Import(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, added, "sample data must be imported when source is unavailable")
}
