// package testing contains shared testing utilities
package testing

import (
	"context"
	"net/http"
	"strings"

	"github.com/itzgeebee/top-movies/internal/services"
)

// MockMetadataService is a test double for [services.MetadataService],
// returning canned results and recording the queries it received.
type MockMetadataService struct {
	SearchResults []services.MovieSummary
	SearchErr     error
	Detail        *services.MovieDetail
	DetailErr     error

	SearchQueries []string
	DetailIDs     []int64
}

func (m *MockMetadataService) Search(ctx context.Context, query string) ([]services.MovieSummary, error) {
	m.SearchQueries = append(m.SearchQueries, query)
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.SearchResults, nil
}

func (m *MockMetadataService) FetchDetail(ctx context.Context, externalID int64) (*services.MovieDetail, error) {
	m.DetailIDs = append(m.DetailIDs, externalID)
	if m.DetailErr != nil {
		return nil, m.DetailErr
	}
	return m.Detail, nil
}

func (m *MockMetadataService) ImageURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return "https://img.example/w500/" + strings.TrimPrefix(posterPath, "/")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}
