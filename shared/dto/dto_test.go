package dto_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"bookingdesk/shared/constant"
	"bookingdesk/shared/dto"
	"bookingdesk/shared/model"
	"bookingdesk/shared/timezone"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2025, 12, 22, 10, 0, 0, 0, timezone.GetLocation())
	modifiedAt := time.Date(2025, 12, 22, 11, 0, 0, 0, timezone.GetLocation())

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "system",
		ModifiedBy: "system",
	})

	if expected := timezone.Format(createdAt, constant.DateFormat); metadata.CreatedAt != expected {
		t.Errorf("expected CreatedAt %s, got %s", expected, metadata.CreatedAt)
	}
	if expected := timezone.Format(modifiedAt, constant.DateFormat); metadata.ModifiedAt != expected {
		t.Errorf("expected ModifiedAt %s, got %s", expected, metadata.ModifiedAt)
	}
	if metadata.CreatedBy != "system" || metadata.ModifiedBy != "system" {
		t.Errorf("expected audit users to carry through, got %s/%s", metadata.CreatedBy, metadata.ModifiedBy)
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		query          map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "all parameters set",
			query: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "start_at",
				"sort_dir": "desc",
			},
			defaultRequest: false,
			expected:       dto.QueryParams{Page: 2, Limit: 20, SortBy: "start_at", SortDir: "DESC"},
		},
		{
			name:           "empty request without defaults",
			query:          map[string]string{},
			defaultRequest: false,
			expected:       dto.QueryParams{},
		},
		{
			name:           "empty request with defaults",
			query:          map[string]string{},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:  constant.DefaultValuePage,
				Limit: constant.DefaultValueLimit,
			},
		},
		{
			name: "invalid values are ignored",
			query: map[string]string{
				"page":     "zero",
				"limit":    "-3",
				"sort_dir": "sideways",
			},
			defaultRequest: false,
			expected:       dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			for key, value := range tt.query {
				values.Set(key, value)
			}

			req := &http.Request{URL: &url.URL{RawQuery: values.Encode()}}

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest)

			if params != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, params)
			}
		})
	}
}
