package v0_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	v0 "github.com/nationalmap/px3-catalog-server/internal/api/v0"
	"github.com/nationalmap/px3-catalog-server/internal/service"
	"github.com/nationalmap/px3-catalog-server/internal/service/mocks"
	"github.com/nationalmap/px3-catalog-server/pkg/layers"
	"github.com/nationalmap/px3-catalog-server/pkg/px3"
)

func newTestRouter(t *testing.T) (*mocks.MockCatalogService, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockSvc := mocks.NewMockCatalogService(ctrl)

	r := chi.NewRouter()
	r.Mount("/api/v0/catalog", v0.Router(mockSvc))
	return mockSvc, r
}

func doRequest(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest("GET", path, nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestGetCatalogInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		setupMock      func(*mocks.MockCatalogService)
		expectedStatus int
		check          func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "catalog loaded",
			setupMock: func(m *mocks.MockCatalogService) {
				m.EXPECT().GetCatalogInfo(gomock.Any()).Return(&service.CatalogInfo{
					Name:          "national",
					Source:        "file:/data/px3-config.json",
					BuildID:       "b2b930e5-9a2f-4e5d-a7a0-2f7a06e0f1c4",
					LoadedAt:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
					ServiceCount:  12,
					GroupCount:    3,
					RejectedCount: 1,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, rr *httptest.ResponseRecorder) {
				t.Helper()
				var info service.CatalogInfo
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
				assert.Equal(t, "national", info.Name)
				assert.Equal(t, 12, info.ServiceCount)
			},
		},
		{
			name: "catalog not loaded",
			setupMock: func(m *mocks.MockCatalogService) {
				m.EXPECT().GetCatalogInfo(gomock.Any()).Return(nil, service.ErrCatalogNotLoaded)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockSvc, router := newTestRouter(t)
			tt.setupMock(mockSvc)

			rr := doRequest(t, router, "/api/v0/catalog/info")

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.check != nil {
				tt.check(t, rr)
			}
		})
	}
}

func TestListServices(t *testing.T) {
	t.Parallel()

	mockSvc, router := newTestRouter(t)
	mockSvc.EXPECT().ListServices(gomock.Any()).Return([]*px3.Service{
		{ID: "imagery", URL: "https://gis.example.com/imagery", Type: px3.ServiceTypeTiled},
		{ID: "topo", URL: "https://gis.example.com/topo", Type: px3.ServiceTypeDynamic},
	}, nil)

	rr := doRequest(t, router, "/api/v0/catalog/services")

	assert.Equal(t, http.StatusOK, rr.Code)

	var services []*px3.Service
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &services))
	require.Len(t, services, 2)
	assert.Equal(t, "imagery", services[0].ID)
	assert.Equal(t, "topo", services[1].ID)
}

func TestGetService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		path           string
		setupMock      func(*mocks.MockCatalogService)
		expectedStatus int
	}{
		{
			name: "found",
			path: "/api/v0/catalog/services/topo",
			setupMock: func(m *mocks.MockCatalogService) {
				m.EXPECT().GetService(gomock.Any(), "topo").Return(&px3.Service{
					ID:   "topo",
					URL:  "https://gis.example.com/topo",
					Type: px3.ServiceTypeTiled,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found",
			path: "/api/v0/catalog/services/missing",
			setupMock: func(m *mocks.MockCatalogService) {
				m.EXPECT().GetService(gomock.Any(), "missing").
					Return(nil, service.ErrServiceNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "catalog not loaded",
			path: "/api/v0/catalog/services/topo",
			setupMock: func(m *mocks.MockCatalogService) {
				m.EXPECT().GetService(gomock.Any(), "topo").
					Return(nil, service.ErrCatalogNotLoaded)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:           "invalid id",
			path:           "/api/v0/catalog/services/%20",
			setupMock:      func(*mocks.MockCatalogService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockSvc, router := newTestRouter(t)
			tt.setupMock(mockSvc)

			rr := doRequest(t, router, tt.path)
			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestListServiceGroups(t *testing.T) {
	t.Parallel()

	mockSvc, router := newTestRouter(t)
	mockSvc.EXPECT().ListServiceGroups(gomock.Any()).Return([]*px3.ServiceGroup{
		{ID: "base", ServiceIDs: []string{"topo", "imagery"}},
	}, nil)

	rr := doRequest(t, router, "/api/v0/catalog/groups")

	assert.Equal(t, http.StatusOK, rr.Code)

	var groups []*px3.ServiceGroup
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"topo", "imagery"}, groups[0].ServiceIDs)
}

func TestGetServiceGroup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		path           string
		setupMock      func(*mocks.MockCatalogService)
		expectedStatus int
		check          func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "found",
			path: "/api/v0/catalog/groups/base",
			setupMock: func(m *mocks.MockCatalogService) {
				m.EXPECT().GetServiceGroup(gomock.Any(), "base").Return(&px3.ServiceGroup{
					ID:         "base",
					ServiceIDs: []string{"topo", "imagery"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, rr *httptest.ResponseRecorder) {
				t.Helper()
				var group px3.ServiceGroup
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &group))
				assert.Equal(t, []string{"topo", "imagery"}, group.ServiceIDs)
			},
		},
		{
			name: "not found",
			path: "/api/v0/catalog/groups/missing",
			setupMock: func(m *mocks.MockCatalogService) {
				m.EXPECT().GetServiceGroup(gomock.Any(), "missing").
					Return(nil, service.ErrGroupNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "catalog not loaded",
			path: "/api/v0/catalog/groups/base",
			setupMock: func(m *mocks.MockCatalogService) {
				m.EXPECT().GetServiceGroup(gomock.Any(), "base").
					Return(nil, service.ErrCatalogNotLoaded)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name:           "invalid id",
			path:           "/api/v0/catalog/groups/%20",
			setupMock:      func(*mocks.MockCatalogService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockSvc, router := newTestRouter(t)
			tt.setupMock(mockSvc)

			rr := doRequest(t, router, tt.path)
			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.check != nil {
				tt.check(t, rr)
			}
		})
	}
}

func TestListLocators(t *testing.T) {
	t.Parallel()

	mockSvc, router := newTestRouter(t)
	mockSvc.EXPECT().ListLocators(gomock.Any()).Return([]*px3.Locator{
		{ID: "geocoder", URL: "https://gis.example.com/geocode", Version: px3.LocatorVersion10},
	}, nil)

	rr := doRequest(t, router, "/api/v0/catalog/locators")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "geocoder")
}

func TestListServiceLayers(t *testing.T) {
	t.Parallel()

	mockSvc, router := newTestRouter(t)
	mockSvc.EXPECT().ServiceLayers(gomock.Any()).Return(map[string]*layers.Descriptor{
		"topo": {
			ServiceID:   "topo",
			ServiceType: px3.ServiceTypeDynamic,
			URL:         "https://gis.example.com/topo/export",
		},
	}, nil)

	rr := doRequest(t, router, "/api/v0/catalog/layers")

	assert.Equal(t, http.StatusOK, rr.Code)

	var descriptors map[string]*layers.Descriptor
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &descriptors))
	require.Contains(t, descriptors, "topo")
	assert.Equal(t, "https://gis.example.com/topo/export", descriptors["topo"].URL)
}

func TestListBackgroundLayers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		setupMock      func(*mocks.MockCatalogService)
		expectedStatus int
	}{
		{
			name: "success",
			setupMock: func(m *mocks.MockCatalogService) {
				m.EXPECT().BackgroundLayers(gomock.Any()).Return([]*layers.CompositeDescriptor{
					{
						GroupID:       "base",
						DisplayName:   "Base Maps",
						NumZoomLevels: 4,
						AlwaysInRange: true,
					},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "member fetch failed",
			setupMock: func(m *mocks.MockCatalogService) {
				m.EXPECT().BackgroundLayers(gomock.Any()).
					Return(nil, errors.New("fetching capabilities for service \"topo\": connection refused"))
			},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name: "catalog not loaded",
			setupMock: func(m *mocks.MockCatalogService) {
				m.EXPECT().BackgroundLayers(gomock.Any()).Return(nil, service.ErrCatalogNotLoaded)
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockSvc, router := newTestRouter(t)
			tt.setupMock(mockSvc)

			rr := doRequest(t, router, "/api/v0/catalog/layers/background")
			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}
