// Package v0 provides the REST API handlers for Px3 catalog access.
package v0

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nationalmap/px3-catalog-server/internal/api/common"
	"github.com/nationalmap/px3-catalog-server/internal/logger"
	"github.com/nationalmap/px3-catalog-server/internal/service"
	"github.com/nationalmap/px3-catalog-server/internal/versions"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status" example:"healthy"`
}

// ReadinessResponse represents the readiness check response
type ReadinessResponse struct {
	Status string `json:"status" example:"ready"`
}

// VersionResponse represents the version information response
type VersionResponse struct {
	Version   string `json:"version" example:"v0.1.0"`
	Commit    string `json:"commit" example:"abc123def"`
	BuildDate string `json:"build_date" example:"2025-01-15T10:30:00Z"`
	GoVersion string `json:"go_version" example:"go1.21.5"`
	Platform  string `json:"platform" example:"linux/amd64"`
}

// Routes defines the routes for the catalog API with dependency injection
type Routes struct {
	service service.CatalogService
}

// NewRoutes creates a new Routes instance with the provided service
func NewRoutes(svc service.CatalogService) *Routes {
	return &Routes{
		service: svc,
	}
}

// Router creates a new router for the catalog API
func Router(svc service.CatalogService) http.Handler {
	routes := NewRoutes(svc)

	r := chi.NewRouter()

	// Catalog metadata
	r.Get("/info", routes.getCatalogInfo)

	// Map services and groups
	r.Get("/services", routes.listServices)
	r.Get("/services/{id}", routes.getService)
	r.Get("/groups", routes.listServiceGroups)
	r.Get("/groups/{id}", routes.getServiceGroup)
	r.Get("/locators", routes.listLocators)

	// Layer descriptors
	r.Get("/layers", routes.listServiceLayers)
	r.Get("/layers/background", routes.listBackgroundLayers)

	return r
}

// getCatalogInfo handles GET /api/v0/catalog/info
func (cr *Routes) getCatalogInfo(w http.ResponseWriter, r *http.Request) {
	info, err := cr.service.GetCatalogInfo(r.Context())
	if err != nil {
		cr.writeServiceError(w, err, "Failed to get catalog information")
		return
	}
	common.WriteJSONResponse(w, info, http.StatusOK)
}

// listServices handles GET /api/v0/catalog/services
func (cr *Routes) listServices(w http.ResponseWriter, r *http.Request) {
	services, err := cr.service.ListServices(r.Context())
	if err != nil {
		cr.writeServiceError(w, err, "Failed to list services")
		return
	}
	common.WriteJSONResponse(w, services, http.StatusOK)
}

// getService handles GET /api/v0/catalog/services/{id}
func (cr *Routes) getService(w http.ResponseWriter, r *http.Request) {
	id, err := common.GetAndValidateURLParam(r, "id")
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	svc, err := cr.service.GetService(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			common.WriteErrorResponse(w, "Service not found: "+id, http.StatusNotFound)
			return
		}
		cr.writeServiceError(w, err, "Failed to get service")
		return
	}
	common.WriteJSONResponse(w, svc, http.StatusOK)
}

// listServiceGroups handles GET /api/v0/catalog/groups
func (cr *Routes) listServiceGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := cr.service.ListServiceGroups(r.Context())
	if err != nil {
		cr.writeServiceError(w, err, "Failed to list service groups")
		return
	}
	common.WriteJSONResponse(w, groups, http.StatusOK)
}

// getServiceGroup handles GET /api/v0/catalog/groups/{id}
func (cr *Routes) getServiceGroup(w http.ResponseWriter, r *http.Request) {
	id, err := common.GetAndValidateURLParam(r, "id")
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	group, err := cr.service.GetServiceGroup(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			common.WriteErrorResponse(w, "Service group not found: "+id, http.StatusNotFound)
			return
		}
		cr.writeServiceError(w, err, "Failed to get service group")
		return
	}
	common.WriteJSONResponse(w, group, http.StatusOK)
}

// listLocators handles GET /api/v0/catalog/locators
func (cr *Routes) listLocators(w http.ResponseWriter, r *http.Request) {
	locators, err := cr.service.ListLocators(r.Context())
	if err != nil {
		cr.writeServiceError(w, err, "Failed to list locators")
		return
	}
	common.WriteJSONResponse(w, locators, http.StatusOK)
}

// listServiceLayers handles GET /api/v0/catalog/layers
func (cr *Routes) listServiceLayers(w http.ResponseWriter, r *http.Request) {
	descriptors, err := cr.service.ServiceLayers(r.Context())
	if err != nil {
		cr.writeServiceError(w, err, "Failed to build service layers")
		return
	}
	common.WriteJSONResponse(w, descriptors, http.StatusOK)
}

// listBackgroundLayers handles GET /api/v0/catalog/layers/background
func (cr *Routes) listBackgroundLayers(w http.ResponseWriter, r *http.Request) {
	composites, err := cr.service.BackgroundLayers(r.Context())
	if err != nil {
		// A failed member fetch leaves the background build unavailable.
		cr.writeServiceError(w, err, "Failed to build background layers")
		return
	}
	common.WriteJSONResponse(w, composites, http.StatusOK)
}

// writeServiceError maps service errors onto HTTP responses.
func (*Routes) writeServiceError(w http.ResponseWriter, err error, message string) {
	if errors.Is(err, service.ErrCatalogNotLoaded) {
		common.WriteErrorResponse(w, "Catalog not loaded", http.StatusServiceUnavailable)
		return
	}
	logger.Errorf("%s: %v", message, err)
	common.WriteErrorResponse(w, message, http.StatusBadGateway)
}

// HealthRouter creates a router for health check endpoints
func HealthRouter(svc service.CatalogService) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", healthHandler)
	r.Get("/readiness", readinessHandler(svc))
	r.Get("/version", versionHandler)

	return r
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	common.WriteJSONResponse(w, HealthResponse{Status: "healthy"}, http.StatusOK)
}

// readinessHandler handles readiness check requests
func readinessHandler(svc service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.CheckReadiness(r.Context()); err != nil {
			errorResp := ErrorResponse{
				Error: "CatalogService not ready: " + err.Error(),
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			if encodeErr := json.NewEncoder(w).Encode(errorResp); encodeErr != nil {
				logger.Errorf("Failed to encode readiness error response: %v", encodeErr)
			}
			return
		}

		common.WriteJSONResponse(w, ReadinessResponse{Status: "ready"}, http.StatusOK)
	}
}

// versionHandler handles version information requests
func versionHandler(w http.ResponseWriter, _ *http.Request) {
	info := versions.GetVersionInfo()

	common.WriteJSONResponse(w, VersionResponse{
		Version:   info.Version,
		Commit:    info.Commit,
		BuildDate: info.BuildDate,
		GoVersion: info.GoVersion,
		Platform:  info.Platform,
	}, http.StatusOK)
}
