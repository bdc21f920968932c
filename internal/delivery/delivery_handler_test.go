package delivery

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	created *CreateDeliveryRequest
	pinged  *LocationUpdateRequest
	resp    DeliveryResponse
}

func (s *stubService) Create(ctx context.Context, companyID string, req CreateDeliveryRequest) (DeliveryResponse, error) {
	s.created = &req
	s.resp.ID = uuid.NewString()
	s.resp.CompanyID = companyID
	s.resp.Status = StatusPending
	return s.resp, nil
}

func (s *stubService) GetAll(ctx context.Context, companyID string) ([]DeliveryResponse, error) {
	return []DeliveryResponse{s.resp}, nil
}

func (s *stubService) GetByID(ctx context.Context, companyID, id string) (DeliveryResponse, error) {
	return s.resp, nil
}

func (s *stubService) Transition(ctx context.Context, companyID, id string, req TransitionRequest) (DeliveryResponse, error) {
	return s.resp, nil
}

func (s *stubService) UpdateLocation(ctx context.Context, companyID, id string, req LocationUpdateRequest) (DeliveryResponse, error) {
	s.pinged = &req
	return s.resp, nil
}

func (s *stubService) ListCheckpoints(ctx context.Context, companyID, id string) ([]CheckpointResponse, error) {
	return nil, nil
}

func setupRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc, nil, nil)

	r.Use(func(c *gin.Context) {
		c.Set("company_id", uuid.NewString())
	})

	r.POST("/deliveries", h.Create)
	r.POST("/deliveries/:id/location", h.UpdateLocation)
	return r
}

// A destination on the equator or prime meridian carries a legitimate
// coordinate of 0; binding must not confuse it with a missing field.
func TestCreateDeliveryHandlerZeroCoordinates(t *testing.T) {
	svc := &stubService{}
	router := setupRouter(svc)

	body := []byte(`{
		"customer_id": "` + uuid.NewString() + `",
		"origin_address": "Pontianak depot",
		"origin_lat": 0,
		"origin_lng": 109.33,
		"dest_address": "Greenwich dock",
		"dest_lat": 51.48,
		"dest_lng": 0
	}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/deliveries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.created)
	require.NotNil(t, svc.created.OriginLat)
	assert.Equal(t, 0.0, *svc.created.OriginLat)
	require.NotNil(t, svc.created.DestLng)
	assert.Equal(t, 0.0, *svc.created.DestLng)
}

func TestCreateDeliveryHandlerMissingCoordinates(t *testing.T) {
	svc := &stubService{}
	router := setupRouter(svc)

	body := []byte(`{
		"customer_id": "` + uuid.NewString() + `",
		"origin_address": "Pontianak depot",
		"origin_lng": 109.33,
		"dest_address": "Greenwich dock",
		"dest_lat": 51.48,
		"dest_lng": 0
	}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/deliveries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	assert.Nil(t, svc.created)
}

func TestUpdateLocationHandlerZeroCoordinates(t *testing.T) {
	svc := &stubService{}
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/deliveries/"+uuid.NewString()+"/location",
		bytes.NewReader([]byte(`{"lat": 0, "lng": 0}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.pinged)
	require.NotNil(t, svc.pinged.Lat)
	assert.Equal(t, 0.0, *svc.pinged.Lat)
}
