package customer

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	customererrors "go-logistics/internal/customer/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	created    *CreateCustomerRequest
	getByIDErr error
	resp       CustomerResponse
}

func (s *stubService) Create(ctx context.Context, companyID string, req CreateCustomerRequest) (CustomerResponse, error) {
	s.created = &req
	s.resp.ID = uuid.NewString()
	s.resp.CompanyID = companyID
	s.resp.Name = req.Name
	return s.resp, nil
}

func (s *stubService) GetAll(ctx context.Context, companyID string) ([]CustomerResponse, error) {
	return []CustomerResponse{s.resp}, nil
}

func (s *stubService) GetByID(ctx context.Context, companyID, id string) (CustomerResponse, error) {
	if s.getByIDErr != nil {
		return CustomerResponse{}, s.getByIDErr
	}
	return s.resp, nil
}

func (s *stubService) Update(ctx context.Context, companyID, id string, req UpdateCustomerRequest) (CustomerResponse, error) {
	return s.resp, nil
}

func (s *stubService) Delete(ctx context.Context, companyID, id string) error {
	return nil
}

func setupRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc)

	r.Use(func(c *gin.Context) {
		c.Set("company_id", uuid.NewString())
	})

	r.POST("/customers", h.Create)
	r.GET("/customers/:id", h.GetByID)
	return r
}

func TestCreateCustomerHandler(t *testing.T) {
	svc := &stubService{}
	router := setupRouter(svc)

	body, _ := json.Marshal(CreateCustomerRequest{
		Name:  "Globex Retail",
		Email: "orders@globex.test",
		City:  "Rotterdam",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, "Globex Retail", svc.created.Name)

	var envelope struct {
		Ok   bool             `json:"ok"`
		Data CustomerResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Ok)
	assert.Equal(t, "Globex Retail", envelope.Data.Name)
}

func TestCreateCustomerHandlerValidation(t *testing.T) {
	router := setupRouter(&stubService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/customers", bytes.NewReader([]byte(`{"email":"x@y.test"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestGetCustomerHandlerNotFound(t *testing.T) {
	svc := &stubService{getByIDErr: customererrors.ErrCustomerNotFound}
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/customers/"+uuid.NewString(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
