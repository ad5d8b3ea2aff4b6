package subsidies

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chris/subsidy-redemptions/pkg/api"
	"github.com/chris/subsidy-redemptions/pkg/models"
	"github.com/chris/subsidy-redemptions/pkg/pricing"
	"github.com/chris/subsidy-redemptions/pkg/storage"
	storage_mocks "github.com/chris/subsidy-redemptions/pkg/storage/mocks"
	"github.com/chris/subsidy-redemptions/pkg/subsidy"
	pricing_mocks "github.com/chris/subsidy-redemptions/pkg/subsidy/mocks"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func withSubsidyParam(req *http.Request, subsidyUUID uuid.UUID) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("subsidyUuid", subsidyUUID.String())
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestListSubsidies(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := NewSubsidiesHandler(mockStorage, nil)

		customerUUID := uuid.New()
		subs := []models.Subsidy{
			{UUID: uuid.New(), StartingBalance: 20000, EnterpriseCustomerUUID: customerUUID},
			{UUID: uuid.New(), StartingBalance: 50000, EnterpriseCustomerUUID: customerUUID},
		}
		mockStorage.On("ListSubsidies", mock.Anything, customerUUID).Return(subs, nil)
		mockStorage.On("CurrentBalance", mock.Anything, &subs[0]).Return(int64(5100), nil)
		mockStorage.On("CurrentBalance", mock.Anything, &subs[1]).Return(int64(50000), nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/subsidies/?enterprise_customer_uuid="+customerUUID.String(), nil)
		rr := httptest.NewRecorder()
		handler.ListSubsidies(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp []api.Subsidy
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Len(t, resp, 2)
		assert.Equal(t, int64(5100), resp[0].CurrentBalance)
		assert.Equal(t, int64(50000), resp[1].CurrentBalance)
	})

	t.Run("Missing Customer Param Returns 400", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := NewSubsidiesHandler(mockStorage, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/subsidies/", nil)
		rr := httptest.NewRecorder()
		handler.ListSubsidies(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "ListSubsidies")
	})
}

func TestCreateSubsidy(t *testing.T) {
	requestBody := func() api.NewSubsidy {
		return api.NewSubsidy{
			Title:                  "Pied Piper Learner Credit",
			StartingBalance:        2500000,
			Unit:                   string(models.UnitUSDCents),
			ReferenceId:            "00k12sdf4",
			EnterpriseCustomerUuid: openapi_types.UUID(uuid.New()),
		}
	}

	provisionRequest := func(t *testing.T, body api.NewSubsidy) *http.Request {
		t.Helper()
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		return httptest.NewRequest(http.MethodPost, "/api/v1/subsidies/", bytes.NewReader(raw))
	}

	t.Run("Created Returns 201", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := NewSubsidiesHandler(mockStorage, nil)

		body := requestBody()
		created := &models.Subsidy{
			UUID:            uuid.New(),
			Title:           body.Title,
			StartingBalance: body.StartingBalance,
			Unit:            models.UnitUSDCents,
			ReferenceID:     body.ReferenceId,
			ReferenceType:   models.SubsidyReferenceTypeOpportunityProduct,
		}
		mockStorage.On("GetOrCreateSubsidy", mock.Anything, "00k12sdf4", mock.AnythingOfType("*models.Subsidy")).
			Return(created, true, nil)
		mockStorage.On("CurrentBalance", mock.Anything, created).Return(int64(2500000), nil)

		rr := httptest.NewRecorder()
		handler.CreateSubsidy(rr, provisionRequest(t, body))

		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp api.Subsidy
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, int64(2500000), resp.CurrentBalance)
		assert.Equal(t, models.SubsidyReferenceTypeOpportunityProduct, resp.ReferenceType)
	})

	t.Run("Existing Reference Returns 200", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := NewSubsidiesHandler(mockStorage, nil)

		existing := &models.Subsidy{UUID: uuid.New(), ReferenceID: "00k12sdf4"}
		mockStorage.On("GetOrCreateSubsidy", mock.Anything, "00k12sdf4", mock.Anything).
			Return(existing, false, nil)
		mockStorage.On("CurrentBalance", mock.Anything, existing).Return(int64(1000), nil)

		rr := httptest.NewRecorder()
		handler.CreateSubsidy(rr, provisionRequest(t, requestBody()))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Missing Reference ID Returns 400", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := NewSubsidiesHandler(mockStorage, nil)

		body := requestBody()
		body.ReferenceId = ""
		rr := httptest.NewRecorder()
		handler.CreateSubsidy(rr, provisionRequest(t, body))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "GetOrCreateSubsidy")
	})

	t.Run("Unknown Unit Returns 400", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := NewSubsidiesHandler(mockStorage, nil)

		body := requestBody()
		body.Unit = "doubloons"
		rr := httptest.NewRecorder()
		handler.CreateSubsidy(rr, provisionRequest(t, body))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetSubsidy(t *testing.T) {
	t.Run("Found With Balance", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := NewSubsidiesHandler(mockStorage, nil)

		sub := &models.Subsidy{UUID: uuid.New(), StartingBalance: 20000, Unit: models.UnitUSDCents}
		mockStorage.On("GetSubsidy", mock.Anything, sub.UUID).Return(sub, nil)
		mockStorage.On("CurrentBalance", mock.Anything, sub).Return(int64(5100), nil)

		req := withSubsidyParam(httptest.NewRequest(http.MethodGet, "/api/v1/subsidies/"+sub.UUID.String()+"/", nil), sub.UUID)
		rr := httptest.NewRecorder()
		handler.GetSubsidy(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp api.Subsidy
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, int64(20000), resp.StartingBalance)
		assert.Equal(t, int64(5100), resp.CurrentBalance)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := NewSubsidiesHandler(mockStorage, nil)

		subsidyUUID := uuid.New()
		mockStorage.On("GetSubsidy", mock.Anything, subsidyUUID).Return(nil, storage.ErrNotFound)

		req := withSubsidyParam(httptest.NewRequest(http.MethodGet, "/api/v1/subsidies/"+subsidyUUID.String()+"/", nil), subsidyUUID)
		rr := httptest.NewRecorder()
		handler.GetSubsidy(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCanRedeem(t *testing.T) {
	newFixture := func() (*SubsidiesHandler, *storage_mocks.Storage, *pricing_mocks.PriceResolver, *models.Subsidy) {
		mockStorage := new(storage_mocks.Storage)
		mockPricing := new(pricing_mocks.PriceResolver)
		engine := subsidy.NewEngine(mockStorage, mockPricing, nil, nil, nil)
		sub := &models.Subsidy{
			UUID:                   uuid.New(),
			StartingBalance:        20000,
			Unit:                   models.UnitUSDCents,
			EnterpriseCustomerUUID: uuid.New(),
		}
		return NewSubsidiesHandler(mockStorage, engine), mockStorage, mockPricing, sub
	}

	t.Run("Redeemable", func(t *testing.T) {
		handler, mockStorage, mockPricing, sub := newFixture()

		mockStorage.On("GetSubsidy", mock.Anything, sub.UUID).Return(sub, nil)
		mockPricing.On("PriceForContent", mock.Anything, sub.EnterpriseCustomerUUID, "edX+DemoX").
			Return(int64(14900), nil)
		mockStorage.On("CurrentBalance", mock.Anything, sub).Return(int64(20000), nil)

		req := withSubsidyParam(httptest.NewRequest(http.MethodGet, "/api/v1/subsidies/"+sub.UUID.String()+"/can_redeem/?content_key=edX%2BDemoX", nil), sub.UUID)
		rr := httptest.NewRecorder()
		handler.CanRedeem(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp api.CanRedeemResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.True(t, resp.CanRedeem)
		assert.Equal(t, int64(14900), resp.ContentPrice)
		assert.Equal(t, string(models.UnitUSDCents), resp.Unit)
	})

	t.Run("Price Reported When Not Redeemable", func(t *testing.T) {
		handler, mockStorage, mockPricing, sub := newFixture()

		mockStorage.On("GetSubsidy", mock.Anything, sub.UUID).Return(sub, nil)
		mockPricing.On("PriceForContent", mock.Anything, sub.EnterpriseCustomerUUID, "edX+DemoX").
			Return(int64(79400), nil)
		mockStorage.On("CurrentBalance", mock.Anything, sub).Return(int64(5100), nil)

		req := withSubsidyParam(httptest.NewRequest(http.MethodGet, "/api/v1/subsidies/"+sub.UUID.String()+"/can_redeem/?content_key=edX%2BDemoX", nil), sub.UUID)
		rr := httptest.NewRecorder()
		handler.CanRedeem(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp api.CanRedeemResponse
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.False(t, resp.CanRedeem)
		assert.Equal(t, int64(79400), resp.ContentPrice)
	})

	t.Run("Missing Content Key Returns 400", func(t *testing.T) {
		handler, mockStorage, _, sub := newFixture()

		mockStorage.On("GetSubsidy", mock.Anything, sub.UUID).Return(sub, nil)

		req := withSubsidyParam(httptest.NewRequest(http.MethodGet, "/api/v1/subsidies/"+sub.UUID.String()+"/can_redeem/", nil), sub.UUID)
		rr := httptest.NewRecorder()
		handler.CanRedeem(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Unpriced Content Returns 404", func(t *testing.T) {
		handler, mockStorage, mockPricing, sub := newFixture()

		mockStorage.On("GetSubsidy", mock.Anything, sub.UUID).Return(sub, nil)
		mockPricing.On("PriceForContent", mock.Anything, sub.EnterpriseCustomerUUID, "edX+DemoX").
			Return(int64(0), pricing.ErrNotFound)

		req := withSubsidyParam(httptest.NewRequest(http.MethodGet, "/api/v1/subsidies/"+sub.UUID.String()+"/can_redeem/?content_key=edX%2BDemoX", nil), sub.UUID)
		rr := httptest.NewRecorder()
		handler.CanRedeem(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
