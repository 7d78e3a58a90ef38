package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hmranwar/guardpost-backend/internal/restrictedinv"
	"github.com/hmranwar/guardpost-backend/pkg/db/models"
	"github.com/hmranwar/guardpost-backend/pkg/enums"
	pkgerrors "github.com/hmranwar/guardpost-backend/pkg/errors"
)

type stubRestrictedService struct {
	unit       *models.SerialUnit
	issueErr   error
	returnErr  error
	gotUnitID  uuid.UUID
	gotGuardID string
}

func (s *stubRestrictedService) ListItems(context.Context) ([]models.RestrictedInventoryItem, error) {
	return nil, nil
}

func (s *stubRestrictedService) GetItem(context.Context, string) (*models.RestrictedInventoryItem, error) {
	return nil, nil
}

func (s *stubRestrictedService) CreateItem(context.Context, restrictedinv.ItemInput) (*models.RestrictedInventoryItem, error) {
	return nil, nil
}

func (s *stubRestrictedService) UpdateItem(context.Context, string, restrictedinv.ItemUpdateInput) (*models.RestrictedInventoryItem, error) {
	return nil, nil
}

func (s *stubRestrictedService) DeleteItem(context.Context, string) error { return nil }

func (s *stubRestrictedService) ListSerialUnits(context.Context, string) ([]models.SerialUnit, error) {
	return nil, nil
}

func (s *stubRestrictedService) CreateSerialUnit(context.Context, string, restrictedinv.SerialUnitInput) (*models.SerialUnit, error) {
	return nil, nil
}

func (s *stubRestrictedService) IssueSerial(_ context.Context, unitID uuid.UUID, employeeID string) (*models.SerialUnit, error) {
	s.gotUnitID = unitID
	s.gotGuardID = employeeID
	return s.unit, s.issueErr
}

func (s *stubRestrictedService) ReturnSerial(_ context.Context, unitID uuid.UUID) (*models.SerialUnit, error) {
	s.gotUnitID = unitID
	return s.unit, s.returnErr
}

func (s *stubRestrictedService) ListTransactions(context.Context, restrictedinv.TxFilter) ([]models.RestrictedTransaction, error) {
	return nil, nil
}

func serialUnitRouter(svc restrictedinv.Service) http.Handler {
	r := chi.NewRouter()
	r.Post("/serial-units/{unitID}/issue", SerialUnitIssue(svc, nil))
	r.Post("/serial-units/{unitID}/return", SerialUnitReturn(svc, nil))
	return r
}

func TestSerialUnitIssueSuccess(t *testing.T) {
	unitID := uuid.New()
	custodian := "SEC-77"
	svc := &stubRestrictedService{unit: &models.SerialUnit{
		ID:                 unitID,
		SerialNumber:       "AK-0099",
		Status:             enums.SerialUnitStatusIssued,
		IssuedToEmployeeID: &custodian,
	}}
	router := serialUnitRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/serial-units/"+unitID.String()+"/issue", bytes.NewReader([]byte(`{"employee_id":"SEC-77"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotUnitID != unitID {
		t.Fatalf("service received wrong unit id %s", svc.gotUnitID)
	}
	if svc.gotGuardID != "SEC-77" {
		t.Fatalf("service received wrong employee id %q", svc.gotGuardID)
	}

	var envelope struct {
		Data struct {
			Status             string  `json:"status"`
			IssuedToEmployeeID *string `json:"issued_to_employee_id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Status != string(enums.SerialUnitStatusIssued) {
		t.Fatalf("unexpected status %q", envelope.Data.Status)
	}
	if envelope.Data.IssuedToEmployeeID == nil || *envelope.Data.IssuedToEmployeeID != "SEC-77" {
		t.Fatalf("expected custodian in payload, got %+v", envelope.Data.IssuedToEmployeeID)
	}
}

func TestSerialUnitIssueRequiresEmployeeID(t *testing.T) {
	router := serialUnitRouter(&stubRestrictedService{})

	req := httptest.NewRequest(http.MethodPost, "/serial-units/"+uuid.NewString()+"/issue", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestSerialUnitIssueRejectsBadUnitID(t *testing.T) {
	router := serialUnitRouter(&stubRestrictedService{})

	req := httptest.NewRequest(http.MethodPost, "/serial-units/not-a-uuid/issue", bytes.NewReader([]byte(`{"employee_id":"SEC-77"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestSerialUnitIssueConflictMapsTo422(t *testing.T) {
	svc := &stubRestrictedService{issueErr: pkgerrors.New(pkgerrors.CodeStateConflict, "unit already issued")}
	router := serialUnitRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/serial-units/"+uuid.NewString()+"/issue", bytes.NewReader([]byte(`{"employee_id":"SEC-77"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeStateConflict) {
		t.Fatalf("unexpected error code %s", envelope.Error.Code)
	}
	if envelope.Error.Message != "unit already issued" {
		t.Fatalf("state-conflict message should pass through, got %q", envelope.Error.Message)
	}
}

func TestSerialUnitReturnConflictMapsTo422(t *testing.T) {
	svc := &stubRestrictedService{returnErr: pkgerrors.New(pkgerrors.CodeStateConflict, "unit is not issued")}
	router := serialUnitRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/serial-units/"+uuid.NewString()+"/return", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}
