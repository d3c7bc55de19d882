package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dealership/internal/domain"
)

func TestListVehiclesIncludesPriceDisplay(t *testing.T) {
	app, vehicles, _ := newTestApp()
	vehicles.vehicles["v1"] = &domain.Vehicle{
		ID: "v1", Make: "Toyota", Model: "Tacoma", Year: 2021,
		Price: "24500.00", Status: domain.VehicleStatusAvailable,
	}

	rec := doJSON(app.ListVehicles, http.MethodGet, "/api/vehicles", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("ListVehicles status = %d, want 200", rec.Code)
	}
	var items []vehicleDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d vehicles, want 1", len(items))
	}
	if items[0].PriceDisplay != "$24,500.00" {
		t.Fatalf("priceDisplay = %q, want %q", items[0].PriceDisplay, "$24,500.00")
	}
	if items[0].Images == nil {
		t.Fatalf("images should serialize as [], not null")
	}
}

func TestGetVehicleNotFound(t *testing.T) {
	app, _, _ := newTestApp()

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/vehicles/missing", nil), "id", "missing")
	rec := httptest.NewRecorder()
	app.GetVehicle(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("GetVehicle status = %d, want 404", rec.Code)
	}
}

func TestCreateVehicleValidation(t *testing.T) {
	app, _, _ := newTestApp()

	rec := doJSON(app.CreateVehicle, http.MethodPost, "/api/vehicles", `{"make":"Ford"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("CreateVehicle status = %d, want 400", rec.Code)
	}
}

func TestCreateVehicle(t *testing.T) {
	app, vehicles, _ := newTestApp()

	rec := doJSON(app.CreateVehicle, http.MethodPost, "/api/vehicles",
		`{"make":"Ford","model":"Bronco","year":2023,"price":"41000.00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("CreateVehicle status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var created vehicleDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := vehicles.vehicles[created.ID]; !ok {
		t.Fatalf("vehicle %q was not persisted", created.ID)
	}
	if created.Status != string(domain.VehicleStatusAvailable) {
		t.Fatalf("status = %q, want available", created.Status)
	}
}

func TestUpdateVehiclePartial(t *testing.T) {
	app, vehicles, _ := newTestApp()
	vehicles.vehicles["v1"] = &domain.Vehicle{ID: "v1", Make: "Honda", Price: "18000.00"}

	req := withURLParam(httptest.NewRequest(http.MethodPut, "/api/vehicles/v1",
		bodyReader(`{"price":"17500.00"}`)), "id", "v1")
	rec := httptest.NewRecorder()
	app.UpdateVehicle(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("UpdateVehicle status = %d, want 200", rec.Code)
	}
	if vehicles.vehicles["v1"].Price != "17500.00" {
		t.Fatalf("price = %q, want updated value", vehicles.vehicles["v1"].Price)
	}
	if vehicles.vehicles["v1"].Make != "Honda" {
		t.Fatalf("make should be untouched by partial update, got %q", vehicles.vehicles["v1"].Make)
	}
}

func TestDeleteVehicleNotFound(t *testing.T) {
	app, _, _ := newTestApp()

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/vehicles/none", nil), "id", "none")
	rec := httptest.NewRecorder()
	app.DeleteVehicle(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("DeleteVehicle status = %d, want 404", rec.Code)
	}
}
