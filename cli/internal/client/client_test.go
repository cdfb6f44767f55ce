// ABOUTME: Tests for the planner API client
// ABOUTME: Uses httptest to mock backend responses

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/markalston/network-capacity-planner/models"
)

func TestHealth_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/health" {
			t.Errorf("expected path /api/v1/health, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.HealthResponse{Status: "ok", Policy: "indirect-path"})
	}))
	defer server.Close()

	c := New(server.URL + "/")
	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status ok, got %s", resp.Status)
	}
}

func TestHealth_ConnectionError(t *testing.T) {
	c := New("http://localhost:99999")
	_, err := c.Health(context.Background())
	if err == nil {
		t.Error("expected connection error, got nil")
	}
}

func TestHealth_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := New(server.URL).Health(context.Background())
	if err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestPlan_SendsInputAndDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/plan" {
			t.Errorf("expected POST /api/v1/plan, got %s %s", r.Method, r.URL.Path)
		}
		var in models.PlanInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if len(in.Customers) != 1 || in.Customers[0].Site != "A" {
			t.Errorf("unexpected request body %+v", in)
		}
		json.NewEncoder(w).Encode(models.PlanResult{Outcome: models.OutcomeSatisfied, Policy: in.Policy})
	}))
	defer server.Close()

	in := models.PlanInput{Customers: []models.CustomerEntry{{Site: "A", Customers: 1}}, Policy: models.PolicyRouterAddition}
	plan, err := New(server.URL).Plan(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Outcome != models.OutcomeSatisfied || plan.Policy != models.PolicyRouterAddition {
		t.Errorf("unexpected plan %+v", plan)
	}
}

func TestPlan_ErrorResponseIncludesDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Invalid input", Details: "customer entry 1: duplicate site", Code: 400})
	}))
	defer server.Close()

	_, err := New(server.URL).Plan(context.Background(), models.PlanInput{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "duplicate site") {
		t.Errorf("expected details in error, got %v", err)
	}
}

func TestSchedule_DecodesFortyEightSlots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tz := models.NewTimezoneMap()
		tz[3].Set("A", "B", 10)
		json.NewEncoder(w).Encode(tz)
	}))
	defer server.Close()

	tz, err := New(server.URL).Schedule(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tz[3].Get("A", "B") != 10 {
		t.Errorf("expected slot 3 A->B 10, got %v", tz[3].Get("A", "B"))
	}
}

func TestRequest_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := New(server.URL).Health(ctx)
	if err == nil || err.Error() != "request timed out" {
		t.Errorf("expected timeout error, got %v", err)
	}
}
