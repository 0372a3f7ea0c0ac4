package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchTerminal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/terminal-portuario" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[
			{"identificadorNavio":"NAVIO-001","nomeTerminal":"Tecon","tipoOperacao":"descarga",
			 "statusOperacao":"aguardando_navio","dataPrevistaAtracacao":"2024-03-10T08:00:00"}
		]}`))
	}))
	defer srv.Close()

	records, err := NewClient(srv.URL).FetchTerminal(context.Background())
	if err != nil {
		t.Fatalf("FetchTerminal: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	r := records[0]
	if r.VesselID != "NAVIO-001" || r.TerminalName != "Tecon" || r.PlannedBerthing != "2024-03-10T08:00:00" {
		t.Errorf("unexpected record: %+v", r)
	}
}

func TestFetchAgency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/agencia-maritima" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"data":[{"identificadorNavio":"NAVIO-001","nomeAgencia":"Wilson Sons"}]}`))
	}))
	defer srv.Close()

	records, err := NewClient(srv.URL).FetchAgency(context.Background())
	if err != nil {
		t.Fatalf("FetchAgency: %v", err)
	}
	if len(records) != 1 || records[0].AgencyName != "Wilson Sons" {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestFetchPilotage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"identificadorNavio":"NAVIO-001","dataSolicitacao":"2024-03-10T06:00:00",
			 "dataExecucao":"2024-03-10T07:30:00","manobraTipo":"entrada"}
		]}`))
	}))
	defer srv.Close()

	records, err := NewClient(srv.URL).FetchPilotage(context.Background())
	if err != nil {
		t.Fatalf("FetchPilotage: %v", err)
	}
	if len(records) != 1 || records[0].ManeuverType != "entrada" {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestFetchEmptyEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	records, err := NewClient(srv.URL).FetchAuthority(context.Background())
	if err != nil {
		t.Fatalf("FetchAuthority: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func TestFetchMissingDataKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	records, err := NewClient(srv.URL).FetchTerminal(context.Background())
	if err != nil {
		t.Fatalf("FetchTerminal: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).FetchTerminal(context.Background()); err == nil {
		t.Fatal("expected error on 502 response")
	}
}

func TestFetchMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": not json`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).FetchPilotage(context.Background()); err == nil {
		t.Fatal("expected error on malformed body")
	}
}

func TestFetchContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewClient(srv.URL).FetchTerminal(ctx); err == nil {
		t.Fatal("expected error with cancelled context")
	}
}
