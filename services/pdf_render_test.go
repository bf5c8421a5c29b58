package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewHTMLRenderer_EmptyURL(t *testing.T) {
	if r := NewHTMLRenderer("", "token", time.Second); r != nil {
		t.Errorf("NewHTMLRenderer(\"\") = %+v, want nil", r)
	}
}

func TestHTMLRenderer_Render(t *testing.T) {
	var gotAuth, gotHTML string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		gotAuth = r.Header.Get("Authorization")
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		gotHTML = body["html"]
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	r := NewHTMLRenderer(srv.URL, "s3cret", 5*time.Second)
	pdf, err := r.Render(context.Background(), "<h1>Orçamento</h1>")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(pdf) != "%PDF-1.4 fake" {
		t.Errorf("Render() = %q", pdf)
	}
	if gotAuth != "Bearer s3cret" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if gotHTML != "<h1>Orçamento</h1>" {
		t.Errorf("html = %q", gotHTML)
	}
}

func TestHTMLRenderer_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHTMLRenderer(srv.URL, "", time.Second).Render(context.Background(), "<p></p>")
	if !errors.Is(err, ErrRendererStatus) {
		t.Errorf("Render() error = %v, want ErrRendererStatus", err)
	}
}

func TestHTMLRenderer_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if _, err := NewHTMLRenderer(srv.URL, "", time.Second).Render(context.Background(), "<p></p>"); err == nil {
		t.Error("expected an error for an empty renderer response")
	}
}

func TestHTMLRenderer_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("%PDF-late"))
	}))
	defer srv.Close()

	if _, err := NewHTMLRenderer(srv.URL, "", 20*time.Millisecond).Render(context.Background(), "<p></p>"); err == nil {
		t.Error("expected a timeout error")
	}
}
