package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/pocketbase/pocketbase/core"
)

func parseToast(t *testing.T, header string) map[string]string {
	t.Helper()
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(header), &parsed); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	raw, ok := parsed["showToast"]
	if !ok {
		t.Fatal("expected showToast key in HX-Trigger JSON")
	}
	var toast map[string]string
	if err := json.Unmarshal(raw, &toast); err != nil {
		t.Fatalf("showToast value is not valid JSON: %v", err)
	}
	return toast
}

func TestSetToast(t *testing.T) {
	tests := []struct {
		toastType string
		message   string
	}{
		{"success", msgCreated},
		{"error", msgEmptyBudget},
		{"error", `Cliente "ACME" <inválido>`},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e := &core.RequestEvent{}
			e.Response = rec

			SetToast(e, tt.toastType, tt.message)

			toast := parseToast(t, rec.Header().Get("HX-Trigger"))
			if toast["message"] != tt.message || toast["type"] != tt.toastType {
				t.Errorf("toast = %v", toast)
			}

			var flash *http.Cookie
			for _, c := range rec.Result().Cookies() {
				if c.Name == "flash_toast" {
					flash = c
				}
			}
			if flash == nil {
				t.Fatal("expected flash_toast cookie")
			}
			decoded, err := url.QueryUnescape(flash.Value)
			if err != nil {
				t.Fatalf("flash cookie not query-escaped: %v", err)
			}
			var payload map[string]string
			if err := json.Unmarshal([]byte(decoded), &payload); err != nil {
				t.Fatalf("flash cookie is not JSON: %v", err)
			}
			if payload["message"] != tt.message {
				t.Errorf("flash message = %q", payload["message"])
			}
		})
	}
}

func TestSetToast_MergesWithExisting(t *testing.T) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec
	rec.Header().Set("HX-Trigger", `{"budgetSaved":true}`)

	SetToast(e, "success", msgCreated)

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &parsed); err != nil {
		t.Fatalf("HX-Trigger is not valid JSON: %v", err)
	}
	if _, ok := parsed["budgetSaved"]; !ok {
		t.Error("existing trigger was dropped")
	}
	if _, ok := parsed["showToast"]; !ok {
		t.Error("showToast was not added")
	}
}

func TestSetToast_OverwritesInvalidExisting(t *testing.T) {
	rec := httptest.NewRecorder()
	e := &core.RequestEvent{}
	e.Response = rec
	rec.Header().Set("HX-Trigger", "budgetSaved")

	SetToast(e, "error", msgLoadFailed)

	if toast := parseToast(t, rec.Header().Get("HX-Trigger")); toast["message"] != msgLoadFailed {
		t.Errorf("toast = %v", toast)
	}
}

func TestErrorToast_SetsHeaderAndReswap(t *testing.T) {
	for _, code := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusInternalServerError} {
		rec := httptest.NewRecorder()
		e := &core.RequestEvent{}
		e.Response = rec

		if err := ErrorToast(e, code, msgForbidden); err != nil {
			t.Fatalf("ErrorToast returned error: %v", err)
		}
		if rec.Code != code {
			t.Errorf("status = %d, want %d", rec.Code, code)
		}
		if rec.Header().Get("HX-Reswap") != "none" {
			t.Error("expected HX-Reswap none")
		}
		if toast := parseToast(t, rec.Header().Get("HX-Trigger")); toast["type"] != "error" {
			t.Errorf("toast type = %q", toast["type"])
		}
	}
}

func TestRedirectTo(t *testing.T) {
	t.Run("htmx", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/budgets", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		e := &core.RequestEvent{}
		e.Request, e.Response = req, rec

		if err := redirectTo(e, "/budgets/abc"); err != nil {
			t.Fatalf("redirectTo returned error: %v", err)
		}
		if rec.Code != http.StatusOK || rec.Header().Get("HX-Redirect") != "/budgets/abc" {
			t.Errorf("got %d HX-Redirect=%q", rec.Code, rec.Header().Get("HX-Redirect"))
		}
	})

	t.Run("plain", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/budgets", nil)
		rec := httptest.NewRecorder()
		e := &core.RequestEvent{}
		e.Request, e.Response = req, rec

		if err := redirectTo(e, "/budgets/abc"); err != nil {
			t.Fatalf("redirectTo returned error: %v", err)
		}
		if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/budgets/abc" {
			t.Errorf("got %d Location=%q", rec.Code, rec.Header().Get("Location"))
		}
	})
}
