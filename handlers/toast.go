package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase/core"
)

// User-facing notices. Remote and storage failures all map to one of these.
const (
	msgLoginRequired  = "Faça login para continuar"
	msgForbidden      = "Você não tem permissão para esta ação"
	msgLoadFailed     = "Não foi possível carregar os orçamentos"
	msgNotFound       = "Orçamento não encontrado"
	msgCreateFailed   = "Não foi possível criar o orçamento."
	msgCreated        = "Orçamento criado com sucesso."
	msgDeleteFailed   = "Não foi possível excluir o orçamento"
	msgDeleted        = "Orçamento excluído com sucesso"
	msgPDFFailed      = "Não foi possível gerar o PDF"
	msgExcelFailed    = "Não foi possível gerar a planilha"
	msgEmptyBudget    = "Adicione pelo menos um funcionário"
	msgInvalidRequest = "Dados inválidos"
)

// SetToast sets the HX-Trigger response header to show a toast notification
// on the client via HTMX, merging into any HX-Trigger already present.
// It also sets a flash cookie so toasts survive regular (non-HTMX) redirects.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	payload := map[string]string{"message": message, "type": toastType}

	trigger := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &trigger); err != nil {
			log.Printf("toast: existing HX-Trigger is not valid JSON, overwriting: %v", err)
			trigger = map[string]any{}
		}
	}
	trigger["showToast"] = payload

	data, err := json.Marshal(trigger)
	if err != nil {
		log.Printf("toast: failed to marshal HX-Trigger JSON: %v", err)
		return
	}
	e.Response.Header().Set("HX-Trigger", string(data))

	cookieVal, err := json.Marshal(payload)
	if err == nil {
		http.SetCookie(e.Response, &http.Cookie{
			Name:     "flash_toast",
			Value:    url.QueryEscape(string(cookieVal)),
			Path:     "/",
			MaxAge:   10,
			HttpOnly: false, // read by the toast script
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// ErrorToast sets an error toast and prevents HTMX from swapping the error text into the DOM.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, "error", message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}

// redirectTo sends HTMX requests an HX-Redirect and everything else a 302.
func redirectTo(e *core.RequestEvent, target string) error {
	if e.Request.Header.Get("HX-Request") == "true" {
		e.Response.Header().Set("HX-Redirect", target)
		return e.String(http.StatusOK, "")
	}
	return e.Redirect(http.StatusFound, target)
}

func unauthorized(e *core.RequestEvent) error {
	return ErrorToast(e, http.StatusUnauthorized, msgLoginRequired)
}

func forbidden(e *core.RequestEvent) error {
	return ErrorToast(e, http.StatusForbidden, msgForbidden)
}
