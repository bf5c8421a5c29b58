package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orcamentos/config"
	"orcamentos/services"
	"orcamentos/templates"
)

// PDFRenderer turns an HTML document into PDF bytes.
type PDFRenderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// ExportOptions carries the document branding and the optional remote
// renderer. A nil Renderer means PDFs are drawn locally.
type ExportOptions struct {
	CompanyName string
	LogoURL     string
	Renderer    PDFRenderer
}

// NewExportOptions builds ExportOptions from cfg.
func NewExportOptions(cfg config.Config) ExportOptions {
	opts := ExportOptions{CompanyName: cfg.CompanyName, LogoURL: cfg.LogoURL}
	// A nil *HTMLRenderer stored in the interface would not compare equal to nil.
	if r := services.NewHTMLRenderer(cfg.PDFRenderURL, cfg.PDFRenderToken, cfg.PDFRenderTimeout); r != nil {
		opts.Renderer = r
	}
	return opts
}

// loadExportData resolves the budget at {id} and flattens it for the
// requested variant. It writes the error response itself and returns
// ok=false when the export cannot proceed.
func loadExportData(app *pocketbase.PocketBase, e *core.RequestEvent, opts ExportOptions, tag, failMsg string) (services.ExportData, bool, error) {
	s, ok := GetSession(e.Request)
	if !ok {
		return services.ExportData{}, false, unauthorized(e)
	}

	variant := services.ParsePDFVariant(e.Request.URL.Query().Get("variant"))
	if variant == services.VariantFull && !s.Privileged() {
		return services.ExportData{}, false, forbidden(e)
	}

	id := e.Request.PathValue("id")
	b, catalog, err := services.LoadBudget(app, id)
	if err != nil {
		if errors.Is(err, services.ErrBudgetNotFound) {
			return services.ExportData{}, false, ErrorToast(e, http.StatusNotFound, msgNotFound)
		}
		log.Printf("%s: could not load budget %s: %v", tag, id, err)
		return services.ExportData{}, false, ErrorToast(e, http.StatusInternalServerError, failMsg)
	}

	created := ""
	if !b.Created.IsZero() {
		created = b.Created.Format(dateLayout)
	}
	v := services.Valuate(b, catalog, s)
	return services.BuildExportData(v, variant, opts.CompanyName, created), true, nil
}

func writeAttachment(e *core.RequestEvent, contentType, filename string, body []byte) error {
	e.Response.Header().Set("Content-Type", contentType)
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	e.Response.WriteHeader(http.StatusOK)
	_, err := e.Response.Write(body)
	return err
}

// HandleBudgetExportPDF downloads the budget as a PDF. ?variant=full is
// restricted to the privileged tier; anything else yields the simple variant.
func HandleBudgetExportPDF(app *pocketbase.PocketBase, opts ExportOptions) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, ok, err := loadExportData(app, e, opts, "budget_export", msgPDFFailed)
		if !ok {
			return err
		}

		var pdfBytes []byte
		if opts.Renderer != nil {
			var html bytes.Buffer
			if err := templates.BudgetDocument(data, opts.LogoURL).Render(e.Request.Context(), &html); err != nil {
				log.Printf("budget_export: could not render document: %v", err)
				return ErrorToast(e, http.StatusInternalServerError, msgPDFFailed)
			}
			pdfBytes, err = opts.Renderer.Render(e.Request.Context(), html.String())
		} else {
			pdfBytes, err = services.GeneratePDF(data)
		}
		if err != nil {
			log.Printf("budget_export: failed to generate PDF: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, msgPDFFailed)
		}

		return writeAttachment(e, "application/pdf", services.ExportFilename(data.Code, data.Full, "pdf"), pdfBytes)
	}
}

// HandleBudgetExportExcel downloads the budget as an .xlsx workbook, with
// the same variant rules as the PDF export.
func HandleBudgetExportExcel(app *pocketbase.PocketBase, opts ExportOptions) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, ok, err := loadExportData(app, e, opts, "budget_export", msgExcelFailed)
		if !ok {
			return err
		}

		xlsx, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("budget_export: failed to generate Excel: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, msgExcelFailed)
		}

		return writeAttachment(e,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			services.ExportFilename(data.Code, data.Full, "xlsx"), xlsx)
	}
}
