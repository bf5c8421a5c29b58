package templates

import (
	"context"

	"github.com/a-h/templ"

	"orcamentos/services"
)

const documentStyle = `
body { font-family: Helvetica, Arial, sans-serif; font-size: 11px; color: #212529; margin: 24px; }
.brand { display: flex; justify-content: space-between; align-items: center; margin-bottom: 16px; }
.brand img { max-height: 48px; }
h1 { font-size: 18px; text-align: center; }
.meta { display: flex; justify-content: space-between; color: #555; margin-bottom: 12px; }
table { width: 100%; border-collapse: collapse; }
th { background: #212529; color: #fff; padding: 6px; }
td { padding: 5px 6px; border-bottom: 1px solid #dee2e6; }
tr:nth-child(even) td { background: #f5f5f5; }
.num { text-align: right; }
.summary { margin-top: 16px; margin-left: auto; width: 45%; }
.summary td { font-weight: bold; background: #f0f0f0; }
`

// BudgetDocument is the printable HTML handed to the remote PDF renderer.
// It carries the same columns and summary lines as the local PDF export.
func BudgetDocument(data services.ExportData, logoURL string) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<!DOCTYPE html><html lang="pt-BR"><head><meta charset="utf-8"><title>`)
		w.text(data.Title)
		w.raw(`</title><style>`, documentStyle, `</style></head><body>`)

		w.raw(`<div class="brand"><strong>`)
		w.text(data.CompanyName)
		w.raw(`</strong>`)
		if logoURL != "" {
			w.raw(`<img`, attr("src", logoURL), attr("alt", data.CompanyName), `>`)
		}
		w.raw(`</div><h1>`)
		w.text(data.Title)
		w.raw(`</h1><div class="meta"><span>Cliente: `)
		w.text(data.CustomerName)
		w.raw(`</span><span>Data: `)
		w.text(data.CreatedDate)
		w.raw(`</span></div>`)

		w.raw(`<table><thead><tr><th>#</th><th>Função</th><th class="num">Qtd.</th><th>Unidade</th><th class="num">Dedicação</th>`)
		if data.Full {
			w.raw(`<th class="num">Custo base</th><th class="num">Margem</th>`)
		}
		w.raw(`<th class="num">Total</th><th class="num">Comissão</th></tr></thead><tbody>`)
		for _, r := range data.Rows {
			w.raw(`<tr><td>`)
			w.text(r.Index)
			w.raw(`</td><td>`)
			w.text(r.Function)
			w.raw(`</td><td class="num">`)
			w.text(services.FormatAmount(r.Amount))
			w.raw(`</td><td>`)
			w.text(r.UnitLabel)
			w.raw(`</td><td class="num">`)
			w.text(services.FormatPercent(r.Dedication))
			w.raw(`</td>`)
			if data.Full {
				w.raw(`<td class="num">`)
				w.text(services.FormatBRL(r.UnitCost))
				w.raw(`</td><td class="num">`)
				w.text(services.FormatPercent(r.ProfitMargin))
				w.raw(`</td>`)
			}
			w.raw(`<td class="num">`)
			w.text(services.FormatBRL(r.Total))
			w.raw(`</td><td class="num">`)
			w.text(services.FormatBRL(r.Commission))
			w.raw(`</td></tr>`)
		}
		w.raw(`</tbody></table>`)

		w.raw(`<table class="summary"><tbody>`)
		for _, l := range services.SummaryLines(data) {
			w.raw(`<tr><td>`)
			w.text(l.Label)
			w.raw(`</td><td class="num">`)
			w.text(services.FormatBRL(l.Value))
			w.raw(`</td></tr>`)
		}
		w.raw(`</tbody></table></body></html>`)
	})
}
