package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
)

// BudgetViewPage renders one budget. Base cost, margin and the cost side of
// the summary are only emitted when ShowFinancials is set.
func BudgetViewPage(data BudgetViewData) templ.Component {
	title := "Orçamento #" + strconv.Itoa(data.Code)
	return Layout(title, data.User, component(func(ctx context.Context, w *writer) {
		w.raw(`<h1>`)
		w.text(title)
		w.raw(`</h1><p>Cliente: <strong>`)
		w.text(data.Customer)
		w.raw(`</strong> · Criado em `)
		w.text(data.Created)
		w.raw(`</p>`)

		w.raw(`<p class="actions"><a`, attr("href", "/budgets/"+data.ID+"/export/pdf?variant=simple"), `>PDF simplificado</a>`)
		if data.ShowFinancials {
			w.raw(` · <a`, attr("href", "/budgets/"+data.ID+"/export/pdf?variant=full"), `>PDF completo</a>`)
		}
		w.raw(` · <a`, attr("href", "/budgets/"+data.ID+"/export/excel"), `>Excel</a>`)
		if data.ShowFinancials {
			w.raw(` · <button`, attr("hx-delete", "/budgets/"+data.ID),
				` hx-confirm="Excluir este orçamento?">Excluir</button>`)
		}
		w.raw(`</p>`)

		w.raw(`<table><thead><tr><th>#</th><th>Função</th><th class="num">Quantidade</th><th>Unidade</th><th class="num">Dedicação</th>`)
		if data.ShowFinancials {
			w.raw(`<th class="num">Custo base</th><th class="num">Margem</th>`)
		}
		w.raw(`<th class="num">Total</th><th class="num">Comissão</th></tr></thead><tbody>`)
		for _, l := range data.Lines {
			w.raw(`<tr><td>`)
			w.text(strconv.Itoa(l.Index))
			w.raw(`</td><td>`)
			w.text(l.Function)
			w.raw(`</td><td class="num">`)
			w.text(l.Amount)
			w.raw(`</td><td>`)
			w.text(l.UnitLabel)
			w.raw(`</td><td class="num">`)
			w.text(l.Dedication)
			w.raw(`</td>`)
			if data.ShowFinancials {
				w.raw(`<td class="num">`)
				w.text(l.UnitCost)
				w.raw(`</td><td class="num">`)
				w.text(l.ProfitMargin)
				w.raw(`</td>`)
			}
			w.raw(`<td class="num">`)
			w.text(l.Total)
			w.raw(`</td><td class="num">`)
			w.text(l.Commission)
			w.raw(`</td></tr>`)
		}
		w.raw(`</tbody></table>`)

		w.raw(`<dl class="summary"><dt>Total</dt><dd>`)
		w.text(data.Total)
		w.raw(`</dd><dt>Comissão (`)
		w.text(data.CommissionRate)
		w.raw(`)</dt><dd>`)
		w.text(data.Commission)
		w.raw(`</dd>`)
		if data.ShowFinancials {
			w.raw(`<dt>Imposto (`)
			w.text(data.TaxRate)
			w.raw(`)</dt><dd>`)
			w.text(data.Tax)
			w.raw(`</dd><dt>Custo</dt><dd>`)
			w.text(data.Cost)
			w.raw(`</dd><dt>Lucro líquido</dt><dd`)
			if data.NetNegative {
				w.raw(` class="negative"`)
			}
			w.raw(`>`)
			w.text(data.NetProfit)
			w.raw(`</dd>`)
		}
		w.raw(`</dl>`)
	}))
}
