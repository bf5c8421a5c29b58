package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
)

// BudgetListPage renders the full budget list page.
func BudgetListPage(data BudgetListData) templ.Component {
	return Layout("Orçamentos", data.User, BudgetListContent(data))
}

// BudgetListContent renders the list table. Cost, tax, net profit and the
// delete action are only emitted for privileged viewers.
func BudgetListContent(data BudgetListData) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		priv := data.User.Privileged

		w.raw(`<div id="budget-list"><h1>Orçamentos</h1>`)
		if len(data.Items) == 0 {
			w.raw(`<p class="empty">Nenhum orçamento cadastrado.</p></div>`)
			return
		}

		w.raw(`<table><thead><tr><th>Código</th><th>Cliente</th><th>Data</th>`)
		w.raw(`<th class="num">Total</th><th class="num">Comissão</th>`)
		if priv {
			w.raw(`<th class="num">Imposto</th><th class="num">Custo</th><th class="num">Lucro líquido</th><th></th>`)
		}
		w.raw(`</tr></thead><tbody>`)

		for _, it := range data.Items {
			w.raw(`<tr`, attr("id", "budget-"+it.ID), `><td><a`, attr("href", "/budgets/"+it.ID), `>`)
			w.text(strconv.Itoa(it.Code))
			w.raw(`</a></td><td>`)
			w.text(it.Customer)
			w.raw(`</td><td>`)
			w.text(it.Created)
			w.raw(`</td><td class="num">`)
			w.text(it.Total)
			w.raw(`</td><td class="num">`)
			w.text(it.Commission)
			w.raw(` (`)
			w.text(it.CommissionRate)
			w.raw(`)</td>`)
			if priv {
				w.raw(`<td class="num">`)
				w.text(it.TaxRate)
				w.raw(`</td><td class="num">`)
				w.text(it.Cost)
				w.raw(`</td><td class="num`)
				if it.NetNegative {
					w.raw(` negative`)
				}
				w.raw(`">`)
				w.text(it.NetProfit)
				w.raw(`</td><td><button`,
					attr("hx-delete", "/budgets/"+it.ID),
					attr("hx-confirm", "Excluir o orçamento "+strconv.Itoa(it.Code)+"?"),
					`>Excluir</button></td>`)
			}
			w.raw(`</tr>`)
		}
		w.raw(`</tbody></table></div>`)
	})
}
