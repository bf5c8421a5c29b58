package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
)

// BudgetCreatePage renders the create page around the draft form.
func BudgetCreatePage(data BudgetFormData) templ.Component {
	return Layout("Novo orçamento", data.User, component(func(ctx context.Context, w *writer) {
		w.raw(`<h1>Novo orçamento</h1>`)
		w.render(ctx, BudgetForm(data))
	}))
}

// BudgetForm renders the draft form. Every HTMX action posts the whole form
// and swaps the returned form in place, so the draft lives in the inputs.
func BudgetForm(data BudgetFormData) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<form id="budget-form" hx-post="/budgets" hx-target="#budget-form" hx-swap="outerHTML">`)

		writeHeaderFields(w, data)
		writeDraftLines(w, data)
		writeEntryRow(w, data)
		writeFormTotals(w, data.Totals)

		w.raw(`<p><button type="submit"`)
		if !data.CanSubmit {
			w.raw(` disabled`)
		}
		w.raw(`>Criar orçamento</button></p></form>`)
	})
}

func fieldError(w *writer, errs map[string]string, key string) {
	if msg, ok := errs[key]; ok {
		w.raw(`<span class="field-error">`)
		w.text(msg)
		w.raw(`</span>`)
	}
}

const previewTrigger = ` hx-post="/budgets/new/preview" hx-trigger="change"`

func writeHeaderFields(w *writer, data BudgetFormData) {
	w.raw(`<fieldset><legend>Dados do orçamento</legend>`)

	w.raw(`<label>Código Pipedrive <input type="number" name="pipedrive_code" min="0"`, attr("value", data.Code), `></label>`)
	fieldError(w, data.Errors, "pipedrive_code")

	w.raw(`<label>Cliente <input type="text" name="customer_name" required`, attr("value", data.Customer), `></label>`)
	fieldError(w, data.Errors, "customer_name")

	// Standard-tier fees are fixed by the server; the inputs are shown
	// read-only and ignored on submit.
	readonly := ""
	if !data.FeesEditable {
		readonly = " readonly"
	}
	w.raw(`<label>Comissão (%) <input type="number" step="0.1" min="0" max="100" name="commission"`,
		attr("value", data.Commission), readonly, previewTrigger, `></label>`)
	fieldError(w, data.Errors, "commission")
	w.raw(`<label>Imposto (%) <input type="number" step="0.1" min="0" max="100" name="tax"`,
		attr("value", data.Tax), readonly, previewTrigger, `></label>`)
	fieldError(w, data.Errors, "tax")

	w.raw(`</fieldset>`)
}

func writeDraftLines(w *writer, data BudgetFormData) {
	w.raw(`<h2>Funcionários</h2>`)
	fieldError(w, data.Errors, "budget_employee")
	if len(data.Lines) == 0 {
		w.raw(`<p class="empty">Nenhum funcionário adicionado.</p>`)
		return
	}

	w.raw(`<table id="draft-lines"><thead><tr><th>Função</th><th class="num">Quantidade</th><th>Unidade</th>`)
	w.raw(`<th class="num">Dedicação</th>`)
	if data.FeesEditable {
		w.raw(`<th class="num">Custo base</th><th class="num">Margem</th>`)
	}
	w.raw(`<th class="num">Total</th><th></th></tr></thead><tbody>`)

	for i, l := range data.Lines {
		prefix := "items[" + strconv.Itoa(i) + "]."
		w.raw(`<tr><td>`)
		w.raw(`<input type="hidden"`, attr("name", prefix+"employee_id"), attr("value", l.FunctionID), `>`)
		w.raw(`<input type="hidden"`, attr("name", prefix+"amount"), attr("value", l.Amount), `>`)
		w.raw(`<input type="hidden"`, attr("name", prefix+"amount_type"), attr("value", strconv.Itoa(l.Unit)), `>`)
		w.raw(`<input type="hidden"`, attr("name", prefix+"dedication"), attr("value", l.Dedication), `>`)
		w.raw(`<input type="hidden"`, attr("name", prefix+"profit_margin"), attr("value", l.ProfitMargin), `>`)
		w.text(l.FunctionName)
		w.raw(`</td><td class="num">`)
		w.text(l.Amount)
		w.raw(`</td><td>`)
		w.text(l.UnitLabel)
		w.raw(`</td><td class="num">`)
		w.text(l.Dedication)
		w.raw(`%</td>`)
		if data.FeesEditable {
			w.raw(`<td class="num">`)
			w.text(l.UnitCost)
			w.raw(`</td><td class="num">`)
			w.text(l.ProfitMargin)
			w.raw(`%</td>`)
		}
		w.raw(`<td class="num">`)
		w.text(l.Revenue)
		w.raw(`</td><td><button type="button"`,
			attr("hx-post", "/budgets/new/lines/"+strconv.Itoa(i)+"/remove"),
			`>Remover</button></td></tr>`)
	}
	w.raw(`</tbody></table>`)
}

func writeEntryRow(w *writer, data BudgetFormData) {
	e := data.Entry
	w.raw(`<fieldset id="entry"><legend>Adicionar funcionário</legend>`)

	w.raw(`<label>Cargo <select name="entry.employee_id"><option value="">Selecione…</option>`)
	for _, f := range data.Functions {
		w.raw(`<option`, attr("value", f.ID), selectedIf(f.ID == e.FunctionID), `>`)
		w.text(f.Name)
		if data.FeesEditable {
			w.raw(` (`)
			w.text(f.Cost)
			w.raw(`)`)
		}
		w.raw(`</option>`)
	}
	w.raw(`</select></label>`)
	fieldError(w, data.Errors, "employee_id")

	w.raw(`<label>Quantidade <input type="number" step="any" min="0" name="entry.amount"`, attr("value", e.Amount), `></label>`)
	fieldError(w, data.Errors, "amount")

	w.raw(`<label>Unidade <select name="entry.amount_type">`)
	for _, u := range data.Units {
		w.raw(`<option`, attr("value", strconv.Itoa(u.Code)), selectedIf(u.Code == e.Unit), `>`)
		w.text(u.Label)
		w.raw(`</option>`)
	}
	w.raw(`</select></label>`)

	w.raw(`<label>Dedicação (%) <input type="number" step="any" min="0" name="entry.dedication"`, attr("value", e.Dedication), `></label>`)
	fieldError(w, data.Errors, "dedication")

	if data.FeesEditable {
		w.raw(`<label>Margem (%) <input type="number" step="any" min="0" name="entry.profit_margin"`, attr("value", e.ProfitMargin), `></label>`)
		fieldError(w, data.Errors, "profit_margin")
	}

	w.raw(`<button type="button" hx-post="/budgets/new/lines">Adicionar</button></fieldset>`)
}

func writeFormTotals(w *writer, t FormTotals) {
	w.raw(`<dl class="summary" id="totals"><dt>Total</dt><dd>`)
	w.text(t.Revenue)
	w.raw(`</dd><dt>Comissão</dt><dd>`)
	w.text(t.Commission)
	w.raw(`</dd>`)
	if t.ShowNet {
		w.raw(`<dt>Imposto</dt><dd>`)
		w.text(t.Tax)
		w.raw(`</dd><dt>Custo</dt><dd>`)
		w.text(t.Cost)
		w.raw(`</dd><dt>Lucro líquido</dt><dd>`)
		w.text(t.NetProfit)
		w.raw(`</dd>`)
	}
	w.raw(`</dl>`)
}
