package templates

import (
	"context"

	"github.com/a-h/templ"
)

const toastScript = `
document.body.addEventListener("showToast", function (evt) {
  showToast(evt.detail.message, evt.detail.type);
});
function showToast(message, type) {
  var box = document.getElementById("toasts");
  var el = document.createElement("div");
  el.className = "toast toast-" + (type || "info");
  el.textContent = message;
  box.appendChild(el);
  setTimeout(function () { el.remove(); }, 4000);
}
(function () {
  var m = document.cookie.match(/(?:^|; )flash_toast=([^;]*)/);
  if (!m) return;
  document.cookie = "flash_toast=; Max-Age=0; path=/";
  try {
    var t = JSON.parse(decodeURIComponent(m[1].replace(/\+/g, " ")));
    showToast(t.message, t.type);
  } catch (e) {}
})();
`

const layoutStyle = `
body { font-family: system-ui, sans-serif; margin: 0; color: #212529; background: #f8f9fa; }
header { display: flex; justify-content: space-between; align-items: center; padding: 12px 24px; background: #212529; color: #fff; }
header a { color: #fff; text-decoration: none; margin-right: 16px; }
main { padding: 24px; max-width: 1200px; margin: 0 auto; }
table { width: 100%; border-collapse: collapse; background: #fff; }
th, td { padding: 8px; border-bottom: 1px solid #dee2e6; text-align: left; }
th { background: #343a40; color: #fff; }
td.num, th.num { text-align: right; }
.negative { color: #c92a2a; }
.field-error { color: #c92a2a; font-size: 0.85em; }
.summary { margin-top: 16px; background: #fff; padding: 12px; }
.summary dt { font-weight: bold; }
#toasts { position: fixed; top: 16px; right: 16px; z-index: 10; }
.toast { padding: 10px 16px; margin-bottom: 8px; border-radius: 4px; color: #fff; background: #495057; }
.toast-error { background: #c92a2a; }
.toast-success { background: #2b8a3e; }
`

// Layout wraps page content with the shared head, header and toast area.
func Layout(title string, user UserBadge, content templ.Component) templ.Component {
	return component(func(ctx context.Context, w *writer) {
		w.raw(`<!DOCTYPE html><html lang="pt-BR"><head><meta charset="utf-8">`)
		w.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.raw(`<title>`)
		w.text(title)
		w.raw(` · Orçamentos</title>`)
		w.raw(`<script src="https://unpkg.com/htmx.org@2.0.4"></script>`)
		w.raw(`<style>`, layoutStyle, `</style></head><body>`)

		w.raw(`<header><nav><a href="/budgets">Orçamentos</a><a href="/budgets/new">Novo orçamento</a></nav>`)
		if user.Email != "" {
			w.raw(`<div><span>`)
			w.text(user.Email)
			w.raw(`</span> <a href="/logout">Sair</a></div>`)
		}
		w.raw(`</header>`)

		w.raw(`<main>`)
		w.render(ctx, content)
		w.raw(`</main><div id="toasts"></div>`)
		w.raw(`<script>`, toastScript, `</script></body></html>`)
	})
}

// NotFoundPage is shown when a budget id does not resolve.
func NotFoundPage(user UserBadge, message string) templ.Component {
	return Layout("Não encontrado", user, component(func(ctx context.Context, w *writer) {
		w.raw(`<h1>Não encontrado</h1><p>`)
		w.text(message)
		w.raw(`</p><p><a href="/budgets">Voltar para a lista de orçamentos</a></p>`)
	}))
}
