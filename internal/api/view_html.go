package api

const pageHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Invest Desk</title>
  <link href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.5.1/css/all.min.css" rel="stylesheet" />
  <style>
    body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; background: #0d1117; color: #c9d1d9; }
    body.scroll-locked { overflow: hidden; }
    header { padding: 16px 24px; border-bottom: 1px solid #30363d; display: flex; gap: 12px; align-items: center; }
    header form { display: inline; }
    button { background: #238636; color: #fff; border: 0; border-radius: 6px; padding: 6px 12px; cursor: pointer; }
    button.secondary { background: #30363d; }
    .stats { display: flex; gap: 32px; padding: 16px 24px; }
    .stat-number { font-size: 24px; font-weight: 600; color: #e6edf3; }
    .modal { position: fixed; inset: 0; background: rgba(0, 0, 0, 0.6); display: flex; align-items: flex-start; justify-content: center; padding-top: 48px; }
    .modal-content { background: #161b22; border: 1px solid #30363d; border-radius: 8px; width: min(960px, 94vw); padding: 20px; }
    .modal-header { display: flex; justify-content: space-between; align-items: center; }
    .stock-grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(200px, 1fr)); gap: 12px; margin-top: 16px; }
    .stock-card { border: 1px solid #30363d; border-radius: 8px; padding: 12px; }
    .stock-change.positive { color: #3fb950; }
    .stock-change.negative { color: #f85149; }
    .chart { display: flex; align-items: flex-end; gap: 3px; height: 40px; margin: 8px 0; }
    .chart span { flex: 1; background: #1f6feb; }
    .no-results { text-align: center; padding: 32px; color: #8b949e; }
    .buy-ack { padding: 12px 24px; background: #0f2d1a; color: #3fb950; }
    .error { padding: 12px 24px; background: #2d0f0f; color: #f85149; }
  </style>
</head>
<body{{if .Page.ScrollLocked}} class="scroll-locked"{{end}} data-page-id="{{.Page.ID}}">
  <header>
    <strong>Invest Desk</strong>
    {{range .Categories}}
    <form method="post" action="/pages/{{$.Page.ID}}/open">
      <input type="hidden" name="category" value="{{.}}" />
      <button type="submit" class="category-button" data-category="{{.}}">{{.}}</button>
    </form>
    {{end}}
  </header>

  {{with .Page.LastAck}}<div class="buy-ack" data-symbol="{{.Intent.Symbol}}">{{.Message}}</div>{{end}}
  {{with .Page.LastError}}<div class="error">{{.}}</div>{{end}}

  <section class="stats">
    {{range .Counters}}
    <div class="stat" data-counter="{{.ID}}">
      <div class="stat-number">{{.Display}}</div>
      <div class="stat-label">{{.Label}}</div>
    </div>
    {{end}}
  </section>

  {{with .Page.Browser}}{{if eq .State "open"}}
  <div class="modal" id="stockSelectionModal">
    <div class="modal-content">
      <div class="modal-header">
        <h2 id="stockModalTitle">{{.Title}}</h2>
        <form method="post" action="/pages/{{$.Page.ID}}/close">
          <button type="submit" class="secondary close-modal" aria-label="Close">&times;</button>
        </form>
      </div>
      <form method="post" action="/pages/{{$.Page.ID}}/filter">
        <input type="text" id="stockSearch" name="q" value="{{.SearchQuery}}" placeholder="{{.SearchPlaceholder}}" autocomplete="off" />
        <button type="submit" class="secondary">Filter</button>
      </form>
      <div class="stock-grid" id="stockGrid">
        {{range .Cards}}
        <div class="stock-card"{{if not .Visible}} style="display: none"{{end}} data-symbol="{{.DataSymbol}}" data-name="{{.DataName}}">
          <div class="stock-header">
            <span class="stock-icon">{{.Icon}}</span>
            <span class="stock-name">{{.Name}}</span>
            <span class="stock-symbol">{{.Symbol}}</span>
          </div>
          <div class="chart">{{range .ChartBars}}<span style="height: {{.}}%"></span>{{end}}</div>
          <div class="stock-price">{{.Price}}</div>
          <div class="stock-change {{.ChangeClass}}">{{.Change}}</div>
          <div class="stock-shares">{{.Shares}}</div>
          <form method="post" action="/pages/{{$.Page.ID}}/select">
            <input type="hidden" name="symbol" value="{{.Symbol}}" />
            <input type="hidden" name="name" value="{{.Name}}" />
            <button type="submit" class="buy-button">Buy</button>
          </form>
        </div>
        {{end}}
        {{with .NoResults}}
        <div class="no-results">
          <i class="fas {{.Icon}}"></i>
          <p>{{.Message}}</p>
        </div>
        {{end}}
      </div>
    </div>
  </div>
  {{end}}{{end}}

  {{if .Page.ModalStack}}
  <form method="post" action="/pages/{{.Page.ID}}/escape" class="escape-form">
    <button type="submit" class="secondary">Esc</button>
  </form>
  {{end}}
</body>
</html>`
