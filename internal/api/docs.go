package api

const docsHTML = `<!doctype html>
<html lang="en" data-theme="dark">
<head>
  <meta charset="utf-8" />
  <meta name="referrer" content="same-origin" />
  <meta name="viewport" content="width=device-width, initial-scale=1, shrink-to-fit=no" />
  <title>Invest Desk API</title>
  <link href="https://unpkg.com/@stoplight/elements@9.0.0/styles.min.css" rel="stylesheet" />
  <script src="https://unpkg.com/@stoplight/elements@9.0.0/web-components.min.js" crossorigin="anonymous"></script>
</head>
<body style="height: 100vh; margin: 0; position: relative;">
  <a href="/docs/events" style="
    position: fixed;
    top: 12px;
    right: 16px;
    z-index: 9999;
    background: #161b22;
    border: 1px solid #30363d;
    border-radius: 6px;
    color: #58a6ff;
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
    font-size: 12px;
    padding: 5px 12px;
    text-decoration: none;
  ">Event Stream Docs</a>
  <elements-api
    apiDescriptionUrl="/openapi.json"
    router="hash"
    layout="sidebar"
    tryItCredentialsPolicy="same-origin"
    darkMode
  />
</body>
</html>`

const eventsDocsHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Event Streams - Invest Desk</title>
  <style>
    body { margin: 0 auto; max-width: 860px; padding: 24px; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; font-size: 14px; line-height: 1.65; background: #0d1117; color: #c9d1d9; }
    a { color: #58a6ff; }
    code, pre { font-family: ui-monospace, SFMono-Regular, Menlo, monospace; font-size: 12.5px; }
    pre { background: #161b22; border: 1px solid #30363d; border-radius: 6px; padding: 12px 16px; overflow-x: auto; }
    table { border-collapse: collapse; width: 100%; }
    th, td { border: 1px solid #30363d; padding: 6px 10px; text-align: left; }
  </style>
</head>
<body>
  <p><a href="/docs">&larr; API reference</a></p>
  <h1>Event Streams</h1>
  <p>The desk publishes page events on two transports. Both accept an optional
  <code>feeds</code> query parameter (comma separated) to subscribe to a subset.</p>

  <table>
    <tr><th>Endpoint</th><th>Transport</th></tr>
    <tr><td><code>GET /events</code></td><td>Server-sent events; the SSE event name is the feed.</td></tr>
    <tr><td><code>GET /events/ws</code></td><td>WebSocket; each text frame is <code>{"feed": ..., "payload": ...}</code>.</td></tr>
  </table>

  <h2>Feeds</h2>
  <h3><code>modal</code></h3>
  <p>Every modal open or close on any page.</p>
  <pre>{"page_id":"6f1c...","id":"stockSelectionModal","active":true,"stack":["stockSelectionModal"],"scroll_locked":true}</pre>

  <h3><code>buy_intent</code></h3>
  <p>Every confirmed buy selection.</p>
  <pre>{"page_id":"6f1c...","intent":{"id":"...","symbol":"GTCO","name":"Guaranty Trust","category":"NG Stocks","instrument":{...},"at":"..."},"message":"Buying Guaranty Trust (GTCO)"}</pre>

  <h2>Example</h2>
  <pre>curl -N 'http://127.0.0.1:8190/events?feeds=buy_intent'</pre>

  <p>Slow subscribers have events dropped rather than blocking the desk.</p>
</body>
</html>`
