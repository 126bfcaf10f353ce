package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// indexHTML is the embedded demo page. It polls the public telemetry
// endpoint so the station works without any external assets.
const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Sensor Station</title>
<style>
  body { font-family: system-ui, sans-serif; background: #101418; color: #e8e8e8;
         display: flex; flex-direction: column; align-items: center; margin-top: 4rem; }
  h1   { font-weight: 400; letter-spacing: 0.05em; }
  .card { background: #1a2026; border-radius: 8px; padding: 2rem 3rem; margin: 1rem;
          text-align: center; min-width: 14rem; }
  .value { font-size: 3rem; }
  .unit  { color: #8aa; }
  footer { margin-top: 2rem; color: #667; font-size: 0.85rem; }
</style>
</head>
<body>
<h1>Sensor Station</h1>
<div class="card">
  <div>Temperature</div>
  <div class="value"><span id="temp">--</span><span class="unit"> &deg;C</span></div>
</div>
<div class="card">
  <div>Humidity</div>
  <div class="value"><span id="hum">--</span><span class="unit"> %</span></div>
</div>
<footer>updated <span id="ts">never</span></footer>
<script>
async function refresh() {
  try {
    const res = await fetch('/api/v1/telemetry');
    if (!res.ok) return;
    const r = await res.json();
    document.getElementById('temp').textContent = r.temperature.toFixed(1);
    document.getElementById('hum').textContent = r.humidity.toFixed(1);
    document.getElementById('ts').textContent = new Date(r.timestamp * 1000).toLocaleTimeString();
  } catch (e) { /* station unreachable, keep last values */ }
}
refresh();
setInterval(refresh, 5000);
</script>
</body>
</html>
`

// indexPage serves the embedded readout page at / and /index.html.
func (h *Handler) indexPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
}
