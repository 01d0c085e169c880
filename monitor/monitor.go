package monitor

import (
	"net/http"
	"os"

	"partner-portal-api/config"

	"github.com/gin-gonic/gin"
)

// RegisterMonitorPage mounts a minimal operator page: a health probe plus a
// token-gated tail of the backend log.
func RegisterMonitorPage(router *gin.Engine) {
	router.GET("/monitor", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>Partner Portal Monitor</title>
  <style>
    body { background: #111; color: #ddd; font-family: monospace; padding: 20px; }
    h1 { font-size: 1.4rem; }
    #logs { background: #000; padding: 1rem; max-height: 500px; overflow-y: auto; white-space: pre-wrap; }
  </style>
</head>
<body>
  <h1>Partner Portal API</h1>
  <div id="status">checking...</div>
  <pre id="logs"></pre>
  <script>
    const token = new URLSearchParams(location.search).get('token') || '';
    fetch('/api/v1/health').then(r => r.json()).then(d => {
      document.getElementById('status').textContent = d.status + ' — ' + d.message;
    });
    const refresh = () => fetch('/monitor/logs?token=' + encodeURIComponent(token))
      .then(r => r.text())
      .then(t => { document.getElementById('logs').textContent = t; });
    refresh();
    setInterval(refresh, 10000);
  </script>
</body>
</html>`))
	})

	router.GET("/monitor/logs", func(c *gin.Context) {
		accessToken := os.Getenv("MONITOR_TOKEN")
		if accessToken == "" || c.Query("token") != accessToken {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		logData, err := os.ReadFile(config.LogFilePath())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to read log"})
			return
		}

		c.Data(http.StatusOK, "text/plain; charset=utf-8", logData)
	})
}
