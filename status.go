package dawsync

import (
	"html/template"
	"net/http"

	"github.com/golang/glog"
)

// ListenAndServeStatus serves a page showing the server's mode and every
// value last sent to the surface.
func ListenAndServeStatus(listenAddr string, s *Server) error {
	const (
		master = `
		<html>
		<body>
		Surface: {{.Surface}} ({{.Mode}} mode){{if .Resync}}, resync pending{{end}}
		<table>
		{{range .Values}}
			<tr>
					<td>{{.Address.Path}}</td>
					<td>{{.Value.Kind}}</td>
					<td>{{.Value}}</td>
			</tr>
		{{end}}
		</table>
		</body>
		</html>`
	)

	masterTmpl, err := template.New("master").Parse(master)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		if err := masterTmpl.Execute(w, s.Status()); err != nil {
			glog.Errorf("Failed to render status page: %v", err)
		}
	})

	return http.ListenAndServe(listenAddr, mux)
}
