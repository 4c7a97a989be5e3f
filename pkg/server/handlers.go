package server

import (
	_ "embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/matzehuels/polymer/pkg/pipeline"
	"github.com/matzehuels/polymer/pkg/render/sink"
)

//go:embed static/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type indexData struct {
	Units       int
	Angle       float64
	Rigidity    float64
	MinUnits    int
	MaxUnits    int
	MaxAngle    float64
	MaxRigidity float64
	Radius      float64
	ScriptURL   string
	Filename    string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	radius := s.defaults.Radius
	if radius == 0 {
		radius = pipeline.DefaultRadius
	}
	data := indexData{
		Units:       s.defaults.Units,
		Angle:       s.defaults.Angle,
		Rigidity:    s.defaults.Rigidity,
		MinUnits:    pipeline.MinUnits,
		MaxUnits:    pipeline.MaxUnits,
		MaxAngle:    pipeline.MaxAngle,
		MaxRigidity: pipeline.MaxRigidity,
		Radius:      radius,
		ScriptURL:   sink.ViewerScriptURL,
		Filename:    pipeline.DefaultFilename,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		s.logger.Error("render index", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChain(w http.ResponseWriter, r *http.Request) {
	s.serveFormat(w, r, pipeline.FormatXYZ, "")
}

func (s *Server) handleChainJSON(w http.ResponseWriter, r *http.Request) {
	s.serveFormat(w, r, pipeline.FormatJSON, "")
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	s.serveFormat(w, r, pipeline.FormatXYZ, pipeline.DefaultFilename)
}

func (s *Server) handleRender(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.serveFormat(w, r, format, "")
	}
}

// serveFormat runs the pipeline for one format and writes the artifact.
// A non-empty filename makes the response a download.
func (s *Server) serveFormat(w http.ResponseWriter, r *http.Request, format, filename string) {
	opts, err := s.parseOptions(r.URL.Query(), format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Logger = s.logger.With("id", RequestID(r.Context()))

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data := res.Artifacts[format]

	h := w.Header()
	h.Set("Content-Type", pipeline.ContentType(format))
	h.Set("Content-Length", strconv.Itoa(len(data)))
	if filename != "" {
		h.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	if res.CacheInfo.Cacheable {
		h.Set("X-Cache", cacheStatus(res.CacheInfo.RenderHit))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
