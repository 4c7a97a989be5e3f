package sink

import (
	"bytes"
	"html/template"

	"github.com/matzehuels/polymer/pkg/errors"
)

// ViewerScriptURL is the 3Dmol.js build loaded by HTML output.
const ViewerScriptURL = "https://3Dmol.org/build/3Dmol-min.js"

// HTMLOption configures the standalone viewer page.
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	Title      string
	Width      int
	Height     int
	Radius     float64
	Background string
	ScriptURL  string
	XYZ        string
}

// WithHTMLTitle sets the page title.
func WithHTMLTitle(t string) HTMLOption { return func(r *htmlRenderer) { r.Title = t } }

// WithHTMLSize sets the viewer canvas size in CSS pixels.
func WithHTMLSize(w, h int) HTMLOption { return func(r *htmlRenderer) { r.Width, r.Height = w, h } }

// WithHTMLRadius sets the sphere radius in chain units.
func WithHTMLRadius(radius float64) HTMLOption { return func(r *htmlRenderer) { r.Radius = radius } }

// WithHTMLBackground sets the viewer background color.
func WithHTMLBackground(c string) HTMLOption { return func(r *htmlRenderer) { r.Background = c } }

// RenderHTML embeds XYZ text in a self-contained page that displays it as
// spheres in a rotatable 3D viewer.
func RenderHTML(xyz string, opts ...HTMLOption) ([]byte, error) {
	r := htmlRenderer{
		Title:      "polymer",
		Width:      int(DefaultWidth),
		Height:     int(DefaultHeight),
		Radius:     DefaultRadius,
		Background: "white",
		ScriptURL:  ViewerScriptURL,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.Radius <= 0 {
		r.Radius = DefaultRadius
	}
	r.XYZ = xyz

	var buf bytes.Buffer
	if err := viewerTemplate.Execute(&buf, r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render html viewer")
	}
	return buf.Bytes(), nil
}

var viewerTemplate = template.Must(template.New("viewer").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <script src="{{.ScriptURL}}"></script>
  <style>
    body { font-family: sans-serif; margin: 1.5rem; }
    #viewer { position: relative; width: {{.Width}}px; height: {{.Height}}px; border: 1px solid #ddd; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <div id="viewer"></div>
  <script>
    const xyz = {{.XYZ}};
    const viewer = $3Dmol.createViewer(document.getElementById("viewer"), { backgroundColor: {{.Background}} });
    viewer.addModel(xyz, "xyz");
    viewer.setStyle({}, { sphere: { radius: {{.Radius}} } });
    viewer.zoomTo();
    viewer.render();
  </script>
</body>
</html>
`))
