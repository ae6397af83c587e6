// Package csp builds Content-Security-Policy header values.
package csp

import "strings"

// Header names.
const (
	HeaderEnforce    = "Content-Security-Policy"
	HeaderReportOnly = "Content-Security-Policy-Report-Only"
)

// directiveOrder fixes the rendering order so that equal policies produce
// equal header values.
var directiveOrder = []string{
	"default-src",
	"script-src",
	"style-src",
	"img-src",
	"font-src",
	"connect-src",
	"frame-ancestors",
	"form-action",
	"base-uri",
	"object-src",
	"sandbox",
	"report-uri",
}

// Policy is a set of CSP directives built fluently.
//
//	value := csp.NewPolicy().DefaultSrc("'none'").FrameAncestors("'none'").String()
//	// "default-src 'none'; frame-ancestors 'none'"
//
// A Policy is not safe for concurrent mutation; build it once at startup.
type Policy struct {
	directives map[string][]string
}

// NewPolicy returns an empty policy.
func NewPolicy() *Policy {
	return &Policy{directives: make(map[string][]string)}
}

func (p *Policy) set(name string, sources []string) *Policy {
	p.directives[name] = sources
	return p
}

// DefaultSrc is the fallback for every fetch directive that is not set.
func (p *Policy) DefaultSrc(sources ...string) *Policy { return p.set("default-src", sources) }

func (p *Policy) ScriptSrc(sources ...string) *Policy { return p.set("script-src", sources) }
func (p *Policy) StyleSrc(sources ...string) *Policy { return p.set("style-src", sources) }
func (p *Policy) ImgSrc(sources ...string) *Policy { return p.set("img-src", sources) }
func (p *Policy) FontSrc(sources ...string) *Policy { return p.set("font-src", sources) }
func (p *Policy) ConnectSrc(sources ...string) *Policy { return p.set("connect-src", sources) }
func (p *Policy) FormAction(sources ...string) *Policy { return p.set("form-action", sources) }
func (p *Policy) BaseURI(sources ...string) *Policy { return p.set("base-uri", sources) }
func (p *Policy) ObjectSrc(sources ...string) *Policy { return p.set("object-src", sources) }

// FrameAncestors controls who may embed the response; 'none' prevents clickjacking.
func (p *Policy) FrameAncestors(sources ...string) *Policy { return p.set("frame-ancestors", sources) }

// Sandbox applies the sandbox directive. With no flags every sandbox
// restriction applies.
func (p *Policy) Sandbox(flags ...string) *Policy {
	if len(flags) == 0 {
		flags = []string{""}
	}
	return p.set("sandbox", flags)
}

// ReportURI sets where browsers post violation reports.
func (p *Policy) ReportURI(uri string) *Policy { return p.set("report-uri", []string{uri}) }

// String renders the header value. An empty policy renders "".
func (p *Policy) String() string {
	parts := make([]string, 0, len(p.directives))
	for _, name := range directiveOrder {
		sources, ok := p.directives[name]
		if !ok {
			continue
		}
		parts = append(parts, strings.TrimSpace(name+" "+strings.Join(sources, " ")))
	}
	return strings.Join(parts, "; ")
}

// APIPolicy is for JSON responses: nothing may load and nothing may frame them.
func APIPolicy() *Policy {
	return NewPolicy().
		DefaultSrc("'none'").
		FrameAncestors("'none'").
		BaseURI("'none'").
		FormAction("'none'")
}

// SwaggerUIPolicy lets the bundled Swagger UI run its inline bootstrap script
// and styles and fetch doc.json from the same origin.
func SwaggerUIPolicy() *Policy {
	return NewPolicy().
		DefaultSrc("'self'").
		ScriptSrc("'self'", "'unsafe-inline'").
		StyleSrc("'self'", "'unsafe-inline'").
		ImgSrc("'self'", "data:").
		FontSrc("'self'", "data:").
		ConnectSrc("'self'").
		FrameAncestors("'none'").
		BaseURI("'self'").
		FormAction("'self'").
		ObjectSrc("'none'")
}

// UploadPolicy is for locally served article images. An uploaded file that
// a browser sniffs as HTML or SVG still cannot run script.
func UploadPolicy() *Policy {
	return NewPolicy().
		DefaultSrc("'none'").
		ImgSrc("'self'").
		StyleSrc("'unsafe-inline'").
		Sandbox()
}
