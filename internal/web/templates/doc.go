// Package templates holds the HTML fragments swapped in by HTMX on the
// phrase import page. Edit the .templ sources and run `templ generate`.
package templates
