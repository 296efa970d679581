// Package assets serves the embedded HTML templates and stylesheets the
// renderer loads cards and answer tables into.
package assets
