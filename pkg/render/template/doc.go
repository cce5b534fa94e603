// Package template defines the template rendering seam used for workspace
// paths and companion files. The pongo2-backed implementation lives in the
// gotemplate subpackage.
package template
