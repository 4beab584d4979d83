// Package product contains the catalog types moved between the source
// commerce platform and the destination backend, and the per-store mappings
// linking the two.
package product
