// Package naming turns hashes into Kubernetes-safe identifiers. A Namer
// hashes a value, substitutes the result for {hash} in a single-brace
// template together with caller variables, and validates the rendered name as
// a DNS-1123 label. LabelValue returns a bare hash validated as a label value.
package naming
