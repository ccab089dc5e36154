// Package resource bounds what a clustering run may consume: memory for
// materialized point sets, the number of input tables decoded at once and
// the byte rate at which inputs are read.
//
// A nil *Controller is valid and imposes no limits.
package resource
