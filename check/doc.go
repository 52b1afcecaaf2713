// Package check contains the validation stages of the mxsweep pipeline:
// the pure syntax classifier and the DNS MX resolver. These types can be
// used directly, but the usual entry point is the Runner in the
// github.com/optimode/mxsweep package, which wires them behind the
// rate gate.
package check
