// Package courier contains the Courier aggregate. A courier owns a single
// mutable availability flag that the assignment layer flips in lockstep with
// order transitions; everything else is onboarding identity data.
package courier
