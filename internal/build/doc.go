// Package build runs a complete site build.
//
// A build is an ordered pipeline of stages sharing one State. Posts are built
// first so the post index is complete before any page that lists posts is
// composed. The first fatal stage error aborts the build; nothing after it
// runs and the error is returned to the caller.
package build
