// Package hcl loads task files written in HCL.
//
//	task "test" {
//	  description = "Runs the unit tests."
//	  depends_on  = ["compile", "testCompile"]
//	  do_last {
//	    print = "testing as ${env.USER}"
//	  }
//	}
//
// Expressions are evaluated once, at load time, against an evaluation
// context exposing the process environment as env and a few string
// functions (upper, lower, join, format, trimspace).
package hcl
