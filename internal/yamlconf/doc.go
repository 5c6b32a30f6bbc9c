// Package yamlconf loads task files written in YAML.
//
//	tasks:
//	  - name: test
//	    depends_on: [compile, testCompile]
//	    do_last:
//	      - print: running unit tests
package yamlconf
