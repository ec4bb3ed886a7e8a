// mmpp parses metric expressions and prints them in canonical form.
//
// Usage:
//
//	# Format an expression read from stdin
//	echo 'avg(group(host(h1,loadavg5),host(h2,loadavg5)))' | mmpp
//
//	# Rewrite expression files in place
//	mmpp fmt -w graphs/
//
//	# Fail CI when a file is not canonical
//	mmpp fmt --check graphs/
//
//	# Report syntax and shape errors
//	mmpp lint --dir graphs/ --format json
//
//	# Keep a directory canonical while editing
//	mmpp watch --dir graphs/
package main

import "os"

func main() {
	os.Exit(Execute())
}
