// Package files finds, reads and rewrites expression files.
//
// An expression file holds one metric expression. Its canonical content is
// the rendering produced by pkg/expr followed by a newline. The Loader is
// shared by the fmt, lint and watch commands:
//
//	loader := files.NewLoader(files.ConfigFrom(cfg), formatter)
//	paths, err := loader.Collect("graphs/")
//	for _, path := range paths {
//	    res, err := loader.Format(path)
//	    ...
//	    written, err := loader.Write(res)
//	}
//
// Directories are walked recursively for the configured extensions. Hidden
// entries are skipped unless IncludeHidden is set.
package files
