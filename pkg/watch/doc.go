// Package watch keeps expression files in canonical form as they change.
//
// A FileWatcher wraps fsnotify. It watches a directory tree, or a single
// file through its parent directory, and hands debounced batches of changed
// paths to a callback. A Reformatter is such a callback: it formats each
// file with a files.Loader and rewrites it when the content differs.
//
//	fw, err := watch.NewFileWatcher(&watch.Config{
//	    Path:             "graphs",
//	    DebounceInterval: 100 * time.Millisecond,
//	    Extensions:       []string{".graph"},
//	}, logger)
//	r := watch.NewReformatter(loader, logger, collector)
//	err = fw.Watch(ctx, r.Handle)
//
// Rewriting a file produces another event. The second pass finds the file
// canonical and does not write, so the loop settles.
package watch
