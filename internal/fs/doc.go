// Package fs provides the filesystem seam used when saving documents, plus
// fault injection for tests.
//
//   - [FileSystem]: open, rename, remove, stat
//   - [LocalFS]: production implementation on the os package
//   - [FaultyFS]: wraps another FileSystem and fails writes, syncs, closes
//     or renames on demand
//
// # Usage
//
//	err := fs.WriteFileAtomic(fs.Default, path, 0o644, func(w io.Writer) error {
//		_, err := w.Write(data)
//		return err
//	})
//
// Tests can inject [FaultyFS] to simulate failures:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("notes.txt", fs.Fault{FailAfterBytes: 1024})
//
// Reads do not go through this package; documents are opened with
// read-only memory maps.
package fs
