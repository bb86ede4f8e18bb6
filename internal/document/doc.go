// Package document manages open text files, each backed by its own arena.
//
// Files are read through a read-only memory map, decoded when they carry a
// gzip, zstd or LZ4 header, repaired to valid UTF-8, and indexed by line. A
// line index is a roaring bitmap of line start offsets, so line lookups are a
// Select and offset-to-line is a Rank.
//
//	m := document.NewManager(document.WithArenaOptions(arena.WithMemoryAcquirer(rc)))
//	defer m.Close()
//
//	doc, err := m.AddFile("notes.txt.zst")
//	line, _ := doc.Line(0)
//	err = doc.Save(fs.Default, "notes.txt.lz4")
package document
