//go:build !unix && !windows

package arena

func defaultBackend() Backend {
	return HeapBackend{}
}
