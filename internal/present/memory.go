package present

// MemorySurface keeps the most recent image in memory. Width and Height are
// what Size reports; tests and the snapshot tool set them directly.
type MemorySurface struct {
	Width, Height int

	Last       Image
	LastWidth  int
	LastHeight int
	Blits      int
}

func (m *MemorySurface) Size() (int, int) { return m.Width, m.Height }

func (m *MemorySurface) Blit(img Image, w, h int) error {
	m.Last = img
	m.LastWidth, m.LastHeight = w, h
	m.Blits++
	return nil
}
