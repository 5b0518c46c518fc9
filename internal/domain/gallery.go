package domain

// Gallery tracks which product image is active and which one is shown in the
// enlarged viewer.
type Gallery struct {
	images      []string
	activeIndex int
	viewing     string
	viewerOpen  bool
}

func NewGallery(p Product) *Gallery {
	return &Gallery{images: p.Images()}
}

func (g *Gallery) Images() []string {
	return g.images
}

func (g *Gallery) ActiveIndex() int {
	return g.activeIndex
}

func (g *Gallery) ActiveImage() string {
	if len(g.images) == 0 {
		return ""
	}

	return g.images[g.activeIndex]
}

// Select makes index active. Out of range indexes are ignored and reported
// with false.
func (g *Gallery) Select(index int) bool {
	if index < 0 || index >= len(g.images) {
		return false
	}

	g.activeIndex = index

	return true
}

// OpenViewer captures the active image. Later selections do not change it
// until the viewer is opened again.
func (g *Gallery) OpenViewer() string {
	g.viewing = g.ActiveImage()
	g.viewerOpen = true

	return g.viewing
}

func (g *Gallery) Viewing() (string, bool) {
	return g.viewing, g.viewerOpen
}

func (g *Gallery) CloseViewer() {
	g.viewing = ""
	g.viewerOpen = false
}
