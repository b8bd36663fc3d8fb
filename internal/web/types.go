package web

// GallerySketch is one sketch as the gallery board renders it.
type GallerySketch struct {
	ID      int64
	Name    string
	Drawing string
}

type HomeData struct {
	Sketches []GallerySketch
	Error    string
}
