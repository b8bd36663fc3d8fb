package web

import "sketchboard/internal/db"

// GallerySketches converts stored rows into gallery cards, keeping their order.
func GallerySketches(rows []db.Sketch) []GallerySketch {
	out := make([]GallerySketch, 0, len(rows))
	for _, row := range rows {
		out = append(out, GallerySketch{
			ID:      row.ID,
			Name:    row.Name,
			Drawing: row.Drawing,
		})
	}
	return out
}
