package model

import "strconv"

// ThumbnailWidths are the widths derived for every image, in generation order
var ThumbnailWidths = []int{500, 250, 100}

// VariantPath returns the path of the derived blob of the given width for a
// source blob stored at p
func VariantPath(p string, width int) string {
	return p + "_" + strconv.Itoa(width)
}

// ValidThumbnailWidth reports whether w is one of ThumbnailWidths
func ValidThumbnailWidth(w int) bool {
	for _, v := range ThumbnailWidths {
		if v == w {
			return true
		}
	}

	return false
}
