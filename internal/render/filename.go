package render

import (
	"github.com/gosimple/slug"
)

// DocumentFilename builds a download filename from the linesheet
// title, e.g. "SS26 Wholesale!" -> "ss26-wholesale.pdf".
func DocumentFilename(title, ext string) string {
	name := slug.Make(title)
	if name == "" {
		name = "linesheet"
	}
	return name + "." + ext
}
