package api

import (
	"github.com/avolkov/castboard/app/board"
)

// ViewSampleSize is how many random messages the view page shows
const ViewSampleSize = 5

type Handler struct {
	service *board.Service
	version string
}
