package pipeline

import (
	"fmt"
	"strings"

	"github.com/schedulely/timetable-extractor/constants"
	"github.com/schedulely/timetable-extractor/internal/strategy"
)

// diagnoseFailure explains why every path came up empty, in terms the person
// uploading the file can act on.
func diagnoseFailure(in strategy.Input, models []string) string {
	var detail string
	switch {
	case in.Format == constants.PDF:
		detail = "Try uploading a clearer PDF with selectable text."
	case len(models) == 0:
		detail = "Ollama does not appear to be running. " +
			"Start Ollama, then re-upload your timetable image."
	case in.VisionModel == "":
		available := "none"
		if len(models) > 0 {
			shown := models
			if len(shown) > 5 {
				shown = shown[:5]
			}
			available = strings.Join(shown, ", ")
		}
		detail = fmt.Sprintf(
			"No vision model found. Run `ollama pull llava:7b` to install one. (Available: %s)",
			available)
	default:
		detail = fmt.Sprintf(
			"Vision model '%s' could not extract entries. Try uploading a clearer, higher-resolution image.",
			in.VisionModel)
	}
	return "Could not extract timetable. " + detail
}
