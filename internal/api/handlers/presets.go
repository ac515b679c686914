package handlers

import (
	"net/http"
	"os"

	"consumption-sim/internal/api/models"
	"consumption-sim/internal/data"

	"github.com/gin-gonic/gin"
)

// PresetHandler serves the scenario presets.
type PresetHandler struct {
	presetsPath string
}

func NewPresetHandler() *PresetHandler {
	return &PresetHandler{presetsPath: data.GetDefaultPresetsPath()}
}

// GetPresetsPath exposes the resolved presets file path for diagnostics.
func (h *PresetHandler) GetPresetsPath() string { return h.presetsPath }

// ListPresets handles GET /api/v1/presets. It serves the on-disk preset
// file when present and falls back to the built-in calibrations.
func (h *PresetHandler) ListPresets(c *gin.Context) {
	presets := data.BuiltinPresets()
	if _, err := os.Stat(h.presetsPath); err == nil {
		list, err := data.LoadPresets(h.presetsPath)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "PRESETS_UNREADABLE",
					Message: err.Error(),
				},
			})
			return
		}
		presets = list.Presets
	}

	resp := models.PresetsResponse{Presets: make([]models.PresetInfo, 0, len(presets))}
	for _, p := range presets {
		resp.Presets = append(resp.Presets, models.PresetInfo{
			Name:          p.Name,
			Description:   p.Description,
			CorrAct:       p.CorrAct,
			CorrPcvd:      p.CorrPcvd,
			DiscFacCenter: p.DiscFacCenter,
			DiscFacSpread: p.DiscFacSpread,
		})
	}
	c.JSON(http.StatusOK, resp)
}
