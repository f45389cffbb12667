package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sqlintent/models"
)

// ListTemplatesHandler lists the loaded catalog templates
// @Summary      List query templates
// @Description  Get the names and match keywords of all loaded SQL templates, in resolution order
// @Tags         Templates
// @Produce      json
// @Success      200  {object}  map[string][]models.TemplateInfo  "Templates in resolution order"
// @Router       /api/templates [get]
func (h *Handlers) ListTemplatesHandler(c *gin.Context) {
	templates := h.catalog.Templates()

	infos := make([]models.TemplateInfo, len(templates))
	for i, t := range templates {
		infos[i] = models.TemplateInfo{Name: t.Name, Keywords: t.Keywords}
	}

	c.JSON(http.StatusOK, gin.H{"templates": infos})
}
