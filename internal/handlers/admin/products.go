package admin

import (
	"encoding/json"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"importony_back_end/internal/catalog"
	"importony_back_end/internal/middleware"
	"importony_back_end/internal/models"
)

// Handler porte les endpoints de mutation du catalogue. Volontairement
// mince : toute la logique vit dans internal/catalog.
type Handler struct {
	Catalog *catalog.Service
}

func NewHandler(svc *catalog.Service) *Handler {
	return &Handler{Catalog: svc}
}

// CreateProduct crée un produit avec ses photos (multipart) et, pour un
// paquete, sa composition initiale.
func (h *Handler) CreateProduct(c *gin.Context) {
	tenant := c.GetString(middleware.TenantKey)

	var input models.ProductInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	files, closers, err := openUploads(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichiers invalides: " + err.Error()})
		return
	}
	defer closeAll(closers)

	var packAdds []models.PackItemAdd
	if raw := c.PostForm("paqueteAgregados"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &packAdds); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Composition du paquete invalide"})
			return
		}
	}

	code, _, err := h.Catalog.CreateProduct(c.Request.Context(), tenant, &input, files, packAdds)
	if err != nil {
		// Pas de compensation : les sous-étapes déjà appliquées restent
		// acquises, on remonte simplement le message.
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Produit créé avec succès",
		"idProducto": code,
	})
}

// UpdateProduct applique un change-set épars : colonnes modifiées, photos
// supprimées/ajoutées, changement de dossier, diffs de composition.
func (h *Handler) UpdateProduct(c *gin.Context) {
	tenant := c.GetString(middleware.TenantKey)

	var changes models.ProductChanges
	if err := c.ShouldBind(&changes); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}
	changes.IDProducto = c.Param("id")
	if changes.IDProducto == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit manquant"})
		return
	}

	// Les diffs du paquete arrivent en JSON dans le formulaire.
	if raw := c.PostForm("paqueteEliminados"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &changes.PaqueteEliminados); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Liste de suppressions invalide"})
			return
		}
	}
	if raw := c.PostForm("paqueteActualizados"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &changes.PaqueteActualizados); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Liste de mises à jour invalide"})
			return
		}
	}
	if raw := c.PostForm("paqueteAgregados"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &changes.PaqueteAgregados); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Liste d'ajouts invalide"})
			return
		}
	}

	files, closers, err := openUploads(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichiers invalides: " + err.Error()})
		return
	}
	defer closeAll(closers)

	journal, err := h.Catalog.UpdateProduct(c.Request.Context(), tenant, &changes, files)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Produit mis à jour avec succès",
		"acciones": len(journal.Entries),
	})
}

// openUploads ouvre les fichiers du champ multipart "files".
func openUploads(c *gin.Context) ([]models.ImageUpload, []multipart.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if err == http.ErrNotMultipart {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	var uploads []models.ImageUpload
	var closers []multipart.File
	for _, header := range form.File["files"] {
		f, err := header.Open()
		if err != nil {
			closeAll(closers)
			return nil, nil, err
		}
		closers = append(closers, f)
		uploads = append(uploads, models.ImageUpload{
			Reader:      f,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
		})
	}
	return uploads, closers, nil
}

func closeAll(files []multipart.File) {
	for _, f := range files {
		f.Close()
	}
}
