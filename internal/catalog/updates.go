package catalog

import "importony_back_end/internal/models"

// SetPair est une affectation `colonne = ?` d'un UPDATE partiel.
type SetPair struct {
	Column string
	Value  string
}

// productFields énumère explicitement, dans l'ordre du schéma, les colonnes
// de `productos` qu'une mise à jour partielle peut toucher. Toute nouvelle
// colonne doit être ajoutée ici volontairement : plus d'itération dynamique
// sur les clés du DTO, donc plus d'inclusion accidentelle.
var productFields = []struct {
	column  string
	extract func(*models.ProductChanges) string
}{
	{"idCategoria", func(c *models.ProductChanges) string { return c.IDCategoria }},
	{"idSubCategoria", func(c *models.ProductChanges) string { return c.IDSubCategoria }},
	{"idMarca", func(c *models.ProductChanges) string { return c.IDMarca }},
	{"idColor", func(c *models.ProductChanges) string { return c.IDColor }},
	{"nombre", func(c *models.ProductChanges) string { return c.Nombre }},
	{"precio", func(c *models.ProductChanges) string { return c.Precio }},
	{"cantidad", func(c *models.ProductChanges) string { return c.Cantidad }},
	{"descripcion", func(c *models.ProductChanges) string { return c.Descripcion }},
	{"destacado", func(c *models.ProductChanges) string { return c.Destacado }},
	{"nuevo", func(c *models.ProductChanges) string { return c.Nuevo }},
	{"masVendido", func(c *models.ProductChanges) string { return c.MasVendido }},
	{"activo", func(c *models.ProductChanges) string { return c.Activo }},
	{"userId", func(c *models.ProductChanges) string { return c.UserID }},
}

// BuildProductUpdate convertit un change-set épars en liste ordonnée de
// paires (colonne, valeur). Les champs vides ou au sentinel "null" sont
// ignorés ; l'identifiant (idProducto) et les champs de contrôle ne font
// jamais partie du résultat, l'appelant l'ajoute lui-même dans le WHERE.
// Une liste vide signifie "rien à mettre à jour" : l'appelant ne doit pas
// émettre de UPDATE.
func BuildProductUpdate(changes *models.ProductChanges) []SetPair {
	var pairs []SetPair
	for _, f := range productFields {
		v := f.extract(changes)
		if v == "" || v == "null" {
			continue
		}
		pairs = append(pairs, SetPair{Column: f.column, Value: v})
	}
	return pairs
}
